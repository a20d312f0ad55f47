package handlers

import (
	"net/http"

	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type VenueHandler struct {
	venueService VenueServiceInterface
}

func NewVenueHandler(venueService VenueServiceInterface) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) List(c *drift.Context) {
	venues, err := h.venueService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.VenueResponse, len(venues))
	for i := range venues {
		response[i] = toVenueResponse(&venues[i])
	}

	_ = c.JSON(http.StatusOK, response)
}

func (h *VenueHandler) Get(c *drift.Context) {
	venueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid venue id")
		return
	}

	venue, err := h.venueService.GetByID(c.Request.Context(), venueID)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, toVenueResponse(venue))
}
