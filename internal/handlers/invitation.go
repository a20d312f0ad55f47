package handlers

import (
	"log"
	"net/http"

	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/dimitrije/futbol-api/internal/middleware"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type InvitationHandler struct {
	invitationService InvitationServiceInterface
	emailService      EmailServiceInterface
	events            Publisher
	invitationsURL    string
}

func NewInvitationHandler(invitationService InvitationServiceInterface, emailService EmailServiceInterface, events Publisher, invitationsURL string) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		emailService:      emailService,
		events:            events,
		invitationsURL:    invitationsURL,
	}
}

func (h *InvitationHandler) Send(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	var req dto.SendInvitationRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.UserID == uuid.Nil {
		c.BadRequest("user_id is required")
		return
	}

	inv, err := h.invitationService.Send(c.Request.Context(), teamID, userID, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}

	if h.emailService.IsConfigured() && inv.Invitee != nil && inv.Team != nil && inv.Inviter != nil {
		if err := h.emailService.SendInvitation(inv.Invitee.Email, inv.Team.Name, inv.Inviter.Name, h.invitationsURL); err != nil {
			log.Printf("failed to send invitation email to %s: %v", inv.Invitee.Email, err)
		}
	}

	h.events.PublishTo(events.InvitationChanged, inv.ID, userID, inv.InviteeID)
	_ = c.JSON(http.StatusCreated, toInvitationResponse(inv))
}

func (h *InvitationHandler) ListReceived(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invitations, err := h.invitationService.ListReceived(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, toInvitationResponses(invitations))
}

func (h *InvitationHandler) ListTeamPending(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	invitations, err := h.invitationService.ListTeamPending(c.Request.Context(), teamID, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, toInvitationResponses(invitations))
}

func (h *InvitationHandler) Accept(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid invitation id")
		return
	}

	inv, err := h.invitationService.Accept(c.Request.Context(), invitationID, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.events.PublishTo(events.InvitationChanged, inv.ID, userID, inv.InviterID)
	h.events.Publish(events.TeamChanged, inv.TeamID, userID)
	_ = c.JSON(http.StatusOK, toInvitationResponse(inv))
}

func (h *InvitationHandler) Reject(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid invitation id")
		return
	}

	inv, err := h.invitationService.Reject(c.Request.Context(), invitationID, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.events.PublishTo(events.InvitationChanged, inv.ID, userID, inv.InviterID)
	_ = c.JSON(http.StatusOK, toInvitationResponse(inv))
}

func (h *InvitationHandler) Cancel(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	invitationID, err := uuid.Parse(c.Param("invitationId"))
	if err != nil {
		c.BadRequest("invalid invitation id")
		return
	}

	if err := h.invitationService.Cancel(c.Request.Context(), teamID, invitationID, userID); err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.InvitationChanged, invitationID, userID)
	_ = c.JSON(http.StatusOK, map[string]string{"message": "invitation cancelled"})
}

func toInvitationResponses(invitations []models.Invitation) []dto.InvitationResponse {
	response := make([]dto.InvitationResponse, len(invitations))
	for i := range invitations {
		response[i] = toInvitationResponse(&invitations[i])
	}
	return response
}
