package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/dimitrije/futbol-api/internal/middleware"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type MatchHandler struct {
	matchService MatchServiceInterface
	events       Publisher
}

func NewMatchHandler(matchService MatchServiceInterface, events Publisher) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		events:       events,
	}
}

func (h *MatchHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	scope := models.ScopeAll
	if q := c.QueryParam("scope"); q != "" {
		scope = models.MatchScope(q)
	}
	if !scope.Valid() {
		c.BadRequest("scope must be all or mine")
		return
	}

	matches, err := h.matchService.List(c.Request.Context(), userID, scope)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.MatchResponse, len(matches))
	for i := range matches {
		response[i] = toMatchResponse(&matches[i], nil)
	}

	_ = c.JSON(http.StatusOK, response)
}

func (h *MatchHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid match id")
		return
	}

	ctx := c.Request.Context()
	m, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		writeError(c, err)
		return
	}

	allowed, err := h.matchService.Allowed(ctx, m, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, toMatchResponse(m, allowed))
}

func (h *MatchHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateMatchRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.VenueID == uuid.Nil {
		c.BadRequest("venue_id is required")
		return
	}
	if req.ScheduledAt.IsZero() {
		c.BadRequest("scheduled_at is required")
		return
	}

	m, err := h.matchService.Create(c.Request.Context(), userID, req.VenueID, req.ScheduledAt)
	if err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.MatchChanged, m.ID, userID)
	_ = c.JSON(http.StatusCreated, toMatchResponse(m, nil))
}

func (h *MatchHandler) Join(c *drift.Context) {
	h.transition(c, h.matchService.Join)
}

func (h *MatchHandler) Leave(c *drift.Context) {
	h.transition(c, h.matchService.Leave)
}

func (h *MatchHandler) Confirm(c *drift.Context) {
	h.transition(c, h.matchService.ConfirmResult)
}

func (h *MatchHandler) Reject(c *drift.Context) {
	h.transition(c, h.matchService.RejectResult)
}

func (h *MatchHandler) SubmitResult(c *drift.Context) {
	var req dto.SubmitResultRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.GoalsLocal == nil || req.GoalsVisiting == nil {
		c.BadRequest("goles_local and goles_visitante are required")
		return
	}

	result := models.Result{GoalsLocal: *req.GoalsLocal, GoalsVisiting: *req.GoalsVisiting}
	h.transition(c, func(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
		return h.matchService.SubmitResult(ctx, matchID, userID, result)
	})
}

func (h *MatchHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid match id")
		return
	}

	if err := h.matchService.Delete(c.Request.Context(), matchID, userID); err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.MatchRemoved, matchID, userID)
	_ = c.JSON(http.StatusOK, map[string]string{"message": "match deleted"})
}

// transition runs one state-changing action on the match named in the path
// and replies with the match as it is afterwards.
func (h *MatchHandler) transition(c *drift.Context, action func(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error)) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	matchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid match id")
		return
	}

	ctx := c.Request.Context()
	m, err := action(ctx, matchID, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.MatchChanged, m.ID, userID)

	// The change is committed; a failure here only costs the hints.
	allowed, err := h.matchService.Allowed(ctx, m, userID)
	if err != nil {
		log.Printf("allowed actions for match %s: %v", m.ID, err)
	}
	_ = c.JSON(http.StatusOK, toMatchResponse(m, allowed))
}
