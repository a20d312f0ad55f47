package handlers

import (
	"net/http"
	"strings"

	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/dimitrije/futbol-api/internal/middleware"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type TeamHandler struct {
	teamService TeamServiceInterface
	events      Publisher
}

func NewTeamHandler(teamService TeamServiceInterface, events Publisher) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		events:      events,
	}
}

// teamRequest resolves the caller and the :id team of a team route, writing
// the error response itself when either is missing.
func teamRequest(c *drift.Context) (userID, teamID uuid.UUID, ok bool) {
	userID = middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return uuid.Nil, uuid.Nil, false
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, teamID, true
}

// bindTeamName reads the name of a create or rename request. Length and
// uniqueness are checked by the service.
func bindTeamName(c *drift.Context) (string, bool) {
	var req dto.TeamNameRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return "", false
	}
	if strings.TrimSpace(req.Name) == "" {
		c.BadRequest("name is required")
		return "", false
	}
	return req.Name, true
}

func (h *TeamHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	name, ok := bindTeamName(c)
	if !ok {
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), userID, name)
	if err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.TeamChanged, team.ID, userID)
	_ = c.JSON(http.StatusCreated, toTeamResponse(team))
}

func (h *TeamHandler) Get(c *drift.Context) {
	_, teamID, ok := teamRequest(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetByID(c.Request.Context(), teamID)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(http.StatusOK, toTeamResponse(team))
}

// Update renames the team. Only the captain may do it.
func (h *TeamHandler) Update(c *drift.Context) {
	userID, teamID, ok := teamRequest(c)
	if !ok {
		return
	}

	name, ok := bindTeamName(c)
	if !ok {
		return
	}

	team, err := h.teamService.Rename(c.Request.Context(), teamID, userID, name)
	if err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.TeamChanged, team.ID, userID)
	_ = c.JSON(http.StatusOK, toTeamResponse(team))
}

// Delete disbands the team, freeing its members and removing its matches.
func (h *TeamHandler) Delete(c *drift.Context) {
	userID, teamID, ok := teamRequest(c)
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), teamID, userID); err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.TeamRemoved, teamID, userID)
	_ = c.JSON(http.StatusOK, map[string]string{"message": "team deleted"})
}

func (h *TeamHandler) GetMembers(c *drift.Context) {
	_, teamID, ok := teamRequest(c)
	if !ok {
		return
	}

	members, err := h.teamService.GetMembers(c.Request.Context(), teamID)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]dto.TeamMemberResponse, len(members))
	for i := range members {
		response[i] = toTeamMemberResponse(&members[i])
	}
	_ = c.JSON(http.StatusOK, response)
}

func (h *TeamHandler) RemoveMember(c *drift.Context) {
	userID, teamID, ok := teamRequest(c)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		c.BadRequest("invalid member id")
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, userID, memberID); err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.TeamChanged, teamID, userID)
	_ = c.JSON(http.StatusOK, map[string]string{"message": "member removed"})
}

func (h *TeamHandler) Leave(c *drift.Context) {
	userID, teamID, ok := teamRequest(c)
	if !ok {
		return
	}

	if err := h.teamService.Leave(c.Request.Context(), teamID, userID); err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(events.TeamChanged, teamID, userID)
	_ = c.JSON(http.StatusOK, map[string]string{"message": "left team"})
}
