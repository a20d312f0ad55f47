package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/dimitrije/futbol-api/pkg/dto"
	"github.com/dimitrije/futbol-api/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTeamTest(t *testing.T) (*testutil.MockTeamService, *testutil.MockPublisher, *TeamHandler) {
	t.Helper()
	mockTeamService := new(testutil.MockTeamService)
	mockPublisher := new(testutil.MockPublisher)
	return mockTeamService, mockPublisher, NewTeamHandler(mockTeamService, mockPublisher)
}

func TestTeamHandler_Create_Success(t *testing.T) {
	mockTeamService, mockPublisher, handler := setupTeamTest(t)

	userID := uuid.New()
	team := &models.Team{ID: uuid.New(), Name: "Los Halcones", CaptainID: userID, MemberCount: 1}

	mockTeamService.On("Create", mock.Anything, userID, "Los Halcones").Return(team, nil)
	mockPublisher.On("Publish", events.TeamChanged, team.ID, userID).Return()

	app := newApp(http.MethodPost, "/teams", handler.Create)
	rec := doRequest(t, app, http.MethodPost, "/teams", userID, dto.TeamNameRequest{Name: "Los Halcones"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.TeamResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, team.ID, response.ID)
	assert.Equal(t, userID, response.CaptainID)
	assert.Equal(t, 1, response.MemberCount)

	mockTeamService.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestTeamHandler_Create_EmptyName(t *testing.T) {
	_, _, handler := setupTeamTest(t)

	app := newApp(http.MethodPost, "/teams", handler.Create)
	rec := doRequest(t, app, http.MethodPost, "/teams", uuid.New(), dto.TeamNameRequest{Name: "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestTeamHandler_Create_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   apperr.Kind
	}{
		{"duplicate name", roster.ErrDuplicateName, http.StatusConflict, apperr.KindUniquenessConflict},
		{"already in team", roster.ErrAlreadyInTeam, http.StatusConflict, apperr.KindGuardViolation},
		{"invalid name", roster.ErrInvalidName, http.StatusBadRequest, apperr.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTeamService, mockPublisher, handler := setupTeamTest(t)
			userID := uuid.New()

			mockTeamService.On("Create", mock.Anything, userID, "Halcones").Return(nil, tt.err)

			app := newApp(http.MethodPost, "/teams", handler.Create)
			rec := doRequest(t, app, http.MethodPost, "/teams", userID, dto.TeamNameRequest{Name: "Halcones"})

			assert.Equal(t, tt.status, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, apperr.CodeOf(tt.err), resp.Code)
			assert.Equal(t, string(tt.kind), resp.Kind)
			mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTeamHandler_Get(t *testing.T) {
	mockTeamService, _, handler := setupTeamTest(t)
	team := &models.Team{ID: uuid.New(), Name: "Águilas", CaptainID: uuid.New(), MemberCount: 4}

	mockTeamService.On("GetByID", mock.Anything, team.ID).Return(team, nil)

	app := newApp(http.MethodGet, "/teams/:id", handler.Get)
	rec := doRequest(t, app, http.MethodGet, "/teams/"+team.ID.String(), uuid.New(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Águilas")
}

func TestTeamHandler_Update_NotCaptain(t *testing.T) {
	mockTeamService, _, handler := setupTeamTest(t)
	userID := uuid.New()
	teamID := uuid.New()

	mockTeamService.On("Rename", mock.Anything, teamID, userID, "Nuevo").Return(nil, roster.ErrNotCaptain)

	app := newApp(http.MethodPatch, "/teams/:id", handler.Update)
	rec := doRequest(t, app, http.MethodPatch, "/teams/"+teamID.String(), userID, dto.TeamNameRequest{Name: "Nuevo"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperr.CodeOf(roster.ErrNotCaptain), decodeError(t, rec).Code)
}

func TestTeamHandler_Delete(t *testing.T) {
	mockTeamService, mockPublisher, handler := setupTeamTest(t)
	userID := uuid.New()
	teamID := uuid.New()

	mockTeamService.On("Delete", mock.Anything, teamID, userID).Return(nil)
	mockPublisher.On("Publish", events.TeamRemoved, teamID, userID).Return()

	app := newApp(http.MethodDelete, "/teams/:id", handler.Delete)
	rec := doRequest(t, app, http.MethodDelete, "/teams/"+teamID.String(), userID, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "team deleted")
	mockPublisher.AssertExpectations(t)
}

func TestTeamHandler_GetMembers(t *testing.T) {
	mockTeamService, _, handler := setupTeamTest(t)
	teamID := uuid.New()
	captainID := uuid.New()

	members := []models.TeamMember{
		{UserID: captainID, TeamID: teamID, Name: "Capi", Role: models.RoleCapitan, IsCaptain: true},
		{UserID: uuid.New(), TeamID: teamID, Name: "Pibe", Role: models.RoleJugador},
	}
	mockTeamService.On("GetMembers", mock.Anything, teamID).Return(members, nil)

	app := newApp(http.MethodGet, "/teams/:id/members", handler.GetMembers)
	rec := doRequest(t, app, http.MethodGet, "/teams/"+teamID.String()+"/members", uuid.New(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.TeamMemberResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.True(t, response[0].IsCaptain)
	assert.Equal(t, "jugador", response[1].Role)
}

func TestTeamHandler_RemoveMember(t *testing.T) {
	mockTeamService, mockPublisher, handler := setupTeamTest(t)
	userID := uuid.New()
	teamID := uuid.New()
	memberID := uuid.New()

	mockTeamService.On("RemoveMember", mock.Anything, teamID, userID, memberID).Return(nil)
	mockPublisher.On("Publish", events.TeamChanged, teamID, userID).Return()

	app := newApp(http.MethodDelete, "/teams/:id/members/:memberId", handler.RemoveMember)
	rec := doRequest(t, app, http.MethodDelete, "/teams/"+teamID.String()+"/members/"+memberID.String(), userID, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTeamService.AssertExpectations(t)
}

func TestTeamHandler_Leave_CaptainCannotLeave(t *testing.T) {
	mockTeamService, _, handler := setupTeamTest(t)
	userID := uuid.New()
	teamID := uuid.New()

	mockTeamService.On("Leave", mock.Anything, teamID, userID).Return(roster.ErrCannotRemoveCaptain)

	app := newApp(http.MethodPost, "/teams/:id/leave", handler.Leave)
	rec := doRequest(t, app, http.MethodPost, "/teams/"+teamID.String()+"/leave", userID, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apperr.CodeOf(roster.ErrCannotRemoveCaptain), decodeError(t, rec).Code)
}
