package testutil

import (
	"context"
	"time"

	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListAvailable(ctx context.Context, query string) ([]models.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) SetVisibility(ctx context.Context, userID uuid.UUID, visible bool) (*models.User, error) {
	args := m.Called(ctx, userID, visible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, creatorID uuid.UUID, name string) (*models.Team, error) {
	args := m.Called(ctx, creatorID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) Rename(ctx context.Context, teamID, actorID uuid.UUID, name string) (*models.Team, error) {
	args := m.Called(ctx, teamID, actorID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) Delete(ctx context.Context, teamID, actorID uuid.UUID) error {
	args := m.Called(ctx, teamID, actorID)
	return args.Error(0)
}

func (m *MockTeamService) GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamMember), args.Error(1)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, teamID, actorID, memberID uuid.UUID) error {
	args := m.Called(ctx, teamID, actorID, memberID)
	return args.Error(0)
}

func (m *MockTeamService) Leave(ctx context.Context, teamID, userID uuid.UUID) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

// MockInvitationService mocks the InvitationService
type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) Send(ctx context.Context, teamID, captainID, inviteeID uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, teamID, captainID, inviteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationService) Accept(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, invitationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationService) Reject(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, invitationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationService) Cancel(ctx context.Context, teamID, invitationID, captainID uuid.UUID) error {
	args := m.Called(ctx, teamID, invitationID, captainID)
	return args.Error(0)
}

func (m *MockInvitationService) ListReceived(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invitation), args.Error(1)
}

func (m *MockInvitationService) ListTeamPending(ctx context.Context, teamID, captainID uuid.UUID) ([]models.Invitation, error) {
	args := m.Called(ctx, teamID, captainID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Invitation), args.Error(1)
}

// MockMatchService mocks the MatchService
type MockMatchService struct {
	mock.Mock
}

func (m *MockMatchService) result(args mock.Arguments) (*models.Match, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchService) Create(ctx context.Context, creatorID, venueID uuid.UUID, scheduledAt time.Time) (*models.Match, error) {
	return m.result(m.Called(ctx, creatorID, venueID, scheduledAt))
}

func (m *MockMatchService) Get(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockMatchService) List(ctx context.Context, userID uuid.UUID, scope models.MatchScope) ([]models.Match, error) {
	args := m.Called(ctx, userID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchService) Join(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return m.result(m.Called(ctx, matchID, userID))
}

func (m *MockMatchService) Leave(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return m.result(m.Called(ctx, matchID, userID))
}

func (m *MockMatchService) SubmitResult(ctx context.Context, matchID, userID uuid.UUID, result models.Result) (*models.Match, error) {
	return m.result(m.Called(ctx, matchID, userID, result))
}

func (m *MockMatchService) ConfirmResult(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return m.result(m.Called(ctx, matchID, userID))
}

func (m *MockMatchService) RejectResult(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return m.result(m.Called(ctx, matchID, userID))
}

func (m *MockMatchService) Delete(ctx context.Context, matchID, userID uuid.UUID) error {
	args := m.Called(ctx, matchID, userID)
	return args.Error(0)
}

func (m *MockMatchService) Allowed(ctx context.Context, mt *models.Match, userID uuid.UUID) ([]match.Intent, error) {
	args := m.Called(ctx, mt, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]match.Intent), args.Error(1)
}

// MockVenueService mocks the VenueService
type MockVenueService struct {
	mock.Mock
}

func (m *MockVenueService) List(ctx context.Context) ([]models.Venue, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Venue), args.Error(1)
}

func (m *MockVenueService) GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Venue), args.Error(1)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendInvitation(to, teamName, captainName, invitationsURL string) error {
	args := m.Called(to, teamName, captainName, invitationsURL)
	return args.Error(0)
}

// MockPublisher records published events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(t events.Type, id, by uuid.UUID) {
	m.Called(t, id, by)
}

func (m *MockPublisher) PublishTo(t events.Type, id, by uuid.UUID, userIDs ...uuid.UUID) {
	m.Called(t, id, by, userIDs)
}
