package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/futbol-api/internal/events"
	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListAvailable(ctx context.Context, query string) ([]models.User, error)
	SetVisibility(ctx context.Context, userID uuid.UUID, visible bool) (*models.User, error)
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, creatorID uuid.UUID, name string) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	Rename(ctx context.Context, teamID, actorID uuid.UUID, name string) (*models.Team, error)
	Delete(ctx context.Context, teamID, actorID uuid.UUID) error
	GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error)
	RemoveMember(ctx context.Context, teamID, actorID, memberID uuid.UUID) error
	Leave(ctx context.Context, teamID, userID uuid.UUID) error
}

// InvitationServiceInterface defines the methods used by handlers from InvitationService
type InvitationServiceInterface interface {
	Send(ctx context.Context, teamID, captainID, inviteeID uuid.UUID) (*models.Invitation, error)
	Accept(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error)
	Reject(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error)
	Cancel(ctx context.Context, teamID, invitationID, captainID uuid.UUID) error
	ListReceived(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error)
	ListTeamPending(ctx context.Context, teamID, captainID uuid.UUID) ([]models.Invitation, error)
}

// MatchServiceInterface defines the methods used by handlers from MatchService
type MatchServiceInterface interface {
	Create(ctx context.Context, creatorID, venueID uuid.UUID, scheduledAt time.Time) (*models.Match, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Match, error)
	List(ctx context.Context, userID uuid.UUID, scope models.MatchScope) ([]models.Match, error)
	Join(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error)
	Leave(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error)
	SubmitResult(ctx context.Context, matchID, userID uuid.UUID, result models.Result) (*models.Match, error)
	ConfirmResult(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error)
	RejectResult(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error)
	Delete(ctx context.Context, matchID, userID uuid.UUID) error
	Allowed(ctx context.Context, m *models.Match, userID uuid.UUID) ([]match.Intent, error)
}

// VenueServiceInterface defines the methods used by handlers from VenueService
type VenueServiceInterface interface {
	List(ctx context.Context) ([]models.Venue, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Venue, error)
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendInvitation(to, teamName, captainName, invitationsURL string) error
}

// Publisher is the part of the events hub handlers notify after a change.
type Publisher interface {
	Publish(t events.Type, id, by uuid.UUID)
	PublishTo(t events.Type, id, by uuid.UUID, userIDs ...uuid.UUID)
}
