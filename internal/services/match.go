package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidScope      = apperr.New(apperr.KindInvalidInput, "INVALID_SCOPE", "scope must be all or mine")
	ErrMembershipChanged = apperr.New(apperr.KindGuardViolation, "MEMBERSHIP_CHANGED", "your team changed while acting; try again")
)

// MatchService is the authority for match state. Every transition runs in a
// transaction holding the match row lock, so concurrent actors are decided
// one after the other against fresh state.
type MatchService struct {
	db  *database.DB
	now func() time.Time
}

func NewMatchService(db *database.DB) *MatchService {
	return &MatchService{db: db, now: time.Now}
}

// Create schedules an open match with the creator's team as local.
func (s *MatchService) Create(ctx context.Context, creatorID, venueID uuid.UUID, scheduledAt time.Time) (*models.Match, error) {
	creator, err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, creatorID))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "user")
	}
	if !creator.HasTeam() {
		return nil, match.ErrNoTeam
	}
	if !creator.IsCaptain() {
		return nil, match.ErrNotCaptain
	}
	if !scheduledAt.After(s.now()) {
		return nil, match.ErrScheduledInThePast
	}

	var venueExists bool
	if err := s.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM venues WHERE id = $1)`, venueID).Scan(&venueExists); err != nil {
		return nil, fmt.Errorf("failed to check venue: %w", err)
	}
	if !venueExists {
		return nil, match.ErrVenueNotFound
	}

	m, err := scanMatch(s.db.Pool.QueryRow(ctx, `
		INSERT INTO matches (local_team_id, venue_id, scheduled_at, result_status, local_creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+matchColumns, *creator.TeamID, venueID, scheduledAt, models.ResultNotLoaded, creatorID))
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return m, nil
}

func (s *MatchService) Get(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	m, err := scanMatch(s.db.Pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, match.ErrMatchNotFound, "match")
	}
	return m, nil
}

// List returns every match for ScopeAll, or the matches the user's team
// plays in for ScopeMine. A user without a team has no matches of their own.
func (s *MatchService) List(ctx context.Context, userID uuid.UUID, scope models.MatchScope) ([]models.Match, error) {
	if !scope.Valid() {
		return nil, ErrInvalidScope
	}

	var (
		rows pgx.Rows
		err  error
	)
	if scope == models.ScopeAll {
		rows, err = s.db.Pool.Query(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY scheduled_at`)
	} else {
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+matchColumns+`
			FROM matches
			WHERE local_team_id = (SELECT team_id FROM users WHERE id = $1)
			   OR visiting_team_id = (SELECT team_id FROM users WHERE id = $1)
			ORDER BY scheduled_at
		`, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}

func (s *MatchService) Join(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return s.act(ctx, matchID, userID, fixed(match.Join))
}

// Leave withdraws the user's team from whichever side it plays on.
func (s *MatchService) Leave(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return s.act(ctx, matchID, userID, func(m *models.Match, a match.Actor) (match.Command, error) {
		intent, err := match.LeaveIntentFor(m, a)
		if err != nil {
			return match.Command{}, err
		}
		return match.Command{Intent: intent}, nil
	})
}

// SubmitResult records a score for the visiting captain to confirm, or
// resubmits one after a rejection.
func (s *MatchService) SubmitResult(ctx context.Context, matchID, userID uuid.UUID, result models.Result) (*models.Match, error) {
	return s.act(ctx, matchID, userID, func(m *models.Match, _ match.Actor) (match.Command, error) {
		return match.Command{Intent: match.ResultIntentFor(m), Result: &result}, nil
	})
}

func (s *MatchService) ConfirmResult(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return s.act(ctx, matchID, userID, fixed(match.ConfirmResult))
}

func (s *MatchService) RejectResult(ctx context.Context, matchID, userID uuid.UUID) (*models.Match, error) {
	return s.act(ctx, matchID, userID, fixed(match.RejectResult))
}

func (s *MatchService) Delete(ctx context.Context, matchID, userID uuid.UUID) error {
	_, err := s.act(ctx, matchID, userID, fixed(match.Delete))
	return err
}

// Allowed lists what userID may do to the match right now.
func (s *MatchService) Allowed(ctx context.Context, m *models.Match, userID uuid.UUID) ([]match.Intent, error) {
	actor, err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "user")
	}
	return match.Allowed(m, match.ActorFrom(actor)), nil
}

type commandFunc func(m *models.Match, a match.Actor) (match.Command, error)

func fixed(intent match.Intent) commandFunc {
	return func(*models.Match, match.Actor) (match.Command, error) {
		return match.Command{Intent: intent}, nil
	}
}

// lockActorTeam share-locks the team the user belongs to and returns its id,
// or nil for a teamless user. Team changes lock the team row before anything
// else, so taking it ahead of the match row keeps a single lock order with
// TeamService.Delete.
func lockActorTeam(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*uuid.UUID, error) {
	var teamID *uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT team_id FROM users WHERE id = $1`, userID).Scan(&teamID); err != nil {
		return nil, notFound(err, ErrUserNotFound, "user")
	}
	if teamID == nil {
		return nil, nil
	}
	var locked uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM teams WHERE id = $1 FOR SHARE`, *teamID).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		// Deleted meanwhile; the locked user read will show the user teamless.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock team: %w", err)
	}
	return teamID, nil
}

// act locks the actor's team, then the match, then the actor, resolves the
// command against the locked state, and persists the outcome. It returns nil for a deleted match.
func (s *MatchService) act(ctx context.Context, matchID, userID uuid.UUID, resolve commandFunc) (*models.Match, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	held, err := lockActorTeam(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	current, err := scanMatch(tx.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, matchID))
	if err != nil {
		return nil, notFound(err, match.ErrMatchNotFound, "match")
	}
	user, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR SHARE`, userID))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "user")
	}
	if user.TeamID != nil && (held == nil || *held != *user.TeamID) {
		return nil, ErrMembershipChanged
	}
	actor := match.ActorFrom(user)

	cmd, err := resolve(current, actor)
	if err != nil {
		return nil, err
	}

	next, err := match.Apply(*current, actor, cmd)
	if err != nil {
		return nil, err
	}

	var result *models.Match
	if cmd.Intent == match.Delete {
		if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE id = $1`, matchID); err != nil {
			return nil, fmt.Errorf("failed to delete match: %w", err)
		}
	} else {
		goalsLocal, goalsVisiting := goals(next.Result)
		result, err = scanMatch(tx.QueryRow(ctx, `
			UPDATE matches SET local_team_id = $1, visiting_team_id = $2, result_status = $3,
				goals_local = $4, goals_visiting = $5, local_creator_id = $6, visiting_creator_id = $7,
				updated_at = NOW()
			WHERE id = $8
			RETURNING `+matchColumns,
			next.LocalTeamID, next.VisitingTeamID, next.ResultStatus,
			goalsLocal, goalsVisiting, next.LocalCreatorID, next.VisitingCreatorID, matchID))
		if err != nil {
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
		if err := match.CheckInvariants(result); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}
