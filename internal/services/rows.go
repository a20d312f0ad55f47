package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, role, visible, team_id, created_at, updated_at`

const teamColumns = `id, name, captain_id, created_at, updated_at`

const matchColumns = `id, local_team_id, visiting_team_id, venue_id, scheduled_at, result_status,
		goals_local, goals_visiting, local_creator_id, visiting_creator_id, created_at, updated_at`

var ErrUserNotFound = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Visible, &u.TeamID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.CaptainID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var m models.Match
	var goalsLocal, goalsVisiting *int
	err := row.Scan(
		&m.ID, &m.LocalTeamID, &m.VisitingTeamID, &m.VenueID, &m.ScheduledAt, &m.ResultStatus,
		&goalsLocal, &goalsVisiting, &m.LocalCreatorID, &m.VisitingCreatorID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if goalsLocal != nil && goalsVisiting != nil {
		m.Result = &models.Result{GoalsLocal: *goalsLocal, GoalsVisiting: *goalsVisiting}
	}
	return &m, nil
}

// goals splits a result into the two nullable columns it is stored in.
func goals(r *models.Result) (*int, *int) {
	if r == nil {
		return nil, nil
	}
	local, visiting := r.GoalsLocal, r.GoalsVisiting
	return &local, &visiting
}

// notFound turns pgx.ErrNoRows into the given rejection and wraps anything
// else.
func notFound(err error, sentinel *apperr.Error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func lockUser(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "user")
	}
	return user, nil
}

// lockTeam locks the team row and counts its members. Every membership
// change takes this lock first, so the count is stable until commit.
func lockTeam(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Team, error) {
	team, err := scanTeam(tx.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, notFound(err, roster.ErrTeamNotFound, "team")
	}
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE team_id = $1`, id).Scan(&team.MemberCount); err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	return team, nil
}

// rejectPendingFor closes every pending invitation addressed to userID.
func rejectPendingFor(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE invitations SET status = $1, updated_at = NOW()
		WHERE invitee_id = $2 AND status = $3
	`, models.InvitationRejected, userID, models.InvitationPending)
	if err != nil {
		return fmt.Errorf("failed to reject pending invitations: %w", err)
	}
	return nil
}
