package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/google/uuid"
)

const availableLimit = 50

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "user")
	}
	return user, nil
}

// ListAvailable returns visible players without a team, optionally filtered
// by a name or email fragment.
func (s *UserService) ListAvailable(ctx context.Context, query string) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE visible = TRUE AND team_id IS NULL AND role <> $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%')
		ORDER BY name
		LIMIT $3
	`, models.RoleAdmin, strings.TrimSpace(query), availableLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list available users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// SetVisibility toggles whether a teamless player shows up for captains
// looking for members.
func (s *UserService) SetVisibility(ctx context.Context, userID uuid.UUID, visible bool) (*models.User, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	var pending int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM invitations WHERE invitee_id = $1 AND status = $2
	`, userID, models.InvitationPending).Scan(&pending); err != nil {
		return nil, fmt.Errorf("failed to count invitations: %w", err)
	}

	if err := roster.CanSetVisibility(user, visible, pending); err != nil {
		return nil, err
	}

	updated, err := scanUser(tx.QueryRow(ctx, `
		UPDATE users SET visible = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns, visible, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to update visibility: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

// PromoteToAdmin gives a teamless user the admin role. Admins never play,
// so any pending invitations addressed to them are rejected.
func (s *UserService) PromoteToAdmin(ctx context.Context, email string) (*models.User, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 FOR UPDATE`, email))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "user")
	}
	if user.HasTeam() {
		return nil, roster.ErrAdminCannotPlay
	}

	if err := rejectPendingFor(ctx, tx, user.ID); err != nil {
		return nil, err
	}

	updated, err := scanUser(tx.QueryRow(ctx, `
		UPDATE users SET role = $1, visible = FALSE, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns, models.RoleAdmin, user.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}
