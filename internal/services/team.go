package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/google/uuid"
)

const teamNameConstraint = "teams_name_key_unique"

type TeamService struct {
	db *database.DB
}

func NewTeamService(db *database.DB) *TeamService {
	return &TeamService{db: db}
}

// Create makes creatorID the captain and only member of a new team.
func (s *TeamService) Create(ctx context.Context, creatorID uuid.UUID, name string) (*models.Team, error) {
	name, err := roster.ValidateName(name)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	creator, err := lockUser(ctx, tx, creatorID)
	if err != nil {
		return nil, err
	}
	if err := roster.CanCreateTeam(creator); err != nil {
		return nil, err
	}

	team, err := scanTeam(tx.QueryRow(ctx, `
		INSERT INTO teams (name, name_key, captain_id)
		VALUES ($1, $2, $3)
		RETURNING `+teamColumns, name, roster.NameKey(name), creatorID))
	if err != nil {
		if database.IsUniqueViolation(err, teamNameConstraint) {
			return nil, roster.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	team.MemberCount = 1

	_, err = tx.Exec(ctx, `
		UPDATE users SET team_id = $1, role = $2, visible = FALSE, updated_at = NOW()
		WHERE id = $3
	`, team.ID, roster.RoleAfterCreate(), creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to make creator captain: %w", err)
	}

	if err := rejectPendingFor(ctx, tx, creatorID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return team, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.Pool.QueryRow(ctx, `
		SELECT t.id, t.name, t.captain_id, t.created_at, t.updated_at,
		       (SELECT COUNT(*) FROM users u WHERE u.team_id = t.id)
		FROM teams t WHERE t.id = $1
	`, teamID).Scan(&team.ID, &team.Name, &team.CaptainID, &team.CreatedAt, &team.UpdatedAt, &team.MemberCount)
	if err != nil {
		return nil, notFound(err, roster.ErrTeamNotFound, "team")
	}
	return &team, nil
}

// Rename changes the display name. A team may be renamed to a variant of
// its own name since the key only collides with other rows.
func (s *TeamService) Rename(ctx context.Context, teamID, actorID uuid.UUID, name string) (*models.Team, error) {
	name, err := roster.ValidateName(name)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	team, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}
	if err := roster.CanManage(team, actorID); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		UPDATE teams SET name = $1, name_key = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING name, updated_at
	`, name, roster.NameKey(name), teamID).Scan(&team.Name, &team.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, teamNameConstraint) {
			return nil, roster.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to rename team: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return team, nil
}

// Delete dissolves the team. Its members become teamless, its invitations
// go with it, and its matches are resolved the same way leaving them would:
// open matches it created disappear, matches with a visitor are handed to
// the visitor, and matches it joined reopen. Confirmed matches involving it
// are deleted.
func (s *TeamService) Delete(ctx context.Context, teamID, actorID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	team, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return err
	}
	if err := roster.CanManage(team, actorID); err != nil {
		return err
	}

	steps := []struct {
		what string
		sql  string
		args []any
	}{
		{
			"delete confirmed matches",
			`DELETE FROM matches WHERE result_status = $1 AND (local_team_id = $2 OR visiting_team_id = $2)`,
			[]any{models.ResultConfirmed, teamID},
		},
		{
			"delete open matches",
			`DELETE FROM matches WHERE local_team_id = $1 AND visiting_team_id IS NULL`,
			[]any{teamID},
		},
		{
			"hand matches to visitors",
			`UPDATE matches SET local_team_id = visiting_team_id, local_creator_id = visiting_creator_id,
				visiting_team_id = NULL, visiting_creator_id = NULL,
				result_status = $1, goals_local = NULL, goals_visiting = NULL, updated_at = NOW()
			WHERE local_team_id = $2`,
			[]any{models.ResultNotLoaded, teamID},
		},
		{
			"reopen joined matches",
			`UPDATE matches SET visiting_team_id = NULL, visiting_creator_id = NULL,
				result_status = $1, goals_local = NULL, goals_visiting = NULL, updated_at = NOW()
			WHERE visiting_team_id = $2`,
			[]any{models.ResultNotLoaded, teamID},
		},
		{
			"release members",
			`UPDATE users SET team_id = NULL, role = $1, updated_at = NOW() WHERE team_id = $2`,
			[]any{roster.RoleAfterLeave(), teamID},
		},
		{
			"delete team",
			`DELETE FROM teams WHERE id = $1`,
			[]any{teamID},
		},
	}

	for _, step := range steps {
		if _, err := tx.Exec(ctx, step.sql, step.args...); err != nil {
			return fmt.Errorf("failed to %s: %w", step.what, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *TeamService) GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT u.id, u.team_id, u.name, u.email, u.role, u.id = t.captain_id
		FROM users u
		JOIN teams t ON t.id = u.team_id
		WHERE u.team_id = $1
		ORDER BY u.id = t.captain_id DESC, u.name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.UserID, &m.TeamID, &m.Name, &m.Email, &m.Role, &m.IsCaptain); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// RemoveMember takes memberID out of the team. The captain may remove
// anyone but themselves; a member may remove only themselves.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, actorID, memberID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	team, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return err
	}

	member, err := lockUser(ctx, tx, memberID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return roster.ErrNotMember
		}
		return err
	}

	if err := roster.CanRemoveMember(team, actorID, member); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET team_id = NULL, role = $1, updated_at = NOW()
		WHERE id = $2
	`, roster.RoleAfterLeave(), memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *TeamService) Leave(ctx context.Context, teamID, userID uuid.UUID) error {
	return s.RemoveMember(ctx, teamID, userID, userID)
}
