package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/invitation"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const pendingInvitationConstraint = "invitations_pending_unique"

const invitationColumns = `i.id, i.team_id, i.inviter_id, i.invitee_id, i.status, i.created_at, i.updated_at`

type InvitationService struct {
	db *database.DB
}

func NewInvitationService(db *database.DB) *InvitationService {
	return &InvitationService{db: db}
}

func scanInvitation(row pgx.Row, extra ...any) (*models.Invitation, error) {
	var inv models.Invitation
	dest := append([]any{&inv.ID, &inv.TeamID, &inv.InviterID, &inv.InviteeID, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Send invites a visible, teamless user to the captain's team. The returned
// invitation carries the team, the inviter and the invitee so the caller can
// notify the invitee.
func (s *InvitationService) Send(ctx context.Context, teamID, captainID, inviteeID uuid.UUID) (*models.Invitation, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	team, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return nil, err
	}

	invitee, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, inviteeID))
	if err != nil {
		return nil, notFound(err, invitation.ErrTargetNotFound, "invitee")
	}

	var hasPending bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM invitations WHERE team_id = $1 AND invitee_id = $2 AND status = $3)
	`, teamID, inviteeID, models.InvitationPending).Scan(&hasPending); err != nil {
		return nil, fmt.Errorf("failed to check pending invitations: %w", err)
	}

	if err := invitation.CanSend(team, captainID, invitee, hasPending); err != nil {
		return nil, err
	}

	inv, err := scanInvitation(tx.QueryRow(ctx, `
		INSERT INTO invitations AS i (team_id, inviter_id, invitee_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+invitationColumns, teamID, captainID, inviteeID, models.InvitationPending))
	if err != nil {
		if database.IsUniqueViolation(err, pendingInvitationConstraint) {
			return nil, invitation.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	inviter, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, captainID))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "inviter")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	inv.Team = team
	inv.Inviter = inviter
	inv.Invitee = invitee
	return inv, nil
}

// Accept moves the invitee into the team. Capacity and membership are
// re-checked with the team row locked, and every other pending invitation
// addressed to the invitee is rejected in the same transaction.
func (s *InvitationService) Accept(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	var teamID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT team_id FROM invitations WHERE id = $1`, invitationID).Scan(&teamID)
	if err != nil {
		return nil, notFound(err, invitation.ErrNotFound, "invitation")
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	team, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		if errors.Is(err, roster.ErrTeamNotFound) {
			return nil, invitation.ErrNotFound
		}
		return nil, err
	}

	user, err := lockUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	inv, err := scanInvitation(tx.QueryRow(ctx, `
		SELECT `+invitationColumns+` FROM invitations i WHERE i.id = $1 FOR UPDATE
	`, invitationID))
	if err != nil {
		return nil, notFound(err, invitation.ErrNotFound, "invitation")
	}

	if err := invitation.CanAccept(inv, user, team.MemberCount); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE invitations SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.InvitationAccepted, invitationID); err != nil {
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET team_id = $1, role = $2, visible = FALSE, updated_at = NOW()
		WHERE id = $3
	`, teamID, roster.RoleAfterJoin(), userID); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	if err := rejectPendingFor(ctx, tx, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	inv.Status = models.InvitationAccepted
	team.MemberCount++
	inv.Team = team
	return inv, nil
}

func (s *InvitationService) Reject(ctx context.Context, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inv, err := scanInvitation(tx.QueryRow(ctx, `
		SELECT `+invitationColumns+` FROM invitations i WHERE i.id = $1 FOR UPDATE
	`, invitationID))
	if err != nil {
		return nil, notFound(err, invitation.ErrNotFound, "invitation")
	}

	if err := invitation.CanReject(inv, userID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE invitations SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.InvitationRejected, invitationID); err != nil {
		return nil, fmt.Errorf("failed to reject invitation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	inv.Status = models.InvitationRejected
	return inv, nil
}

// Cancel lets the captain withdraw a pending invitation. Withdrawn
// invitations are deleted rather than kept as rejected.
func (s *InvitationService) Cancel(ctx context.Context, teamID, invitationID, captainID uuid.UUID) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	team, err := lockTeam(ctx, tx, teamID)
	if err != nil {
		return err
	}

	inv, err := scanInvitation(tx.QueryRow(ctx, `
		SELECT `+invitationColumns+` FROM invitations i WHERE i.id = $1 FOR UPDATE
	`, invitationID))
	if err != nil {
		return notFound(err, invitation.ErrNotFound, "invitation")
	}

	if err := invitation.CanCancel(inv, team, captainID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, invitationID); err != nil {
		return fmt.Errorf("failed to cancel invitation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListReceived returns the pending invitations addressed to userID, newest
// first, with the inviting team attached.
func (s *InvitationService) ListReceived(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+invitationColumns+`, t.name, t.captain_id, u.name
		FROM invitations i
		JOIN teams t ON t.id = i.team_id
		JOIN users u ON u.id = i.inviter_id
		WHERE i.invitee_id = $1 AND i.status = $2
		ORDER BY i.created_at DESC
	`, userID, models.InvitationPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := []models.Invitation{}
	for rows.Next() {
		team := models.Team{}
		inviter := models.User{}
		inv, err := scanInvitation(rows, &team.Name, &team.CaptainID, &inviter.Name)
		if err != nil {
			return nil, err
		}
		team.ID = inv.TeamID
		inviter.ID = inv.InviterID
		inv.Team = &team
		inv.Inviter = &inviter
		invitations = append(invitations, *inv)
	}
	return invitations, rows.Err()
}

// ListTeamPending returns the invitations a team is still waiting on. Only
// the captain may see them.
func (s *InvitationService) ListTeamPending(ctx context.Context, teamID, captainID uuid.UUID) ([]models.Invitation, error) {
	var actualCaptain uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT captain_id FROM teams WHERE id = $1`, teamID).Scan(&actualCaptain)
	if err != nil {
		return nil, notFound(err, roster.ErrTeamNotFound, "team")
	}
	if err := roster.CanManage(&models.Team{ID: teamID, CaptainID: actualCaptain}, captainID); err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+invitationColumns+`, u.name, u.email
		FROM invitations i
		JOIN users u ON u.id = i.invitee_id
		WHERE i.team_id = $1 AND i.status = $2
		ORDER BY i.created_at DESC
	`, teamID, models.InvitationPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	invitations := []models.Invitation{}
	for rows.Next() {
		invitee := models.User{}
		inv, err := scanInvitation(rows, &invitee.Name, &invitee.Email)
		if err != nil {
			return nil, err
		}
		invitee.ID = inv.InviteeID
		inv.Invitee = &invitee
		invitations = append(invitations, *inv)
	}
	return invitations, rows.Err()
}
