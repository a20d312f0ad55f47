// Package invitation holds the rules of the pending → accepted | rejected
// workflow through which a user joins a team.
package invitation

import (
	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/google/uuid"
)

var (
	ErrNotFound         = apperr.New(apperr.KindNotFound, "INVITATION_NOT_FOUND", "invitation not found")
	ErrNotPending       = apperr.New(apperr.KindGuardViolation, "NOT_PENDING", "invitation has already been answered")
	ErrTargetHasTeam    = apperr.New(apperr.KindGuardViolation, "TARGET_HAS_TEAM", "user already belongs to a team")
	ErrTargetNotVisible = apperr.New(apperr.KindGuardViolation, "TARGET_NOT_VISIBLE", "user is not looking for a team")
	ErrDuplicate        = apperr.New(apperr.KindUniquenessConflict, "DUPLICATE_INVITATION", "user already has a pending invitation from this team")
	ErrTargetNotFound   = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
)

var transitions = map[models.InvitationStatus][]models.InvitationStatus{
	models.InvitationPending: {models.InvitationAccepted, models.InvitationRejected},
}

// CanTransition reports whether an invitation may move from one status to
// another. Accepted and rejected are terminal.
func CanTransition(from, to models.InvitationStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanSend checks a captain inviting target to team. hasPending reports
// whether target already holds a pending invitation from this team.
func CanSend(team *models.Team, senderID uuid.UUID, target *models.User, hasPending bool) error {
	if err := roster.CanManage(team, senderID); err != nil {
		return err
	}
	if target.HasTeam() {
		return ErrTargetHasTeam
	}
	if !target.Visible {
		return ErrTargetNotVisible
	}
	if hasPending {
		return ErrDuplicate
	}
	if team.MemberCount >= roster.MaxMembers {
		return roster.ErrAtCapacity
	}
	return nil
}

// CanAccept re-validates everything that may have changed since the
// invitation was sent. memberCount must be read under the team lock.
func CanAccept(inv *models.Invitation, user *models.User, memberCount int) error {
	if inv.InviteeID != user.ID {
		return ErrNotFound
	}
	if !CanTransition(inv.Status, models.InvitationAccepted) {
		return ErrNotPending
	}
	return roster.CanAddMember(memberCount, user)
}

func CanReject(inv *models.Invitation, userID uuid.UUID) error {
	if inv.InviteeID != userID {
		return ErrNotFound
	}
	if !CanTransition(inv.Status, models.InvitationRejected) {
		return ErrNotPending
	}
	return nil
}

// CanCancel lets the team captain withdraw a pending invitation.
func CanCancel(inv *models.Invitation, team *models.Team, actorID uuid.UUID) error {
	if inv.TeamID != team.ID {
		return ErrNotFound
	}
	if err := roster.CanManage(team, actorID); err != nil {
		return err
	}
	if !inv.IsPending() {
		return ErrNotPending
	}
	return nil
}
