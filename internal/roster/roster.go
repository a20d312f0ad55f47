// Package roster holds the team membership rules: name uniqueness keys,
// capacity, who may add or remove whom, and the role a user ends up with.
package roster

import (
	"strings"
	"unicode/utf8"

	"github.com/dimitrije/futbol-api/internal/apperr"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

const (
	MaxMembers    = 5
	MinNameLength = 3
	MaxNameLength = 75
)

var (
	ErrInvalidName         = apperr.New(apperr.KindInvalidInput, "INVALID_TEAM_NAME", "team name must be between 3 and 75 characters")
	ErrDuplicateName       = apperr.New(apperr.KindUniquenessConflict, "DUPLICATE_NAME", "a team with this name already exists")
	ErrAlreadyInTeam       = apperr.New(apperr.KindGuardViolation, "ALREADY_IN_TEAM", "user already belongs to a team")
	ErrAtCapacity          = apperr.New(apperr.KindCapacityExceeded, "AT_CAPACITY", "team is at capacity")
	ErrNotCaptain          = apperr.New(apperr.KindGuardViolation, "NOT_CAPTAIN", "only the team captain can do this")
	ErrCannotRemoveCaptain = apperr.New(apperr.KindGuardViolation, "CANNOT_REMOVE_CAPTAIN", "the captain cannot leave the team, delete it instead")
	ErrNotMember           = apperr.New(apperr.KindNotFound, "NOT_MEMBER", "user is not a member of this team")
	ErrTeamNotFound        = apperr.New(apperr.KindNotFound, "TEAM_NOT_FOUND", "team not found")
	ErrAdminCannotPlay     = apperr.New(apperr.KindGuardViolation, "ADMIN_CANNOT_PLAY", "administrators cannot belong to a team")
	ErrVisibleWithTeam     = apperr.New(apperr.KindGuardViolation, "VISIBLE_WITH_TEAM", "only players without a team can be visible")
	ErrPendingInvitations  = apperr.New(apperr.KindGuardViolation, "PENDING_INVITATIONS", "resolve your pending invitations before hiding your profile")
)

// CleanName collapses runs of whitespace and trims the ends.
func CleanName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// NameKey is the form two names are compared in: whitespace collapsed and
// Unicode case folded, so "Los  Halcones" and "los halcones" collide.
func NameKey(name string) string {
	return cases.Fold().String(CleanName(name))
}

// ValidateName returns the cleaned display name or ErrInvalidName.
func ValidateName(name string) (string, error) {
	cleaned := CleanName(name)
	n := utf8.RuneCountInString(cleaned)
	if n < MinNameLength || n > MaxNameLength {
		return "", ErrInvalidName
	}
	return cleaned, nil
}

func CanCreateTeam(creator *models.User) error {
	if creator.Role == models.RoleAdmin {
		return ErrAdminCannotPlay
	}
	if creator.HasTeam() {
		return ErrAlreadyInTeam
	}
	return nil
}

// CanManage reports whether actorID may rename, delete or invite on behalf
// of team.
func CanManage(team *models.Team, actorID uuid.UUID) error {
	if team.CaptainID != actorID {
		return ErrNotCaptain
	}
	return nil
}

// CanAddMember is checked at the moment a user joins, with memberCount read
// under the same lock that protects the insert.
func CanAddMember(memberCount int, user *models.User) error {
	if user.Role == models.RoleAdmin {
		return ErrAdminCannotPlay
	}
	if user.HasTeam() {
		return ErrAlreadyInTeam
	}
	if memberCount >= MaxMembers {
		return ErrAtCapacity
	}
	return nil
}

// CanRemoveMember allows the captain to remove a member and a member to
// remove themselves. The captain is never removable.
func CanRemoveMember(team *models.Team, actorID uuid.UUID, target *models.User) error {
	if !target.InTeam(team.ID) {
		return ErrNotMember
	}
	if target.ID == team.CaptainID {
		return ErrCannotRemoveCaptain
	}
	if actorID != team.CaptainID && actorID != target.ID {
		return ErrNotCaptain
	}
	return nil
}

func RoleAfterCreate() models.Role {
	return models.RoleCapitan
}

func RoleAfterJoin() models.Role {
	return models.RoleJugador
}

func RoleAfterLeave() models.Role {
	return models.RoleUsuario
}

// CanSetVisibility guards the "looking for a team" flag. pendingReceived is
// the number of pending invitations addressed to the user.
func CanSetVisibility(user *models.User, visible bool, pendingReceived int) error {
	if visible {
		if user.HasTeam() {
			return ErrVisibleWithTeam
		}
		if user.Role == models.RoleAdmin {
			return ErrAdminCannotPlay
		}
		return nil
	}
	if pendingReceived > 0 {
		return ErrPendingInvitations
	}
	return nil
}
