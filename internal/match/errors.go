package match

import (
	"fmt"

	"github.com/dimitrije/futbol-api/internal/apperr"
)

const (
	CodeNoTeam             = "NO_TEAM"
	CodeNotCaptain         = "NOT_CAPTAIN"
	CodeSameTeam           = "SAME_TEAM"
	CodeAlreadyHasVisitor  = "ALREADY_HAS_VISITOR"
	CodeNoVisitorToLeaveTo = "NO_VISITOR_TO_LEAVE_TO"
	CodeNotOpenState       = "NOT_OPEN_STATE"
	CodeNotCreator         = "NOT_CREATOR"
	CodeNoVisitor          = "NO_VISITOR"
	CodeWrongState         = "WRONG_STATE"
	CodeNotVisitingCaptain = "NOT_VISITING_CAPTAIN"
	CodeNotLocalCaptain    = "NOT_LOCAL_CAPTAIN"
	CodeNotParticipant     = "NOT_PARTICIPANT"
	CodeInvalidScore       = "INVALID_SCORE"
	CodeUnknownIntent      = "UNKNOWN_INTENT"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeScheduledInThePast = "SCHEDULED_IN_THE_PAST"
	CodeVenueNotFound      = "VENUE_NOT_FOUND"
)

var (
	ErrNoTeam             = apperr.New(apperr.KindGuardViolation, CodeNoTeam, "you need a team to do this")
	ErrNotCaptain         = apperr.New(apperr.KindGuardViolation, CodeNotCaptain, "only a team captain can do this")
	ErrSameTeam           = apperr.New(apperr.KindGuardViolation, CodeSameTeam, "cannot join: your team is already the local team")
	ErrAlreadyHasVisitor  = apperr.New(apperr.KindGuardViolation, CodeAlreadyHasVisitor, "cannot join: match already has a visitor")
	ErrNoVisitorToLeaveTo = apperr.New(apperr.KindGuardViolation, CodeNoVisitorToLeaveTo, "cannot leave: there is no visiting team to hand the match to, delete it instead")
	ErrNotOpenState       = apperr.New(apperr.KindGuardViolation, CodeNotOpenState, "cannot delete: a visiting team has already joined")
	ErrNotCreator         = apperr.New(apperr.KindGuardViolation, CodeNotCreator, "you are not the creator of this match")
	ErrNoVisitor          = apperr.New(apperr.KindGuardViolation, CodeNoVisitor, "cannot submit result: match has no visiting team")
	ErrWrongState         = apperr.New(apperr.KindGuardViolation, CodeWrongState, "action not allowed in the current match state")
	ErrNotVisitingCaptain = apperr.New(apperr.KindGuardViolation, CodeNotVisitingCaptain, "you are not the visiting captain")
	ErrNotLocalCaptain    = apperr.New(apperr.KindGuardViolation, CodeNotLocalCaptain, "you are not the local captain")
	ErrNotParticipant     = apperr.New(apperr.KindGuardViolation, CodeNotParticipant, "your team does not play in this match")
	ErrInvalidScore       = apperr.New(apperr.KindInvalidInput, CodeInvalidScore, "goals must be between 0 and 99")
	ErrUnknownIntent      = apperr.New(apperr.KindInvalidInput, CodeUnknownIntent, "unknown match action")
	ErrMatchNotFound      = apperr.New(apperr.KindNotFound, CodeMatchNotFound, "match not found")
	ErrScheduledInThePast = apperr.New(apperr.KindInvalidInput, CodeScheduledInThePast, "match must be scheduled in the future")
	ErrVenueNotFound      = apperr.New(apperr.KindNotFound, CodeVenueNotFound, "venue not found")
)

func wrongState(intent Intent, s State) *apperr.Error {
	return apperr.New(apperr.KindGuardViolation, CodeWrongState, fmt.Sprintf("cannot %s: %s", intent.verb(), describe(s)))
}
