package match

import (
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
)

type Intent int

const (
	Join Intent = iota
	LeaveAsVisitor
	LeaveAsLocal
	SubmitResult
	ResubmitResult
	ConfirmResult
	RejectResult
	Delete
)

func Intents() []Intent {
	return []Intent{Join, LeaveAsVisitor, LeaveAsLocal, SubmitResult, ResubmitResult, ConfirmResult, RejectResult, Delete}
}

func (i Intent) String() string {
	switch i {
	case Join:
		return "join"
	case LeaveAsVisitor:
		return "leave_as_visitor"
	case LeaveAsLocal:
		return "leave_as_local"
	case SubmitResult:
		return "submit_result"
	case ResubmitResult:
		return "resubmit_result"
	case ConfirmResult:
		return "confirm_result"
	case RejectResult:
		return "reject_result"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

func (i Intent) verb() string {
	switch i {
	case Join:
		return "join"
	case LeaveAsVisitor, LeaveAsLocal:
		return "leave"
	case SubmitResult:
		return "submit result"
	case ResubmitResult:
		return "resubmit result"
	case ConfirmResult:
		return "confirm"
	case RejectResult:
		return "reject"
	case Delete:
		return "delete"
	default:
		return "act"
	}
}

// transitions maps each intent to the states it may start from and the
// state it leads to.
var transitions = map[Intent]map[State]State{
	Join:           {StateOpen: StatePending},
	LeaveAsVisitor: {StatePending: StateOpen},
	LeaveAsLocal: {
		StatePending:              StateOpen,
		StateAwaitingConfirmation: StateOpen,
		StateRejected:             StateOpen,
	},
	SubmitResult:   {StatePending: StateAwaitingConfirmation},
	ResubmitResult: {StateRejected: StateAwaitingConfirmation},
	ConfirmResult:  {StateAwaitingConfirmation: StateConfirmed},
	RejectResult:   {StateAwaitingConfirmation: StateRejected},
	Delete:         {StateOpen: StateRemoved},
}

// Target returns the state intent leads to from, if the transition exists.
func Target(intent Intent, from State) (State, bool) {
	to, ok := transitions[intent][from]
	return to, ok
}

// Actor is whoever requests a transition, seen through the fields the rules
// care about.
type Actor struct {
	UserID uuid.UUID
	Role   models.Role
	TeamID *uuid.UUID
}

func ActorFrom(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role, TeamID: u.TeamID}
}

func (a Actor) captainOf(teamID uuid.UUID) bool {
	return a.Role == models.RoleCapitan && a.TeamID != nil && *a.TeamID == teamID
}

// LeaveIntentFor resolves the single "leave" request into the side the actor
// is leaving from.
func LeaveIntentFor(m *models.Match, a Actor) (Intent, error) {
	if a.TeamID == nil {
		return 0, ErrNoTeam
	}
	if !m.Involves(*a.TeamID) {
		return 0, ErrNotParticipant
	}
	if *a.TeamID == m.LocalTeamID {
		return LeaveAsLocal, nil
	}
	return LeaveAsVisitor, nil
}

// ResultIntentFor resolves a result submission into a first submission or a
// resubmission after rejection.
func ResultIntentFor(m *models.Match) Intent {
	if Derive(m) == StateRejected {
		return ResubmitResult
	}
	return SubmitResult
}
