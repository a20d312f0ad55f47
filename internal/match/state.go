// Package match holds the lifecycle rules of a scheduled match: which actor
// may do what, in which state, and what the match looks like afterwards.
// Nothing here performs I/O.
package match

import (
	"fmt"

	"github.com/dimitrije/futbol-api/internal/models"
)

type State string

const (
	StateOpen                 State = "open"
	StatePending              State = "pending"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateConfirmed            State = "confirmed"
	StateRejected             State = "rejected"

	// StateRemoved is the target of Delete. Derive never returns it.
	StateRemoved State = "removed"
)

// States lists every state Derive can return, in lifecycle order.
func States() []State {
	return []State{StateOpen, StatePending, StateAwaitingConfirmation, StateConfirmed, StateRejected}
}

func (s State) String() string {
	return string(s)
}

func (s State) IsTerminal() bool {
	return s == StateConfirmed
}

// Derive computes the lifecycle state from the stored fields. It is the only
// place a state is produced; nothing stores it separately.
func Derive(m *models.Match) State {
	if !m.HasVisitor() {
		return StateOpen
	}
	switch m.ResultStatus {
	case models.ResultPendingConfirmation:
		return StateAwaitingConfirmation
	case models.ResultConfirmed:
		return StateConfirmed
	case models.ResultDisputed:
		return StateRejected
	default:
		return StatePending
	}
}

// CheckInvariants reports the first structural inconsistency of m.
func CheckInvariants(m *models.Match) error {
	if !m.HasVisitor() {
		if m.Result != nil || m.ResultStatus != models.ResultNotLoaded {
			return fmt.Errorf("match %s has result data without a visitor", m.ID)
		}
		if m.VisitingCreatorID != nil {
			return fmt.Errorf("match %s has a visiting creator without a visitor", m.ID)
		}
		return nil
	}
	if *m.VisitingTeamID == m.LocalTeamID {
		return fmt.Errorf("match %s has the same team on both sides", m.ID)
	}
	switch m.ResultStatus {
	case models.ResultNotLoaded, models.ResultDisputed:
		if m.Result != nil {
			return fmt.Errorf("match %s keeps a result in status %s", m.ID, m.ResultStatus)
		}
	case models.ResultPendingConfirmation, models.ResultConfirmed:
		if m.Result == nil {
			return fmt.Errorf("match %s has no result in status %s", m.ID, m.ResultStatus)
		}
	default:
		return fmt.Errorf("match %s has unknown result status %q", m.ID, m.ResultStatus)
	}
	return nil
}

func describe(s State) string {
	switch s {
	case StateOpen:
		return "match has no visiting team yet"
	case StatePending:
		return "no result submitted"
	case StateAwaitingConfirmation:
		return "result is awaiting confirmation"
	case StateConfirmed:
		return "result is already confirmed"
	case StateRejected:
		return "result was rejected and must be resubmitted"
	default:
		return "match is " + string(s)
	}
}
