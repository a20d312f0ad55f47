package match

import (
	"github.com/dimitrije/futbol-api/internal/models"
)

const MaxGoals = 99

// Command is a requested transition. Result is only read by SubmitResult and
// ResubmitResult.
type Command struct {
	Intent Intent
	Result *models.Result
}

// Decide reports whether actor may perform cmd on m right now. Identity
// guards are checked before state guards so the actor learns the most
// specific reason. A score is validated only when the state accepts one.
func Decide(m *models.Match, a Actor, cmd Command) error {
	state := Derive(m)

	switch cmd.Intent {
	case Join:
		if a.TeamID == nil {
			return ErrNoTeam
		}
		if a.Role != models.RoleCapitan {
			return ErrNotCaptain
		}
		if *a.TeamID == m.LocalTeamID {
			return ErrSameTeam
		}
		if m.HasVisitor() {
			return ErrAlreadyHasVisitor
		}

	case LeaveAsVisitor:
		if !m.HasVisitor() || !a.captainOf(*m.VisitingTeamID) {
			return ErrNotVisitingCaptain
		}

	case LeaveAsLocal:
		if !a.captainOf(m.LocalTeamID) {
			return ErrNotLocalCaptain
		}
		if !m.HasVisitor() {
			return ErrNoVisitorToLeaveTo
		}

	case SubmitResult, ResubmitResult:
		if a.UserID != m.LocalCreatorID {
			return ErrNotCreator
		}
		if !m.HasVisitor() {
			return ErrNoVisitor
		}
		if _, ok := Target(cmd.Intent, state); !ok {
			return wrongState(cmd.Intent, state)
		}
		if err := validateResult(cmd.Result); err != nil {
			return err
		}

	case ConfirmResult, RejectResult:
		if !m.HasVisitor() || !a.captainOf(*m.VisitingTeamID) {
			return ErrNotVisitingCaptain
		}

	case Delete:
		if a.UserID != m.LocalCreatorID {
			return ErrNotCreator
		}
		if state != StateOpen {
			return ErrNotOpenState
		}

	default:
		return ErrUnknownIntent
	}

	if _, ok := Target(cmd.Intent, state); !ok {
		return wrongState(cmd.Intent, state)
	}
	return nil
}

// Apply validates cmd and returns the match as it is after the transition.
// The input is never modified. For Delete the match is returned unchanged;
// removing it is up to the caller.
func Apply(m models.Match, a Actor, cmd Command) (models.Match, error) {
	if err := Decide(&m, a, cmd); err != nil {
		return m, err
	}

	next := m
	switch cmd.Intent {
	case Join:
		team := *a.TeamID
		creator := a.UserID
		next.VisitingTeamID = &team
		next.VisitingCreatorID = &creator
		next.ResultStatus = models.ResultNotLoaded
		next.Result = nil

	case LeaveAsVisitor:
		clearVisitor(&next)

	case LeaveAsLocal:
		next.LocalTeamID = *m.VisitingTeamID
		if m.VisitingCreatorID != nil {
			next.LocalCreatorID = *m.VisitingCreatorID
		}
		clearVisitor(&next)

	case SubmitResult, ResubmitResult:
		result := *cmd.Result
		next.Result = &result
		next.ResultStatus = models.ResultPendingConfirmation

	case ConfirmResult:
		result := *m.Result
		next.Result = &result
		next.ResultStatus = models.ResultConfirmed

	case RejectResult:
		next.Result = nil
		next.ResultStatus = models.ResultDisputed

	case Delete:
	}
	return next, nil
}

// Allowed lists the intents actor could perform on m now. Result intents are
// probed with a valid score.
func Allowed(m *models.Match, a Actor) []Intent {
	probe := &models.Result{}
	var out []Intent
	for _, intent := range Intents() {
		if Decide(m, a, Command{Intent: intent, Result: probe}) == nil {
			out = append(out, intent)
		}
	}
	return out
}

func clearVisitor(m *models.Match) {
	m.VisitingTeamID = nil
	m.VisitingCreatorID = nil
	m.Result = nil
	m.ResultStatus = models.ResultNotLoaded
}

func validateResult(r *models.Result) error {
	if r == nil {
		return ErrInvalidScore
	}
	if r.GoalsLocal < 0 || r.GoalsLocal > MaxGoals || r.GoalsVisiting < 0 || r.GoalsVisiting > MaxGoals {
		return ErrInvalidScore
	}
	return nil
}
