package models

import (
	"time"

	"github.com/google/uuid"
)

// ResultStatus is the persisted result column. The lifecycle state is derived
// from it together with the presence of a visiting team.
type ResultStatus string

const (
	ResultNotLoaded           ResultStatus = "sin_cargar"
	ResultPendingConfirmation ResultStatus = "confirmacion_pendiente"
	ResultConfirmed           ResultStatus = "confirmado"
	ResultDisputed            ResultStatus = "indefinido"
)

type Result struct {
	GoalsLocal    int `json:"goles_local"`
	GoalsVisiting int `json:"goles_visitante"`
}

type Match struct {
	ID                uuid.UUID    `json:"id"`
	LocalTeamID       uuid.UUID    `json:"local_team_id"`
	VisitingTeamID    *uuid.UUID   `json:"visiting_team_id,omitempty"`
	VenueID           uuid.UUID    `json:"venue_id"`
	ScheduledAt       time.Time    `json:"scheduled_at"`
	ResultStatus      ResultStatus `json:"result_status"`
	Result            *Result      `json:"result,omitempty"`
	LocalCreatorID    uuid.UUID    `json:"local_creator_id"`
	VisitingCreatorID *uuid.UUID   `json:"visiting_creator_id,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (m *Match) HasVisitor() bool {
	return m.VisitingTeamID != nil
}

// Involves reports whether teamID plays in the match on either side.
func (m *Match) Involves(teamID uuid.UUID) bool {
	return m.LocalTeamID == teamID || (m.VisitingTeamID != nil && *m.VisitingTeamID == teamID)
}

// MatchScope selects which matches a listing returns.
type MatchScope string

const (
	ScopeAll  MatchScope = "all"
	ScopeMine MatchScope = "mine"
)

func (s MatchScope) Valid() bool {
	return s == ScopeAll || s == ScopeMine
}
