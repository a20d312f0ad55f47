package dto

import (
	"time"

	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
)

type CreateMatchRequest struct {
	VenueID     uuid.UUID `json:"venue_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// SubmitResultRequest uses pointers so a missing score is told apart from a
// zero.
type SubmitResultRequest struct {
	GoalsLocal    *int `json:"goles_local"`
	GoalsVisiting *int `json:"goles_visitante"`
}

type MatchResponse struct {
	ID                uuid.UUID      `json:"id"`
	LocalTeamID       uuid.UUID      `json:"local_team_id"`
	VisitingTeamID    *uuid.UUID     `json:"visiting_team_id,omitempty"`
	VenueID           uuid.UUID      `json:"venue_id"`
	ScheduledAt       time.Time      `json:"scheduled_at"`
	ResultStatus      string         `json:"result_status"`
	State             string         `json:"state"`
	Result            *models.Result `json:"result,omitempty"`
	LocalCreatorID    uuid.UUID      `json:"local_creator_id"`
	VisitingCreatorID *uuid.UUID     `json:"visiting_creator_id,omitempty"`
	AllowedActions    []string       `json:"allowed_actions,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ToModel rebuilds the match from its wire form. State and AllowedActions
// are informational and dropped; consumers derive them again.
func (r MatchResponse) ToModel() models.Match {
	return models.Match{
		ID:                r.ID,
		LocalTeamID:       r.LocalTeamID,
		VisitingTeamID:    r.VisitingTeamID,
		VenueID:           r.VenueID,
		ScheduledAt:       r.ScheduledAt,
		ResultStatus:      models.ResultStatus(r.ResultStatus),
		Result:            r.Result,
		LocalCreatorID:    r.LocalCreatorID,
		VisitingCreatorID: r.VisitingCreatorID,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
