package services

import (
	"testing"
	"time"

	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var (
	userCols  = []string{"id", "email", "name", "role", "visible", "team_id", "created_at", "updated_at"}
	teamCols  = []string{"id", "name", "captain_id", "created_at", "updated_at"}
	matchCols = []string{
		"id", "local_team_id", "visiting_team_id", "venue_id", "scheduled_at", "result_status",
		"goals_local", "goals_visiting", "local_creator_id", "visiting_creator_id", "created_at", "updated_at",
	}
	invitationCols = []string{"id", "team_id", "inviter_id", "invitee_id", "status", "created_at", "updated_at"}
)

func newMock(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return &database.DB{Pool: mock}, mock
}

func newUser(role models.Role, teamID *uuid.UUID) *models.User {
	now := time.Now()
	id := uuid.New()
	return &models.User{
		ID:        id,
		Email:     id.String()[:8] + "@example.com",
		Name:      "User " + id.String()[:4],
		Role:      role,
		TeamID:    teamID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// nullable turns a nil pointer into an untyped nil so the mock scans it as
// SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}

func userRows(users ...*models.User) *pgxmock.Rows {
	rows := pgxmock.NewRows(userCols)
	for _, u := range users {
		rows.AddRow(u.ID, u.Email, u.Name, u.Role, u.Visible, nullable(u.TeamID), u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func teamRows(t *models.Team) *pgxmock.Rows {
	return pgxmock.NewRows(teamCols).AddRow(t.ID, t.Name, t.CaptainID, t.CreatedAt, t.UpdatedAt)
}

func countRows(n int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"count"}).AddRow(n)
}

func existsRows(b bool) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"exists"}).AddRow(b)
}

func matchRows(matches ...*models.Match) *pgxmock.Rows {
	rows := pgxmock.NewRows(matchCols)
	for _, m := range matches {
		local, visiting := goals(m.Result)
		rows.AddRow(
			m.ID, m.LocalTeamID, nullable(m.VisitingTeamID), m.VenueID, m.ScheduledAt, m.ResultStatus,
			nullable(local), nullable(visiting), m.LocalCreatorID, nullable(m.VisitingCreatorID), m.CreatedAt, m.UpdatedAt,
		)
	}
	return rows
}

func invitationRows(inv *models.Invitation) *pgxmock.Rows {
	return pgxmock.NewRows(invitationCols).
		AddRow(inv.ID, inv.TeamID, inv.InviterID, inv.InviteeID, inv.Status, inv.CreatedAt, inv.UpdatedAt)
}

// expectLockTeam mirrors lockTeam: the row lock followed by the member count.
func expectLockTeam(mock pgxmock.PgxPoolIface, team *models.Team) {
	mock.ExpectQuery(`SELECT .+ FROM teams WHERE id = \$1 FOR UPDATE`).
		WithArgs(team.ID).
		WillReturnRows(teamRows(team))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE team_id = \$1`).
		WithArgs(team.ID).
		WillReturnRows(countRows(team.MemberCount))
}

func expectLockUser(mock pgxmock.PgxPoolIface, u *models.User) {
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1 FOR UPDATE`).
		WithArgs(u.ID).
		WillReturnRows(userRows(u))
}
