package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/futbol-api/internal/invitation"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInvitationService(t *testing.T) (*InvitationService, pgxmock.PgxPoolIface) {
	t.Helper()
	db, mock := newMock(t)
	return NewInvitationService(db), mock
}

type invitationFixture struct {
	captain *models.User
	team    *models.Team
	invitee *models.User
	inv     *models.Invitation
}

func newInvitationFixture(members int) invitationFixture {
	captain := newUser(models.RoleCapitan, nil)
	team := newTeam(captain.ID, members)
	captain.TeamID = &team.ID
	invitee := newUser(models.RoleUsuario, nil)
	invitee.Visible = true
	now := time.Now()
	return invitationFixture{
		captain: captain,
		team:    team,
		invitee: invitee,
		inv: &models.Invitation{
			ID:        uuid.New(),
			TeamID:    team.ID,
			InviterID: captain.ID,
			InviteeID: invitee.ID,
			Status:    models.InvitationPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func TestInvitationService_Send(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)

	mock.ExpectBegin()
	expectLockTeam(mock, f.team)
	expectLockUser(mock, f.invitee)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(f.team.ID, f.invitee.ID, models.InvitationPending).
		WillReturnRows(existsRows(false))
	mock.ExpectQuery(`INSERT INTO invitations`).
		WithArgs(f.team.ID, f.captain.ID, f.invitee.ID, models.InvitationPending).
		WillReturnRows(invitationRows(f.inv))
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(f.captain.ID).
		WillReturnRows(userRows(f.captain))
	mock.ExpectCommit()

	inv, err := svc.Send(context.Background(), f.team.ID, f.captain.ID, f.invitee.ID)

	require.NoError(t, err)
	assert.Equal(t, f.inv.ID, inv.ID)
	assert.Equal(t, f.team.Name, inv.Team.Name)
	assert.Equal(t, f.captain.Name, inv.Inviter.Name)
	assert.Equal(t, f.invitee.Email, inv.Invitee.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Send_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		members    int
		mutate     func(f *invitationFixture)
		hasPending bool
		want       error
	}{
		{
			name:    "target has a team",
			members: 2,
			mutate:  func(f *invitationFixture) { other := uuid.New(); f.invitee.TeamID = &other },
			want:    invitation.ErrTargetHasTeam,
		},
		{
			name:    "target hidden",
			members: 2,
			mutate:  func(f *invitationFixture) { f.invitee.Visible = false },
			want:    invitation.ErrTargetNotVisible,
		},
		{
			name:       "already invited",
			members:    2,
			mutate:     func(f *invitationFixture) {},
			hasPending: true,
			want:       invitation.ErrDuplicate,
		},
		{
			name:    "team full",
			members: roster.MaxMembers,
			mutate:  func(f *invitationFixture) {},
			want:    roster.ErrAtCapacity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := setupInvitationService(t)
			f := newInvitationFixture(tt.members)
			tt.mutate(&f)

			mock.ExpectBegin()
			expectLockTeam(mock, f.team)
			expectLockUser(mock, f.invitee)
			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(f.team.ID, f.invitee.ID, models.InvitationPending).
				WillReturnRows(existsRows(tt.hasPending))
			mock.ExpectRollback()

			_, err := svc.Send(context.Background(), f.team.ID, f.captain.ID, f.invitee.ID)

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationService_Send_NotCaptain(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)

	mock.ExpectBegin()
	expectLockTeam(mock, f.team)
	expectLockUser(mock, f.invitee)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(f.team.ID, f.invitee.ID, models.InvitationPending).
		WillReturnRows(existsRows(false))
	mock.ExpectRollback()

	_, err := svc.Send(context.Background(), f.team.ID, f.invitee.ID, f.invitee.ID)

	assert.ErrorIs(t, err, roster.ErrNotCaptain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Send_ConcurrentDuplicate(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(1)

	mock.ExpectBegin()
	expectLockTeam(mock, f.team)
	expectLockUser(mock, f.invitee)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(f.team.ID, f.invitee.ID, models.InvitationPending).
		WillReturnRows(existsRows(false))
	mock.ExpectQuery(`INSERT INTO invitations`).
		WithArgs(f.team.ID, f.captain.ID, f.invitee.ID, models.InvitationPending).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: pendingInvitationConstraint})
	mock.ExpectRollback()

	_, err := svc.Send(context.Background(), f.team.ID, f.captain.ID, f.invitee.ID)

	assert.ErrorIs(t, err, invitation.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectAcceptLocks(mock pgxmock.PgxPoolIface, f invitationFixture) {
	mock.ExpectQuery(`SELECT team_id FROM invitations WHERE id = \$1`).
		WithArgs(f.inv.ID).
		WillReturnRows(pgxmock.NewRows([]string{"team_id"}).AddRow(f.team.ID))
	mock.ExpectBegin()
	expectLockTeam(mock, f.team)
	expectLockUser(mock, f.invitee)
	mock.ExpectQuery(`SELECT .+ FROM invitations i WHERE i.id = \$1 FOR UPDATE`).
		WithArgs(f.inv.ID).
		WillReturnRows(invitationRows(f.inv))
}

func TestInvitationService_Accept_SupersedesOtherInvitations(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(3)

	expectAcceptLocks(mock, f)
	mock.ExpectExec(`UPDATE invitations SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.InvitationAccepted, f.inv.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET team_id`).
		WithArgs(f.team.ID, models.RoleJugador, f.invitee.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE invitations SET status .+ WHERE invitee_id = \$2 AND status = \$3`).
		WithArgs(models.InvitationRejected, f.invitee.ID, models.InvitationPending).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))
	mock.ExpectCommit()

	inv, err := svc.Accept(context.Background(), f.inv.ID, f.invitee.ID)

	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, inv.Status)
	assert.Equal(t, 4, inv.Team.MemberCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Accept_TeamFilledUp(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(roster.MaxMembers)

	expectAcceptLocks(mock, f)
	mock.ExpectRollback()

	_, err := svc.Accept(context.Background(), f.inv.ID, f.invitee.ID)

	assert.ErrorIs(t, err, roster.ErrAtCapacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Accept_AlreadyAnswered(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)
	f.inv.Status = models.InvitationRejected

	expectAcceptLocks(mock, f)
	mock.ExpectRollback()

	_, err := svc.Accept(context.Background(), f.inv.ID, f.invitee.ID)

	assert.ErrorIs(t, err, invitation.ErrNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Accept_Unknown(t *testing.T) {
	svc, mock := setupInvitationService(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT team_id FROM invitations WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Accept(context.Background(), id, uuid.New())

	assert.ErrorIs(t, err, invitation.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Reject(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM invitations i WHERE i.id = \$1 FOR UPDATE`).
		WithArgs(f.inv.ID).
		WillReturnRows(invitationRows(f.inv))
	mock.ExpectExec(`UPDATE invitations SET status`).
		WithArgs(models.InvitationRejected, f.inv.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	inv, err := svc.Reject(context.Background(), f.inv.ID, f.invitee.ID)

	require.NoError(t, err)
	assert.Equal(t, models.InvitationRejected, inv.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Reject_SomeoneElses(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM invitations i WHERE i.id = \$1 FOR UPDATE`).
		WithArgs(f.inv.ID).
		WillReturnRows(invitationRows(f.inv))
	mock.ExpectRollback()

	_, err := svc.Reject(context.Background(), f.inv.ID, uuid.New())

	assert.ErrorIs(t, err, invitation.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_Cancel(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)

	mock.ExpectBegin()
	expectLockTeam(mock, f.team)
	mock.ExpectQuery(`SELECT .+ FROM invitations i WHERE i.id = \$1 FOR UPDATE`).
		WithArgs(f.inv.ID).
		WillReturnRows(invitationRows(f.inv))
	mock.ExpectExec(`DELETE FROM invitations WHERE id = \$1`).
		WithArgs(f.inv.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := svc.Cancel(context.Background(), f.team.ID, f.inv.ID, f.captain.ID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_ListReceived(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)

	rows := pgxmock.NewRows(append(append([]string{}, invitationCols...), "team_name", "captain_id", "inviter_name")).
		AddRow(f.inv.ID, f.inv.TeamID, f.inv.InviterID, f.inv.InviteeID, f.inv.Status, f.inv.CreatedAt, f.inv.UpdatedAt,
			f.team.Name, f.captain.ID, f.captain.Name)

	mock.ExpectQuery(`SELECT .+ FROM invitations i JOIN teams t`).
		WithArgs(f.invitee.ID, models.InvitationPending).
		WillReturnRows(rows)

	invitations, err := svc.ListReceived(context.Background(), f.invitee.ID)

	require.NoError(t, err)
	require.Len(t, invitations, 1)
	assert.Equal(t, f.team.Name, invitations[0].Team.Name)
	assert.Equal(t, f.team.ID, invitations[0].Team.ID)
	assert.Equal(t, f.captain.Name, invitations[0].Inviter.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationService_ListTeamPending_NotCaptain(t *testing.T) {
	svc, mock := setupInvitationService(t)
	f := newInvitationFixture(2)

	mock.ExpectQuery(`SELECT captain_id FROM teams WHERE id = \$1`).
		WithArgs(f.team.ID).
		WillReturnRows(pgxmock.NewRows([]string{"captain_id"}).AddRow(f.captain.ID))

	_, err := svc.ListTeamPending(context.Background(), f.team.ID, f.invitee.ID)

	assert.ErrorIs(t, err, roster.ErrNotCaptain)
	assert.NoError(t, mock.ExpectationsWereMet())
}
