package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/internal/roster"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Jugador %d", f.counter),
		Role:  models.RoleUsuario,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, role, visible)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Name, user.Role, user.Visible).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// Visible marks the user as looking for a team
func Visible() UserOption {
	return func(u *models.User) {
		u.Visible = true
	}
}

// Admin creates the user with the admin role
func Admin() UserOption {
	return func(u *models.User) {
		u.Role = models.RoleAdmin
	}
}

// CreateTeam creates a team captained by captain, who must not have a team yet
func (f *Fixtures) CreateTeam(t *testing.T, captain *models.User, opts ...TeamOption) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name:        fmt.Sprintf("Equipo %d", f.counter),
		CaptainID:   captain.ID,
		MemberCount: 1,
	}

	for _, opt := range opts {
		opt(team)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name, name_key, captain_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, team.Name, roster.NameKey(team.Name), team.CaptainID).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET team_id = $1, role = $2, visible = FALSE WHERE id = $3
	`, team.ID, models.RoleCapitan, captain.ID)
	if err != nil {
		t.Fatalf("failed to set captain: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	captain.TeamID = &team.ID
	captain.Role = models.RoleCapitan
	captain.Visible = false
	return team
}

// TeamOption configures a test team
type TeamOption func(*models.Team)

// WithTeamName sets the team's name
func WithTeamName(name string) TeamOption {
	return func(t *models.Team) {
		t.Name = name
	}
}

// AddTeamMember puts user on team as a player
func (f *Fixtures) AddTeamMember(t *testing.T, team *models.Team, user *models.User) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		UPDATE users SET team_id = $1, role = $2, visible = FALSE WHERE id = $3
	`, team.ID, models.RoleJugador, user.ID)
	if err != nil {
		t.Fatalf("failed to add team member: %v", err)
	}

	user.TeamID = &team.ID
	user.Role = models.RoleJugador
	user.Visible = false
	team.MemberCount++
}

// CreateVenue creates a test venue
func (f *Fixtures) CreateVenue(t *testing.T) *models.Venue {
	t.Helper()
	f.counter++

	venue := &models.Venue{
		Name:    fmt.Sprintf("Cancha %d", f.counter),
		Address: fmt.Sprintf("Calle %d", f.counter),
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO venues (name, address)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, venue.Name, venue.Address).Scan(&venue.ID, &venue.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create venue: %v", err)
	}

	return venue
}
