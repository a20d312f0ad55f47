package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUsuario Role = "usuario"
	RoleJugador Role = "jugador"
	RoleCapitan Role = "capitan"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	Visible   bool       `json:"visible"`
	TeamID    *uuid.UUID `json:"team_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) HasTeam() bool {
	return u.TeamID != nil
}

func (u *User) IsCaptain() bool {
	return u.Role == RoleCapitan
}

// InTeam reports whether the user belongs to teamID.
func (u *User) InTeam(teamID uuid.UUID) bool {
	return u.TeamID != nil && *u.TeamID == teamID
}
