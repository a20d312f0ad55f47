package dto

import "github.com/google/uuid"

type UserResponse struct {
	ID      uuid.UUID  `json:"id"`
	Email   string     `json:"email,omitempty"`
	Name    string     `json:"name"`
	Role    string     `json:"role,omitempty"`
	Visible bool       `json:"visible"`
	TeamID  *uuid.UUID `json:"team_id,omitempty"`
}

type SetVisibilityRequest struct {
	Visible *bool `json:"visible"`
}
