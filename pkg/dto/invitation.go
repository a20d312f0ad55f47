package dto

import "github.com/google/uuid"

type SendInvitationRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type InvitationResponse struct {
	ID        uuid.UUID     `json:"id"`
	TeamID    uuid.UUID     `json:"team_id"`
	InviterID uuid.UUID     `json:"inviter_id"`
	InviteeID uuid.UUID     `json:"invitee_id"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"created_at"`
	Team      *TeamResponse `json:"team,omitempty"`
	Inviter   *UserResponse `json:"inviter,omitempty"`
	Invitee   *UserResponse `json:"invitee,omitempty"`
}
