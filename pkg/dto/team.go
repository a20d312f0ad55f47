package dto

import "github.com/google/uuid"

// TeamNameRequest is the body of both team creation and rename.
type TeamNameRequest struct {
	Name string `json:"name"`
}

type TeamResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CaptainID   uuid.UUID `json:"captain_id"`
	MemberCount int       `json:"member_count"`
}

type TeamMemberResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsCaptain bool      `json:"is_captain"`
}
