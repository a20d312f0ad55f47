package handlers

import (
	"time"

	"github.com/dimitrije/futbol-api/internal/match"
	"github.com/dimitrije/futbol-api/internal/models"
	"github.com/dimitrije/futbol-api/pkg/dto"
)

func toMatchResponse(m *models.Match, allowed []match.Intent) dto.MatchResponse {
	resp := dto.MatchResponse{
		ID:                m.ID,
		LocalTeamID:       m.LocalTeamID,
		VisitingTeamID:    m.VisitingTeamID,
		VenueID:           m.VenueID,
		ScheduledAt:       m.ScheduledAt,
		ResultStatus:      string(m.ResultStatus),
		State:             match.Derive(m).String(),
		Result:            m.Result,
		LocalCreatorID:    m.LocalCreatorID,
		VisitingCreatorID: m.VisitingCreatorID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, intent := range allowed {
		resp.AllowedActions = append(resp.AllowedActions, intent.String())
	}
	return resp
}

func toTeamResponse(t *models.Team) dto.TeamResponse {
	return dto.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		CaptainID:   t.CaptainID,
		MemberCount: t.MemberCount,
	}
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    string(u.Role),
		Visible: u.Visible,
		TeamID:  u.TeamID,
	}
}

func toInvitationResponse(inv *models.Invitation) dto.InvitationResponse {
	resp := dto.InvitationResponse{
		ID:        inv.ID,
		TeamID:    inv.TeamID,
		InviterID: inv.InviterID,
		InviteeID: inv.InviteeID,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
	if inv.Team != nil {
		team := toTeamResponse(inv.Team)
		resp.Team = &team
	}
	if inv.Inviter != nil {
		inviter := dto.UserResponse{ID: inv.Inviter.ID, Name: inv.Inviter.Name}
		resp.Inviter = &inviter
	}
	if inv.Invitee != nil {
		invitee := dto.UserResponse{ID: inv.Invitee.ID, Name: inv.Invitee.Name, Email: inv.Invitee.Email}
		resp.Invitee = &invitee
	}
	return resp
}

func toTeamMemberResponse(m *models.TeamMember) dto.TeamMemberResponse {
	return dto.TeamMemberResponse{
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Role:      string(m.Role),
		IsCaptain: m.IsCaptain,
	}
}

func toVenueResponse(v *models.Venue) dto.VenueResponse {
	return dto.VenueResponse{ID: v.ID, Name: v.Name, Address: v.Address}
}
