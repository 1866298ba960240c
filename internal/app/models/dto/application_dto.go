package dto

import "github.com/cphunt/backend/internal/app/models"

// TeamMemberRequest is one roster entry in a draft save. Status and userId
// are recomputed server-side and accepted only for round-tripping.
type TeamMemberRequest struct {
	Email  string  `json:"email" binding:"required,email"`
	UserID *string `json:"userId"`
	Status string  `json:"status" binding:"omitempty,oneof=invited profile_incomplete complete"`
}

// SaveDraftRequest represents an application draft save. Team members and
// sections replace the stored values wholesale.
type SaveDraftRequest struct {
	TeamMembers []TeamMemberRequest        `json:"teamMembers" binding:"required"`
	Sections    models.ApplicationSections `json:"sections" binding:"required"`
}

// AddTeamMemberRequest represents adding one email to the team roster
type AddTeamMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddTeamMemberResponse pairs the ok flag with the resolved member.
type AddTeamMemberResponse struct {
	OK     bool              `json:"ok"`
	Member models.TeamMember `json:"member"`
}

// ToTeamMembers maps request roster entries to the model shape.
func ToTeamMembers(requests []TeamMemberRequest) []models.TeamMember {
	members := make([]models.TeamMember, len(requests))
	for i, request := range requests {
		members[i] = models.TeamMember{
			Email:  request.Email,
			UserID: request.UserID,
			Status: models.TeamMemberStatus(request.Status),
		}
	}
	return members
}
