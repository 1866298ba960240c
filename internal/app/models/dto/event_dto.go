package dto

import "github.com/cphunt/backend/internal/app/models"

// RegisterEventRequest represents an event registration form submission.
// Omitted fields keep their values from a prior registration.
type RegisterEventRequest struct {
	ParticipationType *models.ParticipationType  `json:"participationType" binding:"omitempty,oneof=TEAM INDIVIDUAL"`
	TeamName          *string                    `json:"teamName"`
	ProjectName       *string                    `json:"projectName"`
	Skills            *[]string                  `json:"skills"`
	Bio               *string                    `json:"bio"`
	TeammatePref      *models.TeammatePreference `json:"teammatePreference" binding:"omitempty,oneof=solo looking team"`
	ReferralSource    *string                    `json:"referralSource"`
	EligibilityAgreed *bool                      `json:"eligibilityAgreed"`
	RulesAgreed       *bool                      `json:"rulesAgreed"`
}

// TeammatePostRequest represents a new teammate-search post
type TeammatePostRequest struct {
	ParticipationType models.ParticipationType `json:"participationType" binding:"omitempty,oneof=TEAM INDIVIDUAL"`
	LookingFor        []string                 `json:"lookingFor"`
	Message           string                   `json:"message" binding:"required"`
}
