package dto

import "github.com/cphunt/backend/internal/app/models"

// UpdateProfileRequest represents profile update data. Omitted fields are
// left unchanged.
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	Experience  *string `json:"experience"`
	LinkedInURL *string `json:"linkedInUrl"`
	XURL        *string `json:"xUrl"`
	GitHubURL   *string `json:"githubUrl"`
	WebsiteURL  *string `json:"websiteUrl"`
}

// ProfileResponse represents the full profile view including the hackathon
// completeness gate.
type ProfileResponse struct {
	UserResponse
	Experience      *string `json:"experience"`
	LinkedInURL     *string `json:"linkedInUrl"`
	XURL            *string `json:"xUrl"`
	GitHubURL       *string `json:"githubUrl"`
	WebsiteURL      *string `json:"websiteUrl"`
	ProfileComplete bool    `json:"profileComplete"`
}

// NewProfileResponse maps a user model to the profile view.
func NewProfileResponse(user *models.User) *ProfileResponse {
	if user == nil {
		return nil
	}
	return &ProfileResponse{
		UserResponse:    *NewUserResponse(user),
		Experience:      user.Experience,
		LinkedInURL:     user.LinkedInURL,
		XURL:            user.XURL,
		GitHubURL:       user.GitHubURL,
		WebsiteURL:      user.WebsiteURL,
		ProfileComplete: user.IsProfileComplete(),
	}
}
