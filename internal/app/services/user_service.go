package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/repositories"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

// ProfileUpdateInput carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type ProfileUpdateInput struct {
	Name        *string
	Bio         *string
	AvatarURL   *string
	Experience  *string
	LinkedInURL *string
	XURL        *string
	GitHubURL   *string
	WebsiteURL  *string
}

// UserService handles profile reads and updates, including the snapshot
// fan-out onto event registrations.
type UserService struct {
	userRepo         *repositories.UserRepository
	registrationRepo *repositories.RegistrationRepository
	logger           zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, registrationRepo *repositories.RegistrationRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// GetByID returns a user by id.
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// GetByUsername returns a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial profile update, then fans the new display
// snapshot out onto the user's event registrations. The fan-out is
// best-effort: a failure is logged but does not fail the profile update.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*models.User, error) {
	updates := bson.M{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty")
		}
		updates["name"] = name
	}
	if input.Bio != nil {
		updates["bio"] = input.Bio
	}
	if input.AvatarURL != nil {
		updates["avatarUrl"] = input.AvatarURL
	}
	if input.Experience != nil {
		updates["experience"] = input.Experience
	}
	if input.LinkedInURL != nil {
		updates["linkedInUrl"] = input.LinkedInURL
	}
	if input.XURL != nil {
		updates["xUrl"] = input.XURL
	}
	if input.GitHubURL != nil {
		updates["githubUrl"] = input.GitHubURL
	}
	if input.WebsiteURL != nil {
		updates["websiteUrl"] = input.WebsiteURL
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, userID)
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, updates)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	snapshot := models.UserSnapshot{
		UserName:      user.Name,
		UserUsername:  user.Username,
		UserAvatarURL: user.AvatarURL,
		UserBio:       user.Bio,
	}
	if modified, err := s.registrationRepo.UpdateUserSnapshot(ctx, userID, snapshot); err != nil {
		s.logger.Error().Err(err).Str("userId", userID).Msg("Registration snapshot fan-out failed")
	} else if modified > 0 {
		s.logger.Info().Str("userId", userID).Int64("registrations", modified).Msg("Registration snapshots updated")
	}

	return user, nil
}
