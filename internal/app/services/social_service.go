package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

const (
	notificationPageLimit = 30
	reportDetailsMaxLen   = 1000
)

// followStore is the persistence surface the follow flow needs.
type followStore interface {
	Save(ctx context.Context, follow *models.Follow) error
	CountFollowers(ctx context.Context, followeeID string) (int, error)
}

// notificationStore is the persistence surface for in-app notifications.
type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
}

// reportStore is the persistence surface for launch reports.
type reportStore interface {
	Create(ctx context.Context, report *models.Report) error
}

// followTarget resolves followee ids to accounts.
type followTarget interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// reportedLaunch resolves launch ids for report validation.
type reportedLaunch interface {
	GetByID(ctx context.Context, id string) (*models.Launch, error)
}

// SocialService handles follows, notifications, and launch reports.
type SocialService struct {
	follows       followStore
	notifications notificationStore
	reports       reportStore
	users         followTarget
	launches      reportedLaunch
	logger        zerolog.Logger
	now           func() time.Time
}

// NewSocialService creates a new SocialService
func NewSocialService(
	follows followStore,
	notifications notificationStore,
	reports reportStore,
	users followTarget,
	launches reportedLaunch,
	logger zerolog.Logger,
) *SocialService {
	return &SocialService{
		follows:       follows,
		notifications: notifications,
		reports:       reports,
		users:         users,
		launches:      launches,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Follow records that followerID follows followeeID and returns the
// followee's follower count. Repeating an existing follow is a no-op.
func (s *SocialService) Follow(ctx context.Context, followerID, followeeID string) (int, error) {
	followeeID = strings.TrimSpace(followeeID)
	if followeeID == "" {
		return 0, apperrors.NewValidationError("followeeId is required")
	}
	if followeeID == followerID {
		return 0, apperrors.NewValidationError("Cannot follow yourself")
	}

	followee, err := s.users.GetByID(ctx, followeeID)
	if err != nil {
		return 0, err
	}
	if followee == nil {
		return 0, apperrors.ErrUserNotFound
	}

	follow := &models.Follow{
		ID:         fmt.Sprintf("%s_%s", followerID, followeeID),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  s.now(),
	}
	if err := s.follows.Save(ctx, follow); err != nil {
		return 0, err
	}

	// The followee's notification is best effort: a store hiccup here must
	// not fail an already-recorded follow.
	href := "/users/" + followee.Username
	notification := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    followeeID,
		Title:     "New follower",
		Body:      "Someone started following you",
		Href:      &href,
		CreatedAt: s.now(),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn().Err(err).Str("userId", followeeID).Msg("Failed to create follow notification")
	}

	return s.follows.CountFollowers(ctx, followeeID)
}

// Notifications returns the caller's notifications, newest first.
func (s *SocialService) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID, notificationPageLimit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// Report files a complaint about a launch and returns its id.
func (s *SocialService) Report(ctx context.Context, reporterID, launchID string, reason models.ReportReason, details *string) (string, error) {
	switch reason {
	case models.ReportSpam, models.ReportAbuse, models.ReportScam, models.ReportOther:
	default:
		return "", apperrors.NewValidationError("invalid report reason")
	}
	if details != nil && len(*details) > reportDetailsMaxLen {
		return "", apperrors.NewValidationError("details must be at most 1000 characters")
	}

	launch, err := s.launches.GetByID(ctx, launchID)
	if err != nil {
		return "", err
	}
	if launch == nil {
		return "", apperrors.ErrLaunchNotFound
	}

	report := &models.Report{
		ID:         uuid.NewString(),
		LaunchID:   launchID,
		ReporterID: reporterID,
		Reason:     reason,
		Details:    details,
		Resolved:   false,
		CreatedAt:  s.now(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return "", err
	}
	s.logger.Info().Str("launchId", launchID).Str("reason", string(reason)).Msg("Launch reported")
	return report.ID, nil
}
