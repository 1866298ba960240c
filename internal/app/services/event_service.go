package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cphunt/backend/internal/app/events"
	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/app/repositories"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

const (
	defaultParticipantLimit = 200
	defaultTeammatePosts    = 100
	// lookupFanOutLimit bounds concurrent user-directory lookups.
	lookupFanOutLimit = 8
)

// RegistrationInput carries the registration form fields. Nil pointers keep
// the value from a prior registration, so re-registering merges rather than
// clears.
type RegistrationInput struct {
	ParticipationType *models.ParticipationType
	TeamName          *string
	ProjectName       *string
	Skills            *[]string
	Bio               *string
	TeammatePref      *models.TeammatePreference
	ReferralSource    *string
	EligibilityAgreed *bool
	RulesAgreed       *bool
}

// Participant is one row of an event participant list.
type Participant struct {
	UserID            string                    `json:"userId"`
	UserName          string                    `json:"userName"`
	Username          string                    `json:"username"`
	AvatarURL         *string                   `json:"avatarUrl"`
	Bio               *string                   `json:"bio"`
	ParticipationType models.ParticipationType  `json:"participationType"`
	TeamName          *string                   `json:"teamName"`
	ProjectName       string                    `json:"projectName"`
	Skills            []string                  `json:"skills"`
	TeammatePref      models.TeammatePreference `json:"teammatePreference,omitempty"`
}

// ParticipantsPage is one page of an event's participants.
type ParticipantsPage struct {
	Participants []Participant `json:"participants"`
	HasMore      bool          `json:"hasMore"`
	NextCursor   *string       `json:"nextCursor"`
	Degraded     bool          `json:"degraded,omitempty"`
}

// EventStats summarizes an event's engagement.
type EventStats struct {
	Registrations         int `json:"registrations"`
	Teams                 int `json:"teams"`
	Individuals           int `json:"individuals"`
	TeammatePosts         int `json:"teammatePosts"`
	SubmittedApplications int `json:"submittedApplications"`
}

// TeammatePostInput carries a new teammate-search post.
type TeammatePostInput struct {
	ParticipationType models.ParticipationType
	LookingFor        []string
	Message           string
}

// EventService handles event pages, registration, and teammate search.
type EventService struct {
	registrationRepo *repositories.RegistrationRepository
	teammatePostRepo *repositories.TeammatePostRepository
	applicationRepo  *repositories.ApplicationRepository
	userRepo         *repositories.UserRepository
	logger           zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(registrationRepo *repositories.RegistrationRepository, teammatePostRepo *repositories.TeammatePostRepository, applicationRepo *repositories.ApplicationRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) *EventService {
	return &EventService{
		registrationRepo: registrationRepo,
		teammatePostRepo: teammatePostRepo,
		applicationRepo:  applicationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// GetEvent returns the static event config for a slug.
func (s *EventService) GetEvent(slug string) (*events.EventConfig, error) {
	event := events.GetBySlug(slug)
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

// GetRegistration returns the caller's registration for an event, or nil.
func (s *EventService) GetRegistration(ctx context.Context, eventSlug, userID string) (*models.EventRegistration, error) {
	if _, err := s.GetEvent(eventSlug); err != nil {
		return nil, err
	}
	return s.registrationRepo.GetByUser(ctx, eventSlug, userID)
}

// Register upserts the caller's registration for an event. Fields left nil in
// the input keep their previous values; participationType is derived from the
// teammate preference when not given explicitly.
func (s *EventService) Register(ctx context.Context, user *models.User, eventSlug string, input RegistrationInput) (*models.EventRegistration, error) {
	if _, err := s.GetEvent(eventSlug); err != nil {
		return nil, err
	}

	existing, err := s.registrationRepo.GetByUser(ctx, eventSlug, user.ID)
	if err != nil {
		return nil, err
	}

	registration := &models.EventRegistration{
		EventSlug: eventSlug,
		UserID:    user.ID,
	}
	if existing != nil {
		*registration = *existing
	}

	if input.TeamName != nil {
		registration.TeamName = input.TeamName
	}
	if input.ProjectName != nil {
		registration.ProjectName = strings.TrimSpace(*input.ProjectName)
	}
	if input.Skills != nil {
		registration.Skills = *input.Skills
	}
	if input.Bio != nil {
		registration.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.TeammatePref != nil {
		registration.TeammatePref = *input.TeammatePref
	}
	if input.ReferralSource != nil {
		registration.ReferralSource = *input.ReferralSource
	}
	if input.EligibilityAgreed != nil {
		registration.EligibilityAgreed = *input.EligibilityAgreed
	}
	if input.RulesAgreed != nil {
		registration.RulesAgreed = *input.RulesAgreed
	}

	switch {
	case input.ParticipationType != nil:
		registration.ParticipationType = *input.ParticipationType
	case registration.TeammatePref == models.PreferenceTeam:
		registration.ParticipationType = models.ParticipationTeam
	case registration.ParticipationType == "":
		registration.ParticipationType = models.ParticipationIndividual
	}

	registration.UserName = &user.Name
	registration.UserUsername = &user.Username
	registration.UserAvatarURL = user.AvatarURL
	registration.UserBio = user.Bio

	if err := s.registrationRepo.Upsert(ctx, registration); err != nil {
		return nil, err
	}
	s.logger.Info().Str("eventSlug", eventSlug).Str("userId", user.ID).Msg("Event registration saved")
	return registration, nil
}

// Participants returns one page of an event's participants ordered by
// registration time. cursor is an opaque token from a previous page.
func (s *EventService) Participants(ctx context.Context, eventSlug string, limit int, cursor string) (*ParticipantsPage, error) {
	if _, err := s.GetEvent(eventSlug); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultParticipantLimit
	}

	after, err := decodeParticipantCursor(cursor)
	if err != nil {
		return nil, err
	}

	page, err := s.registrationRepo.Page(ctx, eventSlug, limit, after)
	if err != nil {
		return nil, err
	}

	participants, err := s.toParticipants(ctx, page.Registrations)
	if err != nil {
		return nil, err
	}

	result := &ParticipantsPage{Participants: participants, HasMore: page.HasMore, Degraded: page.Degraded}
	if page.NextCursor != nil {
		next := encodeParticipantCursor(*page.NextCursor)
		result.NextCursor = &next
	}
	return result, nil
}

// participantCursorSep joins the timestamp and document id of a cursor. The
// tilde appears in neither RFC 3339 timestamps nor registration ids.
const participantCursorSep = "~"

func encodeParticipantCursor(cursor repositories.PageCursor) string {
	return cursor.CreatedAt.Format(time.RFC3339Nano) + participantCursorSep + cursor.ID
}

// decodeParticipantCursor parses a page cursor. A bare timestamp, as issued
// before cursors carried a document id, is still accepted.
func decodeParticipantCursor(cursor string) (*repositories.PageCursor, error) {
	if cursor == "" {
		return nil, nil
	}
	stamp, id, _ := strings.Cut(cursor, participantCursorSep)
	parsed, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid cursor")
	}
	return &repositories.PageCursor{CreatedAt: parsed, ID: id}, nil
}

// toParticipants builds the participant rows, resolving users from the
// directory where the denormalized snapshot is missing.
func (s *EventService) toParticipants(ctx context.Context, registrations []models.EventRegistration) ([]Participant, error) {
	participants := make([]Participant, len(registrations))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(lookupFanOutLimit)
	for i, registration := range registrations {
		group.Go(func() error {
			row := Participant{
				UserID:            registration.UserID,
				ParticipationType: registration.ParticipationType,
				TeamName:          registration.TeamName,
				ProjectName:       registration.ProjectName,
				Skills:            registration.Skills,
				TeammatePref:      registration.TeammatePref,
			}
			if row.Skills == nil {
				row.Skills = []string{}
			}

			if registration.UserName != nil {
				row.UserName = *registration.UserName
				if registration.UserUsername != nil {
					row.Username = *registration.UserUsername
				}
				row.AvatarURL = registration.UserAvatarURL
				row.Bio = registration.UserBio
			} else {
				user, err := s.userRepo.GetByID(groupCtx, registration.UserID)
				if err != nil {
					return err
				}
				if user != nil {
					row.UserName = user.Name
					row.Username = user.Username
					row.AvatarURL = user.AvatarURL
					row.Bio = user.Bio
				}
			}

			participants[i] = row
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return participants, nil
}

// Stats returns the engagement counters for an event.
func (s *EventService) Stats(ctx context.Context, eventSlug string) (*EventStats, error) {
	if _, err := s.GetEvent(eventSlug); err != nil {
		return nil, err
	}

	stats := &EventStats{}
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		stats.Registrations, err = s.registrationRepo.CountByEvent(groupCtx, eventSlug)
		return err
	})
	group.Go(func() (err error) {
		stats.Teams, err = s.registrationRepo.CountByParticipation(groupCtx, eventSlug, models.ParticipationTeam)
		return err
	})
	group.Go(func() (err error) {
		stats.Individuals, err = s.registrationRepo.CountByParticipation(groupCtx, eventSlug, models.ParticipationIndividual)
		return err
	})
	group.Go(func() (err error) {
		posts, err := s.teammatePostRepo.ListByEvent(groupCtx, eventSlug, defaultTeammatePosts)
		stats.TeammatePosts = len(posts)
		return err
	})
	group.Go(func() (err error) {
		stats.SubmittedApplications, err = s.applicationRepo.CountSubmitted(groupCtx, eventSlug)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// PostTeammateSearch publishes a teammate-search post for a registered user.
func (s *EventService) PostTeammateSearch(ctx context.Context, userID, eventSlug string, input TeammatePostInput) (*models.TeammatePost, error) {
	if _, err := s.GetEvent(eventSlug); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewValidationError("message cannot be empty")
	}

	registration, err := s.registrationRepo.GetByUser(ctx, eventSlug, userID)
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, apperrors.ErrNotRegistered
	}

	post := &models.TeammatePost{
		ID:                uuid.NewString(),
		EventSlug:         eventSlug,
		UserID:            userID,
		ParticipationType: input.ParticipationType,
		LookingFor:        input.LookingFor,
		Message:           strings.TrimSpace(input.Message),
		CreatedAt:         time.Now().UTC(),
	}
	if post.ParticipationType == "" {
		post.ParticipationType = registration.ParticipationType
	}

	// One active post per user per event: reposting replaces the old one.
	existing, err := s.teammatePostRepo.GetByUser(ctx, eventSlug, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		post.ID = existing.ID
	}

	if err := s.teammatePostRepo.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Applications returns every application for an event, for moderation.
func (s *EventService) Applications(ctx context.Context, eventSlug string) ([]models.EventApplication, error) {
	if _, err := s.GetEvent(eventSlug); err != nil {
		return nil, err
	}
	return s.applicationRepo.ListByEvent(ctx, eventSlug)
}

// TeammatePosts lists an event's teammate-search posts, newest first.
func (s *EventService) TeammatePosts(ctx context.Context, eventSlug string, limit int) ([]models.TeammatePost, error) {
	if _, err := s.GetEvent(eventSlug); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultTeammatePosts
	}
	return s.teammatePostRepo.ListByEvent(ctx, eventSlug, limit)
}
