package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

// applicationStore is the persistence surface the application manager needs.
type applicationStore interface {
	GetByUser(ctx context.Context, eventSlug, userID string) (*models.EventApplication, error)
	FindByMemberEmail(ctx context.Context, eventSlug, email string) (*models.EventApplication, error)
	Save(ctx context.Context, application *models.EventApplication) error
}

// userDirectory resolves team-member emails to accounts for completeness
// derivation.
type userDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ApplicationService manages the draft/submitted lifecycle of event
// applications and their team rosters.
type ApplicationService struct {
	store  applicationStore
	users  userDirectory
	logger zerolog.Logger
	now    func() time.Time
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(store applicationStore, users userDirectory, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		store:  store,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// GetByUser returns the application owned by userID, or nil.
func (s *ApplicationService) GetByUser(ctx context.Context, eventSlug, userID string) (*models.EventApplication, error) {
	return s.store.GetByUser(ctx, eventSlug, userID)
}

// ResolveOwnerID returns the id owning the application the user belongs to.
// A user who was added to someone else's team by email edits the owner's
// document rather than starting their own.
func (s *ApplicationService) ResolveOwnerID(ctx context.Context, eventSlug string, user *models.User) (string, error) {
	application, err := s.store.GetByUser(ctx, eventSlug, user.ID)
	if err != nil {
		return "", err
	}
	if application != nil {
		return application.UserID, nil
	}

	application, err = s.store.FindByMemberEmail(ctx, eventSlug, user.Email)
	if err != nil {
		return "", err
	}
	if application != nil {
		return application.UserID, nil
	}
	return user.ID, nil
}

// UpsertDraft saves the application draft. Team members and sections are
// replaced wholesale, not merged; identity fields and the submitted status of
// a prior save are preserved.
func (s *ApplicationService) UpsertDraft(ctx context.Context, eventSlug, userID string, teamMembers []models.TeamMember, sections models.ApplicationSections) (*models.EventApplication, error) {
	existing, err := s.store.GetByUser(ctx, eventSlug, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	application := &models.EventApplication{
		EventSlug:   eventSlug,
		UserID:      userID,
		Status:      models.ApplicationDraft,
		TeamMembers: normalizeMembers(teamMembers),
		Sections:    sections,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing != nil {
		application.Status = existing.Status
		application.SubmittedAt = existing.SubmittedAt
		application.CreatedAt = existing.CreatedAt
	}

	if err := s.store.Save(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// RefreshTeamStatuses recomputes each member's userId and derived status from
// the user directory. Lookups fan out concurrently; the result is a
// point-in-time snapshot and nothing is persisted.
func (s *ApplicationService) RefreshTeamStatuses(ctx context.Context, teamMembers []models.TeamMember) ([]models.TeamMember, error) {
	refreshed := make([]models.TeamMember, len(teamMembers))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(lookupFanOutLimit)
	for i, member := range teamMembers {
		group.Go(func() error {
			resolved, err := s.resolveMember(groupCtx, member.Email)
			if err != nil {
				return err
			}
			refreshed[i] = *resolved
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return refreshed, nil
}

// resolveMember derives a member's status from the directory. A missing
// account is the normal invited state, not an error.
func (s *ApplicationService) resolveMember(ctx context.Context, email string) (*models.TeamMember, error) {
	member := &models.TeamMember{
		Email:  normalizeEmail(email),
		Status: models.MemberInvited,
	}

	user, err := s.users.GetByEmail(ctx, member.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return member, nil
	}

	member.UserID = &user.ID
	if user.IsProfileComplete() {
		member.Status = models.MemberComplete
	} else {
		member.Status = models.MemberProfileIncomplete
	}
	return member, nil
}

// AddTeamMember adds an email to the team roster, creating the draft if no
// application exists yet. The added member's status is resolved immediately.
func (s *ApplicationService) AddTeamMember(ctx context.Context, eventSlug, userID, email string) (*models.TeamMember, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewValidationError("email cannot be empty")
	}

	application, err := s.store.GetByUser(ctx, eventSlug, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if application == nil {
		application = &models.EventApplication{
			EventSlug: eventSlug,
			UserID:    userID,
			Status:    models.ApplicationDraft,
			CreatedAt: now,
		}
	}

	for _, member := range application.TeamMembers {
		if member.Email == email {
			return nil, apperrors.ErrMemberAlreadyAdded
		}
	}

	member, err := s.resolveMember(ctx, email)
	if err != nil {
		return nil, err
	}

	application.TeamMembers = append(application.TeamMembers, *member)
	application.UpdatedAt = now
	if err := s.store.Save(ctx, application); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveTeamMember drops an email from the roster. Missing applications and
// unknown emails are silent no-ops.
func (s *ApplicationService) RemoveTeamMember(ctx context.Context, eventSlug, userID, email string) error {
	email = normalizeEmail(email)
	application, err := s.store.GetByUser(ctx, eventSlug, userID)
	if err != nil {
		return err
	}
	if application == nil {
		return nil
	}

	kept := application.TeamMembers[:0]
	for _, member := range application.TeamMembers {
		if member.Email != email {
			kept = append(kept, member)
		}
	}
	if len(kept) == len(application.TeamMembers) {
		return nil
	}

	application.TeamMembers = kept
	application.UpdatedAt = s.now().UTC()
	return s.store.Save(ctx, application)
}

// Submit moves a draft to submitted. The team-completeness gate only counts
// members with a resolved account: pure invites with no account do not block.
// An already-submitted application returns success without re-checking the
// gate, so later profile regressions never revert a submission.
func (s *ApplicationService) Submit(ctx context.Context, eventSlug, userID string) error {
	application, err := s.store.GetByUser(ctx, eventSlug, userID)
	if err != nil {
		return err
	}
	if application == nil {
		return apperrors.NewCustomError(apperrors.ErrApplicationNotFound, "Application not found. Save a draft first.")
	}
	if application.Status == models.ApplicationSubmitted {
		return nil
	}

	refreshed, err := s.RefreshTeamStatuses(ctx, application.TeamMembers)
	if err != nil {
		return err
	}

	var incomplete []string
	for _, member := range refreshed {
		if member.UserID != nil && member.Status != models.MemberComplete {
			incomplete = append(incomplete, member.Email)
		}
	}
	if len(incomplete) > 0 {
		message := fmt.Sprintf("%s still need to complete their profiles before you can submit.", strings.Join(incomplete, ", "))
		return apperrors.NewCustomError(apperrors.ErrTeamIncomplete, message)
	}

	now := s.now().UTC()
	application.TeamMembers = refreshed
	application.Status = models.ApplicationSubmitted
	application.SubmittedAt = &now
	application.UpdatedAt = now
	if err := s.store.Save(ctx, application); err != nil {
		return err
	}
	s.logger.Info().Str("eventSlug", eventSlug).Str("userId", userID).Msg("Application submitted")
	return nil
}

// normalizeMembers normalizes emails and drops duplicates, keeping the first
// occurrence of each address.
func normalizeMembers(teamMembers []models.TeamMember) []models.TeamMember {
	seen := make(map[string]struct{}, len(teamMembers))
	normalized := make([]models.TeamMember, 0, len(teamMembers))
	for _, member := range teamMembers {
		member.Email = normalizeEmail(member.Email)
		if member.Email == "" {
			continue
		}
		if _, dup := seen[member.Email]; dup {
			continue
		}
		seen[member.Email] = struct{}{}
		if member.Status == "" {
			member.Status = models.MemberInvited
		}
		normalized = append(normalized, member)
	}
	return normalized
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
