package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

type fakeFollowStore struct {
	saved map[string]*models.Follow
}

func (f *fakeFollowStore) Save(_ context.Context, follow *models.Follow) error {
	if f.saved == nil {
		f.saved = map[string]*models.Follow{}
	}
	copied := *follow
	f.saved[follow.ID] = &copied
	return nil
}

func (f *fakeFollowStore) CountFollowers(_ context.Context, followeeID string) (int, error) {
	count := 0
	for _, follow := range f.saved {
		if follow.FolloweeID == followeeID {
			count++
		}
	}
	return count, nil
}

type fakeNotificationStore struct {
	created   []*models.Notification
	createErr error
}

func (f *fakeNotificationStore) Create(_ context.Context, notification *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *notification
	f.created = append(f.created, &copied)
	return nil
}

func (f *fakeNotificationStore) ListByUser(_ context.Context, userID string, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for _, notification := range f.created {
		if notification.UserID == userID && len(out) < limit {
			out = append(out, *notification)
		}
	}
	return out, nil
}

type fakeReportStore struct {
	created []*models.Report
}

func (f *fakeReportStore) Create(_ context.Context, report *models.Report) error {
	copied := *report
	f.created = append(f.created, &copied)
	return nil
}

type fakeFollowTarget struct {
	users map[string]*models.User
}

func (f *fakeFollowTarget) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

type fakeReportedLaunch struct {
	launches map[string]*models.Launch
}

func (f *fakeReportedLaunch) GetByID(_ context.Context, id string) (*models.Launch, error) {
	launch, ok := f.launches[id]
	if !ok {
		return nil, nil
	}
	copied := *launch
	return &copied, nil
}

type socialFixture struct {
	follows       *fakeFollowStore
	notifications *fakeNotificationStore
	reports       *fakeReportStore
	service       *SocialService
}

func newSocialFixture(users map[string]*models.User, launches map[string]*models.Launch) *socialFixture {
	fixture := &socialFixture{
		follows:       &fakeFollowStore{},
		notifications: &fakeNotificationStore{},
		reports:       &fakeReportStore{},
	}
	fixture.service = NewSocialService(
		fixture.follows,
		fixture.notifications,
		fixture.reports,
		&fakeFollowTarget{users: users},
		&fakeReportedLaunch{launches: launches},
		zerolog.Nop(),
	)
	fixture.service.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return fixture
}

func TestFollow(t *testing.T) {
	users := map[string]*models.User{
		"u-maker": {ID: "u-maker", Username: "maker"},
	}
	fixture := newSocialFixture(users, nil)

	followers, err := fixture.service.Follow(context.Background(), "u-fan", "u-maker")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if followers != 1 {
		t.Errorf("expected 1 follower, got %d", followers)
	}
	follow, ok := fixture.follows.saved["u-fan_u-maker"]
	if !ok {
		t.Fatal("expected follow keyed by followerId_followeeId")
	}
	if follow.FollowerID != "u-fan" || follow.FolloweeID != "u-maker" {
		t.Errorf("unexpected follow edge: %+v", follow)
	}

	// Repeating the follow keeps the count stable.
	followers, err = fixture.service.Follow(context.Background(), "u-fan", "u-maker")
	if err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if followers != 1 {
		t.Errorf("expected repeat follow to stay at 1 follower, got %d", followers)
	}
}

func TestFollowNotifiesFollowee(t *testing.T) {
	users := map[string]*models.User{
		"u-maker": {ID: "u-maker", Username: "maker"},
	}
	fixture := newSocialFixture(users, nil)

	if _, err := fixture.service.Follow(context.Background(), "u-fan", "u-maker"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fixture.notifications.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(fixture.notifications.created))
	}
	notification := fixture.notifications.created[0]
	if notification.UserID != "u-maker" {
		t.Errorf("notification addressed to %s, want u-maker", notification.UserID)
	}
	if notification.Href == nil || *notification.Href != "/users/maker" {
		t.Errorf("unexpected notification href: %v", notification.Href)
	}
}

func TestFollowNotificationFailureIsNotFatal(t *testing.T) {
	users := map[string]*models.User{
		"u-maker": {ID: "u-maker", Username: "maker"},
	}
	fixture := newSocialFixture(users, nil)
	fixture.notifications.createErr = errors.New("store down")

	followers, err := fixture.service.Follow(context.Background(), "u-fan", "u-maker")
	if err != nil {
		t.Fatalf("expected follow to succeed despite notification failure, got %v", err)
	}
	if followers != 1 {
		t.Errorf("expected 1 follower, got %d", followers)
	}
}

func TestFollowRejections(t *testing.T) {
	fixture := newSocialFixture(map[string]*models.User{}, nil)

	if _, err := fixture.service.Follow(context.Background(), "u-fan", "u-fan"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation failure on self-follow, got %v", err)
	}
	if _, err := fixture.service.Follow(context.Background(), "u-fan", ""); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation failure on empty followee, got %v", err)
	}
	if _, err := fixture.service.Follow(context.Background(), "u-fan", "u-ghost"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("expected user not found for unknown followee, got %v", err)
	}
}

func TestNotificationsEmpty(t *testing.T) {
	fixture := newSocialFixture(nil, nil)

	notifications, err := fixture.service.Notifications(context.Background(), "u-lonely")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if notifications == nil {
		t.Fatal("expected an empty slice, not nil")
	}
	if len(notifications) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifications))
	}
}

func TestReport(t *testing.T) {
	launches := map[string]*models.Launch{
		"l-1": {ID: "l-1", ProductID: "p-1"},
	}
	fixture := newSocialFixture(nil, launches)

	details := "misleading pricing claims"
	id, err := fixture.service.Report(context.Background(), "u-fan", "l-1", models.ReportScam, &details)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a report id")
	}
	if len(fixture.reports.created) != 1 {
		t.Fatalf("expected one report, got %d", len(fixture.reports.created))
	}
	report := fixture.reports.created[0]
	if report.LaunchID != "l-1" || report.ReporterID != "u-fan" || report.Reason != models.ReportScam {
		t.Errorf("unexpected report: %+v", report)
	}
	if report.Resolved {
		t.Error("new report must start unresolved")
	}
}

func TestReportRejections(t *testing.T) {
	launches := map[string]*models.Launch{
		"l-1": {ID: "l-1"},
	}
	fixture := newSocialFixture(nil, launches)

	if _, err := fixture.service.Report(context.Background(), "u-fan", "l-1", "RUDE", nil); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation failure on unknown reason, got %v", err)
	}

	long := strings.Repeat("x", 1001)
	if _, err := fixture.service.Report(context.Background(), "u-fan", "l-1", models.ReportSpam, &long); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("expected validation failure on oversized details, got %v", err)
	}

	if _, err := fixture.service.Report(context.Background(), "u-fan", "l-ghost", models.ReportSpam, nil); !errors.Is(err, apperrors.ErrLaunchNotFound) {
		t.Errorf("expected launch not found, got %v", err)
	}
}
