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

// fakeApplicationStore keeps applications in memory keyed the same way the
// document store does.
type fakeApplicationStore struct {
	docs  map[string]*models.EventApplication
	saves int
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{docs: map[string]*models.EventApplication{}}
}

func (f *fakeApplicationStore) GetByUser(_ context.Context, eventSlug, userID string) (*models.EventApplication, error) {
	doc, ok := f.docs[models.RegistrationDocID(eventSlug, userID)]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeApplicationStore) FindByMemberEmail(_ context.Context, eventSlug, email string) (*models.EventApplication, error) {
	for _, doc := range f.docs {
		if doc.EventSlug != eventSlug {
			continue
		}
		for _, member := range doc.TeamMembers {
			if member.Email == email {
				copied := *doc
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeApplicationStore) Save(_ context.Context, application *models.EventApplication) error {
	application.ID = models.RegistrationDocID(application.EventSlug, application.UserID)
	copied := *application
	f.docs[application.ID] = &copied
	f.saves++
	return nil
}

// fakeDirectory maps emails to users.
type fakeDirectory struct {
	byEmail map[string]*models.User
}

func (f *fakeDirectory) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[strings.ToLower(strings.TrimSpace(email))], nil
}

func strPtr(s string) *string { return &s }

func completeUser(id, email string) *models.User {
	return &models.User{
		ID:         id,
		Email:      email,
		Username:   id,
		Experience: strPtr("ten years of shipping products"),
		GitHubURL:  strPtr("https://github.com/" + id),
	}
}

func incompleteUser(id, email string) *models.User {
	return &models.User{ID: id, Email: email, Username: id}
}

func newTestService(store *fakeApplicationStore, directory *fakeDirectory) *ApplicationService {
	svc := NewApplicationService(store, directory, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestSubmitBlocksOnIncompleteResolvedMember(t *testing.T) {
	store := newFakeApplicationStore()
	directory := &fakeDirectory{byEmail: map[string]*models.User{
		"a@example.com": completeUser("u1", "a@example.com"),
		"b@example.com": incompleteUser("u2", "b@example.com"),
	}}
	svc := newTestService(store, directory)

	ctx := context.Background()
	if _, err := svc.UpsertDraft(ctx, "lent-hack-2026", "u1", []models.TeamMember{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}, models.ApplicationSections{}); err != nil {
		t.Fatalf("UpsertDraft: %v", err)
	}

	err := svc.Submit(ctx, "lent-hack-2026", "u1")
	if err == nil {
		t.Fatal("Submit succeeded with an incomplete resolved member")
	}
	if !errors.Is(err, apperrors.ErrTeamIncomplete) {
		t.Fatalf("error = %v, want ErrTeamIncomplete", err)
	}
	if !strings.Contains(err.Error(), "b@example.com") {
		t.Fatalf("error %q does not name the offending member", err.Error())
	}
	if strings.Contains(err.Error(), "a@example.com") {
		t.Fatalf("error %q names a complete member", err.Error())
	}

	saved, _ := store.GetByUser(ctx, "lent-hack-2026", "u1")
	if saved.Status != models.ApplicationDraft {
		t.Fatalf("status = %s, want draft after failed submit", saved.Status)
	}
	if saved.SubmittedAt != nil {
		t.Fatal("submittedAt set after failed submit")
	}
}

func TestSubmitIgnoresUnresolvedInvites(t *testing.T) {
	store := newFakeApplicationStore()
	directory := &fakeDirectory{byEmail: map[string]*models.User{
		"a@example.com": completeUser("u1", "a@example.com"),
	}}
	svc := newTestService(store, directory)

	ctx := context.Background()
	if _, err := svc.UpsertDraft(ctx, "lent-hack-2026", "u1", []models.TeamMember{
		{Email: "a@example.com"},
		{Email: "c@example.com"}, // no account: stays invited
	}, models.ApplicationSections{}); err != nil {
		t.Fatalf("UpsertDraft: %v", err)
	}

	if err := svc.Submit(ctx, "lent-hack-2026", "u1"); err != nil {
		t.Fatalf("Submit blocked by an unresolved invite: %v", err)
	}

	saved, _ := store.GetByUser(ctx, "lent-hack-2026", "u1")
	if saved.Status != models.ApplicationSubmitted {
		t.Fatalf("status = %s, want submitted", saved.Status)
	}
	for _, member := range saved.TeamMembers {
		if member.Email == "c@example.com" {
			if member.UserID != nil || member.Status != models.MemberInvited {
				t.Fatalf("unresolved member = %+v, want invited with nil userId", member)
			}
		}
	}
}

func TestSubmitIsIdempotentAndSticky(t *testing.T) {
	store := newFakeApplicationStore()
	directory := &fakeDirectory{byEmail: map[string]*models.User{
		"a@example.com": completeUser("u1", "a@example.com"),
	}}
	svc := newTestService(store, directory)

	ctx := context.Background()
	if _, err := svc.UpsertDraft(ctx, "lent-hack-2026", "u1", []models.TeamMember{
		{Email: "a@example.com"},
	}, models.ApplicationSections{}); err != nil {
		t.Fatalf("UpsertDraft: %v", err)
	}
	if err := svc.Submit(ctx, "lent-hack-2026", "u1"); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	first, _ := store.GetByUser(ctx, "lent-hack-2026", "u1")

	// The member's profile regresses after submission. The gate was checked
	// once at submission time and a re-submit must not re-run it.
	directory.byEmail["a@example.com"] = incompleteUser("u1", "a@example.com")
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	if err := svc.Submit(ctx, "lent-hack-2026", "u1"); err != nil {
		t.Fatalf("repeat Submit: %v", err)
	}

	second, _ := store.GetByUser(ctx, "lent-hack-2026", "u1")
	if second.Status != models.ApplicationSubmitted {
		t.Fatalf("status = %s, want submitted", second.Status)
	}
	if !second.SubmittedAt.Equal(*first.SubmittedAt) {
		t.Fatalf("submittedAt changed on repeat submit: %v != %v", second.SubmittedAt, first.SubmittedAt)
	}
}

func TestSubmitWithoutDraft(t *testing.T) {
	svc := newTestService(newFakeApplicationStore(), &fakeDirectory{byEmail: map[string]*models.User{}})

	err := svc.Submit(context.Background(), "lent-hack-2026", "u1")
	if !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Fatalf("error = %v, want ErrApplicationNotFound", err)
	}
	if err.Error() != "Application not found. Save a draft first." {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestAddTeamMemberRejectsDuplicates(t *testing.T) {
	store := newFakeApplicationStore()
	directory := &fakeDirectory{byEmail: map[string]*models.User{}}
	svc := newTestService(store, directory)

	ctx := context.Background()
	member, err := svc.AddTeamMember(ctx, "lent-hack-2026", "u1", "  New@Example.COM ")
	if err != nil {
		t.Fatalf("AddTeamMember: %v", err)
	}
	if member.Email != "new@example.com" {
		t.Fatalf("email = %q, want normalized", member.Email)
	}
	if member.Status != models.MemberInvited {
		t.Fatalf("status = %s, want invited", member.Status)
	}

	// Same address, different casing and whitespace.
	if _, err := svc.AddTeamMember(ctx, "lent-hack-2026", "u1", "NEW@example.com"); !errors.Is(err, apperrors.ErrMemberAlreadyAdded) {
		t.Fatalf("error = %v, want ErrMemberAlreadyAdded", err)
	}

	saved, _ := store.GetByUser(ctx, "lent-hack-2026", "u1")
	if len(saved.TeamMembers) != 1 {
		t.Fatalf("member list length = %d, want 1", len(saved.TeamMembers))
	}
	if saved.Status != models.ApplicationDraft {
		t.Fatalf("status = %s, want draft created by first add", saved.Status)
	}
}

func TestAddTeamMemberResolvesStatusImmediately(t *testing.T) {
	store := newFakeApplicationStore()
	directory := &fakeDirectory{byEmail: map[string]*models.User{
		"b@example.com": incompleteUser("u2", "b@example.com"),
	}}
	svc := newTestService(store, directory)

	member, err := svc.AddTeamMember(context.Background(), "lent-hack-2026", "u1", "b@example.com")
	if err != nil {
		t.Fatalf("AddTeamMember: %v", err)
	}
	if member.UserID == nil || *member.UserID != "u2" {
		t.Fatalf("userId = %v, want u2", member.UserID)
	}
	if member.Status != models.MemberProfileIncomplete {
		t.Fatalf("status = %s, want profile_incomplete", member.Status)
	}
}

func TestAddTeamMemberRejectsEmptyEmail(t *testing.T) {
	svc := newTestService(newFakeApplicationStore(), &fakeDirectory{byEmail: map[string]*models.User{}})

	if _, err := svc.AddTeamMember(context.Background(), "lent-hack-2026", "u1", "   "); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("error = %v, want ErrValidationFailed", err)
	}
}

func TestUpsertDraftReplacesSectionsWholesale(t *testing.T) {
	store := newFakeApplicationStore()
	svc := newTestService(store, &fakeDirectory{byEmail: map[string]*models.User{}})

	ctx := context.Background()
	if _, err := svc.UpsertDraft(ctx, "lent-hack-2026", "u1", nil, models.ApplicationSections{
		CompanyName: "Ora Labs",
		Tagline50:   "Pray better together",
		TechStack:   "Go, Postgres",
	}); err != nil {
		t.Fatalf("first UpsertDraft: %v", err)
	}

	// Smaller sections object: previously-stored keys must not survive.
	saved, err := svc.UpsertDraft(ctx, "lent-hack-2026", "u1", nil, models.ApplicationSections{
		CompanyName: "Ora Labs",
	})
	if err != nil {
		t.Fatalf("second UpsertDraft: %v", err)
	}
	if saved.Sections.Tagline50 != "" || saved.Sections.TechStack != "" {
		t.Fatalf("sections deep-merged old keys: %+v", saved.Sections)
	}

	stored, _ := store.GetByUser(ctx, "lent-hack-2026", "u1")
	if stored.Sections != saved.Sections {
		t.Fatalf("stored sections = %+v, want %+v", stored.Sections, saved.Sections)
	}
}

func TestUpsertDraftPreservesIdentityAndStatus(t *testing.T) {
	store := newFakeApplicationStore()
	directory := &fakeDirectory{byEmail: map[string]*models.User{
		"a@example.com": completeUser("u1", "a@example.com"),
	}}
	svc := newTestService(store, directory)

	ctx := context.Background()
	first, err := svc.UpsertDraft(ctx, "lent-hack-2026", "u1", nil, models.ApplicationSections{})
	if err != nil {
		t.Fatalf("UpsertDraft: %v", err)
	}
	if err := svc.Submit(ctx, "lent-hack-2026", "u1"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// A later draft save edits content but cannot revert the submission.
	svc.now = func() time.Time { return time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC) }
	saved, err := svc.UpsertDraft(ctx, "lent-hack-2026", "u1", nil, models.ApplicationSections{WhyApply: "updated"})
	if err != nil {
		t.Fatalf("post-submit UpsertDraft: %v", err)
	}
	if saved.Status != models.ApplicationSubmitted {
		t.Fatalf("status = %s, want submitted preserved", saved.Status)
	}
	if saved.SubmittedAt == nil {
		t.Fatal("submittedAt lost on draft save")
	}
	if !saved.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("createdAt changed: %v != %v", saved.CreatedAt, first.CreatedAt)
	}
}

func TestUpsertDraftDeduplicatesMembers(t *testing.T) {
	store := newFakeApplicationStore()
	svc := newTestService(store, &fakeDirectory{byEmail: map[string]*models.User{}})

	saved, err := svc.UpsertDraft(context.Background(), "lent-hack-2026", "u1", []models.TeamMember{
		{Email: "A@example.com"},
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}, models.ApplicationSections{})
	if err != nil {
		t.Fatalf("UpsertDraft: %v", err)
	}
	if len(saved.TeamMembers) != 2 {
		t.Fatalf("member list length = %d, want 2", len(saved.TeamMembers))
	}
	if saved.TeamMembers[0].Email != "a@example.com" {
		t.Fatalf("first member = %q, want normalized a@example.com", saved.TeamMembers[0].Email)
	}
}

func TestRemoveTeamMember(t *testing.T) {
	store := newFakeApplicationStore()
	svc := newTestService(store, &fakeDirectory{byEmail: map[string]*models.User{}})

	ctx := context.Background()
	if err := svc.RemoveTeamMember(ctx, "lent-hack-2026", "u1", "x@example.com"); err != nil {
		t.Fatalf("RemoveTeamMember on missing application: %v", err)
	}

	if _, err := svc.AddTeamMember(ctx, "lent-hack-2026", "u1", "x@example.com"); err != nil {
		t.Fatalf("AddTeamMember: %v", err)
	}
	savesBefore := store.saves

	if err := svc.RemoveTeamMember(ctx, "lent-hack-2026", "u1", "nobody@example.com"); err != nil {
		t.Fatalf("RemoveTeamMember unknown email: %v", err)
	}
	if store.saves != savesBefore {
		t.Fatal("unknown email removal wrote to the store")
	}

	if err := svc.RemoveTeamMember(ctx, "lent-hack-2026", "u1", " X@EXAMPLE.com "); err != nil {
		t.Fatalf("RemoveTeamMember: %v", err)
	}
	saved, _ := store.GetByUser(ctx, "lent-hack-2026", "u1")
	if len(saved.TeamMembers) != 0 {
		t.Fatalf("member list length = %d, want 0", len(saved.TeamMembers))
	}
}

func TestResolveOwnerIDPrefersMembership(t *testing.T) {
	store := newFakeApplicationStore()
	directory := &fakeDirectory{byEmail: map[string]*models.User{}}
	svc := newTestService(store, directory)

	ctx := context.Background()
	if _, err := svc.AddTeamMember(ctx, "lent-hack-2026", "owner", "mate@example.com"); err != nil {
		t.Fatalf("AddTeamMember: %v", err)
	}

	mate := &models.User{ID: "u9", Email: "mate@example.com"}
	ownerID, err := svc.ResolveOwnerID(ctx, "lent-hack-2026", mate)
	if err != nil {
		t.Fatalf("ResolveOwnerID: %v", err)
	}
	if ownerID != "owner" {
		t.Fatalf("ownerID = %q, want owner", ownerID)
	}

	stranger := &models.User{ID: "u10", Email: "stranger@example.com"}
	ownerID, err = svc.ResolveOwnerID(ctx, "lent-hack-2026", stranger)
	if err != nil {
		t.Fatalf("ResolveOwnerID: %v", err)
	}
	if ownerID != "u10" {
		t.Fatalf("ownerID = %q, want the caller's own id", ownerID)
	}
}
