package repositories

import (
	"testing"
	"time"

	"github.com/cphunt/backend/internal/app/models"
)

func reg(id string, createdAt time.Time, projectName string) models.EventRegistration {
	return models.EventRegistration{
		ID:          id,
		EventSlug:   "lent-hack-2026",
		ProjectName: projectName,
		CreatedAt:   createdAt,
	}
}

func TestMergeRegistrationsVersionedPrecedence(t *testing.T) {
	base := time.Date(2026, 2, 18, 8, 0, 0, 0, time.UTC)
	versioned := []models.EventRegistration{
		reg("lent-hack-2026_u1", base.Add(2*time.Minute), "versioned copy"),
		reg("lent-hack-2026_u3", base.Add(5*time.Minute), "only versioned"),
	}
	legacy := []models.EventRegistration{
		reg("lent-hack-2026_u1", base.Add(2*time.Minute), "legacy copy"),
		reg("lent-hack-2026_u2", base, "only legacy"),
	}

	merged := mergeRegistrations(versioned, legacy)
	if len(merged) != 3 {
		t.Fatalf("merged length = %d, want 3 after dedupe", len(merged))
	}

	wantOrder := []string{"lent-hack-2026_u2", "lent-hack-2026_u1", "lent-hack-2026_u3"}
	for i, want := range wantOrder {
		if merged[i].ID != want {
			t.Fatalf("position %d = %s, want %s (createdAt ascending)", i, merged[i].ID, want)
		}
	}

	if merged[1].ProjectName != "versioned copy" {
		t.Fatalf("duplicate resolved to %q, want the versioned document", merged[1].ProjectName)
	}
}

func TestMergeRegistrationsTieBreaksOnID(t *testing.T) {
	base := time.Date(2026, 2, 18, 8, 0, 0, 0, time.UTC)
	versioned := []models.EventRegistration{
		reg("lent-hack-2026_u2", base, "second"),
		reg("lent-hack-2026_u3", base.Add(time.Minute), "third"),
	}
	legacy := []models.EventRegistration{
		reg("lent-hack-2026_u1", base, "first"),
	}

	merged := mergeRegistrations(versioned, legacy)
	wantOrder := []string{"lent-hack-2026_u1", "lent-hack-2026_u2", "lent-hack-2026_u3"}
	for i, want := range wantOrder {
		if merged[i].ID != want {
			t.Fatalf("position %d = %s, want %s (id ascending within equal createdAt)", i, merged[i].ID, want)
		}
	}
}

func TestMergeRegistrationsEmptyGenerations(t *testing.T) {
	if got := mergeRegistrations(nil, nil); len(got) != 0 {
		t.Fatalf("merged length = %d, want 0", len(got))
	}

	base := time.Date(2026, 2, 18, 8, 0, 0, 0, time.UTC)
	legacyOnly := mergeRegistrations(nil, []models.EventRegistration{reg("lent-hack-2026_u1", base, "p")})
	if len(legacyOnly) != 1 || legacyOnly[0].ID != "lent-hack-2026_u1" {
		t.Fatalf("legacy-only merge = %+v", legacyOnly)
	}
}
