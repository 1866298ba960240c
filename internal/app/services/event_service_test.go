package services

import (
	"testing"
	"time"

	"github.com/cphunt/backend/internal/app/repositories"
)

func TestParticipantCursorRoundTrip(t *testing.T) {
	cursor := repositories.PageCursor{
		CreatedAt: time.Date(2026, 2, 18, 8, 0, 0, 123456789, time.UTC),
		ID:        "lent-hack-2026_u42",
	}

	decoded, err := decodeParticipantCursor(encodeParticipantCursor(cursor))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.CreatedAt.Equal(cursor.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", decoded.CreatedAt, cursor.CreatedAt)
	}
	if decoded.ID != cursor.ID {
		t.Errorf("id = %q, want %q", decoded.ID, cursor.ID)
	}
}

func TestDecodeParticipantCursor(t *testing.T) {
	t.Run("empty means first page", func(t *testing.T) {
		decoded, err := decodeParticipantCursor("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decoded != nil {
			t.Errorf("expected nil cursor, got %+v", decoded)
		}
	})

	t.Run("bare timestamp from an older client", func(t *testing.T) {
		stamp := time.Date(2026, 2, 18, 8, 0, 0, 0, time.UTC)
		decoded, err := decodeParticipantCursor(stamp.Format(time.RFC3339Nano))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !decoded.CreatedAt.Equal(stamp) {
			t.Errorf("createdAt = %v, want %v", decoded.CreatedAt, stamp)
		}
		if decoded.ID != "" {
			t.Errorf("expected empty id for a bare timestamp, got %q", decoded.ID)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		if _, err := decodeParticipantCursor("not-a-cursor"); err == nil {
			t.Fatal("expected an error for a malformed cursor")
		}
	})
}
