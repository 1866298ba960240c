package services

import (
	"testing"
	"time"

	"github.com/cphunt/backend/internal/app/models"
)

func comment(id string, parentID *string, minute int) models.Comment {
	return models.Comment{
		ID:        id,
		LaunchID:  "launch-1",
		UserID:    "user-1",
		Body:      "body " + id,
		ParentID:  parentID,
		CreatedAt: time.Date(2026, 3, 1, 12, minute, 0, 0, time.UTC),
	}
}

func TestThreadCommentsGroupsRepliesUnderParents(t *testing.T) {
	parent := "c1"
	// Repository order: newest first.
	threads := threadComments([]models.Comment{
		comment("c4", nil, 40),
		comment("c3", &parent, 30),
		comment("c2", &parent, 20),
		comment("c1", nil, 10),
	})

	if len(threads) != 2 {
		t.Fatalf("expected 2 top-level threads, got %d", len(threads))
	}
	if threads[0].ID != "c4" || threads[1].ID != "c1" {
		t.Fatalf("unexpected top-level order: %s, %s", threads[0].ID, threads[1].ID)
	}
	replies := threads[1].Replies
	if len(replies) != 2 {
		t.Fatalf("expected 2 replies under c1, got %d", len(replies))
	}
	if replies[0].ID != "c2" || replies[1].ID != "c3" {
		t.Errorf("replies not in posting order: %s, %s", replies[0].ID, replies[1].ID)
	}
}

func TestThreadCommentsPromotesOrphanReplies(t *testing.T) {
	missing := "gone"
	threads := threadComments([]models.Comment{
		comment("c2", nil, 20),
		comment("c1", &missing, 10),
	})

	if len(threads) != 2 {
		t.Fatalf("expected orphan reply promoted to top level, got %d threads", len(threads))
	}
	if threads[0].ID != "c2" || threads[1].ID != "c1" {
		t.Errorf("unexpected order: %s, %s", threads[0].ID, threads[1].ID)
	}
}

func TestThreadCommentsEmpty(t *testing.T) {
	if threads := threadComments(nil); len(threads) != 0 {
		t.Errorf("expected no threads, got %d", len(threads))
	}
}
