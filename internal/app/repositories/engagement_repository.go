package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// EngagementRepository handles database operations for upvotes and comments.
type EngagementRepository struct {
	upvotes  db.Pair
	comments db.Pair
}

// NewEngagementRepository creates a new EngagementRepository instance
func NewEngagementRepository(upvotes, comments db.Pair) *EngagementRepository {
	return &EngagementRepository{upvotes: upvotes, comments: comments}
}

// UpvoteDocID keys an upvote so a user can upvote a launch at most once.
func UpvoteDocID(userID, launchID string) string {
	return fmt.Sprintf("%s_%s", userID, launchID)
}

// Upvote records a user's upvote on a launch. Repeating the call is a no-op
// because the document id pins one upvote per user and launch.
func (r *EngagementRepository) Upvote(ctx context.Context, userID, launchID string) error {
	upvote := models.Upvote{
		ID:        UpvoteDocID(userID, launchID),
		LaunchID:  launchID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.upvotes.Versioned.ReplaceOne(ctx, bson.M{"_id": upvote.ID}, upvote, replaceUpsert()); err != nil {
		return storeErr("recording upvote", err)
	}
	return nil
}

// RemoveUpvote withdraws a user's upvote from both schema generations so the
// removal is not undone by a legacy fallback read.
func (r *EngagementRepository) RemoveUpvote(ctx context.Context, userID, launchID string) error {
	filter := bson.M{"_id": UpvoteDocID(userID, launchID)}
	if _, err := r.upvotes.Versioned.DeleteOne(ctx, filter); err != nil {
		return storeErr("removing upvote", err)
	}
	if r.upvotes.Fallback {
		if _, err := r.upvotes.Legacy.DeleteOne(ctx, filter); err != nil {
			return storeErr("removing legacy upvote", err)
		}
	}
	return nil
}

// HasUpvoted reports whether a user has upvoted a launch.
func (r *EngagementRepository) HasUpvoted(ctx context.Context, userID, launchID string) (bool, error) {
	filter := bson.M{"_id": UpvoteDocID(userID, launchID)}
	upvote, err := db.FindOneFallback(ctx, r.upvotes.Fallback,
		findOne[models.Upvote](r.upvotes.Versioned, filter),
		findOne[models.Upvote](r.upvotes.Legacy, filter),
	)
	if err != nil {
		return false, storeErr("reading upvote", err)
	}
	return upvote != nil, nil
}

// CountUpvotes returns the number of upvotes on a launch.
func (r *EngagementRepository) CountUpvotes(ctx context.Context, launchID string) (int, error) {
	return r.count(ctx, r.upvotes, bson.M{"launchId": launchID}, "counting upvotes")
}

// CountComments returns the number of comments on a launch.
func (r *EngagementRepository) CountComments(ctx context.Context, launchID string) (int, error) {
	return r.count(ctx, r.comments, bson.M{"launchId": launchID}, "counting comments")
}

// Counts returns both engagement counters for a launch.
func (r *EngagementRepository) Counts(ctx context.Context, launchID string) (*models.LaunchCounts, error) {
	upvotes, err := r.CountUpvotes(ctx, launchID)
	if err != nil {
		return nil, err
	}
	comments, err := r.CountComments(ctx, launchID)
	if err != nil {
		return nil, err
	}
	return &models.LaunchCounts{Upvotes: upvotes, Comments: comments}, nil
}

// CreateComment inserts a comment into the versioned collection.
func (r *EngagementRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if _, err := r.comments.Versioned.InsertOne(ctx, comment); err != nil {
		return storeErr("creating comment", err)
	}
	return nil
}

// ListComments returns a launch's comments, newest first.
func (r *EngagementRepository) ListComments(ctx context.Context, launchID string, limit int) ([]models.Comment, error) {
	filter := bson.M{"launchId": launchID}
	sorted := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	comments, err := db.FindManyFallback(ctx, r.comments.Fallback,
		findAll[models.Comment](r.comments.Versioned, filter, sorted),
		findAll[models.Comment](r.comments.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing comments", err)
	}
	return comments, nil
}

func (r *EngagementRepository) count(ctx context.Context, pair db.Pair, filter bson.M, op string) (int, error) {
	n, err := pair.Versioned.CountDocuments(ctx, filter)
	if err != nil {
		return 0, storeErr(op, err)
	}
	if n == 0 && pair.Fallback {
		n, err = pair.Legacy.CountDocuments(ctx, filter)
		if err != nil {
			return 0, storeErr(op, err)
		}
	}
	return int(n), nil
}
