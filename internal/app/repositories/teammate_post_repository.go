package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// TeammatePostRepository handles database operations for teammate-search
// posts on event pages.
type TeammatePostRepository struct {
	posts db.Pair
}

// NewTeammatePostRepository creates a new TeammatePostRepository instance
func NewTeammatePostRepository(posts db.Pair) *TeammatePostRepository {
	return &TeammatePostRepository{posts: posts}
}

// Save writes a teammate post into the versioned collection, replacing any
// prior version of the same post.
func (r *TeammatePostRepository) Save(ctx context.Context, post *models.TeammatePost) error {
	if _, err := r.posts.Versioned.ReplaceOne(ctx, bson.M{"_id": post.ID}, post, replaceUpsert()); err != nil {
		return storeErr("saving teammate post", err)
	}
	return nil
}

// ListByEvent returns an event's teammate posts, newest first.
func (r *TeammatePostRepository) ListByEvent(ctx context.Context, eventSlug string, limit int) ([]models.TeammatePost, error) {
	filter := bson.M{"eventSlug": eventSlug}
	sorted := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	posts, err := db.FindManyFallback(ctx, r.posts.Fallback,
		findAll[models.TeammatePost](r.posts.Versioned, filter, sorted),
		findAll[models.TeammatePost](r.posts.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing teammate posts", err)
	}
	return posts, nil
}

// GetByUser returns a user's teammate post for an event, or nil.
func (r *TeammatePostRepository) GetByUser(ctx context.Context, eventSlug, userID string) (*models.TeammatePost, error) {
	filter := bson.M{"eventSlug": eventSlug, "userId": userID}
	post, err := db.FindOneFallback(ctx, r.posts.Fallback,
		findOne[models.TeammatePost](r.posts.Versioned, filter),
		findOne[models.TeammatePost](r.posts.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading teammate post", err)
	}
	return post, nil
}
