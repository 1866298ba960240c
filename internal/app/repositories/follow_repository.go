package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// FollowRepository handles database operations for maker follows.
type FollowRepository struct {
	follows db.Pair
}

// NewFollowRepository creates a new FollowRepository instance
func NewFollowRepository(follows db.Pair) *FollowRepository {
	return &FollowRepository{follows: follows}
}

// Save writes a follow edge into the versioned collection. The
// "<followerId>_<followeeId>" document id makes repeats idempotent.
func (r *FollowRepository) Save(ctx context.Context, follow *models.Follow) error {
	if _, err := r.follows.Versioned.ReplaceOne(ctx, bson.M{"_id": follow.ID}, follow, replaceUpsert()); err != nil {
		return storeErr("saving follow", err)
	}
	return nil
}

// CountFollowers returns how many users follow the given user.
func (r *FollowRepository) CountFollowers(ctx context.Context, followeeID string) (int, error) {
	filter := bson.M{"followeeId": followeeID}
	count, err := r.follows.Versioned.CountDocuments(ctx, filter)
	if err != nil {
		return 0, storeErr("counting followers", err)
	}
	if r.follows.Fallback {
		legacy, err := r.follows.Legacy.CountDocuments(ctx, filter)
		if err != nil {
			return 0, storeErr("counting legacy followers", err)
		}
		count += legacy
	}
	return int(count), nil
}
