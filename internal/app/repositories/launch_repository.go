package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// LaunchRepository handles database operations for product launches.
type LaunchRepository struct {
	launches db.Pair
}

// NewLaunchRepository creates a new LaunchRepository instance
func NewLaunchRepository(launches db.Pair) *LaunchRepository {
	return &LaunchRepository{launches: launches}
}

// GetByID returns the launch with the given id, or nil.
func (r *LaunchRepository) GetByID(ctx context.Context, id string) (*models.Launch, error) {
	filter := bson.M{"_id": id}
	launch, err := db.FindOneFallback(ctx, r.launches.Fallback,
		findOne[models.Launch](r.launches.Versioned, filter),
		findOne[models.Launch](r.launches.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading launch by id", err)
	}
	return launch, nil
}

// ListLive returns up to limit live launches, newest launch date first. The
// feed ranker reorders them by score afterwards.
func (r *LaunchRepository) ListLive(ctx context.Context, limit int) ([]models.Launch, error) {
	filter := bson.M{"status": models.StatusLive}
	sorted := options.Find().SetSort(bson.M{"launchDate": -1}).SetLimit(int64(limit))
	launches, err := db.FindManyFallback(ctx, r.launches.Fallback,
		findAll[models.Launch](r.launches.Versioned, filter, sorted),
		findAll[models.Launch](r.launches.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing live launches", err)
	}
	return launches, nil
}

// ListByProduct returns a product's launches, newest launch date first.
func (r *LaunchRepository) ListByProduct(ctx context.Context, productID string) ([]models.Launch, error) {
	filter := bson.M{"productId": productID}
	sorted := options.Find().SetSort(bson.M{"launchDate": -1})
	launches, err := db.FindManyFallback(ctx, r.launches.Fallback,
		findAll[models.Launch](r.launches.Versioned, filter, sorted),
		findAll[models.Launch](r.launches.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing launches by product", err)
	}
	return launches, nil
}

// Create inserts a new launch into the versioned collection.
func (r *LaunchRepository) Create(ctx context.Context, launch *models.Launch) error {
	if _, err := r.launches.Versioned.InsertOne(ctx, launch); err != nil {
		return storeErr("creating launch", err)
	}
	return nil
}
