package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// TopicRepository handles database operations for product topics.
type TopicRepository struct {
	topics db.Pair
}

// NewTopicRepository creates a new TopicRepository instance
func NewTopicRepository(topics db.Pair) *TopicRepository {
	return &TopicRepository{topics: topics}
}

// GetBySlug returns the topic with the given slug, or nil.
func (r *TopicRepository) GetBySlug(ctx context.Context, slug string) (*models.Topic, error) {
	filter := bson.M{"slug": slug}
	topic, err := db.FindOneFallback(ctx, r.topics.Fallback,
		findOne[models.Topic](r.topics.Versioned, filter),
		findOne[models.Topic](r.topics.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading topic by slug", err)
	}
	return topic, nil
}

// List returns all topics ordered by name.
func (r *TopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	sorted := options.Find().SetSort(bson.M{"name": 1})
	topics, err := db.FindManyFallback(ctx, r.topics.Fallback,
		findAll[models.Topic](r.topics.Versioned, bson.M{}, sorted),
		findAll[models.Topic](r.topics.Legacy, bson.M{}, sorted),
	)
	if err != nil {
		return nil, storeErr("listing topics", err)
	}
	return topics, nil
}

// Create inserts a new topic into the versioned collection.
func (r *TopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	if _, err := r.topics.Versioned.InsertOne(ctx, topic); err != nil {
		return storeErr("creating topic", err)
	}
	return nil
}
