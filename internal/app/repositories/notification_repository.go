package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// NotificationRepository handles database operations for in-app
// notifications.
type NotificationRepository struct {
	notifications db.Pair
}

// NewNotificationRepository creates a new NotificationRepository instance
func NewNotificationRepository(notifications db.Pair) *NotificationRepository {
	return &NotificationRepository{notifications: notifications}
}

// Create inserts a notification into the versioned collection.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if _, err := r.notifications.Versioned.InsertOne(ctx, notification); err != nil {
		return storeErr("creating notification", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	filter := bson.M{"userId": userID}
	sorted := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(int64(limit))
	notifications, err := db.FindManyFallback(ctx, r.notifications.Fallback,
		findAll[models.Notification](r.notifications.Versioned, filter, sorted),
		findAll[models.Notification](r.notifications.Legacy, filter, sorted),
	)
	if err != nil {
		return nil, storeErr("listing notifications", err)
	}
	return notifications, nil
}
