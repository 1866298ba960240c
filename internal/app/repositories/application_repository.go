package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// ApplicationRepository handles database operations for event applications.
type ApplicationRepository struct {
	applications db.Pair
}

// NewApplicationRepository creates a new ApplicationRepository instance
func NewApplicationRepository(applications db.Pair) *ApplicationRepository {
	return &ApplicationRepository{applications: applications}
}

// GetByUser returns the application for an event and user, or nil.
func (r *ApplicationRepository) GetByUser(ctx context.Context, eventSlug, userID string) (*models.EventApplication, error) {
	filter := bson.M{"_id": models.RegistrationDocID(eventSlug, userID)}
	application, err := db.FindOneFallback(ctx, r.applications.Fallback,
		findOne[models.EventApplication](r.applications.Versioned, filter),
		findOne[models.EventApplication](r.applications.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading application", err)
	}
	return application, nil
}

// Save writes the whole application document to the versioned collection.
func (r *ApplicationRepository) Save(ctx context.Context, application *models.EventApplication) error {
	application.ID = models.RegistrationDocID(application.EventSlug, application.UserID)
	if _, err := r.applications.Versioned.ReplaceOne(ctx, bson.M{"_id": application.ID}, application, replaceUpsert()); err != nil {
		return storeErr("saving application", err)
	}
	return nil
}

// FindByMemberEmail returns the application on which the given email appears
// as a team member, or nil. Used to route a teammate to the owner's document.
func (r *ApplicationRepository) FindByMemberEmail(ctx context.Context, eventSlug, email string) (*models.EventApplication, error) {
	filter := bson.M{"eventSlug": eventSlug, "teamMembers.email": NormalizeEmail(email)}
	application, err := db.FindOneFallback(ctx, r.applications.Fallback,
		findOne[models.EventApplication](r.applications.Versioned, filter),
		findOne[models.EventApplication](r.applications.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading application by member email", err)
	}
	return application, nil
}

// ListByEvent returns every application for an event, used by moderators.
func (r *ApplicationRepository) ListByEvent(ctx context.Context, eventSlug string) ([]models.EventApplication, error) {
	filter := bson.M{"eventSlug": eventSlug}
	applications, err := db.FindManyFallback(ctx, r.applications.Fallback,
		findAll[models.EventApplication](r.applications.Versioned, filter),
		findAll[models.EventApplication](r.applications.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("listing applications", err)
	}
	return applications, nil
}

// CountSubmitted returns how many applications for an event were submitted.
func (r *ApplicationRepository) CountSubmitted(ctx context.Context, eventSlug string) (int, error) {
	filter := bson.M{"eventSlug": eventSlug, "status": models.ApplicationSubmitted}
	n, err := r.applications.Versioned.CountDocuments(ctx, filter)
	if err != nil {
		return 0, storeErr("counting submitted applications", err)
	}
	if n == 0 && r.applications.Fallback {
		n, err = r.applications.Legacy.CountDocuments(ctx, filter)
		if err != nil {
			return 0, storeErr("counting submitted applications", err)
		}
	}
	return int(n), nil
}
