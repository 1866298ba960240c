package repositories

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
	"github.com/cphunt/backend/internal/pkg/logger"
)

// degradedScanLimit caps the unsorted fallback scan used when the store
// cannot serve an ordered participant query from an index.
const degradedScanLimit = 2000

// PageCursor marks the last registration of a page. The document id breaks
// ties between registrations created in the same instant, so a page boundary
// on a shared timestamp never skips rows.
type PageCursor struct {
	CreatedAt time.Time
	ID        string
}

// RegistrationPage is one page of event participants merged across schema
// generations.
type RegistrationPage struct {
	Registrations []models.EventRegistration
	NextCursor    *PageCursor
	HasMore       bool
	// Degraded is set when the page came from the capped unsorted scan.
	Degraded bool
}

// RegistrationRepository handles database operations for event registrations.
type RegistrationRepository struct {
	registrations db.Pair
}

// NewRegistrationRepository creates a new RegistrationRepository instance
func NewRegistrationRepository(registrations db.Pair) *RegistrationRepository {
	return &RegistrationRepository{registrations: registrations}
}

// GetByUser returns the registration for an event and user, or nil.
func (r *RegistrationRepository) GetByUser(ctx context.Context, eventSlug, userID string) (*models.EventRegistration, error) {
	filter := bson.M{"_id": models.RegistrationDocID(eventSlug, userID)}
	registration, err := db.FindOneFallback(ctx, r.registrations.Fallback,
		findOne[models.EventRegistration](r.registrations.Versioned, filter),
		findOne[models.EventRegistration](r.registrations.Legacy, filter),
	)
	if err != nil {
		return nil, storeErr("reading registration", err)
	}
	return registration, nil
}

// Upsert writes a registration keyed by event and user. An existing document
// keeps its createdAt so re-registering never reorders the participant list.
func (r *RegistrationRepository) Upsert(ctx context.Context, registration *models.EventRegistration) error {
	existing, err := r.GetByUser(ctx, registration.EventSlug, registration.UserID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	registration.ID = models.RegistrationDocID(registration.EventSlug, registration.UserID)
	registration.UpdatedAt = now
	if existing != nil {
		registration.CreatedAt = existing.CreatedAt
	} else {
		registration.CreatedAt = now
	}

	if _, err := r.registrations.Versioned.ReplaceOne(ctx, bson.M{"_id": registration.ID}, registration, replaceUpsert()); err != nil {
		return storeErr("upserting registration", err)
	}
	return nil
}

// UpdateUserSnapshot fans a changed user profile out onto every registration
// carrying that user's denormalized display fields.
func (r *RegistrationRepository) UpdateUserSnapshot(ctx context.Context, userID string, snapshot models.UserSnapshot) (int64, error) {
	update := bson.M{"$set": bson.M{
		"userName":      snapshot.UserName,
		"userUsername":  snapshot.UserUsername,
		"userAvatarUrl": snapshot.UserAvatarURL,
		"userBio":       snapshot.UserBio,
		"updatedAt":     time.Now().UTC(),
	}}

	result, err := r.registrations.Versioned.UpdateMany(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return 0, storeErr("fanning out user snapshot", err)
	}
	return result.ModifiedCount, nil
}

// Page returns one page of an event's participants ordered by registration
// time. Both schema generations are queried and merged, with the versioned
// document winning when a participant exists in both. When the ordered query
// cannot be served, the page falls back to a capped unsorted scan.
func (r *RegistrationRepository) Page(ctx context.Context, eventSlug string, limit int, after *PageCursor) (*RegistrationPage, error) {
	filter := bson.M{"eventSlug": eventSlug}
	if after != nil {
		if after.ID == "" {
			filter["createdAt"] = bson.M{"$gt": after.CreatedAt}
		} else {
			filter["$or"] = bson.A{
				bson.M{"createdAt": bson.M{"$gt": after.CreatedAt}},
				bson.M{"createdAt": after.CreatedAt, "_id": bson.M{"$gt": after.ID}},
			}
		}
	}

	// Over-fetch by one so hasMore is answerable without a count.
	fetch := limit + 1
	degraded := false

	versioned, err := r.pageQuery(ctx, r.registrations.Versioned, filter, fetch)
	if err != nil {
		if !db.IsMissingIndexErr(err) {
			return nil, storeErr("paging registrations", err)
		}
		logger.Warn().Str("eventSlug", eventSlug).Msg("Ordered participant query failed, using capped scan")
		degraded = true
		if versioned, err = r.cappedScan(ctx, r.registrations.Versioned, filter); err != nil {
			return nil, storeErr("scanning registrations", err)
		}
	}

	var legacy []models.EventRegistration
	if r.registrations.Fallback {
		legacy, err = r.pageQuery(ctx, r.registrations.Legacy, filter, fetch)
		if err != nil {
			if !db.IsMissingIndexErr(err) {
				return nil, storeErr("paging legacy registrations", err)
			}
			degraded = true
			if legacy, err = r.cappedScan(ctx, r.registrations.Legacy, filter); err != nil {
				return nil, storeErr("scanning legacy registrations", err)
			}
		}
	}

	merged := mergeRegistrations(versioned, legacy)
	hasMore := len(merged) > limit
	if hasMore {
		merged = merged[:limit]
	}

	page := &RegistrationPage{Registrations: merged, HasMore: hasMore, Degraded: degraded}
	if hasMore && len(merged) > 0 {
		last := merged[len(merged)-1]
		page.NextCursor = &PageCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return page, nil
}

func (r *RegistrationRepository) pageQuery(ctx context.Context, coll *mongo.Collection, filter bson.M, limit int) ([]models.EventRegistration, error) {
	sorted := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).SetLimit(int64(limit))
	return findAll[models.EventRegistration](coll, filter, sorted)(ctx)
}

func (r *RegistrationRepository) cappedScan(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]models.EventRegistration, error) {
	capped := options.Find().SetLimit(int64(degradedScanLimit))
	return findAll[models.EventRegistration](coll, filter, capped)(ctx)
}

// mergeRegistrations combines both generations, deduplicates by document id
// with versioned precedence, and restores registration-time order.
func mergeRegistrations(versioned, legacy []models.EventRegistration) []models.EventRegistration {
	seen := make(map[string]struct{}, len(versioned))
	merged := make([]models.EventRegistration, 0, len(versioned)+len(legacy))
	for _, registration := range versioned {
		seen[registration.ID] = struct{}{}
		merged = append(merged, registration)
	}
	for _, registration := range legacy {
		if _, dup := seen[registration.ID]; dup {
			continue
		}
		merged = append(merged, registration)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.Before(merged[j].CreatedAt)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}

// CountByEvent returns how many users registered for an event.
func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventSlug string) (int, error) {
	return r.countWhere(ctx, bson.M{"eventSlug": eventSlug}, "counting registrations")
}

// CountByParticipation returns how many registrations of one participation
// type an event has.
func (r *RegistrationRepository) CountByParticipation(ctx context.Context, eventSlug string, pt models.ParticipationType) (int, error) {
	return r.countWhere(ctx, bson.M{"eventSlug": eventSlug, "participationType": pt}, "counting registrations by type")
}

func (r *RegistrationRepository) countWhere(ctx context.Context, filter bson.M, op string) (int, error) {
	n, err := r.registrations.Versioned.CountDocuments(ctx, filter)
	if err != nil {
		return 0, storeErr(op, err)
	}
	if n == 0 && r.registrations.Fallback {
		n, err = r.registrations.Legacy.CountDocuments(ctx, filter)
		if err != nil {
			return 0, storeErr(op, err)
		}
	}
	return int(n), nil
}
