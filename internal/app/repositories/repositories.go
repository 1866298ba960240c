package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cphunt/backend/internal/db"
	"github.com/cphunt/backend/internal/pkg/apperrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TopicRepository        *TopicRepository
	ProductRepository      *ProductRepository
	LaunchRepository       *LaunchRepository
	EngagementRepository   *EngagementRepository
	FollowRepository       *FollowRepository
	NotificationRepository *NotificationRepository
	ReportRepository       *ReportRepository
	RegistrationRepository *RegistrationRepository
	TeammatePostRepository *TeammatePostRepository
	ApplicationRepository  *ApplicationRepository
}

// NewRepositories wires every repository to its physical collection pair.
func NewRepositories(database *mongo.Database, schema db.Schema) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(schema.Collections(database, db.CollUsers)),
		TopicRepository:        NewTopicRepository(schema.Collections(database, db.CollTopics)),
		ProductRepository:      NewProductRepository(schema.Collections(database, db.CollProducts), schema.Collections(database, db.CollProductMedia)),
		LaunchRepository:       NewLaunchRepository(schema.Collections(database, db.CollLaunches)),
		EngagementRepository:   NewEngagementRepository(schema.Collections(database, db.CollUpvotes), schema.Collections(database, db.CollComments)),
		FollowRepository:       NewFollowRepository(schema.Collections(database, db.CollFollows)),
		NotificationRepository: NewNotificationRepository(schema.Collections(database, db.CollNotifications)),
		ReportRepository:       NewReportRepository(schema.Collections(database, db.CollReports)),
		RegistrationRepository: NewRegistrationRepository(schema.Collections(database, db.CollEventRegistrations)),
		TeammatePostRepository: NewTeammatePostRepository(schema.Collections(database, db.CollTeammatePosts)),
		ApplicationRepository:  NewApplicationRepository(schema.Collections(database, db.CollEventApplications)),
	}
}

// storeErr marks a document-store failure so the API layer surfaces it as a
// 503 rather than a validation error.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperrors.ErrBackendUnavailable, op, err)
}

func replaceUpsert() *options.ReplaceOptionsBuilder {
	return options.Replace().SetUpsert(true)
}

// findOne builds a point-read closure suitable for db.FindOneFallback.
func findOne[T any](coll *mongo.Collection, filter bson.M) func(context.Context) (*T, error) {
	return func(ctx context.Context) (*T, error) {
		var doc T
		if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}
}

// findAll builds a list-read closure suitable for db.FindManyFallback.
func findAll[T any](coll *mongo.Collection, filter bson.M, opts ...options.Lister[options.FindOptions]) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		cursor, err := coll.Find(ctx, filter, opts...)
		if err != nil {
			return nil, err
		}
		var docs []T
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}
}
