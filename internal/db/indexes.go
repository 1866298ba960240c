package db

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the indexes the query paths expect, on the versioned
// collections only. Failures are logged and skipped: every ordered query has
// a degraded full-scan fallback, so a missing index must not block startup.
func EnsureIndexes(ctx context.Context, database *mongo.Database, schema Schema, lgr zerolog.Logger) {
	specs := map[CollectionKey][]mongo.IndexModel{
		CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollLaunches: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "launchDate", Value: -1}}},
		},
		CollUpvotes: {
			{Keys: bson.D{{Key: "launchId", Value: 1}}},
		},
		CollComments: {
			{Keys: bson.D{{Key: "launchId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollProducts: {
			{Keys: bson.D{{Key: "slug", Value: 1}}},
			{Keys: bson.D{{Key: "makerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollTopics: {
			{Keys: bson.D{{Key: "slug", Value: 1}}},
		},
		CollFollows: {
			{Keys: bson.D{{Key: "followeeId", Value: 1}}},
		},
		CollNotifications: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		CollReports: {
			{Keys: bson.D{{Key: "launchId", Value: 1}}},
		},
		CollEventRegistrations: {
			{Keys: bson.D{{Key: "eventSlug", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		CollTeammatePosts: {
			{Keys: bson.D{{Key: "eventSlug", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for key, models := range specs {
		coll := database.Collection(schema.VersionedName(key))
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			lgr.Warn().Err(err).Str("collection", schema.VersionedName(key)).Msg("Failed to ensure indexes, queries will use degraded scan path")
		}
	}
}
