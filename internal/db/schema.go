package db

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// CollectionKey identifies a logical collection independent of its
// physical, schema-versioned name.
type CollectionKey string

const (
	CollUsers              CollectionKey = "users"
	CollTopics             CollectionKey = "topics"
	CollProducts           CollectionKey = "products"
	CollLaunches           CollectionKey = "launches"
	CollProductMedia       CollectionKey = "productMedia"
	CollUpvotes            CollectionKey = "upvotes"
	CollComments           CollectionKey = "comments"
	CollFollows            CollectionKey = "follows"
	CollNotifications      CollectionKey = "notifications"
	CollReports            CollectionKey = "reports"
	CollEventRegistrations CollectionKey = "eventRegistrations"
	CollTeammatePosts      CollectionKey = "teammatePosts"
	CollEventApplications  CollectionKey = "eventApplications"
)

// SchemaMetaCollection holds the migration status document.
const (
	SchemaMetaCollection = "cph_schema_meta"
	SchemaMetaDocID      = "active"
)

// AllCollectionKeys returns every logical collection, in migration order.
func AllCollectionKeys() []CollectionKey {
	return []CollectionKey{
		CollUsers,
		CollTopics,
		CollProducts,
		CollLaunches,
		CollProductMedia,
		CollUpvotes,
		CollComments,
		CollFollows,
		CollNotifications,
		CollReports,
		CollEventRegistrations,
		CollTeammatePosts,
		CollEventApplications,
	}
}

// Schema maps logical collections to their physical names for one schema
// generation. Writes always target the versioned collection; reads may fall
// back to the legacy collection while a migration is in flight.
type Schema struct {
	// Version tag, e.g. "v1".
	Version string
	// LegacyFallback enables dual reads against the legacy collections.
	LegacyFallback bool
}

// NewSchema builds the schema map for a version tag.
func NewSchema(version string, legacyFallback bool) Schema {
	return Schema{Version: version, LegacyFallback: legacyFallback}
}

// Namespace returns the versioned collection name prefix, e.g. "cph_v1".
func (s Schema) Namespace() string {
	return "cph_" + s.Version
}

// LegacyName returns the pre-versioning physical collection name.
func (s Schema) LegacyName(key CollectionKey) string {
	return string(key)
}

// VersionedName returns the namespaced physical collection name.
func (s Schema) VersionedName(key CollectionKey) string {
	return fmt.Sprintf("%s_%s", s.Namespace(), key)
}

// Pair bundles the two physical collections backing one logical collection.
type Pair struct {
	Versioned *mongo.Collection
	Legacy    *mongo.Collection
	// Fallback mirrors Schema.LegacyFallback for the repositories.
	Fallback bool
}

// Collections resolves the physical collection pair for a logical key.
func (s Schema) Collections(database *mongo.Database, key CollectionKey) Pair {
	return Pair{
		Versioned: database.Collection(s.VersionedName(key)),
		Legacy:    database.Collection(s.LegacyName(key)),
		Fallback:  s.LegacyFallback,
	}
}
