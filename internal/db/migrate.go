package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// migrateBatchSize bounds how many documents are copied per batch write.
const migrateBatchSize = 300

// CollectionReport describes the migration outcome for one logical collection.
type CollectionReport struct {
	Key            string `bson:"key" json:"key"`
	Legacy         string `bson:"legacyCollection" json:"legacyCollection"`
	Versioned      string `bson:"versionedCollection" json:"versionedCollection"`
	Copied         int64  `bson:"copied" json:"copied"`
	LegacyCount    int64  `bson:"legacyCount" json:"legacyCount"`
	VersionedCount int64  `bson:"versionedCount" json:"versionedCount"`
}

// SchemaMeta is the migration status document kept alongside the data.
type SchemaMeta struct {
	ActiveVersion   string             `bson:"activeVersion" json:"activeVersion"`
	ActiveNamespace string             `bson:"activeNamespace" json:"activeNamespace"`
	MigratedAt      time.Time          `bson:"migratedAt" json:"migratedAt"`
	Collections     []CollectionReport `bson:"collections" json:"collections"`
}

// Migrator copies legacy collections into their versioned counterparts
// without touching the legacy data. It is run out of band, never on the
// request path.
type Migrator struct {
	database *mongo.Database
	schema   Schema
}

// NewMigrator creates a migrator for one schema generation.
func NewMigrator(database *mongo.Database, schema Schema) *Migrator {
	return &Migrator{database: database, schema: schema}
}

// copyCollection batch-copies every legacy document into the versioned
// collection, upserting by id so re-runs are idempotent.
func (m *Migrator) copyCollection(ctx context.Context, legacyName, versionedName string) (int64, error) {
	source := m.database.Collection(legacyName)
	target := m.database.Collection(versionedName)

	cursor, err := source.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var copied int64
	writes := make([]mongo.WriteModel, 0, migrateBatchSize)

	flush := func() error {
		if len(writes) == 0 {
			return nil
		}
		if _, err := target.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
			return err
		}
		copied += int64(len(writes))
		writes = writes[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return copied, err
		}
		id := doc["_id"]
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(doc).
			SetUpsert(true))

		if len(writes) >= migrateBatchSize {
			if err := flush(); err != nil {
				return copied, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return copied, err
	}
	if err := flush(); err != nil {
		return copied, err
	}
	return copied, nil
}

// Run migrates every logical collection and records a report in the schema
// meta document.
func (m *Migrator) Run(ctx context.Context) (*SchemaMeta, error) {
	reports := make([]CollectionReport, 0, len(AllCollectionKeys()))

	for _, key := range AllCollectionKeys() {
		legacyName := m.schema.LegacyName(key)
		versionedName := m.schema.VersionedName(key)

		legacyCount, err := m.database.Collection(legacyName).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}

		var copied int64
		if legacyCount > 0 {
			copied, err = m.copyCollection(ctx, legacyName, versionedName)
			if err != nil {
				return nil, err
			}
		}

		versionedCount, err := m.database.Collection(versionedName).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}

		reports = append(reports, CollectionReport{
			Key:            string(key),
			Legacy:         legacyName,
			Versioned:      versionedName,
			Copied:         copied,
			LegacyCount:    legacyCount,
			VersionedCount: versionedCount,
		})
	}

	meta := &SchemaMeta{
		ActiveVersion:   m.schema.Version,
		ActiveNamespace: m.schema.Namespace(),
		MigratedAt:      time.Now().UTC(),
		Collections:     reports,
	}

	metaColl := m.database.Collection(SchemaMetaCollection)
	_, err := metaColl.ReplaceOne(ctx,
		bson.M{"_id": SchemaMetaDocID},
		bson.M{
			"_id":             SchemaMetaDocID,
			"activeVersion":   meta.ActiveVersion,
			"activeNamespace": meta.ActiveNamespace,
			"migratedAt":      meta.MigratedAt,
			"collections":     meta.Collections,
		},
		options.Replace().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	return meta, nil
}

// Status reports per-collection document counts for both schema generations
// plus the last recorded migration, without writing anything.
func (m *Migrator) Status(ctx context.Context) ([]CollectionReport, *SchemaMeta, error) {
	reports := make([]CollectionReport, 0, len(AllCollectionKeys()))

	for _, key := range AllCollectionKeys() {
		legacyName := m.schema.LegacyName(key)
		versionedName := m.schema.VersionedName(key)

		legacyCount, err := m.database.Collection(legacyName).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, nil, err
		}
		versionedCount, err := m.database.Collection(versionedName).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, nil, err
		}

		reports = append(reports, CollectionReport{
			Key:            string(key),
			Legacy:         legacyName,
			Versioned:      versionedName,
			LegacyCount:    legacyCount,
			VersionedCount: versionedCount,
		})
	}

	var meta SchemaMeta
	err := m.database.Collection(SchemaMetaCollection).
		FindOne(ctx, bson.M{"_id": SchemaMetaDocID}).
		Decode(&meta)
	if err != nil {
		if IsNotFound(err) {
			return reports, nil, nil
		}
		return nil, nil, err
	}

	return reports, &meta, nil
}
