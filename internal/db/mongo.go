package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/cphunt/backend/internal/config"
	"github.com/cphunt/backend/internal/pkg/helpers"
)

// Mongo wraps the database client and the application database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo establishes a MongoDB connection and verifies it with a ping.
func NewMongo(cfg *config.Config) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	timeout := helpers.ParseDuration(cfg.Database.ConnectTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Mongo{
		Client: client,
		DB:     client.Database(cfg.Database.DBName),
	}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
