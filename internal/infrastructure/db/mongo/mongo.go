package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to reach the user database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// DB bundles a connected client with the selected database.
type DB struct {
	client *mongo.Client
	*mongo.Database
}

// Connect establishes a MongoDB client and verifies it with a ping. A default
// timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName("passenger-auth"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &DB{client: client, Database: client.Database(cfg.Database)}, nil
}

// Ping runs the ping command against the selected database.
func (d *DB) Ping(ctx context.Context) error {
	return d.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
