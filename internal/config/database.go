package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo is the global client instance
var Mongo *mongo.Client

// ConnectDatabase establishes connection to the document store
func ConnectDatabase(cfg *Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	// Test connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	// Set global client instance
	Mongo = client

	log.Printf("✅ Document store connected successfully [%s]", cfg.Database.DBName)

	return client.Database(cfg.Database.DBName), nil
}

// CloseDatabase closes the document store connection
func CloseDatabase() error {
	if Mongo == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return Mongo.Disconnect(ctx)
}

// HealthCheck checks if the document store is healthy
func HealthCheck() error {
	if Mongo == nil {
		return fmt.Errorf("document store not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return Mongo.Ping(ctx, readpref.Primary())
}
