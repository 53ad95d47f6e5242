package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/pradyumyelame/EasyToStay/internal/repository"
)

// NewMongo connects to uri and pings the server before returning the database.
func NewMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, client.Database(database), nil
}

// EnsureIndexes creates the unique email index and the lookup indexes. With
// reset set, the collections are dropped first.
func EnsureIndexes(ctx context.Context, db *mongo.Database, reset bool, log *zap.Logger) error {
	if reset {
		log.Warn("RESET_DB=true detected, dropping all collections")
		for _, name := range []string{repository.BookingsCollection, repository.PlacesCollection, repository.UsersCollection} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				log.Warn("failed to drop collection", zap.String("collection", name), zap.Error(err))
			}
		}
	}

	indexes := map[string]mongo.IndexModel{
		repository.UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		repository.PlacesCollection: {
			Keys: bson.D{{Key: "owner", Value: 1}},
		},
		repository.BookingsCollection: {
			Keys: bson.D{{Key: "user", Value: 1}, {Key: "checkIn", Value: 1}},
		},
	}
	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("create %s index: %w", coll, err)
		}
	}
	return nil
}
