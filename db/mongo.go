package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"tour-planner/internal/logger"
)

const CollectionTravelPlans = "travel_plans"

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database.
// It is only called by the sandbox when sandbox.mongo_uri is configured.
func Init(ctx context.Context, uri, dbName string) error {
	var initErr error
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			_ = cl.Disconnect(context.Background())
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.InfoWithFields("MongoDB connected and indexes ensured", logger.Fields{"database": dbName})
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Close disconnects the global client if Init succeeded.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// travel_plans: a user's plans, newest first
	if _, err := d.Collection(CollectionTravelPlans).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_user_created_at"),
	}); err != nil {
		return err
	}
	return nil
}
