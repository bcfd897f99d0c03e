// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	assignmentstore "github.com/dalemusser/standin/internal/app/store/assignments"
	availabilitystore "github.com/dalemusser/standin/internal/app/store/availability"
	eventstore "github.com/dalemusser/standin/internal/app/store/events"
	notificationstore "github.com/dalemusser/standin/internal/app/store/notifications"
	requeststore "github.com/dalemusser/standin/internal/app/store/requests"
	userstore "github.com/dalemusser/standin/internal/app/store/users"
	"github.com/dalemusser/standin/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping
// before the rest of startup proceeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes every store relies on. It runs once at
// startup, after ConnectDB and before the HTTP handler is built.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	ensure := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", userstore.New(db).EnsureIndexes},
		{"events", eventstore.New(db).EnsureIndexes},
		{"assignments", assignmentstore.New(db).EnsureIndexes},
		{"availability", availabilitystore.New(db).EnsureIndexes},
		{"requests", requeststore.New(db).EnsureIndexes},
		{"notifications", notificationstore.New(db).EnsureIndexes},
	}

	for _, e := range ensure {
		if err := e.fn(ctx); err != nil {
			logger.Error("index creation failed",
				zap.String("collection", e.name), zap.Error(err))
			return fmt.Errorf("ensure %s indexes: %w", e.name, err)
		}
	}

	logger.Info("schema ensured", zap.Int("collections", len(ensure)))
	return nil
}
