package db

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pradyumyelame/EasyToStay/internal/config"
	"github.com/pradyumyelame/EasyToStay/internal/repository"
)

// Open connects to the store selected by cfg.Store.Driver, prepares its schema
// and returns the repositories with a function releasing the connection.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Stores, func(context.Context) error, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, database, err := NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return repository.Stores{}, nil, err
		}
		if err := EnsureIndexes(ctx, database, cfg.Store.ResetDB, log); err != nil {
			_ = client.Disconnect(context.Background())
			return repository.Stores{}, nil, err
		}
		log.Info("connected to mongo", zap.String("database", cfg.Mongo.Database))
		return repository.NewMongoStores(database), client.Disconnect, nil

	case config.DriverMySQL:
		gormDB, err := NewMySQL(cfg.MySQL.DSN)
		if err != nil {
			return repository.Stores{}, nil, err
		}
		if err := Migrate(gormDB, cfg.Store.ResetDB, log); err != nil {
			return repository.Stores{}, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return repository.Stores{}, nil, fmt.Errorf("mysql handle: %w", err)
		}
		log.Info("connected to mysql")
		return repository.NewGormStores(gormDB), func(context.Context) error { return sqlDB.Close() }, nil

	default:
		return repository.Stores{}, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
