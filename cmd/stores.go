package cmd

import (
	"fmt"

	"google-reviews/internal/data/repository"
	"google-reviews/pkg/database"
	"google-reviews/pkg/utils"

	"go.uber.org/zap"
)

// openStores builds the option and transient repositories for the configured
// drivers. The returned func releases every connection that was opened.
func openStores(config *utils.Config, log *zap.Logger) (*repository.Repository, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var db database.PgxIface
	if config.UsesPostgres() {
		var err error
		db, err = database.InitDB(config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		closers = append(closers, db.Close)
		log.Info("Database connected successfully")
	}

	var option repository.OptionRepository
	switch config.Storage.Driver {
	case "postgres":
		option = repository.NewOptionRepository(db, log)
	default:
		log.Warn("Settings are kept in memory and lost on restart")
		option = repository.NewMemoryOptionRepository()
	}

	var transient repository.TransientRepository
	switch config.Storage.CacheDriver {
	case "postgres":
		transient = repository.NewTransientRepository(db, log)
	case "redis":
		client, err := database.InitRedis(config.Redis)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, func() { client.Close() })
		log.Info("Redis connected successfully")
		transient = repository.NewRedisTransientRepository(client, log)
	default:
		transient = repository.NewMemoryTransientRepository()
	}

	return repository.NewRepository(option, transient), closeAll, nil
}
