package store

import (
	"context"
	"fmt"

	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
)

// LocalStorages groups the local replica repositories into a single value
// that can be passed around the service layer.
type LocalStorages struct {
	// EntityRepository is the SQLite-backed repository for synchronizable
	// records.
	EntityRepository EntityRepository

	// QueueRepository persists the sync queue across restarts.
	QueueRepository QueueRepository
}

// NewLocalStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [LocalStorages] value wired to fresh
//     repositories sharing the connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewLocalStorages(cfg config.ClientStorage, logger *logger.Logger) (*LocalStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &LocalStorages{
		EntityRepository: NewEntityRepository(db, logger),
		QueueRepository:  NewQueueRepository(db, logger),
	}, nil
}
