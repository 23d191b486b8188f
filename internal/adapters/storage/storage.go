// Package storage opens the scratch store selected by configuration.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage/file"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage/memory"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage/sqlite"
	"github.com/vncsmyrnk/ballotwizard/internal/config"
	"github.com/vncsmyrnk/ballotwizard/internal/core/ports"
)

// Open returns the configured store and a function releasing it.
func Open(cfg config.Config) (ports.ScratchStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage {
	case config.StorageMemory:
		return memory.NewStore(), noop, nil
	case config.StorageFile:
		store, err := file.NewStore(cfg.StorageDir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Postgres.ConnString())
		if err != nil {
			return nil, noop, err
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("ping postgres: %w", err)
		}
		return postgres.NewScratchRepository(db), db.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage %q", cfg.Storage)
}
