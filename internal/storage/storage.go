// Package storage opens the database backing the post index.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var ErrProviderUnknown = errors.New("storage: unknown provider")

// Config selects the database backend for the post index.
type Config struct {
	Provider string
	DSN      string
}

// Open connects to the configured database and wraps it with the matching bun
// dialect. Callers own the returned handle and are responsible for closing it.
func Open(cfg Config) (*bun.DB, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch provider {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		// sqlite serializes writes; a single connection avoids lock errors.
		db.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrProviderUnknown, cfg.Provider)
	}
}

// Ping verifies the connection is usable.
func Ping(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return errors.New("storage: nil database handle")
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("storage: ping: %w", err)
	}
	return nil
}
