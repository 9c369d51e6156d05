// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Package migration applies the SQL migrations under data/migrations at
// startup with golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies all pending UP migrations found in migrationsPath.
func RunUp(dsn, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, toPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, dbErr := migrator.Close()
		if sourceErr != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
		}
		if dbErr != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
		}
	}()

	migrator.Log = &slogBridge{logger: logger}

	current, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d", current)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date", slog.Uint64("version", uint64(current)))
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	next, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Uint64("from_version", uint64(current)),
		slog.Uint64("to_version", uint64(next)),
	)
	return nil
}

// toPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme.
func toPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// slogBridge adapts migrate.Logger to slog.
type slogBridge struct {
	logger *slog.Logger
}

func (b *slogBridge) Printf(format string, args ...any) {
	b.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b *slogBridge) Verbose() bool { return false }
