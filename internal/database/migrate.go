package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/flashrev/internal/config"
	"github.com/at-ishikawa/flashrev/schemas"
)

var migrationTableDDL = map[string]string{
	config.DriverMySQL:    "CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(255) NOT NULL PRIMARY KEY, applied_at DATETIME(6) NOT NULL)",
	config.DriverPostgres: "CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(255) NOT NULL PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL)",
	config.DriverSQLite:   "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT NOT NULL PRIMARY KEY, applied_at DATETIME NOT NULL)",
}

// Migrate applies the embedded migrations for driver that have not been applied yet,
// in file name order, and returns the versions it applied.
func Migrate(ctx context.Context, db *sqlx.DB, driver string) ([]string, error) {
	return migrate(ctx, db, driver, schemas.Migrations)
}

func migrate(ctx context.Context, db *sqlx.DB, driver string, migrations fs.FS) ([]string, error) {
	ddl, ok := migrationTableDDL[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("db.ExecContext(schema_migrations) > %w", err)
	}

	dir := path.Join("migrations", driver)
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("fs.ReadDir(%s) > %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(schema_migrations) > %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" || done[entry.Name()] {
			continue
		}
		version := entry.Name()
		content, err := fs.ReadFile(migrations, path.Join(dir, version))
		if err != nil {
			return versions, fmt.Errorf("fs.ReadFile(%s) > %w", version, err)
		}

		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("apply migration %s: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)"), version, time.Now().UTC()); err != nil {
				return fmt.Errorf("record migration %s: %w", version, err)
			}
			return nil
		}); err != nil {
			return versions, err
		}
		slog.Default().Info("applied migration", "version", version, "driver", driver)
		versions = append(versions, version)
	}
	return versions, nil
}
