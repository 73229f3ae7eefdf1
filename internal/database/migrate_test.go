package database

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashrev/internal/config"
)

func openSQLite(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "flashrev.db"),
	}
}

func TestMigrate_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Open(openSQLite(t))
	require.NoError(t, err)
	defer db.Close()

	applied, err := Migrate(ctx, db, config.DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_create_items.sql", "0002_create_review_events.sql", "0003_add_review_context.sql"}, applied)

	again, err := Migrate(ctx, db, config.DriverSQLite)
	require.NoError(t, err)
	assert.Empty(t, again)

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables, "SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('items', 'review_events') ORDER BY name"))
	assert.Equal(t, []string{"items", "review_events"}, tables)
}

func TestMigrate_StopsAtFailingMigration(t *testing.T) {
	ctx := context.Background()
	db, err := Open(openSQLite(t))
	require.NoError(t, err)
	defer db.Close()

	migrations := fstest.MapFS{
		"migrations/sqlite/0001_ok.sql":     {Data: []byte("CREATE TABLE a (id INTEGER PRIMARY KEY);")},
		"migrations/sqlite/0002_broken.sql": {Data: []byte("CREATE TABLE b (")},
		"migrations/sqlite/0003_never.sql":  {Data: []byte("CREATE TABLE c (id INTEGER PRIMARY KEY);")},
		"migrations/sqlite/README.md":       {Data: []byte("not a migration")},
	}

	applied, err := migrate(ctx, db, config.DriverSQLite, migrations)
	assert.ErrorContains(t, err, "0002_broken.sql")
	assert.Equal(t, []string{"0001_ok.sql"}, applied)

	var versions []string
	require.NoError(t, db.SelectContext(ctx, &versions, "SELECT version FROM schema_migrations"))
	assert.Equal(t, []string{"0001_ok.sql"}, versions)
}

func TestMigrate_UnsupportedDriver(t *testing.T) {
	db, err := Open(openSQLite(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(context.Background(), db, "oracle")
	assert.ErrorContains(t, err, "unsupported database driver")
}
