// Package testutil provides shared test helpers for config files and item fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

// ConfigOption configures optional fields of a generated config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	profile      string
	cacheBackend string
}

// WithProfile selects the scheduling profile of the generated config.
func WithProfile(name string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.profile = name
	}
}

// WithCacheBackend sets cache.backend of the generated config.
func WithCacheBackend(backend string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.cacheBackend = backend
	}
}

// SetupTestConfig creates a config file that points at a SQLite database inside tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		profile:      scheduling.ProfileStandard,
		cacheBackend: "memory",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	dataDir := filepath.Join(tmpDir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0755))

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
cache:
  backend: %s
  capacity: 10
scheduling:
  profile: %s
review:
  max_conflict_retries: 2
  default_due_limit: 20
`,
		filepath.Join(dataDir, "flashrev.db"),
		cfg.cacheBackend,
		cfg.profile,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// ItemOption configures optional fields when creating an item fixture.
type ItemOption func(*scheduling.Item)

// WithStatus sets the lifecycle state of the item fixture.
func WithStatus(status scheduling.Status) ItemOption {
	return func(item *scheduling.Item) {
		item.Status = status
	}
}

// WithNextReview sets the next review date of the item fixture.
func WithNextReview(next time.Time) ItemOption {
	return func(item *scheduling.Item) {
		item.NextReviewDate = next
	}
}

// WithHistory sets the review counters of the item fixture.
func WithHistory(repetitions, correct, total int) ItemOption {
	return func(item *scheduling.Item) {
		item.Repetitions = repetitions
		item.CorrectReviews = correct
		item.TotalReviews = total
	}
}

// NewItem builds a standard-profile item created at created.
// By default the item is PENDING and due at created. Use ItemOption to override.
func NewItem(id, ownerID string, created time.Time, opts ...ItemOption) scheduling.Item {
	item := scheduling.StandardProfile.NewItem(id, ownerID, scheduling.Content{
		Front:      "Front of " + id,
		Back:       "Back of " + id,
		Difficulty: scheduling.DifficultyMedium,
	}, created)
	for _, opt := range opts {
		opt(&item)
	}
	return item
}
