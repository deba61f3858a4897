// Package storage implements the persistence collaborator for user settings
// (categories, auto-category rules and limits). The core never touches the
// file system itself: the host supplies the database DSN, which is an
// in-memory SQLite database in tests and the CLI.
package storage

import (
	"tally/internal/models"
)

// Snapshot is the full persisted settings set.
type Snapshot struct {
	Categories []models.Category
	Rules      []models.AutoCategoryRule
	Limits     []models.CategoryLimit
}

// Store is the persistence collaborator contract. Save carries
// replace-or-upsert intent; Load returns (nil, nil) when nothing has been
// persisted yet. Partial failures surface as a single opaque ErrSyncFailure;
// the core performs no automatic retry.
type Store interface {
	Save(categories []models.Category, rules []models.AutoCategoryRule, limits []models.CategoryLimit) error
	Load() (*Snapshot, error)
}

// KV is the minimal key-value capability for small persisted settings such
// as the chosen currency format. The host environment supplies an
// implementation; the core never assumes where values live.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}
