package storage

import (
	"context"

	"github.com/casenav-io/casenav/core"
)

// ArtifactRepository persists the two durable artifacts of the search
// subsystem: the embedding cache and the index snapshot. Both artifacts are
// disposable by design — deleting either (or both) must always be recoverable
// by a full rebuild, so every Delete method is idempotent and deleting an
// absent artifact is not an error.
//
// Implementations must be thread-safe; the index manager serializes writes
// itself but may read concurrently.
type ArtifactRepository interface {
	// LoadCacheEntries retrieves the persisted embedding cache in dataset
	// order. Returns ErrNotFound if no cache has been saved.
	LoadCacheEntries(ctx context.Context) ([]core.CacheEntry, error)

	// SaveCacheEntries replaces the persisted embedding cache.
	SaveCacheEntries(ctx context.Context, entries []core.CacheEntry) error

	// DeleteCacheEntries removes the persisted embedding cache.
	DeleteCacheEntries(ctx context.Context) error

	// LoadSnapshot retrieves the persisted index snapshot.
	// Returns ErrNotFound if no snapshot has been saved.
	LoadSnapshot(ctx context.Context) (*core.IndexSnapshot, error)

	// SaveSnapshot replaces the persisted index snapshot.
	SaveSnapshot(ctx context.Context, snapshot *core.IndexSnapshot) error

	// DeleteSnapshot removes the persisted index snapshot.
	DeleteSnapshot(ctx context.Context) error

	// Close closes the storage backend and releases resources.
	Close() error
}
