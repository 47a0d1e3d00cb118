package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/casenav-io/casenav/core"
	"github.com/casenav-io/casenav/storage"
	"github.com/dgraph-io/badger/v4"
)

// ArtifactRepository persists the embedding cache and index snapshot in a
// BadgerDB store.
type ArtifactRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.ArtifactRepository = (*ArtifactRepository)(nil)

// newArtifactRepository is an internal constructor returning the concrete type.
func newArtifactRepository(backend *Backend) *ArtifactRepository {
	return &ArtifactRepository{
		backend: backend,
		logger:  slog.Default().With("component", "artifact-repository"),
	}
}

// NewArtifactRepository opens a durable artifact store at the given path.
//
// Returns storage.ArtifactRepository interface to enforce abstraction.
func NewArtifactRepository(filePath string) (storage.ArtifactRepository, error) {
	backend, err := OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return newArtifactRepository(backend), nil
}

// NewMemoryArtifactRepository creates an in-memory artifact store for testing.
func NewMemoryArtifactRepository() (storage.ArtifactRepository, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return newArtifactRepository(backend), nil
}

// LoadCacheEntries retrieves the persisted embedding cache.
func (r *ArtifactRepository) LoadCacheEntries(ctx context.Context) ([]core.CacheEntry, error) {
	data, err := r.get(cacheEntriesKey)
	if err != nil {
		return nil, err
	}
	return storage.UnmarshalCacheEntries(data)
}

// SaveCacheEntries replaces the persisted embedding cache.
func (r *ArtifactRepository) SaveCacheEntries(ctx context.Context, entries []core.CacheEntry) error {
	return r.set(cacheEntriesKey, storage.MarshalCacheEntries(entries))
}

// DeleteCacheEntries removes the persisted embedding cache. Idempotent.
func (r *ArtifactRepository) DeleteCacheEntries(ctx context.Context) error {
	return r.delete(cacheEntriesKey)
}

// LoadSnapshot retrieves the persisted index snapshot.
func (r *ArtifactRepository) LoadSnapshot(ctx context.Context) (*core.IndexSnapshot, error) {
	data, err := r.get(snapshotKey)
	if err != nil {
		return nil, err
	}
	return storage.UnmarshalSnapshot(data)
}

// SaveSnapshot replaces the persisted index snapshot.
func (r *ArtifactRepository) SaveSnapshot(ctx context.Context, snapshot *core.IndexSnapshot) error {
	return r.set(snapshotKey, storage.MarshalSnapshot(snapshot))
}

// DeleteSnapshot removes the persisted index snapshot. Idempotent.
func (r *ArtifactRepository) DeleteSnapshot(ctx context.Context) error {
	return r.delete(snapshotKey)
}

// Close closes the underlying store.
func (r *ArtifactRepository) Close() error {
	return r.backend.Close()
}

func (r *ArtifactRepository) get(key []byte) ([]byte, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var data []byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *ArtifactRepository) set(key, value []byte) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (r *ArtifactRepository) delete(key []byte) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}
