package badger

import (
	"context"
	"testing"

	"github.com/casenav-io/casenav/core"
	"github.com/casenav-io/casenav/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactRepository_CacheEntries(t *testing.T) {
	repo, err := NewMemoryArtifactRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()

	t.Run("load before save returns not found", func(t *testing.T) {
		_, err := repo.LoadCacheEntries(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	entries := []core.CacheEntry{
		{RecordId: 0, Fingerprint: core.FingerprintFromContent("a"), Vector: []float32{1, 2}},
		{RecordId: 1, Fingerprint: core.FingerprintFromContent("b"), Vector: []float32{3, 4}},
	}

	t.Run("save and load round-trips", func(t *testing.T) {
		require.NoError(t, repo.SaveCacheEntries(ctx, entries))
		got, err := repo.LoadCacheEntries(ctx)
		require.NoError(t, err)
		assert.Equal(t, entries, got)
	})

	t.Run("save replaces the whole artifact", func(t *testing.T) {
		require.NoError(t, repo.SaveCacheEntries(ctx, entries[:1]))
		got, err := repo.LoadCacheEntries(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("delete then load returns not found", func(t *testing.T) {
		require.NoError(t, repo.DeleteCacheEntries(ctx))
		_, err := repo.LoadCacheEntries(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.DeleteCacheEntries(ctx))
		require.NoError(t, repo.DeleteCacheEntries(ctx))
	})
}

func TestArtifactRepository_Snapshot(t *testing.T) {
	repo, err := NewMemoryArtifactRepository()
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()

	t.Run("load before save returns not found", func(t *testing.T) {
		_, err := repo.LoadSnapshot(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	snapshot := &core.IndexSnapshot{
		Dimension: 2,
		RecordIds: []core.ID{0, 1},
		Vectors:   [][]float32{{1, 2}, {3, 4}},
	}

	t.Run("save and load round-trips", func(t *testing.T) {
		require.NoError(t, repo.SaveSnapshot(ctx, snapshot))
		got, err := repo.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, snapshot, got)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, repo.DeleteSnapshot(ctx))
		require.NoError(t, repo.DeleteSnapshot(ctx))
		_, err := repo.LoadSnapshot(ctx)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestArtifactRepository_ClosedBackend(t *testing.T) {
	repo, err := NewMemoryArtifactRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	ctx := context.Background()

	_, err = repo.LoadCacheEntries(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = repo.SaveSnapshot(ctx, &core.IndexSnapshot{})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = repo.DeleteCacheEntries(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestArtifactRepository_Durable(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	snapshot := &core.IndexSnapshot{
		Dimension: 2,
		RecordIds: []core.ID{0},
		Vectors:   [][]float32{{5, 6}},
	}

	repo, err := NewArtifactRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.SaveSnapshot(ctx, snapshot))
	require.NoError(t, repo.Close())

	// Reopen the store; the artifact must survive the restart.
	repo, err = NewArtifactRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}
