package storage

import (
	"testing"

	"github.com/casenav-io/casenav/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheEntriesRoundTrip(t *testing.T) {
	entries := []core.CacheEntry{
		{
			RecordId:    0,
			Fingerprint: core.FingerprintFromContent("first record text"),
			Vector:      []float32{0.25, -1.5, 3.0},
		},
		{
			RecordId:    1,
			Fingerprint: core.FingerprintFromContent("second record text"),
			Vector:      []float32{0, 0, 0},
		},
	}

	data := MarshalCacheEntries(entries)
	got, err := UnmarshalCacheEntries(data)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestCacheEntriesRoundTrip_Empty(t *testing.T) {
	data := MarshalCacheEntries(nil)
	got, err := UnmarshalCacheEntries(data)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnapshotRoundTrip(t *testing.T) {
	snapshot := &core.IndexSnapshot{
		Dimension: 3,
		RecordIds: []core.ID{0, 1, 2},
		Vectors: [][]float32{
			{1, 2, 3},
			{-0.5, 0.5, 100},
			{0, 0, 0},
		},
	}

	data := MarshalSnapshot(snapshot)
	got, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestSnapshotRoundTrip_Empty(t *testing.T) {
	snapshot := &core.IndexSnapshot{Dimension: 0, RecordIds: []core.ID{}, Vectors: [][]float32{}}

	data := MarshalSnapshot(snapshot)
	got, err := UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Dimension)
	assert.Empty(t, got.RecordIds)
	assert.Empty(t, got.Vectors)
}

func TestUnmarshal_Corrupt(t *testing.T) {
	entries := []core.CacheEntry{{RecordId: 0, Fingerprint: 42, Vector: []float32{1, 2}}}
	data := MarshalCacheEntries(entries)

	t.Run("truncated cache", func(t *testing.T) {
		_, err := UnmarshalCacheEntries(data[:len(data)-3])
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := UnmarshalCacheEntries(append(append([]byte{}, data...), 0xFF))
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.NotErrorIs(t, err, ErrTruncatedData)
	})

	t.Run("truncated snapshot", func(t *testing.T) {
		snap := MarshalSnapshot(&core.IndexSnapshot{
			Dimension: 2,
			RecordIds: []core.ID{0},
			Vectors:   [][]float32{{1, 2}},
		})
		_, err := UnmarshalSnapshot(snap[:len(snap)-2])
		assert.ErrorIs(t, err, ErrSerializationFailed)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})
}

func TestCacheEntrySkip(t *testing.T) {
	entry := core.CacheEntry{RecordId: 9, Fingerprint: 7, Vector: []float32{1, 2, 3}}
	buf := make([]byte, CacheEntryMUS.Size(entry))
	CacheEntryMUS.Marshal(entry, buf)

	n, err := CacheEntryMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
}
