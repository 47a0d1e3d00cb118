// Copyright 2026 Casenav Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"errors"
	"fmt"

	"github.com/casenav-io/casenav/core"
	mus "github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Embedding vectors are dense float32 data, so fixed-width raw encoding beats
// varint there; counts and identities stay varint.
var (
	vectorSer  = ord.NewSliceSer[float32](raw.Float32)
	vectorsSer = ord.NewSliceSer[[]float32](vectorSer)
	entriesSer = ord.NewSliceSer[core.CacheEntry](CacheEntryMUS)
)

// cacheEntrySer is the hand-written mus serializer for core.CacheEntry.
type cacheEntrySer struct{}

// CacheEntryMUS serializes a single embedding-cache entry.
var CacheEntryMUS = cacheEntrySer{}

func (cacheEntrySer) Marshal(e core.CacheEntry, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(e.RecordId), bs)
	n += varint.Uint64.Marshal(uint64(e.Fingerprint), bs[n:])
	n += vectorSer.Marshal(e.Vector, bs[n:])
	return n
}

func (cacheEntrySer) Unmarshal(bs []byte) (e core.CacheEntry, n int, err error) {
	var (
		v  uint64
		n1 int
	)
	v, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	e.RecordId = core.ID(v)

	v, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Fingerprint = core.Fingerprint(v)

	e.Vector, n1, err = vectorSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (cacheEntrySer) Size(e core.CacheEntry) (size int) {
	size = varint.Uint64.Size(uint64(e.RecordId))
	size += varint.Uint64.Size(uint64(e.Fingerprint))
	size += vectorSer.Size(e.Vector)
	return size
}

func (cacheEntrySer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = varint.Uint64.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Uint64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorSer.Skip(bs[n:])
	n += n1
	return
}

// snapshotSer is the hand-written mus serializer for core.IndexSnapshot.
type snapshotSer struct{}

// SnapshotMUS serializes an index snapshot.
var SnapshotMUS = snapshotSer{}

func (snapshotSer) Marshal(s core.IndexSnapshot, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(s.Dimension, bs)
	n += varint.PositiveInt.Marshal(len(s.RecordIds), bs[n:])
	for _, id := range s.RecordIds {
		n += varint.Uint64.Marshal(uint64(id), bs[n:])
	}
	n += vectorsSer.Marshal(s.Vectors, bs[n:])
	return n
}

func (snapshotSer) Unmarshal(bs []byte) (s core.IndexSnapshot, n int, err error) {
	var n1 int
	s.Dimension, n, err = varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return
	}

	var count int
	count, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	s.RecordIds = make([]core.ID, count)
	for i := 0; i < count; i++ {
		var v uint64
		v, n1, err = varint.Uint64.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
		s.RecordIds[i] = core.ID(v)
	}

	s.Vectors, n1, err = vectorsSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (snapshotSer) Size(s core.IndexSnapshot) (size int) {
	size = varint.PositiveInt.Size(s.Dimension)
	size += varint.PositiveInt.Size(len(s.RecordIds))
	for _, id := range s.RecordIds {
		size += varint.Uint64.Size(uint64(id))
	}
	size += vectorsSer.Size(s.Vectors)
	return size
}

func (snapshotSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = varint.PositiveInt.Skip(bs)
	if err != nil {
		return
	}

	var count int
	count, n1, err = varint.PositiveInt.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for i := 0; i < count; i++ {
		n1, err = varint.Uint64.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}

	n1, err = vectorsSer.Skip(bs[n:])
	n += n1
	return
}

// MarshalCacheEntries serializes the embedding cache to bytes.
func MarshalCacheEntries(entries []core.CacheEntry) []byte {
	buf := make([]byte, entriesSer.Size(entries))
	entriesSer.Marshal(entries, buf)
	return buf
}

// UnmarshalCacheEntries deserializes the embedding cache from bytes.
// Trailing bytes mean the artifact does not match the expected schema and are
// reported as corruption.
func UnmarshalCacheEntries(data []byte) ([]core.CacheEntry, error) {
	entries, n, err := entriesSer.Unmarshal(data)
	if err != nil {
		return nil, decodeError(err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return entries, nil
}

// MarshalSnapshot serializes an index snapshot to bytes.
func MarshalSnapshot(snapshot *core.IndexSnapshot) []byte {
	buf := make([]byte, SnapshotMUS.Size(*snapshot))
	SnapshotMUS.Marshal(*snapshot, buf)
	return buf
}

// UnmarshalSnapshot deserializes an index snapshot from bytes.
func UnmarshalSnapshot(data []byte) (*core.IndexSnapshot, error) {
	snapshot, n, err := SnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, decodeError(err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &snapshot, nil
}

// decodeError maps a mus decode failure onto the package sentinels. An
// artifact that ends mid-encoding is truncated; anything else is generic
// corruption. Both match ErrSerializationFailed.
func decodeError(err error) error {
	if errors.Is(err, mus.ErrTooSmallByteSlice) {
		return fmt.Errorf("%w: %w", ErrSerializationFailed, ErrTruncatedData)
	}
	return fmt.Errorf("%w: %v", ErrSerializationFailed, err)
}
