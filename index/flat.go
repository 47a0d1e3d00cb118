package index

import (
	"sort"

	"github.com/casenav-io/casenav/core"
)

// Flat is an exact nearest-neighbor index over a fixed set of embeddings.
// It scans every stored vector and ranks by squared Euclidean distance, so
// results are exact rather than approximate. Alongside the vectors it keeps
// a parallel array mapping each internal slot to the record identity the
// vector was derived from.
//
// A Flat index is immutable once built and therefore safe for concurrent
// searches.
type Flat struct {
	dimension int
	ids       []core.ID
	vectors   [][]float32
}

// Build creates a Flat index from parallel identity and vector arrays.
// The dimension is fixed by the first vector. Building from zero records is
// valid and produces an empty index with dimension 0.
func Build(ids []core.ID, vectors [][]float32) (*Flat, error) {
	if len(ids) != len(vectors) {
		return nil, ErrIdentityCountMismatch
	}

	dimension := 0
	if len(vectors) > 0 {
		dimension = len(vectors[0])
	}
	for _, v := range vectors {
		if len(v) != dimension {
			return nil, ErrRaggedVectors
		}
	}

	return &Flat{
		dimension: dimension,
		ids:       ids,
		vectors:   vectors,
	}, nil
}

// FromSnapshot reconstructs a Flat index from its persisted form.
// The snapshot is validated first; a reloaded index reproduces the exact
// search results of the index it was exported from.
func FromSnapshot(snapshot *core.IndexSnapshot) (*Flat, error) {
	if err := core.ValidateSnapshot(snapshot); err != nil {
		return nil, err
	}
	return &Flat{
		dimension: snapshot.Dimension,
		ids:       snapshot.RecordIds,
		vectors:   snapshot.Vectors,
	}, nil
}

// Snapshot exports the index for persistence. The returned snapshot shares
// backing arrays with the index; callers must not mutate it.
func (f *Flat) Snapshot() *core.IndexSnapshot {
	return &core.IndexSnapshot{
		Dimension: f.dimension,
		RecordIds: f.ids,
		Vectors:   f.vectors,
	}
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Dimension returns the vector dimension fixed at build time.
// An empty index has dimension 0.
func (f *Flat) Dimension() int {
	return f.dimension
}

// ID maps an internal slot back to its record identity.
func (f *Flat) ID(slot int) core.ID {
	return f.ids[slot]
}

// Search returns the k nearest stored vectors to the query by squared
// Euclidean distance, nearest first. Ties are broken by slot order, so equal
// vectors rank in their original dataset order. A k larger than the index
// returns every slot. A query of the wrong dimension is an error, never a
// silent truncation.
func (f *Flat) Search(query []float32, k int) (distances []float32, slots []int, err error) {
	if len(f.vectors) == 0 {
		return nil, nil, nil
	}
	if len(query) != f.dimension {
		return nil, nil, ErrQueryDimensionMismatch
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}
	if k <= 0 {
		return nil, nil, nil
	}

	all := make([]float32, len(f.vectors))
	for slot, v := range f.vectors {
		all[slot] = squaredL2(query, v)
	}

	order := make([]int, len(f.vectors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return all[order[i]] < all[order[j]]
	})

	distances = make([]float32, k)
	slots = make([]int, k)
	for i := 0; i < k; i++ {
		slots[i] = order[i]
		distances[i] = all[order[i]]
	}
	return distances, slots, nil
}

// squaredL2 computes the squared Euclidean distance between two vectors of
// equal length. Accumulates in float64 to keep distance comparisons stable.
func squaredL2(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(sum)
}
