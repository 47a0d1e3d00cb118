package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is the stable identity of a case record. The source catalog carries no
// primary key, so identity is the record's row position in dataset order.
type ID uint64

// Fingerprint is a content hash used to detect when a record's embeddable
// text has changed since it was last cached.
type Fingerprint uint64

// FingerprintFromContent derives a deterministic fingerprint from text content
// using BLAKE2b hashing. Identical content always produces the same value.
func FingerprintFromContent(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// CaseRecord is one AI-adoption case study from the catalog.
// Records are immutable from the search subsystem's perspective; the dataset
// store owns them. Any field except Id may be empty.
type CaseRecord struct {
	Id               ID
	UseCaseName      string
	Company          string
	AIType           string
	BusinessFunction string
	Outcome          string
}

// CacheEntry is one persisted embedding, keyed to the record it was derived
// from. The Fingerprint covers the full composed text, so a change to any
// embedded field (or to the composition itself) invalidates the entry.
type CacheEntry struct {
	RecordId    ID
	Fingerprint Fingerprint
	Vector      []float32
}

// IndexSnapshot is the persisted form of the vector index: all current
// embeddings plus the parallel slot-to-record-identity array.
// Invariant: len(Vectors) == len(RecordIds), and every vector has length
// Dimension.
type IndexSnapshot struct {
	Dimension int
	RecordIds []ID
	Vectors   [][]float32
}

// SearchResult is a single ranked hit for one query. Similarity is normalized
// into [0,1] by the per-query maximum distance, so scores are comparable only
// within the query that produced them.
type SearchResult struct {
	Record     *CaseRecord
	Distance   float32
	Similarity float32
}
