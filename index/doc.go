// Package index provides the flat exact nearest-neighbor index used for
// semantic search over case-record embeddings.
//
// The index is a brute-force scan over all stored vectors ranked by squared
// Euclidean distance. For a catalog of this size exactness beats approximate
// structures: there is no recall tuning, results are deterministic, and a
// persisted snapshot round-trips to identical search results.
package index
