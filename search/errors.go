package search

import "errors"

var (
	// ErrSourceRequired is returned when a manager is created without a
	// record source.
	ErrSourceRequired = errors.New("record source is required")

	// ErrArtifactsRequired is returned when a manager is created without an
	// artifact repository.
	ErrArtifactsRequired = errors.New("artifact repository is required")

	// ErrEmbedderRequired is returned when a manager is created without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrDimensionMismatch is returned when the query embedding dimension
	// still disagrees with the index dimension after a rebuild. It indicates
	// a non-deterministic or misconfigured embedder, not recoverable state.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch persists after rebuild")
)
