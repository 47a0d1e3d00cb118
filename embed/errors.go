package embed

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInvalidMaxAttempts is returned for a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")

	// ErrCountMismatch is returned when the embedder yields a different
	// number of vectors than texts it was given.
	ErrCountMismatch = errors.New("embedding count does not match text count")
)
