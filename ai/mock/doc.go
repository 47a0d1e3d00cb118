// Package mock provides a test double implementation of the ai.Embedder interface.
//
// The mock allows tests to run without an external embedding service and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	embedder := mock.NewMockEmbedder()
//	vector, err := embedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
// # Default Behavior
//
// By default the mock returns deterministic vectors derived from an FNV hash
// of the input text: identical text always produces an identical vector, which
// is what cache-validity and duplicate-record tests rely on. The vector
// dimension is configurable via SetDimensions to simulate model swaps.
package mock
