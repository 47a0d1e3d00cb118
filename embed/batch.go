package embed

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/casenav-io/casenav/ai"
	"github.com/panjf2000/ants/v2"
)

// DefaultBatchSize is the number of texts sent to the embedder per request.
const DefaultBatchSize = 64

// Batcher embeds large text sets by splitting them into batches and running
// the batches concurrently on a worker pool. Output order always matches
// input order regardless of which batch finishes first.
type Batcher struct {
	embedder   ai.Embedder
	pool       *ants.Pool
	batchSize  int
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Batcher.
type Option func(*Batcher) error

// WithPoolSize sets the worker pool size for concurrent batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Batcher) error {
		if size < 1 {
			size = 1
		}

		if b.pool != nil {
			b.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets the number of texts per embedding request.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(b *Batcher) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithRetry sets the retry policy applied to each batch.
// Default is 3 attempts with a 1 second base delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(b *Batcher) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		b.maxRetries = maxAttempts
		b.retryDelay = baseDelay
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Batcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBatcher creates a new batch embedder.
func NewBatcher(embedder ai.Embedder, opts ...Option) (*Batcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Batcher{
		embedder:   embedder,
		pool:       pool,
		batchSize:  DefaultBatchSize,
		maxRetries: 3,
		retryDelay: 1 * time.Second,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// Embed generates embeddings for all texts, one vector per text, same order.
// Each batch is retried with exponential backoff before the whole operation
// fails. The onBatch callback, if non-nil, is invoked after each completed
// batch with the number of texts embedded so far; callers use it for
// progress reporting.
func (b *Batcher) Embed(ctx context.Context, texts []string, onBatch func(done int)) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)

	for start := 0; start < len(texts); start += b.batchSize {
		end := start + b.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := texts[start:end]
		offset := start

		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()

			var vectors [][]float32
			err := RetryWithBackoff(ctx, func() error {
				vs, embedErr := b.embedder.EmbedTexts(ctx, batch)
				if embedErr != nil {
					return embedErr
				}
				if len(vs) != len(batch) {
					return fmt.Errorf("%w: expected %d, received %d", ErrCountMismatch, len(batch), len(vs))
				}
				vectors = vs
				return nil
			}, b.maxRetries, b.retryDelay)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				b.logger.Error("error embedding batch", "offset", offset, "size", len(batch), "err", err)
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			copy(out[offset:offset+len(batch)], vectors)
			done += len(batch)
			if onBatch != nil {
				onBatch(done)
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// Release releases the worker pool.
// The batcher should not be used after calling Release.
func (b *Batcher) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
