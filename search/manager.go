package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/casenav-io/casenav/ai"
	"github.com/casenav-io/casenav/core"
	"github.com/casenav-io/casenav/embed"
	"github.com/casenav-io/casenav/index"
	"github.com/casenav-io/casenav/storage"
)

// DefaultK is the number of results returned when the caller does not ask for
// a specific count.
const DefaultK = 5

// RecordSource serves the current catalog in dataset order.
type RecordSource interface {
	Records(ctx context.Context) ([]*core.CaseRecord, error)
}

// Manager owns the vector index lifecycle. It loads persisted artifacts on
// first use, validates them against the catalog, rebuilds from scratch when
// they are stale, and serves k-nearest searches from the in-memory index.
//
// Searches never observe a partially built index: a rebuild holds the write
// lock, so concurrent searches block until it finishes and then run against
// the new index. Every rebuild either completes or fails whole.
type Manager struct {
	source    RecordSource
	artifacts storage.ArtifactRepository
	embedder  ai.Embedder
	batcher   *embed.Batcher
	monitor   Monitor
	logger    *slog.Logger

	mu      sync.RWMutex
	state   State
	idx     *index.Flat
	records []*core.CaseRecord
}

// Option configures a Manager.
type Option func(*Manager) error

// WithMonitor sets a rebuild and search observer.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(m *Manager) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		m.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithBatcher sets the batch embedder used for rebuilds. The manager takes
// ownership and releases it on Release.
// Default is a batcher with default settings over the manager's embedder.
func WithBatcher(batcher *embed.Batcher) Option {
	return func(m *Manager) error {
		if batcher == nil {
			return nil
		}
		if m.batcher != nil {
			m.batcher.Release()
		}
		m.batcher = batcher
		return nil
	}
}

// NewManager creates an index manager over the given catalog, artifact store,
// and embedder. No I/O happens until the first search or rebuild.
func NewManager(source RecordSource, artifacts storage.ArtifactRepository, embedder ai.Embedder, opts ...Option) (*Manager, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if artifacts == nil {
		return nil, ErrArtifactsRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	batcher, err := embed.NewBatcher(embedder)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		source:    source,
		artifacts: artifacts,
		embedder:  embedder,
		batcher:   batcher,
		monitor:   &noopMonitor{},
		logger:    slog.Default().With("component", "index-manager"),
		state:     StateAbsent,
	}

	for _, opt := range opts {
		if optErr := opt(m); optErr != nil {
			m.batcher.Release()
			return nil, optErr
		}
	}

	return m, nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Search embeds the query and returns the k nearest case records, nearest
// first. A k below 1 means DefaultK; a k beyond the catalog size returns every
// record. An empty catalog yields an empty result without calling the
// embedder.
//
// If the query embedding dimension disagrees with the index dimension, the
// index is assumed to predate an embedding model change: the manager rebuilds
// once and retries. A second disagreement is reported as ErrDimensionMismatch.
func (m *Manager) Search(ctx context.Context, query string, k int) ([]*core.SearchResult, error) {
	if k < 1 {
		k = DefaultK
	}

	m.monitor.SearchStarted(query)

	if err := m.ensureValid(ctx); err != nil {
		return nil, err
	}

	rebuilt := false
	for {
		m.mu.RLock()
		idx := m.idx
		records := m.records
		m.mu.RUnlock()

		if idx.Len() == 0 {
			results := []*core.SearchResult{}
			m.monitor.SearchFinished(results)
			return results, nil
		}

		queryVector, err := m.embedder.EmbedText(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("embedding query: %w", err)
		}

		if len(queryVector) != idx.Dimension() {
			if rebuilt {
				return nil, fmt.Errorf("%w: query dimension %d, index dimension %d",
					ErrDimensionMismatch, len(queryVector), idx.Dimension())
			}
			m.logger.Warn("query dimension disagrees with index, rebuilding",
				"query_dimension", len(queryVector), "index_dimension", idx.Dimension())
			if err := m.ForceRebuild(ctx); err != nil {
				return nil, err
			}
			rebuilt = true
			continue
		}

		distances, slots, err := idx.Search(queryVector, k)
		if err != nil {
			return nil, err
		}

		results := assembleResults(records, idx, distances, slots)
		m.monitor.SearchFinished(results)
		return results, nil
	}
}

// ForceRebuild discards the persisted artifacts and rebuilds the index from
// the current catalog, re-embedding every record. Searches block until the
// rebuild finishes.
func (m *Manager) ForceRebuild(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transition(StateStale)
	if err := m.discardArtifacts(ctx); err != nil {
		return err
	}

	records, err := m.source.Records(ctx)
	if err != nil {
		return err
	}
	m.records = records

	return m.rebuildLocked(ctx, records)
}

// Release releases the rebuild worker pool.
// The manager should not be used after calling Release.
func (m *Manager) Release() {
	m.batcher.Release()
}

// ensureValid brings the index to StateValid, loading or rebuilding as
// needed. The fast path is a read lock check.
func (m *Manager) ensureValid(ctx context.Context) error {
	m.mu.RLock()
	valid := m.state == StateValid
	m.mu.RUnlock()
	if valid {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateValid {
		return nil
	}

	records, err := m.source.Records(ctx)
	if err != nil {
		return err
	}
	m.records = records

	m.transition(StateLoading)
	if idx, ok := m.tryLoad(ctx, records); ok {
		m.idx = idx
		m.transition(StateValid)
		return nil
	}

	m.transition(StateStale)
	if err := m.discardArtifacts(ctx); err != nil {
		return err
	}

	return m.rebuildLocked(ctx, records)
}

// tryLoad restores the index from persisted artifacts. It succeeds only when
// the cache covers the catalog exactly: same count, same identities, same
// content fingerprints. Any disagreement, corruption, or read failure means
// the artifacts are stale; the caller falls through to a rebuild.
//
// A valid cache with a missing or unusable snapshot is not stale: the index
// is rebuilt from the cached vectors without re-embedding, and a fresh
// snapshot is persisted.
func (m *Manager) tryLoad(ctx context.Context, records []*core.CaseRecord) (*index.Flat, bool) {
	entries, err := m.artifacts.LoadCacheEntries(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("embedding cache unreadable, treating as stale", "err", err)
		}
		return nil, false
	}

	if !cacheMatchesCatalog(entries, records) {
		m.logger.Debug("embedding cache disagrees with catalog", "cached", len(entries), "records", len(records))
		return nil, false
	}

	if idx, ok := m.loadSnapshot(ctx, entries); ok {
		return idx, true
	}

	// Snapshot missing or unusable but the cache is authoritative: rebuild
	// the index from cached vectors and persist a fresh snapshot.
	ids := make([]core.ID, len(entries))
	vectors := make([][]float32, len(entries))
	for i, entry := range entries {
		ids[i] = entry.RecordId
		vectors[i] = entry.Vector
	}

	idx, err := index.Build(ids, vectors)
	if err != nil {
		m.logger.Warn("cached vectors unusable, treating as stale", "err", err)
		return nil, false
	}

	if err := m.artifacts.SaveSnapshot(ctx, idx.Snapshot()); err != nil {
		// The in-memory index is fine; only the persisted copy is missing.
		m.logger.Warn("persisting rebuilt snapshot failed", "err", err)
	}

	m.logger.Info("index rebuilt from embedding cache", "records", len(entries))
	return idx, true
}

// loadSnapshot restores the index from the persisted snapshot, accepting it
// only if it agrees with the validated cache entries slot for slot.
func (m *Manager) loadSnapshot(ctx context.Context, entries []core.CacheEntry) (*index.Flat, bool) {
	snapshot, err := m.artifacts.LoadSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("index snapshot unreadable", "err", err)
		}
		return nil, false
	}

	if len(snapshot.RecordIds) != len(entries) {
		return nil, false
	}
	for i, entry := range entries {
		if snapshot.RecordIds[i] != entry.RecordId {
			return nil, false
		}
	}

	idx, err := index.FromSnapshot(snapshot)
	if err != nil {
		m.logger.Warn("index snapshot invalid", "err", err)
		return nil, false
	}
	return idx, true
}

// rebuildLocked recomputes every embedding, rebuilds the index, and persists
// both artifacts. Must be called with the write lock held.
func (m *Manager) rebuildLocked(ctx context.Context, records []*core.CaseRecord) error {
	m.transition(StateRebuilding)
	m.monitor.RebuildStarted(len(records))
	start := time.Now()

	texts := make([]string, len(records))
	ids := make([]core.ID, len(records))
	for i, record := range records {
		texts[i] = embed.RecordContent(record)
		ids[i] = record.Id
	}

	total := len(records)
	vectors, err := m.batcher.Embed(ctx, texts, func(done int) {
		m.monitor.RebuildProgress(done, total)
	})
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	idx, err := index.Build(ids, vectors)
	if err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	entries := make([]core.CacheEntry, len(records))
	for i, record := range records {
		entries[i] = core.CacheEntry{
			RecordId:    record.Id,
			Fingerprint: core.FingerprintFromContent(texts[i]),
			Vector:      vectors[i],
		}
	}

	if err := m.artifacts.SaveCacheEntries(ctx, entries); err != nil {
		return fmt.Errorf("persisting embedding cache: %w", err)
	}
	if err := m.artifacts.SaveSnapshot(ctx, idx.Snapshot()); err != nil {
		return fmt.Errorf("persisting index snapshot: %w", err)
	}

	m.idx = idx
	m.transition(StateValid)
	m.monitor.RebuildFinished(len(records), time.Since(start))
	m.logger.Info("index rebuilt", "records", len(records), "dimension", idx.Dimension(), "elapsed", time.Since(start))
	return nil
}

// discardArtifacts removes both persisted artifacts so a failed rebuild can
// never leave stale state behind for the next startup.
func (m *Manager) discardArtifacts(ctx context.Context) error {
	if err := m.artifacts.DeleteCacheEntries(ctx); err != nil {
		return fmt.Errorf("discarding embedding cache: %w", err)
	}
	if err := m.artifacts.DeleteSnapshot(ctx); err != nil {
		return fmt.Errorf("discarding index snapshot: %w", err)
	}
	return nil
}

// transition records a state change. Must be called with the write lock held.
func (m *Manager) transition(next State) {
	if m.state == next {
		return
	}
	m.logger.Debug("index state transition", "from", m.state, "to", next)
	m.state = next
}

// cacheMatchesCatalog reports whether the cache covers the catalog exactly:
// one entry per record in order, with matching identity and a fingerprint of
// the record's current composed content. A single changed outcome sentence is
// enough to fail the check.
func cacheMatchesCatalog(entries []core.CacheEntry, records []*core.CaseRecord) bool {
	if len(entries) != len(records) {
		return false
	}
	for i, record := range records {
		if entries[i].RecordId != record.Id {
			return false
		}
		if entries[i].Fingerprint != embed.RecordFingerprint(record) {
			return false
		}
	}
	return true
}

// assembleResults hydrates ranked slots into search results. Similarity
// normalizes distance by the per-query maximum: the farthest hit scores 0 and
// the nearest scores close to 1. When every hit is equidistant, including the
// single-result case, all are equally good matches and score 1.
func assembleResults(records []*core.CaseRecord, idx *index.Flat, distances []float32, slots []int) []*core.SearchResult {
	results := make([]*core.SearchResult, 0, len(slots))

	var maxDistance float32
	allEqual := true
	for i, d := range distances {
		if d > maxDistance {
			maxDistance = d
		}
		if i > 0 && d != distances[0] {
			allEqual = false
		}
	}

	for i, slot := range slots {
		id := idx.ID(slot)
		if int(id) >= len(records) {
			// An index built from this catalog cannot reference a row
			// beyond it; skip rather than panic if it somehow does.
			continue
		}

		similarity := float32(1)
		if !allEqual {
			similarity = 1 - distances[i]/maxDistance
		}

		results = append(results, &core.SearchResult{
			Record:     records[id],
			Distance:   distances[i],
			Similarity: similarity,
		})
	}
	return results
}
