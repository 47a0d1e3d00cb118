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


package casenav

import (
	"context"
	"log/slog"

	"github.com/casenav-io/casenav/ai"
	"github.com/casenav-io/casenav/ai/openai"
	"github.com/casenav-io/casenav/core"
	"github.com/casenav-io/casenav/dataset"
	"github.com/casenav-io/casenav/embed"
	"github.com/casenav-io/casenav/search"
	"github.com/casenav-io/casenav/storage"
	"github.com/casenav-io/casenav/storage/badger"
)

// Catalog is the top-level handle over a case-study catalog: the CSV dataset,
// the persisted embedding artifacts, and the managed vector index.
type Catalog struct {
	store     *dataset.Store
	artifacts storage.ArtifactRepository
	manager   *search.Manager
	logger    *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
	monitor  search.Monitor
	batcher  *embed.Batcher
}

// WithAIConfig sets the embedding service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedder injects an embedder directly, bypassing the AI configuration.
// Used by tests and by callers embedding in process.
func WithEmbedder(embedder ai.Embedder) CatalogOption {
	return func(o *catalogOptions) {
		o.embedder = embedder
	}
}

// WithMonitor sets an observer for rebuilds and searches.
func WithMonitor(monitor search.Monitor) CatalogOption {
	return func(o *catalogOptions) {
		o.monitor = monitor
	}
}

// WithBatcher sets the batch embedder used for rebuilds. The catalog takes
// ownership and releases it on Close.
func WithBatcher(batcher *embed.Batcher) CatalogOption {
	return func(o *catalogOptions) {
		o.batcher = batcher
	}
}

// NewCatalog opens a catalog over the dataset CSV at datasetPath, persisting
// embedding artifacts in a store at dbPath. The dataset file and embedding
// service are not touched until the first search.
func NewCatalog(dbPath, datasetPath string, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	embedder := options.embedder
	if embedder == nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}

	artifacts, err := badger.NewArtifactRepository(dbPath)
	if err != nil {
		return nil, err
	}

	store := dataset.NewStore(datasetPath)

	managerOpts := []search.Option{}
	if options.monitor != nil {
		managerOpts = append(managerOpts, search.WithMonitor(options.monitor))
	}
	if options.batcher != nil {
		managerOpts = append(managerOpts, search.WithBatcher(options.batcher))
	}

	manager, err := search.NewManager(store, artifacts, embedder, managerOpts...)
	if err != nil {
		artifacts.Close()
		return nil, err
	}

	return &Catalog{
		store:     store,
		artifacts: artifacts,
		manager:   manager,
		logger:    slog.Default(),
	}, nil
}

// Search returns the k case records most similar to the query, nearest first.
// The index is loaded or rebuilt on first use.
func (c *Catalog) Search(ctx context.Context, query string, k int) ([]*core.SearchResult, error) {
	return c.manager.Search(ctx, query, k)
}

// ForceRebuild re-reads the dataset, discards the persisted artifacts, and
// re-embeds every record.
func (c *Catalog) ForceRebuild(ctx context.Context) error {
	c.store.Reload()
	return c.manager.ForceRebuild(ctx)
}

// Records returns every record in the catalog in dataset order.
func (c *Catalog) Records(ctx context.Context) ([]*core.CaseRecord, error) {
	return c.store.Records(ctx)
}

// Manager exposes the index manager for state inspection.
func (c *Catalog) Manager() *search.Manager {
	return c.manager
}

// Close releases the rebuild worker pool and closes the artifact store.
func (c *Catalog) Close() error {
	c.manager.Release()

	if err := c.artifacts.Close(); err != nil {
		c.logger.Error("error closing artifact store", "err", err)
		return err
	}
	return nil
}
