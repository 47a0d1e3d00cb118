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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/casenav-io/casenav"
	"github.com/casenav-io/casenav/ai"
	"github.com/casenav-io/casenav/ai/openai"
	"github.com/casenav-io/casenav/embed"
	"github.com/casenav-io/casenav/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "casenav",
		Usage: "Semantic search over an AI-adoption case-study catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Find the case studies most similar to a query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: append(commonFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   search.DefaultK,
					},
				),
			},
			{
				Name:   "rebuild",
				Usage:  "Discard cached embeddings and rebuild the index from scratch",
				Action: rebuildCommand,
				Flags:  commonFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// commonFlags returns the flags shared by every command that opens the
// catalog. Each command gets its own slice; cli mutates flag state.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB artifact store directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "data",
			Usage:    "Path to the case-study catalog CSV",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:     "embedding-model",
			Usage:    "Embedding model name",
			Required: true,
		},
		&cli.IntFlag{
			Name:  "batch-size",
			Usage: "Number of records to embed in each batch",
			Value: embed.DefaultBatchSize,
		},
		&cli.IntFlag{
			Name:  "report-interval",
			Usage: "Report rebuild progress every N records",
			Value: 100,
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Maximum retry attempts for failed embedding batches",
			Value: 3,
		},
		&cli.DurationFlag{
			Name:  "retry-delay",
			Usage: "Base delay for exponential backoff",
			Value: 1 * time.Second,
		},
	}
}

func openCatalog(c *cli.Context) (*casenav.Catalog, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	batcher, err := embed.NewBatcher(embedder,
		embed.WithBatchSize(c.Int("batch-size")),
		embed.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create batcher: %w", err)
	}

	catalog, err := casenav.NewCatalog(c.String("db"), c.String("data"),
		casenav.WithEmbedder(embedder),
		casenav.WithBatcher(batcher),
		casenav.WithMonitor(search.NewProgressMonitor(os.Stderr, c.Int("report-interval"))),
	)
	if err != nil {
		batcher.Release()
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("search requires a query")
	}
	query := strings.Join(c.Args().Slice(), " ")

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	ctx := context.Background()
	results, err := catalog.Search(ctx, query, c.Int("top-k"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		r := hit.Record
		fmt.Printf("%d: '%s' - %s (%s, %s)[%0.3f]\n",
			i+1, r.UseCaseName, r.Company, r.AIType, r.BusinessFunction, hit.Similarity)
		if r.Outcome != "" {
			fmt.Printf("   %s\n", r.Outcome)
		}
	}
	return nil
}

func rebuildCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Dataset: %s\n", c.String("data"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := catalog.ForceRebuild(context.Background()); err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
