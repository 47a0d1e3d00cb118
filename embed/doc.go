// Package embed prepares case records for embedding and runs batched
// embedding during index rebuilds.
//
// RecordContent defines the single composed text a record is embedded from;
// RecordFingerprint hashes that text for cache invalidation. The Batcher
// fans batches out over a worker pool while preserving input order, retrying
// each batch with exponential backoff.
package embed
