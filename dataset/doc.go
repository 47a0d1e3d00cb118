// Package dataset is the record store for the case-study catalog.
//
// The catalog is a columnar text file (CSV) with no primary key, so record
// identity is pinned to row position in dataset order. The store owns the
// records; the search subsystem only reads them, using the store both as the
// source of texts to embed and to hydrate full records for ranked results.
//
// Missing columns or short rows produce empty fields, never errors. A missing
// or unparsable file is a fatal configuration error, reported with the
// package sentinel errors.
package dataset
