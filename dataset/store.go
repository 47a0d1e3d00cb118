package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/casenav-io/casenav/core"
)

// Store loads the case-study catalog from a CSV file and serves records with
// stable row-position identities. The file is read lazily on first access and
// cached for the life of the store; Reload discards the cached rows.
//
// The search subsystem treats the store as read-only: records returned from
// Records and Record must not be mutated.
type Store struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	loaded  bool
	records []*core.CaseRecord
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewStore creates a store for the catalog at path. The file is not touched
// until the first call to Records.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default().With("component", "dataset"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Records returns every record in dataset order. The slice is shared across
// callers and must not be mutated.
func (s *Store) Records(ctx context.Context) ([]*core.CaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.records, nil
}

// Record hydrates a single record by identity.
// Returns false if the identity is outside the catalog.
func (s *Store) Record(ctx context.Context, id core.ID) (*core.CaseRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, false
	}
	if int(id) >= len(s.records) {
		return nil, false
	}
	return s.records[id], true
}

// Len returns the number of records in the catalog.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	return len(s.records), nil
}

// Reload discards the cached rows so the next access re-reads the file.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.records = nil
}

// ensureLoaded reads the catalog if it has not been read yet.
// Must be called with the lock held.
func (s *Store) ensureLoaded(_ context.Context) error {
	if s.loaded {
		return nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDatasetNotFound, s.path)
		}
		return fmt.Errorf("%w: %s: %v", ErrDatasetUnreadable, s.path, err)
	}
	defer f.Close()

	records, err := readCatalog(f)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDatasetUnreadable, s.path, err)
	}

	s.records = records
	s.loaded = true
	s.logger.Debug("loaded catalog", "path", s.path, "records", len(records))
	return nil
}

// Logical column names the catalog is expected to carry. Header matching is
// case-insensitive with spaces treated as underscores; absent columns yield
// empty fields rather than errors.
const (
	colUseCaseName      = "use_case_name"
	colCompany          = "company"
	colAIType           = "ai_type"
	colBusinessFunction = "business_function"
	colOutcome          = "outcome"
)

// readCatalog parses CSV rows into case records, assigning row positions as
// identities. Short rows are padded with empty fields.
func readCatalog(r io.Reader) ([]*core.CaseRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return []*core.CaseRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[normalizeHeader(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []*core.CaseRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		records = append(records, &core.CaseRecord{
			Id:               core.ID(len(records)),
			UseCaseName:      field(row, colUseCaseName),
			Company:          field(row, colCompany),
			AIType:           field(row, colAIType),
			BusinessFunction: field(row, colBusinessFunction),
			Outcome:          field(row, colOutcome),
		})
	}
	if records == nil {
		records = []*core.CaseRecord{}
	}
	return records, nil
}

// normalizeHeader canonicalizes a CSV header cell: lowercase, trimmed, with
// spaces collapsed to underscores, so "Use Case Name" matches use_case_name.
func normalizeHeader(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.ReplaceAll(name, " ", "_")
}
