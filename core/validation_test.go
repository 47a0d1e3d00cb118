package core

import (
	"errors"
	"testing"
)

func TestValidateCacheEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *CacheEntry
		wantErr error
	}{
		{
			name: "valid entry",
			entry: &CacheEntry{
				RecordId:    0,
				Fingerprint: FingerprintFromContent("some text"),
				Vector:      []float32{0.1, 0.2, 0.3},
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidCacheEntry,
		},
		{
			name: "empty vector",
			entry: &CacheEntry{
				RecordId: 3,
				Vector:   nil,
			},
			wantErr: ErrEmptyVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCacheEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCacheEntry() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCacheEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *IndexSnapshot
		wantErr  error
	}{
		{
			name: "valid snapshot",
			snapshot: &IndexSnapshot{
				Dimension: 3,
				RecordIds: []ID{0, 1},
				Vectors:   [][]float32{{1, 2, 3}, {4, 5, 6}},
			},
			wantErr: nil,
		},
		{
			name: "empty snapshot is valid",
			snapshot: &IndexSnapshot{
				Dimension: 0,
				RecordIds: nil,
				Vectors:   nil,
			},
			wantErr: nil,
		},
		{
			name:     "nil snapshot",
			snapshot: nil,
			wantErr:  ErrInvalidSnapshot,
		},
		{
			name: "count mismatch",
			snapshot: &IndexSnapshot{
				Dimension: 3,
				RecordIds: []ID{0},
				Vectors:   [][]float32{{1, 2, 3}, {4, 5, 6}},
			},
			wantErr: ErrVectorCountMismatch,
		},
		{
			name: "dimension drift",
			snapshot: &IndexSnapshot{
				Dimension: 3,
				RecordIds: []ID{0, 1},
				Vectors:   [][]float32{{1, 2, 3}, {4, 5}},
			},
			wantErr: ErrDimensionDrift,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot(tt.snapshot)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSnapshot() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSnapshot() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
