package search

// State is the lifecycle phase of the managed index. The manager moves an
// index through Loading on startup, falls back to Stale and Rebuilding when
// the persisted artifacts disagree with the catalog, and serves searches only
// while Valid.
type State int

const (
	// StateAbsent means no index exists in memory yet.
	StateAbsent State = iota
	// StateLoading means persisted artifacts are being read and validated.
	StateLoading
	// StateValid means the in-memory index matches the current catalog.
	StateValid
	// StateStale means the artifacts disagree with the catalog and have been
	// discarded.
	StateStale
	// StateRebuilding means embeddings are being recomputed from scratch.
	StateRebuilding
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateLoading:
		return "loading"
	case StateValid:
		return "valid"
	case StateStale:
		return "stale"
	case StateRebuilding:
		return "rebuilding"
	default:
		return "unknown"
	}
}
