package badger

// Artifact keys. Each artifact is a single value: the whole embedding cache
// or the whole index snapshot. There is no partial reuse of either artifact,
// so there is nothing to gain from splitting them across keys.
var (
	cacheEntriesKey = []byte("artifact:cache")
	snapshotKey     = []byte("artifact:index")
)
