package search

import (
	"time"

	"github.com/casenav-io/casenav/core"
)

// Monitor provides hooks to observe index rebuilds and searches.
// Implement this interface to surface progress to users or metrics.
type Monitor interface {
	RebuildStarted(total int)
	RebuildProgress(done, total int)
	RebuildFinished(total int, elapsed time.Duration)
	SearchStarted(query string)
	SearchFinished(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) RebuildStarted(_ int)                      {}
func (n *noopMonitor) RebuildProgress(_, _ int)                  {}
func (n *noopMonitor) RebuildFinished(_ int, _ time.Duration)    {}
func (n *noopMonitor) SearchStarted(_ string)                    {}
func (n *noopMonitor) SearchFinished(_ []*core.SearchResult)     {}
