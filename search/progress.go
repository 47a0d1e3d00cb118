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


package search

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/casenav-io/casenav/core"
)

// ProgressTracker tracks and reports progress of an index rebuild.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	current        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: total number of records to embed
// reportInterval: report progress every N records
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.lastReported = 0
}

// Update sets the current progress to the specified value.
func (p *ProgressTracker) Update(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	// Cap at total
	if current > p.total {
		current = p.total
	}

	p.current = current

	// Report if we've crossed a report interval
	if p.current-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.current
	}
}

// Finish marks the operation as complete and prints final progress.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.current = p.total
	p.report()
	fmt.Fprintln(p.writer) // Print newline after final progress
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProgress: %d/%d (%.1f%%) - %.1f records/s",
		p.current, p.total, percentage, rate)
}

// ProgressMonitor is a Monitor that reports rebuild progress to a writer,
// one tracker per rebuild. Searches are not reported.
type ProgressMonitor struct {
	writer         io.Writer
	reportInterval int

	mu      sync.Mutex
	tracker *ProgressTracker
}

var _ Monitor = (*ProgressMonitor)(nil)

// NewProgressMonitor creates a monitor writing rebuild progress to writer
// every reportInterval records.
func NewProgressMonitor(writer io.Writer, reportInterval int) *ProgressMonitor {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressMonitor{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

func (m *ProgressMonitor) RebuildStarted(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fmt.Fprintf(m.writer, "Rebuilding index for %d records...\n", total)
	m.tracker = NewProgressTracker(m.writer, total, m.reportInterval)
	m.tracker.Start()
}

func (m *ProgressMonitor) RebuildProgress(done, _ int) {
	m.mu.Lock()
	tracker := m.tracker
	m.mu.Unlock()

	if tracker != nil {
		tracker.Update(done)
	}
}

func (m *ProgressMonitor) RebuildFinished(total int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tracker != nil {
		m.tracker.Finish()
		m.tracker = nil
	}
	fmt.Fprintf(m.writer, "Rebuilt index for %d records in %s\n", total, elapsed.Round(time.Millisecond))
}

func (m *ProgressMonitor) SearchStarted(_ string) {}

func (m *ProgressMonitor) SearchFinished(_ []*core.SearchResult) {}
