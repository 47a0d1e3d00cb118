package search

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Update(25)
	tracker.Update(50)
	tracker.Finish()

	elapsed := tracker.Elapsed()
	assert.Greater(t, elapsed, time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "100/100", "finish should set to total")
	assert.Contains(t, output, "100.0%", "should show 100%")
	assert.Contains(t, output, "records/s", "should show rate")
	assert.Contains(t, output, "\n", "finish should print newline")
}

func TestProgressTracker_UpdateBeyondTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Update(150) // More than total

	output := buf.String()
	assert.Contains(t, output, "100/100", "should not exceed total")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	// Update and Finish before Start must be no-ops.
	tracker.Update(50)
	tracker.Finish()

	assert.Empty(t, buf.String())
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressMonitor_RebuildLifecycle(t *testing.T) {
	var buf bytes.Buffer
	monitor := NewProgressMonitor(&buf, 1)

	monitor.RebuildStarted(3)
	monitor.RebuildProgress(1, 3)
	monitor.RebuildProgress(3, 3)
	monitor.RebuildFinished(3, 42*time.Millisecond)

	output := buf.String()
	assert.Contains(t, output, "Rebuilding index for 3 records")
	assert.Contains(t, output, "3/3")
	assert.Contains(t, output, "Rebuilt index for 3 records in 42ms")
}

func TestProgressMonitor_ProgressWithoutStartIsNoop(t *testing.T) {
	var buf bytes.Buffer
	monitor := NewProgressMonitor(&buf, 1)

	monitor.RebuildProgress(1, 3)
	monitor.RebuildFinished(3, time.Millisecond)

	assert.NotContains(t, buf.String(), "Progress:")
}
