package testutil

import (
	"sync"

	"github.com/softdev1029/records-fetch/pkg/logging"
)

// CaptureRecorder is a logging.Recorder that keeps every diagnostic.
type CaptureRecorder struct {
	mu          sync.Mutex
	diagnostics []logging.Diagnostic
}

// Record implements logging.Recorder.
func (c *CaptureRecorder) Record(d logging.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diagnostics = append(c.diagnostics, d)
}

// Diagnostics returns a copy of everything recorded so far.
func (c *CaptureRecorder) Diagnostics() []logging.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]logging.Diagnostic(nil), c.diagnostics...)
}
