// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/sketchcast/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveFrameHTML does nothing.
func (s *Sink) SaveFrameHTML(index int, html string) error {
	return nil
}

// SaveFramePNG does nothing.
func (s *Sink) SaveFramePNG(index int, data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
