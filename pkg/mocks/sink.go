package mocks

import (
	"sync"

	"github.com/user/sketchcast/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	enabled bool

	mu         sync.Mutex
	FrameHTMLs map[int]string
	FramePNGs  map[int][]byte
}

// NewDebugSink creates a mock sink with the given enabled state.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		FrameHTMLs: make(map[int]string),
		FramePNGs:  make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveFrameHTML(index int, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FrameHTMLs[index] = html
	return nil
}

func (m *DebugSink) SaveFramePNG(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FramePNGs[index] = data
	return nil
}

// Ensure DebugSink implements ports.DebugSink
var _ ports.DebugSink = (*DebugSink)(nil)
