package mocks

import (
	"context"
	"sync"

	"github.com/user/sketchcast/pkg/ports"
)

// StreamEncoder is a mock implementation of ports.StreamEncoder.
type StreamEncoder struct {
	ResolveBinaryFunc func() (string, error)
	StartFunc         func(ctx context.Context, cfg ports.EncodeConfig) error
	WriteFrameFunc    func(data []byte) error
	FinishFunc        func() error

	// Recorded calls for verification
	mu           sync.Mutex
	StartedWith  *ports.EncodeConfig
	Frames       [][]byte
	FinishCalled bool
	AbortCalled  bool
}

func (m *StreamEncoder) ResolveBinary() (string, error) {
	if m.ResolveBinaryFunc != nil {
		return m.ResolveBinaryFunc()
	}
	return "/usr/bin/ffmpeg", nil
}

func (m *StreamEncoder) Start(ctx context.Context, cfg ports.EncodeConfig) error {
	m.mu.Lock()
	m.StartedWith = &cfg
	m.mu.Unlock()
	if m.StartFunc != nil {
		return m.StartFunc(ctx, cfg)
	}
	return nil
}

func (m *StreamEncoder) WriteFrame(data []byte) error {
	m.mu.Lock()
	m.Frames = append(m.Frames, data)
	m.mu.Unlock()
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(data)
	}
	return nil
}

func (m *StreamEncoder) Finish() error {
	m.mu.Lock()
	m.FinishCalled = true
	m.mu.Unlock()
	if m.FinishFunc != nil {
		return m.FinishFunc()
	}
	return nil
}

func (m *StreamEncoder) Abort() {
	m.mu.Lock()
	m.AbortCalled = true
	m.mu.Unlock()
}

// Ensure StreamEncoder implements ports.StreamEncoder
var _ ports.StreamEncoder = (*StreamEncoder)(nil)
