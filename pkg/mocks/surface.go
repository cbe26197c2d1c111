// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/user/sketchcast/pkg/ports"
)

// CaptureSurface is a mock implementation of ports.CaptureSurface.
type CaptureSurface struct {
	OpenFunc    func(ctx context.Context, opts ports.SurfaceOptions) error
	NewPageFunc func(ctx context.Context) (ports.Page, error)
	CloseFunc   func() error

	// Recorded calls for verification
	mu         sync.Mutex
	OpenCalled bool
	PagesMade  int
	CloseCalls int
}

func (m *CaptureSurface) Open(ctx context.Context, opts ports.SurfaceOptions) error {
	m.mu.Lock()
	m.OpenCalled = true
	m.mu.Unlock()
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, opts)
	}
	return nil
}

func (m *CaptureSurface) NewPage(ctx context.Context) (ports.Page, error) {
	m.mu.Lock()
	m.PagesMade++
	m.mu.Unlock()
	if m.NewPageFunc != nil {
		return m.NewPageFunc(ctx)
	}
	return &Page{}, nil
}

func (m *CaptureSurface) Close() error {
	m.mu.Lock()
	m.CloseCalls++
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure CaptureSurface implements ports.CaptureSurface
var _ ports.CaptureSurface = (*CaptureSurface)(nil)

// Page is a mock implementation of ports.Page.
type Page struct {
	SetViewportFunc        func(width, height int) error
	NavigateFunc           func(url string) error
	EvaluateFunc           func(script string) error
	SetSyntheticTimeFunc   func(offsetMs int) error
	WaitAnimationFrameFunc func() error
	ScreenshotFunc         func() ([]byte, error)
	CloseFunc              func() error

	// Recorded calls for verification
	SyntheticOffsets []int
	Closed           bool
}

func (m *Page) SetViewport(width, height int) error {
	if m.SetViewportFunc != nil {
		return m.SetViewportFunc(width, height)
	}
	return nil
}

func (m *Page) Navigate(url string) error {
	if m.NavigateFunc != nil {
		return m.NavigateFunc(url)
	}
	return nil
}

func (m *Page) Evaluate(script string) error {
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(script)
	}
	return nil
}

func (m *Page) SetSyntheticTime(offsetMs int) error {
	m.SyntheticOffsets = append(m.SyntheticOffsets, offsetMs)
	if m.SetSyntheticTimeFunc != nil {
		return m.SetSyntheticTimeFunc(offsetMs)
	}
	return nil
}

func (m *Page) WaitAnimationFrame() error {
	if m.WaitAnimationFrameFunc != nil {
		return m.WaitAnimationFrameFunc()
	}
	return nil
}

func (m *Page) Screenshot() ([]byte, error) {
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc()
	}
	return []byte{0x89, 0x50, 0x4E, 0x47}, nil
}

func (m *Page) Close() error {
	m.Closed = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Ensure Page implements ports.Page
var _ ports.Page = (*Page)(nil)
