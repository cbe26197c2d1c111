package mocks

import (
	"sync"

	"github.com/user/sketchcast/pkg/ports"
)

// ContentRenderer is a mock implementation of ports.ContentRenderer.
type ContentRenderer struct {
	RenderHTMLFunc        func(sketch *ports.Sketch, overrides map[string]float64) (string, error)
	SupportsAnimationFunc func(sketch *ports.Sketch) bool

	// Recorded calls for verification
	mu                sync.Mutex
	RenderedOverrides []map[string]float64
}

func (m *ContentRenderer) RenderHTML(sketch *ports.Sketch, overrides map[string]float64) (string, error) {
	m.mu.Lock()
	m.RenderedOverrides = append(m.RenderedOverrides, overrides)
	m.mu.Unlock()
	if m.RenderHTMLFunc != nil {
		return m.RenderHTMLFunc(sketch, overrides)
	}
	return "<!DOCTYPE html><html></html>", nil
}

func (m *ContentRenderer) SupportsAnimation(sketch *ports.Sketch) bool {
	if m.SupportsAnimationFunc != nil {
		return m.SupportsAnimationFunc(sketch)
	}
	return true
}

// Ensure ContentRenderer implements ports.ContentRenderer
var _ ports.ContentRenderer = (*ContentRenderer)(nil)

// SketchLoader is a mock implementation of ports.SketchLoader.
type SketchLoader struct {
	LoadFunc func(path string) (*ports.Sketch, error)
}

func (m *SketchLoader) Load(path string) (*ports.Sketch, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(path)
	}
	return &ports.Sketch{
		Name:     "mock",
		Renderer: "canvas-2d",
		Width:    640,
		Height:   480,
		Params:   map[string]float64{},
		Script:   "function draw(ctx, t, params) {}",
	}, nil
}

// Ensure SketchLoader implements ports.SketchLoader
var _ ports.SketchLoader = (*SketchLoader)(nil)
