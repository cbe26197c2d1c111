// Package htmlrenderer turns a sketch plus parameter state into a
// self-contained HTML document ready for headless capture.
package htmlrenderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/user/sketchcast/pkg/ports"
)

// animatedRenderers lists the renderer kinds that can animate over time.
// Anything else is inherently static and cannot be sampled on a timeline.
var animatedRenderers = map[string]bool{
	"canvas-2d": true,
	"webgl":     true,
}

// Renderer implements ports.ContentRenderer with an html/template harness.
type Renderer struct {
	tmpl *template.Template
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("sketch").Parse(pageTemplate)),
	}
}

// templateVars contains variables for the sketch page template.
type templateVars struct {
	Name   string
	Width  int
	Height int
	State  template.JS
	Script template.JS
}

// RenderHTML produces a standalone document for the sketch with the given
// parameter overrides merged over its defaults (overrides win).
func (r *Renderer) RenderHTML(sketch *ports.Sketch, overrides map[string]float64) (string, error) {
	params := make(map[string]float64, len(sketch.Params)+len(overrides))
	for k, v := range sketch.Params {
		params[k] = v
	}
	for k, v := range overrides {
		params[k] = v
	}

	state := map[string]interface{}{
		"seed":   sketch.Seed,
		"width":  sketch.Width,
		"height": sketch.Height,
		"params": params,
		"colors": sketch.Colors,
	}
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal sketch state: %w", err)
	}

	var buf bytes.Buffer
	err = r.tmpl.Execute(&buf, templateVars{
		Name:   sketch.Name,
		Width:  sketch.Width,
		Height: sketch.Height,
		State:  template.JS(stateJSON),
		Script: template.JS(sketch.Script),
	})
	if err != nil {
		return "", fmt.Errorf("execute sketch template: %w", err)
	}
	return buf.String(), nil
}

// SupportsAnimation reports whether the sketch's renderer kind can animate.
func (r *Renderer) SupportsAnimation(sketch *ports.Sketch) bool {
	return animatedRenderers[sketch.Renderer]
}

// Ensure Renderer implements ports.ContentRenderer
var _ ports.ContentRenderer = (*Renderer)(nil)
