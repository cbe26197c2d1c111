// Package sketchfile loads sketch descriptions from YAML files.
package sketchfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/sketchcast/pkg/ports"
)

// Defaults applied when the sketch file omits optional fields.
const (
	DefaultWidth    = 640
	DefaultHeight   = 480
	DefaultRenderer = "canvas-2d"
)

// sketchDoc is the on-disk YAML shape.
type sketchDoc struct {
	Name     string             `yaml:"name"`
	Renderer string             `yaml:"renderer"`
	Width    int                `yaml:"width"`
	Height   int                `yaml:"height"`
	Seed     int64              `yaml:"seed"`
	Params   map[string]float64 `yaml:"params"`
	Colors   []string           `yaml:"colors"`
	Script   string             `yaml:"script"`
}

// Loader implements ports.SketchLoader for YAML sketch files.
type Loader struct{}

// New creates a new Loader.
func New() *Loader {
	return &Loader{}
}

// Load reads and validates a sketch file.
func (l *Loader) Load(path string) (*ports.Sketch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sketch: %w", err)
	}

	var doc sketchDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sketch %s: %w", path, err)
	}

	if doc.Script == "" {
		return nil, fmt.Errorf("sketch %s: missing script", path)
	}
	if doc.Renderer == "" {
		doc.Renderer = DefaultRenderer
	}
	if doc.Width <= 0 {
		doc.Width = DefaultWidth
	}
	if doc.Height <= 0 {
		doc.Height = DefaultHeight
	}
	if doc.Params == nil {
		doc.Params = map[string]float64{}
	}

	return &ports.Sketch{
		Name:     doc.Name,
		Renderer: doc.Renderer,
		Width:    doc.Width,
		Height:   doc.Height,
		Seed:     doc.Seed,
		Params:   doc.Params,
		Colors:   doc.Colors,
		Script:   doc.Script,
	}, nil
}

// Ensure Loader implements ports.SketchLoader
var _ ports.SketchLoader = (*Loader)(nil)
