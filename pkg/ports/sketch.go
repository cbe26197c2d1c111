package ports

// Sketch is the immutable description of a parameterized visual sketch:
// metadata plus the algorithm text that draws it.
type Sketch struct {
	Name     string
	Renderer string // renderer kind, e.g. "canvas-2d", "svg-static"
	Width    int
	Height   int
	Seed     int64
	Params   map[string]float64
	Colors   []string
	Script   string // the drawing algorithm, executed inside the page
}

// SketchLoader loads a sketch description from a file.
type SketchLoader interface {
	Load(path string) (*Sketch, error)
}

// ContentRenderer turns a sketch plus a parameter state into a
// self-contained renderable document.
type ContentRenderer interface {
	// RenderHTML produces a standalone HTML document for the sketch with
	// the given parameter overrides applied on top of its defaults.
	RenderHTML(sketch *Sketch, overrides map[string]float64) (string, error)

	// SupportsAnimation reports whether the sketch's renderer kind can
	// animate over time. Static renderers cannot be sampled on a timeline.
	SupportsAnimation(sketch *Sketch) bool
}
