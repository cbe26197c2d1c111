package ports

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveFrameHTML saves the per-frame HTML variant fed to the surface.
	SaveFrameHTML(index int, html string) error

	// SaveFramePNG saves a captured frame image.
	SaveFramePNG(index int, data []byte) error
}
