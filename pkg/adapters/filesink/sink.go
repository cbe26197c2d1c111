// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"

	"github.com/user/sketchcast/pkg/ports"
)

// Sink saves intermediate pipeline artifacts to a directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new file sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFrameHTML saves the per-frame HTML variant fed to the surface.
func (s *Sink) SaveFrameHTML(index int, html string) error {
	path := filepath.Join(s.baseDir, "html", fmt.Sprintf("frame-%06d.html", index))
	return s.fs.WriteFile(path, []byte(html))
}

// SaveFramePNG saves a captured frame image.
func (s *Sink) SaveFramePNG(index int, data []byte) error {
	path := filepath.Join(s.baseDir, "frames", fmt.Sprintf("frame-%06d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
