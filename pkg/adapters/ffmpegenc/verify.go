package ffmpegenc

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/sketchcast/pkg/pipeline"
	"github.com/user/sketchcast/pkg/ports"
)

// verifyOutput checks that the finished output file exists and is not
// empty. For mp4 output it also parses the container and confirms the
// moov box made it to disk, which catches truncated finalization.
func (e *Encoder) verifyOutput() error {
	info, err := os.Stat(e.cfg.OutputPath)
	if err != nil {
		return &pipeline.ResourceError{Path: e.cfg.OutputPath, Err: err}
	}
	if info.Size() == 0 {
		return &pipeline.ResourceError{Path: e.cfg.OutputPath, Err: fmt.Errorf("empty output file")}
	}

	if e.cfg.Format != ports.FormatMP4 {
		return nil
	}

	f, err := os.Open(e.cfg.OutputPath)
	if err != nil {
		return &pipeline.ResourceError{Path: e.cfg.OutputPath, Err: err}
	}
	defer f.Close()

	parsed, err := mp4.DecodeFile(f)
	if err != nil {
		return &pipeline.ResourceError{Path: e.cfg.OutputPath, Err: fmt.Errorf("parse container: %w", err)}
	}
	if parsed.Moov == nil {
		return &pipeline.ResourceError{Path: e.cfg.OutputPath, Err: fmt.Errorf("container missing moov box")}
	}

	return nil
}
