// Package orchestrator coordinates the rendering pipeline: precondition
// checks, frame scheduling, encoder lifecycle, and guaranteed teardown.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"

	"github.com/user/sketchcast/pkg/anim"
	"github.com/user/sketchcast/pkg/pipeline"
	"github.com/user/sketchcast/pkg/ports"
	"github.com/user/sketchcast/pkg/stages/render"
)

// Config contains all configuration for a pipeline run.
type Config struct {
	Sketch     *ports.Sketch
	OutputPath string

	// Timeline
	DurationSec float64
	FPS         float64

	// Animation
	Specs  []anim.Spec
	Easing anim.Easing

	// Encoding
	Format    ports.VideoFormat
	Codec     ports.VideoCodec
	Quality   int
	LoopCount int

	// Capture
	Concurrency    int
	InitWaitMs     int
	FrameTimeoutMs int
	NavTimeoutMs   int
	Headless       bool
	ChromePath     string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FPS:          30,
		Format:       ports.FormatMP4,
		Codec:        ports.CodecH264,
		Quality:      75,
		Easing:       anim.Linear,
		Concurrency:  4,
		InitWaitMs:   200,
		NavTimeoutMs: 15000,
		Headless:     true,
	}
}

// RunResult summarizes a completed pipeline run.
type RunResult struct {
	RunID          string
	TotalFrames    int
	FramesRendered int
	OutputPath     string
}

// Orchestrator drives the render stage and the encoder process to
// completion.
type Orchestrator struct {
	renderStage *render.Stage
	surface     ports.CaptureSurface
	renderer    ports.ContentRenderer
	encoder     ports.StreamEncoder
	fs          ports.FileSystem
	logger      ports.Logger
	progress    ports.ProgressFunc
}

// New creates a new Orchestrator.
func New(
	renderStage *render.Stage,
	surface ports.CaptureSurface,
	renderer ports.ContentRenderer,
	encoder ports.StreamEncoder,
	fs ports.FileSystem,
	logger ports.Logger,
	progress ports.ProgressFunc,
) *Orchestrator {
	return &Orchestrator{
		renderStage: renderStage,
		surface:     surface,
		renderer:    renderer,
		encoder:     encoder,
		fs:          fs,
		logger:      logger,
		progress:    progress,
	}
}

// Run executes the complete pipeline. The capture surface is released
// exactly once on every exit path, and the encoder process is never left
// orphaned.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	result := RunResult{
		RunID:      uuid.NewString(),
		OutputPath: config.OutputPath,
	}

	// Preconditions come before any capture work.
	if !o.renderer.SupportsAnimation(config.Sketch) {
		return result, &pipeline.PreconditionError{
			Reason: fmt.Sprintf("renderer %q is static and cannot be sampled over time", config.Sketch.Renderer),
		}
	}
	binary, err := o.encoder.ResolveBinary()
	if err != nil {
		return result, err
	}
	o.logger.Debug("Using encoder binary %s", binary)

	result.TotalFrames = pipeline.TotalFrames(config.DurationSec, config.FPS)
	width, height := evenDim(config.Sketch.Width), evenDim(config.Sketch.Height)

	tempDir := filepath.Join(os.TempDir(), "sketchcast-"+result.RunID)
	if err := o.fs.MkdirAll(tempDir); err != nil {
		return result, fmt.Errorf("create temp dir: %w", err)
	}
	defer o.fs.RemoveAll(tempDir)

	o.logger.Info(l10n.F("Rendering %d frames at %dx%d", result.TotalFrames, width, height))

	if err := o.surface.Open(ctx, ports.SurfaceOptions{
		Headless:     config.Headless,
		ChromePath:   config.ChromePath,
		NavTimeoutMs: config.NavTimeoutMs,
	}); err != nil {
		return result, fmt.Errorf("open capture surface: %w", err)
	}

	// Several paths below can trigger teardown; the surface must close
	// exactly once regardless.
	var closeOnce sync.Once
	closeSurface := func() {
		closeOnce.Do(func() {
			o.surface.Close()
			o.logger.Debug("Capture surface closed")
		})
	}
	defer closeSurface()

	encodeCfg := ports.EncodeConfig{
		OutputPath: config.OutputPath,
		Width:      width,
		Height:     height,
		FPS:        config.FPS,
		Format:     config.Format,
		Codec:      config.Codec,
		Quality:    config.Quality,
		LoopCount:  config.LoopCount,
	}
	if err := o.encoder.Start(ctx, encodeCfg); err != nil {
		return result, fmt.Errorf("start encoder: %w", err)
	}

	if o.progress != nil {
		o.progress(0, result.TotalFrames)
	}

	renderInput := render.Input{
		Sketch:         config.Sketch,
		Specs:          config.Specs,
		Easing:         config.Easing,
		TotalFrames:    result.TotalFrames,
		FPS:            config.FPS,
		Width:          width,
		Height:         height,
		Concurrency:    config.Concurrency,
		InitWaitMs:     config.InitWaitMs,
		FrameTimeoutMs: config.FrameTimeoutMs,
		TempDir:        tempDir,
		Encoder:        o.encoder,
		Progress:       o.progress,
	}
	rendered, err := o.renderStage.Execute(ctx, renderInput)
	result.FramesRendered = rendered.FramesRendered
	if err != nil {
		o.encoder.Abort()
		closeSurface()
		o.logger.Error(l10n.F("Frame capture failed: %s", err))
		return result, err
	}

	// Capture is done; the surface is not needed while the encoder drains.
	closeSurface()

	if err := o.encoder.Finish(); err != nil {
		o.logger.Error(l10n.F("Encoding failed: %s", err))
		return result, err
	}

	o.logger.Info(l10n.F("Output saved to %s", config.OutputPath))
	return result, nil
}

// evenDim rounds a dimension up to an even number. Chroma-subsampled
// codecs reject odd frame sizes.
func evenDim(d int) int {
	return (d + 1) / 2 * 2
}
