// Package render implements the frame scheduling stage: it samples the
// sketch timeline at discrete synthetic timestamps, drives parallel capture
// within concurrency-bounded chunks, and feeds completed frames to the
// encoder in strictly ascending index order.
package render

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/sketchcast/pkg/anim"
	"github.com/user/sketchcast/pkg/pipeline"
	"github.com/user/sketchcast/pkg/ports"
)

// Input contains parameters for frame scheduling.
type Input struct {
	Sketch      *ports.Sketch
	Specs       []anim.Spec
	Easing      anim.Easing
	TotalFrames int
	FPS         float64

	// Target output dimensions. Captured frames are normalized to exactly
	// this size before being handed to the encoder.
	Width  int
	Height int

	Concurrency int
	InitWaitMs  int
	// FrameTimeoutMs bounds a single frame capture beyond the content-load
	// deadline. Zero disables the per-frame bound, in which case a slow
	// frame stalls its chunk.
	FrameTimeoutMs int

	// TempDir receives the per-frame HTML variants.
	TempDir string

	Encoder  ports.StreamEncoder
	Progress ports.ProgressFunc
}

// Result contains the scheduling outcome.
type Result struct {
	FramesRendered int
}

// Stage schedules frame captures over the capture surface.
type Stage struct {
	surface  ports.CaptureSurface
	renderer ports.ContentRenderer
	fs       ports.FileSystem
	sink     ports.DebugSink
	logger   ports.Logger
}

// New creates a new render stage.
func New(surface ports.CaptureSurface, renderer ports.ContentRenderer, fs ports.FileSystem, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		surface:  surface,
		renderer: renderer,
		fs:       fs,
		sink:     sink,
		logger:   logger.WithComponent("render"),
	}
}

// Execute captures all frames in chunks of at most Concurrency and writes
// them to the encoder in ascending frame order. Completion order within a
// chunk is unordered; each result is stored at its position-in-chunk index,
// so reassembly is an indexed read. The first capture error aborts the run
// and nothing past the failure point is flushed.
func (s *Stage) Execute(ctx context.Context, input Input) (Result, error) {
	result := Result{}

	concurrency := input.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	s.logger.Debug("Scheduling %d frames in chunks of %d", input.TotalFrames, concurrency)

	for chunkStart := 0; chunkStart < input.TotalFrames; chunkStart += concurrency {
		chunkEnd := chunkStart + concurrency
		if chunkEnd > input.TotalFrames {
			chunkEnd = input.TotalFrames
		}

		// Index-aligned storage: slot i holds frame chunkStart+i no matter
		// when its capture completes.
		buffers := make([][]byte, chunkEnd-chunkStart)

		g, gctx := errgroup.WithContext(ctx)
		for index := chunkStart; index < chunkEnd; index++ {
			index := index
			slot := index - chunkStart
			g.Go(func() error {
				data, err := s.captureFrame(gctx, input, index)
				if err != nil {
					return &pipeline.CaptureError{Frame: index, Err: err}
				}
				buffers[slot] = data
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return result, err
		}

		// Flush the chunk in ascending order before the next chunk starts.
		// A back-pressured write blocks here, which also suspends capture.
		for slot, data := range buffers {
			if err := input.Encoder.WriteFrame(data); err != nil {
				return result, fmt.Errorf("write frame %d: %w", chunkStart+slot, err)
			}
			result.FramesRendered++
		}

		if input.Progress != nil {
			input.Progress(result.FramesRendered, input.TotalFrames)
		}
	}

	s.logger.Debug("Rendered %d frames", result.FramesRendered)
	return result, nil
}

// captureFrame renders one frame variant and captures it from an isolated
// page.
func (s *Stage) captureFrame(ctx context.Context, input Input, index int) ([]byte, error) {
	if input.FrameTimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(input.FrameTimeoutMs)*time.Millisecond)
		defer cancel()
	}

	job := pipeline.NewFrameJob(index, input.TotalFrames, input.FPS)
	if len(input.Specs) > 0 {
		job.ParamOverrides = anim.Interpolate(input.Specs, job.NormalizedTime, input.Easing)
	}

	html, err := s.renderer.RenderHTML(input.Sketch, job.ParamOverrides)
	if err != nil {
		return nil, fmt.Errorf("render content: %w", err)
	}
	if s.sink.Enabled() {
		s.sink.SaveFrameHTML(index, html)
	}

	htmlPath := filepath.Join(input.TempDir, fmt.Sprintf("frame_%06d.html", index))
	if err := s.fs.WriteFile(htmlPath, []byte(html)); err != nil {
		return nil, fmt.Errorf("write content: %w", err)
	}

	page, err := s.surface.NewPage(ctx)
	if err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	defer page.Close()

	if err := page.SetViewport(input.Width, input.Height); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := page.Navigate("file://" + htmlPath); err != nil {
		return nil, err
	}

	// Initialization observes real time so the content's start-time
	// reference is correct.
	if err := sleepCtx(ctx, time.Duration(input.InitWaitMs)*time.Millisecond); err != nil {
		return nil, err
	}

	// Frame 0 is rendered at real initialization time, which is t=0.
	if job.TimeOffsetMs > 0 {
		if err := page.SetSyntheticTime(job.TimeOffsetMs); err != nil {
			return nil, err
		}
		if err := page.WaitAnimationFrame(); err != nil {
			return nil, err
		}
	}

	data, err := page.Screenshot()
	if err != nil {
		return nil, err
	}

	data, err = normalizeFrame(data, input.Width, input.Height)
	if err != nil {
		return nil, fmt.Errorf("normalize frame: %w", err)
	}
	if s.sink.Enabled() {
		s.sink.SaveFramePNG(index, data)
	}

	return data, nil
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[Input, Result] = (*Stage)(nil)

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
