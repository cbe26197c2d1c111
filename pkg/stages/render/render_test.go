package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/user/sketchcast/pkg/adapters/logger"
	"github.com/user/sketchcast/pkg/anim"
	"github.com/user/sketchcast/pkg/mocks"
	"github.com/user/sketchcast/pkg/pipeline"
	"github.com/user/sketchcast/pkg/ports"
)

const (
	testWidth  = 64
	testHeight = 48
)

// pngFrame encodes a PNG at the target dimensions with the frame index
// stored in the top-left pixel.
func pngFrame(t *testing.T, index int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, testWidth, testHeight))
	img.SetRGBA(0, 0, color.RGBA{R: uint8(index), A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// frameIndex recovers the index stored by pngFrame.
func frameIndex(t *testing.T, data []byte) int {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	return int(r >> 8)
}

// parseFrameURL extracts the frame index from a frame_NNNNNN.html URL.
func parseFrameURL(url string) (int, error) {
	var index int
	_, err := fmt.Sscanf(filepath.Base(url), "frame_%06d.html", &index)
	return index, err
}

func testSketch() *ports.Sketch {
	return &ports.Sketch{
		Name:     "test",
		Renderer: "canvas-2d",
		Width:    testWidth,
		Height:   testHeight,
		Params:   map[string]float64{"radius": 5},
		Script:   "function draw(ctx, t, params) {}",
	}
}

// orderedSurface builds a mock surface whose pages learn their frame index
// from the navigation URL and screenshot it after a random delay, so chunk
// completion order is shuffled.
func orderedSurface(t *testing.T, rng *rand.Rand) (*mocks.CaptureSurface, map[int]*mocks.Page) {
	t.Helper()
	var mu sync.Mutex
	pages := make(map[int]*mocks.Page)

	surface := &mocks.CaptureSurface{}
	surface.NewPageFunc = func(ctx context.Context) (ports.Page, error) {
		page := &mocks.Page{}
		var index int
		page.NavigateFunc = func(url string) error {
			i, err := parseFrameURL(url)
			if err != nil {
				return err
			}
			index = i
			mu.Lock()
			pages[index] = page
			mu.Unlock()
			return nil
		}
		page.ScreenshotFunc = func() ([]byte, error) {
			mu.Lock()
			delay := time.Duration(rng.Intn(15)) * time.Millisecond
			mu.Unlock()
			time.Sleep(delay)
			return pngFrame(t, index), nil
		}
		return page, nil
	}
	return surface, pages
}

func newTestStage(surface *mocks.CaptureSurface) (*Stage, *mocks.FileSystem, *mocks.DebugSink) {
	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(false)
	stage := New(surface, &mocks.ContentRenderer{}, fs, sink, logger.NewNoop())
	return stage, fs, sink
}

func baseInput(total int, enc ports.StreamEncoder) Input {
	return Input{
		Sketch:      testSketch(),
		TotalFrames: total,
		FPS:         10,
		Width:       testWidth,
		Height:      testHeight,
		Concurrency: 3,
		TempDir:     "/tmp/render-test",
		Encoder:     enc,
	}
}

func TestExecute_FramesFlushedInAscendingOrder(t *testing.T) {
	surface, _ := orderedSurface(t, rand.New(rand.NewSource(1)))
	stage, _, _ := newTestStage(surface)
	enc := &mocks.StreamEncoder{}

	result, err := stage.Execute(context.Background(), baseInput(9, enc))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.FramesRendered != 9 {
		t.Errorf("frames rendered = %d, want 9", result.FramesRendered)
	}
	if len(enc.Frames) != 9 {
		t.Fatalf("encoder received %d frames, want 9", len(enc.Frames))
	}
	for i, data := range enc.Frames {
		if got := frameIndex(t, data); got != i {
			t.Errorf("position %d holds frame %d; flush order must be ascending", i, got)
		}
	}
}

func TestExecute_FirstFrameKeepsRealClock(t *testing.T) {
	surface, pages := orderedSurface(t, rand.New(rand.NewSource(2)))
	stage, _, _ := newTestStage(surface)
	enc := &mocks.StreamEncoder{}

	if _, err := stage.Execute(context.Background(), baseInput(3, enc)); err != nil {
		t.Fatalf("execute: %v", err)
	}

	// 10fps: frame i represents i*100ms of synthetic time. Frame 0 must not
	// touch the clock at all.
	if got := pages[0].SyntheticOffsets; len(got) != 0 {
		t.Errorf("frame 0 received synthetic offsets %v, want none", got)
	}
	for i, want := range map[int]int{1: 100, 2: 200} {
		got := pages[i].SyntheticOffsets
		if len(got) != 1 || got[0] != want {
			t.Errorf("frame %d offsets = %v, want [%d]", i, got, want)
		}
	}
}

func TestExecute_PagesClosed(t *testing.T) {
	surface, pages := orderedSurface(t, rand.New(rand.NewSource(3)))
	stage, _, _ := newTestStage(surface)

	if _, err := stage.Execute(context.Background(), baseInput(5, &mocks.StreamEncoder{})); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for index, page := range pages {
		if !page.Closed {
			t.Errorf("page for frame %d was not closed", index)
		}
	}
}

func TestExecute_FailFast(t *testing.T) {
	surface := &mocks.CaptureSurface{}
	surface.NewPageFunc = func(ctx context.Context) (ports.Page, error) {
		page := &mocks.Page{}
		var index int
		page.NavigateFunc = func(url string) error {
			i, err := parseFrameURL(url)
			index = i
			return err
		}
		page.ScreenshotFunc = func() ([]byte, error) {
			if index == 4 {
				return nil, errors.New("tab crashed")
			}
			return pngFrame(t, index), nil
		}
		return page, nil
	}
	stage, _, _ := newTestStage(surface)
	enc := &mocks.StreamEncoder{}

	_, err := stage.Execute(context.Background(), baseInput(10, enc))
	var capErr *pipeline.CaptureError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CaptureError, got %v", err)
	}
	if capErr.Frame != 4 {
		t.Errorf("failed frame = %d, want 4", capErr.Frame)
	}
	// The failing chunk is {3,4,5}; only the chunk before it was flushed.
	if len(enc.Frames) != 3 {
		t.Errorf("encoder received %d frames after failure, want 3", len(enc.Frames))
	}
}

func TestExecute_ProgressMonotonic(t *testing.T) {
	surface, _ := orderedSurface(t, rand.New(rand.NewSource(4)))
	stage, _, _ := newTestStage(surface)

	var mu sync.Mutex
	var updates [][2]int
	input := baseInput(8, &mocks.StreamEncoder{})
	input.Progress = func(done, total int) {
		mu.Lock()
		updates = append(updates, [2]int{done, total})
		mu.Unlock()
	}

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(updates) == 0 {
		t.Fatal("expected progress updates")
	}
	prev := 0
	for _, u := range updates {
		if u[0] < prev {
			t.Errorf("progress went backwards: %d after %d", u[0], prev)
		}
		if u[1] != 8 {
			t.Errorf("progress total = %d, want 8", u[1])
		}
		prev = u[0]
	}
	if last := updates[len(updates)-1]; last[0] != 8 {
		t.Errorf("final progress = %d, want 8", last[0])
	}
}

func TestExecute_AnimationOverridesReachRenderer(t *testing.T) {
	surface, _ := orderedSurface(t, rand.New(rand.NewSource(5)))
	fs := mocks.NewFileSystem()
	renderer := &mocks.ContentRenderer{}
	stage := New(surface, renderer, fs, mocks.NewDebugSink(false), logger.NewNoop())

	input := baseInput(3, &mocks.StreamEncoder{})
	input.Specs = []anim.Spec{{Key: "radius", Start: 0, End: 100}}
	input.Easing = anim.Linear

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(renderer.RenderedOverrides) != 3 {
		t.Fatalf("renderer called %d times, want 3", len(renderer.RenderedOverrides))
	}
	// Endpoint frames must carry the exact range endpoints.
	seen := map[float64]bool{}
	for _, overrides := range renderer.RenderedOverrides {
		seen[overrides["radius"]] = true
	}
	if !seen[0] || !seen[100] || !seen[50] {
		t.Errorf("expected radius values {0, 50, 100}, got %v", seen)
	}
}

func TestExecute_ConcurrentFramesShareRenderer(t *testing.T) {
	// A whole chunk renders through one ContentRenderer at once; its call
	// recording must hold up under the race detector.
	surface, _ := orderedSurface(t, rand.New(rand.NewSource(10)))
	fs := mocks.NewFileSystem()
	renderer := &mocks.ContentRenderer{}
	stage := New(surface, renderer, fs, mocks.NewDebugSink(false), logger.NewNoop())

	input := baseInput(12, &mocks.StreamEncoder{})
	input.Concurrency = 6
	input.Specs = []anim.Spec{{Key: "radius", Start: 0, End: 1}}
	input.Easing = anim.Linear

	if _, err := stage.Execute(context.Background(), input); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(renderer.RenderedOverrides) != 12 {
		t.Errorf("renderer recorded %d calls, want 12", len(renderer.RenderedOverrides))
	}
}

func TestExecute_DebugSinkReceivesArtifacts(t *testing.T) {
	surface, _ := orderedSurface(t, rand.New(rand.NewSource(6)))
	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(true)
	stage := New(surface, &mocks.ContentRenderer{}, fs, sink, logger.NewNoop())

	if _, err := stage.Execute(context.Background(), baseInput(4, &mocks.StreamEncoder{})); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(sink.FrameHTMLs) != 4 || len(sink.FramePNGs) != 4 {
		t.Errorf("sink received %d HTML / %d PNG artifacts, want 4 each", len(sink.FrameHTMLs), len(sink.FramePNGs))
	}
}

func TestExecute_WritesFrameVariants(t *testing.T) {
	surface, _ := orderedSurface(t, rand.New(rand.NewSource(7)))
	stage, fs, _ := newTestStage(surface)

	if _, err := stage.Execute(context.Background(), baseInput(2, &mocks.StreamEncoder{})); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for i := 0; i < 2; i++ {
		path := filepath.Join("/tmp/render-test", fmt.Sprintf("frame_%06d.html", i))
		if _, err := fs.ReadFile(path); err != nil {
			t.Errorf("expected frame variant %s to be written: %v", path, err)
		}
	}
}

func TestExecute_FrameTimeout(t *testing.T) {
	surface, _ := orderedSurface(t, rand.New(rand.NewSource(8)))
	stage, _, _ := newTestStage(surface)

	input := baseInput(2, &mocks.StreamEncoder{})
	input.InitWaitMs = 5000
	input.FrameTimeoutMs = 20

	_, err := stage.Execute(context.Background(), input)
	var capErr *pipeline.CaptureError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CaptureError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline to be exceeded, got %v", err)
	}
}

func TestExecute_SingleFrame(t *testing.T) {
	surface, pages := orderedSurface(t, rand.New(rand.NewSource(9)))
	stage, _, _ := newTestStage(surface)
	enc := &mocks.StreamEncoder{}

	input := baseInput(1, enc)
	input.Concurrency = 4

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.FramesRendered != 1 || len(enc.Frames) != 1 {
		t.Errorf("expected exactly one frame, got %d", len(enc.Frames))
	}
	if len(pages[0].SyntheticOffsets) != 0 {
		t.Error("single frame must be captured at real initialization time")
	}
}
