// Package main provides the CLI entry point for sketchcast.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/sketchcast/pkg/adapters/chromesurface"
	"github.com/user/sketchcast/pkg/adapters/ffmpegenc"
	"github.com/user/sketchcast/pkg/adapters/filesink"
	"github.com/user/sketchcast/pkg/adapters/htmlrenderer"
	"github.com/user/sketchcast/pkg/adapters/logger"
	"github.com/user/sketchcast/pkg/adapters/nullsink"
	"github.com/user/sketchcast/pkg/adapters/osfilesystem"
	"github.com/user/sketchcast/pkg/adapters/prettyprogress"
	"github.com/user/sketchcast/pkg/adapters/sketchfile"
	"github.com/user/sketchcast/pkg/anim"
	"github.com/user/sketchcast/pkg/orchestrator"
	"github.com/user/sketchcast/pkg/pipeline"
	"github.com/user/sketchcast/pkg/ports"
	"github.com/user/sketchcast/pkg/stages/render"
)

var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "sketchcast",
		Usage:   l10n.T("Render parameterized sketches as animated videos"),
		Version: version,
		Commands: []*cli.Command{
			renderCommand(),
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     l10n.T("Render a sketch file as an animated video"),
		ArgsUsage: "<sketch.yaml>",
		Flags: []cli.Flag{
			// Timeline
			&cli.Float64Flag{Name: "duration", Usage: "Animation duration in seconds", Required: true},
			&cli.Float64Flag{Name: "fps", Usage: "Frames per second", Value: 30},

			// Output
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path", Required: true},
			&cli.StringFlag{Name: "format", Usage: "Output format (mp4, webm, gif)", Value: "mp4"},
			&cli.StringFlag{Name: "codec", Usage: "Video codec (h264, h265, vp9)", Value: "h264"},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: "Video quality 0-100, higher is better", Value: 75},
			&cli.IntFlag{Name: "loop", Usage: "GIF loop count (0 = infinite)", Value: 0},

			// Animation
			&cli.StringSliceFlag{Name: "animate", Usage: "Animate a parameter: key=start:end (repeatable)"},
			&cli.StringFlag{Name: "easing", Usage: "Easing function (" + strings.Join(anim.EasingNames, ", ") + ")", Value: "linear"},

			// Sketch overrides
			&cli.Int64Flag{Name: "seed", Usage: "Override the sketch seed"},
			&cli.StringSliceFlag{Name: "param", Usage: "Override a sketch parameter: key=value (repeatable)"},
			&cli.StringSliceFlag{Name: "color", Usage: "Override sketch colors (repeatable, replaces all)"},
			&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: "Override sketch width"},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: "Override sketch height"},
			&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: "Quality preset (low, medium, high)"},

			// Capture
			&cli.IntFlag{Name: "concurrency", Aliases: []string{"c"}, Usage: "Parallel capture pages", Value: 4},
			&cli.IntFlag{Name: "wait", Usage: "Content initialization delay in milliseconds", Value: 200},
			&cli.IntFlag{Name: "frame-timeout", Usage: "Per-frame capture timeout in milliseconds (0 = none)", Value: 0},
			&cli.IntFlag{Name: "nav-timeout", Usage: "Content load timeout in milliseconds", Value: 15000},
			&cli.BoolFlag{Name: "no-headless", Usage: "Run the browser in visible mode"},
			&cli.StringFlag{Name: "chrome-path", Usage: "Path to Chrome executable (falls back to CHROME_PATH env, then system default)"},

			// Debug
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "Save per-frame HTML and PNG artifacts"},
			&cli.StringFlag{Name: "debug-dir", Usage: "Directory for debug output", Value: "./debug"},

			// Logging
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: "Log level (debug, info, warn, error)", Value: "info"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: "Suppress all log output"},
		},
		Action: runRender,
	}
}

func runRender(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one sketch file argument")
	}
	sketchPath := c.Args().First()

	// Input validation happens before any capture work: a malformed
	// --animate or --easing value must fail immediately.
	specs, err := anim.ParseSpecs(c.StringSlice("animate"))
	if err != nil {
		return err
	}
	easing, err := anim.EasingByName(c.String("easing"))
	if err != nil {
		return err
	}
	format, codec, err := parseOutputFlags(c.String("format"), c.String("codec"))
	if err != nil {
		return err
	}
	quality := c.Int("quality")
	if preset := c.String("preset"); preset != "" {
		quality, err = presetQuality(preset)
		if err != nil {
			return err
		}
		if c.IsSet("quality") {
			quality = c.Int("quality")
		}
	}
	if quality < 0 || quality > 100 {
		return &pipeline.FormatError{Input: strconv.Itoa(quality), Reason: "quality must be 0-100"}
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()
	loader := sketchfile.New()
	sketch, err := loader.Load(sketchPath)
	if err != nil {
		return err
	}
	applySketchOverrides(c, sketch)

	var sink ports.DebugSink
	if c.Bool("debug") {
		if err := fs.MkdirAll(c.String("debug-dir")); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(c.String("debug-dir"), fs)
	} else {
		sink = nullsink.New()
	}

	surface := chromesurface.New()
	renderer := htmlrenderer.New()
	encoder := ffmpegenc.New()
	renderStage := render.New(surface, renderer, fs, sink, log)

	var progressFn ports.ProgressFunc
	var reporter *prettyprogress.Reporter
	if !c.Bool("quiet") && prettyprogress.Enabled() {
		reporter = prettyprogress.New()
		progressFn = reporter.Func()
		defer reporter.Stop()
	}

	orch := orchestrator.New(renderStage, surface, renderer, encoder, fs, log, progressFn)

	config := orchestrator.DefaultConfig()
	config.Sketch = sketch
	config.OutputPath = c.String("output")
	config.DurationSec = c.Float64("duration")
	config.FPS = c.Float64("fps")
	config.Specs = specs
	config.Easing = easing
	config.Format = format
	config.Codec = codec
	config.Quality = quality
	config.LoopCount = c.Int("loop")
	config.Concurrency = c.Int("concurrency")
	config.InitWaitMs = c.Int("wait")
	config.FrameTimeoutMs = c.Int("frame-timeout")
	config.NavTimeoutMs = c.Int("nav-timeout")
	config.Headless = !c.Bool("no-headless")
	config.ChromePath = c.String("chrome-path")

	log.Info(l10n.F("Rendering %s...", sketchPath))
	if _, err := orch.Run(ctx, config); err != nil {
		return err
	}
	return nil
}

func parseOutputFlags(format, codec string) (ports.VideoFormat, ports.VideoCodec, error) {
	switch ports.VideoFormat(format) {
	case ports.FormatMP4, ports.FormatWebM, ports.FormatGIF:
	default:
		return "", "", &pipeline.FormatError{Input: format, Reason: "format must be mp4, webm or gif"}
	}
	switch ports.VideoCodec(codec) {
	case ports.CodecH264, ports.CodecH265, ports.CodecVP9:
	default:
		return "", "", &pipeline.FormatError{Input: codec, Reason: "codec must be h264, h265 or vp9"}
	}
	return ports.VideoFormat(format), ports.VideoCodec(codec), nil
}

func presetQuality(preset string) (int, error) {
	switch preset {
	case "low":
		return 50, nil
	case "medium":
		return 75, nil
	case "high":
		return 90, nil
	default:
		return 0, &pipeline.FormatError{Input: preset, Reason: "preset must be low, medium or high"}
	}
}

// applySketchOverrides applies CLI-level sketch overrides on top of the
// loaded sketch.
func applySketchOverrides(c *cli.Context, sketch *ports.Sketch) {
	if c.IsSet("seed") {
		sketch.Seed = c.Int64("seed")
	}
	if c.IsSet("width") {
		sketch.Width = c.Int("width")
	}
	if c.IsSet("height") {
		sketch.Height = c.Int("height")
	}
	if colors := c.StringSlice("color"); len(colors) > 0 {
		sketch.Colors = colors
	}
	for _, kv := range c.StringSlice("param") {
		eq := strings.Index(kv, "=")
		if eq <= 0 {
			continue
		}
		if v, err := strconv.ParseFloat(kv[eq+1:], 64); err == nil {
			sketch.Params[kv[:eq]] = v
		}
	}
}
