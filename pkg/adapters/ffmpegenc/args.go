package ffmpegenc

import (
	"fmt"
	"math"

	"github.com/user/sketchcast/pkg/ports"
)

// CRF ceilings per codec family. libvpx-vp9 runs on a wider scale than the
// x264/x265 family.
const (
	maxCRFx26x = 51
	maxCRFVP9  = 63
)

// codecNames maps the public codec identifiers to ffmpeg encoder names.
var codecNames = map[ports.VideoCodec]string{
	ports.CodecH264: "libx264",
	ports.CodecH265: "libx265",
	ports.CodecVP9:  "libvpx-vp9",
}

// QualityToCRF converts the 0-100 quality scale (higher is better) to the
// codec family's CRF scale (lower is better): round((100-q) * maxCrf / 100).
func QualityToCRF(quality int, codec ports.VideoCodec) int {
	maxCRF := maxCRFx26x
	if codec == ports.CodecVP9 {
		maxCRF = maxCRFVP9
	}
	return int(math.Round(float64(100-quality) * float64(maxCRF) / 100))
}

// BuildArgs produces the ffmpeg argument vector for the given config.
// The result is deterministic: the same config always yields the same argv.
//
// All formats read a PNG image sequence from stdin at the declared frame
// rate and force-overwrite the output path.
func BuildArgs(cfg ports.EncodeConfig) []string {
	args := []string{
		"-y",              // Overwrite output
		"-f", "image2pipe", // PNG sequence on stdin
		"-framerate", formatFPS(cfg.FPS),
		"-i", "pipe:0",
	}

	if cfg.Format == ports.FormatGIF {
		// GIF takes a frame-rate filter and a loop count instead of
		// codec/quality flags.
		args = append(args,
			"-vf", fmt.Sprintf("fps=%s", formatFPS(cfg.FPS)),
			"-loop", fmt.Sprintf("%d", cfg.LoopCount),
		)
		return append(args, cfg.OutputPath)
	}

	codec := codecNames[cfg.Codec]
	args = append(args,
		"-c:v", codec,
		"-crf", fmt.Sprintf("%d", QualityToCRF(cfg.Quality, cfg.Codec)),
	)

	// The x264/x265 family rejects odd subsampling layouts from PNG input;
	// vp9 accepts them as-is.
	if cfg.Codec == ports.CodecH264 || cfg.Codec == ports.CodecH265 {
		args = append(args, "-pix_fmt", "yuv420p")
	}

	// Streaming-friendly finalize applies to the mp4 container only.
	if cfg.Format == ports.FormatMP4 {
		args = append(args, "-movflags", "+faststart")
	}

	return append(args, cfg.OutputPath)
}

func formatFPS(fps float64) string {
	if fps == math.Trunc(fps) {
		return fmt.Sprintf("%d", int(fps))
	}
	return fmt.Sprintf("%.3f", fps)
}
