package ports

import (
	"context"
)

// VideoFormat identifies the output container format.
type VideoFormat string

const (
	FormatMP4  VideoFormat = "mp4"
	FormatWebM VideoFormat = "webm"
	FormatGIF  VideoFormat = "gif"
)

// VideoCodec identifies the codec for non-GIF output.
type VideoCodec string

const (
	CodecH264 VideoCodec = "h264"
	CodecH265 VideoCodec = "h265"
	CodecVP9  VideoCodec = "vp9"
)

// EncodeConfig configures the external encoder process. It is immutable
// for the lifetime of a pipeline run.
type EncodeConfig struct {
	OutputPath string
	Width      int
	Height     int
	FPS        float64
	Format     VideoFormat
	Codec      VideoCodec
	Quality    int // 0-100, higher is better
	LoopCount  int // GIF only, 0 = infinite
}

// StreamEncoder abstracts the external streaming video encoder.
//
// Frames must be written in strictly ascending index order. WriteFrame
// blocks while the process input buffer is full; the scheduler must not
// capture further frames while a write is blocked, which bounds memory.
type StreamEncoder interface {
	// ResolveBinary locates the encoder executable. It must be called
	// before any frame is captured so a missing binary fails the run
	// without wasted work.
	ResolveBinary() (string, error)

	// Start spawns the encoder process with a writable input stream and
	// a captured diagnostic stream.
	Start(ctx context.Context, cfg EncodeConfig) error

	// WriteFrame sends one PNG-encoded frame to the process input stream.
	WriteFrame(data []byte) error

	// Finish closes the input stream, signaling end-of-stream, and awaits
	// process exit. A non-zero exit is returned as an EncodingError
	// carrying the tail of the diagnostic stream.
	Finish() error

	// Abort terminates and reaps the process. Safe to call on any path;
	// the process is never left orphaned.
	Abort()
}
