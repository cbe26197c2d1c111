package ffmpegenc

import "errors"

var (
	// ErrNotStarted is returned when encoder methods are called before Start.
	ErrNotStarted = errors.New("ffmpegenc: encoder not started")

	// ErrFinished is returned when writing after Finish or Abort.
	ErrFinished = errors.New("ffmpegenc: encoder already finished")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be resolved.
	ErrFFmpegNotFound = errors.New("ffmpegenc: ffmpeg not found")
)
