package pipeline

import (
	"math"
)

// FrameJob describes one frame on the synthetic timeline. Jobs are created,
// consumed, and discarded per frame.
type FrameJob struct {
	Index          int
	NormalizedTime float64
	TimeOffsetMs   int
	ParamOverrides map[string]float64
}

// TotalFrames returns the number of frames for a duration at the given
// frame rate: ceil(duration * fps), minimum 1.
func TotalFrames(durationSec, fps float64) int {
	n := int(math.Ceil(durationSec * fps))
	if n < 1 {
		n = 1
	}
	return n
}

// NewFrameJob computes the timeline position of frame index out of total.
// NormalizedTime is index/(total-1), or 0 for a single-frame timeline, so
// it always lies in [0,1]. TimeOffsetMs is the synthetic elapsed time the
// frame represents.
func NewFrameJob(index, total int, fps float64) FrameJob {
	var t float64
	if total > 1 {
		t = float64(index) / float64(total-1)
	}
	return FrameJob{
		Index:          index,
		NormalizedTime: t,
		TimeOffsetMs:   int(float64(index) / fps * 1000),
	}
}
