package pipeline

import (
	"math"
	"testing"
)

func TestTotalFrames(t *testing.T) {
	tests := []struct {
		name        string
		durationSec float64
		fps         float64
		want        int
	}{
		{"one second at 10fps", 1, 10, 10},
		{"fractional product rounds up", 0.5, 3, 2},
		{"tiny duration still yields a frame", 0.03, 10, 1},
		{"zero duration yields a frame", 0, 30, 1},
		{"exact product", 2, 30, 60},
		{"fractional fps", 1, 29.97, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalFrames(tt.durationSec, tt.fps); got != tt.want {
				t.Errorf("TotalFrames(%v, %v) = %d, want %d", tt.durationSec, tt.fps, got, tt.want)
			}
		})
	}
}

func TestNewFrameJob(t *testing.T) {
	// 10 frames at 10fps spans exactly one second of synthetic time.
	total := 10
	fps := 10.0

	first := NewFrameJob(0, total, fps)
	if first.NormalizedTime != 0 {
		t.Errorf("first frame normalized time = %v, want 0", first.NormalizedTime)
	}
	if first.TimeOffsetMs != 0 {
		t.Errorf("first frame offset = %d, want 0", first.TimeOffsetMs)
	}

	last := NewFrameJob(total-1, total, fps)
	if last.NormalizedTime != 1 {
		t.Errorf("last frame normalized time = %v, want 1", last.NormalizedTime)
	}
	if last.TimeOffsetMs != 900 {
		t.Errorf("last frame offset = %d, want 900", last.TimeOffsetMs)
	}

	mid := NewFrameJob(3, total, fps)
	if math.Abs(mid.NormalizedTime-3.0/9.0) > 1e-9 {
		t.Errorf("frame 3 normalized time = %v, want %v", mid.NormalizedTime, 3.0/9.0)
	}
	if mid.TimeOffsetMs != 300 {
		t.Errorf("frame 3 offset = %d, want 300", mid.TimeOffsetMs)
	}
}

func TestNewFrameJob_SingleFrame(t *testing.T) {
	job := NewFrameJob(0, 1, 30)
	if job.NormalizedTime != 0 {
		t.Errorf("single-frame timeline normalized time = %v, want 0", job.NormalizedTime)
	}
	if job.TimeOffsetMs != 0 {
		t.Errorf("single-frame timeline offset = %d, want 0", job.TimeOffsetMs)
	}
}

func TestNewFrameJob_NormalizedTimeInRange(t *testing.T) {
	total := 7
	for i := 0; i < total; i++ {
		job := NewFrameJob(i, total, 24)
		if job.NormalizedTime < 0 || job.NormalizedTime > 1 {
			t.Errorf("frame %d normalized time %v out of [0,1]", i, job.NormalizedTime)
		}
		if i > 0 {
			prev := NewFrameJob(i-1, total, 24)
			if job.NormalizedTime <= prev.NormalizedTime {
				t.Errorf("normalized time not strictly increasing at frame %d", i)
			}
			if job.TimeOffsetMs <= prev.TimeOffsetMs {
				t.Errorf("time offset not strictly increasing at frame %d", i)
			}
		}
	}
}
