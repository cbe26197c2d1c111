package anim

import (
	"github.com/user/sketchcast/pkg/pipeline"
)

// Easing maps [0,1] to [0,1] with f(0)=0, f(1)=1, monotonic non-decreasing.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseIn accelerates from zero velocity.
func EaseIn(t float64) float64 { return t * t }

// EaseOut decelerates to zero velocity.
func EaseOut(t float64) float64 { return t * (2 - t) }

// EaseInOut accelerates in the first half and decelerates in the second,
// symmetric about t=0.5.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EasingNames lists the registered easing names in display order.
var EasingNames = []string{"linear", "ease-in", "ease-out", "ease-in-out"}

// EasingByName resolves a registered easing function.
func EasingByName(name string) (Easing, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	case "ease-in-out":
		return EaseInOut, nil
	default:
		return nil, &pipeline.FormatError{Input: name, Reason: "unknown easing"}
	}
}
