// Package anim provides pure parameter interpolation for animated sketches.
package anim

import (
	"strconv"
	"strings"

	"github.com/user/sketchcast/pkg/pipeline"
)

// Spec describes one parameter's animation range.
type Spec struct {
	Key   string
	Start float64
	End   float64
}

// ParseSpec parses a "key=start:end" animation spec.
func ParseSpec(text string) (Spec, error) {
	eq := strings.Index(text, "=")
	if eq < 0 {
		return Spec{}, &pipeline.FormatError{Input: text, Reason: "missing '=' separator"}
	}

	key := text[:eq]
	if key == "" {
		return Spec{}, &pipeline.FormatError{Input: text, Reason: "empty parameter key"}
	}

	parts := strings.Split(text[eq+1:], ":")
	if len(parts) != 2 {
		return Spec{}, &pipeline.FormatError{Input: text, Reason: "range must be start:end"}
	}

	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Spec{}, &pipeline.FormatError{Input: text, Reason: "start value is not a number"}
	}
	end, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Spec{}, &pipeline.FormatError{Input: text, Reason: "end value is not a number"}
	}

	return Spec{Key: key, Start: start, End: end}, nil
}

// ParseSpecs parses a list of "key=start:end" strings, failing on the first
// malformed entry.
func ParseSpecs(texts []string) ([]Spec, error) {
	specs := make([]Spec, 0, len(texts))
	for _, text := range texts {
		spec, err := ParseSpec(text)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Interpolate maps a normalized time to concrete parameter values. t is
// clamped into [0,1] before the easing is applied. Duplicate keys follow
// last-write-wins.
func Interpolate(specs []Spec, t float64, easing Easing) map[string]float64 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	eased := easing(t)

	values := make(map[string]float64, len(specs))
	for _, spec := range specs {
		values[spec.Key] = spec.Start + (spec.End-spec.Start)*eased
	}
	return values
}
