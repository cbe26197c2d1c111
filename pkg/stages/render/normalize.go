package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// normalizeFrame rescales a captured PNG to exactly width x height. The
// encoder requires every frame in the sequence to share the same, even
// dimensions; device scale factors and viewport rounding can make raw
// screenshots deviate.
func normalizeFrame(data []byte, width, height int) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return data, nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
