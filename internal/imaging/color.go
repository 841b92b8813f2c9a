package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/depth-tools-mcp/internal/depth"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSVColor is the rendered color measured back in HSV space.
//
// For valid samples the hue matches HueDegrees of the sample wrapped into
// [0, 360), up to 8-bit quantization.
type HSVColor struct {
	H float64 `json:"h"` // Hue: 0-360 degrees
	S float64 `json:"s"` // Saturation: 0-1
	V float64 `json:"v"` // Value: 0-1
}

// DepthSample describes one pixel of a frame.
type DepthSample struct {
	X int `json:"x"`
	Y int `json:"y"`

	// DepthMM is the raw sample; 0 when Valid is false.
	DepthMM uint16 `json:"depth_mm"`
	Valid   bool   `json:"valid"`

	// HueDegrees is the unwrapped hue the depth maps to.
	HueDegrees float64 `json:"hue_degrees"`

	// Hex is the rendered color as "#rrggbb".
	Hex string   `json:"hex"`
	RGB RGBColor `json:"rgb"`
	HSV HSVColor `json:"hsv"`
}

// SampleDepth reports the depth and rendered color at a pixel.
//
// Returns an error if (x, y) is outside the frame.
func SampleDepth(f *Frame, x, y int) (*DepthSample, error) {
	if !f.Depth.Contains(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside frame bounds %dx%d", x, y, f.Width(), f.Height())
	}

	d := f.Depth.At(x, y)
	rgba := f.Colorized.RGBAAt(x, y)

	c, _ := colorful.MakeColor(rgba)
	h, s, v := c.Hsv()

	return &DepthSample{
		X:          x,
		Y:          y,
		DepthMM:    d,
		Valid:      d != 0,
		HueDegrees: depth.HueForDepth(d),
		Hex:        c.Hex(),
		RGB:        RGBColor{R: rgba.R, G: rgba.G, B: rgba.B},
		HSV: HSVColor{
			H: math.Round(h*10) / 10,
			S: math.Round(s*1000) / 1000,
			V: math.Round(v*1000) / 1000,
		},
	}, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledDepthSample combines a sample with an optional label.
type LabeledDepthSample struct {
	Label string `json:"label,omitempty"`
	DepthSample
}

// MultiSampleResult contains samples in the same order as the input points.
type MultiSampleResult struct {
	Samples []LabeledDepthSample `json:"samples"`
}

// SampleDepthMulti samples several pixels in one call. On error, no partial
// results are returned.
func SampleDepthMulti(f *Frame, points []LabeledPoint) (*MultiSampleResult, error) {
	results := make([]LabeledDepthSample, 0, len(points))

	for _, p := range points {
		s, err := SampleDepth(f, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledDepthSample{Label: p.Label, DepthSample: *s})
	}

	return &MultiSampleResult{Samples: results}, nil
}
