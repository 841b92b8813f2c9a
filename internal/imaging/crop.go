package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/depth-tools-mcp/internal/depth"
)

// Names of the frame views that can be rendered.
const (
	ViewDepth     = "depth"
	ViewIntensity = "intensity"
	ViewOverlay   = "overlay"
)

// DefaultOverlayOpacity is the weight of the depth colors in ViewOverlay.
const DefaultOverlayOpacity = 0.5

// RenderResult contains an encoded image
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// View returns the named view of a frame. opacity only applies to
// ViewOverlay and is clamped to [0, 1].
func View(f *Frame, name string, opacity float64) (image.Image, error) {
	switch name {
	case "", ViewDepth:
		return f.Colorized, nil
	case ViewIntensity:
		return f.Intensity, nil
	case ViewOverlay:
		return Overlay(f, opacity), nil
	default:
		return nil, fmt.Errorf("unknown view: %s", name)
	}
}

// Overlay blends the colorized depth over the intensity image.
func Overlay(f *Frame, opacity float64) *image.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return blend.Opacity(f.Intensity, f.Colorized, opacity)
}

// Encode scales img and encodes it as a base64 PNG.
//
// Scaling uses nearest-neighbor sampling so depth colors are never mixed
// into hues that correspond to other depths.
func Encode(img image.Image, scale float64) (*RenderResult, error) {
	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(img.Bounds().Dx()) * scale)
		newHeight := int(float64(img.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f reduces image to nothing", scale)
		}
		img = imaging.Resize(img, newWidth, newHeight, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imgio.PNGEncoder()(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &RenderResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Crop extracts a rectangular region from an image and encodes it.
//
// The corners may be given in any order. Unlike statistics, a crop is not
// clamped: the region must lie inside the image.
func Crop(img image.Image, r depth.Rect, scale float64) (*RenderResult, error) {
	bounds := img.Bounds()
	r = r.Normalize()

	if r.X0 < bounds.Min.X || r.Y0 < bounds.Min.Y || r.X1 > bounds.Max.X || r.Y1 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X0, r.Y0, r.X1, r.Y1, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region: (%d,%d)-(%d,%d) has no area", r.X0, r.Y0, r.X1, r.Y1)
	}

	return Encode(imaging.Crop(img, r.Image()), scale)
}
