package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/depth-tools-mcp/internal/depth"
)

// decodeResult decodes the base64 PNG in a RenderResult.
func decodeResult(t *testing.T, r *RenderResult) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	return img
}

func TestEncode(t *testing.T) {
	f := loadTestFrame(t, 20, 10)

	result, err := Encode(f.Colorized, 1.0)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if result.Width != 20 || result.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", result.Width, result.Height)
	}

	img := decodeResult(t, result)
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("pixel (0,0): got (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestEncode_Scale(t *testing.T) {
	f := loadTestFrame(t, 20, 10)

	tests := []struct {
		name          string
		scale         float64
		wantW, wantH  int
	}{
		{"double", 2.0, 40, 20},
		{"half", 0.5, 10, 5},
		{"zero means unscaled", 0, 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Encode(f.Colorized, tt.scale)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", result.Width, result.Height, tt.wantW, tt.wantH)
			}
		})
	}

	if _, err := Encode(f.Colorized, 0.01); err == nil {
		t.Error("Encode should fail when scaling to nothing")
	}
}

func TestCrop(t *testing.T) {
	f := loadTestFrame(t, 20, 10)

	result, err := Crop(f.Colorized, depth.Rect{X0: 15, Y0: 8, X1: 5, Y1: 2}, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 10 || result.Height != 6 {
		t.Errorf("dimensions: got %dx%d, want 10x6", result.Width, result.Height)
	}

	img := decodeResult(t, result)
	want := f.Colorized.RGBAAt(5, 2)
	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("crop origin: got (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestCrop_Invalid(t *testing.T) {
	f := loadTestFrame(t, 20, 10)

	tests := []struct {
		name string
		r    depth.Rect
	}{
		{"outside right", depth.Rect{X0: 0, Y0: 0, X1: 21, Y1: 5}},
		{"negative", depth.Rect{X0: -1, Y0: 0, X1: 5, Y1: 5}},
		{"zero width", depth.Rect{X0: 3, Y0: 0, X1: 3, Y1: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(f.Colorized, tt.r, 1.0); err == nil {
				t.Error("Crop should fail")
			}
		})
	}
}

func TestView(t *testing.T) {
	f := loadTestFrame(t, 8, 8)

	for _, name := range []string{"", ViewDepth, ViewIntensity, ViewOverlay} {
		img, err := View(f, name, DefaultOverlayOpacity)
		if err != nil {
			t.Errorf("View(%q) failed: %v", name, err)
			continue
		}
		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
			t.Errorf("View(%q) bounds: got %v", name, img.Bounds())
		}
	}

	if _, err := View(f, "thermal", 0.5); err == nil {
		t.Error("View should reject unknown names")
	}
}

func TestOverlay(t *testing.T) {
	f := loadTestFrame(t, 8, 8)

	// Full opacity shows only depth colors.
	full := Overlay(f, 1.5)
	if got, want := full.RGBAAt(0, 0), f.Colorized.RGBAAt(0, 0); got != want {
		t.Errorf("opacity 1: got %v, want %v", got, want)
	}

	// Zero opacity shows only the intensity image, within float rounding.
	none := Overlay(f, -1)
	gray := color.GrayModel.Convert(f.Intensity.At(6, 0)).(color.Gray)
	got := none.RGBAAt(6, 0)
	for _, c := range []uint8{got.R, got.G, got.B} {
		if d := int(c) - int(gray.Y); d < -1 || d > 1 {
			t.Errorf("opacity 0: got %v, want gray %d", got, gray.Y)
			break
		}
	}
}
