package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/ironsheep/depth-tools-mcp/internal/depth"
)

// DefaultSelectionColor matches the outline drawn by the capture viewer.
const DefaultSelectionColor = "#FF0000"

// GridOverlay adds a coordinate grid overlay to an image. Grid labels help
// pick rectangle corners for region statistics.
func GridOverlay(img image.Image, gridSpacing int, showCoordinates bool, gridColorHex string) (*image.RGBA, error) {
	if gridSpacing <= 0 {
		return nil, fmt.Errorf("grid spacing must be positive, got %d", gridSpacing)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gridColor, err := parseHexColor(gridColorHex)
	if err != nil {
		gridColor = color.RGBA{255, 255, 255, 128} // Default: semi-transparent white
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	for x := gridSpacing; x < width; x += gridSpacing {
		for y := 0; y < height; y++ {
			blendPixel(result, x, y, gridColor)
		}
	}
	for y := gridSpacing; y < height; y += gridSpacing {
		for x := 0; x < width; x++ {
			blendPixel(result, x, y, gridColor)
		}
	}

	if showCoordinates {
		labelColor := color.RGBA{255, 255, 255, 255}
		bgColor := color.RGBA{0, 0, 0, 180}

		for y := gridSpacing; y < height; y += gridSpacing {
			for x := gridSpacing; x < width; x += gridSpacing {
				drawLabel(result, x+2, y+2, fmt.Sprintf("%d,%d", x, y), labelColor, bgColor)
			}
		}
	}

	return result, nil
}

// SelectionPreview draws the outline of a selection on a copy of img.
//
// The corners may be in any order. The outline covers the first and last
// column and row of the region, as a drag rectangle would; parts outside
// the image are skipped.
func SelectionPreview(img image.Image, r depth.Rect, outlineHex string) (*image.RGBA, error) {
	outline, err := parseHexColor(outlineHex)
	if err != nil {
		return nil, fmt.Errorf("invalid outline color %q: %w", outlineHex, err)
	}

	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	r = r.Normalize()
	for x := r.X0; x <= r.X1; x++ {
		setIn(result, x, r.Y0, outline)
		setIn(result, x, r.Y1, outline)
	}
	for y := r.Y0; y <= r.Y1; y++ {
		setIn(result, r.X0, y, outline)
		setIn(result, r.X1, y, outline)
	}

	return result, nil
}

func setIn(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

// blendPixel composites c over the pixel at (x, y) using c's alpha.
func blendPixel(img *image.RGBA, x, y int, c color.RGBA) {
	if c.A == 255 {
		img.SetRGBA(x, y, c)
		return
	}
	dst := img.RGBAAt(x, y)
	a := uint32(c.A)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	img.SetRGBA(x, y, color.RGBA{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B), A: 255})
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// 3x5 glyphs for grid labels.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

// drawLabel draws a small text label with a translucent background box.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if (image.Point{X: px, Y: py}).In(bounds) {
				blendPixel(img, px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setIn(img, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
