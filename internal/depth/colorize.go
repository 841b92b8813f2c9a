package depth

import (
	"image"
	"image/color"
	"sync"
)

const (
	// HueOriginMM is the depth rendered at hue 0 (red).
	HueOriginMM = 500

	// HueSpanMM is the depth range that sweeps one full hue rotation.
	HueSpanMM = 500
)

// HueForDepth returns the hue, in degrees, used to render depth d. The
// result is not wrapped; depths outside [500, 1000) fall outside [0, 360).
func HueForDepth(d uint16) float64 {
	return float64(int(d)-HueOriginMM) * (360.0 / HueSpanMM)
}

// ColorForDepth returns the display color for a single sample. Samples
// without a reading are black.
func ColorForDepth(d uint16) color.RGBA {
	value := 1.0
	if d == 0 {
		value = 0
	}
	r, g, b := HSVToRGB(HueForDepth(d), 1, value)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Colorize renders a depth frame as an opaque RGBA image of the same size.
//
// The function is pure: the same frame always produces identical pixels.
func Colorize(buf *Buffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	fillRows(img.Pix, buf.Samples)
	return img
}

// ColorizeParallel is Colorize with the rows split across workers
// goroutines. Output is byte-identical to Colorize.
func ColorizeParallel(buf *Buffer, workers int) *image.RGBA {
	if workers <= 1 || buf.Height < 2 {
		return Colorize(buf)
	}
	if workers > buf.Height {
		workers = buf.Height
	}

	img := image.NewRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	rowsPer := (buf.Height + workers - 1) / workers

	var wg sync.WaitGroup
	for y0 := 0; y0 < buf.Height; y0 += rowsPer {
		y1 := y0 + rowsPer
		if y1 > buf.Height {
			y1 = buf.Height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fillRows(img.Pix[y0*img.Stride:y1*img.Stride], buf.Samples[y0*buf.Width:y1*buf.Width])
		}(y0, y1)
	}
	wg.Wait()

	return img
}

// fillRows writes one RGBA quadruple per sample into pix. image.NewRGBA
// allocates with Stride == 4*Width, so rows are contiguous.
func fillRows(pix []uint8, samples []uint16) {
	for i, d := range samples {
		c := ColorForDepth(d)
		p := pix[4*i : 4*i+4 : 4*i+4]
		p[0] = c.R
		p[1] = c.G
		p[2] = c.B
		p[3] = c.A
	}
}
