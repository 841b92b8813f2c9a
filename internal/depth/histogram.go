package depth

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultHistogramBins is used when Histogram is called with bins <= 0.
const DefaultHistogramBins = 20

// Histogram renders the distribution of valid samples inside r as a PNG.
//
// r follows the same rules as in ComputeStats. Unlike ComputeStats, a region
// without valid samples is reported as ErrEmptyRegion since there is nothing
// to plot.
func Histogram(buf *Buffer, r Rect, bins int) ([]byte, error) {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	good, bad, err := collect(buf, r)
	if err != nil {
		return nil, err
	}
	if len(good) == 0 {
		return nil, ErrEmptyRegion
	}

	values := make(plotter.Values, len(good))
	for i, d := range good {
		values[i] = float64(d)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Depth (%d,%d)-(%d,%d): %d good, %d bad", r.X0, r.Y0, r.X1, r.Y1, len(good), bad)
	p.X.Label.Text = "Depth (mm)"
	p.Y.Label.Text = "Samples"

	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(h)

	w, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to render histogram: %w", err)
	}

	var out bytes.Buffer
	if _, err := w.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("failed to encode histogram: %w", err)
	}
	return out.Bytes(), nil
}
