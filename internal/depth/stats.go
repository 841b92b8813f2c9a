package depth

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// NearestFraction is the divisor used to size the slice of nearest samples
// averaged into Stats.TopDecileMean. The result has always been labelled
// "Top 10%" but covers count/20 samples (5%).
const NearestFraction = 20

// Stats summarizes the depth samples inside a region.
//
// Min, Max, Mean and TopDecileMean are only meaningful when Good > 0; see
// Empty.
type Stats struct {
	Region Rect `json:"region"`

	// Good counts samples with a reading, Bad those without.
	Good int `json:"good"`
	Bad  int `json:"bad"`

	Min uint16 `json:"min_mm"`
	Max uint16 `json:"max_mm"`

	// Mean is the average of all good samples.
	Mean float64 `json:"mean_mm"`

	// TopDecileMean is the average of the nearest count/20 good samples, or
	// of all good samples when count/20 is zero.
	TopDecileMean float64 `json:"top_decile_mean_mm"`
}

// Empty reports whether the region held no valid samples.
func (s *Stats) Empty() bool {
	return s.Good == 0
}

// RoundedMean returns Mean rounded to the nearest millimeter.
func (s *Stats) RoundedMean() int {
	return int(math.Round(s.Mean))
}

// RoundedTopDecileMean returns TopDecileMean rounded to the nearest
// millimeter.
func (s *Stats) RoundedTopDecileMean() int {
	return int(math.Round(s.TopDecileMean))
}

// Summary formats the record for display.
func (s *Stats) Summary() string {
	if s.Empty() {
		return "No useful readings."
	}
	return fmt.Sprintf("Good: %d\nBad: %d\nMax: %d\nMin: %d\nAvg: %d\nTop 10%%: %d",
		s.Good, s.Bad, s.Max, s.Min, s.RoundedMean(), s.RoundedTopDecileMean())
}

// ComputeStats computes statistics over the samples of buf inside r.
//
// r must be normalized (ErrUnnormalizedRect otherwise) and lie within the
// frame (ErrOutOfBounds otherwise); it is never iterated as-is when its
// corners are reversed. A region without any valid sample, including a
// zero-area one, is not an error: the returned Stats reports Empty with Bad
// set to the region's area.
func ComputeStats(buf *Buffer, r Rect) (*Stats, error) {
	good, bad, err := collect(buf, r)
	if err != nil {
		return nil, err
	}

	s := &Stats{Region: r, Good: len(good), Bad: bad}
	if len(good) == 0 {
		return s, nil
	}

	slices.Sort(good)

	values := make([]float64, len(good))
	for i, d := range good {
		values[i] = float64(d)
	}

	nearest := values[:len(values)/NearestFraction]
	if len(nearest) == 0 {
		nearest = values
	}

	s.Min = good[0]
	s.Max = good[len(good)-1]
	s.Mean = stat.Mean(values, nil)
	s.TopDecileMean = stat.Mean(nearest, nil)

	return s, nil
}

// StatsForSelection normalizes the corners of a drag selection, clamps
// them to the frame and computes statistics over the result.
func StatsForSelection(buf *Buffer, x0, y0, x1, y1 int) (*Stats, error) {
	r := Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}.Normalize().Clamp(buf.Width, buf.Height)
	return ComputeStats(buf, r)
}

// collect splits the samples in r into valid depths and a count of missing
// readings. Iteration is half-open: row Y1 and column X1 are excluded.
func collect(buf *Buffer, r Rect) ([]uint16, int, error) {
	if !r.Normalized() {
		return nil, 0, fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrUnnormalizedRect, r.X0, r.Y0, r.X1, r.Y1)
	}
	if r.X0 < 0 || r.Y0 < 0 || r.X1 > buf.Width || r.Y1 > buf.Height {
		return nil, 0, fmt.Errorf("%w: (%d,%d)-(%d,%d) in %dx%d frame",
			ErrOutOfBounds, r.X0, r.Y0, r.X1, r.Y1, buf.Width, buf.Height)
	}

	good := make([]uint16, 0, r.Area())
	bad := 0
	for y := r.Y0; y < r.Y1; y++ {
		row := buf.Samples[y*buf.Width+r.X0 : y*buf.Width+r.X1]
		for _, d := range row {
			if d == 0 {
				bad++
				continue
			}
			good = append(good, d)
		}
	}
	return good, bad, nil
}
