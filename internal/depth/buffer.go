package depth

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Buffer holds one depth frame.
//
// Samples are stored row-major, so the sample for pixel (x, y) lives at
// index y*Width+x. A zero sample marks a pixel without a reading; any other
// value is a distance in millimeters.
type Buffer struct {
	Width   int
	Height  int
	Samples []uint16
}

// NewBuffer wraps samples as a frame of the given dimensions.
//
// The slice is not copied; callers must not modify it afterwards.
// Returns ErrDimensionMismatch if len(samples) != width*height or either
// dimension is not positive.
func NewBuffer(width, height int, samples []uint16) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrDimensionMismatch, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("%w: got %d samples for %dx%d (want %d)",
			ErrDimensionMismatch, len(samples), width, height, width*height)
	}
	return &Buffer{Width: width, Height: height, Samples: samples}, nil
}

// At returns the sample at (x, y). The coordinates must be inside the frame.
func (b *Buffer) At(x, y int) uint16 {
	return b.Samples[y*b.Width+x]
}

// Contains reports whether (x, y) is a pixel of the frame.
func (b *Buffer) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Bounds returns the full-frame rectangle.
func (b *Buffer) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: b.Width, Y1: b.Height}
}

// Summary describes a whole frame.
type Summary struct {
	Valid   int    `json:"valid_samples"`
	Invalid int    `json:"invalid_samples"`
	Min     uint16 `json:"min_mm,omitempty"`
	Max     uint16 `json:"max_mm,omitempty"`
}

// Summarize counts valid and invalid samples and finds the depth range of
// the frame. Min and Max are zero when the frame has no valid samples.
func (b *Buffer) Summarize() Summary {
	var s Summary
	for _, d := range b.Samples {
		if d == 0 {
			s.Invalid++
			continue
		}
		if s.Valid == 0 || d < s.Min {
			s.Min = d
		}
		if d > s.Max {
			s.Max = d
		}
		s.Valid++
	}
	return s
}

// ReadRaw decodes a headerless depth frame: width*height little-endian
// uint16 values, row-major.
//
// The stream must contain exactly 2*width*height bytes. Short or long
// input is reported as ErrDimensionMismatch rather than truncated or padded.
func ReadRaw(r io.Reader, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrDimensionMismatch, width, height)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read depth data: %w", err)
	}

	want := 2 * width * height
	if len(raw) != want {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d (want %d)",
			ErrDimensionMismatch, len(raw), width, height, want)
	}

	samples := make([]uint16, width*height)
	for i := range samples {
		samples[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}

	return NewBuffer(width, height, samples)
}

// LoadRaw reads a raw depth file from disk. A missing or unreadable file is
// reported with ErrMissingInput.
func LoadRaw(path string, width, height int) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrMissingInput, err)
		}
		return nil, fmt.Errorf("failed to open depth file: %w", err)
	}
	defer f.Close()

	return ReadRaw(bufio.NewReader(f), width, height)
}

// WriteRaw encodes b in the same format ReadRaw accepts.
func WriteRaw(w io.Writer, b *Buffer) error {
	out := make([]byte, 2*len(b.Samples))
	for i, d := range b.Samples {
		binary.LittleEndian.PutUint16(out[2*i:], d)
	}
	_, err := w.Write(out)
	return err
}
