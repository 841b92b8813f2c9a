package depth

import "errors"

var (
	// ErrMissingInput is returned when a depth file or its companion image
	// cannot be read.
	ErrMissingInput = errors.New("depth: missing input")

	// ErrDimensionMismatch is returned when the number of depth samples does
	// not equal width*height.
	ErrDimensionMismatch = errors.New("depth: sample count does not match dimensions")

	// ErrUnnormalizedRect is returned when a rectangle has X1 < X0 or Y1 < Y0.
	ErrUnnormalizedRect = errors.New("depth: rectangle corners are not normalized")

	// ErrOutOfBounds is returned when a rectangle extends past the frame.
	ErrOutOfBounds = errors.New("depth: rectangle outside frame bounds")

	// ErrEmptyRegion is returned by operations that cannot produce output
	// for a region without valid samples.
	ErrEmptyRegion = errors.New("depth: no useful readings in region")
)
