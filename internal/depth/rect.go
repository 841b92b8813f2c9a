package depth

import "image"

// Rect is a pixel rectangle given by two corners. (X0, Y0) is inclusive and
// (X1, Y1) is exclusive once the rectangle is normalized.
//
// A Rect built straight from a mouse drag may have its corners in any
// order; call Normalize before using it.
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Normalize returns r with X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalize() Rect {
	if r.X1 < r.X0 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y1 < r.Y0 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Normalized reports whether X0 <= X1 and Y0 <= Y1.
func (r Rect) Normalized() bool {
	return r.X0 <= r.X1 && r.Y0 <= r.Y1
}

// Clamp limits a normalized rectangle to [0, width] x [0, height].
func (r Rect) Clamp(width, height int) Rect {
	r.X0 = clampInt(r.X0, 0, width)
	r.X1 = clampInt(r.X1, 0, width)
	r.Y0 = clampInt(r.Y0, 0, height)
	r.Y1 = clampInt(r.Y1, 0, height)
	return r
}

// Dx returns the width of a normalized rectangle.
func (r Rect) Dx() int { return r.X1 - r.X0 }

// Dy returns the height of a normalized rectangle.
func (r Rect) Dy() int { return r.Y1 - r.Y0 }

// Area returns the number of pixels covered by a normalized rectangle.
func (r Rect) Area() int { return r.Dx() * r.Dy() }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.X0 >= r.X1 || r.Y0 >= r.Y1 }

// Image converts r to an image.Rectangle. image.Rect canonicalizes the
// corners, so unnormalized input is accepted.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X0, r.Y0, r.X1, r.Y1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
