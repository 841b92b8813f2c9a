// Package depth implements the numeric core of the depth inspection tools:
// loading raw depth frames, hue-encoding them for display, and computing
// statistics over rectangular regions.
//
// # Depth Frames
//
// A depth frame is a row-major grid of unsigned 16-bit samples, one per
// pixel, measured in millimeters. A sample of 0 means the sensor produced
// no reading for that pixel. Frames are immutable once loaded and may be
// shared freely between goroutines.
//
// # Colorization
//
// Depth is mapped onto the HSV hue circle: every 500mm of depth sweeps one
// full rotation starting at 500mm (red). Depths outside [500, 1000) wrap
// around the circle instead of clamping. Pixels without a reading are
// rendered black.
//
// # Regions
//
// Regions use the half-open convention shared with image.Rectangle: the
// pixels at X1 and Y1 are not part of the region. A Rect built from two
// arbitrary drag corners must be normalized (and usually clamped) before
// it is handed to ComputeStats; StatsForSelection does both.
package depth
