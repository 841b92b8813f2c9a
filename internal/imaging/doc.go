// Package imaging loads depth captures and renders them for inspection.
//
// A capture is a pair of files: a headerless raw depth file and a companion
// intensity (IR) image taken by the same sensor. The image supplies the
// frame dimensions; the depth file must hold exactly one uint16 sample per
// image pixel.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x0,y0) is inclusive and (x1,y1) is exclusive once the
//     corners are normalized
//
// # Views
//
// Each loaded Frame can be rendered three ways:
//   - depth: the hue-encoded depth image, computed once at load time
//   - intensity: the companion image as loaded
//   - overlay: the depth colors blended over the intensity image
//
// Rendered images are returned as base64 PNG, optionally scaled with
// nearest-neighbor sampling.
//
// # Thread Safety
//
// FrameCache is safe for concurrent use. Frames are never mutated after
// loading, and every rendering function draws into a fresh image.
package imaging
