package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder

	"github.com/ironsheep/depth-tools-mcp/internal/depth"
)

// Conventional file names written by the capture tool.
const (
	DefaultDepthFile = "DepthData.bin"
	DefaultImageFile = "IR.jpg"
)

// Frame is a depth capture together with its companion intensity image.
//
// The intensity image is the dimension oracle for the raw depth data: the
// depth file carries no header, so its width and height are taken from the
// image. Colorized is rendered once at load time.
type Frame struct {
	DepthPath string
	ImagePath string

	Depth     *depth.Buffer
	Intensity image.Image
	Colorized *image.RGBA
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.Depth.Width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.Depth.Height }

// FrameCache provides thread-safe caching of loaded frames to avoid redundant
// disk reads and repeated colorization.
//
// Frames are keyed by the depth file path. Once a frame is loaded, subsequent
// Load() calls for the same path return the cached copy without disk I/O.
//
// # Memory Management
//
// Cached frames remain in memory until explicitly removed via Evict() or
// Clear(). A 512x424 capture costs roughly 1.3MB (depth, intensity and
// colorized views).
type FrameCache struct {
	mu      sync.RWMutex
	frames  map[string]*Frame
	workers int
}

// NewFrameCache creates an empty cache. workers controls how many goroutines
// colorize a newly loaded frame; values below 2 colorize sequentially.
func NewFrameCache(workers int) *FrameCache {
	return &FrameCache{
		frames:  make(map[string]*Frame),
		workers: workers,
	}
}

// Load retrieves a frame from the cache or loads it from disk if not cached.
//
// Parameters:
//   - depthPath: Path to the raw depth file (little-endian uint16 samples).
//   - imagePath: Path to the companion intensity image. Supported formats are
//     PNG, JPEG, GIF, BMP and TIFF.
//
// The companion image is loaded first; the depth file must then hold exactly
// width*height samples. Nothing is cached unless both files load.
//
// # Errors
//
//   - Wraps depth.ErrMissingInput if either file does not exist
//   - Wraps depth.ErrDimensionMismatch if the depth file size does not match
//     the image dimensions
//   - Returns error if the image cannot be decoded
func (c *FrameCache) Load(depthPath, imagePath string) (*Frame, error) {
	c.mu.RLock()
	if f, ok := c.frames[depthPath]; ok && f.ImagePath == imagePath {
		c.mu.RUnlock()
		return f, nil
	}
	c.mu.RUnlock()

	img, err := loadImage(imagePath)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	buf, err := depth.LoadRaw(depthPath, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, fmt.Errorf("failed to load depth data %s: %w", depthPath, err)
	}

	f := &Frame{
		DepthPath: depthPath,
		ImagePath: imagePath,
		Depth:     buf,
		Intensity: img,
		Colorized: depth.ColorizeParallel(buf, c.workers),
	}

	c.mu.Lock()
	c.frames[depthPath] = f
	c.mu.Unlock()

	return f, nil
}

// Clear removes all frames from the cache, freeing the associated memory.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]*Frame)
	c.mu.Unlock()
}

// Evict removes a frame from the cache by its depth path.
//
// If the path is not in the cache, this method does nothing.
func (c *FrameCache) Evict(depthPath string) {
	c.mu.Lock()
	delete(c.frames, depthPath)
	c.mu.Unlock()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %v", depth.ErrMissingInput, err)
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ResolvePaths fills in missing paths from a capture directory using the
// conventional file names. Explicit paths win over dir.
//
// Returns depth.ErrMissingInput if a path cannot be determined.
func ResolvePaths(dir, depthPath, imagePath string) (string, string, error) {
	if depthPath == "" && dir != "" {
		depthPath = filepath.Join(dir, DefaultDepthFile)
	}
	if imagePath == "" && dir != "" {
		imagePath = filepath.Join(dir, DefaultImageFile)
	}
	if depthPath == "" || imagePath == "" {
		return "", "", fmt.Errorf("%w: both a depth file and an image file are required", depth.ErrMissingInput)
	}
	return depthPath, imagePath, nil
}

// FrameInfo contains metadata about a loaded frame.
type FrameInfo struct {
	// Width is the frame width in pixels.
	Width int `json:"width"`

	// Height is the frame height in pixels.
	Height int `json:"height"`

	// DepthPath and ImagePath echo the files the frame was loaded from.
	DepthPath string `json:"depth_path"`
	ImagePath string `json:"image_path"`

	// ImageFormat is the companion image format detected from its extension:
	// "png", "jpeg", "gif", "bmp", "tiff", or "unknown".
	ImageFormat string `json:"image_format"`

	// DepthFileBytes is the size of the raw depth file on disk.
	DepthFileBytes int64 `json:"depth_file_bytes"`

	// Depth summarizes valid and invalid samples over the whole frame.
	Depth depth.Summary `json:"depth"`
}

// LoadFrameInfo loads a frame into the cache (if not already cached) and
// describes it.
func LoadFrameInfo(cache *FrameCache, depthPath, imagePath string) (*FrameInfo, error) {
	f, err := cache.Load(depthPath, imagePath)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(depthPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat depth file: %w", err)
	}

	return &FrameInfo{
		Width:          f.Width(),
		Height:         f.Height(),
		DepthPath:      depthPath,
		ImagePath:      imagePath,
		ImageFormat:    formatFromExt(imagePath),
		DepthFileBytes: stat.Size(),
		Depth:          f.Depth.Summarize(),
	}, nil
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return "unknown"
}
