package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
)

// decoded is one cache entry: the pixels as a Frame plus facts about the
// source file that the Frame no longer carries.
type decoded struct {
	frame      *filter.Frame
	hasAlpha   bool
	colorDepth string
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Cached frames are never handed out directly. Load returns a private copy,
// so filters can mutate the result in place without affecting later calls.
//
// # Memory Management
//
// Entries remain in memory until removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	frame, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = filter.Grayscale(frame)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*decoded
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*decoded),
	}
}

// Load returns a fresh copy of the image at path as a non-premultiplied RGBA
// frame, decoding it from disk on first use.
//
// Supported formats are PNG, JPEG, GIF, BMP and TIFF. EXIF orientation is
// applied on decode.
func (c *ImageCache) Load(path string) (*filter.Frame, error) {
	d, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return d.frame.Clone(), nil
}

func (c *ImageCache) load(path string) (*decoded, error) {
	c.mu.RLock()
	if d, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	d := &decoded{frame: FrameFromImage(img), colorDepth: "8-bit"}
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		d.hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		d.hasAlpha = true
		d.colorDepth = "16-bit"
	case *image.Gray16:
		d.colorDepth = "16-bit"
	}

	c.mu.Lock()
	c.images[path] = d
	c.mu.Unlock()

	return d, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*decoded)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// FrameFromImage copies any image into a new non-premultiplied RGBA frame
// whose origin is the image's top-left corner.
func FrameFromImage(img image.Image) *filter.Frame {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	pix := make([]byte, w*h*filter.BytesPerPixel)
	rowLen := w * filter.BytesPerPixel
	for y := 0; y < h; y++ {
		copy(pix[y*rowLen:(y+1)*rowLen], src.Pix[y*src.Stride:y*src.Stride+rowLen])
	}
	return &filter.Frame{Width: w, Height: h, Pix: pix}
}

// ToNRGBA wraps the frame's pixels as an *image.NRGBA without copying.
func ToNRGBA(f *filter.Frame) *image.NRGBA {
	return &image.NRGBA{
		Pix:    f.Pix,
		Stride: f.Width * filter.BytesPerPixel,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension: "png", "jpeg",
	// "gif", "bmp", "tiff" or "unknown".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel of the source file:
	// "8-bit" or "16-bit". Frames are always 8-bit.
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the source image has an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// FrameBytes is the size of the decoded RGBA buffer (width*height*4).
	FrameBytes int `json:"frame_bytes"`

	// Thumbnail is set when the caller asked for a preview.
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
}

// LoadImageInfo loads an image into the cache and returns its metadata.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	d, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &ImageInfo{
		Width:         d.frame.Width,
		Height:        d.frame.Height,
		Format:        formatFromExt(path),
		ColorDepth:    d.colorDepth,
		HasAlpha:      d.hasAlpha,
		FileSizeBytes: stat.Size(),
		FrameBytes:    len(d.frame.Pix),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	d, err := cache.load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:  d.frame.Width,
		Height: d.frame.Height,
	}, nil
}

// formatFromExt maps a file extension to a format name.
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
	default:
		return "unknown"
	}
}
