package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
	"github.com/nfnt/resize"
)

// FilterResult is what the host hands back to the client after a filter ran.
type FilterResult struct {
	Filter      string `json:"filter"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type"`
	SavedTo     string `json:"saved_to,omitempty"`

	// Region is the part of the source image the filter ran on, if cropped.
	Region *Region `json:"region,omitempty"`

	// Changes compares the filtered frame with its input.
	Changes *ChangeStats `json:"changes,omitempty"`
}

// EncodeResult encodes the frame as a base64 PNG.
//
// A scale other than 1.0 resizes the encoded preview (Lanczos); the frame
// itself is not touched. Empty frames produce a result with no image data.
func EncodeResult(f *filter.Frame, scale float64) (*FilterResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	res := &FilterResult{Width: f.Width, Height: f.Height, MimeType: "image/png"}
	if f.Empty() {
		return res, nil
	}

	img := ToNRGBA(f)
	if scale != 1.0 && scale > 0 {
		w := max(int(float64(f.Width)*scale), 1)
		h := max(int(float64(f.Height)*scale), 1)
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	res.Width = img.Rect.Dx()
	res.Height = img.Rect.Dy()
	res.ImageBase64 = base64.StdEncoding.EncodeToString(buf.Bytes())
	return res, nil
}

// Thumbnail is a small PNG preview of an image.
type Thumbnail struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeThumbnail fits the frame inside maxSize x maxSize, keeping its aspect
// ratio, and encodes it as a base64 PNG. Frames already within the bound are
// encoded at full size.
func EncodeThumbnail(f *filter.Frame, maxSize int) (*Thumbnail, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		return nil, fmt.Errorf("thumbnail size must be positive, got %d", maxSize)
	}
	if f.Empty() {
		return nil, fmt.Errorf("cannot thumbnail empty %dx%d image", f.Width, f.Height)
	}

	thumb := resize.Thumbnail(uint(maxSize), uint(maxSize), ToNRGBA(f), resize.Lanczos3)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	b := thumb.Bounds()
	return &Thumbnail{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SaveFrame writes the frame to path. The encoder is chosen by extension:
// .png, .jpg/.jpeg (quality 90) or .bmp. Missing parent directories are
// created.
func SaveFrame(f *filter.Frame, path string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.Empty() {
		return fmt.Errorf("cannot save empty %dx%d image", f.Width, f.Height)
	}

	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		enc = imgio.JPEGEncoder(90)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported output format %q (use .png, .jpg or .bmp)", filepath.Ext(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imgio.Save(path, ToNRGBA(f), enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
