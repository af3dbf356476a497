package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
)

// Region is a rectangle in pixel coordinates; X2 and Y2 are exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Regions lists the names accepted by NamedRegion.
var Regions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// CropFrame returns a new frame holding r of f. f is not modified.
func CropFrame(f *filter.Frame, r Region) (*filter.Frame, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if r.X1 < 0 || r.Y1 < 0 || r.X2 > f.Width || r.Y2 > f.Height {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, f.Width, f.Height)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(ToNRGBA(f), image.Rect(r.X1, r.Y1, r.X2, r.Y2))
	return FrameFromImage(cropped), nil
}

// NamedRegion resolves a region name for a width x height image.
func NamedRegion(width, height int, name string) (Region, error) {
	midX := width / 2
	midY := height / 2

	switch name {
	case "top-left":
		return Region{0, 0, midX, midY}, nil
	case "top-right":
		return Region{midX, 0, width, midY}, nil
	case "bottom-left":
		return Region{0, midY, midX, height}, nil
	case "bottom-right":
		return Region{midX, midY, width, height}, nil
	case "top-half":
		return Region{0, 0, width, midY}, nil
	case "bottom-half":
		return Region{0, midY, width, height}, nil
	case "left-half":
		return Region{0, 0, midX, height}, nil
	case "right-half":
		return Region{midX, 0, width, height}, nil
	case "center":
		// Center 50% of the image
		qW := width / 4
		qH := height / 4
		return Region{qW, qH, width - qW, height - qH}, nil
	default:
		return Region{}, fmt.Errorf("unknown region: %s", name)
	}
}
