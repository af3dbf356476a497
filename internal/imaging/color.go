package imaging

import (
	"fmt"

	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents an RGBA color with 8-bit components.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes one pixel of a frame.
type ColorResult struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`

	// Luminance is the normalized luminance compared against the
	// remove-background threshold.
	Luminance float32 `json:"luminance"`
}

// SampleColor reads the pixel at (x, y).
//
// Parameters:
//   - f: The frame to sample.
//   - x, y: 0-based coordinates from the top-left corner.
//
// Returns an error if the coordinates are outside the frame.
func SampleColor(f *filter.Frame, x, y int) (*ColorResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !f.In(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, f.Width, f.Height)
	}

	p := f.At(x, y)
	c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
	h, s, l := c.Hsl()

	return &ColorResult{
		X:         x,
		Y:         y,
		Hex:       fmt.Sprintf("#%02X%02X%02X", p.R, p.G, p.B),
		RGBA:      RGBAColor{R: p.R, G: p.G, B: p.B, A: p.A},
		HSL:       HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Luminance: filter.Luminance(p.R, p.G, p.B),
	}, nil
}
