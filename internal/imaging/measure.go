package imaging

import (
	"fmt"
	"math"

	"github.com/ironsheep/pixel-filter-mcp/internal/filter"
)

// ChangeStats summarizes how a filter changed a frame.
type ChangeStats struct {
	TotalPixels int `json:"total_pixels"`

	// PixelsChanged counts pixels with any channel different.
	PixelsChanged int `json:"pixels_changed"`

	// AlphaChanged counts pixels whose alpha differs.
	AlphaChanged int `json:"alpha_changed"`

	// AverageColorDiff is the mean absolute RGB difference over all pixels.
	AverageColorDiff float64 `json:"average_color_diff"`

	// MaxColorDiff is the largest single-channel RGB difference.
	MaxColorDiff int `json:"max_color_diff"`
}

// CompareFrames measures the difference between two frames of equal size.
func CompareFrames(before, after *filter.Frame) (*ChangeStats, error) {
	if err := before.Validate(); err != nil {
		return nil, err
	}
	if err := after.Validate(); err != nil {
		return nil, err
	}
	if before.Width != after.Width || before.Height != after.Height {
		return nil, fmt.Errorf("frame sizes differ: %dx%d vs %dx%d",
			before.Width, before.Height, after.Width, after.Height)
	}

	stats := &ChangeStats{TotalPixels: before.Width * before.Height}
	if stats.TotalPixels == 0 {
		return stats, nil
	}

	var totalColorDiff float64
	for i := 0; i < len(before.Pix); i += filter.BytesPerPixel {
		p := before.Pix[i : i+4 : i+4]
		q := after.Pix[i : i+4 : i+4]

		dr := absDiff(p[0], q[0])
		dg := absDiff(p[1], q[1])
		db := absDiff(p[2], q[2])
		totalColorDiff += float64(dr+dg+db) / 3.0
		stats.MaxColorDiff = max(stats.MaxColorDiff, dr, dg, db)

		if p[3] != q[3] {
			stats.AlphaChanged++
		}
		if dr+dg+db > 0 || p[3] != q[3] {
			stats.PixelsChanged++
		}
	}

	stats.AverageColorDiff = math.Round(totalColorDiff/float64(stats.TotalPixels)*100) / 100
	return stats, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
