package filter

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Saturation scales each pixel's HSV saturation by 1+amount.
//
// amount is typically in [-1,1]: -1 removes all color, 0 is the identity.
// The scaled saturation is clamped to [0,1]. Alpha is unchanged.
func Saturation(f *Frame, amount float32) error {
	if err := checkFinite("saturation", amount); err != nil {
		return err
	}
	scale := 1 + float64(amount)
	return mapHSV(f, func(h, s, v float64) (float64, float64, float64) {
		s *= scale
		if s < 0 {
			s = 0
		} else if s > 1 {
			s = 1
		}
		return h, s, v
	})
}

// HueRotate shifts each pixel's HSV hue by degrees, modulo 360. Alpha is
// unchanged.
func HueRotate(f *Frame, degrees float32) error {
	if err := checkFinite("hue", degrees); err != nil {
		return err
	}
	shift := float64(degrees)
	return mapHSV(f, func(h, s, v float64) (float64, float64, float64) {
		h = math.Mod(h+shift, 360)
		if h < 0 {
			h += 360
		}
		return h, s, v
	})
}

// mapHSV round-trips every pixel's RGB through HSV and fn.
func mapHSV(f *Frame, fn func(h, s, v float64) (float64, float64, float64)) error {
	return MapPixels(f, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
		out := colorful.Hsv(fn(c.Hsv())).Clamped()
		return unitToChannel(out.R), unitToChannel(out.G), unitToChannel(out.B), a
	})
}

// unitToChannel converts a [0,1] component back to a byte with the same
// truncation rule as the other transforms.
func unitToChannel(v float64) uint8 {
	return sumToChannel(v * 255)
}
