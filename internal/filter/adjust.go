package filter

import "github.com/pkg/errors"

// contrastPole is the contrast value at which the contrast factor divides by zero.
const contrastPole = 259

// Brightness adds b*255 to the R, G and B channels of every pixel.
//
// b is typically in [-1,1]. It is not clamped: larger magnitudes saturate
// every channel to 0 or 255. Alpha is unchanged.
func Brightness(f *Frame, b float32) error {
	if err := checkFinite("brightness", b); err != nil {
		return err
	}
	delta := float32(b * 255)
	return mapRGB(f, func(v float32) uint8 {
		return toChannel(v + delta)
	})
}

// Contrast stretches or compresses the R, G and B channels around 128.
//
// The factor is 259*(c+255) / (255*(259-c)); each channel becomes
// factor*(in-128)+128. A contrast of 0 is the identity. c == 259 is rejected
// with ErrDegenerateParameter.
func Contrast(f *Frame, c float32) error {
	factor, err := ContrastFactor(c)
	if err != nil {
		return err
	}
	return mapRGB(f, func(v float32) uint8 {
		return toChannel(float32(factor*(v-128)) + 128)
	})
}

// ContrastFactor returns the multiplier used by Contrast.
func ContrastFactor(c float32) (float32, error) {
	if err := checkFinite("contrast", c); err != nil {
		return 0, err
	}
	if c == contrastPole {
		return 0, errors.Wrapf(ErrDegenerateParameter, "contrast %v divides by zero", c)
	}
	num := float32(contrastPole * (c + 255))
	den := float32(255 * (contrastPole - c))
	return num / den, nil
}

// Grayscale replaces R, G and B with the truncated luma
// 0.299R + 0.587G + 0.114B, computed exactly in integers. Alpha is unchanged.
// Applying it twice is the same as applying it once.
func Grayscale(f *Frame) error {
	return MapPixels(f, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		gray := uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
		return gray, gray, gray, a
	})
}
