package filter

// RemoveBackground is a naive luminance threshold mask.
//
// Each pixel's luminance is computed on channels normalized to [0,1]. Pixels
// with luminance strictly below threshold become fully transparent; all other
// pixels keep their alpha. R, G and B are never modified. threshold is
// compared directly to the normalized luminance, so only values in [0,1] are
// meaningful; no range validation is done.
func RemoveBackground(f *Frame, threshold float32) error {
	if err := checkFinite("threshold", threshold); err != nil {
		return err
	}
	return MapPixels(f, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		if Luminance(r, g, b) < threshold {
			a = 0
		}
		return r, g, b, a
	})
}

// Luminance returns 0.299r + 0.587g + 0.114b with each channel scaled to [0,1].
func Luminance(r, g, b uint8) float32 {
	return luma(float32(r)/255, float32(g)/255, float32(b)/255)
}
