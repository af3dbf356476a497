package filter

// PixelFunc maps one RGBA pixel to its replacement.
type PixelFunc func(r, g, b, a uint8) (uint8, uint8, uint8, uint8)

// truncEpsilon absorbs float64 rounding in sums whose weights total one.
// It is far below the smallest fractional part an exact sum of byte
// values and float64 weights can produce.
const truncEpsilon = 1e-9

// MapPixels applies fn to every pixel of f in place.
//
// The buffer is validated once up front; an empty frame is a no-op.
func MapPixels(f *Frame, fn PixelFunc) error {
	if err := f.Validate(); err != nil {
		return err
	}
	pix := f.Pix
	for i := 0; i < len(pix); i += BytesPerPixel {
		p := pix[i : i+4 : i+4]
		p[0], p[1], p[2], p[3] = fn(p[0], p[1], p[2], p[3])
	}
	return nil
}

// mapRGB applies fn to the R, G and B channels of every pixel, leaving alpha.
func mapRGB(f *Frame, fn func(v float32) uint8) error {
	return MapPixels(f, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		return fn(float32(r)), fn(float32(g)), fn(float32(b)), a
	})
}

// toChannel clamps v to [0,255] and truncates toward zero. NaN maps to 0.
func toChannel(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// sumToChannel clamps and truncates a float64 weighted sum whose weights
// total one. NaN maps to 0.
func sumToChannel(v float64) uint8 {
	v += truncEpsilon
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// luma returns 0.299r + 0.587g + 0.114b in float32, products rounded
// individually so the result does not depend on FMA fusion.
func luma(r, g, b float32) float32 {
	return float32(0.299*r) + float32(0.587*g) + float32(0.114*b)
}
