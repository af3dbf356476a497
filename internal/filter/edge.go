package filter

// EdgeMode defines how neighbors outside the image are sampled.
type EdgeMode int

const (
	// EdgeClamp reuses the nearest in-bounds pixel.
	EdgeClamp EdgeMode = iota
	// EdgeMirror reflects coordinates without repeating the edge pixel.
	EdgeMirror
	// EdgeWrap tiles the image.
	EdgeWrap
)

// String implements fmt.Stringer.
func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "clamp"
	case EdgeMirror:
		return "mirror"
	case EdgeWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// mapCoord maps i into [0, n) according to mode. n must be > 0.
func mapCoord(i, n int, mode EdgeMode) int {
	switch mode {
	case EdgeMirror:
		if n == 1 {
			return 0
		}
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			} else {
				i = 2*n - i - 1
			}
		}
		return i
	case EdgeWrap:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	default:
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
}
