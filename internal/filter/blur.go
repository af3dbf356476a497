package filter

import (
	"runtime"
	"sync"
)

// Options configures GaussianBlurWith.
type Options struct {
	// Workers is the number of goroutines per pass. Values <= 1 run both
	// passes on the calling goroutine. A negative value uses GOMAXPROCS.
	Workers int

	// Edge selects the border policy. The zero value is EdgeClamp.
	Edge EdgeMode
}

// minBand is the smallest number of rows (or columns) given to one worker.
const minBand = 16

// workersFor returns the number of bands to split n lines into.
func (o Options) workersFor(n int) int {
	w := o.Workers
	if w < 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w <= 1 || n < 2*minBand {
		return 1
	}
	if limit := n / minBand; w > limit {
		w = limit
	}
	return w
}

// GaussianBlur blurs f in place with a clamp-to-edge separable Gaussian.
// It is GaussianBlurWith using the zero Options.
func GaussianBlur(f *Frame, radius float32) error {
	return GaussianBlurWith(f, radius, Options{})
}

// GaussianBlurWith blurs f in place.
//
// The horizontal pass reads only f and writes a scratch buffer; the vertical
// pass starts after every horizontal band has finished, reads only the scratch
// buffer and writes f. All four channels are convolved; colors are not
// premultiplied by alpha. Each pass truncates its weighted sums to bytes.
//
// A radius below 1 is the identity. A zero-area frame is a no-op.
func GaussianBlurWith(f *Frame, radius float32, opt Options) error {
	if err := f.Validate(); err != nil {
		return err
	}
	e, err := defaultKernelCache.get(radius)
	if err != nil {
		return err
	}
	k := e.weights
	if f.Empty() || len(k) == 1 {
		return nil
	}

	// Owned by this call; nothing survives it.
	scratch := make([]byte, len(f.Pix))

	rowWorkers := opt.workersFor(f.Height)
	colWorkers := opt.workersFor(f.Width)
	Logger().Debug("gaussian blur",
		"width", f.Width, "height", f.Height,
		"radius", radius, "taps", len(k),
		"edge", opt.Edge.String(),
		"row_workers", rowWorkers, "col_workers", colWorkers)

	inBands(f.Height, rowWorkers, func(y0, y1 int) {
		convolveRows(scratch, f.Pix, f.Width, y0, y1, k, opt.Edge)
	})
	inBands(f.Width, colWorkers, func(x0, x1 int) {
		convolveColumns(f.Pix, scratch, f.Width, f.Height, x0, x1, k, opt.Edge)
	})
	return nil
}

// inBands calls fn over [0,n) split into workers contiguous bands and
// returns once every band is done.
func inBands(n, workers int, fn func(lo, hi int)) {
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// convolveRows writes rows [y0,y1) of dst from the horizontal convolution of src.
func convolveRows(dst, src []byte, width, y0, y1 int, k []float64, edge EdgeMode) {
	half := len(k) / 2
	for y := y0; y < y1; y++ {
		row := y * width * BytesPerPixel
		for x := 0; x < width; x++ {
			var r, g, b, a float64
			for t, w := range k {
				i := row + mapCoord(x+t-half, width, edge)*BytesPerPixel
				p := src[i : i+4 : i+4]
				// Explicit conversions keep each product rounded on its own.
				r += float64(w * float64(p[0]))
				g += float64(w * float64(p[1]))
				b += float64(w * float64(p[2]))
				a += float64(w * float64(p[3]))
			}
			o := row + x*BytesPerPixel
			q := dst[o : o+4 : o+4]
			q[0] = sumToChannel(r)
			q[1] = sumToChannel(g)
			q[2] = sumToChannel(b)
			q[3] = sumToChannel(a)
		}
	}
}

// convolveColumns writes columns [x0,x1) of dst from the vertical convolution of src.
func convolveColumns(dst, src []byte, width, height, x0, x1 int, k []float64, edge EdgeMode) {
	half := len(k) / 2
	stride := width * BytesPerPixel
	for x := x0; x < x1; x++ {
		col := x * BytesPerPixel
		for y := 0; y < height; y++ {
			var r, g, b, a float64
			for t, w := range k {
				i := mapCoord(y+t-half, height, edge)*stride + col
				p := src[i : i+4 : i+4]
				r += float64(w * float64(p[0]))
				g += float64(w * float64(p[1]))
				b += float64(w * float64(p[2]))
				a += float64(w * float64(p[3]))
			}
			o := y*stride + col
			q := dst[o : o+4 : o+4]
			q[0] = sumToChannel(r)
			q[1] = sumToChannel(g)
			q[2] = sumToChannel(b)
			q[3] = sumToChannel(a)
		}
	}
}
