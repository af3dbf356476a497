package filter

import (
	"math"
	"sync"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// MaxRadius bounds the blur radius so a kernel allocation stays reasonable.
const MaxRadius = 1 << 16

// Kernel is an odd-length, normalized 1-D convolution kernel centered at
// index Radius().
type Kernel []float32

// Radius returns the number of taps on each side of the center.
func (k Kernel) Radius() int {
	return len(k) / 2
}

// Sum returns the sum of all weights.
func (k Kernel) Sum() float32 {
	var s float32
	for _, w := range k {
		s += w
	}
	return s
}

// GaussianKernel builds a normalized 1-D Gaussian kernel for radius.
//
// The kernel has 2*floor(radius)+1 taps with sigma = radius/3; tap i sits at
// offset i-floor(radius) and weighs exp(-x²/(2σ²)) before normalization.
//
// A radius <= 0, or any radius below 1, yields the single tap [1] (no blur).
// Non-finite radii and radii above MaxRadius fail with ErrDegenerateParameter.
func GaussianKernel(radius float32) (Kernel, error) {
	w, err := gaussianWeights(radius)
	if err != nil {
		return nil, err
	}
	return toKernel(w), nil
}

// gaussianWeights computes the kernel in float64. Convolution uses these
// weights; Kernel is their float32 rounding.
func gaussianWeights(radius float32) ([]float64, error) {
	if err := checkFinite("radius", radius); err != nil {
		return nil, err
	}
	if radius > MaxRadius {
		return nil, errors.Wrapf(ErrDegenerateParameter, "radius %v exceeds %d", radius, MaxRadius)
	}
	if radius <= 0 {
		return []float64{1}, nil
	}

	half := int(math32.Floor(radius))
	if half == 0 {
		return []float64{1}, nil
	}
	sigma := float64(radius) / 3
	twoSigmaSq := 2 * sigma * sigma

	w := make([]float64, 2*half+1)
	var sum float64
	for i := range w {
		x := float64(i - half)
		w[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w, nil
}

func toKernel(w []float64) Kernel {
	k := make(Kernel, len(w))
	for i, v := range w {
		k[i] = float32(v)
	}
	return k
}

// kernelEntry holds a kernel in both precisions.
type kernelEntry struct {
	kernel  Kernel
	weights []float64
}

// kernelCache memoizes kernels by the exact bit pattern of the radius.
// Entries are immutable once stored.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[uint32]kernelEntry
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[uint32]kernelEntry),
		maxLen: maxLen,
	}
}

func (c *kernelCache) get(radius float32) (kernelEntry, error) {
	key := math.Float32bits(radius)

	c.mu.RLock()
	if e, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	w, err := gaussianWeights(radius)
	if err != nil {
		return kernelEntry{}, err
	}
	e := kernelEntry{kernel: toKernel(w), weights: w}

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Drop half the entries; map order makes the choice arbitrary.
		n := 0
		for old := range c.cache {
			delete(c.cache, old)
			n++
			if n >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = e
	c.mu.Unlock()

	return e, nil
}

// CachedGaussianKernel is GaussianKernel backed by a small process-wide cache.
// The returned kernel is shared and must not be modified.
func CachedGaussianKernel(radius float32) (Kernel, error) {
	e, err := defaultKernelCache.get(radius)
	if err != nil {
		return nil, err
	}
	return e.kernel, nil
}
