package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alphas returns the alpha channel of every pixel.
func alphas(f *Frame) []byte {
	out := make([]byte, 0, len(f.Pix)/4)
	for i := 3; i < len(f.Pix); i += 4 {
		out = append(out, f.Pix[i])
	}
	return out
}

// rgb returns the color channels of every pixel.
func rgb(f *Frame) []byte {
	out := make([]byte, 0, len(f.Pix)/4*3)
	for i := 0; i < len(f.Pix); i += 4 {
		out = append(out, f.Pix[i:i+3]...)
	}
	return out
}

func TestBrightness_ZeroIsIdentity(t *testing.T) {
	f := newGradientFrame(t, 17, 9)
	want := f.Clone()

	require.NoError(t, Brightness(f, 0))
	assert.Equal(t, want.Pix, f.Pix)
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name string
		in   Pixel
		b    float32
		want Pixel
	}{
		{"brighten", Pixel{100, 150, 200, 77}, 0.2, Pixel{151, 201, 251, 77}},
		{"darken", Pixel{100, 150, 200, 77}, -0.2, Pixel{49, 99, 149, 77}},
		{"saturate high", Pixel{100, 150, 200, 77}, 1, Pixel{255, 255, 255, 77}},
		{"saturate low", Pixel{100, 150, 200, 77}, -1, Pixel{0, 0, 0, 77}},
		{"out of range", Pixel{100, 150, 200, 77}, 40, Pixel{255, 255, 255, 77}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFilledFrame(t, 2, 2, tt.in)
			require.NoError(t, Brightness(f, tt.b))
			got := f.At(1, 1)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBrightness_Truncates(t *testing.T) {
	// 10 + 0.5*255 = 137.5 truncates to 137.
	f := newFilledFrame(t, 1, 1, Pixel{10, 10, 10, 255})
	require.NoError(t, Brightness(f, 0.5))
	assert.Equal(t, Pixel{137, 137, 137, 255}, f.At(0, 0))
}

func TestBrightness_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		f := newFilledFrame(t, 2, 2, Pixel{1, 2, 3, 4})
		err := Brightness(f, float32(v))
		assert.ErrorIs(t, err, ErrDegenerateParameter)
		assert.Equal(t, Pixel{1, 2, 3, 4}, f.At(0, 0))
	}
}

func TestContrast_ZeroIsIdentity(t *testing.T) {
	factor, err := ContrastFactor(0)
	require.NoError(t, err)
	assert.Equal(t, float32(1), factor)

	f := newGradientFrame(t, 16, 16)
	want := f.Clone()
	require.NoError(t, Contrast(f, 0))
	assert.Equal(t, want.Pix, f.Pix)
}

func TestContrast(t *testing.T) {
	f := newFilledFrame(t, 1, 3, Pixel{0, 0, 0, 9})
	f.Set(0, 0, Pixel{100, 128, 200, 9})
	f.Set(0, 1, Pixel{0, 255, 64, 9})

	require.NoError(t, Contrast(f, 128))

	factor, err := ContrastFactor(128)
	require.NoError(t, err)
	assert.Greater(t, factor, float32(1))

	got := f.At(0, 0)
	assert.Less(t, got.R, uint8(100), "values below 128 move down")
	assert.Equal(t, uint8(128), got.G, "128 is the fixed point")
	assert.Equal(t, uint8(255), got.B)
	assert.Equal(t, uint8(9), got.A)

	got = f.At(0, 1)
	assert.Equal(t, Pixel{0, 255, 0, 9}, got)
}

func TestContrast_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		c    float32
	}{
		{"pole", 259},
		{"nan", float32(math.NaN())},
		{"inf", float32(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGradientFrame(t, 4, 4)
			want := f.Clone()

			err := Contrast(f, tt.c)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDegenerateParameter)
			assert.Equal(t, want.Pix, f.Pix, "buffer must not be written")
		})
	}
}

func TestGrayscale_KnownPixels(t *testing.T) {
	pix := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
		255, 255, 255, 255,
	}
	f, err := WrapFrame(2, 2, pix)
	require.NoError(t, err)

	require.NoError(t, Grayscale(f))

	assert.Equal(t, []byte{
		76, 76, 76, 255,
		149, 149, 149, 255,
		29, 29, 29, 255,
		255, 255, 255, 255,
	}, pix)
}

func TestGrayscale_NearIntegerLuma(t *testing.T) {
	// Each weighted sum is k + 0.999 exactly and must truncate to k.
	tests := []struct {
		in   Pixel
		want uint8
	}{
		{Pixel{2, 227, 168, 255}, 152},
		{Pixel{0, 5, 176, 9}, 22},
		{Pixel{0, 13, 12, 255}, 8},
		{Pixel{128, 25, 18, 128}, 54},
		{Pixel{255, 252, 95, 255}, 234},
	}
	for _, tt := range tests {
		f := newFilledFrame(t, 1, 1, tt.in)
		require.NoError(t, Grayscale(f))
		assert.Equal(t, Pixel{tt.want, tt.want, tt.want, tt.in.A}, f.At(0, 0), "gray of %v", tt.in)
	}
}

func TestGrayscale_TruncatesExactly(t *testing.T) {
	f, err := NewFrame(256, 1)
	require.NoError(t, err)
	for step := 0; step < 64; step++ {
		for x := 0; x < 256; x++ {
			f.Set(x, 0, Pixel{uint8(x), uint8(x*31 + step*7), uint8(x*97 + step*53), 255})
		}
		in := f.Clone()
		require.NoError(t, Grayscale(f))
		for x := 0; x < 256; x++ {
			p := in.At(x, 0)
			thousandths := 299*int(p.R) + 587*int(p.G) + 114*int(p.B)
			gray := int(f.At(x, 0).R)
			require.True(t, 1000*gray <= thousandths && thousandths < 1000*(gray+1),
				"gray of %v is %d", p, gray)
		}
	}
}

func TestGrayscale_Idempotent(t *testing.T) {
	f := newGradientFrame(t, 32, 24)
	require.NoError(t, Grayscale(f))
	once := f.Clone()

	require.NoError(t, Grayscale(f))
	assert.Equal(t, once.Pix, f.Pix)
}

func TestGrayscale_NeutralUnchanged(t *testing.T) {
	for v := 0; v < 256; v++ {
		f := newFilledFrame(t, 1, 1, Pixel{uint8(v), uint8(v), uint8(v), 200})
		require.NoError(t, Grayscale(f))
		require.Equal(t, Pixel{uint8(v), uint8(v), uint8(v), 200}, f.At(0, 0), "gray %d", v)
	}
}

func TestTransforms_InvalidFrame(t *testing.T) {
	bad := &Frame{Width: 3, Height: 3, Pix: make([]byte, 10)}

	assert.ErrorIs(t, Brightness(bad, 0.1), ErrInvalidDimensions)
	assert.ErrorIs(t, Contrast(bad, 10), ErrInvalidDimensions)
	assert.ErrorIs(t, Grayscale(bad), ErrInvalidDimensions)
	assert.ErrorIs(t, RemoveBackground(bad, 0.5), ErrInvalidDimensions)
	assert.ErrorIs(t, Saturation(bad, 0.5), ErrInvalidDimensions)
	assert.ErrorIs(t, HueRotate(bad, 30), ErrInvalidDimensions)
}

func TestTransforms_EmptyFrame(t *testing.T) {
	f, err := NewFrame(0, 10)
	require.NoError(t, err)
	assert.True(t, f.Empty())

	assert.NoError(t, Brightness(f, 0.1))
	assert.NoError(t, Contrast(f, 10))
	assert.NoError(t, Grayscale(f))
	assert.NoError(t, RemoveBackground(f, 0.5))
}

func TestMapPixels(t *testing.T) {
	f := newFilledFrame(t, 3, 2, Pixel{1, 2, 3, 4})
	calls := 0
	err := MapPixels(f, func(r, g, b, a uint8) (uint8, uint8, uint8, uint8) {
		calls++
		return a, b, g, r
	})
	require.NoError(t, err)
	assert.Equal(t, 6, calls)
	assert.Equal(t, Pixel{4, 3, 2, 1}, f.At(2, 1))
}

func TestToChannel(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{0.99, 0},
		{127.9, 127},
		{254.999, 254},
		{255, 255},
		{1e9, 255},
		{float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toChannel(tt.in), "toChannel(%v)", tt.in)
	}
}

func TestSumToChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-1e-12, 0},
		{math.NaN(), 0},
		{254.99999999999997, 255},
		{254.999, 254},
		{151.999, 151},
		{76.99999999999999, 77},
		{300, 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sumToChannel(tt.in), "sumToChannel(%v)", tt.in)
	}
}
