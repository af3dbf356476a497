package filter

import (
	"math"

	"github.com/pkg/errors"
)

// BytesPerPixel is the stride of one RGBA pixel.
const BytesPerPixel = 4

// Pixel is a single RGBA sample.
type Pixel struct {
	R, G, B, A uint8
}

// Frame is a width/height-tagged RGBA byte buffer.
//
// Pix holds Height rows of Width pixels, each pixel four bytes in R,G,B,A
// order. The color values are not premultiplied by alpha.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a zeroed (transparent black) frame.
func NewFrame(width, height int) (*Frame, error) {
	n, err := frameLen(width, height)
	if err != nil {
		return nil, err
	}
	return &Frame{Width: width, Height: height, Pix: make([]byte, n)}, nil
}

// WrapFrame borrows pix as a frame without copying it.
// It fails with ErrInvalidDimensions unless len(pix) == width*height*4.
func WrapFrame(width, height int, pix []byte) (*Frame, error) {
	f := &Frame{Width: width, Height: height, Pix: pix}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the buffer length against the dimensions.
func (f *Frame) Validate() error {
	if f == nil {
		return errors.Wrap(ErrInvalidDimensions, "nil frame")
	}
	n, err := frameLen(f.Width, f.Height)
	if err != nil {
		return err
	}
	if len(f.Pix) != n {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d frame needs %d bytes, got %d",
			f.Width, f.Height, n, len(f.Pix))
	}
	return nil
}

// Empty reports whether the frame has no pixels.
func (f *Frame) Empty() bool {
	return f.Width == 0 || f.Height == 0
}

// Offset returns the byte offset of pixel (x, y).
func (f *Frame) Offset(x, y int) int {
	return (y*f.Width + x) * BytesPerPixel
}

// In reports whether (x, y) lies inside the frame.
func (f *Frame) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

// At returns the pixel at (x, y). The coordinates must be in bounds.
func (f *Frame) At(x, y int) Pixel {
	i := f.Offset(x, y)
	p := f.Pix[i : i+4 : i+4]
	return Pixel{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set writes the pixel at (x, y). The coordinates must be in bounds.
func (f *Frame) Set(x, y int, c Pixel) {
	i := f.Offset(x, y)
	p := f.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Width: f.Width, Height: f.Height, Pix: pix}
}

// frameLen returns width*height*4, rejecting negative sizes and overflow.
func frameLen(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, errors.Wrapf(ErrInvalidDimensions, "negative size %dx%d", width, height)
	}
	if width == 0 || height == 0 {
		return 0, nil
	}
	if uint64(width) > math.MaxInt/BytesPerPixel/uint64(height) {
		return 0, errors.Wrapf(ErrInvalidDimensions, "%dx%d frame is too large", width, height)
	}
	return width * height * BytesPerPixel, nil
}
