package filter

import (
	"fmt"

	"github.com/pkg/errors"
)

// Committer is the host capability that publishes a finished frame, e.g. by
// re-uploading its pixels to a display surface or encoding it for a client.
type Committer interface {
	Commit(f *Frame) error
}

// CommitFunc adapts a function to Committer.
type CommitFunc func(f *Frame) error

// Commit implements Committer.
func (fn CommitFunc) Commit(f *Frame) error {
	return fn(f)
}

// Op names an operation of the Processor.
type Op string

const (
	OpBrightness       Op = "brightness"
	OpContrast         Op = "contrast"
	OpGrayscale        Op = "grayscale"
	OpBlur             Op = "blur"
	OpRemoveBackground Op = "remove_background"
	OpSaturation       Op = "saturation"
	OpHue              Op = "hue"
)

// Ops lists every operation in a stable order.
var Ops = []Op{OpBrightness, OpContrast, OpGrayscale, OpBlur, OpRemoveBackground, OpSaturation, OpHue}

// Processor runs one filter per call on a caller-owned frame and hands the
// result to its Committer. It holds configuration only; calls share no state.
type Processor struct {
	// Options configures GaussianBlur.
	Options Options

	// Committer, if non-nil, is called once after each successful operation.
	// It is never called mid-operation or after a failure.
	Committer Committer
}

// NewProcessor returns a Processor that commits through c.
func NewProcessor(opts Options, c Committer) *Processor {
	return &Processor{Options: opts, Committer: c}
}

// ApplyBrightness adds brightness*255 to RGB in place.
func (p *Processor) ApplyBrightness(f *Frame, brightness float32) error {
	return p.run(f, func() error { return Brightness(f, brightness) })
}

// ApplyContrast adjusts RGB contrast in place. contrast must not be 259.
func (p *Processor) ApplyContrast(f *Frame, contrast float32) error {
	return p.run(f, func() error { return Contrast(f, contrast) })
}

// ApplyGrayscale desaturates RGB in place.
func (p *Processor) ApplyGrayscale(f *Frame) error {
	return p.run(f, func() error { return Grayscale(f) })
}

// GaussianBlur blurs RGBA in place through a scratch buffer.
func (p *Processor) GaussianBlur(f *Frame, radius float32) error {
	return p.run(f, func() error { return GaussianBlurWith(f, radius, p.Options) })
}

// RemoveBackground clears alpha where luminance is below threshold.
func (p *Processor) RemoveBackground(f *Frame, threshold float32) error {
	return p.run(f, func() error { return RemoveBackground(f, threshold) })
}

// ApplySaturation scales HSV saturation by 1+amount in place.
func (p *Processor) ApplySaturation(f *Frame, amount float32) error {
	return p.run(f, func() error { return Saturation(f, amount) })
}

// ApplyHue rotates HSV hue by degrees in place.
func (p *Processor) ApplyHue(f *Frame, degrees float32) error {
	return p.run(f, func() error { return HueRotate(f, degrees) })
}

// Apply dispatches op with value as its single parameter. OpGrayscale
// ignores value.
func (p *Processor) Apply(f *Frame, op Op, value float32) error {
	switch op {
	case OpBrightness:
		return p.ApplyBrightness(f, value)
	case OpContrast:
		return p.ApplyContrast(f, value)
	case OpGrayscale:
		return p.ApplyGrayscale(f)
	case OpBlur:
		return p.GaussianBlur(f, value)
	case OpRemoveBackground:
		return p.RemoveBackground(f, value)
	case OpSaturation:
		return p.ApplySaturation(f, value)
	case OpHue:
		return p.ApplyHue(f, value)
	default:
		return fmt.Errorf("unknown filter operation %q", op)
	}
}

func (p *Processor) run(f *Frame, op func() error) error {
	if err := op(); err != nil {
		return err
	}
	if p.Committer == nil {
		return nil
	}
	if err := p.Committer.Commit(f); err != nil {
		return errors.Wrap(err, "commit frame")
	}
	return nil
}
