package filter

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDimensions reports a buffer whose length does not equal
	// Width*Height*4, or negative dimensions.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrDegenerateParameter reports a parameter that would write NaN or Inf
	// derived bytes: any non-finite value, or a contrast of exactly 259.
	ErrDegenerateParameter = errors.New("degenerate filter parameter")
)

// checkFinite rejects NaN and ±Inf.
func checkFinite(name string, v float32) error {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return errors.Wrapf(ErrDegenerateParameter, "%s must be finite, got %v", name, v)
	}
	return nil
}
