// Package pool implements feature-dimension Lp-norm pooling: shape
// normalization of rank 1-4 tensors onto a canonical 4-axis view, and
// the forward/backward drivers that validate, resize, and dispatch to a
// compute kernel.
package pool

import "fmt"

// Allowed parameter ranges for one pooling call.
const (
	MinWidth  = 2
	MaxWidth  = 16
	MinStride = 1
	MaxStride = 4
)

// Params holds the immutable parameters of one forward or backward call.
type Params struct {
	Width     int     // sliding window extent along the feature axis
	Stride    int     // window step along the feature axis
	Power     float64 // Lp-norm exponent, > 0
	BatchMode bool    // leading raw axis is a batch axis
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if p.Width < MinWidth || p.Width > MaxWidth {
		return fmt.Errorf("%w: width: must be between %d -> %d, got %d",
			ErrInvalidParameter, MinWidth, MaxWidth, p.Width)
	}
	if p.Stride < MinStride || p.Stride > MaxStride {
		return fmt.Errorf("%w: stride: must be between %d -> %d, got %d",
			ErrInvalidParameter, MinStride, MaxStride, p.Stride)
	}
	if !(p.Power > 0) {
		return fmt.Errorf("%w: power: must be > 0, got %v", ErrInvalidParameter, p.Power)
	}
	return nil
}

// String returns a human-readable description of the parameters.
func (p Params) String() string {
	return fmt.Sprintf("Params(width=%d, stride=%d, power=%g, batch_mode=%t)",
		p.Width, p.Stride, p.Power, p.BatchMode)
}
