// Package nn provides the layer-level wrapper around feature Lp pooling.
package nn

import (
	"fmt"

	"github.com/born-ml/featpool/internal/pool"
	"github.com/born-ml/featpool/internal/tensor"
)

// FeatureLPPool is a feature-dimension Lp-norm pooling layer.
//
// A sliding window of the configured width and stride moves along the
// feature axis; each window reduces to (sum |x|^p)^(1/p). The layer has
// no learnable parameters. It owns its output and gradInput buffers and
// resizes them in place across calls, so repeated Forward/Backward on
// same-shaped inputs allocate nothing.
//
// Input shapes (batch mode):    [batch, feature], [batch, feature, extra1],
// [batch, feature, extra1, extra2].
// Input shapes (no batch mode): [feature], [feature, extra1],
// [feature, extra1, extra2].
//
// Example:
//
//	layer, _ := nn.NewFeatureLPPool(2, 1, 2.0, true, cpu.New())
//	input, _ := tensor.FromFloat32(data, tensor.Shape{2, 4})
//	output, err := layer.Forward(input) // shape [2, 3]
type FeatureLPPool struct {
	params    pool.Params
	kernel    pool.Kernel
	output    *tensor.RawTensor
	gradInput *tensor.RawTensor
}

// NewFeatureLPPool creates a feature Lp pooling layer.
//
// Width must be in [2, 16], stride in [1, 4], and power > 0; out-of-range
// values fail with pool.ErrInvalidParameter. The kernel performs the
// actual reduction (use cpu.New() for the reference implementation).
func NewFeatureLPPool(width, stride int, power float64, batchMode bool, kernel pool.Kernel) (*FeatureLPPool, error) {
	p := pool.Params{Width: width, Stride: stride, Power: power, BatchMode: batchMode}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &FeatureLPPool{params: p, kernel: kernel}, nil
}

// Forward computes the pooled output for input, reusing the layer's
// output buffer. The returned tensor is owned by the layer and remains
// valid until the next Forward call.
func (m *FeatureLPPool) Forward(input *tensor.RawTensor) (*tensor.RawTensor, error) {
	if m.output == nil || m.output.DType() != input.DType() {
		out, err := tensor.NewRaw(tensor.Shape{1}, input.DType())
		if err != nil {
			return nil, err
		}
		m.output = out
	}
	if err := pool.UpdateOutput(m.kernel, input, m.output, m.params); err != nil {
		return nil, err
	}
	return m.output, nil
}

// Backward computes the gradient with respect to input, given the
// gradient flowing into the layer's output. It requires a preceding
// Forward call on the same input: the forward output participates in
// the gradient formula. The returned tensor is owned by the layer and
// remains valid until the next Backward call.
func (m *FeatureLPPool) Backward(input, gradOutput *tensor.RawTensor) (*tensor.RawTensor, error) {
	if m.output == nil {
		return nil, fmt.Errorf("featurelppool: Backward called before Forward")
	}
	if m.gradInput == nil || m.gradInput.DType() != input.DType() {
		g, err := tensor.NewRaw(tensor.Shape{1}, input.DType())
		if err != nil {
			return nil, err
		}
		m.gradInput = g
	}
	if err := pool.UpdateGradInput(m.kernel, gradOutput, input, m.output, m.gradInput, m.params); err != nil {
		return nil, err
	}
	return m.gradInput, nil
}

// Output returns the layer-owned output buffer from the last Forward
// call, or nil before the first call.
func (m *FeatureLPPool) Output() *tensor.RawTensor {
	return m.output
}

// GradInput returns the layer-owned gradient buffer from the last
// Backward call, or nil before the first call.
func (m *FeatureLPPool) GradInput() *tensor.RawTensor {
	return m.gradInput
}

// Params returns the layer's pooling parameters.
func (m *FeatureLPPool) Params() pool.Params {
	return m.params
}

// OutputShape derives the raw output shape for a supported input shape:
// the feature axis shrinks to the number of complete windows, all other
// axes pass through.
func (m *FeatureLPPool) OutputShape(input tensor.Shape) tensor.Shape {
	return pool.OutputShape(input, m.params.BatchMode, m.params.Width, m.params.Stride)
}

// String returns a string representation of the layer.
func (m *FeatureLPPool) String() string {
	return fmt.Sprintf("FeatureLPPool(width=%d, stride=%d, power=%g, batch_mode=%t)",
		m.params.Width, m.params.Stride, m.params.Power, m.params.BatchMode)
}
