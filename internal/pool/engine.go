package pool

import (
	"fmt"

	"github.com/born-ml/featpool/internal/tensor"
)

// Kernel is the computational contract of the pooling reduction. The
// engine hands it fully validated canonical views; how the kernel
// parallelizes the work is its own concern. Implementations report
// false when they have no specialization for the views' element type.
//
// The reference implementation lives in internal/backend/cpu.
type Kernel interface {
	// Name identifies the kernel in diagnostics.
	Name() string

	// UpdateOutput computes, for every (b, k, e1, e2) output cell,
	// the Lp-norm of the input window [k*stride, k*stride+width) along
	// the feature axis.
	UpdateOutput(input, output tensor.View, width, stride int, power float64) bool

	// UpdateGradInput computes the gradient of UpdateOutput with
	// respect to the input, writing into gradInput. Every gradInput
	// cell receives the summed contribution of all windows covering it.
	UpdateGradInput(gradOutput, input, output, gradInput tensor.View, width, stride int, power float64) bool
}

// UpdateOutput validates parameters and shapes, canonicalizes the input,
// resizes output to the derived shape, and runs the forward reduction.
//
// On failure nothing has been computed; output may have been resized but
// holds no defined values.
func UpdateOutput(k Kernel, input, output *tensor.RawTensor, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	in, err := Canonicalize(input, p.BatchMode)
	if err != nil {
		return err
	}
	if in.Size(1) < p.Width {
		return fmt.Errorf("%w: input: feature dimension must be >= width (%d < %d)",
			ErrShapeMismatch, in.Size(1), p.Width)
	}
	if output.DType() != input.DType() {
		return fmt.Errorf("%w: output dtype %s does not match input dtype %s",
			ErrShapeMismatch, output.DType(), input.DType())
	}

	if err := ResizeForOutput(output, input, p.BatchMode, p.Width, p.Stride); err != nil {
		return err
	}
	out, err := Canonicalize(output, p.BatchMode)
	if err != nil {
		return err
	}

	if !k.UpdateOutput(in, out, p.Width, p.Stride, p.Power) {
		return fmt.Errorf("kernel %s has no specialization for dtype %s", k.Name(), input.DType())
	}
	return nil
}

// UpdateGradInput validates the consistency of gradOutput, input, and
// output, resizes gradInput to input's raw shape, and runs the backward
// gradient accumulation.
//
// On failure nothing has been computed; gradInput may have been resized
// but holds no defined values.
func UpdateGradInput(k Kernel, gradOutput, input, output, gradInput *tensor.RawTensor, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	in, err := Canonicalize(input, p.BatchMode)
	if err != nil {
		return err
	}
	if in.Size(1) < p.Width {
		return fmt.Errorf("%w: input: feature dimension must be >= width (%d < %d)",
			ErrShapeMismatch, in.Size(1), p.Width)
	}

	gradOut, gradOutOK := tensor.Upcast4(gradOutput, p.BatchMode)
	out, outOK := tensor.Upcast4(output, p.BatchMode)
	if !gradOutOK || !outOK {
		return fmt.Errorf("%w: output and/or gradOutput are improperly sized", ErrShapeMismatch)
	}
	if !out.SameSizeAndStride(gradOut) {
		return fmt.Errorf("%w: output and gradOutput sizes do not match (%v vs %v)",
			ErrShapeMismatch, output.Shape(), gradOutput.Shape())
	}
	if OutputSize(in.Size(1), p.Width, p.Stride) != out.Size(1) {
		return fmt.Errorf("%w: input and output sizes do not match with respect to width and stride",
			ErrShapeMismatch)
	}
	for _, t := range []*tensor.RawTensor{gradOutput, output, gradInput} {
		if t.DType() != input.DType() {
			return fmt.Errorf("%w: all tensors must share dtype %s", ErrShapeMismatch, input.DType())
		}
	}

	if err := ResizeLike(gradInput, input); err != nil {
		return err
	}
	gradIn, err := Canonicalize(gradInput, p.BatchMode)
	if err != nil {
		return err
	}
	gradInput.Zero()

	if !k.UpdateGradInput(gradOut, in, out, gradIn, p.Width, p.Stride, p.Power) {
		return fmt.Errorf("kernel %s has no specialization for dtype %s", k.Name(), input.DType())
	}
	return nil
}
