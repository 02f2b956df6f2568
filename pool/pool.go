// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pool provides the public API for feature-dimension Lp-norm
// pooling: a sliding window of a given width and stride along the
// feature axis, reduced per window to (sum |x|^p)^(1/p), with the exact
// matching gradient.
//
// The one-shot entry points Forward and Backward allocate their results
// and run on the reference CPU kernel:
//
//	input, _ := tensor.FromFloat32(data, tensor.Shape{2, 4})
//	output, err := pool.Forward(input, pool.Params{Width: 2, Stride: 1, Power: 2, BatchMode: true})
//
// Callers that manage their own buffers or kernels use UpdateOutput and
// UpdateGradInput directly.
package pool

import (
	"github.com/born-ml/featpool/internal/backend/cpu"
	"github.com/born-ml/featpool/internal/pool"
	"github.com/born-ml/featpool/internal/tensor"
)

// Params holds the immutable parameters of one forward or backward call.
type Params = pool.Params

// Kernel is the computational contract of the pooling reduction; the
// reference CPU implementation is returned by NewCPUKernel.
type Kernel = pool.Kernel

// Allowed parameter ranges.
const (
	MinWidth  = pool.MinWidth
	MaxWidth  = pool.MaxWidth
	MinStride = pool.MinStride
	MaxStride = pool.MaxStride
)

// Error kinds, matched with errors.Is.
var (
	ErrInvalidParameter = pool.ErrInvalidParameter
	ErrUnsupportedRank  = pool.ErrUnsupportedRank
	ErrShapeMismatch    = pool.ErrShapeMismatch
)

// NewCPUKernel returns the reference CPU kernel.
func NewCPUKernel() Kernel {
	return cpu.New()
}

// OutputSize returns the number of complete windows of the given width
// and stride over a feature axis of n elements.
func OutputSize(n, width, stride int) int {
	return pool.OutputSize(n, width, stride)
}

// Forward validates parameters and input, allocates the output at the
// derived shape, and computes the pooled result on the CPU kernel.
func Forward(input *tensor.RawTensor, p Params) (*tensor.RawTensor, error) {
	output, err := tensor.NewRaw(tensor.Shape{1}, input.DType())
	if err != nil {
		return nil, err
	}
	if err := pool.UpdateOutput(cpu.New(), input, output, p); err != nil {
		return nil, err
	}
	return output, nil
}

// Backward validates the consistency of gradOutput, input, and output
// (output must be the Forward result for input under the same
// parameters), allocates gradInput at input's raw shape, and computes
// the gradient on the CPU kernel.
func Backward(gradOutput, input, output *tensor.RawTensor, p Params) (*tensor.RawTensor, error) {
	gradInput, err := tensor.NewRaw(tensor.Shape{1}, input.DType())
	if err != nil {
		return nil, err
	}
	if err := pool.UpdateGradInput(cpu.New(), gradOutput, input, output, gradInput, p); err != nil {
		return nil, err
	}
	return gradInput, nil
}

// UpdateOutput computes the pooled result for input into the
// caller-provided output buffer, resizing it to the derived shape.
func UpdateOutput(k Kernel, input, output *tensor.RawTensor, p Params) error {
	return pool.UpdateOutput(k, input, output, p)
}

// UpdateGradInput computes the gradient with respect to input into the
// caller-provided gradInput buffer, resizing it to input's raw shape.
func UpdateGradInput(k Kernel, gradOutput, input, output, gradInput *tensor.RawTensor, p Params) error {
	return pool.UpdateGradInput(k, gradOutput, input, output, gradInput, p)
}
