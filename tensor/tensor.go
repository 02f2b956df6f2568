// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense tensors consumed
// by the featpool operations.
//
// The package defines:
//   - RawTensor: a dense row-major buffer with shape and stride metadata
//   - Shape, DataType: core type definitions
//   - View: the rank-4 canonical reinterpretation used by the pooling engine
//
// Example:
//
//	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
package tensor

import (
	"github.com/born-ml/featpool/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// RawTensor is the dense tensor representation: a row-major buffer plus
// shape, stride, and runtime type information.
type RawTensor = tensor.RawTensor

// View is a non-owning rank-4 canonical reinterpretation of a RawTensor.
// Views are produced by the pooling operations; most users never build
// one directly.
type View = tensor.View

// NewRaw creates a new zero-initialized tensor with the given shape and
// data type. Shapes must have rank 1-4 with all dimensions > 0.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// FromFloat32 creates a float32 tensor initialized from a slice.
// The slice length must match the number of elements of the shape.
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat32(data, shape)
}

// FromFloat64 creates a float64 tensor initialized from a slice.
// The slice length must match the number of elements of the shape.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	return tensor.FromFloat64(data, shape)
}
