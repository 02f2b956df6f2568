package tensor

import (
	"fmt"
	"unsafe"
)

// RawTensor is the low-level tensor representation: a dense row-major
// buffer plus shape, stride, and runtime type information.
//
// The buffer is owned by the RawTensor; views produced from it (see View)
// reference the same storage without copying.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zero-initialized.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// FromFloat32 creates a float32 RawTensor initialized from a slice.
// The slice length must match the number of elements of the shape;
// the data is copied.
func FromFloat32(data []float32, shape Shape) (*RawTensor, error) {
	r, err := NewRaw(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(data) != r.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, r.NumElements())
	}
	copy(r.AsFloat32(), data)
	return r, nil
}

// FromFloat64 creates a float64 RawTensor initialized from a slice.
// The slice length must match the number of elements of the shape;
// the data is copied.
func FromFloat64(data []float64, shape Shape) (*RawTensor, error) {
	r, err := NewRaw(shape, Float64)
	if err != nil {
		return nil, err
	}
	if len(data) != r.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, r.NumElements())
	}
	copy(r.AsFloat64(), data)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&r.data[0])), r.NumElements())
}

// Resize changes the tensor's raw shape in place.
//
// When the element count is unchanged this is a pure reinterpretation of
// the existing storage. Otherwise the buffer is reallocated; old contents
// are discarded and the new buffer is zero-initialized.
func (r *RawTensor) Resize(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("invalid shape: %w", err)
	}

	byteSize := shape.NumElements() * r.dtype.Size()
	if byteSize != len(r.data) {
		r.data = make([]byte, byteSize)
	}
	r.shape = shape.Clone()
	r.stride = shape.ComputeStrides()
	return nil
}

// Zero clears the buffer to all zeros.
func (r *RawTensor) Zero() {
	clear(r.data)
}
