// Package tensor provides the dense tensor substrate for feature Lp pooling:
// shapes, raw storage, and zero-copy canonical views.
package tensor

// DataType represents runtime type information for tensors.
// Pooling is defined over floating-point elements only.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}
