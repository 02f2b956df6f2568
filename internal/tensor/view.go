package tensor

// NumViewAxes is the fixed rank of a canonical view.
const NumViewAxes = 4

// View is a non-owning rank-4 reinterpretation of a RawTensor:
// axis 0 = batch, axis 1 = feature, axes 2-3 = extra dimensions.
// Axes absent from the raw tensor appear with size 1 and stride 0.
//
// A View never copies or reorders data; it indexes the raw tensor's
// storage through its own (size, stride) pairs. The raw tensor must
// outlive the view.
type View struct {
	raw    *RawTensor
	size   [NumViewAxes]int
	stride [NumViewAxes]int
}

// Upcast4 builds the canonical rank-4 view of a raw tensor of rank 1-4.
//
// Unbatched: the first raw axis is the feature axis, remaining raw axes
// map to the extra axes in order, and a synthetic leading batch axis of
// size 1 is inserted. Valid for rank 1-3.
//
// Batched: the first raw axis is batch, the second is feature, and
// synthetic trailing extra axes of size 1 are inserted when absent.
// Valid for rank 2-4.
//
// Returns ok=false for the combinations that cannot canonicalize
// (rank 1 batched, rank 4 unbatched).
func Upcast4(r *RawTensor, batchMode bool) (View, bool) {
	v := View{raw: r}
	for i := range v.size {
		v.size[i] = 1
	}

	rank := len(r.shape)
	axis := 1 // feature axis
	if batchMode {
		if rank < 2 {
			return View{}, false
		}
		axis = 0
	} else if rank > 3 {
		return View{}, false
	}

	for i := 0; i < rank; i++ {
		v.size[axis+i] = r.shape[i]
		v.stride[axis+i] = r.stride[i]
	}
	return v, true
}

// Size returns the extent of the given canonical axis.
func (v View) Size(axis int) int {
	return v.size[axis]
}

// Stride returns the element stride of the given canonical axis.
func (v View) Stride(axis int) int {
	return v.stride[axis]
}

// DType returns the element type of the underlying storage.
func (v View) DType() DataType {
	return v.raw.dtype
}

// SameSizeAndStride reports whether two views have identical size and
// stride structure on every canonical axis.
func (v View) SameSizeAndStride(other View) bool {
	for i := 0; i < NumViewAxes; i++ {
		if v.size[i] != other.size[i] || v.stride[i] != other.stride[i] {
			return false
		}
	}
	return true
}

// Offset returns the flat element offset of [b, f, e1, e2].
func (v View) Offset(b, f, e1, e2 int) int {
	return b*v.stride[0] + f*v.stride[1] + e1*v.stride[2] + e2*v.stride[3]
}

// Float32 returns the underlying storage as []float32.
func (v View) Float32() []float32 {
	return v.raw.AsFloat32()
}

// Float64 returns the underlying storage as []float64.
func (v View) Float64() []float64 {
	return v.raw.AsFloat64()
}
