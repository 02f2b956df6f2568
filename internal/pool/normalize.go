package pool

import (
	"fmt"

	"github.com/born-ml/featpool/internal/tensor"
)

// Canonicalize maps a raw tensor of rank 1-4 onto the canonical 4-axis
// view [batch, feature, extra1, extra2] without copying data.
//
// Rank/mode support:
//
//	unbatched: [feature]                               rank 1
//	           [feature][extra1]                       rank 2
//	           [feature][extra1][extra2]               rank 3
//	batched:   [batch][feature]                        rank 2
//	           [batch][feature][extra1]                rank 3
//	           [batch][feature][extra1][extra2]        rank 4
//
// The remaining combinations fail with ErrUnsupportedRank.
func Canonicalize(t *tensor.RawTensor, batchMode bool) (tensor.View, error) {
	v, ok := tensor.Upcast4(t, batchMode)
	if !ok {
		if batchMode {
			return tensor.View{}, fmt.Errorf("%w: batch_mode: input must be 2-4 dimensions, got %d",
				ErrUnsupportedRank, len(t.Shape()))
		}
		return tensor.View{}, fmt.Errorf("%w: no batch_mode: input must be 1-3 dimensions, got %d",
			ErrUnsupportedRank, len(t.Shape()))
	}
	return v, nil
}

// OutputSize returns the number of complete windows of the given width
// and stride over a feature axis of n elements.
func OutputSize(n, width, stride int) int {
	return (n-width)/stride + 1
}

// OutputShape derives the raw output shape for an input shape: the
// feature axis (raw axis 0 unbatched, raw axis 1 batched) shrinks to
// OutputSize, all other axes pass through unchanged.
func OutputShape(input tensor.Shape, batchMode bool, width, stride int) tensor.Shape {
	featureAxis := 0
	if batchMode {
		featureAxis = 1
	}

	out := input.Clone()
	out[featureAxis] = OutputSize(input[featureAxis], width, stride)
	return out
}

// ResizeForOutput sizes dst to hold the pooled result for src as the
// input tensor, preserving src's rank. If dst already has the derived
// shape its storage is left untouched.
func ResizeForOutput(dst, src *tensor.RawTensor, batchMode bool, width, stride int) error {
	shape := OutputShape(src.Shape(), batchMode, width, stride)
	if dst.Shape().Equal(shape) {
		return nil
	}
	return dst.Resize(shape)
}

// ResizeLike makes dst's raw shape identical to src's, preserving src's
// rank. Used to size the gradInput buffer from the input.
func ResizeLike(dst, src *tensor.RawTensor) error {
	if dst.Shape().Equal(src.Shape()) {
		return nil
	}
	return dst.Resize(src.Shape())
}
