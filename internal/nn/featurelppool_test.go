package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/featpool/internal/backend/cpu"
	"github.com/born-ml/featpool/internal/pool"
	"github.com/born-ml/featpool/internal/tensor"
)

func TestFeatureLPPool_InvalidParams(t *testing.T) {
	_, err := NewFeatureLPPool(1, 1, 2, true, cpu.New())
	assert.ErrorIs(t, err, pool.ErrInvalidParameter)

	_, err = NewFeatureLPPool(2, 5, 2, true, cpu.New())
	assert.ErrorIs(t, err, pool.ErrInvalidParameter)

	_, err = NewFeatureLPPool(2, 1, 0, true, cpu.New())
	assert.ErrorIs(t, err, pool.ErrInvalidParameter)
}

func TestFeatureLPPool_ForwardBackward(t *testing.T) {
	layer, err := NewFeatureLPPool(2, 1, 2, true, cpu.New())
	require.NoError(t, err)

	input, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 4})
	require.NoError(t, err)

	output, err := layer.Forward(input)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, output.Shape())

	out := output.AsFloat32()
	in := input.AsFloat32()
	for b := 0; b < 2; b++ {
		for k := 0; k < 3; k++ {
			want := math.Hypot(float64(in[b*4+k]), float64(in[b*4+k+1]))
			assert.InDelta(t, want, float64(out[b*3+k]), 1e-6)
		}
	}

	gradOutput, err := tensor.FromFloat32([]float32{1, 1, 1, 1, 1, 1}, tensor.Shape{2, 3})
	require.NoError(t, err)

	gradInput, err := layer.Backward(input, gradOutput)
	require.NoError(t, err)
	assert.Equal(t, input.Shape(), gradInput.Shape())

	// Middle features belong to two windows each.
	gradIn := gradInput.AsFloat32()
	wantG1 := float64(in[1])/float64(out[0]) + float64(in[1])/float64(out[1])
	assert.InDelta(t, wantG1, float64(gradIn[1]), 1e-5)
}

func TestFeatureLPPool_BuffersReused(t *testing.T) {
	layer, err := NewFeatureLPPool(3, 1, 2, false, cpu.New())
	require.NoError(t, err)

	input, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{6})
	require.NoError(t, err)

	out1, err := layer.Forward(input)
	require.NoError(t, err)
	out2, err := layer.Forward(input)
	require.NoError(t, err)

	assert.Same(t, out1, out2)
	assert.Same(t, out1, layer.Output())
}

func TestFeatureLPPool_BackwardBeforeForward(t *testing.T) {
	layer, err := NewFeatureLPPool(2, 1, 2, false, cpu.New())
	require.NoError(t, err)

	input, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	gradOutput, err := tensor.FromFloat32([]float32{1, 1}, tensor.Shape{2})
	require.NoError(t, err)

	_, err = layer.Backward(input, gradOutput)
	assert.Error(t, err)
	assert.Nil(t, layer.GradInput())
}

func TestFeatureLPPool_OutputShape(t *testing.T) {
	layer, err := NewFeatureLPPool(4, 2, 2, true, cpu.New())
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{3, 4, 6}, layer.OutputShape(tensor.Shape{3, 10, 6}))
}

func TestFeatureLPPool_String(t *testing.T) {
	layer, err := NewFeatureLPPool(3, 2, 2.5, true, cpu.New())
	require.NoError(t, err)

	assert.Equal(t, "FeatureLPPool(width=3, stride=2, power=2.5, batch_mode=true)", layer.String())
}
