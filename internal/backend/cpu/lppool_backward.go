package cpu

import (
	"math"

	"github.com/born-ml/featpool/internal/parallel"
	"github.com/born-ml/featpool/internal/tensor"
)

// UpdateGradInput computes the backward gradient distribution. For each
// input cell [b,j,e1,e2] it sums, over every window k covering feature
// position j,
//
//	gradOutput[b,k,e1,e2] * sign(x) * |x|^(p-1) / output[b,k,e1,e2]^(p-1)
//
// where x is the input value. When stride < width the windows overlap
// and a single input position belongs to several windows; iterating over
// input cells and summing their contributing windows keeps every write
// private to one goroutine, so the accumulation needs no atomics.
func (cpu *CPUBackend) UpdateGradInput(gradOutput, input, output, gradInput tensor.View, width, stride int, power float64) bool {
	switch input.DType() {
	case tensor.Float32:
		lpPoolBackwardFloat32(gradOutput, input, output, gradInput, width, stride, power, cpu.cfg)
	case tensor.Float64:
		lpPoolBackwardFloat64(gradOutput, input, output, gradInput, width, stride, power, cpu.cfg)
	default:
		return false
	}
	return true
}

// windowRange returns the inclusive range [kMin, kMax] of window indices
// whose span [k*stride, k*stride+width) contains feature position j.
// kMin > kMax means no window covers j (possible near the upper edge
// when stride > 1).
func windowRange(j, width, stride, outFeatures int) (int, int) {
	kMin := 0
	if j-width+1 > 0 {
		kMin = (j - width + 1 + stride - 1) / stride
	}
	kMax := j / stride
	if kMax > outFeatures-1 {
		kMax = outFeatures - 1
	}
	return kMin, kMax
}

func lpPoolBackwardFloat32(gradOutput, input, output, gradInput tensor.View, width, stride int, power float64, cfg parallel.Config) {
	gradOut := gradOutput.Float32()
	in := input.Float32()
	out := output.Float32()
	gradIn := gradInput.Float32()

	batch := input.Size(0)
	inFeatures := input.Size(1)
	outFeatures := output.Size(1)
	extra1, extra2 := input.Size(2), input.Size(3)

	parallel.ForBatch(batch, inFeatures, func(b, j int) {
		kMin, kMax := windowRange(j, width, stride, outFeatures)
		for i := 0; i < extra1; i++ {
			for l := 0; l < extra2; l++ {
				x := float64(in[input.Offset(b, j, i, l)])
				acc := 0.0
				for k := kMin; k <= kMax; k++ {
					o := float64(out[output.Offset(b, k, i, l)])
					g := float64(gradOut[gradOutput.Offset(b, k, i, l)])
					acc += g * lpGrad(x, o, power)
				}
				gradIn[gradInput.Offset(b, j, i, l)] = float32(acc)
			}
		}
	}, cfg)
}

func lpPoolBackwardFloat64(gradOutput, input, output, gradInput tensor.View, width, stride int, power float64, cfg parallel.Config) {
	gradOut := gradOutput.Float64()
	in := input.Float64()
	out := output.Float64()
	gradIn := gradInput.Float64()

	batch := input.Size(0)
	inFeatures := input.Size(1)
	outFeatures := output.Size(1)
	extra1, extra2 := input.Size(2), input.Size(3)

	parallel.ForBatch(batch, inFeatures, func(b, j int) {
		kMin, kMax := windowRange(j, width, stride, outFeatures)
		for i := 0; i < extra1; i++ {
			for l := 0; l < extra2; l++ {
				x := in[input.Offset(b, j, i, l)]
				acc := 0.0
				for k := kMin; k <= kMax; k++ {
					o := out[output.Offset(b, k, i, l)]
					g := gradOut[gradOutput.Offset(b, k, i, l)]
					acc += g * lpGrad(x, o, power)
				}
				gradIn[gradInput.Offset(b, j, i, l)] = acc
			}
		}
	}, cfg)
}

// lpGrad is the derivative of the window's Lp-norm with respect to one
// window element x, given the window's norm value. A zero norm means an
// all-zero window; the gradient there is defined as 0 to avoid division
// by zero.
func lpGrad(x, norm, p float64) float64 {
	if norm == 0 {
		return 0
	}
	switch p {
	case 1:
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		default:
			return 0
		}
	case 2:
		return x / norm
	default:
		if x == 0 {
			return 0
		}
		return math.Copysign(math.Pow(math.Abs(x), p-1)/math.Pow(norm, p-1), x)
	}
}
