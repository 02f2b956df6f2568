package cpu

import (
	"math"

	"github.com/born-ml/featpool/internal/parallel"
	"github.com/born-ml/featpool/internal/tensor"
)

// UpdateOutput computes the forward Lp-norm pooling reduction:
//
//	output[b,k,e1,e2] = (sum_{t=0..width-1} |input[b,k*stride+t,e1,e2]|^p)^(1/p)
//
// Every output cell is independent, so the iteration space is split
// across goroutines with no shared mutable state. The within-window
// reduction runs in ascending t order for reproducibility.
func (cpu *CPUBackend) UpdateOutput(input, output tensor.View, width, stride int, power float64) bool {
	switch input.DType() {
	case tensor.Float32:
		lpPoolForwardFloat32(input, output, width, stride, power, cpu.cfg)
	case tensor.Float64:
		lpPoolForwardFloat64(input, output, width, stride, power, cpu.cfg)
	default:
		return false
	}
	return true
}

func lpPoolForwardFloat32(input, output tensor.View, width, stride int, power float64, cfg parallel.Config) {
	in := input.Float32()
	out := output.Float32()

	batch := output.Size(0)
	outFeatures := output.Size(1)
	extra1, extra2 := output.Size(2), output.Size(3)

	parallel.ForBatch(batch, outFeatures, func(b, k int) {
		inBase := input.Offset(b, k*stride, 0, 0)
		outBase := output.Offset(b, k, 0, 0)
		for i := 0; i < extra1; i++ {
			for j := 0; j < extra2; j++ {
				idx := inBase + i*input.Stride(2) + j*input.Stride(3)
				acc := 0.0
				for t := 0; t < width; t++ {
					acc += lpPow(float64(in[idx+t*input.Stride(1)]), power)
				}
				out[outBase+i*output.Stride(2)+j*output.Stride(3)] = float32(lpRoot(acc, power))
			}
		}
	}, cfg)
}

func lpPoolForwardFloat64(input, output tensor.View, width, stride int, power float64, cfg parallel.Config) {
	in := input.Float64()
	out := output.Float64()

	batch := output.Size(0)
	outFeatures := output.Size(1)
	extra1, extra2 := output.Size(2), output.Size(3)

	parallel.ForBatch(batch, outFeatures, func(b, k int) {
		inBase := input.Offset(b, k*stride, 0, 0)
		outBase := output.Offset(b, k, 0, 0)
		for i := 0; i < extra1; i++ {
			for j := 0; j < extra2; j++ {
				idx := inBase + i*input.Stride(2) + j*input.Stride(3)
				acc := 0.0
				for t := 0; t < width; t++ {
					acc += lpPow(in[idx+t*input.Stride(1)], power)
				}
				out[outBase+i*output.Stride(2)+j*output.Stride(3)] = lpRoot(acc, power)
			}
		}
	}, cfg)
}

// lpPow is |x|^p. The absolute value keeps the expression real-valued
// for non-integral p; p=1 and p=2 skip math.Pow.
func lpPow(x, p float64) float64 {
	switch p {
	case 1:
		return math.Abs(x)
	case 2:
		return x * x
	default:
		return math.Pow(math.Abs(x), p)
	}
}

// lpRoot is s^(1/p) for a nonnegative sum s.
func lpRoot(s, p float64) float64 {
	switch p {
	case 1:
		return s
	case 2:
		return math.Sqrt(s)
	default:
		return math.Pow(s, 1/p)
	}
}
