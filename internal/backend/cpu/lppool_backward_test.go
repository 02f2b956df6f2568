package cpu

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/born-ml/featpool/internal/tensor"
)

// runForward pools input into a fresh output tensor and returns it.
func runForward(t *testing.T, backend *CPUBackend, input *tensor.RawTensor, batchMode bool, width, stride int, power float64) *tensor.RawTensor {
	t.Helper()
	output := outputFor(t, input, batchMode, width, stride)
	if !backend.UpdateOutput(mustView(t, input, batchMode), mustView(t, output, batchMode), width, stride, power) {
		t.Fatal("UpdateOutput returned false")
	}
	return output
}

// runBackward computes gradInput for the given tensors into a fresh
// tensor of input's shape.
func runBackward(t *testing.T, backend *CPUBackend, gradOutput, input, output *tensor.RawTensor, batchMode bool, width, stride int, power float64) *tensor.RawTensor {
	t.Helper()
	gradInput, err := tensor.NewRaw(input.Shape(), input.DType())
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	if !backend.UpdateGradInput(
		mustView(t, gradOutput, batchMode), mustView(t, input, batchMode),
		mustView(t, output, batchMode), mustView(t, gradInput, batchMode),
		width, stride, power) {
		t.Fatal("UpdateGradInput returned false")
	}
	return gradInput
}

func onesLike(t *testing.T, r *tensor.RawTensor) *tensor.RawTensor {
	t.Helper()
	ones, err := tensor.NewRaw(r.Shape(), r.DType())
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	switch r.DType() {
	case tensor.Float32:
		data := ones.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case tensor.Float64:
		data := ones.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	}
	return ones
}

// TestUpdateGradInput_OverlapAccumulation uses width 3, stride 1 on a
// length-5 feature vector: position 2 lies in all three windows, so its
// gradient must accumulate contributions from output indices 0, 1, 2.
func TestUpdateGradInput_OverlapAccumulation(t *testing.T) {
	input, err := tensor.FromFloat64([]float64{1, 2, 3, 4, 5}, tensor.Shape{5})
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}

	backend := New()
	output := runForward(t, backend, input, false, 3, 1, 2)
	gradInput := runBackward(t, backend, onesLike(t, output), input, output, false, 3, 1, 2)

	in := input.AsFloat64()
	out := output.AsFloat64()
	gradIn := gradInput.AsFloat64()

	// For p=2 with unit upstream gradient, each window k covering j
	// contributes x_j / out_k.
	want := in[2]/out[0] + in[2]/out[1] + in[2]/out[2]
	if !scalar.EqualWithinAbs(gradIn[2], want, 1e-12) {
		t.Errorf("gradInput[2] = %v, want %v", gradIn[2], want)
	}

	// Position 0 lies in window 0 only.
	if !scalar.EqualWithinAbs(gradIn[0], in[0]/out[0], 1e-12) {
		t.Errorf("gradInput[0] = %v, want %v", gradIn[0], in[0]/out[0])
	}
}

// TestUpdateGradInput_NonOverlapping uses stride >= width: every input
// position receives at most one window's contribution, and positions
// past the last complete window receive none.
func TestUpdateGradInput_NonOverlapping(t *testing.T) {
	input, err := tensor.FromFloat64([]float64{3, -4, 5, 12, 7}, tensor.Shape{5})
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}

	backend := New()
	output := runForward(t, backend, input, false, 2, 2, 2)
	gradInput := runBackward(t, backend, onesLike(t, output), input, output, false, 2, 2, 2)

	in := input.AsFloat64()
	out := output.AsFloat64()
	gradIn := gradInput.AsFloat64()

	for j := 0; j < 4; j++ {
		want := in[j] / out[j/2]
		if !scalar.EqualWithinAbs(gradIn[j], want, 1e-12) {
			t.Errorf("gradInput[%d] = %v, want %v", j, gradIn[j], want)
		}
	}
	// Feature 4 is not covered by any complete window.
	if gradIn[4] != 0 {
		t.Errorf("gradInput[4] = %v, want 0", gradIn[4])
	}
}

// TestUpdateGradInput_ZeroWindow: an all-zero window has norm 0; the
// gradient there is defined as 0, not NaN.
func TestUpdateGradInput_ZeroWindow(t *testing.T) {
	input, err := tensor.FromFloat32([]float32{0, 0, 0, 0, 1, 2}, tensor.Shape{6})
	if err != nil {
		t.Fatalf("FromFloat32: %v", err)
	}

	backend := New()
	output := runForward(t, backend, input, false, 2, 2, 2)
	gradInput := runBackward(t, backend, onesLike(t, output), input, output, false, 2, 2, 2)

	for i, g := range gradInput.AsFloat32() {
		if math.IsNaN(float64(g)) || math.IsInf(float64(g), 0) {
			t.Fatalf("gradInput[%d] = %v", i, g)
		}
	}
	gradIn := gradInput.AsFloat32()
	if gradIn[0] != 0 || gradIn[1] != 0 {
		t.Errorf("zero-window gradient = [%v %v], want zeros", gradIn[0], gradIn[1])
	}
}

// TestUpdateGradInput_FiniteDifference checks the analytic gradient
// against central finite differences of the forward pass, for a
// non-integral power and overlapping windows.
func TestUpdateGradInput_FiniteDifference(t *testing.T) {
	const (
		batch  = 2
		feat   = 7
		width  = 3
		stride = 2
		power  = 2.5
		h      = 1e-6
	)

	data := make([]float64, batch*feat)
	for i := range data {
		// Keep values away from 0 where |x|^(p-1) is not smooth.
		data[i] = 0.5 + 0.1*float64(i%9) + math.Sin(float64(i))*0.2
	}
	input, err := tensor.FromFloat64(data, tensor.Shape{batch, feat})
	if err != nil {
		t.Fatalf("FromFloat64: %v", err)
	}

	backend := New()
	output := runForward(t, backend, input, true, width, stride, power)

	// Upstream gradient with distinct entries.
	gradOutput, err := tensor.NewRaw(output.Shape(), tensor.Float64)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	gradOut := gradOutput.AsFloat64()
	for i := range gradOut {
		gradOut[i] = 1 + 0.3*float64(i)
	}

	gradInput := runBackward(t, backend, gradOutput, input, output, true, width, stride, power)
	gradIn := gradInput.AsFloat64()

	// loss(x) = sum_i gradOut_i * forward(x)_i, so dloss/dx_j must
	// equal gradInput_j.
	loss := func(x []float64) float64 {
		perturbed, err := tensor.FromFloat64(x, tensor.Shape{batch, feat})
		if err != nil {
			t.Fatalf("FromFloat64: %v", err)
		}
		out := runForward(t, backend, perturbed, true, width, stride, power)
		sum := 0.0
		for i, v := range out.AsFloat64() {
			sum += gradOut[i] * v
		}
		return sum
	}

	for j := range data {
		bumped := make([]float64, len(data))

		copy(bumped, data)
		bumped[j] += h
		up := loss(bumped)

		copy(bumped, data)
		bumped[j] -= h
		down := loss(bumped)

		numeric := (up - down) / (2 * h)
		if !scalar.EqualWithinAbsOrRel(gradIn[j], numeric, 1e-6, 1e-5) {
			t.Errorf("gradInput[%d] = %v, finite difference %v", j, gradIn[j], numeric)
		}
	}
}
