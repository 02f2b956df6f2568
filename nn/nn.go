// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layer-level public API for feature Lp pooling.
//
// FeatureLPPool wraps the pooling operations as a stateful layer that
// owns and reuses its output and gradInput buffers across calls:
//
//	layer, err := nn.NewFeatureLPPool(3, 1, 2.0, true, pool.NewCPUKernel())
//	output, err := layer.Forward(input)
//	gradInput, err := layer.Backward(input, gradOutput)
package nn

import (
	"github.com/born-ml/featpool/internal/nn"
	"github.com/born-ml/featpool/internal/pool"
)

// FeatureLPPool is a feature-dimension Lp-norm pooling layer.
type FeatureLPPool = nn.FeatureLPPool

// NewFeatureLPPool creates a feature Lp pooling layer. Width must be in
// [2, 16], stride in [1, 4], and power > 0.
func NewFeatureLPPool(width, stride int, power float64, batchMode bool, kernel pool.Kernel) (*FeatureLPPool, error) {
	return nn.NewFeatureLPPool(width, stride, power, batchMode, kernel)
}
