package pool

import "errors"

// Error kinds reported by the pooling operations. All validation happens
// before any compute or buffer mutation; callers match with errors.Is.
var (
	// ErrInvalidParameter reports a width, stride, or power outside the
	// allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedRank reports a rank/batch-mode combination that
	// cannot canonicalize to a 4-axis view.
	ErrUnsupportedRank = errors.New("unsupported rank")

	// ErrShapeMismatch reports a feature dimension smaller than the
	// window, or tensors whose sizes disagree with each other or with
	// the width/stride parameters.
	ErrShapeMismatch = errors.New("shape mismatch")
)
