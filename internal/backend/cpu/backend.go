// Package cpu implements the reference CPU kernel for feature Lp-norm
// pooling. It satisfies the pool.Kernel contract with strided loops over
// canonical 4-axis views, parallelized over independent output (forward)
// or input (backward) cells.
package cpu

import (
	"github.com/born-ml/featpool/internal/parallel"
)

// CPUBackend computes the pooling reduction on the host CPU.
// It is stateless between calls; the only configuration is how the
// per-call iteration space is split across goroutines.
type CPUBackend struct {
	cfg parallel.Config
}

// New creates a CPU backend with the default parallel configuration.
func New() *CPUBackend {
	return &CPUBackend{cfg: parallel.DefaultConfig()}
}

// NewWithConfig creates a CPU backend with an explicit parallel
// configuration. Use parallel.Sequential() for single-threaded runs.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{cfg: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}
