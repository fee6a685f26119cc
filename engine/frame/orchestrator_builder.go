package frame

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/qm-go/engine/profiler"
)

// OrchestratorBuilderOption is a functional option for configuring an Orchestrator.
type OrchestratorBuilderOption func(o *Orchestrator)

// WithAsyncAssembly moves shader assembly to a worker pool. The previous program keeps drawing until the new one
// has been assembled and compiled.
//
// Parameters:
//   - enabled: true to assemble in the background
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithAsyncAssembly(enabled bool) OrchestratorBuilderOption {
	return func(o *Orchestrator) {
		o.async = enabled
	}
}

// WithProfiler records program rebuilds in p.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) OrchestratorBuilderOption {
	return func(o *Orchestrator) {
		o.profiler = p
	}
}

// WithClearColor sets the color both the volume target and the window are cleared to. Defaults to transparent
// black.
func WithClearColor(c wgpu.Color) OrchestratorBuilderOption {
	return func(o *Orchestrator) {
		o.clearColor = c
	}
}
