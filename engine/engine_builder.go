package engine

import (
	"time"

	"github.com/Carmen-Shannon/qm-go/engine/renderer"
	"github.com/Carmen-Shannon/qm-go/engine/scene"
	"github.com/Carmen-Shannon/qm-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets a renderer created for the engine's window. Without it the engine creates a WebGPU renderer
// with default options.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}

// WithAsyncAssembly assembles volume programs on a worker pool instead of the render goroutine.
//
// Parameters:
//   - enabled: true for background assembly
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithAsyncAssembly(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.asyncAssembly = enabled
	}
}

// WithSampleCount sets the initial raymarch sample count.
func WithSampleCount(samples int) EngineBuilderOption {
	return func(e *engine) {
		e.sceneOptions = append(e.sceneOptions, scene.WithSampleCount(samples))
	}
}

// WithResolution sets the initial volume resolution multiplier.
func WithResolution(resolution float32) EngineBuilderOption {
	return func(e *engine) {
		e.sceneOptions = append(e.sceneOptions, scene.WithResolution(resolution))
	}
}

// WithDistance sets the initial camera distance.
func WithDistance(distance float32) EngineBuilderOption {
	return func(e *engine) {
		e.sceneOptions = append(e.sceneOptions, scene.WithDistance(distance))
	}
}

// WithWaveCount sets the number of waves created at startup.
func WithWaveCount(count int) EngineBuilderOption {
	return func(e *engine) {
		e.sceneOptions = append(e.sceneOptions, scene.WithWaveCount(count))
	}
}

// WithSceneOptions passes any other scene options through.
//
// Parameters:
//   - options: scene builder options applied after the ones above
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSceneOptions(options ...scene.SceneBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.sceneOptions = append(e.sceneOptions, options...)
	}
}
