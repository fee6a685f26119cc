package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
// Modes the surface does not support fall back to VSync.
//
// Parameters:
//   - mode: the PresentMode to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). The volume raymarch is slow on such adapters; lower the sample
// count and resolution to compensate.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.config.forceFallbackAdapter = force
	}
}

// WithHighPerformanceAdapter asks for the discrete GPU on systems that have both an integrated and a discrete one.
//
// Parameters:
//   - enabled: true to prefer the high-performance adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the adapter preference to a renderer
func WithHighPerformanceAdapter(enabled bool) RendererBuilderOption {
	return func(r *renderer) {
		if enabled {
			r.config.powerPreference = wgpu.PowerPreferenceHighPerformance
		} else {
			r.config.powerPreference = wgpu.PowerPreferenceUndefined
		}
	}
}
