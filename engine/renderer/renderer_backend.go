package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Always supported.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped

	// PresentModeMailbox renders uncapped but only shows the newest frame at each vertical blank.
	PresentModeMailbox
)

// String returns the present mode name used in logs.
func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	case PresentModeMailbox:
		return "mailbox"
	default:
		return "unknown"
	}
}

// wgpuPresentMode maps a PresentMode to the WebGPU mode it asks for.
func (m PresentMode) wgpuPresentMode() wgpu.PresentMode {
	switch m {
	case PresentModeVSync:
		return wgpu.PresentModeFifo
	case PresentModeMailbox:
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeImmediate
	}
}

// supportedPresentMode returns want when the surface lists it and FIFO otherwise, which every surface supports.
func supportedPresentMode(available []wgpu.PresentMode, want wgpu.PresentMode) wgpu.PresentMode {
	for _, m := range available {
		if m == want {
			return want
		}
	}
	return wgpu.PresentModeFifo
}

// backendConfig is the adapter configuration collected from builder options before the backend is created.
type backendConfig struct {
	forceFallbackAdapter bool
	powerPreference      wgpu.PowerPreference
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
