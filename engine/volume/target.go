package volume

import (
	"fmt"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/render_target"
)

// TargetFactory creates render targets.
type TargetFactory interface {
	CreateRenderTarget(label string, width, height int, samplerStagingData common.SamplerStagingData) (render_target.RenderTarget, error)
}

// Target is the offscreen texture the volume is rendered into. It is recreated whenever the requested size or
// filtering changes and left alone otherwise.
type Target struct {
	factory          TargetFactory
	current          render_target.RenderTarget
	width            int
	height           int
	filtering        bool
	reconfigurations int
}

// NewTarget creates an empty Target; the first Reconcile creates the texture.
func NewTarget(factory TargetFactory) *Target {
	return &Target{factory: factory}
}

// TargetSize scales a window size by the resolution multiplier, never below one pixel.
//
// Parameters:
//   - width: the window width in pixels
//   - height: the window height in pixels
//   - resolution: the resolution multiplier
//
// Returns:
//   - int, int: the target width and height
func TargetSize(width, height int, resolution float32) (int, int) {
	return max(int(float32(width)*resolution), 1), max(int(float32(height)*resolution), 1)
}

// Reconcile makes the target match the requested configuration. On failure the previous texture is kept.
//
// Parameters:
//   - width: the requested width in pixels
//   - height: the requested height in pixels
//   - filtering: true for linear sampling, false for nearest
//
// Returns:
//   - bool: true if the texture was recreated
//   - error: an error if the new texture could not be created
func (t *Target) Reconcile(width, height int, filtering bool) (bool, error) {
	width, height = max(width, 1), max(height, 1)
	if t.current != nil && t.width == width && t.height == height && t.filtering == filtering {
		return false, nil
	}

	next, err := t.factory.CreateRenderTarget("volume target", width, height, common.Filter(filtering))
	if err != nil {
		return false, fmt.Errorf("volume target %dx%d: %w", width, height, err)
	}
	if t.current != nil {
		t.current.Release()
	}
	t.current = next
	t.width, t.height, t.filtering = width, height, filtering
	t.reconfigurations++
	return true, nil
}

// RenderTarget returns the current texture, nil before the first Reconcile.
func (t *Target) RenderTarget() render_target.RenderTarget {
	return t.current
}

// Size returns the configured width and height.
func (t *Target) Size() (int, int) {
	return t.width, t.height
}

// Filtering reports whether the target is sampled linearly.
func (t *Target) Filtering() bool {
	return t.filtering
}

// Reconfigurations returns how many times the texture has been created.
func (t *Target) Reconfigurations() int {
	return t.reconfigurations
}

// Release frees the texture.
func (t *Target) Release() {
	if t.current != nil {
		t.current.Release()
		t.current = nil
	}
}
