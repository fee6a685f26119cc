// Package render_target holds offscreen color textures that one pass draws into and a later pass samples.
package render_target

import "github.com/cogentcore/webgpu/wgpu"

// Format is the color format of every render target.
const Format = wgpu.TextureFormatRGBA8Unorm

// renderTarget is the implementation of the RenderTarget interface.
type renderTarget struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
	width   int
	height  int
}

// RenderTarget is an offscreen color texture with the view and sampler used to draw into it and to sample it.
type RenderTarget interface {
	// View returns the texture view used both as a color attachment and as a sampled binding.
	View() *wgpu.TextureView

	// Sampler returns the sampler created alongside the texture.
	Sampler() *wgpu.Sampler

	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int

	// Release frees the texture, its view and its sampler.
	Release()
}

var _ RenderTarget = &renderTarget{}

// NewRenderTarget wraps GPU objects created by the renderer. The target takes ownership of all three.
//
// Parameters:
//   - texture: the color texture
//   - view: a view of the texture
//   - sampler: the sampler used to read the texture
//   - width: the texture width in pixels
//   - height: the texture height in pixels
//
// Returns:
//   - RenderTarget: the target
func NewRenderTarget(texture *wgpu.Texture, view *wgpu.TextureView, sampler *wgpu.Sampler, width, height int) RenderTarget {
	return &renderTarget{
		texture: texture,
		view:    view,
		sampler: sampler,
		width:   width,
		height:  height,
	}
}

func (t *renderTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *renderTarget) Sampler() *wgpu.Sampler {
	return t.sampler
}

func (t *renderTarget) Width() int {
	return t.width
}

func (t *renderTarget) Height() int {
	return t.height
}

func (t *renderTarget) Release() {
	if t.sampler != nil {
		t.sampler.Release()
		t.sampler = nil
	}
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}
