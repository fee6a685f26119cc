package ui

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/render_target"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/shader"
)

// PipelineKey is the key of the textured quad pipeline shared by the blit and the panel.
const PipelineKey = "ui"

// LayerRenderer is the part of the renderer the UI layer needs.
type LayerRenderer interface {
	RegisterPipelines(pipelines ...pipeline.Pipeline) error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	WriteVertexBuffer(provider bind_group_provider.BindGroupProvider, vertexData []byte) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error
}

// Layer owns the GPU objects of the window-sized passes: the blit that stretches the volume target over the
// window and the slider panel drawn on top of it.
type Layer struct {
	atlas    *Atlas
	pipeline pipeline.Pipeline
	layout   wgpu.BindGroupLayoutDescriptor

	panel      *Batch
	panelMesh  bind_group_provider.BindGroupProvider
	atlasGroup bind_group_provider.BindGroupProvider

	blitMesh  bind_group_provider.BindGroupProvider
	blitGroup bind_group_provider.BindGroupProvider
	// blitTarget is the render target the blit group currently samples.
	blitTarget render_target.RenderTarget
}

// NewLayer compiles the UI pipeline, uploads the font atlas and allocates the quad buffers.
//
// Parameters:
//   - r: the renderer
//   - atlas: the font atlas to upload
//
// Returns:
//   - *Layer: the layer
//   - error: an error if a shader, pipeline or GPU resource cannot be created
func NewLayer(r LayerRenderer, atlas *Atlas) (*Layer, error) {
	vs, err := shader.NewShader("ui_vs", shader.ShaderTypeVertex, UIVertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader("ui_fs", shader.ShaderTypeFragment, UIFragmentSource,
		shader.WithInclude(ParamsInclude, UIParamsSource),
	)
	if err != nil {
		return nil, err
	}
	p := pipeline.NewPipeline(PipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithBlendEnabled(true),
	)
	if err := r.RegisterPipelines(p); err != nil {
		return nil, err
	}

	l := &Layer{
		atlas:      atlas,
		pipeline:   p,
		layout:     p.BindGroupLayoutDescriptors()[0],
		panel:      NewBatch(),
		panelMesh:  bind_group_provider.NewBindGroupProvider("ui panel"),
		atlasGroup: bind_group_provider.NewBindGroupProvider("ui atlas"),
		blitMesh:   bind_group_provider.NewBindGroupProvider("ui blit"),
		blitGroup:  bind_group_provider.NewBindGroupProvider("ui blit target", bind_group_provider.WithBorrowedViews()),
	}

	if err := l.initAtlas(r); err != nil {
		l.Release()
		return nil, fmt.Errorf("ui atlas: %w", err)
	}

	empty := make([]byte, MaxQuads*4*UIVertexSize)
	if err := r.InitMeshBuffers(l.panelMesh, empty, common.SliceToBytes(QuadIndices(MaxQuads)), 0); err != nil {
		l.Release()
		return nil, fmt.Errorf("ui panel mesh: %w", err)
	}

	blit := NewBatch()
	BuildBlit(blit)
	if err := r.InitMeshBuffers(l.blitMesh, blit.Bytes(), common.SliceToBytes(QuadIndices(1)), blit.IndexCount()); err != nil {
		l.Release()
		return nil, fmt.Errorf("ui blit mesh: %w", err)
	}
	return l, nil
}

func (l *Layer) initAtlas(r LayerRenderer) error {
	if err := r.InitTextureView(l.atlasGroup, TextureBinding, l.atlas.StagingData()); err != nil {
		return err
	}
	if err := r.InitSampler(l.atlasGroup, SamplerBinding, common.Filter(false)); err != nil {
		return err
	}
	if err := r.InitBindGroup(l.atlasGroup, l.layout, map[int]uint64{ParamsBinding: 16}); err != nil {
		return err
	}
	r.WriteBuffers([]bind_group_provider.BufferWrite{l.tint(l.atlasGroup)})
	return nil
}

// tint returns the write that sets a group's tint to opaque white.
func (l *Layer) tint(group bind_group_provider.BindGroupProvider) bind_group_provider.BufferWrite {
	return bind_group_provider.BufferWrite{
		Provider: group,
		Binding:  ParamsBinding,
		Data:     UIParams{Tint: [4]float32{1, 1, 1, 1}}.Marshal(),
	}
}

// DrawBlit draws target over the whole window. The blit bind group is rebuilt when the target changes.
//
// Parameters:
//   - r: the renderer, inside a surface pass
//   - target: the texture to show
//
// Returns:
//   - error: an error if the bind group cannot be rebuilt or the draw fails
func (l *Layer) DrawBlit(r LayerRenderer, target render_target.RenderTarget) error {
	if target == nil {
		return nil
	}
	if target != l.blitTarget {
		l.blitGroup.SetTextureView(TextureBinding, target.View())
		l.blitGroup.SetSampler(SamplerBinding, target.Sampler())
		if err := r.InitBindGroup(l.blitGroup, l.layout, map[int]uint64{ParamsBinding: 16}); err != nil {
			return fmt.Errorf("ui blit bind group: %w", err)
		}
		r.WriteBuffers([]bind_group_provider.BufferWrite{l.tint(l.blitGroup)})
		l.blitTarget = target
	}
	return r.DrawCall(PipelineKey, l.blitMesh, 1, []bind_group_provider.BindGroupProvider{l.blitGroup})
}

// DrawPanel rebuilds the slider panel and draws it.
//
// Parameters:
//   - r: the renderer, inside a surface pass
//   - set: the sliders
//   - hovered: the row under the cursor, or -1
//   - width, height: the framebuffer size in pixels
//
// Returns:
//   - error: an error if the vertex upload or the draw fails
func (l *Layer) DrawPanel(r LayerRenderer, set *SliderSet, hovered, width, height int) error {
	BuildPanel(l.panel, set, hovered, l.atlas, width, height)
	l.panelMesh.SetIndexCount(l.panel.IndexCount())
	if l.panel.Quads() == 0 {
		return nil
	}
	if err := r.WriteVertexBuffer(l.panelMesh, l.panel.Bytes()); err != nil {
		return fmt.Errorf("ui panel vertices: %w", err)
	}
	return r.DrawCall(PipelineKey, l.panelMesh, 1, []bind_group_provider.BindGroupProvider{l.atlasGroup})
}

// Panel returns the batch built by the last DrawPanel.
func (l *Layer) Panel() *Batch {
	return l.panel
}

// Release frees the layer's GPU objects. The blit target belongs to its owner and is left alone.
func (l *Layer) Release() {
	l.panelMesh.Release()
	l.atlasGroup.Release()
	l.blitMesh.Release()
	l.blitGroup.Release()
	l.blitTarget = nil
}
