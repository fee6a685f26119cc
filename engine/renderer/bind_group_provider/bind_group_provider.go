package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label prefixed to every GPU object created for this provider.
	label string
	// borrowed marks texture views and samplers as owned elsewhere, Release leaves them alive.
	borrowed bool

	// The following fields are GPU allocated resources populated by the Renderer.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the GPU buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer
	// textureViews holds the texture views bound by this provider, keyed by binding index.
	textureViews map[int]*wgpu.TextureView
	// samplers holds the samplers bound by this provider, keyed by binding index.
	samplers map[int]*wgpu.Sampler

	// vertexBuffer is the GPU vertex buffer of a mesh provider.
	vertexBuffer *wgpu.Buffer
	// vertexBufferSize is the allocated size of vertexBuffer in bytes.
	vertexBufferSize uint64
	// indexBuffer is the GPU index buffer of a mesh provider.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices drawn by DrawCall.
	indexCount int
}

// BindGroupProvider holds the GPU resources of one bind group, or the vertex and index buffers of a mesh.
// Components hold a BindGroupProvider to describe their GPU binding requirements; the Renderer creates the
// resources and stores them back on the provider.
type BindGroupProvider interface {
	// Release frees every GPU resource owned by the provider.
	Release()

	// ReleaseBindGroup frees only the bind group so that it can be rebuilt against new texture views or samplers.
	ReleaseBindGroup()

	// Label returns the debug label of the provider.
	Label() string

	// BindGroup returns the GPU bind group, nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the GPU bind group layout, nil before InitBindGroup.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if none is bound
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view at a binding index.
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at a binding index.
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the vertex buffer of a mesh provider.
	VertexBuffer() *wgpu.Buffer

	// VertexBufferSize returns the allocated vertex buffer size in bytes.
	VertexBufferSize() uint64

	// IndexBuffer returns the index buffer of a mesh provider.
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices drawn for this mesh.
	IndexCount() int

	// SetBindGroup stores the GPU bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the GPU bind group layout.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a buffer at a binding index.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTextureView stores a texture view at a binding index.
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a sampler at a binding index.
	SetSampler(binding int, s *wgpu.Sampler)

	// SetVertexBuffer stores the vertex buffer and its allocated size, releasing a previous buffer.
	SetVertexBuffer(buf *wgpu.Buffer, size uint64)

	// SetIndexBuffer stores the index buffer.
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount sets the number of indices drawn for this mesh.
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new, empty BindGroupProvider.
//
// Parameters:
//   - label: a debug label used for the GPU objects created for the provider
//   - options: variadic list of BindGroupProviderOption functions
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) VertexBufferSize() uint64 {
	return p.vertexBufferSize
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *bindGroupProvider) IndexCount() int {
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTextureView(binding int, tv *wgpu.TextureView) {
	p.textureViews[binding] = tv
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer, size uint64) {
	if p.vertexBuffer != nil && p.vertexBuffer != buf {
		p.vertexBuffer.Release()
	}
	p.vertexBuffer = buf
	p.vertexBufferSize = size
}

func (p *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bindGroupProvider) ReleaseBindGroup() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
}

func (p *bindGroupProvider) Release() {
	if !p.borrowed {
		for i, tv := range p.textureViews {
			if tv != nil {
				tv.Release()
			}
			delete(p.textureViews, i)
		}
		for i, s := range p.samplers {
			if s != nil {
				s.Release()
			}
			delete(p.samplers, i)
		}
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}

	p.ReleaseBindGroup()
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
		p.vertexBufferSize = 0
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}

// BufferWrite is one queued write of Data into the buffer at Binding of Provider, starting at byte Offset.
// Uniform handle tables produce one write per changed field.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
