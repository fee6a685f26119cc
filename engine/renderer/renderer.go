package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/render_target"
	"github.com/Carmen-Shannon/qm-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	config             backendConfig
	pendingPresentMode *PresentMode
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines keyed by pipeline key, and a frame made of any number of
// passes, each drawing either into an offscreen RenderTarget or into the window surface.
// The Renderer also implements a backend which allows for multiple backend API implementations to exist.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by creating the corresponding GPU
	// pipeline objects via the backend, then caching them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails, the failing pipeline is not cached
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// ReleasePipeline removes a pipeline from the cache and frees its GPU pipeline.
	//
	// Parameters:
	//   - key: the pipeline key
	ReleasePipeline(key string)

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes how frames are delivered to the display. Takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates the vertex and index buffers of a mesh provider.
	//
	// Parameters:
	//   - provider: the provider receiving the buffers
	//   - vertexData: raw vertex bytes
	//   - indexData: raw uint32 index bytes
	//   - indexCount: the number of indices drawn
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// WriteVertexBuffer replaces the vertex data of a mesh provider, growing its buffer if needed.
	WriteVertexBuffer(provider bind_group_provider.BindGroupProvider, vertexData []byte) error

	// InitBindGroup creates the buffers and bind group for a provider from a layout descriptor.
	//
	// Parameters:
	//   - provider: the provider receiving the bind group
	//   - descriptor: the bind group layout descriptor
	//   - bufferSizeOverrides: buffer sizes keyed by binding, replacing the reflected minimum binding size
	//
	// Returns:
	//   - error: an error if the bind group could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error

	// InitTextureView uploads RGBA pixels and stores the texture view at the binding.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it at the binding.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// CreateRenderTarget creates an offscreen color texture with its own sampler.
	//
	// Parameters:
	//   - label: a debug label
	//   - width: the width in pixels
	//   - height: the height in pixels
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - render_target.RenderTarget: the new target
	//   - error: an error if the target could not be created
	CreateRenderTarget(label string, width, height int, samplerStagingData common.SamplerStagingData) (render_target.RenderTarget, error)

	// WriteBuffers writes data into bound buffers.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the surface texture and starts the frame's command encoder.
	BeginFrame() error

	// BeginPass starts a render pass into target, or into the surface when target is nil. A nil clear loads the
	// existing contents.
	BeginPass(target render_target.RenderTarget, clear *wgpu.Color)

	// DrawCall issues an indexed draw of a mesh with the pipeline registered under pipelineKey.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - instanceCount: the number of instances
	//   - bindGroups: providers bound at group indices 0..n-1
	//
	// Returns:
	//   - error: an error if no pipeline is registered under the key
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndPass ends the current render pass.
	EndPass()

	// EndFrame submits the frame's commands.
	EndFrame()

	// Present presents the frame to the window.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type and surface descriptor.
// It also accepts optional RendererBuilderOptions to configure the Renderer.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the surface descriptor and initial surface size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// Apply options first so the adapter config is available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.config)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("pipeline %s: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) ReleasePipeline(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pipelineCache[key]
	if !ok {
		return
	}
	if rp := p.Pipeline(); rp != nil {
		rp.Release()
		p.SetRenderPipeline(nil)
	}
	delete(r.pipelineCache, key)
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) WriteVertexBuffer(provider bind_group_provider.BindGroupProvider, vertexData []byte) error {
	return r.backend.WriteVertexBuffer(provider, vertexData)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) CreateRenderTarget(label string, width, height int, samplerStagingData common.SamplerStagingData) (render_target.RenderTarget, error) {
	return r.backend.CreateRenderTarget(label, width, height, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	if len(writes) == 0 {
		return
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) BeginPass(target render_target.RenderTarget, clear *wgpu.Color) {
	r.backend.BeginPass(target, clear)
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, ok := r.pipelineCache[pipelineKey]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("pipeline with key %s not found", pipelineKey)
	}
	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndPass() {
	r.backend.EndPass()
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}
