package volume

import (
	"fmt"

	"github.com/Carmen-Shannon/qm-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/render_target"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformsVar is the WGSL variable name of the uniform buffer in both volume stages.
const uniformsVar = "u"

// ProgramRenderer is the part of the renderer a Program needs to create, update and free its GPU objects.
type ProgramRenderer interface {
	RegisterPipelines(pipelines ...pipeline.Pipeline) error
	ReleasePipeline(key string)
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
}

// Program is a compiled volume pipeline with its uniform buffer. A Program is never modified after creation;
// recompiling creates a new Program under a new generation.
type Program struct {
	key        string
	generation int
	pipeline   pipeline.Pipeline
	uniforms   bind_group_provider.BindGroupProvider
	binding    int
	handles    UniformHandles
	assembly   *Assembly
}

// NewProgram registers the pipeline of an assembly and creates its uniform buffer. A failure leaves no GPU
// objects behind.
//
// Parameters:
//   - r: the renderer
//   - a: the assembled shader stages
//   - generation: a number unique to this program, used in its pipeline key
//
// Returns:
//   - *Program: the program
//   - error: an error if the uniform layout is incomplete or the GPU rejects the pipeline
func NewProgram(r ProgramRenderer, a *Assembly, generation int) (*Program, error) {
	handles, err := reflectHandles(a.Fragment)
	if err != nil {
		return nil, err
	}
	binding, ok := a.Fragment.BindGroupFromVarName(0, uniformsVar)
	if !ok {
		return nil, fmt.Errorf("shader %s does not bind %q in group 0", a.Fragment.Key(), uniformsVar)
	}

	key := fmt.Sprintf("volume#%d", generation)
	p := pipeline.NewPipeline(key,
		pipeline.WithVertexShader(a.Vertex),
		pipeline.WithFragmentShader(a.Fragment),
		pipeline.WithTargetFormat(render_target.Format),
	)
	if err := r.RegisterPipelines(p); err != nil {
		return nil, err
	}

	uniforms := bind_group_provider.NewBindGroupProvider(key + " uniforms")
	if err := r.InitBindGroup(uniforms, p.BindGroupLayoutDescriptors()[0], map[int]uint64{binding: handles.Size}); err != nil {
		uniforms.Release()
		r.ReleasePipeline(key)
		return nil, fmt.Errorf("%s uniforms: %w", key, err)
	}

	return &Program{
		key:        key,
		generation: generation,
		pipeline:   p,
		uniforms:   uniforms,
		binding:    binding,
		handles:    handles,
		assembly:   a,
	}, nil
}

// Key returns the pipeline key the program is registered under.
func (p *Program) Key() string {
	return p.key
}

// Generation returns the generation the program was created for.
func (p *Program) Generation() int {
	return p.generation
}

// Handles returns the uniform handle table.
func (p *Program) Handles() UniformHandles {
	return p.handles
}

// Assembly returns the assembly the program was compiled from.
func (p *Program) Assembly() *Assembly {
	return p.assembly
}

// BindGroups returns the providers to bind when drawing with the program.
func (p *Program) BindGroups() []bind_group_provider.BindGroupProvider {
	return []bind_group_provider.BindGroupProvider{p.uniforms}
}

// SetUniforms writes the per-frame uniforms through the handle table.
//
// Parameters:
//   - r: the renderer
//   - u: the uniform values
func (p *Program) SetUniforms(r ProgramRenderer, u Uniforms) {
	r.WriteBuffers([]bind_group_provider.BufferWrite{{
		Provider: p.uniforms,
		Binding:  p.binding,
		Offset:   0,
		Data:     p.handles.Marshal(u),
	}})
}

// Release frees the pipeline and the uniform buffer.
func (p *Program) Release(r ProgramRenderer) {
	r.ReleasePipeline(p.key)
	p.uniforms.Release()
}
