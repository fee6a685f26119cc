package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/renderer/shader"
)

const vertexSource = `struct Uniforms { transform: mat4x4<f32>, };
@group(0) @binding(0) var<uniform> u: Uniforms;
struct VertexInput { @location(0) pos: vec2<f32>, };
@vertex
fn vs_main(v: VertexInput) -> @builtin(position) vec4<f32> {
    return u.transform * vec4<f32>(v.pos, 0.0, 1.0);
}
`

const fragmentSource = `struct Uniforms { transform: mat4x4<f32>, };
@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var tex: texture_2d<f32>;
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return u.transform[0];
}
`

func TestMergedBindGroupLayouts(t *testing.T) {
	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, vertexSource)
	require.NoError(t, err)
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, fragmentSource)
	require.NoError(t, err)

	p := NewPipeline("merge", WithVertexShader(vs), WithFragmentShader(fs))
	layouts := p.BindGroupLayoutDescriptors()
	require.Len(t, layouts, 1)
	entries := layouts[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, uint32(0), entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entries[0].Visibility)
	assert.Equal(t, uint32(1), entries[1].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, entries[1].Visibility)
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline("defaults")
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.TextureFormatUndefined, p.TargetFormat())
	assert.Nil(t, p.Pipeline())
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))

	p = NewPipeline("custom", WithBlendEnabled(true), WithTargetFormat(wgpu.TextureFormatRGBA8Unorm))
	assert.True(t, p.BlendEnabled())
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, p.TargetFormat())
}
