package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUniforms = `struct Uniforms {
    transform: mat4x4<f32>,
    color: vec3<f32>,
    time: f32,
    phase: f32,
    ray_length: f32,
};`

const testFragment = `//@qm:include uniforms
//@qm:define SAMPLE_COUNT i32
//@qm:define CUTOFF f32

@group(0) @binding(0) var<uniform> u: Uniforms;
@group(0) @binding(1) var tex: texture_2d<f32>;
@group(0) @binding(2) var tex_sampler: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    var total: f32 = 0.0;
    for (var i: i32 = 0; i < SAMPLE_COUNT; i = i + 1) {
        //@qm:block body
    }
    return vec4<f32>(total, 0.0, 0.0, 1.0);
}
`

const testVertex = `struct VertexInput {
    @location(0) pos: vec2<f32>,
    @location(1) uv: vec2<f32>,
    @location(2) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(v: VertexInput) -> VertexOutput {
    var result: VertexOutput;
    result.position = vec4<f32>(v.pos, 0.0, 1.0);
    result.uv = v.uv;
    return result;
}
`

func newTestFragment(t *testing.T, options ...ShaderBuilderOption) (Shader, error) {
	t.Helper()
	base := []ShaderBuilderOption{
		WithInclude("uniforms", testUniforms),
		WithDefines(map[string]string{"SAMPLE_COUNT": "40", "CUTOFF": "1e-02"}),
		WithBlock("body", "total = total + 1.0;\ntotal = total * 0.5;"),
	}
	return NewShader("test-fragment", ShaderTypeFragment, testFragment, append(base, options...)...)
}

func TestPreProcessorInjectsAnnotations(t *testing.T) {
	s, err := newTestFragment(t)
	require.NoError(t, err)

	src := s.Source()
	assert.Contains(t, src, "const SAMPLE_COUNT: i32 = 40;")
	assert.Contains(t, src, "const CUTOFF: f32 = 1e-02;")
	assert.Contains(t, src, "struct Uniforms {")
	assert.Contains(t, src, "        total = total + 1.0;\n        total = total * 0.5;")
	assert.NotContains(t, src, "@qm:")

	decls := s.Declarations()
	require.Len(t, decls, 4)
	assert.Equal(t, AnnotationTypeInclude, decls[0].Type)
	assert.Equal(t, "SAMPLE_COUNT", decls[1].Name)
	assert.Equal(t, "i32", decls[1].WGSLType)
	assert.Equal(t, AnnotationTypeBlock, decls[3].Type)
}

func TestPreProcessorErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"unknown type", "//@qm:frobnicate x"},
		{"empty", "//@qm:"},
		{"define without type", "//@qm:define SAMPLE_COUNT"},
		{"invalid name", "//@qm:block 9lives"},
		{"unknown include", "//@qm:include nothing"},
		{"missing define", "//@qm:define MISSING f32"},
		{"missing block", "//@qm:block missing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pp := NewPreProcessor(map[string]string{}, map[string]string{}, map[string]string{})
			_, err := pp.Process("fn f() {}\n" + tc.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestPreProcessorIgnoresPlainComments(t *testing.T) {
	pp := NewPreProcessor(nil, nil, nil)
	out, err := pp.Process("// regular comment\nlet x = 1; // @qm: trailing text is not an annotation")
	require.NoError(t, err)
	assert.Equal(t, "// regular comment\nlet x = 1; // @qm: trailing text is not an annotation", out)
	assert.Empty(t, pp.Declarations())
}

func TestShaderReflection(t *testing.T) {
	s, err := newTestFragment(t)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Equal(t, "test-fragment", s.Module().Label)

	desc := s.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 3)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(96), desc.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageFragment, desc.Entries[0].Visibility)
	assert.Equal(t, wgpu.TextureViewDimension2D, desc.Entries[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[2].Sampler.Type)

	binding, ok := s.BindGroupFromVarName(0, "tex_sampler")
	require.True(t, ok)
	assert.Equal(t, 2, binding)
	_, ok = s.BindGroupFromVarName(3, "u")
	assert.False(t, ok)
}

func TestStructLayout(t *testing.T) {
	s, err := newTestFragment(t)
	require.NoError(t, err)

	l, ok := s.StructLayout("Uniforms")
	require.True(t, ok)
	assert.Equal(t, uint64(96), l.Size)
	assert.Equal(t, uint64(16), l.Align)
	assert.Equal(t, map[string]uint64{
		"transform":  0,
		"color":      64,
		"time":       76,
		"phase":      80,
		"ray_length": 84,
	}, l.Offsets)

	_, ok = s.StructLayout("Missing")
	assert.False(t, ok)
}

func TestVertexLayouts(t *testing.T) {
	s, err := NewShader("test-vertex", ShaderTypeVertex, testVertex)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	layout := layouts[0][0]
	assert.Equal(t, uint64(32), layout.ArrayStride)
	require.Len(t, layout.Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32x4, layout.Attributes[2].Format)
	assert.Equal(t, uint64(16), layout.Attributes[2].Offset)
	assert.Equal(t, uint32(2), layout.Attributes[2].ShaderLocation)
}

func TestNewShaderRequiresEntryPoint(t *testing.T) {
	_, err := NewShader("no-entry", ShaderTypeVertex, testFragment,
		WithInclude("uniforms", testUniforms),
		WithDefines(map[string]string{"SAMPLE_COUNT": "1", "CUTOFF": "0e+00"}),
		WithBlock("body", ""),
	)
	require.Error(t, err)

	_, err = NewShader("missing-define", ShaderTypeFragment, testFragment, WithInclude("uniforms", testUniforms))
	require.Error(t, err)
}

func TestResolveArrayLayout(t *testing.T) {
	l, ok := resolveTypeLayout("array<vec3<f32>, 4>", nil)
	require.True(t, ok)
	assert.Equal(t, uint64(64), l.size)

	_, ok = resolveTypeLayout("array<f32>", nil)
	assert.False(t, ok)
}
