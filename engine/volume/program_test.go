package volume_test

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/render_target"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

// fakeRenderer records the calls a Program makes without touching a GPU.
type fakeRenderer struct {
	registered  []pipeline.Pipeline
	released    []string
	descriptors []wgpu.BindGroupLayoutDescriptor
	overrides   []map[int]uint64
	writes      []bind_group_provider.BufferWrite

	registerErr error
	bindErr     error
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, pipelines...)
	return nil
}

func (f *fakeRenderer) ReleasePipeline(key string) {
	f.released = append(f.released, key)
}

func (f *fakeRenderer) InitBindGroup(_ bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, overrides map[int]uint64) error {
	if f.bindErr != nil {
		return f.bindErr
	}
	f.descriptors = append(f.descriptors, descriptor)
	f.overrides = append(f.overrides, overrides)
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func assembly(t *testing.T) *volume.Assembly {
	t.Helper()
	a, err := volume.Assemble([]volume.Wave{groundState(1), {Amplitude: 0.5, N: 2, L: 1, M: 1}}, volume.DefaultParams())
	require.NoError(t, err)
	return a
}

func TestUniformHandleTable(t *testing.T) {
	r := &fakeRenderer{}
	p, err := volume.NewProgram(r, assembly(t), 1)
	require.NoError(t, err)

	assert.Equal(t, volume.UniformHandles{
		Transform: 0,
		Color:     64,
		Time:      76,
		Phase:     80,
		RayLength: 84,
		Size:      96,
	}, p.Handles())
}

func TestNewProgramRegistersPipeline(t *testing.T) {
	r := &fakeRenderer{}
	p, err := volume.NewProgram(r, assembly(t), 7)
	require.NoError(t, err)

	assert.Equal(t, "volume#7", p.Key())
	assert.Equal(t, 7, p.Generation())
	require.Len(t, r.registered, 1)
	assert.Equal(t, "volume#7", r.registered[0].PipelineKey())
	assert.Equal(t, render_target.Format, r.registered[0].TargetFormat())

	require.Len(t, r.descriptors, 1)
	require.Len(t, r.descriptors[0].Entries, 1)
	entry := r.descriptors[0].Entries[0]
	assert.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entry.Visibility)
	assert.Equal(t, map[int]uint64{0: 96}, r.overrides[0])
	assert.Len(t, p.BindGroups(), 1)
}

func TestSetUniformsWritesThroughHandles(t *testing.T) {
	r := &fakeRenderer{}
	p, err := volume.NewProgram(r, assembly(t), 1)
	require.NoError(t, err)

	p.SetUniforms(r, volume.Uniforms{
		Transform: mgl32.Translate3D(1, 2, 3),
		Color:     mgl32.Vec3{1, 0.6, 0.4},
		Time:      2.5,
		Phase:     0.75,
		RayLength: 4,
	})
	require.Len(t, r.writes, 1)
	data := r.writes[0].Data
	require.Len(t, data, 96)

	f := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[offset : offset+4]))
	}
	assert.Equal(t, float32(1), f(48))
	assert.Equal(t, float32(2), f(52))
	assert.Equal(t, float32(3), f(56))
	assert.Equal(t, float32(0.6), f(68))
	assert.Equal(t, float32(2.5), f(76))
	assert.Equal(t, float32(0.75), f(80))
	assert.Equal(t, float32(4), f(84))
}

func TestNewProgramFailureLeavesNothingBehind(t *testing.T) {
	r := &fakeRenderer{registerErr: errors.New("invalid shader")}
	p, err := volume.NewProgram(r, assembly(t), 2)
	assert.Error(t, err)
	assert.Nil(t, p)
	assert.Empty(t, r.descriptors)

	r = &fakeRenderer{bindErr: errors.New("out of memory")}
	p, err = volume.NewProgram(r, assembly(t), 3)
	assert.Error(t, err)
	assert.Nil(t, p)
	assert.Equal(t, []string{"volume#3"}, r.released)
}

func TestProgramRelease(t *testing.T) {
	r := &fakeRenderer{}
	p, err := volume.NewProgram(r, assembly(t), 4)
	require.NoError(t, err)
	p.Release(r)
	assert.Equal(t, []string{"volume#4"}, r.released)
}

func TestQuadBytes(t *testing.T) {
	vertices, indices := volume.QuadBytes()
	assert.Len(t, vertices, 4*16)
	assert.Len(t, indices, 6*4)
}
