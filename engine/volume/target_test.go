package volume_test

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/renderer/render_target"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

type fakeTarget struct {
	render_target.RenderTarget
	width, height int
	sampler       common.SamplerStagingData
	released      bool
}

func (t *fakeTarget) Width() int  { return t.width }
func (t *fakeTarget) Height() int { return t.height }
func (t *fakeTarget) Release()    { t.released = true }

type fakeFactory struct {
	created []*fakeTarget
	err     error
}

func (f *fakeFactory) CreateRenderTarget(_ string, width, height int, sampler common.SamplerStagingData) (render_target.RenderTarget, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := &fakeTarget{width: width, height: height, sampler: sampler}
	f.created = append(f.created, t)
	return t, nil
}

func TestTargetReconcile(t *testing.T) {
	factory := &fakeFactory{}
	target := volume.NewTarget(factory)
	assert.Nil(t, target.RenderTarget())

	changed, err := target.Reconcile(640, 360, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, target.Reconfigurations())
	assert.Equal(t, wgpu.FilterModeNearest, factory.created[0].sampler.MagFilter)

	changed, err = target.Reconcile(640, 360, false)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, target.Reconfigurations())

	changed, err = target.Reconcile(640, 360, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, factory.created[0].released)
	assert.Equal(t, wgpu.FilterModeLinear, factory.created[1].sampler.MinFilter)

	changed, err = target.Reconcile(800, 360, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 3, target.Reconfigurations())
	w, h := target.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 360, h)
	assert.True(t, target.Filtering())

	target.Release()
	assert.True(t, factory.created[2].released)
	assert.Nil(t, target.RenderTarget())
}

func TestTargetReconcileFailureKeepsTexture(t *testing.T) {
	factory := &fakeFactory{}
	target := volume.NewTarget(factory)
	_, err := target.Reconcile(100, 100, false)
	require.NoError(t, err)

	factory.err = errors.New("device lost")
	changed, err := target.Reconcile(200, 100, false)
	assert.Error(t, err)
	assert.False(t, changed)
	assert.Same(t, factory.created[0], target.RenderTarget())
	assert.False(t, factory.created[0].released)
	assert.Equal(t, 1, target.Reconfigurations())
}

func TestTargetSize(t *testing.T) {
	w, h := volume.TargetSize(1280, 720, 0.5)
	assert.Equal(t, 640, w)
	assert.Equal(t, 360, h)

	w, h = volume.TargetSize(1280, 720, 0.0001)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}
