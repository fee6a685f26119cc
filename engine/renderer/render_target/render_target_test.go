package render_target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRenderTarget(t *testing.T) {
	rt := NewRenderTarget(nil, nil, nil, 320, 180)
	assert.Equal(t, 320, rt.Width())
	assert.Equal(t, 180, rt.Height())
	assert.Nil(t, rt.View())
	assert.Nil(t, rt.Sampler())

	// releasing a target without GPU objects is a no-op
	rt.Release()
}
