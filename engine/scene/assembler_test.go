package scene_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/scene"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

func groundState() []volume.Wave {
	return []volume.Wave{{Amplitude: 1, N: 1}}
}

func TestAssemblerSynchronous(t *testing.T) {
	a := scene.NewAssembler(false)
	defer a.Close()
	assert.False(t, a.Async())

	res := a.Request(groundState(), volume.DefaultParams())
	require.NotNil(t, res)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Generation)
	require.Len(t, res.Assembly.Terms, 1)

	res = a.Request(nil, volume.DefaultParams())
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Generation)
	assert.True(t, errors.Is(res.Err, volume.ErrNoWaves))
	assert.Nil(t, a.Poll(), "synchronous results are not queued")
}

func TestAssemblerBackground(t *testing.T) {
	a := scene.NewAssembler(true)
	defer a.Close()
	assert.True(t, a.Async())

	assert.Nil(t, a.Request(groundState(), volume.DefaultParams()))

	var res *scene.AssemblyResult
	require.Eventually(t, func() bool {
		res = a.Poll()
		return res != nil
	}, 5*time.Second, time.Millisecond)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Generation)
	assert.Nil(t, a.Poll(), "a result is handed out once")
}

func TestAssemblerDropsStaleResults(t *testing.T) {
	a := scene.NewAssembler(true)
	defer a.Close()

	params := volume.DefaultParams()
	for n := 1; n <= 5; n++ {
		a.Request([]volume.Wave{{Amplitude: 1, N: float32(n)}}, params)
	}

	var res *scene.AssemblyResult
	require.Eventually(t, func() bool {
		if r := a.Poll(); r != nil {
			res = r
		}
		return res != nil
	}, 5*time.Second, time.Millisecond)
	assert.Equal(t, 5, res.Generation, "only the newest request is installed")
	n, _, _ := res.Assembly.Terms[0].Wave.QuantumNumbers()
	assert.Equal(t, 5, n)
}

func TestAssemblerSnapshotsWaves(t *testing.T) {
	a := scene.NewAssembler(true)
	defer a.Close()

	waves := groundState()
	a.Request(waves, volume.DefaultParams())
	waves[0].Amplitude = 0

	var res *scene.AssemblyResult
	require.Eventually(t, func() bool {
		res = a.Poll()
		return res != nil
	}, 5*time.Second, time.Millisecond)
	require.NoError(t, res.Err)
	assert.Len(t, res.Assembly.Terms, 1)
}
