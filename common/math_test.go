package common_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/common"
)

func TestRound(t *testing.T) {
	cases := []struct {
		name     string
		v        float32
		decimals int
		want     float32
	}{
		{"integer", 2.6, 0, 3},
		{"two places", 0.236, 2, 0.24},
		{"three places", 1.23449, 3, 1.234},
		{"negative", -0.125, 2, -0.13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, common.Round(tc.v, tc.decimals), 1e-6)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, common.Clamp(1.236, 0, 1))
	assert.Equal(t, -3, common.Clamp(-7, -3, 3))
	assert.Equal(t, float32(0.5), common.Clamp(float32(0.5), 0, 1))
}

func TestFactorial(t *testing.T) {
	require.Equal(t, 1.0, common.Factorial(0))
	require.Equal(t, 1.0, common.Factorial(1))
	require.Equal(t, 120.0, common.Factorial(5))
	require.Equal(t, 3628800.0, common.Factorial(10))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, common.Coalesce(0, 3, 4))
	assert.Equal(t, "", common.Coalesce("", ""))
}

func TestRoundInt(t *testing.T) {
	assert.Equal(t, 3, common.RoundInt(2.51))
	assert.Equal(t, -2, common.RoundInt(-2.4))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, common.SliceToBytes([]float32{}))
	assert.Len(t, common.SliceToBytes([]float32{1, 2, 3}), 12)
}
