package ui_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/ui"
)

func TestSliderRows(t *testing.T) {
	assert.InDelta(t, 1, ui.Top(0), 1e-6)
	assert.InDelta(t, 0.95, ui.Bottom(0), 1e-6)
	assert.InDelta(t, 0.9, ui.Bottom(1), 1e-6)
	assert.Equal(t, ui.Bottom(3), ui.Top(4))
}

func TestSliderContains(t *testing.T) {
	cases := []struct {
		name string
		p    mgl32.Vec2
		want bool
	}{
		{"inside", mgl32.Vec2{-0.5, 0.97}, true},
		{"left edge inclusive", mgl32.Vec2{-1, 0.97}, true},
		{"right edge exclusive", mgl32.Vec2{-0.35, 0.97}, false},
		{"bottom edge exclusive", mgl32.Vec2{-0.5, 0.95}, false},
		{"next row", mgl32.Vec2{-0.5, 0.93}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ui.Contains(0, tc.p))
		})
	}
}

func TestSliderCoordToValue(t *testing.T) {
	v := float32(0)
	s := ui.Slider{Title: "Samples", Min: 5, Max: 150, Value: &v}

	assert.Equal(t, float32(5), s.CoordToValue(-1))
	assert.Equal(t, float32(150), s.CoordToValue(1))
	// a quarter of the way across the panel
	assert.Equal(t, float32(41), s.CoordToValue(-1+ui.SliderWidth/4))

	cutoff := ui.Slider{Min: 0, Max: 0.15, Decimals: 4, Value: &v}
	assert.InDelta(t, 0.0375, cutoff.CoordToValue(-1+ui.SliderWidth/4), 1e-6)
	assert.Equal(t, float32(0), cutoff.CoordToValue(-2))
}

func TestSliderFractionAndLabel(t *testing.T) {
	v := float32(0.6)
	s := ui.Slider{Title: "G", Min: 0, Max: 2, Decimals: 3, Value: &v}
	assert.InDelta(t, 0.3, s.Fraction(), 1e-6)
	assert.Equal(t, "G - 0.600", s.Label())

	v = 5
	assert.Equal(t, float32(1), s.Fraction())

	n := float32(2)
	q := ui.Slider{Title: "n", Min: 1, Max: 12, Value: &n}
	assert.Equal(t, "n - 2", q.Label())
}

func TestSliderSetCapacity(t *testing.T) {
	set := ui.NewSliderSet()
	values := make([]float32, ui.MaxSliders+1)
	sliders := make([]ui.Slider, 0, len(values))
	for i := range values {
		sliders = append(sliders, ui.Slider{Title: "s", Max: 1, Value: &values[i]})
	}

	require.NoError(t, set.Add(sliders[:ui.MaxSliders-2]...))
	err := set.Add(sliders[ui.MaxSliders-2:]...)
	assert.True(t, errors.Is(err, ui.ErrSliderCapacity))
	// all or nothing
	assert.Equal(t, ui.MaxSliders-2, set.Len())

	require.NoError(t, set.Add(sliders[ui.MaxSliders-2:ui.MaxSliders]...))
	assert.Equal(t, ui.MaxSliders, set.Len())

	assert.Error(t, ui.NewSliderSet().Add(ui.Slider{Title: "unbound"}))
}

func TestSliderSetUpdate(t *testing.T) {
	var time, samples float32 = 0, 40
	set := ui.NewSliderSet()
	require.NoError(t, set.Add(
		ui.Slider{Title: "Time", Max: 5, Decimals: 3, Value: &time},
		ui.Slider{Title: "Samples", Min: 5, Max: 150, Value: &samples, Recompile: true},
	))

	row1 := mgl32.Vec2{-0.9, 0.92}

	t.Run("hover only", func(t *testing.T) {
		u := set.Update(row1, mgl32.Vec2{}, false)
		assert.Equal(t, 1, u.Hovered)
		assert.Equal(t, -1, u.Active)
		assert.False(t, u.Changed)
	})

	t.Run("drag from anchor", func(t *testing.T) {
		cursor := mgl32.Vec2{-1 + ui.SliderWidth, 0}
		u := set.Update(cursor, row1, true)
		assert.Equal(t, -1, u.Hovered)
		assert.Equal(t, 1, u.Active)
		assert.True(t, u.Changed)
		assert.True(t, u.Recompile)
		assert.Equal(t, float32(150), samples)
		assert.Equal(t, 1, set.Active())
	})

	t.Run("same value does not change", func(t *testing.T) {
		u := set.Update(mgl32.Vec2{0.5, 0}, row1, true)
		assert.False(t, u.Changed)
		assert.False(t, u.Recompile)
	})

	t.Run("release", func(t *testing.T) {
		u := set.Update(row1, row1, false)
		assert.Equal(t, -1, u.Active)
		assert.Equal(t, -1, set.Active())
	})

	t.Run("no recompile flag", func(t *testing.T) {
		row0 := mgl32.Vec2{-0.9, 0.97}
		u := set.Update(mgl32.Vec2{-1 + ui.SliderWidth/5, 0.97}, row0, true)
		assert.True(t, u.Changed)
		assert.False(t, u.Recompile)
		assert.InDelta(t, 1, time, 1e-3)
	})
}
