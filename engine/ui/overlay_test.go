package ui_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/qm-go/engine/ui"
)

func TestQuadIndices(t *testing.T) {
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}, ui.QuadIndices(2))
	assert.Empty(t, ui.QuadIndices(0))
}

func TestUIParamsMarshal(t *testing.T) {
	b := ui.UIParams{Tint: mgl32.Vec4{1, 0, 0, 0.5}}.Marshal()
	assert.Len(t, b, 16)
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, b[:4])
	assert.Equal(t, []byte{0, 0, 0, 0x3f}, b[12:])
}

func TestBatchQuad(t *testing.T) {
	b := ui.NewBatch()
	ok := b.Quad(mgl32.Vec2{-1, -1}, mgl32.Vec2{0, 1}, mgl32.Vec2{0.1, 0.2}, mgl32.Vec2{0.3, 0.4}, mgl32.Vec4{1, 1, 1, 1})
	require.True(t, ok)
	require.Equal(t, 1, b.Quads())
	assert.Equal(t, 6, b.IndexCount())
	assert.Len(t, b.Bytes(), 4*ui.UIVertexSize)

	v := b.Vertices()
	// bottom-left samples the bottom of the texture rectangle
	assert.Equal(t, [2]float32{-1, -1}, v[0].Pos)
	assert.Equal(t, [2]float32{0.1, 0.4}, v[0].UV)
	// top-left samples its top-left corner
	assert.Equal(t, [2]float32{-1, 1}, v[3].Pos)
	assert.Equal(t, [2]float32{0.1, 0.2}, v[3].UV)

	b.Reset()
	assert.Zero(t, b.Quads())
}

func TestBatchCapacity(t *testing.T) {
	b := ui.NewBatch()
	for i := 0; i < ui.MaxQuads; i++ {
		require.True(t, b.Quad(mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec4{}))
	}
	assert.False(t, b.Quad(mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec4{}))
	assert.False(t, b.Text(mgl32.Vec2{}, "x", mgl32.Vec2{}, ui.NewAtlas(), mgl32.Vec4{}))
	assert.Equal(t, ui.MaxQuads, b.Quads())
}

func TestBatchText(t *testing.T) {
	a := ui.NewAtlas()
	b := ui.NewBatch()
	glyph := ui.GlyphSize(a, 700, 1300)
	assert.InDelta(t, 0.02, glyph.X(), 1e-6)
	assert.InDelta(t, 0.02, glyph.Y(), 1e-6)

	require.True(t, b.Text(mgl32.Vec2{-0.5, 0}, "ab", glyph, a, ui.TextColor))
	require.Equal(t, 2, b.Quads())
	second := b.Vertices()[4]
	assert.InDelta(t, -0.48, second.Pos[0], 1e-6)
	assert.Equal(t, [4]float32(ui.TextColor), second.Color)
}

func TestBuildPanel(t *testing.T) {
	var r, n float32 = 1, 1
	set := ui.NewSliderSet()
	require.NoError(t, set.Add(
		ui.Slider{Title: "R", Max: 2, Decimals: 3, Value: &r},
		ui.Slider{Title: "n", Min: 1, Max: 12, Value: &n},
	))
	a := ui.NewAtlas()
	b := ui.NewBatch()
	ui.BuildPanel(b, set, 1, a, 800, 600)

	// background, two bars and the characters of "R - 1.000" and "n - 1"
	require.Equal(t, 1+2+9+5, b.Quads())
	v := b.Vertices()

	bg := v[0:4]
	assert.Equal(t, [4]float32(ui.PanelColor), bg[0].Color)
	assert.InDelta(t, 0.9, bg[0].Pos[1], 1e-6)
	assert.InDelta(t, -0.35, bg[1].Pos[0], 1e-6)

	bar0 := v[4:8]
	assert.Equal(t, [4]float32(ui.BarColor), bar0[0].Color)
	// half of the range fills half of the bar
	assert.InDelta(t, -1+ui.SliderWidth/2, bar0[1].Pos[0], 1e-6)

	bar1 := v[(1+1+9)*4 : (1+1+9+1)*4]
	assert.Equal(t, [4]float32(ui.BarHoverColor), bar1[0].Color)
	assert.InDelta(t, -1, bar1[1].Pos[0], 1e-6)

	empty := ui.NewBatch()
	ui.BuildPanel(empty, ui.NewSliderSet(), -1, a, 800, 600)
	assert.Zero(t, empty.Quads())
}

func TestBuildBlit(t *testing.T) {
	b := ui.NewBatch()
	ui.BuildBlit(b)
	require.Equal(t, 1, b.Quads())
	v := b.Vertices()
	// the top-left of the window shows the top-left of the texture
	assert.Equal(t, [2]float32{-1, 1}, v[3].Pos)
	assert.Equal(t, [2]float32{0, 0}, v[3].UV)
	assert.Equal(t, [2]float32{1, -1}, v[1].Pos)
	assert.Equal(t, [2]float32{1, 1}, v[1].UV)
}
