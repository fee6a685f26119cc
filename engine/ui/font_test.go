package ui_test

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/qm-go/engine/ui"
)

func TestAtlasLayout(t *testing.T) {
	a := ui.NewAtlas()
	assert.Equal(t, image.Pt(7, 13), a.CellSize())
	// 95 glyphs plus the white cell in rows of 16
	assert.Equal(t, image.Rect(0, 0, 112, 78), a.Bounds())

	staging := a.StagingData()
	assert.Equal(t, uint32(112), staging.Width)
	assert.Equal(t, uint32(78), staging.Height)
	assert.Len(t, staging.Pixels, 112*78*4)
}

func TestAtlasGlyphs(t *testing.T) {
	a := ui.NewAtlas()

	lo, hi := a.GlyphUV(' ')
	assert.Equal(t, mgl32.Vec2{0, 0}, lo)
	assert.InDelta(t, 7.0/112, hi.X(), 1e-6)
	assert.InDelta(t, 13.0/78, hi.Y(), 1e-6)

	// 'A' is cell 33: column 1, row 2
	lo, _ = a.GlyphUV('A')
	assert.InDelta(t, 7.0/112, lo.X(), 1e-6)
	assert.InDelta(t, 26.0/78, lo.Y(), 1e-6)

	covered := 0
	for y := 26; y < 39; y++ {
		for x := 7; x < 14; x++ {
			if a.Alpha(x, y) > 0 {
				covered++
			}
		}
	}
	assert.Positive(t, covered)

	for y := 0; y < 13; y++ {
		for x := 0; x < 7; x++ {
			assert.Zero(t, a.Alpha(x, y), "space has no coverage")
		}
	}

	qlo, qhi := a.GlyphUV('?')
	ulo, uhi := a.GlyphUV('é')
	assert.Equal(t, qlo, ulo)
	assert.Equal(t, qhi, uhi)
}

func TestAtlasWhiteCell(t *testing.T) {
	a := ui.NewAtlas()
	uv := a.WhiteUV()
	assert.InDelta(t, 108.5/112, uv.X(), 1e-6)
	assert.InDelta(t, 71.5/78, uv.Y(), 1e-6)
	for y := 65; y < 78; y++ {
		for x := 105; x < 112; x++ {
			assert.Equal(t, uint8(0xff), a.Alpha(x, y))
		}
	}

	// every texel is white so the vertex color alone decides the tint
	pix := a.StagingData().Pixels
	for i := 0; i < len(pix); i += 4 {
		assert.Equal(t, []byte{0xff, 0xff, 0xff}, pix[i:i+3])
	}
}
