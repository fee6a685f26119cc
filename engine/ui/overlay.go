package ui

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/qm-go/common"
)

// MaxQuads is the number of quads a Batch holds, enough for a full panel of labeled sliders.
const MaxQuads = 2048

var (
	// PanelColor fills the panel behind the bars.
	PanelColor = mgl32.Vec4{0.1, 0.1, 0.1, 0.3}
	// BarColor fills the value part of a bar.
	BarColor = mgl32.Vec4{0.3, 0.3, 0.3, 0.6}
	// BarHoverColor replaces BarColor under the cursor.
	BarHoverColor = mgl32.Vec4{0.5, 0.5, 0.5, 0.8}
	// TextColor is the label color.
	TextColor = mgl32.Vec4{0.8, 0.8, 0.8, 1}
	// LabelInset is the label's horizontal offset from the left window border.
	LabelInset float32 = 0.02
)

// Batch collects textured quads into one vertex array drawn with a single draw call.
type Batch struct {
	vertices []UIVertex
}

// NewBatch creates an empty Batch with room for MaxQuads quads.
func NewBatch() *Batch {
	return &Batch{vertices: make([]UIVertex, 0, MaxQuads*4)}
}

// Reset empties the batch and keeps its storage.
func (b *Batch) Reset() {
	b.vertices = b.vertices[:0]
}

// Quads returns the number of quads in the batch.
func (b *Batch) Quads() int {
	return len(b.vertices) / 4
}

// IndexCount returns the number of indices needed to draw the batch.
func (b *Batch) IndexCount() int {
	return b.Quads() * 6
}

// Vertices returns the batched vertices.
func (b *Batch) Vertices() []UIVertex {
	return b.vertices
}

// Bytes returns the batched vertices as GPU bytes.
func (b *Batch) Bytes() []byte {
	return common.SliceToBytes(b.vertices)
}

// Quad adds a rectangle. Texture coordinates put uvTopLeft at the top-left corner of the rectangle.
//
// Parameters:
//   - lo: bottom-left corner in normalized device coordinates
//   - hi: top-right corner in normalized device coordinates
//   - uvTopLeft, uvBottomRight: the texture rectangle
//   - color: multiplied with the sampled texel
//
// Returns:
//   - bool: false if the batch is full and the quad was dropped
func (b *Batch) Quad(lo, hi, uvTopLeft, uvBottomRight mgl32.Vec2, color mgl32.Vec4) bool {
	if b.Quads() >= MaxQuads {
		return false
	}
	c := [4]float32(color)
	b.vertices = append(b.vertices,
		UIVertex{Pos: [2]float32{lo.X(), lo.Y()}, UV: [2]float32{uvTopLeft.X(), uvBottomRight.Y()}, Color: c},
		UIVertex{Pos: [2]float32{hi.X(), lo.Y()}, UV: [2]float32{uvBottomRight.X(), uvBottomRight.Y()}, Color: c},
		UIVertex{Pos: [2]float32{hi.X(), hi.Y()}, UV: [2]float32{uvBottomRight.X(), uvTopLeft.Y()}, Color: c},
		UIVertex{Pos: [2]float32{lo.X(), hi.Y()}, UV: [2]float32{uvTopLeft.X(), uvTopLeft.Y()}, Color: c},
	)
	return true
}

// Solid adds an untextured rectangle sampled from the atlas's white cell.
func (b *Batch) Solid(lo, hi mgl32.Vec2, atlas *Atlas, color mgl32.Vec4) bool {
	white := atlas.WhiteUV()
	return b.Quad(lo, hi, white, white, color)
}

// Text adds one quad per character, left to right from origin.
//
// Parameters:
//   - origin: bottom-left corner of the first character
//   - text: the characters
//   - glyph: the size of one character cell in normalized device units
//   - atlas: the font atlas
//   - color: the text color
//
// Returns:
//   - bool: false if the batch filled up before the text ended
func (b *Batch) Text(origin mgl32.Vec2, text string, glyph mgl32.Vec2, atlas *Atlas, color mgl32.Vec4) bool {
	pos := origin
	for _, r := range text {
		uvLo, uvHi := atlas.GlyphUV(r)
		if !b.Quad(pos, pos.Add(glyph), uvLo, uvHi, color) {
			return false
		}
		pos[0] += glyph.X()
	}
	return true
}

// GlyphSize returns the size of one atlas cell in normalized device units for a framebuffer size, so that glyphs
// map one texel to one pixel.
func GlyphSize(atlas *Atlas, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	cell := atlas.CellSize()
	return mgl32.Vec2{float32(cell.X) / float32(width) * 2, float32(cell.Y) / float32(height) * 2}
}

// BuildPanel fills the batch with the slider panel: the panel background, one bar per slider filled up to its
// value, and the labels.
//
// Parameters:
//   - b: the batch to fill, reset first
//   - set: the sliders
//   - hovered: the row under the cursor, or -1
//   - atlas: the font atlas
//   - width, height: the framebuffer size in pixels
func BuildPanel(b *Batch, set *SliderSet, hovered int, atlas *Atlas, width, height int) {
	b.Reset()
	count := set.Len()
	if count == 0 {
		return
	}
	b.Solid(mgl32.Vec2{PanelLeft, Bottom(count - 1)}, mgl32.Vec2{PanelLeft + SliderWidth, PanelTop}, atlas, PanelColor)

	glyph := GlyphSize(atlas, width, height)
	for i := range set.Sliders() {
		sl := set.Slider(i)
		color := BarColor
		if i == hovered {
			color = BarHoverColor
		}
		b.Solid(mgl32.Vec2{PanelLeft, Bottom(i)}, mgl32.Vec2{PanelLeft + SliderWidth*sl.Fraction(), Top(i)}, atlas, color)

		origin := common.SnapToPixel(mgl32.Vec2{PanelLeft + LabelInset, Bottom(i)}, width, height)
		b.Text(origin, sl.Label(), glyph, atlas, TextColor)
	}
}

// BuildBlit fills the batch with one fullscreen quad that maps the whole texture onto the window.
func BuildBlit(b *Batch) {
	b.Reset()
	b.Quad(mgl32.Vec2{-1, -1}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec4{1, 1, 1, 1})
}
