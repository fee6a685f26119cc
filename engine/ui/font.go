package ui

import (
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Carmen-Shannon/qm-go/common"
)

const (
	// firstGlyph and lastGlyph bound the printable ASCII range baked into the atlas.
	firstGlyph = ' '
	lastGlyph  = '~'
	// atlasColumns is the number of glyph cells per atlas row.
	atlasColumns = 16
	// whiteCell is the cell after the last glyph, filled with opaque white for untextured quads.
	whiteCell = lastGlyph - firstGlyph + 1
)

// Atlas is a bitmap font baked into an RGBA texture: white texels whose alpha is the glyph coverage.
type Atlas struct {
	face    *basicfont.Face
	cell    image.Point
	img     *image.RGBA
	columns int
}

// NewAtlas bakes the printable ASCII range of the 7x13 basic font into a 16 column grid, followed by one opaque
// white cell.
//
// Returns:
//   - *Atlas: the baked atlas
func NewAtlas() *Atlas {
	face := basicfont.Face7x13
	cell := image.Pt(face.Advance, face.Height)
	cells := int(whiteCell) + 1
	rows := (cells + atlasColumns - 1) / atlasColumns

	img := image.NewRGBA(image.Rect(0, 0, atlasColumns*cell.X, rows*cell.Y))
	a := &Atlas{face: face, cell: cell, img: img, columns: atlasColumns}

	drawer := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for c := firstGlyph; c <= lastGlyph; c++ {
		origin := a.cellOrigin(int(c - firstGlyph))
		drawer.Dot = fixed.P(origin.X, origin.Y+face.Ascent)
		drawer.DrawString(string(c))
	}
	white := a.cellOrigin(whiteCell)
	draw.Draw(img, image.Rectangle{Min: white, Max: white.Add(cell)}, image.White, image.Point{}, draw.Src)

	// Un-premultiply: every texel is white and only alpha carries coverage.
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = 0xff, 0xff, 0xff
	}
	return a
}

// cellOrigin returns the top-left pixel of the cell at index.
func (a *Atlas) cellOrigin(index int) image.Point {
	return image.Pt(index%a.columns*a.cell.X, index/a.columns*a.cell.Y)
}

// CellSize returns the glyph cell size in pixels.
func (a *Atlas) CellSize() image.Point {
	return a.cell
}

// Bounds returns the atlas size in pixels.
func (a *Atlas) Bounds() image.Rectangle {
	return a.img.Bounds()
}

// Alpha returns the coverage of the atlas texel at x, y.
func (a *Atlas) Alpha(x, y int) uint8 {
	return a.img.RGBAAt(x, y).A
}

// GlyphUV returns the texture coordinates of a character's cell, top-left and bottom-right. Characters outside
// the printable range map to '?'.
//
// Parameters:
//   - r: the character
//
// Returns:
//   - mgl32.Vec2: the top-left texture coordinate
//   - mgl32.Vec2: the bottom-right texture coordinate
func (a *Atlas) GlyphUV(r rune) (mgl32.Vec2, mgl32.Vec2) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	return a.cellUV(int(r - firstGlyph))
}

// WhiteUV returns a texture coordinate inside the opaque white cell.
func (a *Atlas) WhiteUV() mgl32.Vec2 {
	lo, hi := a.cellUV(whiteCell)
	return lo.Add(hi).Mul(0.5)
}

func (a *Atlas) cellUV(index int) (mgl32.Vec2, mgl32.Vec2) {
	size := a.img.Bounds().Size()
	o := a.cellOrigin(index)
	lo := mgl32.Vec2{float32(o.X) / float32(size.X), float32(o.Y) / float32(size.Y)}
	hi := mgl32.Vec2{float32(o.X+a.cell.X) / float32(size.X), float32(o.Y+a.cell.Y) / float32(size.Y)}
	return lo, hi
}

// StagingData returns the atlas pixels ready for upload.
func (a *Atlas) StagingData() common.TextureStagingData {
	size := a.img.Bounds().Size()
	return common.TextureStagingData{
		Pixels: a.img.Pix,
		Width:  uint32(size.X),
		Height: uint32(size.Y),
	}
}
