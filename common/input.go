package common

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Input is a per-frame snapshot of the pointer state in normalized device coordinates, x to the right and y up,
// both in [-1, 1] over the window.
type Input struct {
	// Cursor is the current pointer position.
	Cursor mgl32.Vec2
	// Anchor is the pointer position when the left button was last pressed.
	Anchor mgl32.Vec2
	// Delta is the pointer movement since the previous snapshot.
	Delta mgl32.Vec2
	// LeftDown reports whether the left button is held.
	LeftDown bool
	// Width and Height are the framebuffer size in pixels.
	Width  int
	Height int
}

// PixelToNDC converts a window position in pixels (origin top-left, y down) to normalized device coordinates.
//
// Parameters:
//   - x, y: the position in pixels
//   - width, height: the window size in pixels
//
// Returns:
//   - mgl32.Vec2: the position with x in [-1, 1] left to right and y in [-1, 1] bottom to top
func PixelToNDC(x, y float64, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		float32(x/float64(width))*2 - 1,
		1 - float32(y/float64(height))*2,
	}
}

// SnapToPixel moves an NDC position to the nearest pixel corner so glyphs sample the font atlas one texel per pixel.
//
// Parameters:
//   - p: the position in normalized device coordinates
//   - width, height: the framebuffer size in pixels
//
// Returns:
//   - mgl32.Vec2: the snapped position
func SnapToPixel(p mgl32.Vec2, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return p
	}
	w, h := float32(width), float32(height)
	px := math32.Round((p.X() + 1) / 2 * w)
	py := math32.Round((p.Y() + 1) / 2 * h)
	return mgl32.Vec2{px/w*2 - 1, py/h*2 - 1}
}

// InputTracker accumulates pointer events between frames and produces Input snapshots. Pointer events arrive in
// window pixels; the snapshot reports them in normalized device coordinates.
type InputTracker struct {
	mu *sync.Mutex

	cursor   mgl32.Vec2
	anchor   mgl32.Vec2
	last     mgl32.Vec2
	leftDown bool
}

// NewInputTracker creates an InputTracker with the pointer at the window center.
func NewInputTracker() *InputTracker {
	return &InputTracker{mu: &sync.Mutex{}}
}

// MoveTo records a pointer position.
//
// Parameters:
//   - x, y: the pointer position in window pixels
//   - width, height: the window size in the same units as x and y
func (t *InputTracker) MoveTo(x, y float64, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor = PixelToNDC(x, y, width, height)
}

// Press records a left button press at the current pointer position, which becomes the anchor.
func (t *InputTracker) Press() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leftDown = true
	t.anchor = t.cursor
}

// Release records a left button release.
func (t *InputTracker) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leftDown = false
}

// Snapshot returns the pointer state for one frame. Delta is the movement since the previous snapshot.
//
// Parameters:
//   - width, height: the framebuffer size to report
//
// Returns:
//   - Input: the snapshot
func (t *InputTracker) Snapshot(width, height int) Input {
	t.mu.Lock()
	defer t.mu.Unlock()
	in := Input{
		Cursor:   t.cursor,
		Anchor:   t.anchor,
		Delta:    t.cursor.Sub(t.last),
		LeftDown: t.leftDown,
		Width:    width,
		Height:   height,
	}
	t.last = t.cursor
	return in
}
