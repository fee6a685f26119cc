// Package ui draws the slider panel in the top-left corner of the window: a stack of labeled horizontal bars, each
// bound to a float parameter and dragged with the left mouse button.
package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/qm-go/common"
)

const (
	// SliderHeight is the height of one slider row in normalized device units.
	SliderHeight float32 = 0.05
	// SliderWidth is the width of the slider panel in normalized device units.
	SliderWidth float32 = 0.65
	// PanelLeft is the left edge of the panel, the left window border.
	PanelLeft float32 = -1
	// PanelTop is the top edge of the panel, the top window border.
	PanelTop float32 = 1
)

// Slider binds a float parameter to a bar in the panel.
type Slider struct {
	// Title is shown in front of the value.
	Title string
	// Min and Max bound the value.
	Min, Max float32
	// Value points at the bound parameter.
	Value *float32
	// Decimals is the number of decimal places kept and shown.
	Decimals int
	// Recompile marks sliders whose changes invalidate the compiled volume program.
	Recompile bool
}

// Top returns the top edge of the slider row at index.
func Top(index int) float32 {
	return PanelTop - float32(index)*SliderHeight
}

// Bottom returns the bottom edge of the slider row at index.
func Bottom(index int) float32 {
	return Top(index + 1)
}

// Contains reports whether p lies inside the row at index. The left edge is inclusive and the right edge is
// exclusive; the top and bottom edges are both exclusive.
//
// Parameters:
//   - index: the row index
//   - p: a point in normalized device coordinates
//
// Returns:
//   - bool: true if the point is on the row
func Contains(index int, p mgl32.Vec2) bool {
	return p.X() >= PanelLeft && p.X() < PanelLeft+SliderWidth &&
		p.Y() > Bottom(index) && p.Y() < Top(index)
}

// Fraction returns how far the value is between Min and Max, at most 1.
func (s *Slider) Fraction() float32 {
	if s.Max == s.Min {
		return 0
	}
	return min((*s.Value-s.Min)/(s.Max-s.Min), 1)
}

// CoordToValue maps a horizontal position on the panel to a slider value, clamped to [Min, Max] and rounded to
// Decimals places.
//
// Parameters:
//   - x: horizontal position in normalized device coordinates
//
// Returns:
//   - float32: the value for that position
func (s *Slider) CoordToValue(x float32) float32 {
	v := (1+x)/SliderWidth*(s.Max-s.Min) + s.Min
	return common.Round(common.Clamp(v, s.Min, s.Max), s.Decimals)
}

// Set stores v into the bound parameter.
//
// Returns:
//   - bool: true if the stored value changed
func (s *Slider) Set(v float32) bool {
	if *s.Value == v {
		return false
	}
	*s.Value = v
	return true
}

// Label returns the text drawn on the bar.
func (s *Slider) Label() string {
	return fmt.Sprintf("%s - %.*f", s.Title, s.Decimals, *s.Value)
}
