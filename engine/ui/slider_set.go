package ui

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxSliders is the number of rows the panel holds.
const MaxSliders = 32

// ErrSliderCapacity is returned when adding sliders would exceed MaxSliders.
var ErrSliderCapacity = errors.New("slider capacity exceeded")

// SliderSet is the ordered list of sliders shown in the panel, top to bottom.
type SliderSet struct {
	sliders []Slider
	// active is the row being dragged, or -1.
	active int
}

// SliderUpdate reports what one frame of input did to the panel.
type SliderUpdate struct {
	// Hovered is the row under the cursor, or -1.
	Hovered int
	// Active is the row being dragged, or -1.
	Active int
	// Changed is true if any bound value changed.
	Changed bool
	// Recompile is true if a changed slider has its Recompile flag set.
	Recompile bool
}

// NewSliderSet creates an empty SliderSet.
func NewSliderSet() *SliderSet {
	return &SliderSet{
		sliders: make([]Slider, 0, MaxSliders),
		active:  -1,
	}
}

// Add appends sliders to the set. Either all of them are added or, when they would not fit, none.
//
// Parameters:
//   - sliders: the sliders to append
//
// Returns:
//   - error: ErrSliderCapacity if the set would exceed MaxSliders, or an error for a slider without a value
func (s *SliderSet) Add(sliders ...Slider) error {
	if len(s.sliders)+len(sliders) > MaxSliders {
		return fmt.Errorf("adding %d sliders to %d: %w", len(sliders), len(s.sliders), ErrSliderCapacity)
	}
	for _, sl := range sliders {
		if sl.Value == nil {
			return fmt.Errorf("slider %q has no bound value", sl.Title)
		}
	}
	s.sliders = append(s.sliders, sliders...)
	return nil
}

// Len returns the number of sliders.
func (s *SliderSet) Len() int {
	return len(s.sliders)
}

// Slider returns the slider at index.
func (s *SliderSet) Slider(index int) *Slider {
	return &s.sliders[index]
}

// Sliders returns the sliders in row order.
func (s *SliderSet) Sliders() []Slider {
	return s.sliders
}

// Active returns the row being dragged, or -1.
func (s *SliderSet) Active() int {
	return s.active
}

// Update applies one frame of pointer input. A drag belongs to the row under the point where the button was
// pressed; while the button is held that row follows the cursor horizontally.
//
// Parameters:
//   - cursor: the current pointer position
//   - anchor: the pointer position at the last press
//   - leftDown: whether the left button is held
//
// Returns:
//   - SliderUpdate: hover, drag and change flags for the frame
func (s *SliderSet) Update(cursor, anchor mgl32.Vec2, leftDown bool) SliderUpdate {
	update := SliderUpdate{Hovered: -1, Active: -1}
	s.active = -1
	for i := range s.sliders {
		if Contains(i, cursor) {
			update.Hovered = i
		}
		if !leftDown || !Contains(i, anchor) {
			continue
		}
		s.active = i
		sl := &s.sliders[i]
		if sl.Set(sl.CoordToValue(cursor.X())) {
			update.Changed = true
			update.Recompile = update.Recompile || sl.Recompile
		}
	}
	update.Active = s.active
	return update
}
