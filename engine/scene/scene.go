// Package scene holds the visualizer's program state: the waves, the render parameters bound to the slider panel,
// the turntable camera and the clocks. It applies one frame of input at a time and reports whether the volume
// program has to be rebuilt.
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/camera"
	"github.com/Carmen-Shannon/qm-go/engine/ui"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

// ErrWaveCapacity is returned by AddWave when the scene already holds volume.MaxWaves waves.
var ErrWaveCapacity = errors.New("wave capacity exceeded")

// GlobalSliders is the number of panel rows that are not tied to a wave.
const GlobalSliders = 11

// WaveSliders is the number of panel rows added per wave.
const WaveSliders = 6

// FrameUpdate reports what one frame of input did to the scene.
type FrameUpdate struct {
	// Hovered is the slider row under the cursor, or -1.
	Hovered int
	// ActiveSlider is the slider row being dragged, or -1.
	ActiveSlider int
	// Dragging is true if the turntable was dragged this frame.
	Dragging bool
	// Recompile is true if the volume program is out of date.
	Recompile bool
}

// Scene is the mutable state of the visualizer. It is not safe for concurrent use apart from the read accessors,
// which take a snapshot under the scene's lock.
type Scene interface {
	// AddWave appends a wave with n = 1 and its six sliders. Only the first wave starts with a non-zero
	// amplitude.
	//
	// Returns:
	//   - error: ErrWaveCapacity when volume.MaxWaves waves exist, in which case nothing changes
	AddWave() error

	// WaveCount returns the number of waves.
	WaveCount() int

	// Waves returns a copy of the waves.
	Waves() []volume.Wave

	// Params returns the compile-time parameters of the volume program derived from the slider values.
	Params() volume.Params

	// Sliders returns the slider panel.
	Sliders() *ui.SliderSet

	// Camera returns the turntable.
	Camera() camera.Turntable

	// Update applies one frame: advances the clocks, runs the slider panel, drags the turntable when no slider
	// owns the pointer and collects the recompile flag.
	//
	// Parameters:
	//   - in: the pointer snapshot for this frame
	//   - dt: seconds since the previous frame
	//
	// Returns:
	//   - FrameUpdate: hover, drag and recompile state for drawing
	Update(in common.Input, dt float32) FrameUpdate

	// Invalidate marks the volume program out of date so the next Update requests a rebuild.
	Invalidate()

	// Uniforms returns the per-frame uniform values of the volume program.
	Uniforms() volume.Uniforms

	// TargetSize returns the volume target size for a framebuffer size.
	TargetSize(width, height int) (int, int)

	// Filtering reports whether the volume target is sampled with linear filtering.
	Filtering() bool

	// Time returns the seconds since the scene started.
	Time() float32

	// Phase returns the animation phase, which runs with time but can be scrubbed from the panel.
	Phase() float32

	// ResetCamera puts the turntable back at its initial angles.
	ResetCamera()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	waves     [volume.MaxWaves]volume.Wave
	waveCount int

	// Slider-bound values. Integers and flags are stored as floats because sliders bind float fields.
	time         float32
	phase        float32
	samples      float32
	resolution   float32
	filtering    float32
	red          float32
	green        float32
	blue         float32
	complexColor float32
	absorption   float32
	cutoff       float32
	distance     float32

	timeEvolution bool
	initialWaves  int

	sliders *ui.SliderSet
	cam     camera.Turntable
	// dirty is set by changes that outdate the program outside the slider panel.
	dirty bool
}

var _ Scene = &scene{}

// NewScene creates a scene with the default parameters: 40 samples, half resolution, an orange-ish color, the
// camera at distance 2 and two waves, the first the 1s ground state. The first Update always requests a build.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the scene
//   - error: an error if the initial waves do not fit the slider panel
func NewScene(options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		mu:           &sync.Mutex{},
		samples:      40,
		resolution:   0.5,
		red:          1,
		green:        0.6,
		blue:         0.4,
		distance:     2,
		initialWaves: 2,
		sliders:      ui.NewSliderSet(),
		dirty:        true,
	}
	for _, option := range options {
		option(s)
	}
	s.cam = camera.NewTurntable(camera.WithDistance(s.distance))

	if err := s.sliders.Add(
		ui.Slider{Title: "Time", Min: 0, Max: 5, Value: &s.phase, Decimals: 3},
		ui.Slider{Title: "Samples", Min: 5, Max: 150, Value: &s.samples, Decimals: 0, Recompile: true},
		ui.Slider{Title: "Resolution", Min: 0.01, Max: 1, Value: &s.resolution, Decimals: 2},
		ui.Slider{Title: "Filtering", Min: 0, Max: 1, Value: &s.filtering, Decimals: 0},
		ui.Slider{Title: "R", Min: 0, Max: 2, Value: &s.red, Decimals: 3},
		ui.Slider{Title: "G", Min: 0, Max: 2, Value: &s.green, Decimals: 3},
		ui.Slider{Title: "B", Min: 0, Max: 2, Value: &s.blue, Decimals: 3},
		ui.Slider{Title: "Complex color", Min: 0, Max: 1, Value: &s.complexColor, Decimals: 0, Recompile: true},
		ui.Slider{Title: "Absorption", Min: 0, Max: 1, Value: &s.absorption, Decimals: 3, Recompile: true},
		ui.Slider{Title: "Cutoff", Min: 0, Max: 0.15, Value: &s.cutoff, Decimals: 4, Recompile: true},
		ui.Slider{Title: "Distance", Min: 0.2, Max: 150, Value: &s.distance, Decimals: 4},
	); err != nil {
		return nil, err
	}

	for i := 0; i < s.initialWaves; i++ {
		if err := s.AddWave(); err != nil {
			return nil, fmt.Errorf("initial wave %d: %w", i, err)
		}
	}
	return s, nil
}

func (s *scene) AddWave() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waveCount >= volume.MaxWaves {
		return fmt.Errorf("adding wave %d: %w", s.waveCount+1, ErrWaveCapacity)
	}

	w := &s.waves[s.waveCount]
	*w = volume.Wave{N: 1}
	if s.waveCount == 0 {
		w.Amplitude = 1
	}
	if err := s.sliders.Add(
		ui.Slider{Title: "Amplitude", Min: 0, Max: 2, Value: &w.Amplitude, Decimals: 3, Recompile: true},
		ui.Slider{Title: "Complex phase", Min: 0, Max: 2 * math32.Pi, Value: &w.Phase, Decimals: 3, Recompile: true},
		ui.Slider{Title: "n", Min: 1, Max: 12, Value: &w.N, Decimals: 0, Recompile: true},
		ui.Slider{Title: "l", Min: 0, Max: 11, Value: &w.L, Decimals: 0, Recompile: true},
		ui.Slider{Title: "m", Min: -11, Max: 11, Value: &w.M, Decimals: 0, Recompile: true},
		ui.Slider{Title: "translation", Min: -5, Max: 5, Value: &w.Translation, Decimals: 3, Recompile: true},
	); err != nil {
		*w = volume.Wave{}
		return err
	}
	s.waveCount++
	s.dirty = true
	return nil
}

func (s *scene) WaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waveCount
}

func (s *scene) Waves() []volume.Wave {
	s.mu.Lock()
	defer s.mu.Unlock()
	waves := make([]volume.Wave, s.waveCount)
	copy(waves, s.waves[:s.waveCount])
	return waves
}

func (s *scene) Params() volume.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return volume.Params{
		SampleCount:   common.RoundInt(s.samples),
		ComplexColor:  s.complexColor > 0.5,
		Absorption:    float64(s.absorption),
		Cutoff:        float64(s.cutoff),
		TimeEvolution: s.timeEvolution,
	}
}

func (s *scene) Sliders() *ui.SliderSet {
	return s.sliders
}

func (s *scene) Camera() camera.Turntable {
	return s.cam
}

func (s *scene) Update(in common.Input, dt float32) FrameUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.time += dt
	s.phase += dt

	su := s.sliders.Update(in.Cursor, in.Anchor, in.LeftDown)
	update := FrameUpdate{
		Hovered:      su.Hovered,
		ActiveSlider: su.Active,
		Recompile:    su.Recompile || s.dirty,
	}
	if su.Active < 0 && in.LeftDown {
		s.cam.Drag(in.Delta)
		update.Dragging = true
	}
	s.cam.SetDistance(s.distance)
	s.dirty = false
	return update
}

func (s *scene) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = true
}

func (s *scene) Uniforms() volume.Uniforms {
	s.mu.Lock()
	defer s.mu.Unlock()
	return volume.Uniforms{
		Transform: s.cam.Transform(),
		Color:     mgl32.Vec3{s.red, s.green, s.blue},
		Time:      s.time,
		Phase:     s.phase,
		RayLength: s.distance * 2,
	}
}

func (s *scene) TargetSize(width, height int) (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return volume.TargetSize(width, height, s.resolution)
}

func (s *scene) Filtering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filtering > 0.5
}

func (s *scene) Time() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

func (s *scene) Phase() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *scene) ResetCamera() {
	s.cam.SetRotation(mgl32.Vec2{})
}
