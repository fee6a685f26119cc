package scene

import (
	"github.com/Carmen-Shannon/qm-go/common"
	"github.com/Carmen-Shannon/qm-go/engine/volume"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithSampleCount sets the initial number of raymarch samples, clamped to the Samples slider range.
//
// Parameters:
//   - samples: samples per ray
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSampleCount(samples int) SceneBuilderOption {
	return func(s *scene) {
		s.samples = common.Clamp(float32(samples), 5, 150)
	}
}

// WithResolution sets the initial volume target size as a fraction of the window, clamped to [0.01, 1].
//
// Parameters:
//   - resolution: the resolution multiplier
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithResolution(resolution float32) SceneBuilderOption {
	return func(s *scene) {
		s.resolution = common.Clamp(resolution, 0.01, 1)
	}
}

// WithDistance sets the initial camera distance, clamped to [0.2, 150].
//
// Parameters:
//   - distance: distance from the origin
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDistance(distance float32) SceneBuilderOption {
	return func(s *scene) {
		s.distance = common.Clamp(distance, 0.2, 150)
	}
}

// WithWaveCount sets the number of waves created with the scene, clamped to [0, volume.MaxWaves].
//
// Parameters:
//   - count: the initial wave count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWaveCount(count int) SceneBuilderOption {
	return func(s *scene) {
		s.initialWaves = common.Clamp(count, 0, volume.MaxWaves)
	}
}

// WithColor sets the initial emission color.
func WithColor(r, g, b float32) SceneBuilderOption {
	return func(s *scene) {
		s.red, s.green, s.blue = r, g, b
	}
}

// WithFiltering sets whether the volume target starts with linear filtering.
func WithFiltering(linear bool) SceneBuilderOption {
	return func(s *scene) {
		s.filtering = 0
		if linear {
			s.filtering = 1
		}
	}
}

// WithTimeEvolution makes every wave's phase advance with its energy over the phase clock, so superpositions of
// different n oscillate.
func WithTimeEvolution(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.timeEvolution = enabled
	}
}
