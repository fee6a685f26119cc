package camera

// TurntableOption is a functional option for configuring a Turntable.
type TurntableOption func(*turntable)

// WithDistance sets the initial distance from the origin.
//
// Parameters:
//   - distance: the camera distance
//
// Returns:
//   - TurntableOption: functional option to set the distance
func WithDistance(distance float32) TurntableOption {
	return func(t *turntable) {
		t.distance = distance
	}
}

// WithSmoothing sets the weight of the previous drag delta in the exponential smoothing, in [0, 1).
//
// Parameters:
//   - smoothing: 0 disables smoothing
//
// Returns:
//   - TurntableOption: functional option to set the smoothing
func WithSmoothing(smoothing float32) TurntableOption {
	return func(t *turntable) {
		t.smoothing = smoothing
	}
}

// WithSensitivity sets the radians turned per normalized device unit of smoothed drag.
func WithSensitivity(sensitivity float32) TurntableOption {
	return func(t *turntable) {
		t.sensitivity = sensitivity
	}
}

// WithMaxPitch sets the limit of the vertical angle in radians.
func WithMaxPitch(maxPitch float32) TurntableOption {
	return func(t *turntable) {
		t.maxPitch = maxPitch
	}
}
