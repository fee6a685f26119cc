package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// turntable is the implementation of the Turntable interface.
type turntable struct {
	mu *sync.Mutex

	// rotation holds the horizontal angle in X and the vertical angle in Y, in radians.
	rotation mgl32.Vec2
	// smoothed is the exponentially smoothed drag delta of the previous update.
	smoothed mgl32.Vec2
	// distance is the distance from the orbit center to the camera.
	distance float32

	// smoothing is the weight of the previous smoothed delta, the new delta gets 1 - smoothing.
	smoothing float32
	// sensitivity scales the smoothed delta into radians.
	sensitivity float32
	// maxPitch bounds the vertical angle to [-maxPitch, maxPitch].
	maxPitch float32
}

// Turntable is a camera that orbits the origin. Dragging turns it around the vertical axis and tilts it up and
// down, and it always looks at the origin from its distance.
type Turntable interface {
	// Drag applies one frame of pointer movement while the camera is being dragged.
	//
	// Parameters:
	//   - delta: the pointer movement in normalized device units
	Drag(delta mgl32.Vec2)

	// Rotation returns the horizontal and vertical angles in radians.
	Rotation() mgl32.Vec2

	// SetRotation replaces the angles, clamping the vertical one.
	SetRotation(rotation mgl32.Vec2)

	// Distance returns the distance from the origin.
	Distance() float32

	// SetDistance sets the distance from the origin.
	SetDistance(distance float32)

	// Transform returns the camera-to-world matrix: the camera sits at its distance along the rotated +Z axis and
	// looks along the rotated −Z axis towards the origin.
	//
	// Returns:
	//   - mgl32.Mat4: rotateY(−yaw) · rotateX(pitch) · translate(0, 0, distance)
	Transform() mgl32.Mat4
}

var _ Turntable = &turntable{}

// NewTurntable creates a Turntable at distance 2 with half-and-half smoothing, a sensitivity of 2 and the
// vertical angle limited to a quarter turn.
//
// Parameters:
//   - options: functional options to configure the turntable
//
// Returns:
//   - Turntable: the turntable
func NewTurntable(options ...TurntableOption) Turntable {
	t := &turntable{
		mu:          &sync.Mutex{},
		distance:    2,
		smoothing:   0.5,
		sensitivity: 2,
		maxPitch:    math32.Pi / 2,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *turntable) Drag(delta mgl32.Vec2) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.smoothed = t.smoothed.Mul(t.smoothing).Add(delta.Mul(1 - t.smoothing))
	t.rotation = t.rotation.Add(t.smoothed.Mul(t.sensitivity))
	t.rotation[1] = mgl32.Clamp(t.rotation[1], -t.maxPitch, t.maxPitch)
}

func (t *turntable) Rotation() mgl32.Vec2 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rotation
}

func (t *turntable) SetRotation(rotation mgl32.Vec2) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rotation[1] = mgl32.Clamp(rotation[1], -t.maxPitch, t.maxPitch)
	t.rotation = rotation
}

func (t *turntable) Distance() float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.distance
}

func (t *turntable) SetDistance(distance float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.distance = distance
}

func (t *turntable) Transform() mgl32.Mat4 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return mgl32.HomogRotate3DY(-t.rotation.X()).
		Mul4(mgl32.HomogRotate3DX(t.rotation.Y())).
		Mul4(mgl32.Translate3D(0, 0, t.distance))
}
