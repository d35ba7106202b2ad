package camera

import (
	"math"
	"sync"

	"github.com/chewxy/math32"
	"github.com/hollis-dev/stargate/common"
)

// orbitControllerImpl is the single implementation of OrbitController.
// Maintains spherical coordinates (radius, azimuth, elevation) around a pivot
// target and recomputes the orbit position whenever any of them change.
type orbitControllerImpl struct {
	mu *sync.Mutex

	position common.Vec3
	target   common.Vec3

	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	dragSensitivity float32
	dollySpeed      float32
}

// OrbitController defines the interface for the free-look orbit controller.
// It owns no camera state of its own; the rig reads Position/Target each frame
// while free-look is active and writes them into the camera.
type OrbitController interface {
	// Position returns the current orbit position in world space.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// Target returns the pivot point the orbit revolves around.
	//
	// Returns:
	//   - common.Vec3: the pivot target
	Target() common.Vec3

	// Radius returns the current orbit radius.
	//
	// Returns:
	//   - float32: the radius
	Radius() float32

	// Seed re-initializes the spherical coordinates so that the orbit position
	// coincides exactly with the given world-space position while pivoting
	// around target. Called on every free-look entry with the camera's live
	// transform so the hand-off produces no visible snap.
	//
	// Parameters:
	//   - position: the live camera position to start orbiting from
	//   - target: the pivot point to orbit around
	Seed(position, target common.Vec3)

	// Drag applies a pointer drag delta to azimuth and elevation.
	// Elevation is clamped to the configured range.
	//
	// Parameters:
	//   - dx: horizontal pointer delta in pixels
	//   - dy: vertical pointer delta in pixels
	Drag(dx, dy float32)

	// Dolly moves the orbit position along the radius. Positive delta moves
	// toward the target. The radius is clamped to the configured range.
	//
	// Parameters:
	//   - delta: scroll delta, scaled by the dolly speed
	Dolly(delta float32)
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates a new orbit controller with sensible defaults.
// Call Seed before use so the controller starts from a real camera transform.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu: &sync.Mutex{},

		radius:    12.0,
		azimuth:   0.0,
		elevation: float32(math.Pi / 8),

		minRadius:    2.0,
		maxRadius:    60.0,
		minElevation: -float32(math.Pi/2 - 0.1),
		maxElevation: float32(math.Pi/2 - 0.1),

		dragSensitivity: 0.005,
		dollySpeed:      0.01,
	}

	for _, option := range options {
		option(oc)
	}

	oc.updatePosition()
	return oc
}

// updatePosition recomputes the orbit position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) updatePosition() {
	cosElev := math32.Cos(oc.elevation)
	sinElev := math32.Sin(oc.elevation)
	cosAzim := math32.Cos(oc.azimuth)
	sinAzim := math32.Sin(oc.azimuth)

	oc.position = oc.target.Add(common.V3(
		oc.radius*cosElev*sinAzim,
		oc.radius*sinElev,
		oc.radius*cosElev*cosAzim,
	))
}

func (oc *orbitControllerImpl) Position() common.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitControllerImpl) Target() common.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControllerImpl) Seed(position, target common.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.target = target
	offset := position.Sub(target)
	oc.radius = offset.Length()
	if oc.radius < 1e-6 {
		oc.radius = oc.minRadius
		oc.azimuth = 0
		oc.elevation = 0
		oc.updatePosition()
		return
	}

	oc.elevation = math32.Asin(common.Clamp(offset.Y/oc.radius, -1, 1))
	oc.azimuth = math32.Atan2(offset.X, offset.Z)

	// Seeding must reproduce the incoming position exactly, so the radius and
	// elevation clamps are deliberately not applied here. They take effect on
	// the next Drag/Dolly.
	oc.position = position
}

func (oc *orbitControllerImpl) Drag(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.azimuth -= dx * oc.dragSensitivity
	oc.elevation += dy * oc.dragSensitivity
	if oc.elevation < oc.minElevation {
		oc.elevation = oc.minElevation
	}
	if oc.elevation > oc.maxElevation {
		oc.elevation = oc.maxElevation
	}
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Dolly(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	oc.radius -= delta * oc.dollySpeed
	if oc.radius < oc.minRadius {
		oc.radius = oc.minRadius
	}
	if oc.radius > oc.maxRadius {
		oc.radius = oc.maxRadius
	}
	oc.updatePosition()
}
