package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/store"
)

// rigPhase is the internal tagged state of the camera rig. The two returning
// phases are sub-states of Default from the outside; they exist so the rig can
// detect arrival and snap exactly onto the base pose instead of drifting
// asymptotically forever.
type rigPhase int

const (
	phaseDefault rigPhase = iota
	phaseFreeLook
	phaseReturning
	phasePillarFocus
	phaseFocusReturn
)

// rigImpl is the implementation of the Rig interface.
type rigImpl struct {
	mu *sync.Mutex

	cam   Camera
	orbit OrbitController

	// base is captured once from the authored scene camera. All per-frame
	// logic no-ops while it is nil.
	base      *Pose
	focusPose map[store.PillarSide]Pose

	phase     rigPhase
	focusSide store.PillarSide

	zoom     float32
	pointerX float32
	pointerY float32

	shakeAmplitude float32
	shakePhase     float32

	orbitDirty bool

	wheelSensitivity  float32
	parallaxAmplitude float32
	easeLambda        float32
	returnLambda      float32
	returnEpsilon     float32
	focusEpsilon      float32
	fovInScale        float32
	fovOutScale       float32
}

// Rig defines the interface for the camera state machine. It owns the camera's
// position, orientation and field of view, converging them each frame toward
// targets derived from the current mode, pointer position and zoom level.
//
// All input methods are cheap writes; the heavy lifting happens in Update,
// which is called once per rendered frame.
type Rig interface {
	// CaptureBase records the home pose the rig returns to in Default mode.
	// Called once at scene load with the authored camera pose. The camera is
	// snapped onto the pose immediately. Until this is called the rig is
	// inert and Update reports settled.
	//
	// Parameters:
	//   - pose: the authored camera pose
	CaptureBase(pose Pose)

	// SetFocusPose registers the fixed pose used when focusing a pillar.
	// Focus requests for sides without a registered pose are ignored.
	//
	// Parameters:
	//   - side: which pillar the pose belongs to
	//   - pose: the focus pose
	SetFocusPose(side store.PillarSide, pose Pose)

	// Mode returns the externally visible camera mode. The returning
	// sub-states report as Default.
	//
	// Returns:
	//   - store.CameraMode: the current mode
	Mode() store.CameraMode

	// Returning reports whether a return-to-base transition is in flight.
	//
	// Returns:
	//   - bool: true while easing back toward the base pose
	Returning() bool

	// Zoom returns the current zoom level in [-1, 1].
	//
	// Returns:
	//   - float32: the zoom level
	Zoom() float32

	// PointerMoved updates the pointer position used for the Default-mode
	// parallax offset.
	//
	// Parameters:
	//   - x: pointer x in normalized device coordinates [-1, 1]
	//   - y: pointer y in normalized device coordinates [-1, 1], +Y up
	PointerMoved(x, y float32)

	// Drag applies a pointer drag to the orbit controller. Only has an effect
	// in FreeLook mode.
	//
	// Parameters:
	//   - dx: horizontal pointer delta in pixels
	//   - dy: vertical pointer delta in pixels
	Drag(dx, dy float32)

	// Wheel applies a scroll delta. In Default mode it adjusts the zoom level,
	// in FreeLook it dollies the orbit, and while a pillar is focused it is
	// suppressed entirely.
	//
	// Parameters:
	//   - delta: raw scroll delta (positive = scroll up)
	Wheel(delta float32)

	// EnterFreeLook hands the camera to the orbit controller, seeding it from
	// the camera's live transform. Entering while a return transition is in
	// flight re-seeds from the live transform rather than waiting for the
	// return to finish.
	EnterFreeLook()

	// ExitFreeLook leaves FreeLook and starts the smooth return to the base
	// pose. No-op unless currently in FreeLook.
	ExitFreeLook()

	// FocusPillar eases the camera toward the registered focus pose for side.
	// Ignored if no pose is registered for that side. Parallax and zoom input
	// are suppressed for the duration.
	//
	// Parameters:
	//   - side: which pillar to focus
	FocusPillar(side store.PillarSide)

	// ClearFocus leaves PillarFocus and starts the return to the base pose.
	// No-op unless currently focused.
	ClearFocus()

	// SetShake sets the camera shake amplitude. The shake decays on its own;
	// callers re-trigger it per flash rather than managing decay themselves.
	//
	// Parameters:
	//   - amplitude: world-space jitter amplitude
	SetShake(amplitude float32)

	// Update advances the rig by dt seconds, writing the resulting pose and
	// field of view into the camera.
	//
	// Parameters:
	//   - dt: frame delta time in seconds
	//
	// Returns:
	//   - bool: true if the rig has settled and needs no further frames
	Update(dt float32) bool
}

var _ Rig = &rigImpl{}

// NewRig creates a camera rig driving the given camera. The rig starts in
// Default mode with no base pose; call CaptureBase once the scene is loaded.
//
// Parameters:
//   - cam: the camera to drive (must not be nil)
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(cam Camera, options ...RigBuilderOption) Rig {
	if cam == nil {
		panic("camera: NewRig requires a non-nil camera")
	}
	r := &rigImpl{
		mu:        &sync.Mutex{},
		cam:       cam,
		orbit:     NewOrbitController(),
		focusPose: make(map[store.PillarSide]Pose),

		wheelSensitivity:  0.0015,
		parallaxAmplitude: 0.035,
		easeLambda:        3.0,
		returnLambda:      3.0,
		returnEpsilon:     0.001,
		focusEpsilon:      0.01,
		fovInScale:        0.55,
		fovOutScale:       1.25,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *rigImpl) CaptureBase(pose Pose) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := pose
	p.Orientation = p.Orientation.Normalized()
	r.base = &p
	r.cam.SetPose(p.Position, p.Orientation)
	r.cam.SetFov(p.Fov)
}

func (r *rigImpl) SetFocusPose(side store.PillarSide, pose Pose) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pose.Orientation = pose.Orientation.Normalized()
	r.focusPose[side] = pose
}

func (r *rigImpl) Mode() store.CameraMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.phase {
	case phaseFreeLook:
		return store.ModeFreeLook
	case phasePillarFocus:
		return store.ModePillarFocus
	default:
		return store.ModeDefault
	}
}

func (r *rigImpl) Returning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == phaseReturning || r.phase == phaseFocusReturn
}

func (r *rigImpl) Zoom() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zoom
}

func (r *rigImpl) PointerMoved(x, y float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pointerX = x
	r.pointerY = y
}

func (r *rigImpl) Drag(dx, dy float32) {
	r.mu.Lock()
	if r.phase != phaseFreeLook {
		r.mu.Unlock()
		return
	}
	r.orbitDirty = true
	r.mu.Unlock()
	r.orbit.Drag(dx, dy)
}

func (r *rigImpl) Wheel(delta float32) {
	r.mu.Lock()
	switch r.phase {
	case phaseFreeLook:
		r.orbitDirty = true
		r.mu.Unlock()
		r.orbit.Dolly(delta)
		return
	case phasePillarFocus:
		// Zoom input is suppressed while focused.
		r.mu.Unlock()
		return
	default:
		r.zoom = common.Clamp(r.zoom-delta*r.wheelSensitivity, -1, 1)
		r.mu.Unlock()
	}
}

func (r *rigImpl) EnterFreeLook() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.base == nil {
		return
	}
	// Seed from the live transform, never the base pose. A fresh entry during
	// a pending return interrupts it without a snap.
	r.orbit.Seed(r.cam.Position(), r.base.LookTarget)
	r.phase = phaseFreeLook
	r.orbitDirty = true
}

func (r *rigImpl) ExitFreeLook() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != phaseFreeLook {
		return
	}
	r.phase = phaseReturning
}

func (r *rigImpl) FocusPillar(side store.PillarSide) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.base == nil {
		return
	}
	if _, ok := r.focusPose[side]; !ok {
		return
	}
	r.phase = phasePillarFocus
	r.focusSide = side
}

func (r *rigImpl) ClearFocus() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != phasePillarFocus {
		return
	}
	r.phase = phaseFocusReturn
	r.focusSide = store.PillarNone
}

func (r *rigImpl) SetShake(amplitude float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if amplitude > r.shakeAmplitude {
		r.shakeAmplitude = amplitude
	}
}

func (r *rigImpl) Update(dt float32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.base == nil {
		return true
	}

	switch r.phase {
	case phaseFreeLook:
		return r.updateFreeLook(dt)
	case phaseReturning:
		return r.updateReturn(dt, r.returnEpsilon)
	case phaseFocusReturn:
		return r.updateReturn(dt, r.focusEpsilon)
	case phasePillarFocus:
		return r.updateFocus(dt)
	default:
		return r.updateDefault(dt)
	}
}

// fovForZoom maps the zoom level onto a target field of view. The mapping is
// monotonic, passes through the base fov exactly at zoom 0, and reaches the
// two configured extremes at zoom -1 and +1. Zooming in shrinks the fov.
// Caller must hold the mutex.
func (r *rigImpl) fovForZoom() float32 {
	if r.zoom >= 0 {
		return common.Lerp(r.base.Fov, r.base.Fov*r.fovInScale, r.zoom)
	}
	return common.Lerp(r.base.Fov, r.base.Fov*r.fovOutScale, -r.zoom)
}

// shakeOffset advances the shake oscillator and returns the current jitter in
// world space, rotated through the base orientation so the jitter stays in the
// camera's screen plane. Caller must hold the mutex.
func (r *rigImpl) shakeOffset(dt float32) common.Vec3 {
	if r.shakeAmplitude < 1e-4 {
		r.shakeAmplitude = 0
		return common.Vec3{}
	}
	r.shakePhase += dt
	local := common.V3(
		r.shakeAmplitude*math32.Sin(r.shakePhase*31.0),
		r.shakeAmplitude*math32.Cos(r.shakePhase*47.0),
		0,
	)
	r.shakeAmplitude *= math32.Exp(-6.0 * dt)
	return r.base.Orientation.Rotate(local)
}

// updateDefault eases the camera toward the base pose with a pointer-driven
// parallax offset on the orientation and the zoom-mapped fov.
// Caller must hold the mutex.
func (r *rigImpl) updateDefault(dt float32) bool {
	shake := r.shakeOffset(dt)

	amp := r.parallaxAmplitude * (1 + 0.5*r.zoom)
	yaw := common.QuatFromAxisAngle(common.V3(0, 1, 0), -r.pointerX*amp)
	pitch := common.QuatFromAxisAngle(common.V3(1, 0, 0), r.pointerY*amp)
	targetOrient := r.base.Orientation.Mul(yaw).Mul(pitch)
	targetPos := r.base.Position.Add(shake)
	targetFov := r.fovForZoom()

	pos := r.cam.Position().Damp(targetPos, r.easeLambda, dt)
	orient := r.cam.Orientation().Damp(targetOrient, r.easeLambda, dt)
	fov := common.Damp(r.cam.Fov(), targetFov, r.easeLambda, dt)

	r.cam.SetPose(pos, orient)
	r.cam.SetFov(fov)

	return r.shakeAmplitude == 0 &&
		pos.DistanceTo(targetPos) < 1e-4 &&
		orient.AngleTo(targetOrient) < 1e-4 &&
		math32.Abs(fov-targetFov) < 1e-4
}

// updateFreeLook copies the orbit transform into the camera and eases the fov
// back toward the base value. Caller must hold the mutex.
func (r *rigImpl) updateFreeLook(dt float32) bool {
	pos := r.orbit.Position()
	target := r.orbit.Target()
	orient := common.QuatLookAt(pos, target, common.V3(0, 1, 0))

	fov := common.Damp(r.cam.Fov(), r.base.Fov, r.easeLambda, dt)
	r.cam.SetPose(pos, orient)
	r.cam.SetFov(fov)

	moved := r.orbitDirty
	r.orbitDirty = false
	return !moved && math32.Abs(fov-r.base.Fov) < 1e-4
}

// updateReturn eases the camera back toward the base pose and terminates the
// transition once both the position and angle deltas fall below epsilon,
// snapping exactly onto the base so no residual drift survives.
// Caller must hold the mutex.
func (r *rigImpl) updateReturn(dt float32, epsilon float32) bool {
	targetFov := r.fovForZoom()

	pos := r.cam.Position().Damp(r.base.Position, r.returnLambda, dt)
	orient := r.cam.Orientation().Damp(r.base.Orientation, r.returnLambda, dt)
	fov := common.Damp(r.cam.Fov(), targetFov, r.returnLambda, dt)

	if pos.DistanceTo(r.base.Position) < epsilon &&
		orient.AngleTo(r.base.Orientation) < epsilon {
		r.cam.SetPose(r.base.Position, r.base.Orientation)
		r.cam.SetFov(fov)
		r.phase = phaseDefault
		return false
	}

	r.cam.SetPose(pos, orient)
	r.cam.SetFov(fov)
	return false
}

// updateFocus eases the camera toward the registered focus pose for the
// focused side. Parallax and zoom are suppressed here. Caller must hold the
// mutex.
func (r *rigImpl) updateFocus(dt float32) bool {
	pose, ok := r.focusPose[r.focusSide]
	if !ok {
		r.phase = phaseFocusReturn
		return false
	}

	pos := r.cam.Position().Damp(pose.Position, r.easeLambda, dt)
	orient := r.cam.Orientation().Damp(pose.Orientation, r.easeLambda, dt)
	fov := common.Damp(r.cam.Fov(), pose.Fov, r.easeLambda, dt)

	r.cam.SetPose(pos, orient)
	r.cam.SetFov(fov)

	return pos.DistanceTo(pose.Position) < 1e-4 &&
		orient.AngleTo(pose.Orientation) < 1e-4 &&
		math32.Abs(fov-pose.Fov) < 1e-4
}
