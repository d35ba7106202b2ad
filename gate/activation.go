package gate

import (
	"sync"

	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// activationControllerImpl is the implementation of the ActivationController
// interface.
type activationControllerImpl struct {
	mu *sync.Mutex

	st    *store.Store
	scene scene.Scene
	outer *scene.Node
	inner *scene.Node

	held     bool
	progress float32

	rampDuration  float32
	decayDuration float32
	maxShake      float32

	// One-shot terminal flash state. fired latches permanently so the flash
	// can never re-trigger even if progress is somehow scrubbed back to 1.
	fired        bool
	flashing     bool
	flashElapsed float32
	flashRamp    float32
	flashHold    float32
	flashDecay   float32

	transitioned bool
}

// ActivationController runs the press-and-hold activation gesture. Progress
// ramps toward 1 while held and decays toward 0 otherwise; every dependent
// visual (ring glow, shake magnitude, dust density) is a pure function of
// the same scalar, so scrubbing the hold looks continuous and reversible.
// Reaching 1 fires exactly one full-screen terminal flash, then latches the
// permanent transitioned flag and ignores further input.
type ActivationController interface {
	Controller

	// SetHeld records whether the hold gesture is currently active. No-ops
	// once the terminal transition has fired.
	//
	// Parameters:
	//   - held: true while the press is sustained
	SetHeld(held bool)

	// ShakeMagnitude returns the current camera shake amplitude, a pure
	// function of activation progress.
	//
	// Returns:
	//   - float32: the shake amplitude in view-space units
	ShakeMagnitude() float32
}

var _ ActivationController = &activationControllerImpl{}

// NewActivationController creates the activation sequence over the scene's
// ring nodes and environment.
//
// Parameters:
//   - st: the shared state store
//   - s: the loaded scene
//   - options: functional options to configure the controller
//
// Returns:
//   - ActivationController: the newly created controller
func NewActivationController(st *store.Store, s scene.Scene, options ...ActivationBuilderOption) ActivationController {
	c := &activationControllerImpl{
		mu:            &sync.Mutex{},
		st:            st,
		scene:         s,
		rampDuration:  2.5,
		decayDuration: 1.2,
		maxShake:      0.06,
		flashRamp:     0.12,
		flashHold:     0.08,
		flashDecay:    0.8,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil {
		idx := s.Index()
		c.outer = idx.RingOuter
		c.inner = idx.RingInner
	}
	if st != nil {
		snapshot := st.State()
		c.progress = snapshot.ActivationProgress
		c.transitioned = snapshot.Transitioned
		c.fired = snapshot.Transitioned
	}

	return c
}

func (c *activationControllerImpl) SetHeld(held bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transitioned || c.fired {
		return
	}
	c.held = held
}

func (c *activationControllerImpl) ShakeMagnitude() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transitioned {
		return 0
	}
	return c.maxShake * c.progress * c.progress
}

func (c *activationControllerImpl) Update(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.flashing {
		c.advanceFlash(dt)
		return false
	}
	if c.transitioned {
		return true
	}

	prev := c.progress
	if c.held {
		c.progress += dt / c.rampDuration
	} else {
		c.progress -= dt / c.decayDuration
	}
	if c.progress > 1 {
		c.progress = 1
	}
	if c.progress < 0 {
		c.progress = 0
	}

	if c.progress != prev {
		if c.st != nil {
			c.st.SetActivationProgress(c.progress)
		}
		c.applyGlow(c.progress)
	}

	if c.progress >= 1 && !c.fired {
		c.fired = true
		c.flashing = true
		c.flashElapsed = 0
		return false
	}

	return c.progress == prev && (c.progress == 0 || c.progress == 1)
}

// advanceFlash steps the one-shot terminal flash envelope on the scene's
// flash overlay. The transitioned flag latches once the flash has fully
// decayed.
func (c *activationControllerImpl) advanceFlash(dt float32) {
	c.flashElapsed += dt

	var overlay float32
	switch {
	case c.flashElapsed < c.flashRamp:
		overlay = c.flashElapsed / c.flashRamp
	case c.flashElapsed < c.flashRamp+c.flashHold:
		overlay = 1
	case c.flashElapsed < c.flashRamp+c.flashHold+c.flashDecay:
		overlay = 1 - (c.flashElapsed-c.flashRamp-c.flashHold)/c.flashDecay
	default:
		overlay = 0
		c.flashing = false
		c.transitioned = true
		c.held = false
		if c.st != nil {
			c.st.SetTransitioned()
		}
	}

	if c.scene != nil {
		env := c.scene.Environment()
		env.FlashOverlay = overlay
		c.scene.SetEnvironment(env)
	}
}

// applyGlow feeds the shared progress scalar into the ring nodes' emissive
// boost.
func (c *activationControllerImpl) applyGlow(progress float32) {
	if c.outer != nil {
		c.outer.Glow = progress
	}
	if c.inner != nil {
		c.inner.Glow = progress
	}
}
