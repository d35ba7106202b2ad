package gate

import (
	"sync"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// ringControllerImpl is the implementation of the RingController interface.
type ringControllerImpl struct {
	mu *sync.Mutex

	outer *scene.Node
	inner *scene.Node

	outerBase common.Quat
	innerBase common.Quat
	angle     float32

	baseSpeed float32
	maxSpeed  float32

	// Store mirrors.
	progress     float32
	transitioned bool

	unsubscribe func()
}

// RingController spins the two gate rings in opposite directions about their
// facing axis. Angular speed is a pure function of the shared activation
// progress, so ring spin-up needs no state machine of its own. A terminal
// scene transition freezes both rings.
type RingController interface {
	Controller

	// Close removes the controller's store subscription.
	Close()
}

var _ RingController = &ringControllerImpl{}

// NewRingController creates the ring controller from the scene's resolved
// index. A scene missing either ring node animates whichever is present; a
// scene with neither yields an inert controller.
//
// Parameters:
//   - st: the shared state store
//   - s: the loaded scene
//   - options: functional options to configure the controller
//
// Returns:
//   - RingController: the newly created controller
func NewRingController(st *store.Store, s scene.Scene, options ...RingBuilderOption) RingController {
	c := &ringControllerImpl{
		mu:        &sync.Mutex{},
		baseSpeed: 0.15,
		maxSpeed:  3.0,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil {
		idx := s.Index()
		if c.outer = idx.RingOuter; c.outer != nil {
			c.outerBase = c.outer.Rotation
		}
		if c.inner = idx.RingInner; c.inner != nil {
			c.innerBase = c.inner.Rotation
		}
	}

	if st != nil {
		snapshot := st.State()
		c.progress = snapshot.ActivationProgress
		c.transitioned = snapshot.Transitioned
		c.unsubscribe = st.Subscribe(func(next, _ store.State) {
			c.mu.Lock()
			c.progress = next.ActivationProgress
			c.transitioned = next.Transitioned
			c.mu.Unlock()
		})
	}

	return c
}

func (c *ringControllerImpl) Update(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.outer == nil && c.inner == nil {
		return true
	}
	if c.transitioned {
		return true
	}

	speed := c.baseSpeed + c.progress*(c.maxSpeed-c.baseSpeed)
	c.angle += speed * dt

	// The torus meshes lie in the XY plane, so the facing axis is local Z.
	spin := common.QuatFromAxisAngle(common.V3(0, 0, 1), c.angle)
	counterSpin := common.QuatFromAxisAngle(common.V3(0, 0, 1), -c.angle)
	if c.outer != nil {
		c.outer.Rotation = c.outerBase.Mul(spin)
	}
	if c.inner != nil {
		c.inner.Rotation = c.innerBase.Mul(counterSpin)
	}
	return false
}

func (c *ringControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
