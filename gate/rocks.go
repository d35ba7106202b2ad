package gate

import (
	"math/rand"
	"sync"

	"github.com/chewxy/math32"
	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// rockInstance is one drifting rock's animation state. All instances live in
// a flat slice allocated once at construction and mutated in place.
type rockInstance struct {
	node     *scene.Node
	basePos  common.Vec3
	phase    [3]float32
	speedMul float32
}

// rockControllerImpl is the implementation of the RockController interface.
type rockControllerImpl struct {
	mu *sync.Mutex

	cam   camera.Camera
	rocks []rockInstance

	time float32

	driftAmplitude float32
	driftSpeed     float32
	repelRadius    float32
	repelStrength  float32
	easeLambda     float32

	pointerX float32
	pointerY float32

	// Store mirror: FreeLook suppresses repulsion, since the pointer drives
	// the orbit drag there instead of hovering the field.
	freeLook bool

	unsubscribe func()
}

// RockController drifts the rock field. Each rock follows a per-axis
// sinusoid around its base position with randomized phase and speed, plus a
// pointer repulsion measured in screen space with quadratic falloff and
// mapped back to world space through the camera's basis vectors.
type RockController interface {
	Controller

	// PointerMoved records the latest pointer position in NDC.
	//
	// Parameters:
	//   - ndcX: pointer x in [-1, 1]
	//   - ndcY: pointer y in [-1, 1], +Y up
	PointerMoved(ndcX, ndcY float32)

	// Close removes the controller's store subscription.
	Close()
}

var _ RockController = &rockControllerImpl{}

// NewRockController creates the rock controller over the scene's indexed
// rock nodes. Per-rock phases and speed multipliers come from the given seed
// so the field's motion is reproducible.
//
// Parameters:
//   - st: the shared state store
//   - cam: the scene camera
//   - s: the loaded scene
//   - seed: the randomization seed for phases and speeds
//   - options: functional options to configure the controller
//
// Returns:
//   - RockController: the newly created controller
func NewRockController(st *store.Store, cam camera.Camera, s scene.Scene, seed int64, options ...RockBuilderOption) RockController {
	c := &rockControllerImpl{
		mu:             &sync.Mutex{},
		cam:            cam,
		driftAmplitude: 0.12,
		driftSpeed:     0.6,
		repelRadius:    0.35,
		repelStrength:  0.8,
		easeLambda:     4.0,
		pointerX:       2, // off-screen until the first pointer event
		pointerY:       2,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil {
		rng := rand.New(rand.NewSource(seed))
		for _, node := range s.Index().Rocks {
			c.rocks = append(c.rocks, rockInstance{
				node:    node,
				basePos: node.Position,
				phase: [3]float32{
					rng.Float32() * 2 * math32.Pi,
					rng.Float32() * 2 * math32.Pi,
					rng.Float32() * 2 * math32.Pi,
				},
				speedMul: 0.6 + rng.Float32()*0.8,
			})
		}
	}

	if st != nil {
		c.freeLook = st.State().Mode == store.ModeFreeLook
		c.unsubscribe = st.Subscribe(func(next, _ store.State) {
			c.mu.Lock()
			c.freeLook = next.Mode == store.ModeFreeLook
			c.mu.Unlock()
		})
	}

	return c
}

func (c *rockControllerImpl) PointerMoved(ndcX, ndcY float32) {
	c.mu.Lock()
	c.pointerX = ndcX
	c.pointerY = ndcY
	c.mu.Unlock()
}

func (c *rockControllerImpl) Update(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.rocks) == 0 {
		return true
	}

	c.time += dt
	factor := common.DampFactor(c.easeLambda, dt)

	viewProj := c.cam.ViewProjectionMatrix()
	orientation := c.cam.Orientation()
	right := orientation.Rotate(common.V3(1, 0, 0))
	up := orientation.Rotate(common.V3(0, 1, 0))

	for i := range c.rocks {
		r := &c.rocks[i]
		t := c.time * c.driftSpeed * r.speedMul
		target := r.basePos.Add(common.V3(
			math32.Sin(t+r.phase[0])*c.driftAmplitude,
			math32.Sin(t*0.8+r.phase[1])*c.driftAmplitude,
			math32.Sin(t*1.3+r.phase[2])*c.driftAmplitude,
		))

		if !c.freeLook {
			target = target.Add(c.repulsion(viewProj, right, up, r.basePos))
		}

		r.node.Position = r.node.Position.Lerp(target, factor)
	}

	// Drift is perpetual while the field exists.
	return false
}

// repulsion computes the world-space push away from the pointer for a rock at
// the given base position. Distance is measured in NDC; the push direction is
// the screen-space offset mapped through the camera's right and up vectors.
// Zero outside the repel radius, maximal at distance zero.
func (c *rockControllerImpl) repulsion(viewProj [16]float32, right, up common.Vec3, basePos common.Vec3) common.Vec3 {
	projected := common.TransformPoint(viewProj[:], basePos)
	dx := projected.X - c.pointerX
	dy := projected.Y - c.pointerY
	dist := math32.Sqrt(dx*dx + dy*dy)
	if dist >= c.repelRadius {
		return common.Vec3{}
	}

	falloff := 1 - dist/c.repelRadius
	strength := c.repelStrength * falloff * falloff
	if dist < 1e-5 {
		// Pointer dead-center: push straight along the camera's right vector.
		return right.Scale(strength)
	}
	inv := 1 / dist
	return right.Scale(dx * inv * strength).Add(up.Scale(dy * inv * strength))
}

func (c *rockControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
