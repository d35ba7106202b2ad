package gate

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// rainDrop is one pooled drop. The pool is allocated once at construction
// and advected in place; drops wrap when they leave the volume.
type rainDrop struct {
	node    *scene.Node
	speed   float32
	opacity float32
}

// rainControllerImpl is the implementation of the RainController interface.
type rainControllerImpl struct {
	mu *sync.Mutex

	drops []rainDrop

	// Volume the drops fall through, centered on the origin in x/z.
	halfWidth float32
	height    float32
	halfDepth float32

	direction common.Vec3
	fadeLamda float32
	poolSize  int

	// globalOpacity gates every drop's draw without touching per-drop state.
	globalOpacity float32

	// Store mirror.
	raining bool

	unsubscribe func()
}

// RainController advects a fixed pool of line-shaped drops along a constant
// angled direction, wrapping them at the volume bounds. One global opacity
// eases toward 1 while raining and 0 otherwise; per-drop state is never
// reset by the toggle.
type RainController interface {
	Controller

	// Close removes the controller's store subscription.
	Close()
}

var _ RainController = &rainControllerImpl{}

// NewRainController creates the rain field and adds its pooled drop nodes to
// the scene. All drops share one mesh so the whole field renders as a single
// instanced draw.
//
// Parameters:
//   - st: the shared state store
//   - s: the scene the drop nodes are added to
//   - seed: the randomization seed for drop placement and speeds
//   - options: functional options to configure the controller
//
// Returns:
//   - RainController: the newly created controller
func NewRainController(st *store.Store, s scene.Scene, seed int64, options ...RainBuilderOption) RainController {
	c := &rainControllerImpl{
		mu:        &sync.Mutex{},
		halfWidth: 20,
		height:    18,
		halfDepth: 20,
		direction: common.V3(0.12, -1, 0).Normalized(),
		fadeLamda: 2.0,
		poolSize:  150,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil {
		mesh := rainDropMesh()
		rng := rand.New(rand.NewSource(seed))
		c.drops = make([]rainDrop, 0, c.poolSize)
		for i := 0; i < c.poolSize; i++ {
			node := scene.NewNode(fmt.Sprintf("raindrop_%d", i), mesh)
			node.Position = common.V3(
				(rng.Float32()*2-1)*c.halfWidth,
				rng.Float32()*c.height,
				(rng.Float32()*2-1)*c.halfDepth,
			)
			length := 0.25 + rng.Float32()*0.35
			node.Scale = common.V3(1, length, 1)
			node.Tint = [4]float32{0.7, 0.8, 0.95, 0}
			node.Visible = false
			s.AddNode(node)

			c.drops = append(c.drops, rainDrop{
				node:    node,
				speed:   9 + rng.Float32()*6,
				opacity: 0.25 + rng.Float32()*0.45,
			})
		}
	}

	if st != nil {
		c.raining = st.State().Raining
		c.unsubscribe = st.Subscribe(func(next, _ store.State) {
			c.mu.Lock()
			c.raining = next.Raining
			c.mu.Unlock()
		})
	}

	return c
}

func (c *rainControllerImpl) Update(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.drops) == 0 {
		return true
	}

	target := float32(0)
	if c.raining {
		target = 1
	}
	c.globalOpacity = common.Damp(c.globalOpacity, target, c.fadeLamda, dt)
	if !c.raining && c.globalOpacity < 1e-3 {
		c.globalOpacity = 0
	}

	if c.globalOpacity == 0 {
		for i := range c.drops {
			c.drops[i].node.Visible = false
		}
		return true
	}

	for i := range c.drops {
		d := &c.drops[i]
		d.node.Visible = true
		d.node.Tint[3] = c.globalOpacity * d.opacity

		p := d.node.Position.Add(c.direction.Scale(d.speed * dt))
		if p.Y < 0 {
			p.Y += c.height
		}
		if p.X > c.halfWidth {
			p.X -= 2 * c.halfWidth
		} else if p.X < -c.halfWidth {
			p.X += 2 * c.halfWidth
		}
		d.node.Position = p
	}
	return false
}

func (c *rainControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// rainDropMesh builds the thin vertical quad every drop shares. Double-faced
// so it reads from any yaw angle.
func rainDropMesh() *scene.Mesh {
	const halfW = 0.006
	verts := []scene.Vertex{
		{Position: common.V3(-halfW, 0, 0), Normal: common.V3(0, 0, 1)},
		{Position: common.V3(halfW, 0, 0), Normal: common.V3(0, 0, 1)},
		{Position: common.V3(halfW, 1, 0), Normal: common.V3(0, 0, 1)},
		{Position: common.V3(-halfW, 1, 0), Normal: common.V3(0, 0, 1)},
	}
	mesh := &scene.Mesh{
		Name:     "raindrop",
		Vertices: verts,
		Indices:  []uint32{0, 1, 2, 0, 2, 3, 0, 2, 1, 0, 3, 2},
	}
	mesh.ComputeBounds()
	return mesh
}
