package gate

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// dustMote is one pooled falling mote around the gate.
type dustMote struct {
	node    *scene.Node
	speed   float32
	opacity float32
}

// dustControllerImpl is the implementation of the DustController interface.
type dustControllerImpl struct {
	mu *sync.Mutex

	motes []dustMote

	radius    float32
	height    float32
	baseSpeed float32
	poolSize  int

	// Store mirror. Density, speed, and opacity are all pure functions of
	// this scalar, so scrubbing it up and down looks continuous.
	progress float32

	unsubscribe func()
}

// DustController drives the activation dust: a pooled field of falling motes
// around the gate whose visible count, fall speed, and opacity scale with
// the shared activation progress. At zero progress the field is invisible
// and the controller is settled.
type DustController interface {
	Controller

	// Close removes the controller's store subscription.
	Close()
}

var _ DustController = &dustControllerImpl{}

// NewDustController creates the dust field and adds its pooled mote nodes to
// the scene.
//
// Parameters:
//   - st: the shared state store
//   - s: the scene the mote nodes are added to
//   - seed: the randomization seed for mote placement and speeds
//   - options: functional options to configure the controller
//
// Returns:
//   - DustController: the newly created controller
func NewDustController(st *store.Store, s scene.Scene, seed int64, options ...DustBuilderOption) DustController {
	c := &dustControllerImpl{
		mu:        &sync.Mutex{},
		radius:    4.5,
		height:    7,
		baseSpeed: 1.2,
		poolSize:  80,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil {
		mesh := dustMoteMesh()
		rng := rand.New(rand.NewSource(seed))
		c.motes = make([]dustMote, 0, c.poolSize)
		for i := 0; i < c.poolSize; i++ {
			node := scene.NewNode(fmt.Sprintf("dust_%d", i), mesh)
			node.Position = common.V3(
				(rng.Float32()*2-1)*c.radius,
				rng.Float32()*c.height,
				(rng.Float32()*2-1)*c.radius,
			)
			node.Tint = [4]float32{1, 0.95, 0.8, 0}
			node.Visible = false
			s.AddNode(node)

			c.motes = append(c.motes, dustMote{
				node:    node,
				speed:   0.5 + rng.Float32(),
				opacity: 0.3 + rng.Float32()*0.5,
			})
		}
	}

	if st != nil {
		c.progress = st.State().ActivationProgress
		c.unsubscribe = st.Subscribe(func(next, _ store.State) {
			c.mu.Lock()
			c.progress = next.ActivationProgress
			c.mu.Unlock()
		})
	}

	return c
}

func (c *dustControllerImpl) Update(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.motes) == 0 {
		return true
	}

	if c.progress <= 0 {
		for i := range c.motes {
			c.motes[i].node.Visible = false
		}
		return true
	}

	// Density: the leading fraction of the pool is visible.
	visibleCount := int(c.progress * float32(len(c.motes)))
	speed := c.baseSpeed * (0.5 + 1.5*c.progress)

	for i := range c.motes {
		m := &c.motes[i]
		if i >= visibleCount {
			m.node.Visible = false
			continue
		}
		m.node.Visible = true
		m.node.Tint[3] = c.progress * m.opacity

		p := m.node.Position
		p.Y -= speed * m.speed * dt
		if p.Y < 0 {
			p.Y += c.height
		}
		m.node.Position = p
	}
	return false
}

func (c *dustControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// dustMoteMesh builds the small double-faced quad every mote shares.
func dustMoteMesh() *scene.Mesh {
	const half = 0.02
	verts := []scene.Vertex{
		{Position: common.V3(-half, -half, 0), Normal: common.V3(0, 0, 1)},
		{Position: common.V3(half, -half, 0), Normal: common.V3(0, 0, 1)},
		{Position: common.V3(half, half, 0), Normal: common.V3(0, 0, 1)},
		{Position: common.V3(-half, half, 0), Normal: common.V3(0, 0, 1)},
	}
	mesh := &scene.Mesh{
		Name:     "dustmote",
		Vertices: verts,
		Indices:  []uint32{0, 1, 2, 0, 2, 3, 0, 2, 1, 0, 3, 2},
	}
	mesh.ComputeBounds()
	return mesh
}
