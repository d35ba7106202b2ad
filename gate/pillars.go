package gate

import (
	"sync"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/picking"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// pillarState is the per-pillar animation state. The raised pose is derived
// once at construction from the world-space tilt axis; per-frame work only
// eases toward one of the two fixed poses.
type pillarState struct {
	node *scene.Node
	side store.PillarSide
	slug string

	basePosition   common.Vec3
	baseRotation   common.Quat
	raisedPosition common.Vec3
	tiltedRotation common.Quat

	hovered bool
	settled bool
}

// pillarControllerImpl is the implementation of the PillarController
// interface.
type pillarControllerImpl struct {
	mu *sync.Mutex

	st     *store.Store
	cam    camera.Camera
	picker picking.Picker

	pillars    []*pillarState
	candidates []*scene.Node

	riseHeight float32
	tiltAngle  float32
	easeLambda float32
	slugs      map[store.PillarSide]string

	// Store mirrors, written by the subscription callback.
	hoveredSide store.PillarSide
	focusedSide store.PillarSide

	unsubscribe func()
}

// PillarController animates the three named pillar objects: pointer hover
// raises and tilts a pillar toward its precomputed pose, and clicking a
// hovered pillar focuses the camera on it and opens its content panel.
// Hit-testing runs only when the pointer has moved since the last frame.
type PillarController interface {
	Controller

	// PointerMoved records the latest pointer position and marks hover
	// hit-testing dirty.
	//
	// Parameters:
	//   - ndcX: pointer x in [-1, 1]
	//   - ndcY: pointer y in [-1, 1], +Y up
	PointerMoved(ndcX, ndcY float32)

	// Click handles a primary-button click: clicking while a pillar is
	// focused returns to the default mode, clicking a hovered pillar
	// focuses it and opens its panel. Clicks elsewhere are ignored.
	Click()

	// Close removes the controller's store subscription.
	Close()
}

var _ PillarController = &pillarControllerImpl{}

// NewPillarController creates the pillar controller from the scene's resolved
// index. Pillars absent from the scene are simply skipped; a scene with no
// pillars yields an inert controller.
//
// Parameters:
//   - st: the shared state store
//   - cam: the scene camera, used for picking rays and the tilt axis
//   - s: the loaded scene
//   - options: functional options to configure the controller
//
// Returns:
//   - PillarController: the newly created controller
func NewPillarController(st *store.Store, cam camera.Camera, s scene.Scene, options ...PillarBuilderOption) PillarController {
	c := &pillarControllerImpl{
		mu:         &sync.Mutex{},
		st:         st,
		cam:        cam,
		picker:     picking.NewPicker(),
		riseHeight: 0.25,
		tiltAngle:  0.06,
		easeLambda: 8.0,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil && cam != nil {
		for _, side := range []store.PillarSide{store.PillarLeft, store.PillarCenter, store.PillarRight} {
			node := s.Index().Pillars[side]
			if node == nil {
				continue
			}
			c.pillars = append(c.pillars, c.newPillarState(node, side))
			c.candidates = append(c.candidates, node)
		}
	}

	if st != nil {
		snapshot := st.State()
		c.hoveredSide = snapshot.HoveredPillar
		c.focusedSide = snapshot.FocusedPillar
		c.unsubscribe = st.Subscribe(func(next, _ store.State) {
			c.mu.Lock()
			c.hoveredSide = next.HoveredPillar
			c.focusedSide = next.FocusedPillar
			c.mu.Unlock()
		})
	}

	return c
}

// newPillarState captures a pillar's base pose and derives its raised pose.
// The rise/tilt axis is the cross product of the pillar's up vector and the
// direction to the camera, so the pillar leans across the view rather than
// toward it.
func (c *pillarControllerImpl) newPillarState(node *scene.Node, side store.PillarSide) *pillarState {
	toCamera := c.cam.Position().Sub(node.Position).Normalized()
	up := node.Rotation.Rotate(common.V3(0, 1, 0))
	axis := up.Cross(toCamera)
	if axis.LengthSq() < 1e-8 {
		axis = common.V3(1, 0, 0)
	} else {
		axis = axis.Normalized()
	}

	slug := c.slugs[side]
	if slug == "" {
		slug = sideSlug(side)
	}

	return &pillarState{
		node:           node,
		side:           side,
		slug:           slug,
		basePosition:   node.Position,
		baseRotation:   node.Rotation,
		raisedPosition: node.Position.Add(axis.Scale(c.riseHeight)),
		tiltedRotation: common.QuatFromAxisAngle(axis, c.tiltAngle).Mul(node.Rotation),
		settled:        true,
	}
}

func (c *pillarControllerImpl) PointerMoved(ndcX, ndcY float32) {
	c.picker.PointerMoved(ndcX, ndcY)
}

func (c *pillarControllerImpl) Click() {
	c.mu.Lock()
	hovered := c.hoveredSide
	focused := c.focusedSide
	var slug string
	for _, p := range c.pillars {
		if p.side == hovered {
			slug = p.slug
		}
	}
	c.mu.Unlock()

	if c.st == nil {
		return
	}
	if focused != store.PillarNone {
		c.st.SetFocusedPillar(store.PillarNone)
		c.st.SetPanelSlug("")
		return
	}
	if hovered != store.PillarNone && slug != "" {
		c.st.SetFocusedPillar(hovered)
		c.st.SetPanelSlug(slug)
	}
}

func (c *pillarControllerImpl) Update(dt float32) bool {
	c.mu.Lock()

	if len(c.pillars) == 0 {
		c.mu.Unlock()
		return true
	}

	hit := c.picker.Hover(c.cam.InverseViewProjectionMatrix(), c.candidates)
	hovered := store.PillarNone
	for _, p := range c.pillars {
		nowHovered := p.node == hit
		if nowHovered {
			hovered = p.side
		}
		if nowHovered != p.hovered {
			p.hovered = nowHovered
			p.settled = false
		}
	}
	hoverChanged := hovered != c.hoveredSide
	if hoverChanged {
		c.hoveredSide = hovered
	}

	settled := true
	factor := common.DampFactor(c.easeLambda, dt)
	for _, p := range c.pillars {
		if p.settled {
			continue
		}

		targetPos := p.basePosition
		targetRot := p.baseRotation
		if p.hovered {
			targetPos = p.raisedPosition
			targetRot = p.tiltedRotation
		}

		p.node.Position = p.node.Position.Lerp(targetPos, factor)
		p.node.Rotation = p.node.Rotation.Slerp(targetRot, factor)

		if p.node.Position.DistanceTo(targetPos) < 1e-4 && p.node.Rotation.AngleTo(targetRot) < 1e-4 {
			p.node.Position = targetPos
			p.node.Rotation = targetRot
			p.settled = true
		} else {
			settled = false
		}
	}
	c.mu.Unlock()

	// Publish outside the lock: the store notifies subscribers on this
	// goroutine, and our own subscription takes c.mu.
	if hoverChanged && c.st != nil {
		c.st.SetHoveredPillar(hovered)
	}
	return settled
}

func (c *pillarControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// sideSlug maps a pillar side to the default content panel slug it opens.
func sideSlug(side store.PillarSide) string {
	switch side {
	case store.PillarLeft:
		return "left"
	case store.PillarCenter:
		return "center"
	case store.PillarRight:
		return "right"
	}
	return ""
}
