package picking

import (
	"sync"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
)

// pickerImpl is the implementation of the Picker interface.
type pickerImpl struct {
	mu *sync.Mutex

	ndcX  float32
	ndcY  float32
	dirty bool

	lastHit *scene.Node

	scratch [16]float32
}

// Picker performs pointer-ray hit testing against scene nodes. A cheap
// bounding-sphere test gates the per-triangle intersection, and the test only
// re-runs when the pointer has moved since the last query; a stationary
// pointer returns the cached result.
type Picker interface {
	// PointerMoved records a new pointer position and marks the cached hit
	// stale.
	//
	// Parameters:
	//   - x: pointer x in normalized device coordinates [-1, 1]
	//   - y: pointer y in normalized device coordinates [-1, 1], +Y up
	PointerMoved(x, y float32)

	// Hover returns the candidate node under the pointer, or nil. The nearest
	// triangle hit wins when several candidates overlap. Candidates without a
	// mesh never match.
	//
	// Parameters:
	//   - invViewProj: the camera's inverse view-projection matrix
	//   - candidates: nodes to test, typically the resolved pillar nodes
	//
	// Returns:
	//   - *scene.Node: the hovered node or nil
	Hover(invViewProj [16]float32, candidates []*scene.Node) *scene.Node
}

var _ Picker = &pickerImpl{}

// NewPicker creates a picker with no pointer position recorded. The first
// Hover call after construction performs a full test.
//
// Returns:
//   - Picker: the newly created picker
func NewPicker() Picker {
	return &pickerImpl{
		mu:    &sync.Mutex{},
		dirty: true,
	}
}

func (p *pickerImpl) PointerMoved(x, y float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if x == p.ndcX && y == p.ndcY {
		return
	}
	p.ndcX = x
	p.ndcY = y
	p.dirty = true
}

func (p *pickerImpl) Hover(invViewProj [16]float32, candidates []*scene.Node) *scene.Node {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dirty {
		return p.lastHit
	}
	p.dirty = false

	ray := common.RayFromNDC(p.ndcX, p.ndcY, invViewProj[:])

	var best *scene.Node
	bestT := float32(0)
	for _, n := range candidates {
		if n == nil || n.Mesh == nil || !n.Visible {
			continue
		}
		center, radius := n.BoundingSphere()
		if _, ok := ray.IntersectSphere(center, radius); !ok {
			continue
		}
		if t, ok := p.intersectMesh(ray, n); ok {
			if best == nil || t < bestT {
				best = n
				bestT = t
			}
		}
	}

	p.lastHit = best
	return best
}

// intersectMesh tests the ray against every triangle of the node's mesh in
// world space and returns the nearest hit distance. Caller must hold the
// mutex.
func (p *pickerImpl) intersectMesh(ray common.Ray, n *scene.Node) (float32, bool) {
	n.ModelMatrix(p.scratch[:])

	found := false
	nearest := float32(0)
	for i := 0; i < n.Mesh.TriangleCount(); i++ {
		a, b, c := n.Mesh.Triangle(i)
		wa := common.TransformPoint(p.scratch[:], a)
		wb := common.TransformPoint(p.scratch[:], b)
		wc := common.TransformPoint(p.scratch[:], c)
		if t, ok := ray.IntersectTriangle(wa, wb, wc); ok {
			if !found || t < nearest {
				nearest = t
				found = true
			}
		}
	}
	return nearest, found
}
