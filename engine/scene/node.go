package scene

import (
	"github.com/hollis-dev/stargate/common"
)

// Node is a single scene-graph entry: a named transform with an optional mesh
// and per-node shading parameters. Nodes are plain structs mutated in place by
// the animation controllers every frame; the renderer reads them when filling
// its instance buffers.
type Node struct {
	Name string

	Position common.Vec3
	Rotation common.Quat
	Scale    common.Vec3

	// Tint is an RGBA multiplier applied to the mesh base color.
	Tint [4]float32

	// Glow is an emissive boost in [0, 1], driven by the activation sequence
	// for the ring nodes.
	Glow float32

	Mesh    *Mesh
	Visible bool
}

// NewNode creates a visible node with identity rotation, unit scale, and a
// white tint.
//
// Parameters:
//   - name: the node's scene-graph name
//   - mesh: the mesh to attach, may be nil for transform-only nodes
//
// Returns:
//   - *Node: the newly created node
func NewNode(name string, mesh *Mesh) *Node {
	return &Node{
		Name:     name,
		Rotation: common.QuatIdentity(),
		Scale:    common.V3(1, 1, 1),
		Tint:     [4]float32{1, 1, 1, 1},
		Mesh:     mesh,
		Visible:  true,
	}
}

// ModelMatrix writes the node's column-major world matrix into out.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
func (n *Node) ModelMatrix(out []float32) {
	common.Compose(out, n.Position, n.Rotation, n.Scale)
}

// BoundingSphere returns the node's world-space bounding sphere, derived from
// the mesh bounds scaled by the largest scale axis. Returns a zero radius when
// the node has no mesh.
//
// Returns:
//   - common.Vec3: the sphere center in world space
//   - float32: the sphere radius
func (n *Node) BoundingSphere() (common.Vec3, float32) {
	if n.Mesh == nil {
		return n.Position, 0
	}
	s := n.Scale.X
	if n.Scale.Y > s {
		s = n.Scale.Y
	}
	if n.Scale.Z > s {
		s = n.Scale.Z
	}
	return n.Position, n.Mesh.BoundingRadius * s
}
