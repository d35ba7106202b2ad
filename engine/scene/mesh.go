package scene

import (
	"github.com/chewxy/math32"
	"github.com/hollis-dev/stargate/common"
)

// Vertex is a single mesh vertex. Position and normal are in mesh-local
// space.
type Vertex struct {
	Position common.Vec3
	Normal   common.Vec3
}

// Mesh is an immutable triangle mesh shared between nodes. The bounding
// radius is computed once at build time and gates the per-triangle picking
// test, so meshes must not be mutated after ComputeBounds.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	// BoundingRadius is the radius of the smallest origin-centered sphere
	// containing all vertices in local space.
	BoundingRadius float32
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three local-space corners of triangle i.
// The caller is responsible for keeping i within [0, TriangleCount).
func (m *Mesh) Triangle(i int) (a, b, c common.Vec3) {
	a = m.Vertices[m.Indices[i*3]].Position
	b = m.Vertices[m.Indices[i*3+1]].Position
	c = m.Vertices[m.Indices[i*3+2]].Position
	return
}

// ComputeBounds recomputes the local-space bounding radius from the current
// vertex set. Called once when the mesh is built.
func (m *Mesh) ComputeBounds() {
	maxSq := float32(0)
	for i := range m.Vertices {
		if d := m.Vertices[i].Position.LengthSq(); d > maxSq {
			maxSq = d
		}
	}
	m.BoundingRadius = math32.Sqrt(maxSq)
}
