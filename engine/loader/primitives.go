package loader

import (
	"math"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
)

// buildBox builds an axis-aligned box centered on the origin with flat
// per-face normals.
func buildBox(width, height, depth float32) *scene.Mesh {
	hw, hh, hd := width/2, height/2, depth/2

	faces := []struct {
		normal  common.Vec3
		corners [4]common.Vec3
	}{
		{common.V3(0, 0, 1), [4]common.Vec3{
			common.V3(-hw, -hh, hd), common.V3(hw, -hh, hd), common.V3(hw, hh, hd), common.V3(-hw, hh, hd)}},
		{common.V3(0, 0, -1), [4]common.Vec3{
			common.V3(hw, -hh, -hd), common.V3(-hw, -hh, -hd), common.V3(-hw, hh, -hd), common.V3(hw, hh, -hd)}},
		{common.V3(1, 0, 0), [4]common.Vec3{
			common.V3(hw, -hh, hd), common.V3(hw, -hh, -hd), common.V3(hw, hh, -hd), common.V3(hw, hh, hd)}},
		{common.V3(-1, 0, 0), [4]common.Vec3{
			common.V3(-hw, -hh, -hd), common.V3(-hw, -hh, hd), common.V3(-hw, hh, hd), common.V3(-hw, hh, -hd)}},
		{common.V3(0, 1, 0), [4]common.Vec3{
			common.V3(-hw, hh, hd), common.V3(hw, hh, hd), common.V3(hw, hh, -hd), common.V3(-hw, hh, -hd)}},
		{common.V3(0, -1, 0), [4]common.Vec3{
			common.V3(-hw, -hh, -hd), common.V3(hw, -hh, -hd), common.V3(hw, -hh, hd), common.V3(-hw, -hh, hd)}},
	}

	m := &scene.Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, scene.Vertex{Position: c, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.ComputeBounds()
	return m
}

// buildPlane builds a flat quad in the XZ plane facing +Y.
func buildPlane(width, depth float32) *scene.Mesh {
	hw, hd := width/2, depth/2
	up := common.V3(0, 1, 0)

	m := &scene.Mesh{
		Vertices: []scene.Vertex{
			{Position: common.V3(-hw, 0, hd), Normal: up},
			{Position: common.V3(hw, 0, hd), Normal: up},
			{Position: common.V3(hw, 0, -hd), Normal: up},
			{Position: common.V3(-hw, 0, -hd), Normal: up},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.ComputeBounds()
	return m
}

// buildTorus builds a torus in the XY plane with the given major radius and
// tube radius. segments controls tessellation around both circles.
func buildTorus(radius, tube float32, segments int) *scene.Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &scene.Mesh{}

	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments) * 2 * math.Pi
		cu, su := math32.Cos(u), math32.Sin(u)
		for j := 0; j <= segments; j++ {
			v := float32(j) / float32(segments) * 2 * math.Pi
			cv, sv := math32.Cos(v), math32.Sin(v)

			center := common.V3(radius*cu, radius*su, 0)
			pos := common.V3(
				(radius+tube*cv)*cu,
				(radius+tube*cv)*su,
				tube*sv,
			)
			m.Vertices = append(m.Vertices, scene.Vertex{
				Position: pos,
				Normal:   pos.Sub(center).Normalized(),
			})
		}
	}

	ring := segments + 1
	for i := 0; i < segments; i++ {
		for j := 0; j < segments; j++ {
			a := uint32(i*ring + j)
			b := uint32((i+1)*ring + j)
			m.Indices = append(m.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	m.ComputeBounds()
	return m
}

// buildRock builds a deformed sphere. The same seed always produces the same
// shape, so manifests can pin each rock's silhouette.
func buildRock(seed int64, radius float32, detail int) *scene.Mesh {
	if detail < 4 {
		detail = 4
	}
	rng := rand.New(rand.NewSource(seed))
	m := &scene.Mesh{}

	// Per-vertex radial jitter on a lat/long sphere. Pole rows share the
	// jitter of their first column so the seam stays closed.
	jitter := make([]float32, (detail+1)*(detail+1))
	for i := range jitter {
		jitter[i] = 1 + 0.35*(rng.Float32()-0.5)
	}

	for i := 0; i <= detail; i++ {
		theta := float32(i) / float32(detail) * math.Pi
		st, ct := math32.Sin(theta), math32.Cos(theta)
		for j := 0; j <= detail; j++ {
			phi := float32(j) / float32(detail) * 2 * math.Pi
			dir := common.V3(st*math32.Cos(phi), ct, st*math32.Sin(phi))

			k := i*(detail+1) + j
			if j == detail {
				k = i * (detail + 1) // wrap column shares column 0
			}
			if i == 0 || i == detail {
				k = i * (detail + 1)
			}

			m.Vertices = append(m.Vertices, scene.Vertex{
				Position: dir.Scale(radius * jitter[k]),
				Normal:   dir,
			})
		}
	}

	ring := detail + 1
	for i := 0; i < detail; i++ {
		for j := 0; j < detail; j++ {
			a := uint32(i*ring + j)
			b := uint32((i+1)*ring + j)
			m.Indices = append(m.Indices, a, b, a+1, b, b+1, a+1)
		}
	}
	m.ComputeBounds()
	return m
}
