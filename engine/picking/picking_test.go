package picking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/scene"
)

// quadMesh builds a unit quad in the XY plane facing +Z.
func quadMesh() *scene.Mesh {
	m := &scene.Mesh{
		Vertices: []scene.Vertex{
			{Position: common.V3(-0.5, -0.5, 0)},
			{Position: common.V3(0.5, -0.5, 0)},
			{Position: common.V3(0.5, 0.5, 0)},
			{Position: common.V3(-0.5, 0.5, 0)},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	m.ComputeBounds()
	return m
}

func lookingAtOrigin() camera.Camera {
	eye := common.V3(0, 0, 5)
	return camera.NewCamera(
		camera.WithPose(eye, common.QuatLookAt(eye, common.V3(0, 0, 0), common.V3(0, 1, 0))),
		camera.WithFov(float32(60.0*math.Pi/180.0)),
		camera.WithAspect(1),
	)
}

func TestHoverHitsCenteredQuad(t *testing.T) {
	cam := lookingAtOrigin()
	node := scene.NewNode("pillar_center", quadMesh())
	p := NewPicker()

	p.PointerMoved(0, 0)
	hit := p.Hover(cam.InverseViewProjectionMatrix(), []*scene.Node{node})
	require.NotNil(t, hit)
	assert.Equal(t, "pillar_center", hit.Name)
}

func TestHoverMissesOffsetPointer(t *testing.T) {
	cam := lookingAtOrigin()
	node := scene.NewNode("pillar_center", quadMesh())
	p := NewPicker()

	p.PointerMoved(0.9, 0.9)
	hit := p.Hover(cam.InverseViewProjectionMatrix(), []*scene.Node{node})
	assert.Nil(t, hit)
}

func TestHoverCachesUntilPointerMoves(t *testing.T) {
	cam := lookingAtOrigin()
	node := scene.NewNode("pillar_center", quadMesh())
	p := NewPicker()

	p.PointerMoved(0, 0)
	first := p.Hover(cam.InverseViewProjectionMatrix(), []*scene.Node{node})
	require.NotNil(t, first)

	// Hiding the node without moving the pointer keeps the cached hit.
	node.Visible = false
	cached := p.Hover(cam.InverseViewProjectionMatrix(), []*scene.Node{node})
	assert.Equal(t, first, cached)

	// Moving the pointer re-runs the test and observes the hidden node.
	p.PointerMoved(0.01, 0.01)
	assert.Nil(t, p.Hover(cam.InverseViewProjectionMatrix(), []*scene.Node{node}))
}

func TestHoverNearestOfOverlappingCandidates(t *testing.T) {
	cam := lookingAtOrigin()
	near := scene.NewNode("pillar_left", quadMesh())
	near.Position = common.V3(0, 0, 1)
	far := scene.NewNode("pillar_right", quadMesh())
	far.Position = common.V3(0, 0, -1)

	p := NewPicker()
	p.PointerMoved(0, 0)
	hit := p.Hover(cam.InverseViewProjectionMatrix(), []*scene.Node{far, near})
	require.NotNil(t, hit)
	assert.Equal(t, "pillar_left", hit.Name)
}

func TestHoverToleratesNilAndMeshlessCandidates(t *testing.T) {
	cam := lookingAtOrigin()
	p := NewPicker()
	p.PointerMoved(0, 0)

	bare := scene.NewNode("empty", nil)
	assert.Nil(t, p.Hover(cam.InverseViewProjectionMatrix(), []*scene.Node{nil, bare}))
}
