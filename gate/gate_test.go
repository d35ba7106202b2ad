package gate

import (
	"math"
	"testing"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/light"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

const frameDt = float32(1.0 / 60.0)

// testQuadMesh builds a unit quad in the XY plane facing +Z, big enough to
// hit-test against.
func testQuadMesh() *scene.Mesh {
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

func testCamera() camera.Camera {
	eye := common.V3(0, 0, 5)
	return camera.NewCamera(
		camera.WithPose(eye, common.QuatLookAt(eye, common.V3(0, 0, 0), common.V3(0, 1, 0))),
		camera.WithFov(float32(60.0*math.Pi/180.0)),
		camera.WithAspect(1),
	)
}

// testGateScene builds a scene with the ring pair, the three pillars spread
// along X, the three named lights, and a couple of rocks.
func testGateScene() scene.Scene {
	s := scene.NewScene()
	mesh := testQuadMesh()

	outer := scene.NewNode(scene.NodeRingOuter, mesh)
	outer.Position = common.V3(0, 3, 0)
	s.AddNode(outer)
	inner := scene.NewNode(scene.NodeRingInner, mesh)
	inner.Position = common.V3(0, 3, 0)
	s.AddNode(inner)

	left := scene.NewNode(scene.NodePillarLeft, mesh)
	left.Position = common.V3(-2, 0, 0)
	s.AddNode(left)
	center := scene.NewNode(scene.NodePillarCenter, mesh)
	s.AddNode(center)
	right := scene.NewNode(scene.NodePillarRight, mesh)
	right.Position = common.V3(2, 0, 0)
	s.AddNode(right)

	for i, x := range []float32{-4, 4} {
		rock := scene.NewNode(scene.RockPrefix+string(rune('1'+i)), mesh)
		rock.Position = common.V3(x, 1, -2)
		s.AddNode(rock)
	}

	s.AddLight(light.NewLight(light.LightTypeDirectional,
		light.WithName(scene.LightKey),
		light.WithDirection(common.V3(-0.3, -1, -0.2)),
		light.WithIntensity(1.0),
	))
	s.AddLight(light.NewLight(light.LightTypeDirectional,
		light.WithName(scene.LightMoon),
		light.WithDirection(common.V3(0.2, -1, 0.1)),
		light.WithIntensity(0),
	))
	s.AddLight(light.NewLight(light.LightTypePoint,
		light.WithName(scene.LightStrike),
		light.WithPosition(common.V3(0, 9, -6)),
		light.WithIntensity(0),
		light.WithRange(60),
	))

	s.RefreshIndex()
	return s
}

// runUntilSettled drives the controller until it reports settled, failing the
// test if it never does within the frame budget.
func runUntilSettled(t *testing.T, c Controller) {
	t.Helper()
	for i := 0; i < 2400; i++ {
		if c.Update(frameDt) {
			return
		}
	}
	t.Fatal("controller did not settle within frame budget")
}

func newTestStore() *store.Store {
	return store.New(store.State{})
}
