package gate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// repelTestController builds a bare impl for exercising the repulsion math
// with an identity projection, where world X/Y read directly as NDC.
func repelTestController() *rockControllerImpl {
	return &rockControllerImpl{
		mu:            &sync.Mutex{},
		repelRadius:   0.35,
		repelStrength: 0.8,
	}
}

func identityMatrix() [16]float32 {
	var m [16]float32
	common.Identity(m[:])
	return m
}

func TestRepulsionZeroOutsideRadius(t *testing.T) {
	c := repelTestController()
	right := common.V3(1, 0, 0)
	up := common.V3(0, 1, 0)

	push := c.repulsion(identityMatrix(), right, up, common.V3(1, 0, 0))
	assert.Equal(t, common.Vec3{}, push)

	// Exactly on the radius still counts as outside.
	push = c.repulsion(identityMatrix(), right, up, common.V3(0.35, 0, 0))
	assert.Equal(t, common.Vec3{}, push)
}

func TestRepulsionFalloffIsMonotonic(t *testing.T) {
	c := repelTestController()
	right := common.V3(1, 0, 0)
	up := common.V3(0, 1, 0)

	near := c.repulsion(identityMatrix(), right, up, common.V3(0.1, 0, 0)).Length()
	far := c.repulsion(identityMatrix(), right, up, common.V3(0.25, 0, 0)).Length()
	require.Greater(t, near, float32(0))
	require.Greater(t, far, float32(0))
	assert.Greater(t, near, far)
}

func TestRepulsionMaximalAtPointer(t *testing.T) {
	c := repelTestController()
	right := common.V3(1, 0, 0)
	up := common.V3(0, 1, 0)

	// Dead-center degenerates to a push along the camera's right vector at
	// full strength.
	push := c.repulsion(identityMatrix(), right, up, common.V3(0, 0, 0))
	assert.InDelta(t, 0.8, push.X, 1e-6)
	assert.InDelta(t, 0, push.Y, 1e-6)
}

func TestRepulsionPushesAwayFromPointer(t *testing.T) {
	c := repelTestController()
	right := common.V3(1, 0, 0)
	up := common.V3(0, 1, 0)

	// Rock up-right of the pointer gets pushed further up-right.
	push := c.repulsion(identityMatrix(), right, up, common.V3(0.1, 0.1, 0))
	assert.Greater(t, push.X, float32(0))
	assert.Greater(t, push.Y, float32(0))
}

func TestRocksDriftAroundBase(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewRockController(st, testCamera(), s, 7)
	defer c.Close()

	rocks := s.Index().Rocks
	require.NotEmpty(t, rocks)
	bases := make([]common.Vec3, len(rocks))
	for i, r := range rocks {
		bases[i] = r.Position
	}

	// Pointer stays off-screen, so only the sinusoid drift applies.
	for i := 0; i < 600; i++ {
		assert.False(t, c.Update(frameDt))
	}
	moved := 0
	for i, r := range rocks {
		assert.Less(t, r.Position.DistanceTo(bases[i]), float32(0.3))
		if r.Position.DistanceTo(bases[i]) > 1e-4 {
			moved++
		}
	}
	assert.Greater(t, moved, 0)
}

func TestFreeLookSuppressesRepulsion(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	// One rock dead ahead of the camera.
	rock := s.Index().Rocks[0]
	rock.Position = common.V3(0, 0, 0)
	s.RefreshIndex()

	c := NewRockController(st, testCamera(), s, 7, WithDrift(0, 0))
	defer c.Close()

	c.PointerMoved(0, 0)
	st.SetMode(store.ModeFreeLook)
	for i := 0; i < 300; i++ {
		c.Update(frameDt)
	}
	assert.Less(t, rock.Position.DistanceTo(common.Vec3{}), float32(0.05))

	st.SetMode(store.ModeDefault)
	for i := 0; i < 300; i++ {
		c.Update(frameDt)
	}
	assert.Greater(t, rock.Position.DistanceTo(common.Vec3{}), float32(0.3))
}

func TestNoRocksIsSettled(t *testing.T) {
	c := NewRockController(newTestStore(), testCamera(), scene.NewScene(), 7)
	defer c.Close()
	assert.True(t, c.Update(frameDt))
}
