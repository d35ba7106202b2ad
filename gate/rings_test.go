package gate

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
)

func TestRingsCounterRotate(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewRingController(st, s)
	defer c.Close()

	outer := s.Index().RingOuter
	inner := s.Index().RingInner

	assert.False(t, c.Update(frameDt))

	// A positive spin about +Z carries +X toward +Y; the counter-spin carries
	// it the other way.
	outerX := outer.Rotation.Rotate(common.V3(1, 0, 0))
	innerX := inner.Rotation.Rotate(common.V3(1, 0, 0))
	assert.Greater(t, outerX.Y, float32(0))
	assert.Less(t, innerX.Y, float32(0))
	assert.InDelta(t, outerX.Y, -innerX.Y, 1e-5)
}

func TestRingSpeedScalesWithProgress(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewRingController(st, s, WithRingSpeeds(0.2, 2.0))
	defer c.Close()

	outer := s.Index().RingOuter

	// For small spin angles the rotated +X basis vector's Y component reads
	// the accumulated angle directly.
	c.Update(frameDt)
	idleAngle := outer.Rotation.Rotate(common.V3(1, 0, 0)).Y
	require.InDelta(t, 0.2*frameDt, idleAngle, 1e-5)

	st.SetActivationProgress(1)
	c.Update(frameDt)
	chargedAngle := outer.Rotation.Rotate(common.V3(1, 0, 0)).Y
	assert.InDelta(t, float64(math32.Sin(2.2*frameDt)), float64(chargedAngle), 1e-5)
}

func TestTransitionFreezesRings(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewRingController(st, s)
	defer c.Close()

	outer := s.Index().RingOuter
	c.Update(frameDt)
	frozen := outer.Rotation

	st.SetTransitioned()
	assert.True(t, c.Update(frameDt))
	assert.Equal(t, frozen, outer.Rotation)
}

func TestNoRingsIsInert(t *testing.T) {
	c := NewRingController(newTestStore(), scene.NewScene())
	defer c.Close()
	assert.True(t, c.Update(frameDt))
}
