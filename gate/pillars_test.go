package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

func TestHoverRaisesPillar(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(st, cam, s)
	defer c.Close()

	node := s.Index().Pillars[store.PillarCenter]
	base := node.Position

	c.PointerMoved(0, 0)
	runUntilSettled(t, c)

	assert.Equal(t, store.PillarCenter, st.State().HoveredPillar)
	assert.InDelta(t, 0.25, node.Position.DistanceTo(base), 1e-3)
	assert.Greater(t, node.Rotation.AngleTo(common.QuatIdentity()), float32(0.01))
}

func TestHoverChangeNotifiesSubscribersDuringUpdate(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(st, cam, s)
	defer c.Close()

	var seen []store.PillarSide
	unsubscribe := st.Subscribe(func(next, prev store.State) {
		if next.HoveredPillar != prev.HoveredPillar {
			seen = append(seen, next.HoveredPillar)
		}
	})
	defer unsubscribe()

	c.PointerMoved(0, 0)
	c.Update(frameDt)
	c.PointerMoved(0.95, 0.95)
	c.Update(frameDt)

	require.Equal(t, []store.PillarSide{store.PillarCenter, store.PillarNone}, seen)
}

func TestNilStorePillarsStillAnimate(t *testing.T) {
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(nil, cam, s)
	defer c.Close()

	node := s.Index().Pillars[store.PillarCenter]
	base := node.Position

	c.PointerMoved(0, 0)
	runUntilSettled(t, c)

	assert.InDelta(t, 0.25, node.Position.DistanceTo(base), 1e-3)
	c.Click()
}

func TestHoverOffReturnsExactBasePose(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(st, cam, s)
	defer c.Close()

	node := s.Index().Pillars[store.PillarCenter]
	base := node.Position
	baseRot := node.Rotation

	c.PointerMoved(0, 0)
	runUntilSettled(t, c)
	require.NotEqual(t, base, node.Position)

	c.PointerMoved(0.95, 0.95)
	runUntilSettled(t, c)

	assert.Equal(t, store.PillarNone, st.State().HoveredPillar)
	assert.Equal(t, base, node.Position)
	assert.Equal(t, baseRot, node.Rotation)
}

func TestClickHoveredPillarFocusesAndOpensPanel(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(st, cam, s)
	defer c.Close()

	c.PointerMoved(0, 0)
	c.Update(frameDt)
	c.Click()

	state := st.State()
	assert.Equal(t, store.PillarCenter, state.FocusedPillar)
	assert.Equal(t, store.ModePillarFocus, state.Mode)
	assert.Equal(t, "center", state.PanelSlug)
}

func TestClickWhileFocusedReturnsToDefault(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(st, cam, s)
	defer c.Close()

	c.PointerMoved(0, 0)
	c.Update(frameDt)
	c.Click()
	require.Equal(t, store.PillarCenter, st.State().FocusedPillar)

	// Any click while focused returns, even away from the pillars.
	c.PointerMoved(0.95, 0.95)
	c.Update(frameDt)
	c.Click()

	state := st.State()
	assert.Equal(t, store.PillarNone, state.FocusedPillar)
	assert.Equal(t, store.ModeDefault, state.Mode)
	assert.Equal(t, "", state.PanelSlug)
}

func TestClickEmptySpaceIsIgnored(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(st, cam, s)
	defer c.Close()

	c.PointerMoved(0.95, 0.95)
	c.Update(frameDt)
	c.Click()

	state := st.State()
	assert.Equal(t, store.PillarNone, state.FocusedPillar)
	assert.Equal(t, "", state.PanelSlug)
}

func TestCustomPanelSlugs(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	cam := testCamera()
	c := NewPillarController(st, cam, s, WithPanelSlugs(map[store.PillarSide]string{
		store.PillarCenter: "activation-log",
	}))
	defer c.Close()

	c.PointerMoved(0, 0)
	c.Update(frameDt)
	c.Click()

	assert.Equal(t, "activation-log", st.State().PanelSlug)
}

func TestNoPillarsIsInert(t *testing.T) {
	st := newTestStore()
	c := NewPillarController(st, testCamera(), scene.NewScene())
	defer c.Close()

	assert.True(t, c.Update(frameDt))
	c.Click()
	assert.Equal(t, store.PillarNone, st.State().FocusedPillar)
}
