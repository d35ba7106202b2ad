package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDustHiddenAtZeroProgress(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewDustController(st, s, 13, WithDustPoolSize(40))
	defer c.Close()

	assert.True(t, c.Update(frameDt))
	for _, n := range s.NodesByPrefix("dust_") {
		assert.False(t, n.Visible)
	}
}

func TestDustDensityScalesWithProgress(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewDustController(st, s, 13, WithDustPoolSize(40))
	defer c.Close()

	countVisible := func() int {
		visible := 0
		for _, n := range s.NodesByPrefix("dust_") {
			if n.Visible {
				visible++
			}
		}
		return visible
	}

	st.SetActivationProgress(0.5)
	require.False(t, c.Update(frameDt))
	half := countVisible()
	assert.Equal(t, 20, half)

	st.SetActivationProgress(1)
	c.Update(frameDt)
	assert.Equal(t, 40, countVisible())

	// Scrubbing back down thins the field again.
	st.SetActivationProgress(0.25)
	c.Update(frameDt)
	assert.Equal(t, 10, countVisible())
}

func TestDustMotesWrapWithinColumn(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewDustController(st, s, 13, WithDustPoolSize(40))
	defer c.Close()

	st.SetActivationProgress(1)
	for i := 0; i < 1200; i++ {
		assert.False(t, c.Update(frameDt))
	}
	for _, n := range s.NodesByPrefix("dust_") {
		assert.GreaterOrEqual(t, n.Position.Y, float32(0))
		assert.LessOrEqual(t, n.Position.Y, float32(7))
		assert.LessOrEqual(t, absf(n.Position.X), float32(4.5))
		assert.LessOrEqual(t, absf(n.Position.Z), float32(4.5))
	}
}

func TestDustOpacityTracksProgress(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewDustController(st, s, 13, WithDustPoolSize(10))
	defer c.Close()

	st.SetActivationProgress(1)
	c.Update(frameDt)
	fullAlpha := s.NodesByPrefix("dust_")[0].Tint[3]
	require.Greater(t, fullAlpha, float32(0))

	st.SetActivationProgress(0.5)
	c.Update(frameDt)
	assert.InDelta(t, fullAlpha/2, s.NodesByPrefix("dust_")[0].Tint[3], 1e-5)
}

func TestNoMotesIsSettled(t *testing.T) {
	c := NewDustController(newTestStore(), nil, 13)
	defer c.Close()
	assert.True(t, c.Update(frameDt))
}
