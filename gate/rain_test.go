package gate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/stargate/engine/scene"
)

func TestRainPoolAddedToScene(t *testing.T) {
	s := testGateScene()
	before := len(s.Nodes())
	c := NewRainController(newTestStore(), s, 9, WithRainPoolSize(40))
	defer c.Close()

	drops := 0
	for _, n := range s.Nodes() {
		if strings.HasPrefix(n.Name, "raindrop_") {
			drops++
			assert.False(t, n.Visible)
		}
	}
	assert.Equal(t, 40, drops)
	assert.Equal(t, before+40, len(s.Nodes()))
}

func TestRainFadesInAndWrapsWithinVolume(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewRainController(st, s, 9, WithRainPoolSize(40))
	defer c.Close()

	st.SetRaining(true)
	for i := 0; i < 600; i++ {
		assert.False(t, c.Update(frameDt))
	}

	for _, n := range s.NodesByPrefix("raindrop_") {
		assert.True(t, n.Visible)
		assert.Greater(t, n.Tint[3], float32(0))
		assert.GreaterOrEqual(t, n.Position.Y, float32(0))
		assert.LessOrEqual(t, n.Position.Y, float32(18))
		assert.LessOrEqual(t, absf(n.Position.X), float32(20.1))
		assert.LessOrEqual(t, absf(n.Position.Z), float32(20))
	}
}

func TestRainStopFadesOutAndHides(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewRainController(st, s, 9, WithRainPoolSize(20))
	defer c.Close()

	st.SetRaining(true)
	for i := 0; i < 300; i++ {
		c.Update(frameDt)
	}
	drops := s.NodesByPrefix("raindrop_")
	require.True(t, drops[0].Visible)

	st.SetRaining(false)
	runUntilSettled(t, c)

	for _, n := range drops {
		assert.False(t, n.Visible)
	}
	// A settled stopped field keeps reporting settled.
	assert.True(t, c.Update(frameDt))
}

func TestRainTogglePreservesDropState(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewRainController(st, s, 9, WithRainPoolSize(20))
	defer c.Close()

	st.SetRaining(true)
	for i := 0; i < 300; i++ {
		c.Update(frameDt)
	}
	st.SetRaining(false)
	runUntilSettled(t, c)

	// Hidden drops hold their positions.
	drops := s.NodesByPrefix("raindrop_")
	positions := make(map[*scene.Node]float32, len(drops))
	for _, n := range drops {
		positions[n] = n.Position.Y
	}
	c.Update(frameDt)
	for _, n := range drops {
		assert.Equal(t, positions[n], n.Position.Y)
	}

	// Restarting resumes each drop from where it stopped, no respawn: one
	// frame moves a drop by at most its fall speed times dt, or one wrap.
	st.SetRaining(true)
	c.Update(frameDt)
	moved := 0
	for _, n := range drops {
		delta := absf(n.Position.Y - positions[n])
		if delta > 0 {
			moved++
		}
		if delta > 9 {
			delta = 18 - delta
		}
		assert.LessOrEqual(t, delta, float32(0.3))
	}
	assert.Greater(t, moved, 0)
}

func TestNoDropsIsSettled(t *testing.T) {
	c := NewRainController(newTestStore(), nil, 9)
	defer c.Close()
	assert.True(t, c.Update(frameDt))
}
