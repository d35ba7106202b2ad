package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldRampsProgress(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewActivationController(st, s, WithActivationDurations(2.5, 1.2))

	c.SetHeld(true)
	const dt = float32(0.025)
	for i := 0; i < 50; i++ {
		assert.False(t, c.Update(dt))
	}

	// 1.25s of a 2.5s ramp is half charge.
	assert.InDelta(t, 0.5, st.State().ActivationProgress, 1e-3)
	assert.InDelta(t, 0.5, s.Index().RingOuter.Glow, 1e-3)
	assert.InDelta(t, 0.5, s.Index().RingInner.Glow, 1e-3)
}

func TestReleaseDecaysToZero(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewActivationController(st, s)

	c.SetHeld(true)
	for i := 0; i < 20; i++ {
		c.Update(frameDt)
	}
	require.Greater(t, st.State().ActivationProgress, float32(0))

	c.SetHeld(false)
	runUntilSettled(t, c)
	assert.Equal(t, float32(0), st.State().ActivationProgress)
	assert.Equal(t, float32(0), s.Index().RingOuter.Glow)
	assert.False(t, st.State().Transitioned)
}

func TestShakeIsQuadraticInProgress(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewActivationController(st, s, WithMaxShake(0.1))

	assert.Equal(t, float32(0), c.ShakeMagnitude())

	c.SetHeld(true)
	const dt = float32(0.025)
	for i := 0; i < 50; i++ {
		c.Update(dt)
	}
	// Half charge shakes at a quarter of the maximum.
	assert.InDelta(t, 0.1*0.25, c.ShakeMagnitude(), 1e-3)
}

func TestFullChargeFiresSingleFlashAndLatches(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewActivationController(st, s,
		WithActivationDurations(0.5, 0.2),
		WithFlashEnvelope(0.05, 0.02, 0.1),
	)

	c.SetHeld(true)
	var peakOverlay float32
	for i := 0; i < 2400; i++ {
		c.Update(frameDt)
		if overlay := s.Environment().FlashOverlay; overlay > peakOverlay {
			peakOverlay = overlay
		}
		if st.State().Transitioned {
			break
		}
	}

	require.True(t, st.State().Transitioned)
	assert.Equal(t, float32(1), peakOverlay)
	assert.Equal(t, float32(0), s.Environment().FlashOverlay)
	assert.Equal(t, float32(1), st.State().ActivationProgress)

	// Terminal: further input and frames change nothing.
	c.SetHeld(true)
	assert.True(t, c.Update(frameDt))
	assert.Equal(t, float32(0), s.Environment().FlashOverlay)
	assert.Equal(t, float32(0), c.ShakeMagnitude())
}

func TestScrubNeverFiresBelowFull(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewActivationController(st, s)

	// Repeatedly charge most of the way and let it drain.
	for cycle := 0; cycle < 3; cycle++ {
		c.SetHeld(true)
		for i := 0; i < 100; i++ {
			c.Update(frameDt)
		}
		require.Less(t, st.State().ActivationProgress, float32(1))
		c.SetHeld(false)
		runUntilSettled(t, c)
	}

	assert.False(t, st.State().Transitioned)
	assert.Equal(t, float32(0), s.Environment().FlashOverlay)
}
