package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis-dev/stargate/engine/scene"
)

// strikeOptions pins down the random countdown so envelope tests are
// deterministic regardless of seed.
func strikeOptions() []LightningBuilderOption {
	return []LightningBuilderOption{
		WithStrikeDelay(0.1, 0.1),
		WithDoubleFlash(0, 0.12, 0.55),
	}
}

func TestStrikeEnvelopeReachesPeakAndDecays(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewLightningController(st, s, 1, strikeOptions()...)
	defer c.Close()

	strike := s.Index().Lights[scene.LightStrike]
	st.SetRaining(true)

	const dt = float32(0.005)
	var peak float32
	sawZeroAfterPeak := false
	for i := 0; i < 1000; i++ {
		c.Update(dt)
		intensity := strike.Intensity()
		if intensity > peak {
			peak = intensity
		}
		if peak > 0 && intensity == 0 {
			sawZeroAfterPeak = true
			break
		}
	}

	// The hold phase pins the light at exactly the configured peak.
	assert.Equal(t, float32(6.0), peak)
	assert.True(t, sawZeroAfterPeak, "strike never decayed back to zero")
}

func TestStrikeMovesHorizontallyWithinRange(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewLightningController(st, s, 2, strikeOptions()...)
	defer c.Close()

	strike := s.Index().Lights[scene.LightStrike]
	base := strike.Position()
	st.SetRaining(true)

	const dt = float32(0.005)
	for i := 0; i < 1000; i++ {
		c.Update(dt)
		if strike.Intensity() > 0 {
			break
		}
	}
	require.Greater(t, strike.Intensity(), float32(0))

	pos := strike.Position()
	assert.LessOrEqual(t, absf(pos.X-base.X), float32(12.0))
	assert.Equal(t, base.Y, pos.Y)
	assert.Equal(t, base.Z, pos.Z)
}

func TestDoubleFlashIsDimmer(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewLightningController(st, s, 3,
		WithStrikeDelay(0.1, 0.1),
		WithDoubleFlash(1.0, 0.12, 0.5),
	)
	defer c.Close()

	strike := s.Index().Lights[scene.LightStrike]
	st.SetRaining(true)

	const dt = float32(0.005)
	var firstPeak, secondPeak float32
	seenGap := false
	for i := 0; i < 2000; i++ {
		c.Update(dt)
		intensity := strike.Intensity()
		if !seenGap {
			if intensity > firstPeak {
				firstPeak = intensity
			}
			if firstPeak > 0 && intensity == 0 {
				seenGap = true
			}
		} else {
			if intensity > secondPeak {
				secondPeak = intensity
			}
			if secondPeak > 0 && intensity == 0 {
				break
			}
		}
	}

	assert.Equal(t, float32(6.0), firstPeak)
	assert.Equal(t, float32(3.0), secondPeak)
}

func TestRainStopEasesStrikeOff(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewLightningController(st, s, 4, strikeOptions()...)
	defer c.Close()

	strike := s.Index().Lights[scene.LightStrike]
	st.SetRaining(true)

	const dt = float32(0.005)
	for i := 0; i < 1000; i++ {
		c.Update(dt)
		if strike.Intensity() > 0 {
			break
		}
	}
	require.Greater(t, strike.Intensity(), float32(0))

	// Cutting the rain mid-flash eases the light down instead of popping.
	st.SetRaining(false)
	prev := strike.Intensity()
	settled := false
	for i := 0; i < 2400; i++ {
		settled = c.Update(frameDt)
		assert.LessOrEqual(t, strike.Intensity(), prev)
		prev = strike.Intensity()
		if settled {
			break
		}
	}
	assert.True(t, settled)
	assert.Equal(t, float32(0), strike.Intensity())
}

func TestNoStrikesWithoutRain(t *testing.T) {
	st := newTestStore()
	s := testGateScene()
	c := NewLightningController(st, s, 5, strikeOptions()...)
	defer c.Close()

	strike := s.Index().Lights[scene.LightStrike]
	for i := 0; i < 600; i++ {
		assert.True(t, c.Update(frameDt))
	}
	assert.Equal(t, float32(0), strike.Intensity())
}

func TestLightningWithoutStrikeLightIsInert(t *testing.T) {
	c := NewLightningController(newTestStore(), scene.NewScene(), 6)
	defer c.Close()
	assert.True(t, c.Update(frameDt))
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
