package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumGeneratorStreamsForever(t *testing.T) {
	hum := NewHumGenerator(55, beep.SampleRate(44100))

	buf := make([][2]float64, 512)
	for block := 0; block < 4; block++ {
		n, ok := hum.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
	assert.NoError(t, hum.Err())
}

func TestHumGeneratorStaysInRangeAndOscillates(t *testing.T) {
	hum := NewHumGenerator(55, beep.SampleRate(44100))

	buf := make([][2]float64, 4410)
	hum.Stream(buf)

	var peak float64
	for _, s := range buf {
		assert.Equal(t, s[0], s[1])
		assert.LessOrEqual(t, s[0], 0.71)
		assert.GreaterOrEqual(t, s[0], -0.71)
		if s[0] > peak {
			peak = s[0]
		}
	}
	// A tenth of a second of a 55 Hz drone has audible swings.
	assert.Greater(t, peak, 0.1)
}

func TestRainGeneratorDeterministicPerSeed(t *testing.T) {
	a := NewRainGenerator(7)
	b := NewRainGenerator(7)

	bufA := make([][2]float64, 1024)
	bufB := make([][2]float64, 1024)
	a.Stream(bufA)
	b.Stream(bufB)
	assert.Equal(t, bufA, bufB)
}

func TestRainGeneratorIsSoftenedNoise(t *testing.T) {
	rain := NewRainGenerator(7)

	buf := make([][2]float64, 44100)
	n, ok := rain.Stream(buf)
	require.True(t, ok)
	require.Equal(t, len(buf), n)

	// The lowpass keeps successive samples close together and the whole
	// stream well inside unit range.
	for i, s := range buf {
		assert.LessOrEqual(t, s[0], 1.0)
		assert.GreaterOrEqual(t, s[0], -1.0)
		if i > 0 {
			assert.LessOrEqual(t, s[0]-buf[i-1][0], 0.3)
			assert.GreaterOrEqual(t, s[0]-buf[i-1][0], -0.3)
		}
	}
	assert.NoError(t, rain.Err())
}
