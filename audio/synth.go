package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
)

// humGenerator streams the ambient gate hum: two slightly detuned low sine
// waves whose beating gives the drone its slow pulse.
type humGenerator struct {
	freq   float64
	detune float64
	phaseA float64
	phaseB float64
	rate   beep.SampleRate
}

// NewHumGenerator creates the looping ambient hum streamer.
//
// Parameters:
//   - freq: the fundamental frequency in Hz
//   - rate: the output sample rate
//
// Returns:
//   - beep.Streamer: the hum streamer, infinite
func NewHumGenerator(freq float64, rate beep.SampleRate) beep.Streamer {
	return &humGenerator{
		freq:   freq,
		detune: freq * 1.01,
		rate:   rate,
	}
}

func (h *humGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		val := 0.5*math.Sin(2*math.Pi*h.phaseA) + 0.5*math.Sin(2*math.Pi*h.phaseB)
		val *= 0.35

		samples[i][0] = val
		samples[i][1] = val

		h.phaseA += h.freq / float64(h.rate)
		h.phaseA -= math.Floor(h.phaseA)
		h.phaseB += h.detune / float64(h.rate)
		h.phaseB -= math.Floor(h.phaseB)
	}
	return len(samples), true
}

func (h *humGenerator) Err() error { return nil }

// rainGenerator streams filtered noise approximating rainfall. A one-pole
// lowpass softens the white noise into a steady hiss.
type rainGenerator struct {
	rng  *rand.Rand
	prev float64
}

// NewRainGenerator creates the looping rain noise streamer.
//
// Parameters:
//   - seed: the noise randomization seed
//
// Returns:
//   - beep.Streamer: the rain streamer, infinite
func NewRainGenerator(seed int64) beep.Streamer {
	return &rainGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (r *rainGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	const alpha = 0.15
	for i := range samples {
		white := r.rng.Float64()*2 - 1
		r.prev += alpha * (white - r.prev)
		val := r.prev * 0.8

		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (r *rainGenerator) Err() error { return nil }
