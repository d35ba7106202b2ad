// Package audio plays the scene's two synthesized loops (ambient hum, rain
// noise) through beep. Playback rate and rain volume are never set
// instantaneously; a smoothing loop on its own ticker eases them toward
// their targets and stops once everything has converged, mirroring the
// render scheduler's run-only-while-changing discipline on the audio clock.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// convergenceEpsilon is the per-parameter threshold below which smoothing is
// considered done.
const convergenceEpsilon = 1e-3

// engineImpl is the implementation of the Engine interface.
type engineImpl struct {
	mu *sync.Mutex

	initialized bool
	mixer       *beep.Mixer

	humCtrl      *beep.Ctrl
	humResampler *beep.Resampler
	rainCtrl     *beep.Ctrl
	rainVolume   *effects.Volume

	currentRate float64
	targetRate  float64
	currentRain float64
	targetRain  float64

	smoothLambda float64
	tickInterval time.Duration

	// running tracks whether the smoothing goroutine is live. It exits as
	// soon as every parameter converges and restarts on the next retarget.
	running bool

	quit     chan struct{}
	quitOnce sync.Once
}

// Engine is the scene's audio output. All setters adjust targets only; the
// audible parameters converge over a few hundred milliseconds to avoid
// clicks. An unavailable output device degrades the engine to silent no-ops,
// never an error the caller must handle.
type Engine interface {
	// Start initializes the speaker and begins both loops. Failure to open
	// an output device is logged and leaves the engine silent.
	Start()

	// SetRate sets the target playback rate ratio for the ambient hum.
	// 1.0 is natural speed; the activation sequence pushes it up.
	//
	// Parameters:
	//   - ratio: the target resampling ratio
	SetRate(ratio float64)

	// SetRainVolume sets the target rain loop volume in [0, 1].
	//
	// Parameters:
	//   - volume: the target linear volume
	SetRainVolume(volume float64)

	// SetMuted pauses or resumes both loops immediately. Mute is a hard
	// gate, not a smoothed parameter.
	//
	// Parameters:
	//   - muted: true to silence all output
	SetMuted(muted bool)

	// Close stops the smoothing loop and silences both tracks.
	Close()
}

var _ Engine = &engineImpl{}

// NewEngine creates the audio engine with the provided options. Call Start
// to begin playback.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engineImpl{
		mu:           &sync.Mutex{},
		mixer:        &beep.Mixer{},
		currentRate:  1.0,
		targetRate:   1.0,
		smoothLambda: 8.0,
		tickInterval: 50 * time.Millisecond,
		quit:         make(chan struct{}),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *engineImpl) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		log.Printf("audio: no output device, running silent: %v", err)
		return
	}

	e.humResampler = beep.ResampleRatio(4, e.currentRate, NewHumGenerator(55, sampleRate))
	e.humCtrl = &beep.Ctrl{Streamer: e.humResampler}

	e.rainVolume = &effects.Volume{
		Streamer: NewRainGenerator(1),
		Base:     2,
		Silent:   true,
	}
	e.rainCtrl = &beep.Ctrl{Streamer: e.rainVolume}

	e.mixer.Add(e.humCtrl)
	e.mixer.Add(e.rainCtrl)
	speaker.Play(e.mixer)

	e.initialized = true
}

func (e *engineImpl) SetRate(ratio float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targetRate = ratio
	e.ensureSmoothing()
}

func (e *engineImpl) SetRainVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.targetRain = volume
	e.ensureSmoothing()
}

func (e *engineImpl) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	speaker.Lock()
	e.humCtrl.Paused = muted
	e.rainCtrl.Paused = muted
	speaker.Unlock()
}

func (e *engineImpl) Close() {
	e.quitOnce.Do(func() {
		close(e.quit)
	})

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.initialized {
		return
	}
	speaker.Lock()
	e.humCtrl.Paused = true
	e.rainCtrl.Paused = true
	speaker.Unlock()
}

// ensureSmoothing starts the smoothing goroutine if any parameter is off
// target and the loop is not already live. Caller must hold the mutex.
func (e *engineImpl) ensureSmoothing() {
	if !e.initialized || e.running || e.converged() {
		return
	}
	e.running = true
	go e.smooth()
}

// converged reports whether every smoothed parameter is within epsilon of
// its target. Caller must hold the mutex.
func (e *engineImpl) converged() bool {
	return math.Abs(e.currentRate-e.targetRate) < convergenceEpsilon &&
		math.Abs(e.currentRain-e.targetRain) < convergenceEpsilon
}

// smooth runs the parameter easing ticker until everything converges, then
// exits. A later retarget starts a fresh run.
func (e *engineImpl) smooth() {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.quit:
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			return
		case <-ticker.C:
			e.mu.Lock()
			factor := 1 - math.Exp(-e.smoothLambda*e.tickInterval.Seconds())
			e.currentRate += (e.targetRate - e.currentRate) * factor
			e.currentRain += (e.targetRain - e.currentRain) * factor

			done := e.converged()
			if done {
				e.currentRate = e.targetRate
				e.currentRain = e.targetRain
				e.running = false
			}
			rate := e.currentRate
			rain := e.currentRain
			e.mu.Unlock()

			e.apply(rate, rain)
			if done {
				return
			}
		}
	}
}

// apply pushes the smoothed values into the live streamers under the
// speaker lock.
func (e *engineImpl) apply(rate, rain float64) {
	speaker.Lock()
	e.humResampler.SetRatio(rate)
	if rain < convergenceEpsilon {
		e.rainVolume.Silent = true
	} else {
		e.rainVolume.Silent = false
		e.rainVolume.Volume = math.Log2(rain)
	}
	speaker.Unlock()
}
