package engine

import (
	"sync/atomic"
	"time"

	"github.com/hollis-dev/stargate/engine/profiler"
	"github.com/hollis-dev/stargate/engine/window"
)

// idleWaitSeconds is how long the loop parks in the platform event wait when
// nothing needs rendering. The timeout bounds the latency of Invalidate calls
// arriving from outside the event thread (the audio smoother, timers).
const idleWaitSeconds = 0.25

// maxDeltaTime caps the delta handed to the frame callback. After a long idle
// park the wall-clock gap can span seconds; animations step at most this far.
const maxDeltaTime float32 = 0.1

// engineImpl is the implementation of the Engine interface.
type engineImpl struct {
	window window.Window

	// pending is the frame request latch. Redundant Invalidate calls within
	// the same pending frame collapse into a single render pass.
	pending atomic.Bool

	quitting atomic.Bool

	frameCallback func(deltaTime float32) (settled bool)

	profiler         *profiler.Profiler
	profilingEnabled bool
}

// Engine runs the demand-driven frame loop. A frame renders only when some
// subsystem has requested one through Invalidate; while everything is settled
// the loop blocks in the platform event wait, waking on input.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Invalidate requests exactly one additional frame. Redundant calls
	// within the same pending frame are coalesced. Safe to call from any
	// goroutine.
	Invalidate()

	// SetFrameCallback registers the function called once per rendered
	// frame. The callback advances all continuous state and renders; it
	// returns true when every subsystem has settled. Returning false
	// re-arms the frame latch so a follow-up frame runs.
	//
	// Parameters:
	//   - callback: the per-frame update function, receiving the delta time
	//     in seconds
	SetFrameCallback(callback func(deltaTime float32) (settled bool))

	// EnableProfiler enables frame pacing output to the log.
	EnableProfiler()

	// DisableProfiler disables frame pacing output.
	DisableProfiler()

	// Run starts the frame loop (blocks until the window closes or Quit is
	// called). Must run on the main goroutine; the platform event pump is
	// thread-bound.
	Run()

	// Quit signals the frame loop to stop. Safe to call multiple times.
	Quit()
}

var _ Engine = &engineImpl{}

// NewEngine creates a new Engine with the provided options. The first frame
// is pre-armed so the scene renders once without waiting for input.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engineImpl{
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}
	e.pending.Store(true)
	return e
}

func (e *engineImpl) Window() window.Window {
	return e.window
}

func (e *engineImpl) Invalidate() {
	e.pending.Store(true)
}

func (e *engineImpl) SetFrameCallback(callback func(deltaTime float32) (settled bool)) {
	e.frameCallback = callback
}

func (e *engineImpl) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engineImpl) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engineImpl) Quit() {
	e.quitting.Store(true)
}

func (e *engineImpl) Run() {
	if e.window == nil {
		return
	}

	last := time.Now()

	for !e.quitting.Load() {
		var timeout float64
		if !e.pending.Load() {
			timeout = idleWaitSeconds
		}

		waitStart := time.Now()
		if !e.window.PumpEvents(timeout) {
			return
		}
		if e.profilingEnabled && timeout > 0 {
			e.profiler.RecordIdle(time.Since(waitStart))
		}

		if !e.pending.Load() {
			// Still idle after the wait. Keep the clock current so the next
			// frame doesn't see the park as elapsed animation time.
			last = time.Now()
			if e.profilingEnabled {
				e.profiler.Report()
			}
			continue
		}

		// Clear the latch before the callback: an Invalidate fired during the
		// frame (by an unsettled controller or an input handler) requests the
		// next frame rather than being swallowed.
		e.pending.Store(false)

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if dt > maxDeltaTime {
			dt = maxDeltaTime
		}

		if e.frameCallback != nil {
			if settled := e.frameCallback(dt); !settled {
				e.pending.Store(true)
			}
		}

		if e.profilingEnabled {
			e.profiler.RecordFrame(time.Since(now))
			e.profiler.Report()
		}
	}
}
