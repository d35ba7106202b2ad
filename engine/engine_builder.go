package engine

import (
	"github.com/hollis-dev/stargate/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engineImpl)

// WithProfiling enables or disables frame pacing output.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engineImpl) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine pumps events for.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engineImpl) {
		e.window = w
	}
}

// WithFrameCallback registers the per-frame update function during
// construction.
//
// Parameters:
//   - callback: the per-frame update function
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(deltaTime float32) (settled bool)) EngineBuilderOption {
	return func(e *engineImpl) {
		e.frameCallback = callback
	}
}
