package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Wraps the platform-specific window implementation with a common interface.
//
// Input callbacks fire on the thread that pumps events (the main thread).
// Handlers must stay cheap: write into plain variables or the shared store
// and return; never perform per-frame work inside an event callback.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	// The window captures scroll entirely; deltas are never forwarded to any
	// other consumer.
	//
	// Parameters:
	//   - callback: function receiving the scroll delta in wheel ticks
	//     (positive = up)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetPointerMoveCallback sets the callback for pointer movement.
	// Coordinates are delivered in normalized device coordinates: [-1, 1]
	// on each axis with +Y up, continuously overwritten by the most recent
	// event.
	//
	// Parameters:
	//   - callback: function receiving the pointer position in NDC
	SetPointerMoveCallback(callback func(ndcX, ndcY float32))

	// SetPointerDownCallback sets the callback for primary-button press.
	//
	// Parameters:
	//   - callback: function receiving the pointer position in NDC
	SetPointerDownCallback(callback func(ndcX, ndcY float32))

	// SetPointerUpCallback sets the callback for primary-button release.
	//
	// Parameters:
	//   - callback: function receiving the pointer position in NDC
	SetPointerUpCallback(callback func(ndcX, ndcY float32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating
	// a WebGPU surface. The descriptor is platform-appropriate and created by
	// the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// PumpEvents processes pending window events. When timeoutSeconds is
	// greater than zero the call blocks until an event arrives or the
	// timeout elapses, which lets the demand-driven render loop
	// sleep while the scene is fully settled. A timeout of zero polls
	// without blocking.
	//
	// Parameters:
	//   - timeoutSeconds: maximum time to wait for events (0 = poll)
	//
	// Returns:
	//   - bool: true if the window is still running
	PumpEvents(timeoutSeconds float64) bool

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	// width/height track the framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onPointerMove func(ndcX, ndcY float32)
	onPointerDown func(ndcX, ndcY float32)
	onPointerUp   func(ndcX, ndcY float32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:  "Stargate",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(ndcX, ndcY float32)) {
	w.onPointerMove = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(ndcX, ndcY float32)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(ndcX, ndcY float32)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) PumpEvents(timeoutSeconds float64) bool {
	return platformPumpEvents(w, timeoutSeconds)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
