package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a function that modifies the renderer during
// construction.
type RendererBuilderOption func(*rendererImpl)

// WithMSAA sets the multisample anti-aliasing sample count.
//
// Parameters:
//   - samples: the sample count, MSAAOff or MSAA4x
//
// Returns:
//   - RendererBuilderOption: the option function
func WithMSAA(samples MSAASampleCount) RendererBuilderOption {
	return func(r *rendererImpl) {
		if samples != MSAAOff && samples != MSAA4x {
			return
		}
		r.sampleCount = samples
	}
}

// WithPresentMode sets how finished frames are delivered to the display.
//
// Parameters:
//   - mode: PresentModeVSync or PresentModeUncapped
//
// Returns:
//   - RendererBuilderOption: the option function
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *rendererImpl) {
		switch mode {
		case PresentModeVSync:
			r.presentMode = wgpu.PresentModeFifo
		case PresentModeUncapped:
			r.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithForceSoftwareRenderer forces the fallback software adapter. Useful for
// environments without a GPU.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: the option function
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.forceFallbackAdapter = force
	}
}

// WithPalette registers a named sky palette at construction time, before the
// first frame renders.
//
// Parameters:
//   - name: the background texture name the palette is keyed by
//   - palette: the gradient colors
//
// Returns:
//   - RendererBuilderOption: the option function
func WithPalette(name string, palette SkyPalette) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.palettes[name] = palette
	}
}
