package light

import (
	"github.com/hollis-dev/stargate/common"
)

// LightBuilderOption is a functional option for configuring a Light at
// creation time.
type LightBuilderOption func(*lightImpl)

// WithName sets the light's identifier.
//
// Parameters:
//   - name: the identifier to set
//
// Returns:
//   - LightBuilderOption: the option function
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.name = name
	}
}

// WithPosition sets the initial world-space position of the light.
//
// Parameters:
//   - p: the position to set
//
// Returns:
//   - LightBuilderOption: the option function
func WithPosition(p common.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithDirection sets the initial direction of the light. The direction is
// normalized.
//
// Parameters:
//   - d: the direction to set
//
// Returns:
//   - LightBuilderOption: the option function
func WithDirection(d common.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = d.Normalized()
	}
}

// WithColor sets the initial RGB color of the light.
//
// Parameters:
//   - r: red component
//   - g: green component
//   - b: blue component
//
// Returns:
//   - LightBuilderOption: the option function
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity sets the initial intensity multiplier of the light.
//
// Parameters:
//   - intensity: the intensity to set
//
// Returns:
//   - LightBuilderOption: the option function
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange sets the maximum attenuation distance for point lights.
//
// Parameters:
//   - lightRange: the range to set
//
// Returns:
//   - LightBuilderOption: the option function
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithEnabled sets whether the light starts enabled.
//
// Parameters:
//   - enabled: the enabled state to set
//
// Returns:
//   - LightBuilderOption: the option function
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
