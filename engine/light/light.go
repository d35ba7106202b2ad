package light

import (
	"github.com/hollis-dev/stargate/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for the key sun light and the night-time moonlight. Affects the
	// whole scene uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a
	// position, attenuating with distance up to a configurable range. Used for
	// the lightning flash source and the gate glow.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name       string
	lightType  LightType
	position   common.Vec3
	direction  common.Vec3
	color      [3]float32
	intensity  float32
	lightRange float32
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities whose intensity and color are driven every
// frame by the ambient controllers (day/night blend, lightning flashes).
// They carry no GPU state of their own; the renderer reads them when filling
// its per-frame uniform data.
type Light interface {
	// Name returns the light's identifier, used by the scene index to resolve
	// the lights the ambient controllers drive. May be empty.
	Name() string

	// Type returns the kind of light source.
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	Position() common.Vec3

	// Direction returns the normalized direction of the light.
	// Meaningless for point lights.
	Direction() common.Vec3

	// Color returns the RGB color of the light.
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Range returns the maximum attenuation distance for point lights.
	// Meaningless for directional lights.
	Range() float32

	// Enabled returns whether this light contributes to the frame.
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	SetPosition(p common.Vec3)

	// SetDirection sets the direction of the light and normalizes it.
	SetDirection(d common.Vec3)

	// SetColor sets the RGB color of the light.
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetRange sets the maximum attenuation distance.
	SetRange(lightRange float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults
// and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional or point)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		direction:  common.V3(0, -1, 0),
		color:      [3]float32{1, 1, 1},
		intensity:  1.0,
		lightRange: 10.0,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() common.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(p common.Vec3) {
	l.position = p
}

func (l *lightImpl) SetDirection(d common.Vec3) {
	l.direction = d.Normalized()
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
