package gate

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/light"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// DayNightTargets is one full set of environment parameters the blend eases
// toward. Two of these (day and night) fully describe both ends of the cycle.
type DayNightTargets struct {
	KeyIntensity        float32
	MoonIntensity       float32
	AmbientColor        [3]float32
	AmbientIntensity    float32
	FogColor            [3]float32
	FogNear             float32
	FogFar              float32
	BloomIntensity      float32
	StarsOpacity        float32
	Background          string
	BackgroundIntensity float32
}

// DefaultDayTargets returns the daytime parameter set.
func DefaultDayTargets() DayNightTargets {
	return DayNightTargets{
		KeyIntensity:        1.0,
		MoonIntensity:       0,
		AmbientColor:        [3]float32{1, 1, 1},
		AmbientIntensity:    0.6,
		FogColor:            [3]float32{0.7, 0.75, 0.8},
		FogNear:             10,
		FogFar:              80,
		BloomIntensity:      0.2,
		StarsOpacity:        0,
		Background:          "day",
		BackgroundIntensity: 1.0,
	}
}

// DefaultNightTargets returns the night-time parameter set.
func DefaultNightTargets() DayNightTargets {
	return DayNightTargets{
		KeyIntensity:        0.05,
		MoonIntensity:       0.35,
		AmbientColor:        [3]float32{0.4, 0.5, 0.8},
		AmbientIntensity:    0.25,
		FogColor:            [3]float32{0.05, 0.07, 0.12},
		FogNear:             8,
		FogFar:              50,
		BloomIntensity:      0.5,
		StarsOpacity:        1,
		Background:          "night",
		BackgroundIntensity: 0.8,
	}
}

// dayNightControllerImpl is the implementation of the DayNightController
// interface.
type dayNightControllerImpl struct {
	mu *sync.Mutex

	scene    scene.Scene
	keyLight light.Light
	moon     light.Light

	day   DayNightTargets
	night DayNightTargets

	easeLambda    float32
	swapThreshold float32
	epsilon       float32

	// activeTexture tracks which background layer is showing; swapping it is
	// gated on the blended intensity falling below swapThreshold.
	activeTexture string

	// Store mirror.
	isNight bool

	settled     bool
	unsubscribe func()
}

// DayNightController eases every ambient parameter (key light, moonlight,
// ambient color, fog, bloom, stars) toward its day or night target at one
// shared rate. The background layer crossfades in two phases: the current
// layer's intensity eases to near zero, the texture swaps only below the
// threshold, then the new layer's intensity eases up. Swapping under a
// visible intensity would pop.
type DayNightController interface {
	Controller

	// Close removes the controller's store subscription.
	Close()
}

var _ DayNightController = &dayNightControllerImpl{}

// NewDayNightController creates the day/night blend over the scene's
// environment and its named key and moon lights. Missing lights leave their
// parameter inactive.
//
// Parameters:
//   - st: the shared state store
//   - s: the loaded scene
//   - options: functional options to configure the controller
//
// Returns:
//   - DayNightController: the newly created controller
func NewDayNightController(st *store.Store, s scene.Scene, options ...DayNightBuilderOption) DayNightController {
	c := &dayNightControllerImpl{
		mu:            &sync.Mutex{},
		scene:         s,
		day:           DefaultDayTargets(),
		night:         DefaultNightTargets(),
		easeLambda:    3.0,
		swapThreshold: 0.02,
		epsilon:       1e-3,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil {
		idx := s.Index()
		c.keyLight = idx.Lights[scene.LightKey]
		c.moon = idx.Lights[scene.LightMoon]
		c.activeTexture = s.Environment().Background.Texture
	}

	if st != nil {
		c.isNight = st.State().Night
		c.unsubscribe = st.Subscribe(func(next, prev store.State) {
			if next.Night == prev.Night {
				return
			}
			c.mu.Lock()
			c.isNight = next.Night
			c.settled = false
			c.mu.Unlock()
		})
	}

	return c
}

func (c *dayNightControllerImpl) Update(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scene == nil || c.settled {
		return true
	}

	targets := c.day
	if c.isNight {
		targets = c.night
	}

	factor := common.DampFactor(c.easeLambda, dt)
	converged := true

	env := c.scene.Environment()

	env.AmbientIntensity = easeToward(env.AmbientIntensity, targets.AmbientIntensity, factor, c.epsilon, &converged)
	for i := 0; i < 3; i++ {
		env.AmbientColor[i] = easeToward(env.AmbientColor[i], targets.AmbientColor[i], factor, c.epsilon, &converged)
		env.Fog.Color[i] = easeToward(env.Fog.Color[i], targets.FogColor[i], factor, c.epsilon, &converged)
	}
	env.Fog.Near = easeToward(env.Fog.Near, targets.FogNear, factor, c.epsilon, &converged)
	env.Fog.Far = easeToward(env.Fog.Far, targets.FogFar, factor, c.epsilon, &converged)
	env.BloomIntensity = easeToward(env.BloomIntensity, targets.BloomIntensity, factor, c.epsilon, &converged)
	env.StarsOpacity = easeToward(env.StarsOpacity, targets.StarsOpacity, factor, c.epsilon, &converged)

	// Two-phase background crossfade.
	if c.activeTexture != targets.Background {
		env.Background.Intensity = easeToward(env.Background.Intensity, 0, factor, c.epsilon, &converged)
		if env.Background.Intensity <= c.swapThreshold {
			c.activeTexture = targets.Background
			env.Background.Texture = targets.Background
		}
		converged = false
	} else {
		env.Background.Intensity = easeToward(env.Background.Intensity, targets.BackgroundIntensity, factor, c.epsilon, &converged)
	}

	c.scene.SetEnvironment(env)

	if c.keyLight != nil {
		c.keyLight.SetIntensity(easeToward(c.keyLight.Intensity(), targets.KeyIntensity, factor, c.epsilon, &converged))
	}
	if c.moon != nil {
		c.moon.SetIntensity(easeToward(c.moon.Intensity(), targets.MoonIntensity, factor, c.epsilon, &converged))
	}

	c.settled = converged
	return c.settled
}

func (c *dayNightControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// easeToward blends current toward target by factor, snapping onto the target
// within epsilon. Clears *converged while the value is still moving.
func easeToward(current, target, factor, epsilon float32, converged *bool) float32 {
	next := current + (target-current)*factor
	if math32.Abs(next-target) < epsilon {
		return target
	}
	*converged = false
	return next
}
