package gate

import (
	"math/rand"
	"sync"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/light"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

type lightningPhase int

const (
	lightningIdle lightningPhase = iota
	lightningRamp
	lightningHold
	lightningDecay
	lightningGap
)

// lightningControllerImpl is the implementation of the LightningController
// interface.
type lightningControllerImpl struct {
	mu *sync.Mutex

	strike light.Light
	rng    *rand.Rand

	phase     lightningPhase
	countdown float32
	elapsed   float32
	peak      float32

	// secondPending schedules the dimmer follow-up strike of a double flash.
	secondPending bool

	basePosition common.Vec3
	xRange       float32

	minDelay      float32
	maxDelay      float32
	rampTime      float32
	holdTime      float32
	decayTime     float32
	peakIntensity float32
	doubleChance  float32
	doubleGap     float32
	doubleDim     float32
	offLambda     float32

	// Store mirror.
	raining bool

	unsubscribe func()
}

// LightningController fires randomized lightning flashes while it is
// raining. Each flash applies a ramp/hold/decay intensity envelope to the
// scene's strike light at a freshly randomized horizontal position; some
// flashes trigger a second, dimmer strike after a short gap. When the rain
// stops the intensity eases to zero and the countdown resets.
type LightningController interface {
	Controller

	// Close removes the controller's store subscription.
	Close()
}

var _ LightningController = &lightningControllerImpl{}

// NewLightningController creates the lightning generator over the scene's
// named strike light. A scene without one yields an inert controller.
//
// Parameters:
//   - st: the shared state store
//   - s: the loaded scene
//   - seed: the randomization seed for countdowns and strike positions
//   - options: functional options to configure the controller
//
// Returns:
//   - LightningController: the newly created controller
func NewLightningController(st *store.Store, s scene.Scene, seed int64, options ...LightningBuilderOption) LightningController {
	c := &lightningControllerImpl{
		mu:            &sync.Mutex{},
		rng:           rand.New(rand.NewSource(seed)),
		xRange:        12,
		minDelay:      2.0,
		maxDelay:      8.0,
		rampTime:      0.06,
		holdTime:      0.08,
		decayTime:     0.25,
		peakIntensity: 6.0,
		doubleChance:  0.35,
		doubleGap:     0.12,
		doubleDim:     0.55,
		offLambda:     6.0,
	}
	for _, option := range options {
		option(c)
	}

	if s != nil {
		c.strike = s.Index().Lights[scene.LightStrike]
		if c.strike != nil {
			c.basePosition = c.strike.Position()
			c.strike.SetIntensity(0)
		}
	}
	c.countdown = c.nextDelay()

	if st != nil {
		c.raining = st.State().Raining
		c.unsubscribe = st.Subscribe(func(next, prev store.State) {
			if next.Raining == prev.Raining {
				return
			}
			c.mu.Lock()
			c.raining = next.Raining
			if next.Raining {
				c.countdown = c.nextDelay()
			}
			c.mu.Unlock()
		})
	}

	return c
}

func (c *lightningControllerImpl) Update(dt float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.strike == nil {
		return true
	}

	if !c.raining {
		c.phase = lightningIdle
		c.secondPending = false
		intensity := common.Damp(c.strike.Intensity(), 0, c.offLambda, dt)
		if intensity < 1e-3 {
			intensity = 0
		}
		c.strike.SetIntensity(intensity)
		return intensity == 0
	}

	switch c.phase {
	case lightningIdle:
		c.countdown -= dt
		if c.countdown <= 0 {
			c.beginStrike(c.peakIntensity)
			c.secondPending = c.rng.Float32() < c.doubleChance
		}
	case lightningRamp:
		c.elapsed += dt
		if c.elapsed >= c.rampTime {
			c.phase = lightningHold
			c.elapsed = 0
			c.strike.SetIntensity(c.peak)
		} else {
			c.strike.SetIntensity(c.peak * c.elapsed / c.rampTime)
		}
	case lightningHold:
		c.elapsed += dt
		if c.elapsed >= c.holdTime {
			c.phase = lightningDecay
			c.elapsed = 0
		}
	case lightningDecay:
		c.elapsed += dt
		if c.elapsed >= c.decayTime {
			c.strike.SetIntensity(0)
			if c.secondPending {
				c.phase = lightningGap
				c.elapsed = 0
			} else {
				c.phase = lightningIdle
				c.countdown = c.nextDelay()
			}
		} else {
			c.strike.SetIntensity(c.peak * (1 - c.elapsed/c.decayTime))
		}
	case lightningGap:
		c.elapsed += dt
		if c.elapsed >= c.doubleGap {
			c.secondPending = false
			c.beginStrike(c.peakIntensity * c.doubleDim)
		}
	}

	// Armed whenever it rains: the countdown itself is ongoing motion.
	return false
}

// beginStrike starts a flash envelope at the given peak, placing the strike
// light at a randomized horizontal offset from its authored position.
func (c *lightningControllerImpl) beginStrike(peak float32) {
	offset := (c.rng.Float32()*2 - 1) * c.xRange
	c.strike.SetPosition(common.V3(c.basePosition.X+offset, c.basePosition.Y, c.basePosition.Z))
	c.peak = peak
	c.phase = lightningRamp
	c.elapsed = 0
	c.strike.SetIntensity(0)
}

func (c *lightningControllerImpl) nextDelay() float32 {
	return c.minDelay + c.rng.Float32()*(c.maxDelay-c.minDelay)
}

func (c *lightningControllerImpl) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
