package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollis-dev/stargate/common"
)

func TestOrbitSeedReproducesPositionExactly(t *testing.T) {
	oc := NewOrbitController()

	position := common.V3(4, 3, -7)
	target := common.V3(1, 0, 2)
	oc.Seed(position, target)

	assert.Equal(t, position, oc.Position())
	assert.Equal(t, target, oc.Target())
	assert.InDelta(t, float64(position.DistanceTo(target)), float64(oc.Radius()), 1e-5)
}

func TestOrbitSeedDegeneratePosition(t *testing.T) {
	oc := NewOrbitController()

	target := common.V3(1, 1, 1)
	oc.Seed(target, target)

	// Coincident position and target falls back to the minimum radius
	// instead of producing NaN angles.
	assert.Greater(t, oc.Radius(), float32(0))
	assert.InDelta(t, float64(oc.Radius()), float64(oc.Position().DistanceTo(target)), 1e-4)
}

func TestOrbitDragPreservesRadius(t *testing.T) {
	oc := NewOrbitController()
	oc.Seed(common.V3(0, 2, 10), common.V3(0, 0, 0))

	radius := oc.Radius()
	oc.Drag(250, -80)

	assert.InDelta(t, float64(radius), float64(oc.Radius()), 1e-5)
	assert.InDelta(t, float64(radius), float64(oc.Position().Length()), 1e-3)
}

func TestOrbitDollyClampsRadius(t *testing.T) {
	oc := NewOrbitController(WithRadiusRange(3, 20))
	oc.Seed(common.V3(0, 0, 10), common.V3(0, 0, 0))

	oc.Dolly(1e6)
	assert.InDelta(t, 3.0, float64(oc.Radius()), 1e-5)

	oc.Dolly(-1e6)
	assert.InDelta(t, 20.0, float64(oc.Radius()), 1e-5)
}

func TestOrbitElevationClamped(t *testing.T) {
	oc := NewOrbitController()
	oc.Seed(common.V3(0, 0, 10), common.V3(0, 0, 0))

	// Drag far past the pole; elevation must stay clamped short of it.
	oc.Drag(0, 1e6)
	p := oc.Position()
	assert.Greater(t, p.Sub(common.Vec3{}).Length()-p.Y, float32(1e-4))
}
