package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/store"
)

func TestSceneIndexResolvesNamedNodes(t *testing.T) {
	s := NewScene(WithName("test"))
	s.AddNode(NewNode(NodeRingOuter, nil))
	s.AddNode(NewNode(NodeRingInner, nil))
	s.AddNode(NewNode(NodePillarLeft, nil))
	s.AddNode(NewNode(NodePillarRight, nil))
	s.AddNode(NewNode("rock_0", nil))
	s.AddNode(NewNode("rock_1", nil))
	s.AddNode(NewNode("ground", nil))
	s.RefreshIndex()

	idx := s.Index()
	assert.NotNil(t, idx.RingOuter)
	assert.NotNil(t, idx.RingInner)
	assert.NotNil(t, idx.Pillars[store.PillarLeft])
	assert.NotNil(t, idx.Pillars[store.PillarRight])
	assert.Nil(t, idx.Pillars[store.PillarCenter])
	assert.Len(t, idx.Rocks, 2)
}

func TestSceneIndexToleratesMissingNodes(t *testing.T) {
	s := NewScene()
	s.AddNode(NewNode("ground", nil))
	s.RefreshIndex()

	idx := s.Index()
	assert.Nil(t, idx.RingOuter)
	assert.Nil(t, idx.RingInner)
	assert.Empty(t, idx.Rocks)
	assert.Empty(t, idx.Pillars)
}

func TestSceneCameraPoseAbsentByDefault(t *testing.T) {
	s := NewScene()
	_, ok := s.CameraPose()
	assert.False(t, ok)
}

func TestNodeBoundingSphereScales(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: common.V3(1, 0, 0)},
			{Position: common.V3(0, 2, 0)},
		},
	}
	m.ComputeBounds()
	assert.InDelta(t, 2.0, float64(m.BoundingRadius), 1e-6)

	n := NewNode("x", m)
	n.Position = common.V3(5, 0, 0)
	n.Scale = common.V3(1, 3, 1)

	center, radius := n.BoundingSphere()
	assert.Equal(t, common.V3(5, 0, 0), center)
	assert.InDelta(t, 6.0, float64(radius), 1e-6)
}

func TestNodeByPrefixAndName(t *testing.T) {
	s := NewScene()
	s.AddNode(NewNode("rock_0", nil))
	s.AddNode(NewNode("rock_1", nil))

	assert.Len(t, s.NodesByPrefix(RockPrefix), 2)
	assert.NotNil(t, s.NodeByName("rock_1"))
	assert.Nil(t, s.NodeByName("rock_9"))
}
