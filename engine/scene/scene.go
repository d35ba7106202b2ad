package scene

import (
	"strings"
	"sync"

	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/light"
	"github.com/hollis-dev/stargate/engine/store"
)

// Well-known node names resolved by the index pass. A scene missing any of
// them simply leaves the dependent animation inactive.
const (
	NodeRingOuter    = "gate_ring_outer"
	NodeRingInner    = "gate_ring_inner"
	NodePillarLeft   = "pillar_left"
	NodePillarCenter = "pillar_center"
	NodePillarRight  = "pillar_right"
	RockPrefix       = "rock_"
)

// Well-known light names. The key light and moonlight are driven by the
// day/night blend; the strike light is the lightning flash source.
const (
	LightKey    = "key"
	LightMoon   = "moon"
	LightStrike = "lightning"
)

// Fog holds the distance-fog parameters fed to the renderer each frame.
type Fog struct {
	Color [3]float32
	Near  float32
	Far   float32
}

// Background is the active background layer: which texture is showing and how
// intensely. The day/night controller crossfades by easing Intensity to near
// zero, swapping Texture, then easing back up.
type Background struct {
	Texture   string
	Intensity float32
}

// Environment is the bag of scene-wide shading parameters the ambient
// controllers drive. The renderer reads a snapshot once per frame.
type Environment struct {
	AmbientColor     [3]float32
	AmbientIntensity float32
	Fog              Fog
	Background       Background
	StarsOpacity     float32
	BloomIntensity   float32

	// FlashOverlay is a full-screen additive flash in [0, 1], driven by the
	// activation white-out. Lightning lights the scene through its point
	// light instead.
	FlashOverlay float32
}

// Index holds the named collaborators resolved from the node list. Nil or
// empty fields mean the scene did not author that object and its feature
// stays inactive.
type Index struct {
	RingOuter *Node
	RingInner *Node
	Pillars   map[store.PillarSide]*Node
	Rocks     []*Node
	Lights    map[string]light.Light
}

// sceneImpl is the implementation of the Scene interface.
type sceneImpl struct {
	mu *sync.Mutex

	name   string
	nodes  []*Node
	lights []light.Light

	env   Environment
	index Index

	cameraPose    camera.Pose
	hasCameraPose bool
}

// Scene manages the node graph, light list, and environment parameters for
// one rendered world. Node lookups by name happen once at load through the
// index pass; per-frame code holds on to the resolved pointers instead of
// searching every frame.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// AddNode appends a node to the scene graph.
	//
	// Parameters:
	//   - n: the node to add
	AddNode(n *Node)

	// Nodes returns the scene's node list. The returned slice is shared with
	// the scene; callers must not append to it.
	//
	// Returns:
	//   - []*Node: the node list
	Nodes() []*Node

	// NodeByName returns the first node with the given name, or nil.
	//
	// Parameters:
	//   - name: the node name to look up
	//
	// Returns:
	//   - *Node: the node or nil
	NodeByName(name string) *Node

	// NodesByPrefix returns all nodes whose name starts with prefix.
	//
	// Parameters:
	//   - prefix: the name prefix to match
	//
	// Returns:
	//   - []*Node: matching nodes, possibly empty
	NodesByPrefix(prefix string) []*Node

	// AddLight adds a light source to the scene.
	//
	// Parameters:
	//   - l: the Light to add
	AddLight(l light.Light)

	// Lights returns all lights currently registered in the scene.
	//
	// Returns:
	//   - []light.Light: the scene's light list
	Lights() []light.Light

	// Environment returns a snapshot of the scene-wide shading parameters.
	//
	// Returns:
	//   - Environment: the current environment
	Environment() Environment

	// SetEnvironment replaces the scene-wide shading parameters.
	//
	// Parameters:
	//   - env: the environment to set
	SetEnvironment(env Environment)

	// CameraPose returns the authored camera pose, if the scene supplied one.
	//
	// Returns:
	//   - camera.Pose: the authored pose
	//   - bool: false if the scene authored no camera
	CameraPose() (camera.Pose, bool)

	// SetCameraPose records the authored camera pose.
	//
	// Parameters:
	//   - pose: the pose to record
	SetCameraPose(pose camera.Pose)

	// Index returns the resolved named collaborators. Valid after
	// RefreshIndex.
	//
	// Returns:
	//   - Index: the resolved index
	Index() Index

	// RefreshIndex re-resolves the named collaborators from the current node
	// list. Called once after loading; absent names leave their index slots
	// nil rather than failing.
	RefreshIndex()
}

var _ Scene = &sceneImpl{}

// NewScene creates an empty scene with neutral environment defaults.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &sceneImpl{
		mu: &sync.Mutex{},
		env: Environment{
			AmbientColor:     [3]float32{1, 1, 1},
			AmbientIntensity: 1.0,
			Fog: Fog{
				Color: [3]float32{0.7, 0.75, 0.8},
				Near:  10,
				Far:   80,
			},
			Background: Background{
				Texture:   "day",
				Intensity: 1.0,
			},
		},
		index: Index{
			Pillars: make(map[store.PillarSide]*Node),
			Lights:  make(map[string]light.Light),
		},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *sceneImpl) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *sceneImpl) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *sceneImpl) AddNode(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = append(s.nodes, n)
}

func (s *sceneImpl) Nodes() []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes
}

func (s *sceneImpl) NodeByName(name string) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

func (s *sceneImpl) NodesByPrefix(prefix string) []*Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Node
	for _, n := range s.nodes {
		if strings.HasPrefix(n.Name, prefix) {
			out = append(out, n)
		}
	}
	return out
}

func (s *sceneImpl) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *sceneImpl) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lights
}

func (s *sceneImpl) Environment() Environment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env
}

func (s *sceneImpl) SetEnvironment(env Environment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.env = env
}

func (s *sceneImpl) CameraPose() (camera.Pose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraPose, s.hasCameraPose
}

func (s *sceneImpl) SetCameraPose(pose camera.Pose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameraPose = pose
	s.hasCameraPose = true
}

func (s *sceneImpl) Index() Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *sceneImpl) RefreshIndex() {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := Index{
		Pillars: make(map[store.PillarSide]*Node),
		Lights:  make(map[string]light.Light),
	}
	for _, l := range s.lights {
		if l.Name() != "" {
			idx.Lights[l.Name()] = l
		}
	}
	for _, n := range s.nodes {
		switch n.Name {
		case NodeRingOuter:
			idx.RingOuter = n
		case NodeRingInner:
			idx.RingInner = n
		case NodePillarLeft:
			idx.Pillars[store.PillarLeft] = n
		case NodePillarCenter:
			idx.Pillars[store.PillarCenter] = n
		case NodePillarRight:
			idx.Pillars[store.PillarRight] = n
		default:
			if strings.HasPrefix(n.Name, RockPrefix) {
				idx.Rocks = append(idx.Rocks, n)
			}
		}
	}
	s.index = idx
}
