package loader

import (
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/hollis-dev/stargate/common"
	"github.com/hollis-dev/stargate/engine/camera"
	"github.com/hollis-dev/stargate/engine/light"
	"github.com/hollis-dev/stargate/engine/scene"
	"github.com/hollis-dev/stargate/engine/store"
)

// LoadedScene is the result of loading a manifest: the assembled scene graph
// plus the camera focus poses keyed by pillar side.
type LoadedScene struct {
	Scene      scene.Scene
	FocusPoses map[store.PillarSide]camera.Pose
}

// loaderImpl is the implementation of the Loader interface.
type loaderImpl struct {
	mu sync.Mutex

	meshCache map[string]*scene.Mesh

	workers int
	pool    worker.DynamicWorkerPool
}

// Loader builds scenes from YAML manifests. Unique primitives are built once,
// in parallel across a worker pool, and cached for reuse between nodes and
// between loads.
type Loader interface {
	// Load reads and assembles a scene manifest from a file.
	//
	// Parameters:
	//   - path: the manifest file path
	//
	// Returns:
	//   - *LoadedScene: the assembled scene
	//   - error: error if reading, decoding, or assembly fails
	Load(path string) (*LoadedScene, error)

	// LoadReader assembles a scene manifest from a reader stream.
	//
	// Parameters:
	//   - name: a label used in error messages
	//   - r: the reader providing manifest YAML
	//
	// Returns:
	//   - *LoadedScene: the assembled scene
	//   - error: error if reading, decoding, or assembly fails
	LoadReader(name string, r io.Reader) (*LoadedScene, error)
}

var _ Loader = &loaderImpl{}

// NewLoader creates a new scene loader.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the newly created loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loaderImpl{
		meshCache: make(map[string]*scene.Mesh),
		workers:   max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *loaderImpl) Load(path string) (*LoadedScene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene manifest %q: %w", path, err)
	}
	return l.assemble(path, data)
}

func (l *loaderImpl) LoadReader(name string, r io.Reader) (*LoadedScene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene manifest %q: %w", name, err)
	}
	return l.assemble(name, data)
}

func (l *loaderImpl) assemble(name string, data []byte) (*LoadedScene, error) {
	m, err := parseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("scene manifest %q: %w", name, err)
	}

	if err := l.buildMeshes(m.Nodes); err != nil {
		return nil, fmt.Errorf("scene manifest %q: %w", name, err)
	}

	s := scene.NewScene(scene.WithName(m.Name))

	for i := range m.Nodes {
		ns := &m.Nodes[i]
		node := scene.NewNode(ns.Name, l.cachedMesh(primitiveKey(ns)))
		node.Position = common.V3(ns.Position[0], ns.Position[1], ns.Position[2])
		node.Rotation = eulerDegrees(ns.RotationDegrees)
		if ns.Scale != [3]float32{} {
			node.Scale = common.V3(ns.Scale[0], ns.Scale[1], ns.Scale[2])
		}
		if ns.Tint != [4]float32{} {
			node.Tint = ns.Tint
		}
		s.AddNode(node)
	}

	for _, ls := range m.Lights {
		s.AddLight(buildLight(ls))
	}

	if m.Environment != nil {
		env := s.Environment()
		env.AmbientColor = m.Environment.AmbientColor
		env.AmbientIntensity = m.Environment.AmbientIntensity
		env.Fog = scene.Fog{
			Color: m.Environment.FogColor,
			Near:  m.Environment.FogNear,
			Far:   m.Environment.FogFar,
		}
		if m.Environment.Background != "" {
			env.Background = scene.Background{Texture: m.Environment.Background, Intensity: 1}
		}
		s.SetEnvironment(env)
	}

	if m.Camera != nil {
		s.SetCameraPose(poseFromSpec(*m.Camera))
	}

	s.RefreshIndex()

	out := &LoadedScene{
		Scene:      s,
		FocusPoses: make(map[store.PillarSide]camera.Pose),
	}
	for key, spec := range m.FocusPoses {
		side, ok := focusSide(key)
		if !ok {
			return nil, fmt.Errorf("scene manifest %q: unknown focus pose side %q", name, key)
		}
		out.FocusPoses[side] = poseFromSpec(spec)
	}
	return out, nil
}

// buildMeshes builds every primitive the node list references that is not
// already cached, fanning the builds out across the worker pool.
func (l *loaderImpl) buildMeshes(nodes []NodeSpec) error {
	l.mu.Lock()
	pending := make(map[string]*NodeSpec)
	for i := range nodes {
		key := primitiveKey(&nodes[i])
		if _, ok := l.meshCache[key]; !ok {
			if _, queued := pending[key]; !queued {
				pending[key] = &nodes[i]
			}
		}
	}
	l.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var builtMu sync.Mutex
	built := make(map[string]*scene.Mesh, len(pending))

	taskID := 0
	for key, ns := range pending {
		wg.Add(1)
		keyCap, nsCap := key, ns
		l.pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				mesh := buildPrimitive(nsCap)
				builtMu.Lock()
				built[keyCap] = mesh
				builtMu.Unlock()
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()

	l.mu.Lock()
	for key, mesh := range built {
		l.meshCache[key] = mesh
	}
	l.mu.Unlock()
	return nil
}

func (l *loaderImpl) cachedMesh(key string) *scene.Mesh {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.meshCache[key]
}

// buildPrimitive dispatches to the primitive builders with per-primitive
// defaults for unset fields.
func buildPrimitive(ns *NodeSpec) *scene.Mesh {
	switch ns.Primitive {
	case "box":
		size := ns.Size
		if size == [3]float32{} {
			size = [3]float32{1, 1, 1}
		}
		return buildBox(size[0], size[1], size[2])
	case "plane":
		size := ns.Size
		if size == [3]float32{} {
			size = [3]float32{1, 0, 1}
		}
		return buildPlane(size[0], size[2])
	case "torus":
		radius, tube, segments := ns.Radius, ns.Tube, ns.Segments
		if radius == 0 {
			radius = 1
		}
		if tube == 0 {
			tube = 0.2
		}
		if segments == 0 {
			segments = 24
		}
		return buildTorus(radius, tube, segments)
	case "rock":
		radius, detail := ns.Radius, ns.Detail
		if radius == 0 {
			radius = 0.3
		}
		if detail == 0 {
			detail = 10
		}
		return buildRock(ns.Seed, radius, detail)
	}
	return nil
}

// primitiveKey derives the mesh cache key from the fields that affect
// geometry.
func primitiveKey(ns *NodeSpec) string {
	switch ns.Primitive {
	case "box", "plane":
		return fmt.Sprintf("%s/%v", ns.Primitive, ns.Size)
	case "torus":
		return fmt.Sprintf("torus/%v/%v/%d", ns.Radius, ns.Tube, ns.Segments)
	case "rock":
		return fmt.Sprintf("rock/%d/%v/%d", ns.Seed, ns.Radius, ns.Detail)
	}
	return ns.Primitive
}

func buildLight(ls LightSpec) light.Light {
	t := light.LightTypeDirectional
	if ls.Type == "point" {
		t = light.LightTypePoint
	}
	opts := []light.LightBuilderOption{
		light.WithName(ls.Name),
		light.WithColor(ls.Color[0], ls.Color[1], ls.Color[2]),
		light.WithIntensity(ls.Intensity),
		light.WithPosition(common.V3(ls.Position[0], ls.Position[1], ls.Position[2])),
	}
	if ls.Direction != [3]float32{} {
		opts = append(opts, light.WithDirection(common.V3(ls.Direction[0], ls.Direction[1], ls.Direction[2])))
	}
	if ls.Range > 0 {
		opts = append(opts, light.WithRange(ls.Range))
	}
	return light.NewLight(t, opts...)
}

func poseFromSpec(spec CameraSpec) camera.Pose {
	position := common.V3(spec.Position[0], spec.Position[1], spec.Position[2])
	target := common.V3(spec.LookAt[0], spec.LookAt[1], spec.LookAt[2])
	fov := spec.FovDegrees * math.Pi / 180.0
	if fov == 0 {
		fov = 50.0 * math.Pi / 180.0
	}
	return camera.Pose{
		Position:    position,
		Orientation: common.QuatLookAt(position, target, common.V3(0, 1, 0)),
		Fov:         fov,
		LookTarget:  target,
	}
}

func focusSide(key string) (store.PillarSide, bool) {
	switch key {
	case "left":
		return store.PillarLeft, true
	case "center":
		return store.PillarCenter, true
	case "right":
		return store.PillarRight, true
	}
	return store.PillarNone, false
}

// eulerDegrees converts YXZ euler angles in degrees to a quaternion.
func eulerDegrees(deg [3]float32) common.Quat {
	const toRad = math.Pi / 180.0
	qy := common.QuatFromAxisAngle(common.V3(0, 1, 0), deg[1]*toRad)
	qx := common.QuatFromAxisAngle(common.V3(1, 0, 0), deg[0]*toRad)
	qz := common.QuatFromAxisAngle(common.V3(0, 0, 1), deg[2]*toRad)
	return qy.Mul(qx).Mul(qz).Normalized()
}
