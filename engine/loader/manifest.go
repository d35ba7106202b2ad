package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the YAML scene description consumed by the loader. Nodes
// reference procedural primitives rather than external model files; the
// loader builds each unique primitive once and shares the mesh between nodes.
type Manifest struct {
	Name        string                `yaml:"name"`
	Camera      *CameraSpec           `yaml:"camera"`
	FocusPoses  map[string]CameraSpec `yaml:"focus_poses"`
	Environment *EnvironmentSpec      `yaml:"environment"`
	Lights      []LightSpec           `yaml:"lights"`
	Nodes       []NodeSpec            `yaml:"nodes"`
}

// CameraSpec is an authored camera placement: a position, the point it looks
// at, and a vertical field of view in degrees.
type CameraSpec struct {
	Position   [3]float32 `yaml:"position"`
	LookAt     [3]float32 `yaml:"look_at"`
	FovDegrees float32    `yaml:"fov_degrees"`
}

// EnvironmentSpec is the authored starting environment.
type EnvironmentSpec struct {
	AmbientColor     [3]float32 `yaml:"ambient_color"`
	AmbientIntensity float32    `yaml:"ambient_intensity"`
	FogColor         [3]float32 `yaml:"fog_color"`
	FogNear          float32    `yaml:"fog_near"`
	FogFar           float32    `yaml:"fog_far"`
	Background       string     `yaml:"background"`
}

// LightSpec describes one authored light source.
type LightSpec struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"` // "directional" or "point"
	Position  [3]float32 `yaml:"position"`
	Direction [3]float32 `yaml:"direction"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Range     float32    `yaml:"range"`
}

// NodeSpec describes one scene node and the primitive that supplies its mesh.
// Primitive-specific fields are ignored by primitives that do not use them.
type NodeSpec struct {
	Name      string `yaml:"name"`
	Primitive string `yaml:"primitive"` // "box", "torus", "rock", "plane"

	// Box and plane extents.
	Size [3]float32 `yaml:"size"`

	// Torus major/minor radii and tessellation.
	Radius   float32 `yaml:"radius"`
	Tube     float32 `yaml:"tube"`
	Segments int     `yaml:"segments"`

	// Rock deformation seed and tessellation.
	Seed   int64 `yaml:"seed"`
	Detail int   `yaml:"detail"`

	Position        [3]float32 `yaml:"position"`
	RotationDegrees [3]float32 `yaml:"rotation_degrees"`
	Scale           [3]float32 `yaml:"scale"`
	Tint            [4]float32 `yaml:"tint"`
}

// parseManifest decodes and validates a YAML manifest.
//
// Parameters:
//   - data: raw YAML bytes
//
// Returns:
//   - *Manifest: the decoded manifest
//   - error: error if decoding or validation fails
func parseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode scene manifest: %w", err)
	}
	for i, ns := range m.Nodes {
		if ns.Name == "" {
			return nil, fmt.Errorf("node %d has no name", i)
		}
		switch ns.Primitive {
		case "box", "torus", "rock", "plane":
		default:
			return nil, fmt.Errorf("node %q has unknown primitive %q", ns.Name, ns.Primitive)
		}
	}
	for i, ls := range m.Lights {
		switch ls.Type {
		case "directional", "point":
		default:
			return nil, fmt.Errorf("light %d has unknown type %q", i, ls.Type)
		}
	}
	return &m, nil
}
