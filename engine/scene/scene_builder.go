package scene

// SceneBuilderOption is a functional option for configuring a Scene at
// creation time.
type SceneBuilderOption func(*sceneImpl)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the identifier to set
//
// Returns:
//   - SceneBuilderOption: the option function
func WithName(name string) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.name = name
	}
}

// WithEnvironment sets the scene's initial environment parameters.
//
// Parameters:
//   - env: the environment to set
//
// Returns:
//   - SceneBuilderOption: the option function
func WithEnvironment(env Environment) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.env = env
	}
}
