package loader

// LoaderBuilderOption is a functional option for configuring a Loader at
// creation time.
type LoaderBuilderOption func(*loaderImpl)

// WithWorkers sets the number of mesh-build workers in the pool.
//
// Parameters:
//   - workers: worker count, values below 1 are ignored
//
// Returns:
//   - LoaderBuilderOption: the option function
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *loaderImpl) {
		if workers >= 1 {
			l.workers = workers
		}
	}
}
