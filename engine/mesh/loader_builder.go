package mesh

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*meshLoader)

// WithWorkers is an option builder that sets the worker count for the asset
// preparation pool. Values below 1 are ignored.
//
// Parameters:
//   - workers: the number of pool workers
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count option to a meshLoader
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *meshLoader) {
		if workers >= 1 {
			l.workers = workers
		}
	}
}

// WithMesh is an option builder that pre-populates the mesh cache.
//
// Parameters:
//   - key: the cache key for the mesh
//   - data: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a meshLoader
func WithMesh(key string, data *Data) LoaderBuilderOption {
	return func(l *meshLoader) {
		l.cache[key] = data
	}
}
