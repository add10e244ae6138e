package mesh

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// meshLoader is the implementation of the Loader interface.
type meshLoader struct {
	mu sync.RWMutex

	cache map[string]*Data

	workers  int // stored so we can log/inspect the configured count
	prepPool worker.DynamicWorkerPool
}

// Job names one mesh and the function that builds it, either an OBJ parse or
// a primitive assembly. BuildAll runs jobs across the loader's worker pool.
type Job struct {
	Name  string
	Build func() (*Data, error)
}

// Loader defines the public-facing interface for loading and caching scene
// meshes. OBJ files are cached by path; generated meshes are cached by the
// name their Job carries. Safe for concurrent use.
type Loader interface {
	// Load reads a Wavefront OBJ file, resolves its MTL references relative
	// to the OBJ's directory and caches the result by path. A cached mesh is
	// returned as-is. Missing or unreadable MTL files are skipped, matching
	// prop meshes that ship without materials.
	//
	// Parameters:
	//   - path: the OBJ file path
	//
	// Returns:
	//   - *Data: the loaded and cached mesh
	//   - error: error if the OBJ cannot be read or parsed
	Load(path string) (*Data, error)

	// LoadOrFallback loads an OBJ mesh and, when that fails, builds and
	// caches the fallback mesh under the same path instead. The failure is
	// logged so a missing asset is visible without stopping the viewer.
	//
	// Parameters:
	//   - path: the OBJ file path
	//   - fallback: builds the replacement mesh, e.g. a ground plane
	//
	// Returns:
	//   - *Data: the loaded mesh or the fallback
	LoadOrFallback(path string, fallback func() *Data) *Data

	// BuildAll runs mesh-producing jobs across the worker pool and caches
	// every result by its job name. Jobs whose name is already cached are
	// skipped. The first job error is returned after all jobs finish.
	//
	// Parameters:
	//   - jobs: the mesh jobs to run
	//
	// Returns:
	//   - map[string]*Data: the built meshes keyed by job name
	//   - error: the first job error, if any
	BuildAll(jobs ...Job) (map[string]*Data, error)

	// Get retrieves a cached mesh by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - *Data: the cached mesh or nil
	Get(name string) *Data

	// Meshes returns a copy of the mesh cache.
	//
	// Returns:
	//   - map[string]*Data: all cached meshes keyed by name
	Meshes() map[string]*Data
}

var _ Loader = &meshLoader{}

// NewLoader creates a new mesh Loader with the provided options applied.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &meshLoader{
		cache:   make(map[string]*Data),
		workers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(l)
	}

	// Initialize the prep pool after options so WithWorkers can override the
	// default. Queue size of 64 covers a full scene's asset jobs with headroom.
	l.prepPool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

func (l *meshLoader) Load(path string) (*Data, error) {
	l.mu.RLock()
	if cached, ok := l.cache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	d, err := l.loadOBJ(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[path] = d
	l.mu.Unlock()
	return d, nil
}

func (l *meshLoader) LoadOrFallback(path string, fallback func() *Data) *Data {
	d, err := l.Load(path)
	if err == nil {
		return d
	}
	log.Printf("[Mesh] %v, using generated fallback", err)

	d = fallback()
	l.mu.Lock()
	l.cache[path] = d
	l.mu.Unlock()
	return d
}

func (l *meshLoader) BuildAll(jobs ...Job) (map[string]*Data, error) {
	results := make([]*Data, len(jobs))
	errs := make([]error, len(jobs))

	// A WaitGroup provides the completion barrier since pool.Wait() blocks
	// until workers idle-exit, which would stall a one-shot startup batch.
	var wg sync.WaitGroup
	for i, job := range jobs {
		if cached := l.Get(job.Name); cached != nil {
			results[i] = cached
			continue
		}

		wg.Add(1)
		idx, j := i, job
		l.prepPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				d, err := j.Build()
				if err != nil {
					errs[idx] = fmt.Errorf("mesh job %q: %w", j.Name, err)
					return nil, err
				}
				results[idx] = d
				return nil, nil
			},
		})
	}
	wg.Wait()

	built := make(map[string]*Data, len(jobs))
	l.mu.Lock()
	for i, job := range jobs {
		if results[i] == nil {
			continue
		}
		l.cache[job.Name] = results[i]
		built[job.Name] = results[i]
	}
	l.mu.Unlock()

	for _, err := range errs {
		if err != nil {
			return built, err
		}
	}
	return built, nil
}

func (l *meshLoader) Get(name string) *Data {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cache[name]
}

func (l *meshLoader) Meshes() map[string]*Data {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]*Data, len(l.cache))
	for k, v := range l.cache {
		out[k] = v
	}
	return out
}

// loadOBJ opens and parses one OBJ file plus the MTL libraries it references.
// MTL and texture paths resolve relative to the OBJ's directory.
func (l *meshLoader) loadOBJ(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file %s: %w", path, err)
	}
	defer f.Close()

	d, mtlLibs, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, lib := range mtlLibs {
		mf, err := os.Open(filepath.Join(dir, lib))
		if err != nil {
			continue
		}
		info, err := ParseMTL(mf)
		mf.Close()
		if err != nil {
			continue
		}
		if info.TexturePath != "" {
			d.TexturePath = filepath.Join(dir, info.TexturePath)
		}
		if info.HasDiffuse {
			d.MaterialColor = info.Diffuse
			d.HasMaterialColor = true
		}
	}

	return d, nil
}
