// Package profiler provides frame-rate, memory and per-section CPU timing for
// the viewer's tick and render loops. Section timings accumulate in rolling
// windows so the UI and logs can show smoothed averages instead of noisy
// per-frame values.
package profiler

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
)

// SectionSnapshot is a point-in-time copy of one section's statistics, safe to
// read outside the profiler's lock.
type SectionSnapshot struct {
	Name        string
	Average     float64
	Min         float64
	Max         float64
	Last        float64
	SampleCount int
}

type sectionTimer struct {
	stats *SectionStats
	start time.Time
	open  bool
}

// Profiler tracks frame rate, memory statistics and named CPU section timings.
// Frame and section samples accumulate in rolling 100-sample windows; memory
// stats are logged at a configurable interval. Safe for use from the tick and
// render goroutines concurrently.
type Profiler struct {
	mu sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	lastFPS        float64

	frameStats *SectionStats
	frameStart time.Time
	frameOpen  bool
	sections   map[string]*sectionTimer
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second; rolling windows hold 100 samples.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		frameStats:     newSectionStats(statsWindowSize),
		sections:       make(map[string]*sectionTimer),
	}
}

// BeginFrame marks the start of a frame for frame-time tracking. Pair with
// EndFrame from the same goroutine.
func (p *Profiler) BeginFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frameStart = time.Now()
	p.frameOpen = true
}

// EndFrame records the elapsed frame time since BeginFrame into the frame
// window. A call without a matching BeginFrame is ignored.
func (p *Profiler) EndFrame() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.frameOpen {
		return
	}
	p.frameStats.AddSample(float64(time.Since(p.frameStart)) / float64(time.Millisecond))
	p.frameOpen = false
}

// Begin starts timing a named section, creating its rolling window on first
// use. Pair with End from the same goroutine; a second Begin before End
// restarts the section timer.
//
// Parameters:
//   - name: the section name, e.g. "update" or "render"
func (p *Profiler) Begin(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sections[name]
	if !ok {
		s = &sectionTimer{stats: newSectionStats(statsWindowSize)}
		p.sections[name] = s
	}
	s.start = time.Now()
	s.open = true
}

// End stops timing a named section and records the sample. A call for an
// unknown or un-started section is ignored.
//
// Parameters:
//   - name: the section name passed to Begin
func (p *Profiler) End(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sections[name]
	if !ok || !s.open {
		return
	}
	s.stats.AddSample(float64(time.Since(s.start)) / float64(time.Millisecond))
	s.open = false
}

// Stats returns a snapshot of one named section's statistics.
//
// Parameters:
//   - name: the section name passed to Begin
//
// Returns:
//   - SectionSnapshot: the section's current statistics
//   - bool: false when the section has never been timed
func (p *Profiler) Stats(name string) (SectionSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.sections[name]
	if !ok {
		return SectionSnapshot{}, false
	}
	return snapshotOf(name, s.stats), true
}

// FrameStats returns a snapshot of the frame-time window.
//
// Returns:
//   - SectionSnapshot: the frame timing statistics
func (p *Profiler) FrameStats() SectionSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return snapshotOf("frame", p.frameStats)
}

// LastFPS returns the frame rate computed at the most recent logging tick, or
// 0 before the first interval elapses.
//
// Returns:
//   - float64: frames per second over the last interval
func (p *Profiler) LastFPS() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastFPS
}

// Summary formats the frame window and every section window as an aligned
// multi-line report, sections sorted by name.
//
// Returns:
//   - string: the formatted report
func (p *Profiler) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, 0, len(p.sections))
	for name := range p.sections {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %10s %10s %10s %10s %8s\n", "section", "avg (ms)", "min (ms)", "max (ms)", "last (ms)", "samples")
	writeRow := func(snap SectionSnapshot) {
		fmt.Fprintf(&b, "%-12s %10.3f %10.3f %10.3f %10.3f %8d\n",
			snap.Name, snap.Average, snap.Min, snap.Max, snap.Last, snap.SampleCount)
	}
	writeRow(snapshotOf("frame", p.frameStats))
	for _, name := range names {
		writeRow(snapshotOf(name, p.sections[name].stats))
	}
	return b.String()
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, frame time, heap usage, allocation rate,
// GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	p.lastFPS = fps

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// TotalAlloc: Cumulative bytes allocated for heap objects (increases forever, tracks churn)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	// Calculate allocation rate (MB/sec)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// Calculate GC pause stats (last pause and max recent pause)
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		// Find max pause since last tick
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms avg | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, p.frameStats.Average(), allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

func snapshotOf(name string, s *SectionStats) SectionSnapshot {
	return SectionSnapshot{
		Name:        name,
		Average:     s.Average(),
		Min:         s.Min(),
		Max:         s.Max(),
		Last:        s.Last(),
		SampleCount: s.SampleCount(),
	}
}
