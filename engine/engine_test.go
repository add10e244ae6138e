package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/ignition/engine/profiler"
	"github.com/Carmen-Shannon/ignition/engine/renderer"
	"github.com/Carmen-Shannon/ignition/engine/scene"
	"github.com/Carmen-Shannon/ignition/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingScene tallies loop traffic so tests can observe the goroutines.
type countingScene struct {
	updates atomic.Int64
	renders atomic.Int64
	width   atomic.Int64
	height  atomic.Int64
}

var _ scene.Orchestrator = &countingScene{}

func (c *countingScene) Update(float32) { c.updates.Add(1) }

func (c *countingScene) Render() error {
	c.renders.Add(1)
	return nil
}

func (c *countingScene) InitGPU(renderer.Renderer) error { return nil }

func (c *countingScene) Resize(width, height int) {
	c.width.Store(int64(width))
	c.height.Store(int64(height))
}

func (c *countingScene) Snapshot() *scene.FrameSnapshot { return nil }

func (c *countingScene) Profiler() *profiler.Profiler { return nil }

// stubWindow records the resize callback so tests can fire it by hand.
type stubWindow struct {
	onResize func(width, height int)
}

var _ window.Window = &stubWindow{}

func (w *stubWindow) SetUpdateCallback(func()) {}
func (w *stubWindow) SetResizeCallback(cb func(int, int)) { w.onResize = cb }
func (w *stubWindow) SetScrollCallback(func(float32)) {}
func (w *stubWindow) SetKeyDownCallback(func(uint32)) {}
func (w *stubWindow) SetKeyUpCallback(func(uint32)) {}
func (w *stubWindow) SetLeftMouseDownCallback(func(int32, int32)) {}
func (w *stubWindow) SetLeftMouseUpCallback(func(int32, int32)) {}
func (w *stubWindow) SetRightMouseDownCallback(func(int32, int32)) {}
func (w *stubWindow) SetRightMouseUpCallback(func(int32, int32)) {}
func (w *stubWindow) SetMouseMoveCallback(func(int32, int32)) {}
func (w *stubWindow) SetCursorCaptured(bool) {}
func (w *stubWindow) CursorCaptured() bool { return false }
func (w *stubWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *stubWindow) IsRunning() bool { return false }
func (w *stubWindow) Close() error { return nil }
func (w *stubWindow) ProcessMessages() {}
func (w *stubWindow) Width() int { return 1280 }
func (w *stubWindow) Height() int { return 720 }

func TestLoopsDriveScene(t *testing.T) {
	cs := &countingScene{}
	e := NewEngine(WithScene(cs), WithTickRate(500), WithRenderFrameLimit(1000)).(*engineImpl)

	e.handle()
	require.Eventually(t, func() bool {
		return cs.updates.Load() > 0 && cs.renders.Load() > 0
	}, time.Second, time.Millisecond, "tick and render loops should both run")

	e.Quit()
	e.wg.Wait()

	// No further traffic after the quit signal.
	updates, renders := cs.updates.Load(), cs.renders.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, updates, cs.updates.Load())
	assert.Equal(t, renders, cs.renders.Load())
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	assert.NotPanics(t, func() { e.Quit() })
}

func TestResizeReachesScene(t *testing.T) {
	cs := &countingScene{}
	w := &stubWindow{}
	NewEngine(WithWindow(w), WithScene(cs))

	require.NotNil(t, w.onResize)
	w.onResize(800, 600)

	assert.Equal(t, int64(800), cs.width.Load())
	assert.Equal(t, int64(600), cs.height.Load())
}

func TestTickRateOptions(t *testing.T) {
	e := NewEngine(WithTickRate(120)).(*engineImpl)
	assert.Equal(t, time.Second/120, e.engineTickRate)

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.SetRenderFrameLimit(100)
	assert.Equal(t, 10*time.Millisecond, e.renderFrameLimit)
	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}
