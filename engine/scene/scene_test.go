package scene

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/Carmen-Shannon/ignition/config"
	"github.com/Carmen-Shannon/ignition/engine/camera"
	"github.com/Carmen-Shannon/ignition/engine/clock"
	"github.com/Carmen-Shannon/ignition/engine/input"
	"github.com/Carmen-Shannon/ignition/engine/mesh"
	"github.com/Carmen-Shannon/ignition/engine/renderer"
	"github.com/Carmen-Shannon/ignition/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/ignition/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedTracker feeds one canned input state per tick, standing in for the
// window-driven tracker.
type scriptedTracker struct {
	states []input.State
	next   int
}

var _ input.Tracker = &scriptedTracker{}

func (s *scriptedTracker) KeyDown(uint32) {}
func (s *scriptedTracker) KeyUp(uint32) {}
func (s *scriptedTracker) MouseMove(int32, int32) {}
func (s *scriptedTracker) ToggleLook(int32, int32) bool { return false }
func (s *scriptedTracker) LeftMouseDown(int32, int32) {}
func (s *scriptedTracker) LeftMouseUp(int32, int32) {}

func (s *scriptedTracker) Snapshot() input.State {
	if s.next < len(s.states) {
		st := s.states[s.next]
		s.next++
		return st
	}
	return input.State{}
}

func testLoader() mesh.Loader {
	return mesh.NewLoader(
		mesh.WithMesh("terrain", mesh.Quad(1, 1)),
		mesh.WithMesh("launchpad", mesh.Quad(1, 1)),
	)
}

func newTestOrchestrator(cfg *config.Config, states ...input.State) *orchestratorImpl {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tracker := &scriptedTracker{states: states}
	return NewOrchestrator(cfg, tracker, WithLoader(testLoader())).(*orchestratorImpl)
}

func TestNewOrchestratorRequiresTracker(t *testing.T) {
	require.Panics(t, func() {
		NewOrchestrator(config.DefaultConfig(), nil)
	})
}

func TestIdleTickKeepsVehicleOnPad(t *testing.T) {
	o := newTestOrchestrator(nil)

	o.Update(1.0 / 60.0)
	snap := o.Snapshot()
	require.NotNil(t, snap)

	assert.Equal(t, clock.StateIdle, snap.ClockState)
	assert.InDelta(t, 0, snap.Altitude, 1e-6)
	pad := common.Vec3{X: 75, Y: -1, Z: 20}
	assert.Equal(t, pad, snap.Pose.Position)
	assert.Zero(t, snap.ParticleCount)
	assert.False(t, o.sun.ExhaustActive())

	require.Len(t, snap.Views, 1)
	assert.Equal(t, [4]float32{0, 0, 1280, 720}, snap.Views[0].Viewport)
	assert.Equal(t, camera.ModeFree, snap.Views[0].Mode)
}

func TestLaunchStartsClockAndClimbs(t *testing.T) {
	o := newTestOrchestrator(nil, input.State{LaunchRequested: true})

	o.Update(0.5)
	snap := o.Snapshot()

	assert.Equal(t, clock.StateRunning, snap.ClockState)
	assert.Greater(t, snap.Altitude, float32(0))
	assert.Equal(t, o.vehicle.Pose(), snap.Pose)
}

func TestLaunchWhileRunningRestartsClock(t *testing.T) {
	o := newTestOrchestrator(nil,
		input.State{LaunchRequested: true},
		input.State{LaunchRequested: true},
	)

	o.Update(1.0)
	first := o.Snapshot().Altitude
	o.Update(1.0)
	second := o.Snapshot().Altitude

	// The second launch restarts elapsed time, so one tick later the
	// vehicle sits at the same one-second altitude again.
	assert.InDelta(t, first, second, 1e-4)
}

func TestAltitudeMatchesTrajectoryScenario(t *testing.T) {
	o := newTestOrchestrator(nil, input.State{LaunchRequested: true})

	// Three one-second ticks reach the end of the acceleration phase, where
	// the height offset is Hmax*(1-0.4) = 120.
	o.Update(1.0)
	o.Update(1.0)
	o.Update(1.0)

	assert.InDelta(t, 120.0, o.Snapshot().Altitude, 0.01)
}

func TestPauseFreezesAltitude(t *testing.T) {
	o := newTestOrchestrator(nil,
		input.State{LaunchRequested: true},
		input.State{PauseToggleRequested: true},
		input.State{},
		input.State{PauseToggleRequested: true},
	)

	o.Update(1.0)
	running := o.Snapshot().Altitude

	o.Update(1.0)
	snap := o.Snapshot()
	assert.Equal(t, clock.StatePaused, snap.ClockState)
	assert.Equal(t, running, snap.Altitude)

	o.Update(1.0)
	assert.Equal(t, running, o.Snapshot().Altitude)

	o.Update(1.0)
	snap = o.Snapshot()
	assert.Equal(t, clock.StateRunning, snap.ClockState)
	assert.Greater(t, snap.Altitude, running)
}

func TestResetReturnsToIdleOnPad(t *testing.T) {
	o := newTestOrchestrator(nil,
		input.State{LaunchRequested: true},
		input.State{},
		input.State{ResetRequested: true},
	)

	o.Update(1.0)
	o.Update(1.0)
	require.Greater(t, o.Snapshot().Altitude, float32(0))

	o.Update(1.0)
	snap := o.Snapshot()
	assert.Equal(t, clock.StateIdle, snap.ClockState)
	assert.InDelta(t, 0, snap.Altitude, 1e-6)
	assert.False(t, o.sun.ExhaustActive())

	// Reset is an edge, not a level: the scene stays idle afterwards
	// without re-consuming the intent.
	o.Update(1.0)
	assert.Equal(t, clock.StateIdle, o.Snapshot().ClockState)
}

func TestEmissionFollowsClockGate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Particles.EmissionRate = 200

	o := newTestOrchestrator(cfg,
		input.State{LaunchRequested: true},
		input.State{PauseToggleRequested: true},
	)

	o.Update(0.1)
	snap := o.Snapshot()
	assert.Equal(t, 20, snap.ParticleCount)
	assert.Len(t, snap.ParticleData, 20*32)
	assert.Equal(t, o.emitter.ActiveCount(), snap.ParticleCount)

	// Paused ticks do not emit; the existing particles are still far from
	// the end of their configured lifetimes.
	o.Update(0.1)
	assert.Equal(t, 20, o.Snapshot().ParticleCount)
}

func TestExhaustLightTracksNozzle(t *testing.T) {
	o := newTestOrchestrator(nil,
		input.State{LaunchRequested: true},
		input.State{ResetRequested: true},
	)

	o.Update(0.5)
	require.True(t, o.sun.ExhaustActive())
	assert.Equal(t, o.vehicle.NozzlePosition(), o.sun.ExhaustPosition())

	o.Update(0.5)
	assert.False(t, o.sun.ExhaustActive())
}

func TestUIButtonClickLaunches(t *testing.T) {
	// The Launch button is anchored bottom-left at offset (20, 60) with size
	// 100x40, so at 1280x720 its rectangle is (20,620)-(120,660).
	o := newTestOrchestrator(nil,
		input.State{PointerX: 70, PointerY: 640, PointerDown: true},
		input.State{PointerX: 70, PointerY: 640, PointerDown: false},
		input.State{},
	)

	o.Update(0.1)
	assert.Equal(t, clock.StateIdle, o.Snapshot().ClockState)

	// The release fires the click during this tick's UI pass; the latched
	// intent is consumed at the top of the next tick.
	o.Update(0.1)
	assert.Equal(t, clock.StateIdle, o.Snapshot().ClockState)

	o.Update(0.1)
	assert.Equal(t, clock.StateRunning, o.Snapshot().ClockState)
}

func TestSplitScreenViews(t *testing.T) {
	o := newTestOrchestrator(nil,
		input.State{SplitToggleRequested: true},
		input.State{SplitToggleRequested: true},
	)

	o.Update(0.1)
	snap := o.Snapshot()
	require.Len(t, snap.Views, 2)
	assert.Equal(t, [4]float32{0, 0, 640, 720}, snap.Views[0].Viewport)
	assert.Equal(t, [4]float32{640, 0, 640, 720}, snap.Views[1].Viewport)
	assert.Equal(t, camera.ModeFree, snap.Views[0].Mode)
	assert.Equal(t, camera.ModeFollow, snap.Views[1].Mode)

	o.Update(0.1)
	snap = o.Snapshot()
	require.Len(t, snap.Views, 1)
	assert.Equal(t, [4]float32{0, 0, 1280, 720}, snap.Views[0].Viewport)
}

func TestCycleLeftCameraChangesMode(t *testing.T) {
	o := newTestOrchestrator(nil,
		input.State{CycleLeftCamera: true},
		input.State{CycleLeftCamera: true},
		input.State{CycleLeftCamera: true},
	)

	o.Update(0.1)
	assert.Equal(t, camera.ModeFollow, o.Snapshot().Views[0].Mode)
	o.Update(0.1)
	assert.Equal(t, camera.ModeGround, o.Snapshot().Views[0].Mode)
	o.Update(0.1)
	assert.Equal(t, camera.ModeFree, o.Snapshot().Views[0].Mode)
}

func TestFrustumCullingPerView(t *testing.T) {
	t.Run("looking away culls everything", func(t *testing.T) {
		rig := camera.NewRig(
			camera.WithPosition(common.Vec3{X: 0, Y: 1000, Z: 0}),
			camera.WithPitch(1.5),
		)
		o := newTestOrchestrator(nil)
		o.views = camera.NewViewController(camera.WithPrimaryRig(rig))

		o.Update(0.1)
		snap := o.Snapshot()
		require.Len(t, snap.Views, 1)
		for j, visible := range snap.Views[0].PropVisible {
			assert.Falsef(t, visible, "prop %d should be culled", j)
		}
	})

	t.Run("looking down keeps the scene", func(t *testing.T) {
		rig := camera.NewRig(
			camera.WithPosition(common.Vec3{X: 0, Y: 300, Z: 0}),
			camera.WithPitch(-1.5),
		)
		o := newTestOrchestrator(nil)
		o.views = camera.NewViewController(camera.WithPrimaryRig(rig))

		o.Update(0.1)
		snap := o.Snapshot()
		require.Len(t, snap.Views, 1)
		assert.True(t, snap.Views[0].PropVisible[0], "terrain should be visible")
		assert.True(t, snap.Views[0].PropVisible[o.vehicleProp], "vehicle should be visible")
	})
}

func TestSnapshotIsolationAcrossTicks(t *testing.T) {
	o := newTestOrchestrator(nil, input.State{LaunchRequested: true})

	o.Update(0.5)
	first := o.Snapshot()
	lightCopy := append([]byte(nil), first.LightUniform...)
	vehicleCopy := append([]byte(nil), first.PropUniforms[o.vehicleProp]...)

	o.Update(0.5)
	second := o.Snapshot()

	require.NotSame(t, first, second)
	assert.Greater(t, second.Altitude, first.Altitude)

	// The earlier snapshot's buffers are untouched by later ticks.
	assert.True(t, bytes.Equal(first.LightUniform, lightCopy))
	assert.True(t, bytes.Equal(first.PropUniforms[o.vehicleProp], vehicleCopy))

	// The vehicle moved, so the new snapshot carries different bytes.
	assert.False(t, bytes.Equal(first.PropUniforms[o.vehicleProp], second.PropUniforms[o.vehicleProp]))
	assert.False(t, bytes.Equal(first.LightUniform, second.LightUniform))
}

func TestHUDLabelsReflectSimulation(t *testing.T) {
	o := newTestOrchestrator(nil, input.State{LaunchRequested: true})

	o.Update(1.0)
	snap := o.Snapshot()

	assert.Equal(t, fmt.Sprintf("Altitude: %.1f m", snap.Altitude), o.altitudeLabel.Text)
	assert.Equal(t, fmt.Sprintf("Particles: %d / %d", snap.ParticleCount, o.emitter.Capacity()), o.particleLabel.Text)
	assert.Equal(t, "Camera: Free", o.modeLabel.Text)
}

func TestResizeTakesEffectNextTick(t *testing.T) {
	o := newTestOrchestrator(nil)

	o.Resize(1920, 1080)
	o.Update(0.1)
	snap := o.Snapshot()

	assert.Equal(t, float32(1920), snap.SurfaceWidth)
	assert.Equal(t, float32(1080), snap.SurfaceHeight)
	assert.Equal(t, [4]float32{0, 0, 1920, 1080}, snap.Views[0].Viewport)

	w, h := o.overlay.Size()
	assert.Equal(t, float32(1920), w)
	assert.Equal(t, float32(1080), h)

	// Degenerate sizes are ignored.
	o.Resize(0, -5)
	o.Update(0.1)
	assert.Equal(t, float32(1920), o.Snapshot().SurfaceWidth)
}

func TestRenderBeforeInitGPUIsNoOp(t *testing.T) {
	o := newTestOrchestrator(nil)

	require.NoError(t, o.Render())

	o.Update(0.1)
	require.NoError(t, o.Render())
}

// recordingRenderer captures renderer traffic so tests can assert on pass
// structure without a GPU device.
type recordingRenderer struct {
	pipelines     map[string]pipeline.Pipeline
	meshInits     []string
	dynamicInits  []string
	instanceCaps  map[string]uint64
	bindGroups    []string
	textureInits  []string
	samplerInits  []string
	uniformWrites map[string][]byte
	meshWrites    map[string]int
	instanceData  map[string][]byte

	viewport [4]float32
	draws    []drawRecord
	frames   int
	presents int
}

type drawRecord struct {
	pipeline  string
	mesh      string
	instances uint32
	groups    []string
	viewport  [4]float32
}

var _ renderer.Renderer = &recordingRenderer{}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		pipelines:     make(map[string]pipeline.Pipeline),
		instanceCaps:  make(map[string]uint64),
		uniformWrites: make(map[string][]byte),
		meshWrites:    make(map[string]int),
		instanceData:  make(map[string][]byte),
	}
}

func (r *recordingRenderer) Pipeline(key string) pipeline.Pipeline { return r.pipelines[key] }

func (r *recordingRenderer) Pipelines() map[string]pipeline.Pipeline { return r.pipelines }

func (r *recordingRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		r.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (r *recordingRenderer) SetPipeline(key string, p pipeline.Pipeline) { r.pipelines[key] = p }

func (r *recordingRenderer) SetPipelines(pipelines map[string]pipeline.Pipeline) {
	r.pipelines = pipelines
}

func (r *recordingRenderer) Resize(int, int) {}

func (r *recordingRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, _ int) error {
	r.meshInits = append(r.meshInits, provider.Label())
	return nil
}

func (r *recordingRenderer) InitDynamicMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ uint64) error {
	r.dynamicInits = append(r.dynamicInits, provider.Label())
	return nil
}

func (r *recordingRenderer) WriteMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount int) {
	r.meshWrites[provider.Label()] = indexCount
}

func (r *recordingRenderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, capacity uint64) error {
	r.instanceCaps[provider.Label()] = capacity
	return nil
}

func (r *recordingRenderer) WriteInstanceBuffer(provider bind_group_provider.BindGroupProvider, data []byte) {
	r.instanceData[provider.Label()] = append([]byte(nil), data...)
}

func (r *recordingRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, _ wgpu.BindGroupLayoutDescriptor, _ map[int]wgpu.BufferUsage, _ map[int]uint64) error {
	r.bindGroups = append(r.bindGroups, provider.Label())
	return nil
}

func (r *recordingRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, _ common.TextureStagingData) error {
	r.textureInits = append(r.textureInits, fmt.Sprintf("%s/%d", provider.Label(), bindingKey))
	return nil
}

func (r *recordingRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, _ common.SamplerStagingData) error {
	r.samplerInits = append(r.samplerInits, fmt.Sprintf("%s/%d", provider.Label(), bindingKey))
	return nil
}

func (r *recordingRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		key := fmt.Sprintf("%s/%d", w.Provider.Label(), w.Binding)
		r.uniformWrites[key] = append([]byte(nil), w.Data...)
	}
}

func (r *recordingRenderer) BeginFrame() error {
	r.frames++
	return nil
}

func (r *recordingRenderer) SetViewport(x, y, width, height float32) {
	r.viewport = [4]float32{x, y, width, height}
}

func (r *recordingRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	groups := make([]string, 0, len(bindGroups))
	for _, g := range bindGroups {
		groups = append(groups, g.Label())
	}
	r.draws = append(r.draws, drawRecord{
		pipeline:  pipelineKey,
		mesh:      meshProvider.Label(),
		instances: instanceCount,
		groups:    groups,
		viewport:  r.viewport,
	})
	return nil
}

func (r *recordingRenderer) EndFrame() {}

func (r *recordingRenderer) Present() { r.presents++ }

func (r *recordingRenderer) SetPresentMode(renderer.PresentMode) {}

func TestInitGPUCreatesSceneResources(t *testing.T) {
	o := newTestOrchestrator(nil)
	rr := newRecordingRenderer()

	require.NoError(t, o.InitGPU(rr))

	assert.Contains(t, rr.pipelines, "scene_mesh")
	assert.Contains(t, rr.pipelines, "particles")
	assert.Contains(t, rr.pipelines, "ui_overlay")

	// Terrain, one shared launchpad mesh, the vehicle and the particle quad.
	assert.ElementsMatch(t,
		[]string{"terrain_mesh", "launchpad_0_mesh", "vehicle_mesh", "particles"},
		rr.meshInits,
	)
	assert.Equal(t, []string{"ui_overlay_mesh"}, rr.dynamicInits)

	// Two camera groups, the light, one model group per prop and the UI.
	assert.ElementsMatch(t,
		[]string{
			"camera_view_0", "camera_view_1", "scene_light",
			"terrain_model", "launchpad_0_model", "launchpad_1_model", "vehicle_model",
			"ui_overlay",
		},
		rr.bindGroups,
	)

	assert.Equal(t, []string{"ui_overlay/1"}, rr.textureInits)
	assert.Equal(t, []string{"ui_overlay/2"}, rr.samplerInits)
	assert.Equal(t, uint64(2000*32), rr.instanceCaps["particles"])
}

func TestRenderEncodesPassesInOrder(t *testing.T) {
	o := newTestOrchestrator(nil, input.State{LaunchRequested: true})
	rr := newRecordingRenderer()
	require.NoError(t, o.InitGPU(rr))

	o.Update(0.1)
	snap := o.Snapshot()
	require.NoError(t, o.Render())

	assert.Equal(t, 1, rr.frames)
	assert.Equal(t, 1, rr.presents)

	require.NotEmpty(t, rr.draws)

	// The UI pass comes last and always covers the full surface.
	last := rr.draws[len(rr.draws)-1]
	assert.Equal(t, "ui_overlay", last.pipeline)
	assert.Equal(t, [4]float32{0, 0, 1280, 720}, last.viewport)

	var meshDraws, particleDraws int
	for _, d := range rr.draws[:len(rr.draws)-1] {
		switch d.pipeline {
		case "scene_mesh":
			meshDraws++
			require.Len(t, d.groups, 3)
			assert.Equal(t, "camera_view_0", d.groups[0])
			assert.Equal(t, "scene_light", d.groups[1])
		case "particles":
			particleDraws++
			assert.Equal(t, uint32(snap.ParticleCount), d.instances)
		default:
			t.Fatalf("unexpected pipeline %q before the UI pass", d.pipeline)
		}
	}
	assert.Equal(t, 4, meshDraws, "terrain, two pads and the vehicle are all in view")
	assert.Equal(t, 1, particleDraws)

	// Uploaded camera bytes match the snapshot's view uniform.
	assert.True(t, bytes.Equal(snap.Views[0].CameraUniform, rr.uniformWrites["camera_view_0/0"]))
	assert.True(t, bytes.Equal(snap.ScreenUniform, rr.uniformWrites["ui_overlay/0"]))
	assert.Len(t, rr.instanceData["particles"], snap.ParticleCount*32)
	assert.Equal(t, snap.UIIndexCount, rr.meshWrites["ui_overlay_mesh"])
}

func TestRenderSplitScreenUsesBothViewports(t *testing.T) {
	o := newTestOrchestrator(nil, input.State{SplitToggleRequested: true})
	rr := newRecordingRenderer()
	require.NoError(t, o.InitGPU(rr))

	o.Update(0.1)
	require.NoError(t, o.Render())

	var left, right bool
	for _, d := range rr.draws {
		if d.pipeline != "scene_mesh" {
			continue
		}
		switch d.viewport {
		case [4]float32{0, 0, 640, 720}:
			left = true
			assert.Equal(t, "camera_view_0", d.groups[0])
		case [4]float32{640, 0, 640, 720}:
			right = true
			assert.Equal(t, "camera_view_1", d.groups[0])
		default:
			t.Fatalf("mesh draw outside the split viewports: %v", d.viewport)
		}
	}
	assert.True(t, left, "left viewport received mesh draws")
	assert.True(t, right, "right viewport received mesh draws")
}
