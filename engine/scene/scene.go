// Package scene owns the simulation. The Orchestrator advances every domain
// component once per tick in a fixed order (input, clock, trajectory,
// particles and cameras, UI) and publishes the result as an immutable
// FrameSnapshot. The render goroutine only ever reads the latest snapshot, so
// the tick keeps mutating state while a frame is being encoded.
package scene

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/Carmen-Shannon/ignition/config"
	"github.com/Carmen-Shannon/ignition/engine/camera"
	"github.com/Carmen-Shannon/ignition/engine/clock"
	"github.com/Carmen-Shannon/ignition/engine/input"
	"github.com/Carmen-Shannon/ignition/engine/light"
	"github.com/Carmen-Shannon/ignition/engine/mesh"
	"github.com/Carmen-Shannon/ignition/engine/particles"
	"github.com/Carmen-Shannon/ignition/engine/profiler"
	"github.com/Carmen-Shannon/ignition/engine/renderer"
	"github.com/Carmen-Shannon/ignition/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/ignition/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/ignition/engine/renderer/shader"
	"github.com/Carmen-Shannon/ignition/engine/trajectory"
	"github.com/Carmen-Shannon/ignition/engine/ui"
	"github.com/Carmen-Shannon/ignition/engine/vehicle"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline keys registered by InitGPU.
const (
	pipelineKeyMesh      = "scene_mesh"
	pipelineKeyParticles = "particles"
	pipelineKeyUI        = "ui_overlay"
)

const (
	// launchpadScale is the uniform scale applied to the launchpad mesh at
	// each pad position.
	launchpadScale = 5.0

	// Dynamic UI mesh capacities in bytes. A full HUD sits well under a
	// thousand glyph quads, so neither buffer needs a resize path.
	uiVertexBufferCapacity = 256 << 10
	uiIndexBufferCapacity  = 64 << 10
)

// ViewSnapshot is one viewport's slice of a FrameSnapshot: where on the
// surface it draws, the camera uniform bytes to upload, and which props
// survived frustum culling for that camera.
type ViewSnapshot struct {
	// Viewport is {x, y, width, height} in surface pixels.
	Viewport [4]float32
	// CameraUniform is the marshaled camera uniform for this view.
	CameraUniform []byte
	// PropVisible is index-aligned with the orchestrator's prop list; false
	// entries are skipped during the mesh pass.
	PropVisible []bool
	// Mode is the mode the view's rig was in this tick.
	Mode camera.Mode
}

// FrameSnapshot is the complete render input for one tick. Nothing in a
// published snapshot is ever mutated again: per-tick slices are built fresh
// and the rest is static for the program's life, so the render goroutine
// reads without holding any lock.
type FrameSnapshot struct {
	Views         []ViewSnapshot
	SurfaceWidth  float32
	SurfaceHeight float32

	// LightUniform is the marshaled sun+exhaust uniform. PropUniforms holds
	// one marshaled model uniform per prop, index-aligned with PropVisible.
	LightUniform []byte
	PropUniforms [][]byte

	// ParticleData is the packed instance buffer for ParticleCount particles.
	// Empty when nothing is alive.
	ParticleData  []byte
	ParticleCount int

	// UI overlay geometry in screen space, plus the screen-size uniform the
	// overlay shader maps pixels to clip space with.
	UIVertexData  []byte
	UIIndexData   []byte
	UIIndexCount  int
	ScreenUniform []byte

	// Simulation readouts, primarily for tests and diagnostics.
	Altitude   float32
	Pose       trajectory.Pose
	ClockState clock.State
}

// sceneMesh pairs mesh data with its GPU buffers and local-space bounding
// sphere. One sceneMesh can back several props; both launchpads share one.
type sceneMesh struct {
	data     *mesh.Data
	provider bind_group_provider.BindGroupProvider
	center   common.Vec3
	radius   float32
}

// prop is one drawable object: a mesh, its world transform and its model
// uniform bind group. The vehicle prop refreshes every tick; the others are
// fixed at construction.
type prop struct {
	name     string
	mesh     *sceneMesh
	model    [16]float32
	uniform  []byte
	modelBGP bind_group_provider.BindGroupProvider
	center   common.Vec3
	radius   float32
}

// Orchestrator drives the launch scene. Update belongs to the tick goroutine
// and Render to the render goroutine; the two communicate only through the
// published FrameSnapshot. InitGPU must run once, before the loops start.
type Orchestrator interface {
	// Update advances the simulation by one tick: consume input intents,
	// tick the clock, evaluate the trajectory, move particles and cameras,
	// run the UI, then publish a fresh FrameSnapshot.
	//
	// Parameters:
	//   - dt: seconds since the previous tick
	Update(dt float32)

	// Render encodes and presents the most recent snapshot. It is a no-op
	// until InitGPU has run and the first Update has published a snapshot.
	//
	// Returns:
	//   - error: error if frame acquisition or a draw call fails
	Render() error

	// InitGPU registers the scene's pipelines and creates every GPU resource
	// the snapshots reference: mesh buffers for the props, the particle quad
	// and instance buffer, the UI atlas texture and dynamic mesh, and the
	// uniform bind groups.
	//
	// Parameters:
	//   - r: the renderer to create resources on
	//
	// Returns:
	//   - error: error if any pipeline or resource creation fails
	InitGPU(r renderer.Renderer) error

	// Resize records a new surface size. The tick goroutine applies it on
	// the next Update, so callers may invoke this from window callbacks.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width, height int)

	// Snapshot returns the most recently published frame snapshot, or nil
	// before the first Update.
	//
	// Returns:
	//   - *FrameSnapshot: the latest snapshot
	Snapshot() *FrameSnapshot

	// Profiler returns the scene's profiler for external reporting.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler tracking update/render sections
	Profiler() *profiler.Profiler
}

type orchestratorImpl struct {
	mu *sync.RWMutex

	cfg     *config.Config
	tracker input.Tracker
	r       renderer.Renderer

	clock     *clock.Clock
	evaluator trajectory.Evaluator
	emitter   particles.Emitter
	vehicle   vehicle.Vehicle
	sun       light.Light
	views     camera.ViewController
	overlay   ui.Overlay
	prof      *profiler.Profiler
	loader    mesh.Loader

	// One-shot intents latched by overlay buttons during Update's UI pass
	// and consumed at the top of the next tick. Tick goroutine only.
	uiLaunch bool
	uiPause  bool
	uiReset  bool

	// HUD labels rewritten every tick.
	altitudeLabel *ui.Widget
	modeLabel     *ui.Widget
	particleLabel *ui.Widget
	fpsLabel      *ui.Widget
	timingLabel   *ui.Widget

	props       []*prop
	vehicleProp int

	// surfaceW/H are written by Resize under mu; appliedW/H mirror them on
	// the tick goroutine once the overlay and projections have caught up.
	surfaceW, surfaceH int
	appliedW, appliedH int
	projFull           [16]float32
	projSplit          [16]float32

	snapshot *FrameSnapshot
	gpuReady bool

	// Scratch reused across ticks to keep the steady state allocation-light.
	particleScratch []particles.GPUParticleVertex
	uiVertexScratch []ui.GPUUIVertex
	uiIndexScratch  []uint32

	// Render-goroutine pools.
	writePool  []bind_group_provider.BufferWrite
	drawGroups []bind_group_provider.BindGroupProvider

	cameraBGPs  [2]bind_group_provider.BindGroupProvider
	lightBGP    bind_group_provider.BindGroupProvider
	particleBGP bind_group_provider.BindGroupProvider
	uiMeshBGP   bind_group_provider.BindGroupProvider
	uiBGP       bind_group_provider.BindGroupProvider
}

var _ Orchestrator = &orchestratorImpl{}

// NewOrchestrator assembles the launch scene from configuration: animation
// clock, trajectory evaluator, vehicle, exhaust emitter, lighting rig, view
// controller, HUD overlay and prop meshes. The returned Orchestrator owns no
// GPU resources until InitGPU runs, so tests can drive Update without a
// device.
//
// Parameters:
//   - cfg: viewer configuration; nil falls back to config.DefaultConfig()
//   - tracker: the input tracker sampled once per tick
//   - options: functional options overriding individual components
//
// Returns:
//   - Orchestrator: the assembled scene
func NewOrchestrator(cfg *config.Config, tracker input.Tracker, options ...OrchestratorBuilderOption) Orchestrator {
	if tracker == nil {
		panic("scene: NewOrchestrator requires a non-nil input tracker")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var launch common.Vec3
	if len(cfg.Scene.LaunchpadPositions) > 0 {
		p := cfg.Scene.LaunchpadPositions[0]
		launch = common.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}

	o := &orchestratorImpl{
		mu:      &sync.RWMutex{},
		cfg:     cfg,
		tracker: tracker,
		clock:   clock.NewClock(),
		prof:    profiler.NewProfiler(),
		loader:  mesh.NewLoader(),
	}

	o.evaluator = trajectory.NewEvaluator(
		trajectory.WithAccelDuration(cfg.Trajectory.AccelDuration),
		trajectory.WithMaxHeight(cfg.Trajectory.MaxHeight),
		trajectory.WithMaxDistance(cfg.Trajectory.MaxDistance),
		trajectory.WithLaunchOrigin(launch),
	)
	o.vehicle = vehicle.NewVehicle(vehicle.WithLaunchPosition(launch))
	o.emitter = particles.NewEmitter(
		particles.WithCapacity(cfg.Particles.Capacity),
		particles.WithEmissionRate(cfg.Particles.EmissionRate),
		particles.WithLifetimeRange(cfg.Particles.LifetimeMin, cfg.Particles.LifetimeMax),
		particles.WithSizeRange(cfg.Particles.SizeMin, cfg.Particles.SizeMax),
		particles.WithSpeedRange(cfg.Particles.SpeedMin, cfg.Particles.SpeedMax),
		particles.WithDirection(common.Vec3{
			X: cfg.Particles.Direction[0],
			Y: cfg.Particles.Direction[1],
			Z: cfg.Particles.Direction[2],
		}),
		particles.WithSpread(cfg.Particles.Spread),
	)
	o.sun = light.NewLight(
		light.WithDirection(cfg.Lighting.SunDirection[0], cfg.Lighting.SunDirection[1], cfg.Lighting.SunDirection[2]),
		light.WithColor(cfg.Lighting.SunColor[0], cfg.Lighting.SunColor[1], cfg.Lighting.SunColor[2]),
		light.WithIntensity(cfg.Lighting.SunIntensity),
		light.WithAmbient(cfg.Lighting.Ambient[0], cfg.Lighting.Ambient[1], cfg.Lighting.Ambient[2]),
		light.WithSpecular(cfg.Lighting.SpecularStrength, cfg.Lighting.Shininess),
		light.WithExhaustColor(cfg.Lighting.ExhaustColor[0], cfg.Lighting.ExhaustColor[1], cfg.Lighting.ExhaustColor[2]),
		light.WithExhaustIntensity(cfg.Lighting.ExhaustIntensity),
		light.WithExhaustRange(cfg.Lighting.ExhaustRange),
	)

	groundOffset := common.Vec3{
		X: cfg.Camera.GroundOffset[0],
		Y: cfg.Camera.GroundOffset[1],
		Z: cfg.Camera.GroundOffset[2],
	}
	primary := camera.NewRig(
		camera.WithPosition(common.Vec3{
			X: cfg.Camera.StartPosition[0],
			Y: cfg.Camera.StartPosition[1],
			Z: cfg.Camera.StartPosition[2],
		}),
		camera.WithMoveSpeed(cfg.Camera.MoveSpeed),
		camera.WithFollowDistance(cfg.Camera.FollowDistance),
		camera.WithFollowHeight(cfg.Camera.FollowHeight),
		camera.WithGroundOffset(groundOffset),
		camera.WithLaunchOrigin(launch),
	)
	secondary := camera.NewRig(
		camera.WithMode(camera.ModeFollow),
		camera.WithFollowDistance(cfg.Camera.FollowDistance),
		camera.WithFollowHeight(cfg.Camera.FollowHeight),
		camera.WithGroundOffset(groundOffset),
		camera.WithLaunchOrigin(launch),
	)
	o.views = camera.NewViewController(
		camera.WithPrimaryRig(primary),
		camera.WithSecondaryRig(secondary),
	)

	o.overlay = ui.NewOverlay(ui.WithSize(float32(cfg.Display.Width), float32(cfg.Display.Height)))

	for _, option := range options {
		option(o)
	}

	o.surfaceW, o.surfaceH = cfg.Display.Width, cfg.Display.Height
	o.appliedW, o.appliedH = o.surfaceW, o.surfaceH
	o.rebuildProjections()

	o.buildProps()
	o.buildHUD()
	return o
}

// buildProps loads the terrain and launchpad meshes across the loader's
// worker pool, then lays out the prop list: terrain, one prop per configured
// pad position, and the vehicle last.
func (o *orchestratorImpl) buildProps() {
	built, err := o.loader.BuildAll(
		mesh.Job{Name: "terrain", Build: func() (*mesh.Data, error) {
			return o.loader.LoadOrFallback(o.cfg.Scene.TerrainMesh, fallbackTerrain), nil
		}},
		mesh.Job{Name: "launchpad", Build: func() (*mesh.Data, error) {
			return o.loader.LoadOrFallback(o.cfg.Scene.LaunchpadMesh, fallbackLaunchpad), nil
		}},
	)
	if err != nil {
		// LoadOrFallback cannot fail, so a job error here is a programming
		// bug rather than a missing asset.
		panic(fmt.Sprintf("scene: mesh preparation: %v", err))
	}

	terrain := newSceneMesh(built["terrain"])
	pad := newSceneMesh(built["launchpad"])

	var identity [16]float32
	common.Identity(identity[:])
	o.props = append(o.props, newStaticProp("terrain", terrain, identity, 1))

	for i, pos := range o.cfg.Scene.LaunchpadPositions {
		var translate, scale, model [16]float32
		common.Translation(translate[:], common.Vec3{X: pos[0], Y: pos[1], Z: pos[2]})
		common.Scale(scale[:], common.Vec3{X: launchpadScale, Y: launchpadScale, Z: launchpadScale})
		common.Mul4(model[:], translate[:], scale[:])
		o.props = append(o.props, newStaticProp(fmt.Sprintf("launchpad_%d", i), pad, model, launchpadScale))
	}

	o.vehicleProp = len(o.props)
	center, radius := o.vehicle.BoundingSphere()
	o.props = append(o.props, &prop{
		name:    "vehicle",
		mesh:    newSceneMesh(o.vehicle.Mesh()),
		model:   o.vehicle.ModelMatrix(),
		uniform: marshalModelUniform(o.vehicle.ModelMatrix()),
		center:  center,
		radius:  radius,
	})
}

// buildHUD places the overlay widgets: readouts along the top and the
// launch controls bottom-left. Button clicks latch one-shot intents that the
// next tick consumes exactly like their keyboard equivalents.
func (o *orchestratorImpl) buildHUD() {
	o.altitudeLabel = o.overlay.AddLabel("Altitude: 0.0 m", 2, ui.AnchorTopLeft, 20, 20)
	o.modeLabel = o.overlay.AddLabel("Camera: Free", 1.5, ui.AnchorTopLeft, 20, 52)
	o.particleLabel = o.overlay.AddLabel("Particles: 0 / 0", 1.5, ui.AnchorTopLeft, 20, 76)
	o.fpsLabel = o.overlay.AddLabel("FPS: 0", 1.5, ui.AnchorTopRight, 170, 20)
	o.timingLabel = o.overlay.AddLabel("update 0.00 ms\nrender 0.00 ms", 1.5, ui.AnchorTopRight, 170, 44)

	o.overlay.AddButton("Launch", 100, 40, ui.AnchorBottomLeft, 20, 60, func() { o.uiLaunch = true })
	o.overlay.AddButton("Pause", 100, 40, ui.AnchorBottomLeft, 130, 60, func() { o.uiPause = true })
	o.overlay.AddButton("Reset", 100, 40, ui.AnchorBottomLeft, 240, 60, func() { o.uiReset = true })
}

func (o *orchestratorImpl) Update(dt float32) {
	o.prof.BeginFrame()
	o.prof.Begin("update")

	o.applyPendingResize()

	st := o.tracker.Snapshot()

	if st.LaunchRequested || o.uiLaunch {
		o.clock.Start()
	}
	if st.PauseToggleRequested || o.uiPause {
		o.clock.TogglePause()
	}
	if st.ResetRequested || o.uiReset {
		o.clock.Reset()
		o.vehicle.Reset()
	}
	o.uiLaunch, o.uiPause, o.uiReset = false, false, false

	o.clock.Tick(float64(dt))
	pose := o.evaluator.Evaluate(o.clock.Elapsed())
	o.vehicle.SetPose(pose)

	// Particles, lighting and cameras all consume this tick's pose value;
	// none of them re-evaluate, so their placements agree within the frame.
	nozzle := o.vehicle.NozzlePosition()
	o.emitter.Update(dt, nozzle, o.clock.IsRunning())

	if o.clock.State() == clock.StateIdle {
		o.sun.ClearExhaust()
	} else {
		o.sun.SetExhaust(nozzle)
	}

	o.views.Update(st, pose, dt)

	o.overlay.Update(st.PointerX, st.PointerY, st.PointerDown)
	o.refreshHUD()

	snap := o.buildSnapshot(pose)

	o.mu.Lock()
	o.snapshot = snap
	o.mu.Unlock()

	o.prof.End("update")
	o.prof.EndFrame()
}

// applyPendingResize picks up a surface size recorded by Resize and reflows
// everything sized in pixels: the overlay layout and both projection
// matrices.
func (o *orchestratorImpl) applyPendingResize() {
	o.mu.RLock()
	w, h := o.surfaceW, o.surfaceH
	o.mu.RUnlock()
	if w == o.appliedW && h == o.appliedH {
		return
	}
	o.appliedW, o.appliedH = w, h
	o.overlay.Resize(float32(w), float32(h))
	o.rebuildProjections()
}

func (o *orchestratorImpl) rebuildProjections() {
	w := float32(o.appliedW)
	h := float32(o.appliedH)
	if h <= 0 {
		h = 1
	}
	fov := o.cfg.Camera.FOVRadians()
	common.Perspective(o.projFull[:], fov, w/h, o.cfg.Camera.NearPlane, o.cfg.Camera.FarPlane)
	common.Perspective(o.projSplit[:], fov, (w/2)/h, o.cfg.Camera.NearPlane, o.cfg.Camera.FarPlane)
}

func (o *orchestratorImpl) refreshHUD() {
	o.altitudeLabel.Text = fmt.Sprintf("Altitude: %.1f m", o.vehicle.Altitude())

	if o.views.Split() {
		o.modeLabel.Text = fmt.Sprintf("Camera: %s | %s", o.views.PrimaryRig().Mode(), o.views.SecondaryRig().Mode())
	} else {
		o.modeLabel.Text = fmt.Sprintf("Camera: %s", o.views.PrimaryRig().Mode())
	}

	o.particleLabel.Text = fmt.Sprintf("Particles: %d / %d", o.emitter.ActiveCount(), o.emitter.Capacity())
	o.fpsLabel.Text = fmt.Sprintf("FPS: %.0f", o.prof.LastFPS())

	var upd, rnd float64
	if s, ok := o.prof.Stats("update"); ok {
		upd = s.Average
	}
	if s, ok := o.prof.Stats("render"); ok {
		rnd = s.Average
	}
	o.timingLabel.Text = fmt.Sprintf("update %.2f ms\nrender %.2f ms", upd, rnd)
}

// buildSnapshot marshals this tick's state into a FrameSnapshot. Per-view
// work happens here too: view-projection composition and frustum culling of
// the prop list.
func (o *orchestratorImpl) buildSnapshot(pose trajectory.Pose) *FrameSnapshot {
	surfW := float32(o.appliedW)
	surfH := float32(o.appliedH)

	veh := o.props[o.vehicleProp]
	veh.model = o.vehicle.ModelMatrix()
	veh.center, veh.radius = o.vehicle.BoundingSphere()
	veh.uniform = marshalModelUniform(veh.model)

	views := o.views.Views()
	snap := &FrameSnapshot{
		Views:         make([]ViewSnapshot, 0, len(views)),
		SurfaceWidth:  surfW,
		SurfaceHeight: surfH,
		Altitude:      o.vehicle.Altitude(),
		Pose:          pose,
		ClockState:    o.clock.State(),
	}

	proj := &o.projFull
	if len(views) > 1 {
		proj = &o.projSplit
	}
	for i, view := range views {
		var viewProj [16]float32
		common.Mul4(viewProj[:], proj[:], view.ViewMatrix[:])
		frustum := common.ExtractFrustumFromMatrix(viewProj[:])
		visible := make([]bool, len(o.props))
		for j, p := range o.props {
			visible[j] = frustum.ContainsSphere(p.center, p.radius)
		}
		snap.Views = append(snap.Views, ViewSnapshot{
			Viewport:      viewportRect(i, len(views), surfW, surfH),
			CameraUniform: cameraUniformBytes(viewProj, view),
			PropVisible:   visible,
			Mode:          view.Mode,
		})
	}

	lightUniform := o.sun.Uniform()
	snap.LightUniform = lightUniform.Marshal()

	snap.PropUniforms = make([][]byte, len(o.props))
	for j, p := range o.props {
		snap.PropUniforms[j] = p.uniform
	}

	// SliceToBytes aliases the scratch arrays, so the snapshot takes copies.
	o.particleScratch = o.emitter.AppendDrawList(o.particleScratch[:0])
	snap.ParticleCount = len(o.particleScratch)
	if snap.ParticleCount > 0 {
		snap.ParticleData = append([]byte(nil), common.SliceToBytes(o.particleScratch)...)
	}

	o.uiVertexScratch, o.uiIndexScratch = o.overlay.AppendDrawLists(o.uiVertexScratch[:0], o.uiIndexScratch[:0])
	snap.UIIndexCount = len(o.uiIndexScratch)
	if snap.UIIndexCount > 0 {
		snap.UIVertexData = append([]byte(nil), common.SliceToBytes(o.uiVertexScratch)...)
		snap.UIIndexData = append([]byte(nil), common.SliceToBytes(o.uiIndexScratch)...)
	}

	screen := ui.GPUScreenUniform{Size: [2]float32{surfW, surfH}}
	snap.ScreenUniform = screen.Marshal()
	return snap
}

func (o *orchestratorImpl) Render() error {
	o.mu.RLock()
	snap := o.snapshot
	ready := o.gpuReady
	o.mu.RUnlock()
	if snap == nil || !ready {
		return nil
	}

	o.prof.Begin("render")
	defer o.prof.End("render")

	o.stageWrites(snap)

	if err := o.r.BeginFrame(); err != nil {
		return fmt.Errorf("scene: begin frame: %w", err)
	}
	err := o.encodePasses(snap)
	o.r.EndFrame()
	o.r.Present()
	o.prof.Tick()
	return err
}

// stageWrites queues every buffer upload the snapshot needs before the
// render pass opens: camera uniforms per view, light, per-prop model
// uniforms, the screen uniform, particle instances and UI geometry.
func (o *orchestratorImpl) stageWrites(snap *FrameSnapshot) {
	writes := o.writePool[:0]
	for i := range snap.Views {
		if i >= len(o.cameraBGPs) {
			break
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: o.cameraBGPs[i],
			Binding:  0,
			Data:     snap.Views[i].CameraUniform,
		})
	}
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: o.lightBGP,
		Binding:  0,
		Data:     snap.LightUniform,
	})
	for j, data := range snap.PropUniforms {
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: o.props[j].modelBGP,
			Binding:  0,
			Data:     data,
		})
	}
	writes = append(writes, bind_group_provider.BufferWrite{
		Provider: o.uiBGP,
		Binding:  0,
		Data:     snap.ScreenUniform,
	})
	o.r.WriteBuffers(writes)
	o.writePool = writes[:0]

	if snap.ParticleCount > 0 {
		o.r.WriteInstanceBuffer(o.particleBGP, snap.ParticleData)
	}
	if snap.UIIndexCount > 0 {
		o.r.WriteMeshBuffers(o.uiMeshBGP, snap.UIVertexData, snap.UIIndexData, snap.UIIndexCount)
	}
}

// encodePasses walks the snapshot's views, drawing culled props and the
// particle billboards inside each viewport, then draws the UI overlay across
// the full surface.
func (o *orchestratorImpl) encodePasses(snap *FrameSnapshot) error {
	for i := range snap.Views {
		if i >= len(o.cameraBGPs) {
			break
		}
		view := &snap.Views[i]
		o.r.SetViewport(view.Viewport[0], view.Viewport[1], view.Viewport[2], view.Viewport[3])

		for j, p := range o.props {
			if j < len(view.PropVisible) && !view.PropVisible[j] {
				continue
			}
			groups := append(o.drawGroups[:0], o.cameraBGPs[i], o.lightBGP, p.modelBGP)
			if err := o.r.DrawCall(pipelineKeyMesh, p.mesh.provider, 1, groups); err != nil {
				return fmt.Errorf("scene: draw %s: %w", p.name, err)
			}
			o.drawGroups = groups[:0]
		}

		if snap.ParticleCount > 0 {
			groups := append(o.drawGroups[:0], o.cameraBGPs[i])
			if err := o.r.DrawCall(pipelineKeyParticles, o.particleBGP, uint32(snap.ParticleCount), groups); err != nil {
				return fmt.Errorf("scene: draw particles: %w", err)
			}
			o.drawGroups = groups[:0]
		}
	}

	if snap.UIIndexCount > 0 {
		o.r.SetViewport(0, 0, snap.SurfaceWidth, snap.SurfaceHeight)
		groups := append(o.drawGroups[:0], o.uiBGP)
		if err := o.r.DrawCall(pipelineKeyUI, o.uiMeshBGP, 1, groups); err != nil {
			return fmt.Errorf("scene: draw ui: %w", err)
		}
		o.drawGroups = groups[:0]
	}
	return nil
}

func (o *orchestratorImpl) InitGPU(r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("scene: InitGPU requires a renderer")
	}

	meshVS, meshFS := shader.MeshShaders()
	particleVS, particleFS := shader.ParticleShaders()
	uiVS, uiFS := shader.UIShaders()

	if err := r.RegisterPipelines(
		pipeline.NewPipeline(pipelineKeyMesh,
			pipeline.WithVertexShader(meshVS),
			pipeline.WithFragmentShader(meshFS),
		),
		pipeline.NewPipeline(pipelineKeyParticles,
			pipeline.WithVertexShader(particleVS),
			pipeline.WithFragmentShader(particleFS),
			pipeline.WithBlendEnabled(true),
			pipeline.WithDepthWriteEnabled(false),
		),
		pipeline.NewPipeline(pipelineKeyUI,
			pipeline.WithVertexShader(uiVS),
			pipeline.WithFragmentShader(uiFS),
			pipeline.WithBlendEnabled(true),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
		),
	); err != nil {
		return fmt.Errorf("scene: register pipelines: %w", err)
	}

	// Bind groups must be created against the same layouts the pipelines
	// were registered with, which for groups both stages declare means the
	// merged descriptor.
	meshLayouts := renderer.MergeBindGroupLayouts(meshVS.BindGroupLayoutDescriptors(), meshFS.BindGroupLayoutDescriptors())
	uiLayouts := renderer.MergeBindGroupLayouts(uiVS.BindGroupLayoutDescriptors(), uiFS.BindGroupLayoutDescriptors())

	for i := range o.cameraBGPs {
		bgp := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("camera_view_%d", i))
		if err := r.InitBindGroup(bgp, meshLayouts[0], nil, nil); err != nil {
			return fmt.Errorf("scene: camera bind group %d: %w", i, err)
		}
		o.cameraBGPs[i] = bgp
	}

	o.lightBGP = bind_group_provider.NewBindGroupProvider("scene_light")
	if err := r.InitBindGroup(o.lightBGP, meshLayouts[1], nil, nil); err != nil {
		return fmt.Errorf("scene: light bind group: %w", err)
	}

	for _, p := range o.props {
		if p.mesh.provider == nil {
			mp := bind_group_provider.NewBindGroupProvider(p.name + "_mesh")
			if err := r.InitMeshBuffers(mp, p.mesh.data.VertexBytes(), p.mesh.data.IndexBytes(), len(p.mesh.data.Indices)); err != nil {
				return fmt.Errorf("scene: %s mesh buffers: %w", p.name, err)
			}
			p.mesh.provider = mp
		}
		p.modelBGP = bind_group_provider.NewBindGroupProvider(p.name + "_model")
		if err := r.InitBindGroup(p.modelBGP, meshLayouts[2], nil, nil); err != nil {
			return fmt.Errorf("scene: %s model bind group: %w", p.name, err)
		}
	}

	// Particle billboards share one unit quad; per-particle data rides the
	// instance buffer, sized for the pool capacity.
	o.particleBGP = bind_group_provider.NewBindGroupProvider("particles")
	quadCorners := []float32{-0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5, 0.5}
	quadIndices := []uint32{0, 1, 2, 0, 2, 3}
	if err := r.InitMeshBuffers(o.particleBGP, common.SliceToBytes(quadCorners), common.SliceToBytes(quadIndices), len(quadIndices)); err != nil {
		return fmt.Errorf("scene: particle quad buffers: %w", err)
	}
	var pv particles.GPUParticleVertex
	if err := r.InitInstanceBuffer(o.particleBGP, uint64(o.cfg.Particles.Capacity*pv.Size())); err != nil {
		return fmt.Errorf("scene: particle instance buffer: %w", err)
	}

	o.uiMeshBGP = bind_group_provider.NewBindGroupProvider("ui_overlay_mesh")
	if err := r.InitDynamicMeshBuffers(o.uiMeshBGP, uiVertexBufferCapacity, uiIndexBufferCapacity); err != nil {
		return fmt.Errorf("scene: ui mesh buffers: %w", err)
	}

	o.uiBGP = bind_group_provider.NewBindGroupProvider("ui_overlay")
	if err := r.InitTextureView(o.uiBGP, 1, o.overlay.Atlas().Staging()); err != nil {
		return fmt.Errorf("scene: ui atlas texture: %w", err)
	}
	if err := r.InitSampler(o.uiBGP, 2, common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	}); err != nil {
		return fmt.Errorf("scene: ui sampler: %w", err)
	}
	if err := r.InitBindGroup(o.uiBGP, uiLayouts[0], nil, nil); err != nil {
		return fmt.Errorf("scene: ui bind group: %w", err)
	}

	o.mu.Lock()
	o.r = r
	o.gpuReady = true
	o.mu.Unlock()
	return nil
}

func (o *orchestratorImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	o.mu.Lock()
	o.surfaceW, o.surfaceH = width, height
	o.mu.Unlock()
}

func (o *orchestratorImpl) Snapshot() *FrameSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snapshot
}

func (o *orchestratorImpl) Profiler() *profiler.Profiler {
	return o.prof
}

func newSceneMesh(data *mesh.Data) *sceneMesh {
	center, radius := data.BoundingSphere()
	return &sceneMesh{data: data, center: center, radius: radius}
}

// newStaticProp builds a prop whose transform never changes, baking the
// world-space bounding sphere for frustum tests. scale must match the
// uniform scale inside model.
func newStaticProp(name string, m *sceneMesh, model [16]float32, scale float32) *prop {
	return &prop{
		name:    name,
		mesh:    m,
		model:   model,
		uniform: marshalModelUniform(model),
		center:  common.TransformPoint(model[:], m.center),
		radius:  m.radius * scale,
	}
}

// marshalModelUniform packs a model matrix and its normal matrix (transpose
// of the inverse, identity when the matrix is singular) for the mesh shader.
func marshalModelUniform(model [16]float32) []byte {
	u := mesh.GPUModelUniform{Model: model}
	var inv [16]float32
	if common.Invert4(inv[:], model[:]) {
		for r := range 4 {
			for c := range 4 {
				u.Normal[c*4+r] = inv[r*4+c]
			}
		}
	} else {
		common.Identity(u.Normal[:])
	}
	return u.Marshal()
}

// cameraUniformBytes marshals one view's camera uniform. The billboard axes
// come straight out of the view matrix rows: row 0 is the camera's right
// vector and row 1 its up vector.
func cameraUniformBytes(viewProj [16]float32, view camera.View) []byte {
	u := camera.GPUCameraUniform{
		ViewProj:       viewProj,
		CameraRight:    [3]float32{view.ViewMatrix[0], view.ViewMatrix[4], view.ViewMatrix[8]},
		CameraUp:       [3]float32{view.ViewMatrix[1], view.ViewMatrix[5], view.ViewMatrix[9]},
		CameraPosition: view.CameraPosition.Array(),
	}
	return u.Marshal()
}

// viewportRect returns the surface rectangle for view index when count views
// are active: the full surface for a single view, or a side-by-side split.
func viewportRect(index, count int, surfW, surfH float32) [4]float32 {
	if count <= 1 {
		return [4]float32{0, 0, surfW, surfH}
	}
	half := surfW / 2
	if index == 0 {
		return [4]float32{0, 0, half, surfH}
	}
	return [4]float32{half, 0, half, surfH}
}

// fallbackTerrain stands in for a missing terrain OBJ so the viewer still
// runs: a large ground plane in a muted grass tone.
func fallbackTerrain() *mesh.Data {
	ground := mesh.Quad(800, 800)
	ground.SetColor(0.30, 0.42, 0.25, 1)
	return ground
}

// fallbackLaunchpad stands in for a missing launchpad OBJ: a flat gray disc.
func fallbackLaunchpad() *mesh.Data {
	padMesh := mesh.Cylinder(6, 0.4, 24)
	padMesh.SetColor(0.8, 0.8, 0.8, 1)
	return padMesh
}
