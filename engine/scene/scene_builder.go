package scene

import (
	"github.com/Carmen-Shannon/ignition/engine/camera"
	"github.com/Carmen-Shannon/ignition/engine/light"
	"github.com/Carmen-Shannon/ignition/engine/mesh"
	"github.com/Carmen-Shannon/ignition/engine/particles"
	"github.com/Carmen-Shannon/ignition/engine/profiler"
	"github.com/Carmen-Shannon/ignition/engine/trajectory"
	"github.com/Carmen-Shannon/ignition/engine/ui"
	"github.com/Carmen-Shannon/ignition/engine/vehicle"
)

// OrchestratorBuilderOption is a functional option for configuring an
// Orchestrator. Use the With* functions to create options. Overrides run
// before the prop list and HUD are built, so a replaced loader or overlay
// participates in construction.
type OrchestratorBuilderOption func(o *orchestratorImpl)

// WithEvaluator replaces the trajectory evaluator built from configuration.
//
// Parameters:
//   - e: the evaluator to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithEvaluator(e trajectory.Evaluator) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if e != nil {
			o.evaluator = e
		}
	}
}

// WithEmitter replaces the exhaust particle emitter built from configuration.
//
// Parameters:
//   - e: the emitter to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithEmitter(e particles.Emitter) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if e != nil {
			o.emitter = e
		}
	}
}

// WithVehicle replaces the launch vehicle built from configuration.
//
// Parameters:
//   - v: the vehicle to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithVehicle(v vehicle.Vehicle) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if v != nil {
			o.vehicle = v
		}
	}
}

// WithLight replaces the lighting rig built from configuration.
//
// Parameters:
//   - l: the light to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithLight(l light.Light) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if l != nil {
			o.sun = l
		}
	}
}

// WithViewController replaces the camera view controller built from
// configuration.
//
// Parameters:
//   - vc: the view controller to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithViewController(vc camera.ViewController) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if vc != nil {
			o.views = vc
		}
	}
}

// WithOverlay replaces the UI overlay. The orchestrator still adds its HUD
// widgets to whatever overlay it ends up with.
//
// Parameters:
//   - ov: the overlay to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithOverlay(ov ui.Overlay) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if ov != nil {
			o.overlay = ov
		}
	}
}

// WithLoader replaces the mesh loader used for prop preparation. Seeding the
// loader via mesh.WithMesh lets tests supply tiny geometry without touching
// disk.
//
// Parameters:
//   - l: the loader to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithLoader(l mesh.Loader) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if l != nil {
			o.loader = l
		}
	}
}

// WithProfiler replaces the scene profiler.
//
// Parameters:
//   - p: the profiler to use
//
// Returns:
//   - OrchestratorBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) OrchestratorBuilderOption {
	return func(o *orchestratorImpl) {
		if p != nil {
			o.prof = p
		}
	}
}
