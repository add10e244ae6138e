package engine

import (
	"time"

	"github.com/Carmen-Shannon/ignition/engine/renderer"
	"github.com/Carmen-Shannon/ignition/engine/scene"
	"github.com/Carmen-Shannon/ignition/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engineImpl)

// WithTickRate sets the simulation tick rate in ticks per second.
// The scene's Update is called at this rate. Values <= 0 are treated as the
// default (60Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engineImpl) {
		if tps <= 0 {
			tps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(tps)
	}
}

// WithWindow sets a pre-configured window for the engine to pump messages on.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engineImpl) {
		e.window = w
	}
}

// WithScene sets the scene orchestrator the engine drives. The tick loop
// calls its Update and the render loop calls its Render.
//
// Parameters:
//   - s: the scene orchestrator
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Orchestrator) EngineBuilderOption {
	return func(e *engineImpl) {
		e.scene = s
	}
}

// WithRenderer sets the renderer whose surface is resized with the window.
//
// Parameters:
//   - r: the renderer driving the window's surface
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engineImpl) {
		e.renderer = r
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engineImpl) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
