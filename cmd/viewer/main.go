package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/ignition/config"
	"github.com/Carmen-Shannon/ignition/engine"
	"github.com/Carmen-Shannon/ignition/engine/input"
	"github.com/Carmen-Shannon/ignition/engine/renderer"
	"github.com/Carmen-Shannon/ignition/engine/scene"
	"github.com/Carmen-Shannon/ignition/engine/window"
)

func main() {
	configPath := flag.String("config", "viewer.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("[Viewer] %v", err)
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Display.Title),
		window.WithWidth(cfg.Display.Width),
		window.WithHeight(cfg.Display.Height),
	)

	r := renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		win,
		renderer.WithPresentMode(presentMode(cfg)),
		renderer.WithMSAA(msaaSamples(cfg)),
		renderer.WithClearColor(
			float64(cfg.Display.ClearColor[0]),
			float64(cfg.Display.ClearColor[1]),
			float64(cfg.Display.ClearColor[2]),
			float64(cfg.Display.ClearColor[3]),
		),
	)

	tracker := input.NewTracker(input.WithSensitivity(cfg.Camera.Sensitivity))
	wireInput(win, tracker)

	sc := scene.NewOrchestrator(cfg, tracker)
	if err := sc.InitGPU(r); err != nil {
		log.Fatalf("[Viewer] scene GPU init: %v", err)
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithRenderer(r),
		engine.WithTickRate(float64(cfg.Scene.TickRate)),
	)

	printControls()

	log.Println("[Viewer] starting")
	eng.Run()

	fmt.Println(sc.Profiler().Summary())
}

// wireInput routes window events into the input tracker. The right mouse
// button toggles free-look, which also captures or releases the cursor.
//
// Parameters:
//   - win: the window emitting events
//   - tracker: the tracker accumulating them for the scene tick
func wireInput(win window.Window, tracker input.Tracker) {
	win.SetKeyDownCallback(tracker.KeyDown)
	win.SetKeyUpCallback(tracker.KeyUp)
	win.SetMouseMoveCallback(tracker.MouseMove)
	win.SetLeftMouseDownCallback(tracker.LeftMouseDown)
	win.SetLeftMouseUpCallback(tracker.LeftMouseUp)
	win.SetRightMouseDownCallback(func(x, y int32) {
		win.SetCursorCaptured(tracker.ToggleLook(x, y))
	})
}

// presentMode maps the configured vsync flag to a surface present mode.
//
// Parameters:
//   - cfg: the viewer configuration
//
// Returns:
//   - renderer.PresentMode: VSync when configured, otherwise uncapped
func presentMode(cfg *config.Config) renderer.PresentMode {
	if cfg.Display.VSync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}

// msaaSamples maps the configured sample count to a supported MSAA level,
// falling back to 4x for unrecognized values.
//
// Parameters:
//   - cfg: the viewer configuration
//
// Returns:
//   - renderer.MSAASampleCount: the sample count to render with
func msaaSamples(cfg *config.Config) renderer.MSAASampleCount {
	switch cfg.Display.MSAA {
	case 1:
		return renderer.MSAAOff
	case 8:
		return renderer.MSAA8x
	case 16:
		return renderer.MSAA16x
	default:
		return renderer.MSAA4x
	}
}

func printControls() {
	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  Ignition Viewer                                     ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  L=Launch  P=Pause  R=Reset                          ║")
	fmt.Println("║  Camera: WASD=Move  E/Q=Up/Down  Right-drag=Look     ║")
	fmt.Println("║          Shift=Boost  Ctrl=Slow                      ║")
	fmt.Println("║  Views:  C=Cycle left  V=Cycle right  X=Split        ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")
}
