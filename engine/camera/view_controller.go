package camera

import (
	"github.com/Carmen-Shannon/ignition/common"
	"github.com/Carmen-Shannon/ignition/engine/input"
	"github.com/Carmen-Shannon/ignition/engine/trajectory"
)

// View is the per-viewport camera output the renderer consumes.
type View struct {
	ViewMatrix     [16]float32
	CameraPosition common.Vec3
	Mode           Mode
}

// ViewController owns the primary rig and an optional secondary rig shown in
// a split viewport. User input always drives the primary rig; the secondary
// rig runs autonomously in whatever mode it was last cycled to.
// The controller is owned by the simulation tick and is not safe for
// concurrent use.
type ViewController interface {
	// Update applies the tick's camera commands and advances both rigs.
	// The split toggle and mode-cycle requests are consumed before the rigs
	// move, so a cycle takes effect on the same tick it was pressed.
	//
	// Parameters:
	//   - st: input state for this tick
	//   - pose: the vehicle pose computed for this tick
	//   - dt: seconds since the previous tick
	Update(st input.State, pose trajectory.Pose, dt float32)

	// Split reports whether the secondary viewport is enabled.
	//
	// Returns:
	//   - bool: true when two views are active
	Split() bool

	// Views returns the camera outputs to render this frame, primary first.
	// The slice has one element normally and two in split mode.
	//
	// Returns:
	//   - []View: view matrix, position and mode per active viewport
	Views() []View

	// PrimaryRig returns the input-driven rig.
	//
	// Returns:
	//   - Rig: the primary rig
	PrimaryRig() Rig

	// SecondaryRig returns the autonomous split-view rig.
	//
	// Returns:
	//   - Rig: the secondary rig
	SecondaryRig() Rig
}

type viewControllerImpl struct {
	primary   Rig
	secondary Rig
	split     bool
}

var _ ViewController = &viewControllerImpl{}

// NewViewController creates a ViewController with a free-fly primary rig and
// a follow-mode secondary rig, split view off.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - ViewController: the newly created controller
func NewViewController(options ...ViewControllerBuilderOption) ViewController {
	v := &viewControllerImpl{}
	for _, option := range options {
		option(v)
	}
	if v.primary == nil {
		v.primary = NewRig()
	}
	if v.secondary == nil {
		v.secondary = NewRig(WithMode(ModeFollow))
	}
	return v
}

func (v *viewControllerImpl) Update(st input.State, pose trajectory.Pose, dt float32) {
	if st.SplitToggleRequested {
		v.split = !v.split
	}
	if st.CycleLeftCamera {
		v.primary.CycleMode()
	}
	// The secondary rig only cycles while its viewport is visible.
	if v.split && st.CycleRightCamera {
		v.secondary.CycleMode()
	}

	v.primary.Update(st, pose, dt)
	if v.split {
		v.secondary.Update(input.State{}, pose, dt)
	}
}

func (v *viewControllerImpl) Split() bool {
	return v.split
}

func (v *viewControllerImpl) Views() []View {
	views := make([]View, 0, 2)
	views = append(views, rigView(v.primary))
	if v.split {
		views = append(views, rigView(v.secondary))
	}
	return views
}

func (v *viewControllerImpl) PrimaryRig() Rig {
	return v.primary
}

func (v *viewControllerImpl) SecondaryRig() Rig {
	return v.secondary
}

func rigView(r Rig) View {
	return View{
		ViewMatrix:     r.ViewMatrix(),
		CameraPosition: r.Position(),
		Mode:           r.Mode(),
	}
}
