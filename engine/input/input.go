// Package input turns raw window events into an explicit per-tick state
// value. Callbacks feed a Tracker from the window thread; the simulation
// takes a Snapshot once per tick and works only with that copy, so no
// input state leaks into the core as shared mutable data.
package input

import (
	"sync"

	"github.com/Carmen-Shannon/ignition/common"
)

// State is one tick's worth of input. Movement and modifier fields are
// levels (held keys), the *Requested fields and look deltas are edges that
// fire once per key press and are cleared when the snapshot is taken.
type State struct {
	MoveForward  bool
	MoveBackward bool
	MoveLeft     bool
	MoveRight    bool
	MoveUp       bool
	MoveDown     bool

	SpeedBoost bool
	SpeedSlow  bool

	// LookActive reports free-look mode; the deltas below only accumulate
	// while it is on. Both are radians, sensitivity already applied.
	LookActive     bool
	LookDeltaYaw   float32
	LookDeltaPitch float32

	LaunchRequested      bool
	PauseToggleRequested bool
	ResetRequested       bool
	CycleLeftCamera      bool
	CycleRightCamera     bool
	SplitToggleRequested bool

	// Pointer state for the UI overlay: window-space position plus the left
	// button level. Widgets run their own press/release cycle from these.
	PointerX    float32
	PointerY    float32
	PointerDown bool
}

// Tracker accumulates window events between simulation ticks. All methods
// are safe to call from the window thread while the simulation snapshots.
type Tracker interface {
	// KeyDown records a key press. Held keys set their level until released;
	// action keys latch a one-shot request for the next snapshot.
	//
	// Parameters:
	//   - code: virtual key code (common.Key*)
	KeyDown(code uint32)

	// KeyUp records a key release, clearing the key's held level.
	//
	// Parameters:
	//   - code: virtual key code (common.Key*)
	KeyUp(code uint32)

	// MouseMove records the new cursor position. While look mode is active
	// the movement also accumulates into the look deltas.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates
	MouseMove(x, y int32)

	// ToggleLook flips free-look mode and anchors the delta origin at the
	// given cursor position. The caller uses the returned state to capture
	// or release the system cursor.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates
	//
	// Returns:
	//   - bool: the new look-mode state
	ToggleLook(x, y int32) bool

	// LeftMouseDown records the left button going down at a position.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates
	LeftMouseDown(x, y int32)

	// LeftMouseUp records the left button release.
	//
	// Parameters:
	//   - x, y: cursor position in window coordinates
	LeftMouseUp(x, y int32)

	// Snapshot returns the accumulated state and clears the one-shot edges
	// and look deltas. Held levels persist across snapshots.
	//
	// Returns:
	//   - State: the input state for this tick
	Snapshot() State
}

type trackerImpl struct {
	mu sync.Mutex

	state       State
	sensitivity float32
	lastX       int32
	lastY       int32
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a Tracker with the default mouse sensitivity.
//
// Parameters:
//   - options: functional options to configure the tracker
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker(options ...TrackerBuilderOption) Tracker {
	t := &trackerImpl{
		sensitivity: 0.002,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *trackerImpl) KeyDown(code uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch code {
	case common.KeyW:
		t.state.MoveForward = true
	case common.KeyS:
		t.state.MoveBackward = true
	case common.KeyA:
		t.state.MoveLeft = true
	case common.KeyD:
		t.state.MoveRight = true
	case common.KeyE:
		t.state.MoveUp = true
	case common.KeyQ:
		t.state.MoveDown = true
	case common.KeyLeftShift, common.KeyRightShift:
		t.state.SpeedBoost = true
	case common.KeyLeftCtrl, common.KeyRightCtrl:
		t.state.SpeedSlow = true
	case common.KeyL:
		t.state.LaunchRequested = true
	case common.KeyP:
		t.state.PauseToggleRequested = true
	case common.KeyR:
		t.state.ResetRequested = true
	case common.KeyC:
		t.state.CycleLeftCamera = true
	case common.KeyV:
		t.state.CycleRightCamera = true
	case common.KeyX:
		t.state.SplitToggleRequested = true
	}
}

func (t *trackerImpl) KeyUp(code uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch code {
	case common.KeyW:
		t.state.MoveForward = false
	case common.KeyS:
		t.state.MoveBackward = false
	case common.KeyA:
		t.state.MoveLeft = false
	case common.KeyD:
		t.state.MoveRight = false
	case common.KeyE:
		t.state.MoveUp = false
	case common.KeyQ:
		t.state.MoveDown = false
	case common.KeyLeftShift, common.KeyRightShift:
		t.state.SpeedBoost = false
	case common.KeyLeftCtrl, common.KeyRightCtrl:
		t.state.SpeedSlow = false
	}
}

func (t *trackerImpl) MouseMove(x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.PointerX = float32(x)
	t.state.PointerY = float32(y)

	if !t.state.LookActive {
		return
	}

	// Screen Y grows downward, so moving the mouse up pitches the view up.
	t.state.LookDeltaYaw += float32(x-t.lastX) * t.sensitivity
	t.state.LookDeltaPitch += float32(t.lastY-y) * t.sensitivity
	t.lastX = x
	t.lastY = y
}

func (t *trackerImpl) ToggleLook(x, y int32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.LookActive = !t.state.LookActive
	if t.state.LookActive {
		t.lastX = x
		t.lastY = y
	}
	return t.state.LookActive
}

func (t *trackerImpl) LeftMouseDown(x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.PointerX = float32(x)
	t.state.PointerY = float32(y)
	t.state.PointerDown = true
}

func (t *trackerImpl) LeftMouseUp(x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.PointerX = float32(x)
	t.state.PointerY = float32(y)
	t.state.PointerDown = false
}

func (t *trackerImpl) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.state

	t.state.LookDeltaYaw = 0
	t.state.LookDeltaPitch = 0
	t.state.LaunchRequested = false
	t.state.PauseToggleRequested = false
	t.state.ResetRequested = false
	t.state.CycleLeftCamera = false
	t.state.CycleRightCamera = false
	t.state.SplitToggleRequested = false

	return out
}
