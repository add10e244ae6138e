// Package camera drives the viewer's cameras. A Rig is one independently
// configurable camera with three behaviors: free-fly under user input, a
// chase view derived from the vehicle pose, and a fixed pad-side view. The
// ViewController owns one or two rigs and routes input to exactly one of
// them.
package camera

import (
	"github.com/Carmen-Shannon/ignition/common"
	"github.com/Carmen-Shannon/ignition/engine/input"
	"github.com/Carmen-Shannon/ignition/engine/trajectory"
)

// Mode selects how a rig derives its transform each tick.
type Mode int

const (
	// ModeFree integrates the rig from user move/look commands.
	ModeFree Mode = iota
	// ModeFollow recomputes the rig behind and above the vehicle every tick.
	ModeFollow
	// ModeGround parks the rig at a fixed offset from the launch point,
	// turning to track the vehicle.
	ModeGround
)

// String returns a human-readable mode name for UI and logging.
func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "Free"
	case ModeFollow:
		return "Follow"
	case ModeGround:
		return "Ground"
	default:
		return "Unknown"
	}
}

const (
	// pitchLimit keeps the free camera just short of straight up or down.
	pitchLimit = 1.55
	boostScale = 3.0
	slowScale  = 0.2
)

// freeState is the free-fly framing saved when leaving free mode and restored
// verbatim when cycling back into it.
type freeState struct {
	position common.Vec3
	yaw      float32
	pitch    float32
}

// Rig is one camera. In free mode it integrates user commands; in follow and
// ground mode it is a pure function of the current vehicle pose, recomputed
// from scratch every tick with no feedback from its own prior state.
// A rig is owned by the simulation tick and is not safe for concurrent use.
type Rig interface {
	// Update advances the rig one tick. Free mode consumes the input state;
	// the other modes ignore it and derive everything from the pose.
	//
	// Parameters:
	//   - st: input state for this tick (pass a zero State for autonomous rigs)
	//   - pose: the vehicle pose computed for this tick
	//   - dt: seconds since the previous tick
	Update(st input.State, pose trajectory.Pose, dt float32)

	// CycleMode advances free -> follow -> ground -> free. Leaving free mode
	// saves the current framing; re-entering free mode restores it exactly,
	// so excursions through the derived modes never disturb the user's view.
	CycleMode()

	// Mode returns the rig's current mode.
	//
	// Returns:
	//   - Mode: the active mode
	Mode() Mode

	// Position returns the rig's world-space position.
	//
	// Returns:
	//   - common.Vec3: the camera position
	Position() common.Vec3

	// Yaw returns the free-fly yaw angle in radians.
	//
	// Returns:
	//   - float32: yaw around world up, 0 facing -Z
	Yaw() float32

	// Pitch returns the free-fly pitch angle in radians.
	//
	// Returns:
	//   - float32: elevation angle, clamped to +-1.55
	Pitch() float32

	// Basis returns the rig's orthonormal orientation vectors.
	//
	// Returns:
	//   - right, up, forward: mutually orthogonal unit vectors
	Basis() (right, up, forward common.Vec3)

	// ViewMatrix returns the rig's current 4x4 view matrix (column-major).
	// Rows carry the basis (right, up, -forward); the translation column is
	// the negated projection of the position onto each basis vector.
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32
}

type rigImpl struct {
	mode     Mode
	position common.Vec3
	yaw      float32
	pitch    float32

	right   common.Vec3
	up      common.Vec3
	forward common.Vec3

	saved freeState

	moveSpeed      float32
	followDistance float32
	followHeight   float32
	groundOffset   common.Vec3
	launchOrigin   common.Vec3

	viewMatrix [16]float32
}

var _ Rig = &rigImpl{}

// NewRig creates a Rig in free mode at the default elevated position looking
// toward the scene origin.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mode:           ModeFree,
		position:       common.Vec3{X: 0, Y: 100, Z: 200},
		moveSpeed:      20.0,
		followDistance: 30.0,
		followHeight:   10.0,
		groundOffset:   common.Vec3{X: 40, Y: 5, Z: 40},
	}
	for _, option := range options {
		option(r)
	}
	// The saved slot starts as the construction framing, so a rig built in a
	// derived mode still has something sensible to restore on entering free.
	r.saved = freeState{position: r.position, yaw: r.yaw, pitch: r.pitch}
	r.deriveBasis()
	r.updateViewMatrix()
	return r
}

func (r *rigImpl) Update(st input.State, pose trajectory.Pose, dt float32) {
	switch r.mode {
	case ModeFree:
		r.applyLook(st)
		r.applyMovement(st, dt)
	case ModeFollow:
		r.position = pose.Position.
			Sub(pose.Forward().Scale(r.followDistance)).
			Add(pose.Up().Scale(r.followHeight))
		r.lookAt(pose.Position)
	case ModeGround:
		r.position = r.launchOrigin.Add(r.groundOffset)
		r.lookAt(pose.Position)
	}
	r.updateViewMatrix()
}

func (r *rigImpl) CycleMode() {
	switch r.mode {
	case ModeFree:
		r.saved = freeState{position: r.position, yaw: r.yaw, pitch: r.pitch}
		r.mode = ModeFollow
	case ModeFollow:
		r.mode = ModeGround
	case ModeGround:
		r.mode = ModeFree
		r.position = r.saved.position
		r.yaw = r.saved.yaw
		r.pitch = r.saved.pitch
		r.deriveBasis()
		r.updateViewMatrix()
	}
}

func (r *rigImpl) Mode() Mode {
	return r.mode
}

func (r *rigImpl) Position() common.Vec3 {
	return r.position
}

func (r *rigImpl) Yaw() float32 {
	return r.yaw
}

func (r *rigImpl) Pitch() float32 {
	return r.pitch
}

func (r *rigImpl) Basis() (right, up, forward common.Vec3) {
	return r.right, r.up, r.forward
}

func (r *rigImpl) ViewMatrix() [16]float32 {
	return r.viewMatrix
}

// applyLook feeds accumulated look deltas into yaw/pitch and rebuilds the
// basis. Pitch clamps short of vertical so the basis never degenerates.
func (r *rigImpl) applyLook(st input.State) {
	if !st.LookActive {
		return
	}
	if st.LookDeltaYaw == 0 && st.LookDeltaPitch == 0 {
		return
	}

	r.yaw += st.LookDeltaYaw
	r.pitch += st.LookDeltaPitch
	if r.pitch > pitchLimit {
		r.pitch = pitchLimit
	} else if r.pitch < -pitchLimit {
		r.pitch = -pitchLimit
	}
	r.deriveBasis()
}

// applyMovement translates the rig along its local axes. Boost and slow
// modifiers stack multiplicatively when both are held.
func (r *rigImpl) applyMovement(st input.State, dt float32) {
	speed := r.moveSpeed
	if st.SpeedBoost {
		speed *= boostScale
	}
	if st.SpeedSlow {
		speed *= slowScale
	}
	d := speed * dt

	if st.MoveForward {
		r.position = r.position.Add(r.forward.Scale(d))
	}
	if st.MoveBackward {
		r.position = r.position.Sub(r.forward.Scale(d))
	}
	if st.MoveLeft {
		r.position = r.position.Sub(r.right.Scale(d))
	}
	if st.MoveRight {
		r.position = r.position.Add(r.right.Scale(d))
	}
	if st.MoveUp {
		r.position = r.position.Add(r.up.Scale(d))
	}
	if st.MoveDown {
		r.position = r.position.Sub(r.up.Scale(d))
	}
}

// deriveBasis rebuilds the orientation vectors from (yaw, pitch).
func (r *rigImpl) deriveBasis() {
	r.forward = common.SphericalDirection(r.yaw, r.pitch)
	r.right = r.forward.Cross(common.WorldUp).Normalize()
	r.up = r.right.Cross(r.forward)
}

// lookAt orients the rig toward a world-space target. A target on top of the
// camera keeps the previous orientation; a straight-up or straight-down view
// falls back to a forward reference axis for the right vector.
func (r *rigImpl) lookAt(target common.Vec3) {
	dir := target.Sub(r.position)
	if dir.Length() < 1e-6 {
		return
	}
	r.forward = dir.Normalize()

	right := r.forward.Cross(common.WorldUp)
	if right.Length() < 1e-6 {
		right = r.forward.Cross(common.WorldForward)
	}
	r.right = right.Normalize()
	r.up = r.right.Cross(r.forward)
}

func (r *rigImpl) updateViewMatrix() {
	common.ViewFromBasis(r.viewMatrix[:], r.position, r.right, r.up, r.forward)
}
