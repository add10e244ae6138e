package camera

import (
	"github.com/Carmen-Shannon/ignition/common"
)

// RigBuilderOption is a function that modifies the rigImpl structure.
type RigBuilderOption func(*rigImpl)

// WithMode sets the rig's starting mode.
//
// Parameters:
//   - mode: the mode the rig begins in
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithMode(mode Mode) RigBuilderOption {
	return func(r *rigImpl) {
		r.mode = mode
	}
}

// WithPosition sets the rig's starting world-space position.
//
// Parameters:
//   - position: the initial camera position
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithPosition(position common.Vec3) RigBuilderOption {
	return func(r *rigImpl) {
		r.position = position
	}
}

// WithYaw sets the rig's starting yaw angle.
//
// Parameters:
//   - yaw: rotation around world up in radians, 0 facing -Z
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithYaw(yaw float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.yaw = yaw
	}
}

// WithPitch sets the rig's starting pitch angle, clamped to the same range
// the look controls enforce.
//
// Parameters:
//   - pitch: elevation angle in radians
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithPitch(pitch float32) RigBuilderOption {
	return func(r *rigImpl) {
		if pitch > pitchLimit {
			pitch = pitchLimit
		} else if pitch < -pitchLimit {
			pitch = -pitchLimit
		}
		r.pitch = pitch
	}
}

// WithMoveSpeed sets the free-fly translation speed in units per second.
//
// Parameters:
//   - speed: base movement speed before boost/slow modifiers
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithMoveSpeed(speed float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.moveSpeed = speed
	}
}

// WithFollowDistance sets how far behind the vehicle the follow camera sits.
//
// Parameters:
//   - distance: offset along the vehicle's negative forward axis
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithFollowDistance(distance float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.followDistance = distance
	}
}

// WithFollowHeight sets how far above the vehicle the follow camera sits.
//
// Parameters:
//   - height: offset along the vehicle's up axis
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithFollowHeight(height float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.followHeight = height
	}
}

// WithGroundOffset sets the ground camera's fixed offset from the launch
// point.
//
// Parameters:
//   - offset: world-space displacement from the launch origin
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithGroundOffset(offset common.Vec3) RigBuilderOption {
	return func(r *rigImpl) {
		r.groundOffset = offset
	}
}

// WithLaunchOrigin anchors the ground camera to the pad the vehicle lifts
// off from. The anchor is fixed at construction and does not track the
// vehicle afterward.
//
// Parameters:
//   - origin: the launch point in world space
//
// Returns:
//   - RigBuilderOption: the option to apply
func WithLaunchOrigin(origin common.Vec3) RigBuilderOption {
	return func(r *rigImpl) {
		r.launchOrigin = origin
	}
}
