// Package trajectory computes the vehicle's launch path. Given elapsed
// animation seconds it produces a Pose: the vehicle's world position along a
// scripted ascent curve and an orientation that keeps the nose aligned with
// the instantaneous direction of travel.
package trajectory

import (
	"github.com/Carmen-Shannon/ignition/common"
	"github.com/chewxy/math32"
)

// Pose is a rigid transform for one frame: where the vehicle is and which way
// it points. Produced fresh on every evaluation and passed around by value;
// nothing mutates a Pose after it is built.
type Pose struct {
	Position common.Vec3
	// Rotation is a 4x4 column-major rotation-only matrix.
	Rotation [16]float32
}

// ModelMatrix composes the pose into a world transform (translation·rotation)
// suitable for a per-draw uniform.
//
// Returns:
//   - [16]float32: the 4x4 column-major model matrix
func (p Pose) ModelMatrix() [16]float32 {
	var out [16]float32
	common.ComposeTransform(out[:], p.Position, p.Rotation[:])
	return out
}

// Forward returns the pose's world-space forward axis (rotation applied to -Z).
func (p Pose) Forward() common.Vec3 {
	return common.TransformDirection(p.Rotation[:], common.WorldForward)
}

// Up returns the pose's world-space nose axis (rotation applied to +Y). The
// vehicle mesh is modeled vertically, so this is its direction of travel once
// aligned with the trajectory tangent.
func (p Pose) Up() common.Vec3 {
	return common.TransformDirection(p.Rotation[:], common.WorldUp)
}

// Right returns the pose's world-space right axis (rotation applied to +X).
func (p Pose) Right() common.Vec3 {
	return common.TransformDirection(p.Rotation[:], common.WorldRight)
}

// Evaluator maps elapsed launch time to a vehicle Pose. Evaluation is a pure
// function of time: no internal state advances, so the same elapsed value
// always produces the same Pose regardless of call order or frame rate.
type Evaluator interface {
	// Evaluate computes the vehicle pose for the given elapsed launch time.
	//
	// The path runs through two phases. During the acceleration window the
	// normalized progress eases in quadratically; afterwards it grows at a
	// constant rate. Spatial placement uses progress clamped to [0,1], so the
	// vehicle freezes at the end of the curve while its orientation keeps the
	// terminal heading. The orientation is derived from the exact analytic
	// tangent of the curve, not a finite difference, so it is independent of
	// frame timing.
	//
	// Parameters:
	//   - elapsed: seconds since launch, must be >= 0
	//
	// Returns:
	//   - Pose: world position and orientation for this instant
	Evaluate(elapsed float64) Pose

	// LaunchOrigin returns the fixed world position the trajectory starts from.
	//
	// Returns:
	//   - common.Vec3: the launch origin
	LaunchOrigin() common.Vec3

	// AccelDuration returns the length of the acceleration phase in seconds.
	//
	// Returns:
	//   - float32: the acceleration window duration
	AccelDuration() float32
}

type evaluatorImpl struct {
	accelDuration float32
	maxHeight     float32
	maxDistance   float32
	origin        common.Vec3
}

var _ Evaluator = &evaluatorImpl{}

// lateralScale is the fraction of the forward distance used for the sideways
// arc of the ascent curve.
const lateralScale = 0.15

// NewEvaluator creates an Evaluator with default curve parameters
// (3 second acceleration window, 200 unit apex, 300 unit downrange distance,
// origin at the world origin).
//
// Parameters:
//   - options: functional options to configure the evaluator
//
// Returns:
//   - Evaluator: the newly created evaluator
func NewEvaluator(options ...EvaluatorBuilderOption) Evaluator {
	e := &evaluatorImpl{
		accelDuration: 3.0,
		maxHeight:     200.0,
		maxDistance:   300.0,
	}
	for _, option := range options {
		option(e)
	}
	if e.accelDuration <= 0 {
		panic("trajectory: acceleration duration must be positive")
	}
	return e
}

func (e *evaluatorImpl) Evaluate(elapsed float64) Pose {
	u, dudt := e.progress(elapsed)

	p := u
	if p > 1 {
		p = 1
	}

	pose := Pose{
		Position: e.origin.Add(e.offsetAt(p)),
	}
	e.orientAlongTangent(&pose, e.tangentAt(p, dudt))
	return pose
}

func (e *evaluatorImpl) LaunchOrigin() common.Vec3 {
	return e.origin
}

func (e *evaluatorImpl) AccelDuration() float32 {
	return e.accelDuration
}

// progress maps elapsed seconds to the unclamped curve parameter u and its
// time derivative. During the acceleration window u eases in quadratically;
// afterwards it grows at a constant rate and exceeds 1.
func (e *evaluatorImpl) progress(elapsed float64) (u, dudt float32) {
	t := float32(elapsed)
	ta := e.accelDuration
	if t <= ta {
		return (t / ta) * (t / ta), 2 * t / (ta * ta)
	}
	return 1 + (t-ta)/ta, 1 / ta
}

// offsetAt returns the displacement from the launch origin at clamped
// progress p. Height climbs fast and levels off, downrange distance eases in
// cubically, and a gentle sine arc bends the path sideways.
func (e *evaluatorImpl) offsetAt(p float32) common.Vec3 {
	height := p * e.maxHeight * (1 - 0.4*p)
	forward := p * p * p * e.maxDistance
	lateral := math32.Sin(p*math32.Pi/2) * e.maxDistance * lateralScale

	return common.WorldUp.Scale(height).
		Add(common.WorldForward.Scale(forward)).
		Add(common.WorldRight.Scale(lateral))
}

// tangentAt differentiates the position curve with respect to time via the
// chain rule. The spatial derivatives use the clamped p while dudt comes from
// the unclamped parameter, so past the end of the curve the tangent holds its
// terminal direction instead of collapsing to zero.
func (e *evaluatorImpl) tangentAt(p, dudt float32) common.Vec3 {
	dHeight := e.maxHeight * (1 - 0.8*p)
	dForward := 3 * p * p * e.maxDistance
	dLateral := math32.Cos(p*math32.Pi/2) * (math32.Pi / 2) * e.maxDistance * lateralScale

	return common.WorldUp.Scale(dHeight).
		Add(common.WorldForward.Scale(dForward)).
		Add(common.WorldRight.Scale(dLateral)).
		Scale(dudt)
}

// orientAlongTangent writes the rotation that carries the vehicle's vertical
// rest axis onto the normalized tangent. A vanishing tangent (only at t=0)
// keeps identity. When the tangent is parallel to the rest axis the generic
// axis-angle construction degenerates: exactly reversed uses a fixed half
// turn about world up, already aligned uses identity.
func (e *evaluatorImpl) orientAlongTangent(pose *Pose, tangent common.Vec3) {
	common.Identity(pose.Rotation[:])

	if tangent.Length() < 1e-6 {
		return
	}

	dir := tangent.Normalize()
	dot := common.WorldUp.Dot(dir)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	axis := common.WorldUp.Cross(dir)
	if axis.Length() < 1e-6 {
		if dot < 0 {
			common.RotationAxisAngle(pose.Rotation[:], common.WorldUp, math32.Pi)
		}
		return
	}

	common.RotationAxisAngle(pose.Rotation[:], axis.Normalize(), math32.Acos(dot))
}
