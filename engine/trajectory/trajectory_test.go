package trajectory

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/stretchr/testify/assert"
)

func assertVec3InDelta(t *testing.T, expected, actual common.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta)
	assert.InDelta(t, expected.Y, actual.Y, delta)
	assert.InDelta(t, expected.Z, actual.Z, delta)
}

func TestEvaluateAtZeroHoldsOrigin(t *testing.T) {
	e := NewEvaluator(WithLaunchOrigin(common.Vec3{X: 75, Y: -1, Z: 20}))

	pose := e.Evaluate(0)
	assertVec3InDelta(t, common.Vec3{X: 75, Y: -1, Z: 20}, pose.Position, 1e-6)

	var identity [16]float32
	common.Identity(identity[:])
	assert.Equal(t, identity, pose.Rotation, "zero tangent at t=0 must hold identity")
}

func TestEvaluateEndOfAccelerationPhase(t *testing.T) {
	e := NewEvaluator(
		WithAccelDuration(3.0),
		WithMaxHeight(200.0),
		WithMaxDistance(300.0),
	)

	pose := e.Evaluate(3.0)

	// Progress clamps to exactly 1 here: height 200*(1-0.4)=120, downrange
	// 300 along -Z, sideways sin(pi/2)*300*0.15=45 along +X.
	assert.InDelta(t, 45.0, pose.Position.X, 1e-3)
	assert.InDelta(t, 120.0, pose.Position.Y, 1e-3)
	assert.InDelta(t, -300.0, pose.Position.Z, 1e-3)
}

func TestEvaluatePositionFreezesPastCurveEnd(t *testing.T) {
	e := NewEvaluator()

	end := e.Evaluate(3.0)
	later := e.Evaluate(4.0)
	muchLater := e.Evaluate(60.0)

	assertVec3InDelta(t, end.Position, later.Position, 1e-5)
	assertVec3InDelta(t, end.Position, muchLater.Position, 1e-5)
}

func TestEvaluateHeightClimbsDuringAcceleration(t *testing.T) {
	e := NewEvaluator()

	prev := e.Evaluate(0).Position.Y
	for _, elapsed := range []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0} {
		y := e.Evaluate(elapsed).Position.Y
		assert.Greater(t, y, prev, "height must climb through the acceleration phase")
		prev = y
	}
}

func TestEvaluateNoseFollowsTangent(t *testing.T) {
	e := NewEvaluator(
		WithAccelDuration(3.0),
		WithMaxHeight(200.0),
		WithMaxDistance(300.0),
	)

	// At t=1.5: p=0.25. Differentiating the curve by hand gives the tangent
	// direction {65.3048, 160, -56.25} (lateral, height, -forward), unit
	// {0.35933, 0.88038, -0.30951}.
	pose := e.Evaluate(1.5)
	nose := pose.Up()
	assertVec3InDelta(t, common.Vec3{X: 0.35933, Y: 0.88038, Z: -0.30951}, nose, 1e-4)
}

func TestEvaluateTerminalHeadingHeldPastCurveEnd(t *testing.T) {
	e := NewEvaluator(
		WithAccelDuration(3.0),
		WithMaxHeight(200.0),
		WithMaxDistance(300.0),
	)

	// Past the curve end the tangent holds {0, 0.2*Hmax, -3*Dmax}/Ta, unit
	// {0, 0.04438, -0.99901}. The vehicle stays pitched over even though
	// its position is frozen.
	for _, elapsed := range []float64{3.5, 6.0, 30.0} {
		nose := e.Evaluate(elapsed).Up()
		assertVec3InDelta(t, common.Vec3{X: 0, Y: 0.04438, Z: -0.99901}, nose, 1e-4)
	}
}

func TestEvaluateRotationTurnsSmoothly(t *testing.T) {
	e := NewEvaluator(
		WithAccelDuration(3.0),
		WithMaxHeight(200.0),
		WithMaxDistance(300.0),
	)

	// Relative angle between two rotations from the trace of R1^T R2.
	relAngle := func(a, b [16]float32) float64 {
		trace := 0.0
		for _, i := range []int{0, 1, 2, 4, 5, 6, 8, 9, 10} {
			trace += float64(a[i]) * float64(b[i])
		}
		cos := math.Max(-1, math.Min(1, (trace-1)/2))
		return math.Acos(cos)
	}

	// Sweep across the whole flight, including the branch switch at t=3.
	// The true per-step turn peaks below 0.02 rad; a flip would show ~pi.
	prev := e.Evaluate(0.05).Rotation
	for elapsed := 0.06; elapsed <= 6.0; elapsed += 0.01 {
		rot := e.Evaluate(elapsed).Rotation
		assert.Less(t, relAngle(prev, rot), 0.05, "rotation jumped at t=%.2f", elapsed)
		prev = rot
	}
}

func TestEvaluateRotationStaysOrthonormal(t *testing.T) {
	e := NewEvaluator()

	for _, elapsed := range []float64{0, 0.3, 1.0, 2.2, 3.0, 5.0, 12.0} {
		pose := e.Evaluate(elapsed)
		r, u, f := pose.Right(), pose.Up(), pose.Forward()

		assert.InDelta(t, 1.0, r.Length(), 1e-5)
		assert.InDelta(t, 1.0, u.Length(), 1e-5)
		assert.InDelta(t, 1.0, f.Length(), 1e-5)
		assert.InDelta(t, 0.0, r.Dot(u), 1e-5)
		assert.InDelta(t, 0.0, r.Dot(f), 1e-5)
		assert.InDelta(t, 0.0, u.Dot(f), 1e-5)
	}
}

func TestEvaluateVerticalCurveKeepsIdentity(t *testing.T) {
	// With no downrange travel the tangent is straight up for the whole
	// flight, already aligned with the vehicle's rest axis.
	e := NewEvaluator(WithMaxDistance(0))

	var identity [16]float32
	common.Identity(identity[:])

	for _, elapsed := range []float64{0.5, 1.5, 3.0, 8.0} {
		pose := e.Evaluate(elapsed)
		for i := range identity {
			assert.InDelta(t, identity[i], pose.Rotation[i], 1e-6)
		}
	}
}

func TestEvaluateReversedTangentUsesHalfTurn(t *testing.T) {
	// A descending curve with no downrange travel produces a tangent exactly
	// opposite the rest axis. That degenerate case is a half turn about world
	// up, which flips right and forward but leaves the nose axis in place.
	e := NewEvaluator(WithMaxHeight(-200), WithMaxDistance(0))

	pose := e.Evaluate(1.0)
	assertVec3InDelta(t, common.Vec3{X: -1, Y: 0, Z: 0}, pose.Right(), 1e-5)
	assertVec3InDelta(t, common.Vec3{X: 0, Y: 1, Z: 0}, pose.Up(), 1e-5)
	assertVec3InDelta(t, common.Vec3{X: 0, Y: 0, Z: 1}, pose.Forward(), 1e-5)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := NewEvaluator()

	a := e.Evaluate(2.375)
	b := e.Evaluate(2.375)
	assert.Equal(t, a, b)

	// Out-of-order evaluation must not disturb results.
	e.Evaluate(10.0)
	c := e.Evaluate(2.375)
	assert.Equal(t, a, c)
}

func TestModelMatrixPlacesPose(t *testing.T) {
	e := NewEvaluator(WithLaunchOrigin(common.Vec3{X: -70, Y: -1, Z: -55}))

	pose := e.Evaluate(2.0)
	m := pose.ModelMatrix()

	// Fourth column carries the translation.
	assert.InDelta(t, pose.Position.X, m[12], 1e-6)
	assert.InDelta(t, pose.Position.Y, m[13], 1e-6)
	assert.InDelta(t, pose.Position.Z, m[14], 1e-6)
	assert.InDelta(t, 1.0, m[15], 1e-6)

	// Upper 3x3 carries the rotation untouched.
	assert.InDelta(t, pose.Rotation[0], m[0], 1e-6)
	assert.InDelta(t, pose.Rotation[5], m[5], 1e-6)
	assert.InDelta(t, pose.Rotation[10], m[10], 1e-6)
}

func TestNewEvaluatorPanicsOnBadAccelDuration(t *testing.T) {
	assert.Panics(t, func() { NewEvaluator(WithAccelDuration(0)) })
	assert.Panics(t, func() { NewEvaluator(WithAccelDuration(-1)) })
}

func TestLaunchOriginGetter(t *testing.T) {
	origin := common.Vec3{X: 75, Y: -1, Z: 20}
	e := NewEvaluator(WithLaunchOrigin(origin))
	assert.Equal(t, origin, e.LaunchOrigin())
	assert.InDelta(t, 3.0, e.AccelDuration(), 1e-6)
}
