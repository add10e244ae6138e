package vehicle

import (
	"testing"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/Carmen-Shannon/ignition/engine/trajectory"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launchpadVehicle() Vehicle {
	return NewVehicle(WithLaunchPosition(common.Vec3{X: 75, Y: -1, Z: 20}))
}

func TestNewVehicleStartsAtLaunchPose(t *testing.T) {
	v := launchpadVehicle()

	assert.Equal(t, common.Vec3{X: 75, Y: -1, Z: 20}, v.Pose().Position)
	assert.Zero(t, v.Altitude())

	m := v.ModelMatrix()
	assert.Equal(t, float32(75), m[12])
	assert.Equal(t, float32(-1), m[13])
	assert.Equal(t, float32(20), m[14])
}

func TestVehicleMeshHasAllParts(t *testing.T) {
	v := launchpadVehicle()
	d := v.Mesh()

	require.NotZero(t, d.VertexCount())
	require.Len(t, d.Colors, d.VertexCount(), "every vertex carries a part color")

	// The mesh spans from below the nozzle to the antenna tip.
	min, max := d.Bounds()
	assert.InDelta(t, -1.5, float64(min.Y), 1e-4, "nozzle bottom")
	assert.InDelta(t, 12.0, float64(max.Y), 1e-4, "antenna tip")

	// Distinct part colors survive the combine.
	seen := make(map[[4]float32]bool)
	for _, c := range d.Colors {
		seen[c] = true
	}
	assert.GreaterOrEqual(t, len(seen), 7, "body, nose, nozzle, fin, window, antenna, pod colors")
}

func TestFinsAreSpreadAroundHull(t *testing.T) {
	d := assemble(16)

	finColor := [4]float32{0.2, 0.5, 0.8, 1}
	var posX, negX, posZ, negZ bool
	for i, c := range d.Colors {
		if c != finColor {
			continue
		}
		p := d.Positions[i]
		switch {
		case p.X > 0.5:
			posX = true
		case p.X < -0.5:
			negX = true
		}
		switch {
		case p.Z > 0.5:
			posZ = true
		case p.Z < -0.5:
			negZ = true
		}
	}
	assert.True(t, posX && negX && posZ && negZ, "fins must reach all four sides of the hull")
}

func TestAltitudeTracksClimb(t *testing.T) {
	v := launchpadVehicle()

	pose := v.Pose()
	pose.Position.Y = 49
	v.SetPose(pose)
	assert.InDelta(t, 50.0, float64(v.Altitude()), 1e-5)

	// A pose below the pad clamps to zero rather than reporting negative.
	pose.Position.Y = -5
	v.SetPose(pose)
	assert.Zero(t, v.Altitude())
}

func TestNozzlePositionFollowsPose(t *testing.T) {
	v := launchpadVehicle()

	nozzle := v.NozzlePosition()
	assert.InDelta(t, 75.0, float64(nozzle.X), 1e-5)
	assert.InDelta(t, -2.5, float64(nozzle.Y), 1e-5, "launch pose puts the nozzle exit below the pad origin")
	assert.InDelta(t, 20.0, float64(nozzle.Z), 1e-5)

	// Pitch the vehicle 90 degrees: the nozzle swings off the vertical axis.
	var rot [16]float32
	common.RotationAxisAngle(rot[:], common.Vec3{Z: 1}, math32.Pi/2)
	v.SetPose(trajectory.Pose{Position: common.Vec3{Y: 100}, Rotation: rot})

	nozzle = v.NozzlePosition()
	assert.InDelta(t, 1.5, float64(nozzle.X), 1e-4)
	assert.InDelta(t, 100.0, float64(nozzle.Y), 1e-4)
}

func TestBoundingSphereMovesWithPose(t *testing.T) {
	v := launchpadVehicle()
	c1, r := v.BoundingSphere()
	require.Positive(t, r)

	pose := v.Pose()
	pose.Position = pose.Position.Add(common.Vec3{Y: 120})
	v.SetPose(pose)

	c2, r2 := v.BoundingSphere()
	assert.Equal(t, r, r2, "model-space radius is pose invariant")
	assert.InDelta(t, 120.0, float64(c2.Y-c1.Y), 1e-4)
}

func TestResetReturnsToLaunchPose(t *testing.T) {
	v := launchpadVehicle()

	var rot [16]float32
	common.RotationAxisAngle(rot[:], common.Vec3{Z: 1}, 1.2)
	v.SetPose(trajectory.Pose{Position: common.Vec3{X: 10, Y: 200, Z: 30}, Rotation: rot})
	require.NotZero(t, v.Altitude())

	v.Reset()
	assert.Equal(t, common.Vec3{X: 75, Y: -1, Z: 20}, v.Pose().Position)
	assert.Zero(t, v.Altitude())
}

func TestWithSegmentsControlsTessellation(t *testing.T) {
	coarse := NewVehicle(WithSegments(8))
	fine := NewVehicle(WithSegments(24))
	assert.Less(t, coarse.Mesh().VertexCount(), fine.Mesh().VertexCount())

	ignored := NewVehicle(WithSegments(1))
	def := NewVehicle()
	assert.Equal(t, def.Mesh().VertexCount(), ignored.Mesh().VertexCount())
}
