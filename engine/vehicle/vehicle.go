// Package vehicle assembles the launch vehicle from generated primitives and
// tracks its pose across a launch. The vehicle is modeled vertically, nose
// along +Y, base at the launchpad surface, and rendered as one combined mesh
// with per-vertex part colors.
package vehicle

import (
	"github.com/Carmen-Shannon/ignition/common"
	"github.com/Carmen-Shannon/ignition/engine/mesh"
	"github.com/Carmen-Shannon/ignition/engine/trajectory"
	"github.com/chewxy/math32"
)

// nozzleExitY is the model-space height of the engine nozzle's exit plane,
// where the exhaust plume originates.
const nozzleExitY = -1.5

// vehicleImpl is the implementation of the Vehicle interface.
type vehicleImpl struct {
	data     *mesh.Data
	pose     trajectory.Pose
	launch   common.Vec3
	segments int

	boundsCenter common.Vec3
	boundsRadius float32
}

// Vehicle defines the interface for the launch vehicle: its combined mesh and
// its world pose over the course of a launch. Pose updates come from the
// scene each tick; all reads reflect the most recent pose.
type Vehicle interface {
	// Mesh returns the combined vehicle mesh in model space with per-part
	// colors baked into the vertices. The mesh is built once at construction.
	//
	// Returns:
	//   - *mesh.Data: the vehicle mesh
	Mesh() *mesh.Data

	// SetPose updates the vehicle's world pose for this tick.
	//
	// Parameters:
	//   - pose: the pose produced by the trajectory evaluator
	SetPose(pose trajectory.Pose)

	// Pose returns the vehicle's current world pose.
	//
	// Returns:
	//   - trajectory.Pose: the current pose
	Pose() trajectory.Pose

	// ModelMatrix returns the current pose as a world transform for the
	// per-object uniform.
	//
	// Returns:
	//   - [16]float32: the 4x4 column-major model matrix
	ModelMatrix() [16]float32

	// Altitude returns how far the vehicle has climbed above its launch
	// height, in world units. Zero before launch and never negative.
	//
	// Returns:
	//   - float32: current height minus launch height
	Altitude() float32

	// NozzlePosition returns the world-space exhaust origin: the nozzle exit
	// plane under the current pose. The particle emitter and the exhaust
	// light both anchor here.
	//
	// Returns:
	//   - common.Vec3: the nozzle exit position
	NozzlePosition() common.Vec3

	// BoundingSphere returns a world-space sphere enclosing the vehicle under
	// its current pose, for frustum culling.
	//
	// Returns:
	//   - common.Vec3: the sphere center
	//   - float32: the sphere radius
	BoundingSphere() (common.Vec3, float32)

	// Reset returns the vehicle to its launch pose.
	Reset()
}

var _ Vehicle = &vehicleImpl{}

// NewVehicle assembles the launch vehicle and places it at its launch
// position with an identity orientation.
//
// Parameters:
//   - options: variadic list of VehicleBuilderOption functions to configure the vehicle
//
// Returns:
//   - Vehicle: a new Vehicle instance
func NewVehicle(options ...VehicleBuilderOption) Vehicle {
	v := &vehicleImpl{
		segments: mesh.DefaultSegments,
	}
	for _, option := range options {
		option(v)
	}

	v.data = assemble(v.segments)
	v.boundsCenter, v.boundsRadius = v.data.BoundingSphere()
	v.Reset()
	return v
}

func (v *vehicleImpl) Mesh() *mesh.Data {
	return v.data
}

func (v *vehicleImpl) SetPose(pose trajectory.Pose) {
	v.pose = pose
}

func (v *vehicleImpl) Pose() trajectory.Pose {
	return v.pose
}

func (v *vehicleImpl) ModelMatrix() [16]float32 {
	return v.pose.ModelMatrix()
}

func (v *vehicleImpl) Altitude() float32 {
	return math32.Max(v.pose.Position.Y-v.launch.Y, 0)
}

func (v *vehicleImpl) NozzlePosition() common.Vec3 {
	m := v.pose.ModelMatrix()
	return common.TransformPoint(m[:], common.Vec3{Y: nozzleExitY})
}

func (v *vehicleImpl) BoundingSphere() (common.Vec3, float32) {
	m := v.pose.ModelMatrix()
	return common.TransformPoint(m[:], v.boundsCenter), v.boundsRadius
}

func (v *vehicleImpl) Reset() {
	var rot [16]float32
	common.Identity(rot[:])
	v.pose = trajectory.Pose{Position: v.launch, Rotation: rot}
}

// assemble builds the rocket out of primitives: a cylinder body, cone nose,
// wide cylinder nozzle, four fins spread around the hull, a flattened window
// sphere, a thin antenna and two side-mounted thruster pods. Each part is
// posed in model space, colored and merged into one mesh.
func assemble(segments int) *mesh.Data {
	rocket := &mesh.Data{}

	addPart(rocket, mesh.Cylinder(0.8, 8.0, segments),
		translation(0, 4, 0), 0.9, 0.9, 0.95)

	addPart(rocket, mesh.Cone(0.6, 3.0, segments),
		translation(0, 9.5, 0), 0.9, 0.3, 0.2)

	addPart(rocket, mesh.Cylinder(1.0, 1.5, segments),
		translation(0, -0.75, 0), 0.4, 0.4, 0.45)

	// Four fins, each offset from the hull then swung around the long axis.
	finSize := common.Vec3{X: 0.15, Y: 2.5, Z: 1.0}
	for i := range 4 {
		var rot, m [16]float32
		common.RotationAxisAngle(rot[:], common.WorldUp, float32(i)*math32.Pi/2)
		common.Mul4(m[:], rot[:], translation(0.9, 2, 0))
		addPart(rocket, mesh.Box(finSize), m, 0.2, 0.5, 0.8)
	}

	// Porthole window, flattened vertically against the hull.
	var windowScale, windowM [16]float32
	common.Scale(windowScale[:], common.Vec3{X: 1, Y: 0.6, Z: 1})
	common.Mul4(windowM[:], translation(0.85, 5, 0), windowScale[:])
	addPart(rocket, mesh.Sphere(0.5, segments), windowM, 0.3, 0.7, 0.9)

	addPart(rocket, mesh.Cylinder(0.1, 1.5, 8),
		translation(0, 11.25, 0), 0.9, 0.9, 0.3)

	// Thruster pods lie on their sides against the hull.
	for _, side := range []float32{1, -1} {
		var rot, m [16]float32
		common.RotationAxisAngle(rot[:], common.Vec3{Z: 1}, math32.Pi/2)
		common.Mul4(m[:], translation(side*1.1, 1.5, 0), rot[:])
		addPart(rocket, mesh.Cylinder(0.3, 1.5, 12), m, 0.9, 0.6, 0.2)
	}

	return rocket
}

func addPart(target *mesh.Data, part *mesh.Data, transform [16]float32, r, g, b float32) {
	part.Transform(transform[:])
	part.SetColor(r, g, b, 1)
	target.Combine(part)
}

func translation(x, y, z float32) [16]float32 {
	var m [16]float32
	common.Translation(m[:], common.Vec3{X: x, Y: y, Z: z})
	return m
}
