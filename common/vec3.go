package common

import (
	"github.com/chewxy/math32"
)

// Vec3 is a 3-component float32 vector in world space.
// Methods are value-based and never mutate the receiver.
type Vec3 struct {
	X, Y, Z float32
}

// WorldUp, WorldRight and WorldForward are the fixed world-space reference axes.
// The world is right-handed with +Y up and the default view looking down -Z.
var (
	WorldUp      = Vec3{0, 1, 0}
	WorldRight   = Vec3{1, 0, 0}
	WorldForward = Vec3{0, 0, -1}
)

// Add returns the component-wise sum v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o (right-handed).
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A near-zero vector is returned
// unchanged rather than dividing by ~0 and producing NaN components.
//
// Returns:
//   - Vec3: the unit vector, or v itself when |v| < 1e-6
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-6 {
		return v
	}
	return v.Scale(1.0 / l)
}

// Array returns the vector as a [3]float32, the layout GPU uniform structs use.
func (v Vec3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Vec3FromArray builds a Vec3 from a [3]float32, the inverse of Array.
func Vec3FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

// SphericalDirection builds a unit direction vector from yaw and pitch angles
// in radians. Yaw rotates around world up (yaw 0 faces -Z), pitch tilts toward
// +Y. This is the free-camera forward-vector construction.
//
// Parameters:
//   - yaw: rotation around the world up axis in radians
//   - pitch: elevation angle in radians, positive looking up
//
// Returns:
//   - Vec3: the unit direction for (yaw, pitch)
func SphericalDirection(yaw, pitch float32) Vec3 {
	cp := math32.Cos(pitch)
	return Vec3{
		X: math32.Sin(yaw) * cp,
		Y: math32.Sin(pitch),
		Z: -math32.Cos(yaw) * cp,
	}
}
