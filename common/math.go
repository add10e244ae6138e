package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses far plane convention compatible with WebGPU clip space [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// Translation writes a 4x4 translation matrix for the given position.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: world-space translation
func Translation(out []float32, pos Vec3) {
	Identity(out)
	out[12] = pos.X
	out[13] = pos.Y
	out[14] = pos.Z
}

// Scale writes a 4x4 scale matrix for the given per-axis factors.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - s: scale factors along x, y, z
func Scale(out []float32, s Vec3) {
	Identity(out)
	out[0] = s.X
	out[5] = s.Y
	out[10] = s.Z
}

// RotationAxisAngle writes a 4x4 rotation matrix for a rotation of angle
// radians around a unit axis, using the Rodrigues formulation.
// The axis must be normalized by the caller.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - axis: unit rotation axis
//   - angle: rotation angle in radians
func RotationAxisAngle(out []float32, axis Vec3, angle float32) {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	out[0] = c + x*x*t
	out[1] = y*x*t + z*s
	out[2] = z*x*t - y*s
	out[3] = 0

	out[4] = x*y*t - z*s
	out[5] = c + y*y*t
	out[6] = z*y*t + x*s
	out[7] = 0

	out[8] = x*z*t + y*s
	out[9] = y*z*t - x*s
	out[10] = c + z*z*t
	out[11] = 0

	out[12], out[13], out[14], out[15] = 0, 0, 0, 1
}

// ComposeTransform writes translation · rotation into out. The rotation matrix
// is copied verbatim into the upper 3x3 and the position fills the fourth
// column, which for a rigid transform is exactly T * R.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: world-space translation
//   - rot: 4x4 rotation matrix (16 elements, column-major, translation ignored)
func ComposeTransform(out []float32, pos Vec3, rot []float32) {
	copy(out[:12], rot[:12])
	out[12] = pos.X
	out[13] = pos.Y
	out[14] = pos.Z
	out[15] = 1
}

// TransformDirection rotates a direction vector by the upper 3x3 of a 4x4
// column-major matrix. Translation is ignored.
//
// Parameters:
//   - m: 4x4 matrix (16 elements, column-major)
//   - v: direction to rotate
//
// Returns:
//   - Vec3: the rotated direction
func TransformDirection(m []float32, v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// TransformPoint transforms a position by a 4x4 column-major matrix with an
// implicit w of 1, so translation applies.
//
// Parameters:
//   - m: 4x4 matrix (16 elements, column-major)
//   - v: position to transform
//
// Returns:
//   - Vec3: the transformed position
func TransformPoint(m []float32, v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// TransformNormal multiplies a normal by the transpose of the upper 3x3 of a
// 4x4 column-major matrix and renormalizes. Pass the INVERSE of the model
// matrix to get the inverse-transpose normal transform.
//
// Parameters:
//   - inv: inverse model matrix (16 elements, column-major)
//   - v: normal to transform
//
// Returns:
//   - Vec3: the transformed unit normal
func TransformNormal(inv []float32, v Vec3) Vec3 {
	n := Vec3{
		X: inv[0]*v.X + inv[1]*v.Y + inv[2]*v.Z,
		Y: inv[4]*v.X + inv[5]*v.Y + inv[6]*v.Z,
		Z: inv[8]*v.X + inv[9]*v.Y + inv[10]*v.Z,
	}
	return n.Normalize()
}

// ViewFromBasis builds a view matrix from a camera position and its
// orthonormal basis vectors: the rotation rows are right, up and -forward
// (the transpose of the camera's world orientation) and the translation is
// the negated projection of the position onto each basis vector.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: camera position in world space
//   - right, up, forward: the camera's orthonormal basis (forward points at the scene)
func ViewFromBasis(out []float32, pos, right, up, forward Vec3) {
	out[0], out[4], out[8], out[12] = right.X, right.Y, right.Z, -right.Dot(pos)
	out[1], out[5], out[9], out[13] = up.X, up.Y, up.Z, -up.Dot(pos)
	out[2], out[6], out[10], out[14] = -forward.X, -forward.Y, -forward.Z, forward.Dot(pos)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular (determinant ≈ 0) the
// output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically WorldUp)
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center)
	if z.Dot(z) == 0 {
		z = Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Dot(x) == 0 {
		x = WorldRight
	}
	x = x.Normalize()

	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}
