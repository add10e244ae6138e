package mesh

import (
	"github.com/Carmen-Shannon/ignition/common"
	"github.com/chewxy/math32"
)

// DefaultSegments is the circumference tessellation used by the vehicle's
// curved parts when callers pass a non-positive segment count.
const DefaultSegments = 16

// Box generates a cuboid centered on the origin with the given half-extents.
// Each face carries its own four vertices so normals stay flat.
//
// Parameters:
//   - halfExtents: half the box dimensions along x, y, z
//
// Returns:
//   - *Data: the generated mesh (24 vertices, 12 triangles)
func Box(halfExtents common.Vec3) *Data {
	corners := [8]common.Vec3{
		{X: -halfExtents.X, Y: -halfExtents.Y, Z: -halfExtents.Z},
		{X: halfExtents.X, Y: -halfExtents.Y, Z: -halfExtents.Z},
		{X: halfExtents.X, Y: halfExtents.Y, Z: -halfExtents.Z},
		{X: -halfExtents.X, Y: halfExtents.Y, Z: -halfExtents.Z},
		{X: -halfExtents.X, Y: -halfExtents.Y, Z: halfExtents.Z},
		{X: halfExtents.X, Y: -halfExtents.Y, Z: halfExtents.Z},
		{X: halfExtents.X, Y: halfExtents.Y, Z: halfExtents.Z},
		{X: -halfExtents.X, Y: halfExtents.Y, Z: halfExtents.Z},
	}

	faces := [6][4]uint32{
		{0, 1, 2, 3}, // back
		{5, 4, 7, 6}, // front
		{4, 0, 3, 7}, // left
		{1, 5, 6, 2}, // right
		{4, 5, 1, 0}, // bottom
		{3, 2, 6, 7}, // top
	}
	normals := [6]common.Vec3{
		{Z: -1},
		{Z: 1},
		{X: -1},
		{X: 1},
		{Y: -1},
		{Y: 1},
	}

	d := &Data{}
	var base uint32
	for face := range faces {
		for _, corner := range faces[face] {
			d.Positions = append(d.Positions, corners[corner])
			d.Normals = append(d.Normals, normals[face])
		}
		d.Indices = append(d.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
		base += 4
	}
	return d
}

// Cylinder generates a cylinder centered on the origin with its axis along Y,
// spanning -height/2 to +height/2. Side quads carry mid-segment face normals;
// the caps carry axial normals.
//
// Parameters:
//   - radius: the cylinder radius
//   - height: the cylinder height
//   - segments: circumference subdivisions, DefaultSegments when <= 0
//
// Returns:
//   - *Data: the generated mesh
func Cylinder(radius, height float32, segments int) *Data {
	if segments <= 0 {
		segments = DefaultSegments
	}
	halfHeight := height * 0.5

	top := make([]common.Vec3, segments+1)
	bottom := make([]common.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		x := math32.Cos(angle) * radius
		z := math32.Sin(angle) * radius
		top[i] = common.Vec3{X: x, Y: halfHeight, Z: z}
		bottom[i] = common.Vec3{X: x, Y: -halfHeight, Z: z}
	}

	d := &Data{}
	var base uint32

	// Side quads.
	for i := 0; i < segments; i++ {
		next := (i + 1) % (segments + 1)
		d.Positions = append(d.Positions, bottom[i], bottom[next], top[next], top[i])

		angle := 2 * math32.Pi * (float32(i) + 0.5) / float32(segments)
		normal := common.Vec3{X: math32.Cos(angle), Z: math32.Sin(angle)}.Normalize()
		d.Normals = append(d.Normals, normal, normal, normal, normal)

		d.Indices = append(d.Indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
		base += 4
	}

	// Top cap fan.
	topCenter := base
	d.Positions = append(d.Positions, common.Vec3{Y: halfHeight})
	d.Normals = append(d.Normals, common.Vec3{Y: 1})
	base++
	for i := 0; i < segments; i++ {
		next := (i + 1) % (segments + 1)
		d.Positions = append(d.Positions, top[i], top[next])
		d.Normals = append(d.Normals, common.Vec3{Y: 1}, common.Vec3{Y: 1})
		d.Indices = append(d.Indices, topCenter, base, base+1)
		base += 2
	}

	// Bottom cap fan, wound to face down.
	bottomCenter := base
	d.Positions = append(d.Positions, common.Vec3{Y: -halfHeight})
	d.Normals = append(d.Normals, common.Vec3{Y: -1})
	base++
	for i := 0; i < segments; i++ {
		next := (i + 1) % (segments + 1)
		d.Positions = append(d.Positions, bottom[next], bottom[i])
		d.Normals = append(d.Normals, common.Vec3{Y: -1}, common.Vec3{Y: -1})
		d.Indices = append(d.Indices, bottomCenter, base, base+1)
		base += 2
	}

	return d
}

// Sphere generates a latitude/longitude sphere centered on the origin.
//
// Parameters:
//   - radius: the sphere radius
//   - segments: latitude and longitude subdivisions, DefaultSegments when <= 0
//
// Returns:
//   - *Data: the generated mesh
func Sphere(radius float32, segments int) *Data {
	if segments <= 0 {
		segments = DefaultSegments
	}

	d := &Data{}
	for lat := 0; lat <= segments; lat++ {
		theta := math32.Pi * float32(lat) / float32(segments)
		sinTheta := math32.Sin(theta)
		cosTheta := math32.Cos(theta)

		for lon := 0; lon <= segments; lon++ {
			phi := 2 * math32.Pi * float32(lon) / float32(segments)
			pos := common.Vec3{
				X: radius * sinTheta * math32.Cos(phi),
				Y: radius * cosTheta,
				Z: radius * sinTheta * math32.Sin(phi),
			}
			d.Positions = append(d.Positions, pos)
			d.Normals = append(d.Normals, pos.Normalize())
		}
	}

	for lat := 0; lat < segments; lat++ {
		for lon := 0; lon < segments; lon++ {
			current := uint32(lat*(segments+1) + lon)
			next := current + uint32(segments) + 1
			d.Indices = append(d.Indices,
				current, next, next+1,
				current, next+1, current+1,
			)
		}
	}

	return d
}

// Cone generates a cone centered on the origin with its apex at +height/2 and
// base at -height/2. Side triangles carry flat face normals.
//
// Parameters:
//   - radius: the base radius
//   - height: the cone height
//   - segments: base subdivisions, DefaultSegments when <= 0
//
// Returns:
//   - *Data: the generated mesh
func Cone(radius, height float32, segments int) *Data {
	if segments <= 0 {
		segments = DefaultSegments
	}
	halfHeight := height * 0.5

	ring := make([]common.Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		angle := 2 * math32.Pi * float32(i) / float32(segments)
		ring[i] = common.Vec3{
			X: math32.Cos(angle) * radius,
			Y: -halfHeight,
			Z: math32.Sin(angle) * radius,
		}
	}

	d := &Data{}
	apex := common.Vec3{Y: halfHeight}
	d.Positions = append(d.Positions, apex)
	d.Normals = append(d.Normals, common.Vec3{Y: 1})
	base := uint32(1)

	// Side triangles fan out from the shared apex vertex.
	for i := 0; i < segments; i++ {
		next := (i + 1) % (segments + 1)
		d.Positions = append(d.Positions, ring[i], ring[next])

		// Slant x ring tangent points outward and up, the lateral surface normal.
		edge1 := ring[next].Sub(ring[i])
		edge2 := apex.Sub(ring[i])
		normal := edge2.Cross(edge1).Normalize()
		d.Normals = append(d.Normals, normal, normal)

		d.Indices = append(d.Indices, 0, base, base+1)
		base += 2
	}

	// Base cap fan, wound to face down.
	baseCenter := base
	d.Positions = append(d.Positions, common.Vec3{Y: -halfHeight})
	d.Normals = append(d.Normals, common.Vec3{Y: -1})
	base++
	for i := 0; i < segments; i++ {
		next := (i + 1) % (segments + 1)
		d.Positions = append(d.Positions, ring[next], ring[i])
		d.Normals = append(d.Normals, common.Vec3{Y: -1}, common.Vec3{Y: -1})
		d.Indices = append(d.Indices, baseCenter, base, base+1)
		base += 2
	}

	return d
}

// Quad generates a flat rectangle in the XZ plane at y = 0, centered on the
// origin and facing +Y, with texcoords spanning the full 0..1 range. The
// scene uses it as the ground-plane fallback when a terrain mesh is missing.
//
// Parameters:
//   - width: extent along X
//   - depth: extent along Z
//
// Returns:
//   - *Data: the generated mesh (4 vertices, 2 triangles)
func Quad(width, depth float32) *Data {
	hw, hd := width*0.5, depth*0.5
	return &Data{
		Positions: []common.Vec3{
			{X: -hw, Z: -hd},
			{X: hw, Z: -hd},
			{X: hw, Z: hd},
			{X: -hw, Z: hd},
		},
		Normals: []common.Vec3{
			{Y: 1}, {Y: 1}, {Y: 1}, {Y: 1},
		},
		Texcoords: []float32{
			0, 0,
			1, 0,
			1, 1,
			0, 1,
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
}
