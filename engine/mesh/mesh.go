// Package mesh provides the CPU-side mesh representation the scene renders:
// parallel position/normal/color arrays plus triangle indices, primitive
// generators for the launch vehicle's parts, and an OBJ/MTL loader for the
// terrain and launchpad props.
package mesh

import (
	"github.com/Carmen-Shannon/ignition/common"
	"github.com/chewxy/math32"
)

// DefaultColor is the vertex color applied when a mesh carries no material
// color and none has been baked in.
var DefaultColor = [4]float32{0.8, 0.8, 0.8, 1.0}

// Data holds one mesh's geometry. Positions and Normals always run parallel;
// Texcoords (u,v pairs) and Colors are optional and, when present, also run
// parallel to Positions. Indices address triangles into the vertex arrays.
type Data struct {
	Positions []common.Vec3
	Normals   []common.Vec3
	Texcoords []float32
	Colors    [][4]float32
	Indices   []uint32

	// TexturePath is the diffuse texture referenced by the mesh's MTL file,
	// resolved relative to the OBJ's directory. Empty when none.
	TexturePath string

	// MaterialColor is the Kd diffuse color from the MTL file.
	// HasMaterialColor reports whether one was present.
	MaterialColor    [3]float32
	HasMaterialColor bool
}

// VertexCount returns the number of vertices in the mesh.
//
// Returns:
//   - int: the vertex count
func (d *Data) VertexCount() int {
	return len(d.Positions)
}

// TriangleCount returns the number of triangles in the mesh.
//
// Returns:
//   - int: the triangle count
func (d *Data) TriangleCount() int {
	return len(d.Indices) / 3
}

// SetColor bakes a single RGBA color into every vertex, replacing any
// existing per-vertex colors.
//
// Parameters:
//   - r, g, b, a: the color components
func (d *Data) SetColor(r, g, b, a float32) {
	if len(d.Colors) != len(d.Positions) {
		d.Colors = make([][4]float32, len(d.Positions))
	}
	for i := range d.Colors {
		d.Colors[i] = [4]float32{r, g, b, a}
	}
}

// Transform bakes a 4x4 column-major matrix into the mesh: positions are
// transformed as points, normals by the inverse-transpose and renormalized.
// Used to pose vehicle parts before combining them into one mesh.
//
// Parameters:
//   - m: the transform matrix (16 elements, column-major)
func (d *Data) Transform(m []float32) {
	for i, p := range d.Positions {
		d.Positions[i] = common.TransformPoint(m, p)
	}

	var inv [16]float32
	if !common.Invert4(inv[:], m) {
		return
	}
	for i, n := range d.Normals {
		d.Normals[i] = common.TransformNormal(inv[:], n)
	}
}

// Combine appends another mesh's geometry to this one, offsetting the
// source's indices past the existing vertices. Per-vertex colors are carried
// over; a source without colors contributes DefaultColor entries when the
// target has colors (and vice versa) so the arrays stay parallel.
//
// Parameters:
//   - src: the mesh to append
func (d *Data) Combine(src *Data) {
	offset := uint32(len(d.Positions))

	if len(d.Colors) > 0 || len(src.Colors) > 0 {
		d.Colors = paddedColors(d.Colors, len(d.Positions))
		d.Colors = append(d.Colors, paddedColors(src.Colors, len(src.Positions))...)
	}

	d.Positions = append(d.Positions, src.Positions...)
	d.Normals = append(d.Normals, src.Normals...)
	if len(src.Texcoords) > 0 {
		d.Texcoords = append(d.Texcoords, src.Texcoords...)
	}
	for _, idx := range src.Indices {
		d.Indices = append(d.Indices, idx+offset)
	}
}

// Bounds returns the axis-aligned bounding box of the mesh.
//
// Returns:
//   - common.Vec3: the minimum corner
//   - common.Vec3: the maximum corner
func (d *Data) Bounds() (common.Vec3, common.Vec3) {
	if len(d.Positions) == 0 {
		return common.Vec3{}, common.Vec3{}
	}
	min, max := d.Positions[0], d.Positions[0]
	for _, p := range d.Positions[1:] {
		min.X = math32.Min(min.X, p.X)
		min.Y = math32.Min(min.Y, p.Y)
		min.Z = math32.Min(min.Z, p.Z)
		max.X = math32.Max(max.X, p.X)
		max.Y = math32.Max(max.Y, p.Y)
		max.Z = math32.Max(max.Z, p.Z)
	}
	return min, max
}

// BoundingSphere returns a sphere enclosing the mesh, centered on the AABB
// center. The scene feeds this to frustum culling.
//
// Returns:
//   - common.Vec3: the sphere center in model space
//   - float32: the sphere radius
func (d *Data) BoundingSphere() (common.Vec3, float32) {
	min, max := d.Bounds()
	center := min.Add(max).Scale(0.5)
	return center, max.Sub(center).Length()
}

// VertexBytes builds the interleaved GPU vertex stream for the lit mesh
// pipeline (position, normal, color per vertex, 40 bytes each). Vertices
// without a baked color fall back to the MTL diffuse color, then to
// DefaultColor.
//
// Returns:
//   - []byte: the vertex buffer contents
func (d *Data) VertexBytes() []byte {
	fallback := DefaultColor
	if d.HasMaterialColor {
		fallback = [4]float32{d.MaterialColor[0], d.MaterialColor[1], d.MaterialColor[2], 1.0}
	}

	var v GPUMeshVertex
	stride := v.Size()
	buf := make([]byte, stride*len(d.Positions))
	for i, p := range d.Positions {
		v.Position = p.Array()
		if i < len(d.Normals) {
			v.Normal = d.Normals[i].Array()
		} else {
			v.Normal = [3]float32{0, 1, 0}
		}
		if i < len(d.Colors) {
			v.Color = d.Colors[i]
		} else {
			v.Color = fallback
		}
		v.MarshalInto(buf[i*stride:])
	}
	return buf
}

// IndexBytes returns the mesh indices as a little-endian uint32 stream for
// the GPU index buffer.
//
// Returns:
//   - []byte: the index buffer contents
func (d *Data) IndexBytes() []byte {
	return common.SliceToBytes(d.Indices)
}

func paddedColors(colors [][4]float32, count int) [][4]float32 {
	for len(colors) < count {
		colors = append(colors, DefaultColor)
	}
	return colors
}
