package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetColorFillsEveryVertex(t *testing.T) {
	d := Box(common.Vec3{X: 1, Y: 1, Z: 1})
	d.SetColor(0.9, 0.3, 0.2, 1)

	require.Len(t, d.Colors, d.VertexCount())
	for _, c := range d.Colors {
		assert.Equal(t, [4]float32{0.9, 0.3, 0.2, 1}, c)
	}
}

func TestTransformBakesTranslation(t *testing.T) {
	d := Box(common.Vec3{X: 1, Y: 1, Z: 1})
	before := append([]common.Vec3(nil), d.Normals...)

	var m [16]float32
	common.Translation(m[:], common.Vec3{X: 10, Y: 2, Z: -5})
	d.Transform(m[:])

	min, max := d.Bounds()
	assert.InDelta(t, 9.0, float64(min.X), 1e-5)
	assert.InDelta(t, 11.0, float64(max.X), 1e-5)
	assert.InDelta(t, 1.0, float64(min.Y), 1e-5)
	assert.InDelta(t, 3.0, float64(max.Y), 1e-5)

	// Pure translation must leave normals untouched.
	for i := range before {
		assert.InDelta(t, float64(before[i].X), float64(d.Normals[i].X), 1e-5)
		assert.InDelta(t, float64(before[i].Y), float64(d.Normals[i].Y), 1e-5)
		assert.InDelta(t, float64(before[i].Z), float64(d.Normals[i].Z), 1e-5)
	}
}

func TestTransformKeepsNormalsUnit(t *testing.T) {
	d := Sphere(1, 8)

	// Non-uniform scale: normals must be renormalized via inverse-transpose.
	m := [16]float32{
		3, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	d.Transform(m[:])

	for _, n := range d.Normals {
		assert.InDelta(t, 1.0, float64(n.Length()), 1e-4)
	}
}

func TestCombineOffsetsIndices(t *testing.T) {
	a := Quad(2, 2)
	b := Quad(4, 4)
	aVerts := a.VertexCount()
	aIdx := len(a.Indices)

	a.Combine(b)

	assert.Equal(t, aVerts+b.VertexCount(), a.VertexCount())
	require.Len(t, a.Indices, aIdx+len(b.Indices))
	for _, idx := range a.Indices[aIdx:] {
		assert.GreaterOrEqual(t, idx, uint32(aVerts))
	}
}

func TestCombinePadsMissingColors(t *testing.T) {
	a := Quad(2, 2)
	b := Quad(2, 2)
	b.SetColor(1, 0, 0, 1)

	a.Combine(b)

	require.Len(t, a.Colors, a.VertexCount())
	assert.Equal(t, DefaultColor, a.Colors[0], "uncolored target pads with the default")
	assert.Equal(t, [4]float32{1, 0, 0, 1}, a.Colors[4])
}

func TestBoundingSphereEnclosesMesh(t *testing.T) {
	d := Box(common.Vec3{X: 2, Y: 1, Z: 1})
	center, radius := d.BoundingSphere()

	assert.InDelta(t, 0.0, float64(center.X), 1e-5)
	for _, p := range d.Positions {
		assert.LessOrEqual(t, float64(p.Sub(center).Length()), float64(radius)+1e-4)
	}
}

func TestGPUMeshVertexSizeMatchesPipelineStride(t *testing.T) {
	var v GPUMeshVertex
	assert.Equal(t, 40, v.Size())

	var u GPUModelUniform
	assert.Equal(t, 128, u.Size())
}

func TestVertexBytesInterleavesStream(t *testing.T) {
	d := Quad(2, 2)
	d.SetColor(0, 1, 0, 1)

	buf := d.VertexBytes()
	require.Len(t, buf, 40*d.VertexCount())

	var v GPUMeshVertex
	v.Position = d.Positions[1].Array()
	v.Normal = d.Normals[1].Array()
	v.Color = d.Colors[1]
	assert.Equal(t, v.Marshal(), buf[40:80])
}

func TestVertexBytesFallsBackToMaterialColor(t *testing.T) {
	d := Quad(1, 1)
	d.MaterialColor = [3]float32{0.2, 0.4, 0.6}
	d.HasMaterialColor = true

	buf := d.VertexBytes()
	var v GPUMeshVertex
	v.Position = d.Positions[0].Array()
	v.Normal = d.Normals[0].Array()
	v.Color = [4]float32{0.2, 0.4, 0.6, 1}
	assert.Equal(t, v.Marshal(), buf[:40])
}

func TestIndexBytesLittleEndian(t *testing.T) {
	d := &Data{Indices: []uint32{1, 0x01020304}}
	buf := d.IndexBytes()
	require.Len(t, buf, 8)
	assert.Equal(t, []byte{1, 0, 0, 0, 4, 3, 2, 1}, buf)
}
