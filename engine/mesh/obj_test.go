package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/ignition/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const objFixture = `# unit right triangle plus a quad
mtllib props.mtl
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJTriangleAndQuad(t *testing.T) {
	d, mtlLibs, err := ParseOBJ(strings.NewReader(objFixture))
	require.NoError(t, err)

	assert.Equal(t, []string{"props.mtl"}, mtlLibs)
	// Four distinct face-vertex triplets; repeats deduplicate.
	assert.Equal(t, 4, d.VertexCount())
	// One triangle plus a fan-triangulated quad.
	assert.Equal(t, 3, d.TriangleCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 1, 2, 0, 2, 3}, d.Indices)

	assert.Equal(t, common.Vec3{X: 1, Y: 1, Z: 0}, d.Positions[2])
	assert.Equal(t, common.Vec3{Z: 1}, d.Normals[0])
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 1}, d.Texcoords)
}

func TestParseOBJIndexForms(t *testing.T) {
	fixture := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 1 0
vt 0.5 0.5
f 1 2//1 3/1/1
`
	d, _, err := ParseOBJ(strings.NewReader(fixture))
	require.NoError(t, err)
	require.Equal(t, 3, d.VertexCount())

	// Position-only vertex gets the default up normal and zero texcoords.
	assert.Equal(t, common.Vec3{Y: 1}, d.Normals[0])
	assert.Equal(t, []float32{0, 0}, d.Texcoords[0:2])
	// v//vn carries the normal but not a texcoord.
	assert.Equal(t, common.Vec3{Y: 1}, d.Normals[1])
	// v/vt/vn carries both.
	assert.Equal(t, []float32{0.5, 0.5}, d.Texcoords[4:6])
}

func TestParseOBJNegativeIndices(t *testing.T) {
	fixture := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	d, _, err := ParseOBJ(strings.NewReader(fixture))
	require.NoError(t, err)
	assert.Equal(t, 3, d.VertexCount())
	assert.Equal(t, common.Vec3{X: 0, Y: 1, Z: 0}, d.Positions[2])
}

func TestParseOBJSkipsOutOfRangeVertices(t *testing.T) {
	fixture := `
v 0 0 0
v 1 0 0
f 1 2 9
`
	d, _, err := ParseOBJ(strings.NewReader(fixture))
	require.NoError(t, err)
	// The face collapses below three vertices and emits no triangle.
	assert.Equal(t, 2, d.VertexCount())
	assert.Zero(t, d.TriangleCount())
}

func TestParseOBJMalformedVertex(t *testing.T) {
	_, _, err := ParseOBJ(strings.NewReader("v 1 nope 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseMTL(t *testing.T) {
	fixture := `
newmtl pad
Ka 0.1 0.1 0.1
Kd 0.6 0.6 0.65
map_Kd pad_diffuse.png
`
	info, err := ParseMTL(strings.NewReader(fixture))
	require.NoError(t, err)
	assert.True(t, info.HasDiffuse)
	assert.Equal(t, [3]float32{0.6, 0.6, 0.65}, info.Diffuse)
	assert.Equal(t, "pad_diffuse.png", info.TexturePath)
}

func TestParseMTLWithoutDiffuse(t *testing.T) {
	info, err := ParseMTL(strings.NewReader("newmtl bare\nKa 1 1 1\n"))
	require.NoError(t, err)
	assert.False(t, info.HasDiffuse)
	assert.Empty(t, info.TexturePath)
}

func TestLoaderResolvesMTLRelativeToOBJ(t *testing.T) {
	dir := t.TempDir()
	obj := `mtllib pad.mtl
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	mtl := "Kd 0.2 0.3 0.4\nmap_Kd tex.png\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pad.obj"), []byte(obj), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pad.mtl"), []byte(mtl), 0o644))

	l := NewLoader(WithWorkers(1))
	d, err := l.Load(filepath.Join(dir, "pad.obj"))
	require.NoError(t, err)

	assert.True(t, d.HasMaterialColor)
	assert.Equal(t, [3]float32{0.2, 0.3, 0.4}, d.MaterialColor)
	assert.Equal(t, filepath.Join(dir, "tex.png"), d.TexturePath)

	// Second load returns the cached mesh.
	again, err := l.Load(filepath.Join(dir, "pad.obj"))
	require.NoError(t, err)
	assert.Same(t, d, again)
}

func TestLoaderMissingMTLIsIgnored(t *testing.T) {
	dir := t.TempDir()
	obj := "mtllib missing.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prop.obj"), []byte(obj), 0o644))

	l := NewLoader(WithWorkers(1))
	d, err := l.Load(filepath.Join(dir, "prop.obj"))
	require.NoError(t, err)
	assert.False(t, d.HasMaterialColor)
}

func TestLoadOrFallback(t *testing.T) {
	l := NewLoader(WithWorkers(1))
	d := l.LoadOrFallback(filepath.Join(t.TempDir(), "nope.obj"), func() *Data {
		return Quad(100, 100)
	})
	require.NotNil(t, d)
	assert.Equal(t, 4, d.VertexCount())
}

func TestBuildAllRunsJobsAndCaches(t *testing.T) {
	l := NewLoader(WithWorkers(2))

	built, err := l.BuildAll(
		Job{Name: "body", Build: func() (*Data, error) { return Cylinder(0.8, 8, 16), nil }},
		Job{Name: "nose", Build: func() (*Data, error) { return Cone(0.6, 3, 16), nil }},
	)
	require.NoError(t, err)
	require.Len(t, built, 2)
	assert.NotNil(t, l.Get("body"))
	assert.NotNil(t, l.Get("nose"))

	// A cached name is not rebuilt.
	calls := 0
	built, err = l.BuildAll(Job{Name: "body", Build: func() (*Data, error) {
		calls++
		return nil, nil
	}})
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Same(t, l.Get("body"), built["body"])
}

func TestBuildAllSurfacesJobError(t *testing.T) {
	l := NewLoader(WithWorkers(2))
	built, err := l.BuildAll(
		Job{Name: "ok", Build: func() (*Data, error) { return Quad(1, 1), nil }},
		Job{Name: "bad", Build: func() (*Data, error) { return nil, os.ErrNotExist }},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `mesh job "bad"`)
	assert.NotNil(t, built["ok"], "successful jobs still cache")
	assert.Nil(t, l.Get("bad"))
}

func TestWithMeshPrePopulatesCache(t *testing.T) {
	ground := Quad(10, 10)
	l := NewLoader(WithMesh("ground", ground))
	assert.Same(t, ground, l.Get("ground"))
	assert.Contains(t, l.Meshes(), "ground")
}
