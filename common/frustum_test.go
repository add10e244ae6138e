package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

// buildViewProj assembles projection * view for a camera at eye looking at target.
func buildViewProj(eye, target Vec3) []float32 {
	view := make([]float32, 16)
	LookAt(view, eye, target, WorldUp)
	proj := make([]float32, 16)
	Perspective(proj, math32.Pi/3, 16.0/9.0, 0.1, 500)
	out := make([]float32, 16)
	Mul4(out, proj, view)
	return out
}

func TestFrustumContainsPointAhead(t *testing.T) {
	f := ExtractFrustumFromMatrix(buildViewProj(Vec3{0, 0, 0}, Vec3{0, 0, -1}))

	assert.True(t, f.ContainsSphere(Vec3{0, 0, -10}, 1))
	assert.True(t, f.ContainsSphere(Vec3{0, 0, -499}, 5))
}

func TestFrustumRejectsBehindCamera(t *testing.T) {
	f := ExtractFrustumFromMatrix(buildViewProj(Vec3{0, 0, 0}, Vec3{0, 0, -1}))

	assert.False(t, f.ContainsSphere(Vec3{0, 0, 50}, 1))
	assert.False(t, f.ContainsSphere(Vec3{0, 0, -1000}, 1))
}

func TestFrustumKeepsPartiallyVisibleSphere(t *testing.T) {
	f := ExtractFrustumFromMatrix(buildViewProj(Vec3{0, 0, 0}, Vec3{0, 0, -1}))

	// Center is behind the near plane but the radius pokes through.
	assert.True(t, f.ContainsSphere(Vec3{0, 0, 2}, 30))
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := ExtractFrustumFromMatrix(buildViewProj(Vec3{10, 20, 30}, Vec3{0, 0, 0}))
	for i, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Length(), 1e-4, "plane %d", i)
	}
}
