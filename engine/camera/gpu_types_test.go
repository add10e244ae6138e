package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPUCameraUniformLayout(t *testing.T) {
	u := GPUCameraUniform{
		CameraRight:    [3]float32{1, 0, 0},
		CameraUp:       [3]float32{0, 1, 0},
		CameraPosition: [3]float32{10, 20, 30},
	}
	u.ViewProj[0] = 1.5
	u.ViewProj[15] = -2.0

	assert.Equal(t, 112, u.Size())

	buf := u.Marshal()
	assert.Len(t, buf, 112)

	read := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
	}
	assert.Equal(t, float32(1.5), read(0))
	assert.Equal(t, float32(-2.0), read(60))
	assert.Equal(t, float32(1), read(64))
	assert.Equal(t, float32(1), read(84))
	assert.Equal(t, float32(10), read(96))
	assert.Equal(t, float32(30), read(104))

	// Padding after each vec3 stays zeroed.
	for _, offset := range []int{76, 92, 108} {
		assert.Equal(t, float32(0), read(offset))
	}
}
