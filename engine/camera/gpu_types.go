package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the GPU-aligned per-viewport camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly. The right and up
// axes feed particle billboarding; the position feeds specular lighting.
// Size: 112 bytes (WGSL aligned, vec3 members padded to 16).
type GPUCameraUniform struct {
	ViewProj       [16]float32 // offset   0: combined view-projection matrix (mat4x4<f32>)
	CameraRight    [3]float32  // offset  64: view-space right axis in world space (vec3<f32>)
	_pad0          float32     // offset  76
	CameraUp       [3]float32  // offset  80: view-space up axis in world space (vec3<f32>)
	_pad1          float32     // offset  92
	CameraPosition [3]float32  // offset  96: world-space camera position (vec3<f32>)
	_pad2          float32     // offset 108: padding to 112 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable
// for GPU upload. Padding bytes are left zeroed.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.CameraRight[i]))
		binary.LittleEndian.PutUint32(buf[80+i*4:], math.Float32bits(g.CameraUp[i]))
		binary.LittleEndian.PutUint32(buf[96+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	return buf
}
