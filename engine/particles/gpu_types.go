package particles

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUParticleVertex is the GPU-aligned representation of a single particle
// for the billboard pipeline. One vertex per particle; the vertex shader
// expands it to a camera-facing quad.
// Size: 32 bytes (std430 aligned, no padding required).
type GPUParticleVertex struct {
	Position [3]float32 // offset  0: particle center in world space (12 bytes)
	Size     float32    // offset 12: billboard edge length in world units (4 bytes)
	Color    [4]float32 // offset 16: RGBA tint, alpha carries the lifetime fade (16 bytes)
}

// Size returns the size of the GPUParticleVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUParticleVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParticleVertex struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUParticleVertex) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Size))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Color[3]))
	return buf
}
