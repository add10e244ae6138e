package ui

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUUIVertex is the GPU-aligned representation of one overlay vertex.
// Positions are window pixels with a top-left origin; the vertex shader maps
// them to clip space against the screen uniform. A negative u coordinate
// marks an untextured quad, which the fragment shader fills with the vertex
// color instead of sampling the atlas.
// Size: 32 bytes (std430 aligned, no padding required).
type GPUUIVertex struct {
	Position [2]float32 // offset  0: pixel position, top-left origin (8 bytes)
	UV       [2]float32 // offset  8: atlas coordinates, or (-1,-1) for solid fills (8 bytes)
	Color    [4]float32 // offset 16: RGBA tint (16 bytes)
}

// Size returns the size of the GPUUIVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUUIVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUUIVertex struct into a byte buffer suitable for
// GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUUIVertex) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.UV[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Color[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Color[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Color[2]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.Color[3]))
	return buf
}

// GPUScreenUniform is the GPU-aligned viewport uniform for the overlay
// pipeline. Holding the surface size on the GPU keeps the vertex stream in
// stable pixel coordinates across resizes.
// Size: 16 bytes (std140 aligned).
type GPUScreenUniform struct {
	Size  [2]float32 // offset  0: viewport size in pixels (8 bytes)
	_pad0 [2]float32 // offset  8: padding to 16 bytes
}

// Size returns the size of the GPUScreenUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUScreenUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUScreenUniform struct into a byte buffer suitable
// for GPU upload. Padding bytes are left zeroed.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUScreenUniform) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Size[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Size[1]))
	return buf
}
