package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMeshVertex is the GPU-aligned representation of a single scene mesh
// vertex. Matches the WGSL VertexInput struct layout of the lit mesh pipeline
// exactly. Size: 40 bytes, tightly packed.
type GPUMeshVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	Color    [4]float32 // offset 24: per-vertex RGBA color (16 bytes)
}

// Size returns the size of the GPUMeshVertex struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (40)
func (g *GPUMeshVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMeshVertex struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUMeshVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalInto(buf)
	return buf
}

// MarshalInto serializes the vertex into the first 40 bytes of dst. Used by
// Data.VertexBytes to build whole vertex streams without per-vertex
// allocations.
//
// Parameters:
//   - dst: destination buffer, at least 40 bytes
func (g *GPUMeshVertex) MarshalInto(dst []byte) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(dst[12+i*4:], math.Float32bits(g.Normal[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(dst[24+i*4:], math.Float32bits(g.Color[i]))
	}
}

// GPUModelUniform is the GPU-aligned per-object uniform for the lit mesh
// pipeline. Matches the WGSL ModelUniform struct layout exactly: the model
// matrix and its inverse-transpose for correct normal transformation under
// non-uniform scale. Size: 128 bytes.
type GPUModelUniform struct {
	Model  [16]float32 // offset  0: model (object to world) matrix (mat4x4<f32>)
	Normal [16]float32 // offset 64: inverse-transpose of the model matrix (mat4x4<f32>)
}

// Size returns the size of the GPUModelUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUModelUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelUniform struct into a byte buffer suitable
// for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUModelUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}
