package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightUniform is the GPU-aligned lighting uniform buffer shared by every
// lit draw call in a frame. Matches the WGSL LightUniform struct layout
// exactly: the directional sun, the ambient term, the exhaust point light and
// the Blinn-Phong specular parameters. Size: 96 bytes (WGSL aligned, vec3
// members padded to 16).
type GPULightUniform struct {
	Direction        [3]float32 // offset  0: normalized sun direction (vec3<f32>)
	_pad0            float32    // offset 12
	Color            [3]float32 // offset 16: sun RGB color (vec3<f32>)
	Intensity        float32    // offset 28: sun intensity multiplier
	Ambient          [3]float32 // offset 32: constant ambient RGB (vec3<f32>)
	_pad1            float32    // offset 44
	ExhaustPosition  [3]float32 // offset 48: world-space exhaust light position (vec3<f32>)
	ExhaustIntensity float32    // offset 60: exhaust intensity, 0 while thrust is inactive
	ExhaustColor     [3]float32 // offset 64: exhaust RGB color (vec3<f32>)
	ExhaustRange     float32    // offset 76: exhaust falloff radius in world units
	SpecularStrength float32    // offset 80: Blinn-Phong specular multiplier
	Shininess        float32    // offset 84: Blinn-Phong specular exponent
	_pad2            [2]float32 // offset 88: padding to 96 bytes
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable
// for GPU upload. Padding bytes are left zeroed.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Direction[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(g.Ambient[i]))
		binary.LittleEndian.PutUint32(buf[48+i*4:], math.Float32bits(g.ExhaustPosition[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.ExhaustColor[i]))
	}
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[60:], math.Float32bits(g.ExhaustIntensity))
	binary.LittleEndian.PutUint32(buf[76:], math.Float32bits(g.ExhaustRange))
	binary.LittleEndian.PutUint32(buf[80:], math.Float32bits(g.SpecularStrength))
	binary.LittleEndian.PutUint32(buf[84:], math.Float32bits(g.Shininess))
	return buf
}
