package shader

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed wgsl/scene_mesh.wgsl
var sceneMeshWGSL string

//go:embed wgsl/particles.wgsl
var particlesWGSL string

//go:embed wgsl/ui_overlay.wgsl
var uiOverlayWGSL string

// Uniform buffer sizes in bytes. These must match both the WGSL struct
// layouts in wgsl/ and the Marshal output of the corresponding GPU types
// (camera.GPUCameraUniform, light.GPULightUniform, mesh.GPUModelUniform,
// ui.GPUScreenUniform).
const (
	cameraUniformSize uint64 = 112
	lightUniformSize  uint64 = 96
	modelUniformSize  uint64 = 128
	screenUniformSize uint64 = 16
)

// MeshShaders returns the vertex and fragment shader pair for the lit scene
// mesh pipeline. Bind groups: 0 = camera, 1 = light, 2 = per-object model.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
func MeshShaders() (Shader, Shader) {
	vertex := NewShader("scene_mesh_vs", ShaderTypeVertex, sceneMeshWGSL,
		WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "Camera Uniform Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(0, wgpu.ShaderStageVertex, cameraUniformSize),
			},
		}),
		WithBindGroupLayout(2, wgpu.BindGroupLayoutDescriptor{
			Label: "Model Uniform Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(0, wgpu.ShaderStageVertex, modelUniformSize),
			},
		}),
		WithVertexLayouts(wgpu.VertexBufferLayout{
			ArrayStride: 40,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2},
			},
		}),
	)
	fragment := NewShader("scene_mesh_fs", ShaderTypeFragment, sceneMeshWGSL,
		WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "Camera Uniform Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(0, wgpu.ShaderStageFragment, cameraUniformSize),
			},
		}),
		WithBindGroupLayout(1, wgpu.BindGroupLayoutDescriptor{
			Label: "Light Uniform Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(0, wgpu.ShaderStageFragment, lightUniformSize),
			},
		}),
	)
	return vertex, fragment
}

// ParticleShaders returns the vertex and fragment shader pair for the
// billboard particle pipeline. Slot 0 carries the shared quad corners, slot 1
// the per-instance particle data.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
func ParticleShaders() (Shader, Shader) {
	vertex := NewShader("particles_vs", ShaderTypeVertex, particlesWGSL,
		WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "Camera Uniform Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				// Visibility must match the mesh pipeline's merged camera
				// layout so one camera bind group serves both pipelines.
				uniformEntry(0, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, cameraUniformSize),
			},
		}),
		WithVertexLayouts(
			wgpu.VertexBufferLayout{
				ArrayStride: 8,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				},
			},
			wgpu.VertexBufferLayout{
				ArrayStride: 32,
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32, Offset: 12, ShaderLocation: 2},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
				},
			},
		),
	)
	fragment := NewShader("particles_fs", ShaderTypeFragment, particlesWGSL)
	return vertex, fragment
}

// UIShaders returns the vertex and fragment shader pair for the screen-space
// overlay pipeline. Group 0 holds the viewport size uniform, the font atlas
// texture and its sampler.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
func UIShaders() (Shader, Shader) {
	vertex := NewShader("ui_overlay_vs", ShaderTypeVertex, uiOverlayWGSL,
		WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "Screen Uniform Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				uniformEntry(0, wgpu.ShaderStageVertex, screenUniformSize),
			},
		}),
		WithVertexLayouts(wgpu.VertexBufferLayout{
			ArrayStride: 32,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
			},
		}),
	)
	fragment := NewShader("ui_overlay_fs", ShaderTypeFragment, uiOverlayWGSL,
		WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "UI Overlay Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    2,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		}),
	)
	return vertex, fragment
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}
