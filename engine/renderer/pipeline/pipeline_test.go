package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/ignition/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaultsToOpaqueDepthTested(t *testing.T) {
	p := NewPipeline("scene_mesh")

	assert.Equal(t, "scene_mesh", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Nil(t, p.Pipeline(), "GPU pipeline is nil until registered")
}

func TestNewPipelineTransparentConfiguration(t *testing.T) {
	// The particle pipeline blends but must not write depth so smoke does not
	// occlude itself.
	p := NewPipeline("particles",
		WithBlendEnabled(true),
		WithDepthWriteEnabled(false),
	)

	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.DepthTestEnabled())
}

func TestPipelineShaderLookupByStage(t *testing.T) {
	vs, fs := shader.MeshShaders()
	p := NewPipeline("scene_mesh",
		WithVertexShader(vs),
		WithFragmentShader(fs),
	)

	assert.Equal(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Equal(t, fs, p.Shader(shader.ShaderTypeFragment))
}
