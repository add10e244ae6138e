package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2000, cfg.Particles.Capacity)
	assert.InDelta(t, 100.0, cfg.Particles.EmissionRate, 1e-6)
	assert.InDelta(t, 0.3, cfg.Particles.Spread, 1e-6)
	assert.Equal(t, [3]float32{0, -1, 0}, cfg.Particles.Direction)

	assert.InDelta(t, 3.0, cfg.Trajectory.AccelDuration, 1e-6)
	assert.InDelta(t, 200.0, cfg.Trajectory.MaxHeight, 1e-6)
	assert.InDelta(t, 300.0, cfg.Trajectory.MaxDistance, 1e-6)

	assert.InDelta(t, 20.0, cfg.Camera.MoveSpeed, 1e-6)
	assert.InDelta(t, 0.002, cfg.Camera.Sensitivity, 1e-6)

	assert.Equal(t, [4]float32{0.5, 0.7, 0.9, 1.0}, cfg.Display.ClearColor)
	assert.Equal(t, [3]float32{-0.4, -1.0, -0.3}, cfg.Lighting.SunDirection)
	assert.InDelta(t, 1.0, cfg.Lighting.SunIntensity, 1e-6)
	assert.InDelta(t, 40.0, cfg.Lighting.ExhaustRange, 1e-6)

	require.Len(t, cfg.Scene.LaunchpadPositions, 2)
	assert.Equal(t, [3]float32{75, -1, 20}, cfg.Scene.LaunchpadPositions[0])
	assert.Equal(t, [3]float32{-70, -1, -55}, cfg.Scene.LaunchpadPositions[1])
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigPartialFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	content := `
trajectory:
  accel_duration: 5.0
particles:
  emission_rate: 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, cfg.Trajectory.AccelDuration, 1e-6)
	assert.InDelta(t, 250.0, cfg.Particles.EmissionRate, 1e-6)
	// Untouched sections keep their defaults.
	assert.InDelta(t, 200.0, cfg.Trajectory.MaxHeight, 1e-6)
	assert.Equal(t, 2000, cfg.Particles.Capacity)
	assert.Equal(t, 1280, cfg.Display.Width)
}

func TestLoadConfigFullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	content := `
display:
  width: 1920
  height: 1080
  title: "Test Viewer"
  vsync: false
  msaa: 1
camera:
  move_speed: 35
  start_position: [10, 50, 120]
  ground_offset: [12, 3, 12]
scene:
  launchpad_positions:
    - [1, 2, 3]
  tick_rate: 120
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 1920, cfg.Display.Width)
	assert.Equal(t, 1080, cfg.Display.Height)
	assert.Equal(t, "Test Viewer", cfg.Display.Title)
	assert.False(t, cfg.Display.VSync)
	assert.InDelta(t, 35.0, cfg.Camera.MoveSpeed, 1e-6)
	assert.Equal(t, [3]float32{10, 50, 120}, cfg.Camera.StartPosition)
	assert.Equal(t, [3]float32{12, 3, 12}, cfg.Camera.GroundOffset)
	require.Len(t, cfg.Scene.LaunchpadPositions, 1)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Scene.LaunchpadPositions[0])
	assert.Equal(t, 120, cfg.Scene.TickRate)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [not: a: map"), 0o644))

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestMustLoadConfigPanicsOnMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{{"), 0o644))

	assert.Panics(t, func() { MustLoadConfig(path) })
}

func TestFOVRadians(t *testing.T) {
	c := CameraConfig{FieldOfView: 60}
	assert.InDelta(t, 1.0471975, c.FOVRadians(), 1e-5)
}

func TestTickInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, SceneConfig{TickRate: 60}.TickInterval())
	assert.Equal(t, time.Second/120, SceneConfig{TickRate: 120}.TickInterval())
	// Zero or negative falls back to 60 Hz.
	assert.Equal(t, time.Second/60, SceneConfig{}.TickInterval())
}
