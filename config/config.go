// Package config loads the viewer configuration from a YAML file and
// provides the built-in defaults used when no file is present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable the viewer reads at startup.
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Camera     CameraConfig     `yaml:"camera"`
	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Particles  ParticleConfig   `yaml:"particles"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Scene      SceneConfig      `yaml:"scene"`
}

type DisplayConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Title      string     `yaml:"title"`
	VSync      bool       `yaml:"vsync"`
	MSAA       int        `yaml:"msaa"`
	ClearColor [4]float32 `yaml:"clear_color"`
}

type CameraConfig struct {
	MoveSpeed      float32    `yaml:"move_speed"`
	Sensitivity    float32    `yaml:"sensitivity"`
	FieldOfView    float32    `yaml:"field_of_view"`
	NearPlane      float32    `yaml:"near_plane"`
	FarPlane       float32    `yaml:"far_plane"`
	StartPosition  [3]float32 `yaml:"start_position"`
	FollowDistance float32    `yaml:"follow_distance"`
	FollowHeight   float32    `yaml:"follow_height"`
	GroundOffset   [3]float32 `yaml:"ground_offset"`
}

type TrajectoryConfig struct {
	AccelDuration float32 `yaml:"accel_duration"`
	MaxHeight     float32 `yaml:"max_height"`
	MaxDistance   float32 `yaml:"max_distance"`
}

type ParticleConfig struct {
	Capacity     int        `yaml:"capacity"`
	EmissionRate float32    `yaml:"emission_rate"`
	LifetimeMin  float32    `yaml:"lifetime_min"`
	LifetimeMax  float32    `yaml:"lifetime_max"`
	SizeMin      float32    `yaml:"size_min"`
	SizeMax      float32    `yaml:"size_max"`
	SpeedMin     float32    `yaml:"speed_min"`
	SpeedMax     float32    `yaml:"speed_max"`
	Direction    [3]float32 `yaml:"direction"`
	Spread       float32    `yaml:"spread"`
}

type LightingConfig struct {
	SunDirection     [3]float32 `yaml:"sun_direction"`
	SunColor         [3]float32 `yaml:"sun_color"`
	SunIntensity     float32    `yaml:"sun_intensity"`
	Ambient          [3]float32 `yaml:"ambient"`
	SpecularStrength float32    `yaml:"specular_strength"`
	Shininess        float32    `yaml:"shininess"`
	ExhaustColor     [3]float32 `yaml:"exhaust_color"`
	ExhaustIntensity float32    `yaml:"exhaust_intensity"`
	ExhaustRange     float32    `yaml:"exhaust_range"`
}

type SceneConfig struct {
	TerrainMesh        string       `yaml:"terrain_mesh"`
	LaunchpadMesh      string       `yaml:"launchpad_mesh"`
	LaunchpadPositions [][3]float32 `yaml:"launchpad_positions"`
	TickRate           int          `yaml:"tick_rate"`
}

// DefaultConfig returns the viewer's built-in tuning. These are the values
// the viewer runs with when no config file is found.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      1280,
			Height:     720,
			Title:      "Ignition Scene Viewer",
			VSync:      true,
			MSAA:       4,
			ClearColor: [4]float32{0.5, 0.7, 0.9, 1.0},
		},
		Camera: CameraConfig{
			MoveSpeed:      20.0,
			Sensitivity:    0.002,
			FieldOfView:    60.0,
			NearPlane:      0.1,
			FarPlane:       10000.0,
			StartPosition:  [3]float32{0, 100, 200},
			FollowDistance: 30.0,
			FollowHeight:   10.0,
			GroundOffset:   [3]float32{40, 5, 40},
		},
		Trajectory: TrajectoryConfig{
			AccelDuration: 3.0,
			MaxHeight:     200.0,
			MaxDistance:   300.0,
		},
		Particles: ParticleConfig{
			Capacity:     2000,
			EmissionRate: 100.0,
			LifetimeMin:  1.0,
			LifetimeMax:  2.0,
			SizeMin:      0.5,
			SizeMax:      1.5,
			SpeedMin:     5.0,
			SpeedMax:     15.0,
			Direction:    [3]float32{0, -1, 0},
			Spread:       0.3,
		},
		Lighting: LightingConfig{
			SunDirection:     [3]float32{-0.4, -1.0, -0.3},
			SunColor:         [3]float32{1.0, 1.0, 1.0},
			SunIntensity:     1.0,
			Ambient:          [3]float32{0.25, 0.25, 0.28},
			SpecularStrength: 0.5,
			Shininess:        32.0,
			ExhaustColor:     [3]float32{1.0, 0.6, 0.2},
			ExhaustIntensity: 3.0,
			ExhaustRange:     40.0,
		},
		Scene: SceneConfig{
			TerrainMesh:   "assets/terrain.obj",
			LaunchpadMesh: "assets/landingpad.obj",
			LaunchpadPositions: [][3]float32{
				{75, -1, 20},
				{-70, -1, -55},
			},
			TickRate: 60,
		},
	}
}

// LoadConfig reads the configuration from the given YAML file. Values in the
// file override the defaults, so a partial file is fine. A missing file is
// not an error and yields the defaults unchanged.
//
// Parameters:
//   - filename: path to the YAML config file
//
// Returns:
//   - *Config: the merged configuration
//   - error: nil, or a read/parse failure
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error.
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	return cfg
}

// FOVRadians converts the configured field of view from degrees to radians.
func (c CameraConfig) FOVRadians() float32 {
	return c.FieldOfView * (math32.Pi / 180.0)
}

// TickInterval returns the fixed simulation step as a duration.
func (s SceneConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}
