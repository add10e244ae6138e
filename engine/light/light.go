// Package light models the scene lighting rig: a single directional sun with
// a constant ambient term, plus a point light that tracks the vehicle exhaust
// while thrust is active. The rig marshals into one GPU uniform consumed by
// the lit mesh pipeline.
package light

import (
	"github.com/Carmen-Shannon/ignition/common"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	direction common.Vec3
	color     common.Vec3
	intensity float32
	ambient   common.Vec3

	specularStrength float32
	shininess        float32

	// exhaust point light state, driven by the scene while thrust is active
	exhaustPosition  common.Vec3
	exhaustColor     common.Vec3
	exhaustIntensity float32
	exhaustRange     float32
	exhaustActive    bool
}

// Light defines the interface for the scene's lighting rig.
//
// The rig holds one directional sun (direction, color, intensity, ambient) and
// one exhaust point light whose position follows the vehicle nozzle. The scene
// enables the exhaust while thrust is active and disables it otherwise; a
// disabled exhaust marshals with zero intensity so the shader needs no branch.
type Light interface {
	// Direction returns the normalized direction the sun shines along.
	//
	// Returns:
	//   - common.Vec3: unit direction from the sun toward the scene
	Direction() common.Vec3

	// Color returns the RGB color of the sun.
	//
	// Returns:
	//   - common.Vec3: color as (r, g, b)
	Color() common.Vec3

	// Intensity returns the scalar intensity multiplier for the sun.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Ambient returns the constant ambient contribution applied to every fragment.
	//
	// Returns:
	//   - common.Vec3: ambient color as (r, g, b)
	Ambient() common.Vec3

	// SpecularStrength returns the Blinn-Phong specular multiplier.
	//
	// Returns:
	//   - float32: the specular strength
	SpecularStrength() float32

	// Shininess returns the Blinn-Phong specular exponent.
	//
	// Returns:
	//   - float32: the shininess exponent
	Shininess() float32

	// ExhaustActive returns whether the exhaust point light is currently lit.
	//
	// Returns:
	//   - bool: true while thrust is active
	ExhaustActive() bool

	// ExhaustPosition returns the world-space position of the exhaust light.
	//
	// Returns:
	//   - common.Vec3: the exhaust light position
	ExhaustPosition() common.Vec3

	// SetDirection sets the sun direction and normalizes it. A zero vector is
	// ignored so the rig always keeps a valid direction.
	//
	// Parameters:
	//   - direction: the new sun direction (normalized internally)
	SetDirection(direction common.Vec3)

	// SetColor sets the RGB color of the sun.
	//
	// Parameters:
	//   - color: color as (r, g, b)
	SetColor(color common.Vec3)

	// SetIntensity sets the scalar intensity multiplier for the sun.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetAmbient sets the constant ambient contribution.
	//
	// Parameters:
	//   - ambient: ambient color as (r, g, b)
	SetAmbient(ambient common.Vec3)

	// SetExhaust positions the exhaust point light and marks it active.
	// Called by the scene each tick while thrust is active.
	//
	// Parameters:
	//   - position: world-space position of the vehicle nozzle
	SetExhaust(position common.Vec3)

	// ClearExhaust deactivates the exhaust point light. Called by the scene
	// when thrust cuts off or the trajectory resets.
	ClearExhaust()

	// Uniform builds the GPU-aligned uniform for the lit mesh pipeline.
	// The exhaust intensity is zeroed while the exhaust light is inactive.
	//
	// Returns:
	//   - GPULightUniform: the uniform snapshot of the rig
	Uniform() GPULightUniform
}

var _ Light = &lightImpl{}

// NewLight creates the scene lighting rig with a white overhead sun and the
// provided options applied.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the rig
//
// Returns:
//   - Light: a new Light instance
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		direction:        common.Vec3{X: -0.4, Y: -1.0, Z: -0.3}.Normalize(),
		color:            common.Vec3{X: 1, Y: 1, Z: 1},
		intensity:        1.0,
		ambient:          common.Vec3{X: 0.25, Y: 0.25, Z: 0.28},
		specularStrength: 0.5,
		shininess:        32.0,
		exhaustColor:     common.Vec3{X: 1.0, Y: 0.6, Z: 0.2},
		exhaustIntensity: 3.0,
		exhaustRange:     40.0,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Direction() common.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() common.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Ambient() common.Vec3 {
	return l.ambient
}

func (l *lightImpl) SpecularStrength() float32 {
	return l.specularStrength
}

func (l *lightImpl) Shininess() float32 {
	return l.shininess
}

func (l *lightImpl) ExhaustActive() bool {
	return l.exhaustActive
}

func (l *lightImpl) ExhaustPosition() common.Vec3 {
	return l.exhaustPosition
}

func (l *lightImpl) SetDirection(direction common.Vec3) {
	if direction.Dot(direction) == 0 {
		return
	}
	l.direction = direction.Normalize()
}

func (l *lightImpl) SetColor(color common.Vec3) {
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetAmbient(ambient common.Vec3) {
	l.ambient = ambient
}

func (l *lightImpl) SetExhaust(position common.Vec3) {
	l.exhaustPosition = position
	l.exhaustActive = true
}

func (l *lightImpl) ClearExhaust() {
	l.exhaustActive = false
}

func (l *lightImpl) Uniform() GPULightUniform {
	u := GPULightUniform{
		Direction:        [3]float32{l.direction.X, l.direction.Y, l.direction.Z},
		Color:            [3]float32{l.color.X, l.color.Y, l.color.Z},
		Intensity:        l.intensity,
		Ambient:          [3]float32{l.ambient.X, l.ambient.Y, l.ambient.Z},
		ExhaustColor:     [3]float32{l.exhaustColor.X, l.exhaustColor.Y, l.exhaustColor.Z},
		ExhaustRange:     l.exhaustRange,
		SpecularStrength: l.specularStrength,
		Shininess:        l.shininess,
	}
	if l.exhaustActive {
		u.ExhaustPosition = [3]float32{l.exhaustPosition.X, l.exhaustPosition.Y, l.exhaustPosition.Z}
		u.ExhaustIntensity = l.exhaustIntensity
	}
	return u
}
