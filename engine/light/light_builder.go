package light

import "github.com/Carmen-Shannon/ignition/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithDirection is an option builder that sets the sun direction.
// The direction is normalized before storing; a zero vector is ignored.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetDirection(common.Vec3{X: x, Y: y, Z: z})
	}
}

// WithColor is an option builder that sets the RGB color of the sun.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.Vec3{X: r, Y: g, Z: b}
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier
// for the sun.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithAmbient is an option builder that sets the constant ambient contribution.
//
// Parameters:
//   - r: the red ambient component
//   - g: the green ambient component
//   - b: the blue ambient component
//
// Returns:
//   - LightBuilderOption: a function that applies the ambient option to a lightImpl
func WithAmbient(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.ambient = common.Vec3{X: r, Y: g, Z: b}
	}
}

// WithSpecular is an option builder that sets the Blinn-Phong specular
// parameters.
//
// Parameters:
//   - strength: the specular multiplier
//   - shininess: the specular exponent
//
// Returns:
//   - LightBuilderOption: a function that applies the specular option to a lightImpl
func WithSpecular(strength, shininess float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.specularStrength = strength
		l.shininess = shininess
	}
}

// WithExhaustColor is an option builder that sets the RGB color of the exhaust
// point light.
//
// Parameters:
//   - r: the red color component
//   - g: the green color component
//   - b: the blue color component
//
// Returns:
//   - LightBuilderOption: a function that applies the exhaust color option to a lightImpl
func WithExhaustColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.exhaustColor = common.Vec3{X: r, Y: g, Z: b}
	}
}

// WithExhaustIntensity is an option builder that sets the intensity the exhaust
// point light uses while thrust is active.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the exhaust intensity option to a lightImpl
func WithExhaustIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.exhaustIntensity = intensity
	}
}

// WithExhaustRange is an option builder that sets the falloff radius of the
// exhaust point light in world units.
//
// Parameters:
//   - exhaustRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the exhaust range option to a lightImpl
func WithExhaustRange(exhaustRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.exhaustRange = exhaustRange
	}
}
