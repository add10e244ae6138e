package particles

import (
	"github.com/Carmen-Shannon/ignition/common"
)

type EmitterBuilderOption func(*emitterImpl)

// WithCapacity sets the fixed pool size. Must be positive; NewEmitter panics
// otherwise.
//
// Parameters:
//   - capacity: number of particle slots to allocate
//
// Returns:
//   - EmitterBuilderOption: a function that sets the pool capacity
func WithCapacity(capacity int) EmitterBuilderOption {
	return func(e *emitterImpl) {
		e.capacity = capacity
	}
}

// WithEmissionRate sets how many particles spawn per second while emitting.
//
// Parameters:
//   - rate: particles per second
//
// Returns:
//   - EmitterBuilderOption: a function that sets the emission rate
func WithEmissionRate(rate float32) EmitterBuilderOption {
	return func(e *emitterImpl) {
		e.rate = rate
	}
}

// WithLifetimeRange sets the bounds each particle's lifetime is drawn from.
// Alpha always fades against max, regardless of the individual roll.
//
// Parameters:
//   - min, max: lifetime bounds in seconds
//
// Returns:
//   - EmitterBuilderOption: a function that sets the lifetime range
func WithLifetimeRange(min, max float32) EmitterBuilderOption {
	return func(e *emitterImpl) {
		e.minLifetime = min
		e.maxLifetime = max
	}
}

// WithSizeRange sets the bounds each particle's size is drawn from.
//
// Parameters:
//   - min, max: size bounds in world units
//
// Returns:
//   - EmitterBuilderOption: a function that sets the size range
func WithSizeRange(min, max float32) EmitterBuilderOption {
	return func(e *emitterImpl) {
		e.minSize = min
		e.maxSize = max
	}
}

// WithSpeedRange sets the bounds each particle's launch speed is drawn from.
//
// Parameters:
//   - min, max: speed bounds in world units per second
//
// Returns:
//   - EmitterBuilderOption: a function that sets the speed range
func WithSpeedRange(min, max float32) EmitterBuilderOption {
	return func(e *emitterImpl) {
		e.minSpeed = min
		e.maxSpeed = max
	}
}

// WithDirection sets the central emission direction of the cone.
//
// Parameters:
//   - direction: base emission direction, normalized internally
//
// Returns:
//   - EmitterBuilderOption: a function that sets the emission direction
func WithDirection(direction common.Vec3) EmitterBuilderOption {
	return func(e *emitterImpl) {
		e.direction = direction.Normalize()
	}
}

// WithSpread sets the half-angle of the emission cone in radians.
//
// Parameters:
//   - spread: cone half-angle in radians
//
// Returns:
//   - EmitterBuilderOption: a function that sets the cone spread
func WithSpread(spread float32) EmitterBuilderOption {
	return func(e *emitterImpl) {
		e.spread = spread
	}
}
