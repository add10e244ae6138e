package trajectory

import (
	"github.com/Carmen-Shannon/ignition/common"
)

type EvaluatorBuilderOption func(*evaluatorImpl)

// WithAccelDuration sets the length of the acceleration phase in seconds.
// Must be positive; NewEvaluator panics otherwise.
//
// Parameters:
//   - seconds: acceleration window duration
//
// Returns:
//   - EvaluatorBuilderOption: a function that sets the acceleration duration
func WithAccelDuration(seconds float32) EvaluatorBuilderOption {
	return func(e *evaluatorImpl) {
		e.accelDuration = seconds
	}
}

// WithMaxHeight sets the apex height of the ascent curve in world units.
//
// Parameters:
//   - height: peak height above the launch origin
//
// Returns:
//   - EvaluatorBuilderOption: a function that sets the peak height
func WithMaxHeight(height float32) EvaluatorBuilderOption {
	return func(e *evaluatorImpl) {
		e.maxHeight = height
	}
}

// WithMaxDistance sets the downrange distance of the ascent curve in world
// units. The sideways arc scales from the same value.
//
// Parameters:
//   - distance: downrange travel at the end of the curve
//
// Returns:
//   - EvaluatorBuilderOption: a function that sets the downrange distance
func WithMaxDistance(distance float32) EvaluatorBuilderOption {
	return func(e *evaluatorImpl) {
		e.maxDistance = distance
	}
}

// WithLaunchOrigin sets the world position the trajectory starts from.
//
// Parameters:
//   - origin: launch position in world space
//
// Returns:
//   - EvaluatorBuilderOption: a function that sets the launch origin
func WithLaunchOrigin(origin common.Vec3) EvaluatorBuilderOption {
	return func(e *evaluatorImpl) {
		e.origin = origin
	}
}
