package vehicle

import "github.com/Carmen-Shannon/ignition/common"

// VehicleBuilderOption is a function that configures a Vehicle instance during construction.
type VehicleBuilderOption func(*vehicleImpl)

// WithLaunchPosition is an option builder that sets the world position the
// vehicle launches from. Altitude is measured against this position's height.
//
// Parameters:
//   - position: the launchpad surface position
//
// Returns:
//   - VehicleBuilderOption: a function that applies the launch position option to a vehicleImpl
func WithLaunchPosition(position common.Vec3) VehicleBuilderOption {
	return func(v *vehicleImpl) {
		v.launch = position
	}
}

// WithSegments is an option builder that sets the circumference tessellation
// of the vehicle's curved parts. Values below 3 are ignored.
//
// Parameters:
//   - segments: the segment count
//
// Returns:
//   - VehicleBuilderOption: a function that applies the segments option to a vehicleImpl
func WithSegments(segments int) VehicleBuilderOption {
	return func(v *vehicleImpl) {
		if segments >= 3 {
			v.segments = segments
		}
	}
}
