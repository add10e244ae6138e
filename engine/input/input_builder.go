package input

type TrackerBuilderOption func(*trackerImpl)

// WithSensitivity sets the radians-per-pixel factor applied to mouse
// movement while look mode is active.
//
// Parameters:
//   - sensitivity: radians of rotation per pixel of cursor travel
//
// Returns:
//   - TrackerBuilderOption: a function that sets the look sensitivity
func WithSensitivity(sensitivity float32) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.sensitivity = sensitivity
	}
}
