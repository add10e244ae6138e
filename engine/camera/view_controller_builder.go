package camera

// ViewControllerBuilderOption is a function that modifies the
// viewControllerImpl structure.
type ViewControllerBuilderOption func(*viewControllerImpl)

// WithPrimaryRig sets the input-driven rig.
//
// Parameters:
//   - rig: the rig shown in the primary viewport
//
// Returns:
//   - ViewControllerBuilderOption: the option to apply
func WithPrimaryRig(rig Rig) ViewControllerBuilderOption {
	return func(v *viewControllerImpl) {
		v.primary = rig
	}
}

// WithSecondaryRig sets the autonomous rig shown when split view is enabled.
//
// Parameters:
//   - rig: the rig shown in the secondary viewport
//
// Returns:
//   - ViewControllerBuilderOption: the option to apply
func WithSecondaryRig(rig Rig) ViewControllerBuilderOption {
	return func(v *viewControllerImpl) {
		v.secondary = rig
	}
}

// WithSplit sets whether the secondary viewport starts enabled.
//
// Parameters:
//   - split: true to begin in split view
//
// Returns:
//   - ViewControllerBuilderOption: the option to apply
func WithSplit(split bool) ViewControllerBuilderOption {
	return func(v *viewControllerImpl) {
		v.split = split
	}
}
