package ui

type OverlayBuilderOption func(*overlayImpl)

// WithSize sets the window size the overlay lays out against. Non-positive
// dimensions are ignored.
//
// Parameters:
//   - width: window width in pixels
//   - height: window height in pixels
//
// Returns:
//   - OverlayBuilderOption: a function that sets the layout size
func WithSize(width, height float32) OverlayBuilderOption {
	return func(o *overlayImpl) {
		if width <= 0 || height <= 0 {
			return
		}
		o.width = width
		o.height = height
	}
}

// WithAtlas replaces the rasterized font atlas. Nil is ignored.
//
// Parameters:
//   - atlas: the atlas to use for text
//
// Returns:
//   - OverlayBuilderOption: a function that sets the atlas
func WithAtlas(atlas *Atlas) OverlayBuilderOption {
	return func(o *overlayImpl) {
		if atlas == nil {
			return
		}
		o.atlas = atlas
	}
}
