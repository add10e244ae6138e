// Package ui renders the screen-space overlay: text readouts and clickable
// buttons anchored to the window edges. Widgets are a tagged variant rather
// than a type hierarchy; a Widget's Kind selects which fields are meaningful.
// The overlay emits pixel-space quads each frame and leaves GPU upload to the
// render pass, so the package itself never touches the device.
package ui

// WidgetKind selects the variant of a Widget.
type WidgetKind int

const (
	// WidgetLabel is a text readout with no interaction.
	WidgetLabel WidgetKind = iota
	// WidgetButton is a clickable rectangle with a centered caption.
	WidgetButton
)

// Anchor names the window-relative reference point a widget hangs from.
// Offsets are measured inward: right-column anchors subtract the X offset
// from the window width and bottom-row anchors subtract the Y offset from
// the window height, so a widget keeps its margin across resizes.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// ButtonState is the interaction state of a button widget.
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonHovered
	ButtonPressed
)

// Button chrome per state. Fill is translucent so the scene stays readable
// behind the overlay; the outline brightens toward white as the button is
// engaged.
var (
	fillColors = [3][4]float32{
		ButtonNormal:  {0.2, 0.2, 0.2, 0.7},
		ButtonHovered: {0.3, 0.3, 0.4, 0.8},
		ButtonPressed: {0.4, 0.4, 0.5, 0.9},
	}
	outlineColors = [3][4]float32{
		ButtonNormal:  {0.6, 0.6, 0.6, 1.0},
		ButtonHovered: {0.8, 0.8, 0.9, 1.0},
		ButtonPressed: {1.0, 1.0, 1.0, 1.0},
	}
	buttonTextColor = [4]float32{1.0, 1.0, 1.0, 1.0}
)

const (
	outlineThickness float32 = 1.0
	buttonTextScale  float32 = 1.5
)

// Widget is one overlay element. Kind decides the variant: labels use Text,
// Scale and Color; buttons additionally use Width, Height and OnClick, and
// their caption renders centered at a fixed scale. Anchor and the offsets
// drive layout; the resolved position is recomputed from them every update.
type Widget struct {
	Kind    WidgetKind
	Anchor  Anchor
	OffsetX float32
	OffsetY float32
	Visible bool

	Text  string
	Scale float32
	Color [4]float32

	Width   float32
	Height  float32
	OnClick func()

	x          float32
	y          float32
	state      ButtonState
	wasPressed bool
}

// Position returns the widget's resolved top-left corner in window pixels.
//
// Returns:
//   - float32: x in pixels
//   - float32: y in pixels
func (w *Widget) Position() (float32, float32) {
	return w.x, w.y
}

// State returns the button interaction state. Labels always report
// ButtonNormal.
//
// Returns:
//   - ButtonState: the current state
func (w *Widget) State() ButtonState {
	return w.state
}

// contains reports whether a window-space point lies on the widget's
// rectangle. Edges count as inside.
func (w *Widget) contains(px, py float32) bool {
	return px >= w.x && px <= w.x+w.Width && py >= w.y && py <= w.y+w.Height
}

// Overlay owns the overlay widgets, resolves their anchored layout, runs the
// button press cycle against the pointer and emits the frame's draw lists.
// It is owned by the simulation tick and is not safe for concurrent use; the
// render pass consumes the emitted vertex stream, never the Overlay itself.
type Overlay interface {
	// AddLabel appends a text readout and returns it so the caller can
	// rewrite its Text between frames.
	//
	// Parameters:
	//   - text: initial label text
	//   - scale: glyph scale multiplier
	//   - anchor: window reference point
	//   - offsetX: horizontal offset, measured inward for right anchors
	//   - offsetY: vertical offset, measured inward for bottom anchors
	//
	// Returns:
	//   - *Widget: the stored widget
	AddLabel(text string, scale float32, anchor Anchor, offsetX, offsetY float32) *Widget

	// AddButton appends a clickable button. Buttons shift against their
	// anchor so center and far-edge anchors align the button body rather
	// than its top-left corner.
	//
	// Parameters:
	//   - text: caption drawn centered on the button
	//   - width: button width in pixels
	//   - height: button height in pixels
	//   - anchor: window reference point
	//   - offsetX: horizontal offset, measured inward for right anchors
	//   - offsetY: vertical offset, measured inward for bottom anchors
	//   - onClick: invoked when a press is released on the button, may be nil
	//
	// Returns:
	//   - *Widget: the stored widget
	AddButton(text string, width, height float32, anchor Anchor, offsetX, offsetY float32, onClick func()) *Widget

	// Resize records a new window size. Anchored positions follow on the
	// next update.
	//
	// Parameters:
	//   - width: window width in pixels
	//   - height: window height in pixels
	Resize(width, height float32)

	// Update re-resolves widget layout and advances every button's press
	// cycle. A click fires when a press is released while the pointer is
	// still on the button; dragging off the button before release cancels
	// it. Buttons do not track where the press began, so holding the
	// pointer down and sliding onto a button arms it.
	//
	// Parameters:
	//   - pointerX: pointer x in window pixels
	//   - pointerY: pointer y in window pixels
	//   - pointerDown: whether the primary button is held
	Update(pointerX, pointerY float32, pointerDown bool)

	// AppendDrawLists appends the overlay's quads to the given vertex and
	// index slices and returns the extended slices. Button chrome is emitted
	// before label text so readouts stay legible over overlapping buttons.
	//
	// Parameters:
	//   - vertices: destination vertex slice, typically reused via dst[:0]
	//   - indices: destination index slice, typically reused via dst[:0]
	//
	// Returns:
	//   - []GPUUIVertex: vertices extended with this frame's overlay
	//   - []uint32: indices extended with this frame's overlay
	AppendDrawLists(vertices []GPUUIVertex, indices []uint32) ([]GPUUIVertex, []uint32)

	// Atlas returns the font atlas backing the overlay's text.
	//
	// Returns:
	//   - *Atlas: the shared glyph atlas
	Atlas() *Atlas

	// Size returns the window size the overlay is laid out against.
	//
	// Returns:
	//   - float32: width in pixels
	//   - float32: height in pixels
	Size() (float32, float32)
}

type overlayImpl struct {
	width   float32
	height  float32
	widgets []*Widget
	atlas   *Atlas
}

var _ Overlay = &overlayImpl{}

// NewOverlay creates an Overlay and rasterizes its font atlas.
//
// Parameters:
//   - options: variadic list of OverlayBuilderOption functions to configure the Overlay
//
// Returns:
//   - Overlay: the configured Overlay
func NewOverlay(options ...OverlayBuilderOption) Overlay {
	o := &overlayImpl{
		width:  1280,
		height: 720,
		atlas:  NewAtlas(),
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

func (o *overlayImpl) AddLabel(text string, scale float32, anchor Anchor, offsetX, offsetY float32) *Widget {
	w := &Widget{
		Kind:    WidgetLabel,
		Anchor:  anchor,
		OffsetX: offsetX,
		OffsetY: offsetY,
		Visible: true,
		Text:    text,
		Scale:   scale,
		Color:   [4]float32{1.0, 1.0, 1.0, 1.0},
	}
	o.widgets = append(o.widgets, w)
	o.place(w)
	return w
}

func (o *overlayImpl) AddButton(text string, width, height float32, anchor Anchor, offsetX, offsetY float32, onClick func()) *Widget {
	w := &Widget{
		Kind:    WidgetButton,
		Anchor:  anchor,
		OffsetX: offsetX,
		OffsetY: offsetY,
		Visible: true,
		Text:    text,
		Scale:   buttonTextScale,
		Width:   width,
		Height:  height,
		OnClick: onClick,
	}
	o.widgets = append(o.widgets, w)
	o.place(w)
	return w
}

func (o *overlayImpl) Resize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	o.width = width
	o.height = height
	for _, w := range o.widgets {
		o.place(w)
	}
}

func (o *overlayImpl) Update(pointerX, pointerY float32, pointerDown bool) {
	for _, w := range o.widgets {
		o.place(w)
		if w.Kind != WidgetButton {
			continue
		}
		inside := w.contains(pointerX, pointerY)
		switch {
		case inside && pointerDown:
			w.state = ButtonPressed
			w.wasPressed = true
		case inside:
			if w.wasPressed && w.OnClick != nil {
				w.OnClick()
			}
			w.state = ButtonHovered
			w.wasPressed = false
		default:
			w.state = ButtonNormal
			w.wasPressed = false
		}
	}
}

func (o *overlayImpl) AppendDrawLists(vertices []GPUUIVertex, indices []uint32) ([]GPUUIVertex, []uint32) {
	for _, w := range o.widgets {
		if w.Kind != WidgetButton || !w.Visible {
			continue
		}
		fill := fillColors[w.state]
		outline := outlineColors[w.state]
		vertices, indices = appendQuad(vertices, indices, w.x, w.y, w.Width, w.Height, Glyph{U0: -1, V0: -1, U1: -1, V1: -1}, fill)
		vertices, indices = appendOutline(vertices, indices, w.x, w.y, w.Width, w.Height, outline)

		textW, textH := MeasureText(w.Text, w.Scale)
		textX := w.x + (w.Width-textW)/2
		textY := w.y + (w.Height-textH)/2
		vertices, indices = o.appendText(vertices, indices, w.Text, textX, textY, w.Scale, buttonTextColor)
	}
	for _, w := range o.widgets {
		if w.Kind != WidgetLabel || !w.Visible {
			continue
		}
		vertices, indices = o.appendText(vertices, indices, w.Text, w.x, w.y, w.Scale, w.Color)
	}
	return vertices, indices
}

func (o *overlayImpl) Atlas() *Atlas {
	return o.atlas
}

func (o *overlayImpl) Size() (float32, float32) {
	return o.width, o.height
}

// place resolves a widget's top-left corner from its anchor and offsets.
// Buttons shift by their own size so center anchors center the body and
// right or bottom anchors keep the whole rectangle inside the margin.
func (o *overlayImpl) place(w *Widget) {
	x, y := o.anchoredPosition(w.Anchor, w.OffsetX, w.OffsetY)
	if w.Kind == WidgetButton {
		switch w.Anchor {
		case AnchorTopCenter, AnchorCenter, AnchorBottomCenter:
			x -= w.Width / 2
		case AnchorTopRight, AnchorCenterRight, AnchorBottomRight:
			x -= w.Width
		}
		switch w.Anchor {
		case AnchorCenterLeft, AnchorCenter, AnchorCenterRight:
			y -= w.Height / 2
		case AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight:
			y -= w.Height
		}
	}
	w.x = x
	w.y = y
}

func (o *overlayImpl) anchoredPosition(anchor Anchor, offsetX, offsetY float32) (float32, float32) {
	switch anchor {
	case AnchorTopLeft:
		return offsetX, offsetY
	case AnchorTopCenter:
		return o.width/2 + offsetX, offsetY
	case AnchorTopRight:
		return o.width - offsetX, offsetY
	case AnchorCenterLeft:
		return offsetX, o.height/2 + offsetY
	case AnchorCenter:
		return o.width/2 + offsetX, o.height/2 + offsetY
	case AnchorCenterRight:
		return o.width - offsetX, o.height/2 + offsetY
	case AnchorBottomLeft:
		return offsetX, o.height - offsetY
	case AnchorBottomCenter:
		return o.width/2 + offsetX, o.height - offsetY
	case AnchorBottomRight:
		return o.width - offsetX, o.height - offsetY
	}
	return offsetX, offsetY
}

// appendText emits one glyph quad per character starting at the given
// top-left corner. '\n' starts a new line; spaces and characters outside the
// atlas advance the pen without emitting geometry.
func (o *overlayImpl) appendText(vertices []GPUUIVertex, indices []uint32, text string, x, y, scale float32, color [4]float32) ([]GPUUIVertex, []uint32) {
	penX, penY := x, y
	for _, r := range text {
		if r == '\n' {
			penX = x
			penY += LineAdvance * scale
			continue
		}
		if g, ok := o.atlas.Glyph(r); ok && r != ' ' {
			vertices, indices = appendQuad(vertices, indices, penX, penY, GlyphWidth*scale, GlyphHeight*scale, g, color)
		}
		penX += GlyphWidth * scale
	}
	return vertices, indices
}

// appendQuad emits two triangles covering the rectangle. A glyph with
// negative coordinates renders as a solid fill.
func appendQuad(vertices []GPUUIVertex, indices []uint32, x, y, width, height float32, g Glyph, color [4]float32) ([]GPUUIVertex, []uint32) {
	base := uint32(len(vertices))
	vertices = append(vertices,
		GPUUIVertex{Position: [2]float32{x, y}, UV: [2]float32{g.U0, g.V0}, Color: color},
		GPUUIVertex{Position: [2]float32{x + width, y}, UV: [2]float32{g.U1, g.V0}, Color: color},
		GPUUIVertex{Position: [2]float32{x + width, y + height}, UV: [2]float32{g.U1, g.V1}, Color: color},
		GPUUIVertex{Position: [2]float32{x, y + height}, UV: [2]float32{g.U0, g.V1}, Color: color},
	)
	indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	return vertices, indices
}

// appendOutline emits the button border as four thin bars. The side bars are
// inset by the thickness so corners are not double-covered, which would
// darken them under alpha blending.
func appendOutline(vertices []GPUUIVertex, indices []uint32, x, y, width, height float32, color [4]float32) ([]GPUUIVertex, []uint32) {
	t := outlineThickness
	solid := Glyph{U0: -1, V0: -1, U1: -1, V1: -1}
	vertices, indices = appendQuad(vertices, indices, x, y, width, t, solid, color)
	vertices, indices = appendQuad(vertices, indices, x, y+height-t, width, t, solid, color)
	vertices, indices = appendQuad(vertices, indices, x, y+t, t, height-2*t, solid, color)
	vertices, indices = appendQuad(vertices, indices, x+width-t, y+t, t, height-2*t, solid, color)
	return vertices, indices
}
