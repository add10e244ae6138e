package ui

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOverlay() Overlay {
	return NewOverlay(WithSize(800, 600))
}

func TestAnchoredLabelPositions(t *testing.T) {
	o := testOverlay()

	cases := []struct {
		name   string
		anchor Anchor
		x, y   float32
	}{
		{"top left", AnchorTopLeft, 10, 20},
		{"top center", AnchorTopCenter, 410, 20},
		{"top right", AnchorTopRight, 790, 20},
		{"center left", AnchorCenterLeft, 10, 320},
		{"center", AnchorCenter, 410, 320},
		{"center right", AnchorCenterRight, 790, 320},
		{"bottom left", AnchorBottomLeft, 10, 580},
		{"bottom center", AnchorBottomCenter, 410, 580},
		{"bottom right", AnchorBottomRight, 790, 580},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := o.AddLabel("x", 1, tc.anchor, 10, 20)
			gotX, gotY := w.Position()
			assert.Equal(t, tc.x, gotX)
			assert.Equal(t, tc.y, gotY)
		})
	}
}

func TestButtonsShiftAgainstTheirAnchor(t *testing.T) {
	o := testOverlay()

	center := o.AddButton("c", 100, 40, AnchorCenter, 0, 0, nil)
	x, y := center.Position()
	assert.Equal(t, float32(350), x, "centered button centers its body")
	assert.Equal(t, float32(280), y)

	bottomRight := o.AddButton("br", 100, 40, AnchorBottomRight, 10, 10, nil)
	x, y = bottomRight.Position()
	assert.Equal(t, float32(690), x, "bottom right keeps the full body inside the margin")
	assert.Equal(t, float32(550), y)

	topRight := o.AddButton("tr", 100, 40, AnchorTopRight, 10, 10, nil)
	x, y = topRight.Position()
	assert.Equal(t, float32(690), x)
	assert.Equal(t, float32(10), y, "top row does not shift vertically")
}

func TestResizeRelayoutsWidgets(t *testing.T) {
	o := testOverlay()
	w := o.AddLabel("fps", 1, AnchorBottomRight, 100, 30)

	o.Resize(1920, 1080)
	x, y := w.Position()
	assert.Equal(t, float32(1820), x)
	assert.Equal(t, float32(1050), y)

	o.Resize(0, -5)
	gotW, gotH := o.Size()
	assert.Equal(t, float32(1920), gotW, "degenerate sizes are ignored")
	assert.Equal(t, float32(1080), gotH)
}

func TestButtonPressReleaseFiresClick(t *testing.T) {
	o := testOverlay()
	clicks := 0
	b := o.AddButton("go", 100, 40, AnchorTopLeft, 0, 0, func() { clicks++ })

	o.Update(50, 20, true)
	assert.Equal(t, ButtonPressed, b.State())
	assert.Zero(t, clicks, "click fires on release, not press")

	o.Update(50, 20, false)
	assert.Equal(t, ButtonHovered, b.State())
	assert.Equal(t, 1, clicks)

	o.Update(50, 20, false)
	assert.Equal(t, ButtonHovered, b.State())
	assert.Equal(t, 1, clicks, "hover without a fresh press must not re-fire")
}

func TestButtonDragOffCancelsClick(t *testing.T) {
	o := testOverlay()
	clicks := 0
	b := o.AddButton("go", 100, 40, AnchorTopLeft, 0, 0, func() { clicks++ })

	o.Update(50, 20, true)
	require.Equal(t, ButtonPressed, b.State())

	o.Update(300, 300, true)
	assert.Equal(t, ButtonNormal, b.State())

	o.Update(50, 20, false)
	assert.Zero(t, clicks, "releasing after dragging off must not click")
	assert.Equal(t, ButtonHovered, b.State())
}

func TestButtonSlideOnWhileHeldArmsClick(t *testing.T) {
	o := testOverlay()
	clicks := 0
	b := o.AddButton("go", 100, 40, AnchorTopLeft, 0, 0, func() { clicks++ })

	o.Update(300, 300, true)
	assert.Equal(t, ButtonNormal, b.State())

	o.Update(50, 20, true)
	assert.Equal(t, ButtonPressed, b.State())

	o.Update(50, 20, false)
	assert.Equal(t, 1, clicks)
}

func TestButtonHitTestIncludesEdges(t *testing.T) {
	o := testOverlay()
	b := o.AddButton("go", 100, 40, AnchorTopLeft, 0, 0, nil)

	o.Update(100, 40, false)
	assert.Equal(t, ButtonHovered, b.State(), "far corner counts as inside")

	o.Update(100.5, 40, false)
	assert.Equal(t, ButtonNormal, b.State())

	o.Update(0, 0, false)
	assert.Equal(t, ButtonHovered, b.State())
}

func TestNilClickHandlerIsSafe(t *testing.T) {
	o := testOverlay()
	b := o.AddButton("go", 100, 40, AnchorTopLeft, 0, 0, nil)

	o.Update(50, 20, true)
	o.Update(50, 20, false)
	assert.Equal(t, ButtonHovered, b.State())
}

func TestDrawListSolidAndGlyphQuads(t *testing.T) {
	o := testOverlay()
	o.AddButton("GO", 100, 40, AnchorTopLeft, 0, 0, nil)

	vertices, indices := o.AppendDrawLists(nil, nil)

	// Fill quad, four outline bars and two caption glyphs.
	require.Len(t, vertices, 7*4)
	require.Len(t, indices, 7*6)

	for i := range 4 {
		assert.Negative(t, vertices[i].UV[0], "fill quad is untextured")
		assert.Equal(t, fillColors[ButtonNormal], vertices[i].Color)
	}
	for i := 4; i < 20; i++ {
		assert.Negative(t, vertices[i].UV[0], "outline bars are untextured")
		assert.Equal(t, outlineColors[ButtonNormal], vertices[i].Color)
	}
	for i := 20; i < 28; i++ {
		assert.GreaterOrEqual(t, vertices[i].UV[0], float32(0), "glyphs sample the atlas")
		assert.LessOrEqual(t, vertices[i].UV[0], float32(1))
		assert.Equal(t, buttonTextColor, vertices[i].Color)
	}
}

func TestDrawListFillColorTracksState(t *testing.T) {
	o := testOverlay()
	o.AddButton("GO", 100, 40, AnchorTopLeft, 0, 0, nil)

	o.Update(50, 20, true)
	vertices, _ := o.AppendDrawLists(nil, nil)
	assert.Equal(t, fillColors[ButtonPressed], vertices[0].Color)

	o.Update(50, 20, false)
	vertices, _ = o.AppendDrawLists(vertices[:0], nil)
	assert.Equal(t, fillColors[ButtonHovered], vertices[0].Color)
}

func TestButtonCaptionIsCentered(t *testing.T) {
	o := testOverlay()
	o.AddButton("GO", 100, 40, AnchorTopLeft, 0, 0, nil)

	vertices, _ := o.AppendDrawLists(nil, nil)

	textW, textH := MeasureText("GO", buttonTextScale)
	first := vertices[20]
	assert.InDelta(t, (100-textW)/2, first.Position[0], 1e-4)
	assert.InDelta(t, (40-textH)/2, first.Position[1], 1e-4)
}

func TestLabelsDrawAfterButtons(t *testing.T) {
	o := testOverlay()
	label := o.AddLabel("A", 1, AnchorTopLeft, 0, 0)
	o.AddButton("B", 50, 20, AnchorTopLeft, 0, 100, nil)

	vertices, _ := o.AppendDrawLists(nil, nil)

	// Button chrome plus caption come first even though the label was added
	// earlier; the label's single glyph is the final quad.
	require.Len(t, vertices, (1+4+1+1)*4)
	lx, ly := label.Position()
	last := vertices[len(vertices)-4]
	assert.Equal(t, lx, last.Position[0])
	assert.Equal(t, ly, last.Position[1])
}

func TestLabelTextRewriteChangesEmission(t *testing.T) {
	o := testOverlay()
	w := o.AddLabel("ab", 1, AnchorTopLeft, 0, 0)

	vertices, indices := o.AppendDrawLists(nil, nil)
	require.Len(t, vertices, 8)
	require.Len(t, indices, 12)

	w.Text = "a b c"
	vertices, indices = o.AppendDrawLists(vertices[:0], indices[:0])
	assert.Len(t, vertices, 12, "spaces advance the pen without quads")
	assert.Len(t, indices, 18)
}

func TestHiddenWidgetsEmitNothing(t *testing.T) {
	o := testOverlay()
	label := o.AddLabel("hud", 1, AnchorTopLeft, 0, 0)
	button := o.AddButton("go", 50, 20, AnchorTopLeft, 0, 100, nil)

	label.Visible = false
	button.Visible = false

	vertices, indices := o.AppendDrawLists(nil, nil)
	assert.Empty(t, vertices)
	assert.Empty(t, indices)
}

func TestMultiLineTextAdvancesLines(t *testing.T) {
	o := testOverlay()
	o.AddLabel("ab\ncd", 2, AnchorTopLeft, 0, 0)

	vertices, _ := o.AppendDrawLists(nil, nil)
	require.Len(t, vertices, 16)

	// Second line restarts at the left edge one line advance down.
	assert.Equal(t, float32(0), vertices[8].Position[0])
	assert.Equal(t, LineAdvance*2, vertices[8].Position[1])
}

func TestQuadIndexWinding(t *testing.T) {
	o := testOverlay()
	o.AddLabel("a", 1, AnchorTopLeft, 0, 0)

	_, indices := o.AppendDrawLists(nil, nil)
	require.Len(t, indices, 6)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, indices)
}

func TestGPUUIVertexMarshal(t *testing.T) {
	v := GPUUIVertex{
		Position: [2]float32{3, 4},
		UV:       [2]float32{0.25, 0.5},
		Color:    [4]float32{1, 0.5, 0.25, 1},
	}
	require.Equal(t, 32, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])))
}

func TestGPUScreenUniformMarshal(t *testing.T) {
	u := GPUScreenUniform{Size: [2]float32{1280, 720}}
	require.Equal(t, 16, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 16)
	assert.Equal(t, float32(1280), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, float32(720), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, buf[8:16], "padding stays zeroed")
}
