package ui

import (
	"image"

	"github.com/Carmen-Shannon/ignition/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph metrics for the overlay font. The atlas rasterizes basicfont's fixed
// 7x13 face, so every printable ASCII character shares the same advance and
// height. Text layout scales these by the widget's text scale.
const (
	// GlyphWidth is the horizontal advance of one character in atlas pixels.
	GlyphWidth float32 = 7
	// GlyphHeight is the character cell height in atlas pixels.
	GlyphHeight float32 = 13
	// LineAdvance is the vertical distance between the tops of consecutive
	// text lines in atlas pixels.
	LineAdvance float32 = GlyphHeight + 2
)

const (
	atlasFirstChar = ' '
	atlasLastChar  = '~'
	atlasColumns   = 16

	// Each cell pads the glyph by one pixel on the right and bottom so the
	// filtering sampler cannot bleed into a neighboring character.
	atlasCellWidth  = int(GlyphWidth) + 1
	atlasCellHeight = int(GlyphHeight) + 1
)

// Glyph is the normalized atlas rectangle for one character.
type Glyph struct {
	U0 float32
	V0 float32
	U1 float32
	V1 float32
}

// Atlas is the overlay font texture: every printable ASCII character
// rasterized once into a single RGBA image. Pixels are white with the glyph
// coverage in the alpha channel, which is what the overlay fragment shader
// samples. Built once at startup and immutable afterwards.
type Atlas struct {
	pixels []byte
	width  int
	height int
	glyphs [atlasLastChar - atlasFirstChar + 1]Glyph
}

// NewAtlas rasterizes the printable ASCII range of basicfont.Face7x13 into a
// fresh atlas.
//
// Returns:
//   - *Atlas: the populated atlas, ready for GPU upload via Staging
func NewAtlas() *Atlas {
	charCount := int(atlasLastChar-atlasFirstChar) + 1
	rows := (charCount + atlasColumns - 1) / atlasColumns

	width := atlasColumns * atlasCellWidth
	height := rows * atlasCellHeight
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}

	a := &Atlas{
		pixels: img.Pix,
		width:  width,
		height: height,
	}
	for i := range charCount {
		col := i % atlasColumns
		row := i / atlasColumns
		cellX := col * atlasCellWidth
		cellY := row * atlasCellHeight

		// The drawer places glyphs relative to the baseline, so the pen sits
		// one ascent below the cell's top edge.
		drawer.Dot = fixed.P(cellX, cellY+face.Ascent)
		drawer.DrawString(string(rune(atlasFirstChar + i)))

		a.glyphs[i] = Glyph{
			U0: float32(cellX) / float32(width),
			V0: float32(cellY) / float32(height),
			U1: (float32(cellX) + GlyphWidth) / float32(width),
			V1: (float32(cellY) + GlyphHeight) / float32(height),
		}
	}
	return a
}

// Glyph looks up the atlas rectangle for a character.
//
// Parameters:
//   - r: the character to look up
//
// Returns:
//   - Glyph: the normalized atlas rectangle
//   - bool: false when the character is outside the printable ASCII range
func (a *Atlas) Glyph(r rune) (Glyph, bool) {
	if r < atlasFirstChar || r > atlasLastChar {
		return Glyph{}, false
	}
	return a.glyphs[r-atlasFirstChar], true
}

// Staging returns the atlas pixels packaged for a texture upload.
//
// Returns:
//   - common.TextureStagingData: RGBA pixels with atlas dimensions
func (a *Atlas) Staging() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: a.pixels,
		Width:  uint32(a.width),
		Height: uint32(a.height),
	}
}

// MeasureText returns the pixel size of a text block at the given scale.
// Lines are split on '\n'; the width is that of the longest line.
//
// Parameters:
//   - text: the text to measure
//   - scale: multiplier applied to the glyph metrics
//
// Returns:
//   - float32: width in pixels
//   - float32: height in pixels
func MeasureText(text string, scale float32) (float32, float32) {
	if text == "" {
		return 0, 0
	}
	maxRun, run, lines := 0, 0, 1
	for _, r := range text {
		if r == '\n' {
			lines++
			run = 0
			continue
		}
		run++
		if run > maxRun {
			maxRun = run
		}
	}
	width := float32(maxRun) * GlyphWidth * scale
	height := (GlyphHeight + float32(lines-1)*LineAdvance) * scale
	return width, height
}
