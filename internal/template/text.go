package template

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/shorts2video/internal/styledtext"
)

// pillBaseAlpha is the alpha of a subtitle pill at 100% opacity.
const pillBaseAlpha = 200

// lineSpacing multiplies the font size to get the distance between stacked
// baselines.
const lineSpacing = 1.2

var namedColors = map[string]color.RGBA{
	"white":  {255, 255, 255, 255},
	"black":  {0, 0, 0, 255},
	"red":    {235, 64, 52, 255},
	"yellow": {255, 221, 51, 255},
	"green":  {80, 200, 120, 255},
	"blue":   {66, 135, 245, 255},
	"gray":   {128, 128, 128, 255},
	"grey":   {128, 128, 128, 255},
}

// ParseColor resolves a named color or #rgb/#rrggbb hex value. Anything
// unparseable degrades to white, never to an error.
func ParseColor(s string) color.RGBA {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if !strings.HasPrefix(s, "#") {
		return namedColors["white"]
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return namedColors["white"]
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(hex[i*2])
		lo, ok2 := hexNibble(hex[i*2+1])
		if !ok1 || !ok2 {
			return namedColors["white"]
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

// textBlock is a measured multi-line styled text ready for drawing.
type textBlock struct {
	lines    [][]styledtext.Run
	face     font.Face
	size     float64
	maxWidth int
}

// layoutBlock splits text on explicit newlines and parses color runs per
// line.
func layoutBlock(text string, size float64, bold bool) textBlock {
	face := Face(size, bold)
	b := textBlock{face: face, size: size}

	for _, line := range strings.Split(text, "\n") {
		runs := styledtext.ParseColorRuns(line)
		b.lines = append(b.lines, runs)
		if w := measureRuns(face, runs); w > b.maxWidth {
			b.maxWidth = w
		}
	}
	return b
}

func measureRuns(face font.Face, runs []styledtext.Run) int {
	if face == nil {
		return 0
	}
	total := fixed.I(0)
	for _, r := range runs {
		total += font.MeasureString(face, r.Text)
	}
	return total.Ceil()
}

func (b textBlock) lineHeight() int {
	return int(b.size * lineSpacing)
}

// height is the vertical extent of the whole block.
func (b textBlock) height() int {
	if len(b.lines) == 0 {
		return 0
	}
	return b.lineHeight() * len(b.lines)
}

// draw paints the block horizontally centered on centerX and vertically
// centered on centerY. Each line is centered as a whole while every run
// keeps its own fill color; the shared stroke outline is drawn first so the
// fill sits on top.
func (b textBlock) draw(dst *image.RGBA, centerX, centerY, strokeWidth int) {
	if b.face == nil || len(b.lines) == 0 {
		return
	}

	lh := b.lineHeight()
	// Baseline of the first line so the whole block centers on centerY.
	ascent := int(b.size * 0.8)
	top := centerY - b.height()/2
	baseline := top + ascent

	stroke := namedColors["black"]

	for _, runs := range b.lines {
		lineWidth := measureRuns(b.face, runs)
		x := centerX - lineWidth/2

		if strokeWidth > 0 {
			pen := x
			for _, r := range runs {
				drawRunStroke(dst, b.face, r.Text, pen, baseline, strokeWidth, stroke)
				pen += font.MeasureString(b.face, r.Text).Ceil()
			}
		}

		pen := x
		for _, r := range runs {
			drawString(dst, b.face, r.Text, pen, baseline, ParseColor(r.Color))
			pen += font.MeasureString(b.face, r.Text).Ceil()
		}

		baseline += lh
	}
}

func drawString(dst *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawRunStroke imitates an outlined caption by stamping the glyphs in a
// ring of offsets around the fill position.
func drawRunStroke(dst *image.RGBA, face font.Face, s string, x, y, width int, c color.RGBA) {
	for dx := -width; dx <= width; dx++ {
		for dy := -width; dy <= width; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(dst, face, s, x+dx, y+dy, c)
		}
	}
}

// DrawStyledBlock renders multi-line styled text centered on (centerX,
// centerY).
func DrawStyledBlock(dst *image.RGBA, text string, centerX, centerY int, size float64, bold bool, strokeWidth int) {
	if strings.TrimSpace(text) == "" {
		return
	}
	layoutBlock(text, size, bold).draw(dst, centerX, centerY, strokeWidth)
}

const (
	pillPaddingX = 26
	pillPaddingY = 16
	pillRadius   = 18
)

// DrawSubtitle renders a subtitle with its background pill. The pill opacity
// comes from the text's own [bg_opacity] wrapper with defaultOpacity as the
// fallback; at 0 the pill is skipped entirely.
func DrawSubtitle(dst *image.RGBA, text string, centerX, centerY int, size float64, strokeWidth, defaultOpacity int) {
	clean, opacity := styledtext.ParseBackgroundOpacity(text, defaultOpacity)
	if strings.TrimSpace(clean) == "" {
		return
	}

	block := layoutBlock(clean, size, true)

	if opacity > 0 {
		w := block.maxWidth + pillPaddingX*2
		h := block.height() + pillPaddingY*2
		rect := image.Rect(centerX-w/2, centerY-h/2, centerX+w/2, centerY+h/2)
		alpha := uint8(pillBaseAlpha * opacity / 100)
		fillRoundedRect(dst, rect, pillRadius, color.RGBA{0, 0, 0, alpha})
	}

	block.draw(dst, centerX, centerY, strokeWidth)
}

// fillRoundedRect alpha-blends a rounded rectangle onto dst.
func fillRoundedRect(dst *image.RGBA, rect image.Rectangle, radius int, c color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	if radius > rect.Dx()/2 {
		radius = rect.Dx() / 2
	}
	if radius > rect.Dy()/2 {
		radius = rect.Dy() / 2
	}

	r2 := radius * radius
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			// Corner test: distance to the nearest corner circle center.
			cx, cy := x, y
			if x < rect.Min.X+radius {
				cx = rect.Min.X + radius
			} else if x >= rect.Max.X-radius {
				cx = rect.Max.X - radius - 1
			}
			if y < rect.Min.Y+radius {
				cy = rect.Min.Y + radius
			} else if y >= rect.Max.Y-radius {
				cy = rect.Max.Y - radius - 1
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			blendPixel(dst, x, y, c)
		}
	}
}

// blendPixel applies src-over compositing for one pixel.
func blendPixel(dst *image.RGBA, x, y int, c color.RGBA) {
	if c.A == 255 {
		dst.SetRGBA(x, y, c)
		return
	}
	old := dst.RGBAAt(x, y)
	a := int(c.A)
	inv := 255 - a
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8((int(c.R)*a + int(old.R)*inv) / 255),
		G: uint8((int(c.G)*a + int(old.G)*inv) / 255),
		B: uint8((int(c.B)*a + int(old.B)*inv) / 255),
		A: 255,
	})
}

// fillRect paints an opaque rectangle.
func fillRect(dst *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
}
