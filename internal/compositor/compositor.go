package compositor

import (
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/ivlev/shorts2video/internal/template"
	"github.com/ivlev/shorts2video/internal/timeline"
)

var placeholderBG = color.RGBA{24, 24, 28, 255}

// RenderFrame paints one full frame for the given timeline position into
// dst. The active clip is resolved by accumulating effective durations;
// positions past the end keep the last clip active. An empty timeline paints
// a neutral placeholder frame.
//
// RenderFrame is synchronous, side-effects only dst, and never fails:
// data-quality problems degrade inside the template renderers. Both the
// preview driver and the export pipeline go through this exact function,
// which is what makes exported output match the preview.
func RenderFrame(dst *image.RGBA, tl *timeline.Timeline, s *template.Settings, offsetSeconds float64) {
	clip, _ := tl.ActiveClipAt(offsetSeconds)
	if clip == nil {
		renderPlaceholder(dst)
		return
	}

	r, err := template.ForTemplate(s.Template)
	if err != nil {
		// An unknown template ID is a data problem, not a render failure.
		logrus.WithField("template", s.Template).Warn("unknown template, falling back to classic-dark")
		r, _ = template.ForTemplate(template.ClassicDark)
	}

	r.Render(dst, clip, s, tl.Library())
}

// renderPlaceholder fills a neutral frame with a centered label so an empty
// project still previews and exports without failing.
func renderPlaceholder(dst *image.RGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, placeholderBG)
		}
	}
	template.DrawStyledBlock(dst, "no content", b.Dx()/2, b.Dy()/2, 36, false, 0)
}
