package template

import (
	"image"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/timeline"
)

// classicDarkRenderer is the dark caption-over-photo layout: title near the
// top, background image in the middle band, outlined subtitle over a pill,
// CTA at the bottom.
type classicDarkRenderer struct{}

func (r *classicDarkRenderer) Render(dst *image.RGBA, clip *timeline.Clip, s *Settings, lib *asset.Library) {
	st := s.ClassicDark
	if st == nil {
		// Settings/template mismatch degrades to presets instead of failing
		// the frame.
		st = DefaultSettings(ClassicDark).ClassicDark
	}

	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()

	titleY := guidelineY(h, st.TitleGuidelinePct)
	subtitleY := guidelineY(h, st.SubtitleGuidelinePct)
	ctaY := guidelineY(h, st.CTAGuidelinePct)

	// The image band starts below the title block and ends above the
	// subtitle block.
	minY := titleY + int(st.TitleFontSize*lineSpacing)
	maxY := subtitleY - int(st.SubtitleFontSize*lineSpacing)

	drawClipBackground(dst, clip, lib, "#101014", minY, maxY)

	DrawStyledBlock(dst, st.TitleText, w/2, titleY, st.TitleFontSize, true, st.StrokeWidth)
	DrawSubtitle(dst, clip.Subtitle, w/2, subtitleY, st.SubtitleFontSize, st.StrokeWidth, st.SubtitleBGOpacityPct)
	DrawStyledBlock(dst, st.CTAText, w/2, ctaY, st.CTAFontSize, true, st.StrokeWidth)
	drawCTAQR(dst, st.CTALink, ctaY)
}
