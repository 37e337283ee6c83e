package template

import (
	"image"
	"image/color"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/timeline"
)

// examKoreanRenderer simulates a printed exam sheet in the style of Korean
// study shorts: paper background, ruled outer border, a header box with the
// subject, a question label next to the content and a CTA slot.
type examKoreanRenderer struct{}

const (
	examBorder    = 16
	examRuleWidth = 3
)

var (
	examPaper = color.RGBA{250, 248, 242, 255}
	examInk   = color.RGBA{40, 38, 34, 255}
)

func (r *examKoreanRenderer) Render(dst *image.RGBA, clip *timeline.Clip, s *Settings, lib *asset.Library) {
	st := s.ExamKorean
	if st == nil {
		st = DefaultSettings(ExamKorean).ExamKorean
	}

	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()

	headerY := guidelineY(h, st.HeaderGuidelinePct)
	subtitleY := guidelineY(h, st.SubtitleGuidelinePct)
	ctaY := guidelineY(h, st.CTAGuidelinePct)

	headerBoxBottom := headerY + int(st.TitleFontSize*lineSpacing)
	minY := headerBoxBottom + examBorder
	maxY := subtitleY - int(st.SubtitleFontSize*lineSpacing)

	fillRect(dst, dst.Bounds(), examPaper)

	if clip.Background == timeline.BackgroundColor {
		inner := image.Rect(examBorder*2, minY, w-examBorder*2, maxY)
		if !inner.Empty() {
			fillRect(dst, inner, ParseColor(clip.Color))
		}
	} else if lib != nil {
		DrawImageInBand(dst, lib.Image(clip.ImageID), minY, maxY)
	}

	// Paper chrome: outer border and header rule, drawn over the image so
	// the sheet framing always stays visible.
	strokeRect(dst, image.Rect(examBorder, examBorder, w-examBorder, h-examBorder), examRuleWidth, examInk)
	fillRect(dst, image.Rect(examBorder, headerBoxBottom, w-examBorder, headerBoxBottom+examRuleWidth), examInk)

	header := st.SubjectText
	if st.QuestionLabel != "" {
		header = st.QuestionLabel + " " + header
	}
	DrawStyledBlock(dst, header, w/2, headerY, st.TitleFontSize, true, st.StrokeWidth)

	DrawSubtitle(dst, clip.Subtitle, w/2, subtitleY, st.SubtitleFontSize, st.StrokeWidth, st.SubtitleBGOpacityPct)
	DrawStyledBlock(dst, st.CTAText, w/2, ctaY, st.CTAFontSize, true, st.StrokeWidth)
	drawCTAQR(dst, st.CTALink, ctaY)
}

// strokeRect draws a rectangle outline with the given line width.
func strokeRect(dst *image.RGBA, rect image.Rectangle, width int, c color.RGBA) {
	fillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), c)
	fillRect(dst, image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), c)
	fillRect(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), c)
	fillRect(dst, image.Rect(rect.Max.X-width, rect.Min.Y, rect.Max.X, rect.Max.Y), c)
}
