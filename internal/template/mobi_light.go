package template

import (
	"image"
	"image/color"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/timeline"
)

// mobiLightRenderer simulates a light mobile-app screen: an accent header
// bar, a rounded content card holding the image, a dark-on-light subtitle
// and a button-like CTA.
type mobiLightRenderer struct{}

const (
	mobiCardMargin  = 28
	mobiCardRadius  = 24
	mobiCardPadding = 18
)

func (r *mobiLightRenderer) Render(dst *image.RGBA, clip *timeline.Clip, s *Settings, lib *asset.Library) {
	st := s.MobiLight
	if st == nil {
		st = DefaultSettings(MobiLight).MobiLight
	}

	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()
	accent := ParseColor(st.AccentColor)

	headerY := guidelineY(h, st.HeaderGuidelinePct)
	subtitleY := guidelineY(h, st.SubtitleGuidelinePct)
	ctaY := guidelineY(h, st.CTAGuidelinePct)

	headerBottom := headerY + int(st.HeaderFontSize*lineSpacing)/2 + 14
	cardTop := headerBottom + mobiCardMargin
	cardBottom := subtitleY - int(st.SubtitleFontSize*lineSpacing) - mobiCardMargin

	minY := cardTop + mobiCardPadding
	maxY := cardBottom - mobiCardPadding

	// Screen background and card chrome are fixed; the clip only decides
	// what is inside the card.
	fillRect(dst, dst.Bounds(), color.RGBA{244, 245, 247, 255})
	fillRect(dst, image.Rect(0, 0, w, headerBottom), color.RGBA{255, 255, 255, 255})
	fillRect(dst, image.Rect(0, headerBottom, w, headerBottom+4), accent)
	DrawStyledBlock(dst, st.HeaderText, w/2, headerY, st.HeaderFontSize, true, st.StrokeWidth)

	if cardBottom > cardTop {
		card := image.Rect(mobiCardMargin, cardTop, w-mobiCardMargin, cardBottom)
		fillRoundedRect(dst, card, mobiCardRadius, color.RGBA{255, 255, 255, 255})
	}

	if clip.Background == timeline.BackgroundColor {
		inner := image.Rect(mobiCardMargin+mobiCardPadding, minY, w-mobiCardMargin-mobiCardPadding, maxY)
		if !inner.Empty() {
			fillRoundedRect(dst, inner, mobiCardRadius/2, ParseColor(clip.Color))
		}
	} else if lib != nil {
		DrawImageInBand(dst, lib.Image(clip.ImageID), minY, maxY)
	}

	DrawSubtitle(dst, clip.Subtitle, w/2, subtitleY, st.SubtitleFontSize, st.StrokeWidth, st.SubtitleBGOpacityPct)

	// CTA styled as an app button.
	if st.CTAText != "" {
		btnW := layoutBlock(st.CTAText, st.CTAFontSize, true).maxWidth + pillPaddingX*2
		btnH := int(st.CTAFontSize*lineSpacing) + pillPaddingY
		btn := image.Rect(w/2-btnW/2, ctaY-btnH/2, w/2+btnW/2, ctaY+btnH/2)
		fillRoundedRect(dst, btn, btnH/2, accent)
		DrawStyledBlock(dst, st.CTAText, w/2, ctaY, st.CTAFontSize, true, 0)
	}
	drawCTAQR(dst, st.CTALink, ctaY)
}
