package template

import (
	"fmt"
	"image"

	"github.com/ivlev/shorts2video/internal/asset"
	"github.com/ivlev/shorts2video/internal/timeline"
)

// Renderer paints one full frame for a clip. Implementations are pure with
// respect to time: the same clip, settings and assets always produce the
// same pixels, which is what keeps preview and export consistent.
//
// Renderers never fail for data-quality reasons: a missing image, a dangling
// asset reference or malformed subtitle markup degrade to a partial frame.
type Renderer interface {
	Render(dst *image.RGBA, clip *timeline.Clip, s *Settings, lib *asset.Library)
}

// ForTemplate creates the renderer for a template ID.
func ForTemplate(id TemplateID) (Renderer, error) {
	switch id {
	case ClassicDark, "":
		return &classicDarkRenderer{}, nil
	case MobiLight:
		return &mobiLightRenderer{}, nil
	case ExamKorean:
		return &examKoreanRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown template: %s", id)
	}
}

// drawClipBackground fills the frame base color and, for image-backed clips,
// paints the background image into the free vertical band. Returns the band
// rectangle actually covered by the image (empty when nothing was drawn).
func drawClipBackground(dst *image.RGBA, clip *timeline.Clip, lib *asset.Library, base string, minY, maxY int) image.Rectangle {
	fillRect(dst, dst.Bounds(), ParseColor(base))

	if clip.Background == timeline.BackgroundColor {
		fillRect(dst, dst.Bounds(), ParseColor(clip.Color))
		return image.Rectangle{}
	}

	// Image-backed clip. A dangling reference or an undecodable image keeps
	// the base color: no crash, no placeholder flash.
	var img image.Image
	if lib != nil {
		img = lib.Image(clip.ImageID)
	}
	return DrawImageInBand(dst, img, minY, maxY)
}
