package template

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FitImageInBand computes where an image lands inside the vertical band
// [minY, maxY): the image is scaled (preserving aspect ratio) to the frame
// width, downscaled further if its height exceeds the band, and centered in
// the band. This keeps text and image from colliding regardless of image
// aspect ratio or title length.
func FitImageInBand(frameW, minY, maxY, imgW, imgH int) image.Rectangle {
	if imgW <= 0 || imgH <= 0 || maxY <= minY {
		return image.Rectangle{}
	}

	bandH := maxY - minY
	scale := float64(frameW) / float64(imgW)
	w := frameW
	h := int(float64(imgH) * scale)

	if h > bandH {
		scale = float64(bandH) / float64(imgH)
		h = bandH
		w = int(float64(imgW) * scale)
	}

	x0 := (frameW - w) / 2
	y0 := minY + (bandH-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// DrawImageInBand scales img into the band and returns the rectangle it
// occupied. A nil or zero-dimension image is skipped silently and yields the
// empty rectangle; the caller's frame stays valid.
//
// CatmullRom is used for both preview and export so the two stay
// pixel-identical.
func DrawImageInBand(dst *image.RGBA, img image.Image, minY, maxY int) image.Rectangle {
	if img == nil {
		return image.Rectangle{}
	}
	b := img.Bounds()
	rect := FitImageInBand(dst.Bounds().Dx(), minY, maxY, b.Dx(), b.Dy())
	if rect.Empty() {
		return rect
	}

	xdraw.CatmullRom.Scale(dst, rect, img, b, xdraw.Over, nil)
	return rect
}

// guidelineY converts a percentage-of-frame-height guideline into a pixel
// row.
func guidelineY(frameH int, pct float64) int {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return int(float64(frameH) * pct / 100.0)
}
