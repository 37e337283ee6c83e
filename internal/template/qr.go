package template

import (
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/sirupsen/logrus"
)

const qrSize = 96
const qrMargin = 24

// drawCTAQR paints a QR code for the CTA link into the bottom-right corner,
// above the CTA guideline. An empty link or an encode failure draws nothing.
func drawCTAQR(dst *image.RGBA, link string, ctaY int) {
	if link == "" {
		return
	}

	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		logrus.WithField("link", link).Warn("QR encode failed, CTA link skipped")
		return
	}
	q.DisableBorder = true

	img := q.Image(qrSize)
	x0 := dst.Bounds().Dx() - qrSize - qrMargin
	y0 := ctaY - qrSize - qrMargin
	if y0 < 0 {
		y0 = qrMargin
	}
	rect := image.Rect(x0, y0, x0+qrSize, y0+qrSize)
	draw.Draw(dst, rect, img, img.Bounds().Min, draw.Over)
}
