package system

import (
	"image"
	"testing"
)

func TestGetImageBounds(t *testing.T) {
	rect := image.Rect(0, 0, 90, 160)
	img := GetImage(rect)
	if img == nil || img.Bounds() != rect {
		t.Fatalf("Ожидался буфер %v, получено %v", rect, img.Bounds())
	}
	PutImage(img)

	// Другой размер — другой пул, границы не должны пересекаться.
	other := GetImage(image.Rect(0, 0, 720, 1280))
	if other.Bounds().Dx() != 720 || other.Bounds().Dy() != 1280 {
		t.Errorf("Неверные границы буфера: %v", other.Bounds())
	}
	PutImage(other)
}

func TestPutImageNil(t *testing.T) {
	PutImage(nil) // не должно паниковать
}
