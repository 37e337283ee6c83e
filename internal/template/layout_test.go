package template

import (
	"image"
	"testing"
)

func TestFitImageInBandWideImage(t *testing.T) {
	// Wide image scales to the frame width and centers vertically.
	rect := FitImageInBand(720, 200, 1000, 1440, 720)
	if rect.Dx() != 720 {
		t.Errorf("Expected full width 720, got %d", rect.Dx())
	}
	if rect.Dy() != 360 {
		t.Errorf("Expected height 360, got %d", rect.Dy())
	}
	wantY := 200 + (800-360)/2
	if rect.Min.Y != wantY {
		t.Errorf("Expected top %d, got %d", wantY, rect.Min.Y)
	}
}

func TestFitImageInBandTallImage(t *testing.T) {
	// Tall image must downscale to the band height instead of invading the
	// text regions.
	rect := FitImageInBand(720, 200, 600, 720, 2000)
	if rect.Dy() != 400 {
		t.Errorf("Expected band-limited height 400, got %d", rect.Dy())
	}
	if rect.Min.Y < 200 || rect.Max.Y > 600 {
		t.Errorf("Image escaped the band: %v", rect)
	}
	// Aspect ratio preserved: width shrinks with the height.
	wantW := int(float64(720) * 400.0 / 2000.0)
	if rect.Dx() != wantW {
		t.Errorf("Expected width %d, got %d", wantW, rect.Dx())
	}
}

func TestFitImageInBandDegenerate(t *testing.T) {
	if r := FitImageInBand(720, 200, 1000, 0, 0); !r.Empty() {
		t.Errorf("Zero-dimension image should yield empty rect, got %v", r)
	}
	if r := FitImageInBand(720, 500, 400, 100, 100); !r.Empty() {
		t.Errorf("Inverted band should yield empty rect, got %v", r)
	}
}

func TestDrawImageInBandNilImage(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	if r := DrawImageInBand(dst, nil, 10, 90); !r.Empty() {
		t.Errorf("Nil image should draw nothing, got %v", r)
	}
}

func TestGuidelineY(t *testing.T) {
	if y := guidelineY(1280, 50); y != 640 {
		t.Errorf("Expected 640, got %d", y)
	}
	if y := guidelineY(1280, -10); y != 0 {
		t.Errorf("Negative pct should clamp to 0, got %d", y)
	}
	if y := guidelineY(1280, 150); y != 1280 {
		t.Errorf("Overshoot pct should clamp to frame height, got %d", y)
	}
}
