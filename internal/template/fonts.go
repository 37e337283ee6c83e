package template

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Embedded Go fonts keep preview and export pixel-identical on every host:
// no system font lookup is involved. Template presets stay within these
// faces' glyph coverage.
// TODO: bundle a CJK face so projects can use Hangul text in the exam-korean
// slots.
var (
	fontOnce    sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font

	faceMu    sync.Mutex
	faceCache = make(map[faceKey]font.Face)
)

type faceKey struct {
	bold bool
	size float64
}

func loadFonts() {
	var err error
	regularFont, err = opentype.Parse(goregular.TTF)
	if err != nil {
		panic("template: embedded regular font failed to parse: " + err.Error())
	}
	boldFont, err = opentype.Parse(gobold.TTF)
	if err != nil {
		panic("template: embedded bold font failed to parse: " + err.Error())
	}
}

// Face returns a cached font face for the given size. Faces are shared and
// kept for the lifetime of the process; only a handful of sizes exist per
// template.
func Face(size float64, bold bool) font.Face {
	fontOnce.Do(loadFonts)

	if size <= 0 {
		size = 16
	}

	key := faceKey{bold: bold, size: size}
	faceMu.Lock()
	defer faceMu.Unlock()

	if f, ok := faceCache[key]; ok {
		return f
	}

	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		// Parsing succeeded above, so face creation cannot realistically
		// fail; fall back to an empty face rather than crash a render.
		return nil
	}
	faceCache[key] = f
	return f
}
