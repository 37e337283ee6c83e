package asset

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// LoadImage decodes an image file for use as a clip background. PDF inputs
// are rasterized via MuPDF: the first page becomes the background image,
// which lets scanned pages and exported slides be dropped straight into the
// image bin.
func LoadImage(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDFPage(path, 0)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func loadPDFPage(path string, page int) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}
	if page >= doc.NumPage() {
		page = 0
	}
	return doc.ImageDPI(page, 150)
}

// IsImagePath reports whether the file extension belongs to a supported
// background source.
func IsImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".pdf":
		return true
	}
	return false
}

// IsAudioPath reports whether the file extension belongs to a supported
// audio source.
func IsAudioPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3", ".flac", ".m4a", ".ogg", ".aac":
		return true
	}
	return false
}
