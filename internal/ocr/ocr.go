package ocr

import (
	"errors"
	"strings"
)

// DefaultLanguage is the Tesseract language code used when none is given.
const DefaultLanguage = "eng"

// MinOCRArea is the smallest region, in pixels, worth reading.
const MinOCRArea = 400

// Crop settings applied before recognition.
const (
	RegionPadding = 2
	RegionScale   = 3.0
)

// ErrUnavailable is returned when the binary was built without OCR support.
var ErrUnavailable = errors.New("ocr support not compiled in (build with -tags ocr)")

// cleanText collapses whitespace runs, including newlines, to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
