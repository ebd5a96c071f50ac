//go:build !ocr
// +build !ocr

package ocr

import (
	"image"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
)

// Reader is a placeholder in builds without OCR support.
type Reader struct{}

// NewReader always fails with ErrUnavailable.
func NewReader(string) (*Reader, error) {
	return nil, ErrUnavailable
}

// ReadRegion always fails with ErrUnavailable.
func (*Reader) ReadRegion(image.Image, imaging.Bounds) (string, error) {
	return "", ErrUnavailable
}

// Close does nothing.
func (*Reader) Close() error {
	return nil
}
