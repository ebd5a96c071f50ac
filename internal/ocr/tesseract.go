//go:build ocr
// +build ocr

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
)

// Reader recognises text in image regions. One Tesseract client is reused
// for every call; Reader is safe for concurrent use.
type Reader struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewReader creates a Reader for the given Tesseract language code. An
// empty language selects DefaultLanguage.
func NewReader(language string) (*Reader, error) {
	if language == "" {
		language = DefaultLanguage
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	// Labels are short blocks of text, not full pages.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}

	return &Reader{client: client}, nil
}

// ReadRegion returns the text inside b, with whitespace collapsed to single
// spaces.
//
// The region is cropped with RegionPadding pixels of margin, scaled by
// RegionScale and handed to Tesseract as an in-memory PNG.
func (r *Reader) ReadRegion(img image.Image, b imaging.Bounds) (string, error) {
	cropped, err := imaging.CropRegion(img, b, RegionPadding, RegionScale)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return "", fmt.Errorf("failed to encode region: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := r.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return cleanText(text), nil
}

// Close releases the Tesseract client.
func (r *Reader) Close() error {
	return r.client.Close()
}
