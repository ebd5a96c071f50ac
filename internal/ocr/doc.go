// Package ocr reads room labels inside floor plan regions using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). Because
// gosseract needs cgo and the Tesseract headers, it is only compiled with
// the "ocr" build tag:
//
//	go build -tags ocr ./...
//
// Without the tag NewReader returns ErrUnavailable and the rest of the
// program runs unchanged.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr libtesseract-dev
//   - macOS: brew install tesseract
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Region Reading
//
// Each region is cropped with a small margin and scaled up before
// recognition, since room labels are usually a few pixels tall at the
// working resolution. Regions smaller than MinOCRArea are not worth the
// cost and callers should skip them.
package ocr
