package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropRegion extracts the area inside b, grown by padding pixels on every
// side and clipped to the image, optionally rescaled by scale.
//
// A scale of 1 (or anything <= 0) keeps the original resolution; OCR
// engines read small room labels better at 2 or 3.
func CropRegion(img image.Image, b Bounds, padding int, scale float64) (*image.NRGBA, error) {
	if b.X1 >= b.X2 || b.Y1 >= b.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	bounds := img.Bounds()
	rect := image.Rect(b.X1-padding, b.Y1-padding, b.X2+padding, b.Y2+padding).
		Add(bounds.Min).
		Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			b.X1, b.Y1, b.X2, b.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth > 0 && newHeight > 0 {
			cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
		}
	}

	return cropped, nil
}
