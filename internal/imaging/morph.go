package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// DefaultClosingSize is the side of the square structuring element used to
// close small gaps in the thresholded mask.
const DefaultClosingSize = 3

// Close applies a morphological closing (dilation followed by erosion) with
// a size x size square structuring element. Closing fuses narrow breaks and
// fills holes smaller than the element. Borders are replicated, so regions
// touching the frame are not eroded away.
func Close(mask *image.Gray, size int) (*image.Gray, error) {
	if size < 1 {
		return nil, fmt.Errorf("structuring element size must be positive, got %d", size)
	}
	if size == 1 {
		return cloneGray(mask), nil
	}

	// bild filters over a (2r+1)-wide square window with edge extension.
	r := float64(size-1) / 2
	closed := effect.Erode(effect.Dilate(mask, r), r)
	return rgbaToMask(closed), nil
}

// rgbaToMask keeps the red channel, which carries the mask value after a
// gray image goes through bild.
func rgbaToMask(src *image.RGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}

func cloneGray(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], src.Pix[y*src.Stride:])
	}
	return dst
}
