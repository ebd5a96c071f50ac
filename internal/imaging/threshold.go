package imaging

import (
	"image"
)

// OtsuThreshold picks the intensity t that maximises the inter-class
// variance between pixels <= t and pixels > t.
// https://en.wikipedia.org/wiki/Otsu%27s_method
//
// When several thresholds tie, the lowest one wins. An image with a single
// intensity returns that intensity, so Binarize leaves it all background.
func OtsuThreshold(gray *image.Gray) uint8 {
	histo := intensityHistogram(gray)

	var totalPixels, totalWeightedSum float64
	lowest := -1
	for level, pixels := range histo {
		if pixels > 0 && lowest < 0 {
			lowest = level
		}
		totalPixels += float64(pixels)
		totalWeightedSum += float64(level * pixels)
	}
	if lowest < 0 {
		return 0
	}

	var (
		// Best threshold and inter-class variance so far.
		bestThreshold = uint8(lowest)
		bestVariance  float64

		// Pixels at or below the candidate threshold.
		bgPixels      float64
		bgWeightedSum float64
	)
	for level, pixels := range histo {
		bgPixels += float64(pixels)
		bgWeightedSum += float64(level * pixels)

		fgPixels := totalPixels - bgPixels
		// Every pixel is on one side so far; no split to score.
		if bgPixels == 0 || fgPixels == 0 {
			continue
		}

		bgMean := bgWeightedSum / bgPixels
		fgMean := (totalWeightedSum - bgWeightedSum) / fgPixels

		diff := bgMean - fgMean
		variance := bgPixels * fgPixels * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			bestThreshold = uint8(level)
		}
	}

	return bestThreshold
}

// Binarize returns a mask where pixels brighter than t are 255 and all
// others are 0.
func Binarize(gray *image.Gray, t uint8) *image.Gray {
	b := gray.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := gray.Pix[y*gray.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			if srcRow[x] > t {
				dstRow[x] = 255
			}
		}
	}
	return dst
}

func intensityHistogram(gray *image.Gray) [256]int {
	var histo [256]int

	b := gray.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			histo[row[x]]++
		}
	}

	return histo
}
