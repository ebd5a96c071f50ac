package imaging

import (
	"image"
	"math"
)

// Default Canny thresholds on the 0-255 intensity scale.
const (
	DefaultCannyLow  = 50
	DefaultCannyHigh = 150
)

// CannyOptions tunes Canny.
type CannyOptions struct {
	// Low is the hysteresis low threshold. Gradients below it are discarded.
	Low float64

	// High is the hysteresis high threshold. Gradients above it are strong
	// edges.
	High float64

	// Blur applies the 5x5 Gaussian kernel before computing gradients.
	// The classic OpenCV call does not blur, so this is off by default.
	Blur bool
}

// Canny performs Canny edge detection on a grayscale image and returns a
// binary edge map of the same size: 255 for edge pixels, 0 elsewhere.
//
// # Algorithm
//
//  1. Optional Gaussian blur (5x5, sigma ≈ 1.4)
//
//  2. Gradient computation: 3x3 Sobel operators for X and Y gradients
//     magnitude = |Gx| + |Gy|
//     direction = atan2(Gy, Gx)
//
//  3. Non-maximum suppression: Thin edges to 1-pixel width by keeping only
//     local maxima in the gradient direction
//
//  4. Hysteresis thresholding:
//     - Pixels above High are strong edges (always kept)
//     - Pixels between Low and High are weak edges, kept only if they are
//     8-connected to a strong edge through other kept pixels
//     - Pixels below Low are discarded
//
// Thresholds are on the same scale as the intensities (0-255), so
// Low=50, High=150 reproduces the usual starting point for clean drawings.
func Canny(gray *image.Gray, opts CannyOptions) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return result
	}

	src := make([][]float64, height)
	for y := 0; y < height; y++ {
		src[y] = make([]float64, width)
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < width; x++ {
			src[y][x] = float64(row[x])
		}
	}
	if opts.Blur {
		src = gaussianBlur(src, width, height)
	}

	magnitude, direction := sobel(src, width, height)
	suppressed := nonMaxSuppress(magnitude, direction, width, height)
	hysteresis(suppressed, result, width, height, opts.Low, opts.High)

	return result
}

// sobel computes L1 gradient magnitude and direction with replicated borders.
func sobel(src [][]float64, width, height int) (magnitude, direction [][]float64) {
	sobelX := [][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude = make([][]float64, height)
	direction = make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += src[py][px] * sobelX[ky+1][kx+1]
					gy += src[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Abs(gx) + math.Abs(gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// nonMaxSuppress keeps a pixel only if its magnitude is not smaller than both
// neighbours along the quantised gradient direction. The outermost ring is
// always suppressed.
func nonMaxSuppress(magnitude, direction [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]
			if mag == 0 {
				continue
			}

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			}

			// Strict on one side: of a two-pixel plateau only the first
			// pixel survives.
			if mag > n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}
	return suppressed
}

// hysteresis marks strong pixels and grows them through weak pixels using an
// explicit stack.
func hysteresis(suppressed [][]float64, dst *image.Gray, width, height int, low, high float64) {
	stack := make([]image.Point, 0, 64)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] > high && dst.Pix[y*dst.Stride+x] == 0 {
				dst.Pix[y*dst.Stride+x] = 255
				stack = append(stack, image.Pt(x, y))
			}

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= width || ny >= height {
							continue
						}
						i := ny*dst.Stride + nx
						if dst.Pix[i] != 0 {
							continue
						}
						if suppressed[ny][nx] > low {
							dst.Pix[i] = 255
							stack = append(stack, image.Pt(nx, ny))
						}
					}
				}
			}
		}
	}
}

// gaussianBlur applies a 5x5 Gaussian blur to reduce noise before edge detection.
//
// Uses a standard 5x5 Gaussian kernel with sigma ≈ 1.4:
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
//
// Total kernel sum = 273, used for normalization.
// Border pixels use clamped (replicated) edge values.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [][]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	kernelSum := 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
