package imaging

import (
	"image"
)

// LabelMap is the output of connected-component labeling. Background pixels
// carry label 0; components are numbered 1..Count.
type LabelMap struct {
	Width  int
	Height int
	Count  int

	// Labels holds one label per pixel in row-major order.
	Labels []int32
}

// At returns the label of pixel (x, y), or 0 outside the map.
func (m *LabelMap) At(x, y int) int {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return int(m.Labels[y*m.Width+x])
}

// Label assigns a label to every 8-connected group of non-zero pixels in
// mask. Labels follow raster order of each component's first pixel, so the
// component containing the top-most, left-most foreground pixel is 1.
func Label(mask *image.Gray) *LabelMap {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()
	lm := &LabelMap{
		Width:  width,
		Height: height,
		Labels: make([]int32, width*height),
	}

	stack := make([]image.Point, 0, 256)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.Pix[y*mask.Stride+x] == 0 || lm.Labels[y*width+x] != 0 {
				continue
			}

			lm.Count++
			label := int32(lm.Count)
			lm.Labels[y*width+x] = label
			stack = append(stack[:0], image.Pt(x, y))

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.X+dx, p.Y+dy
						if nx < 0 || ny < 0 || nx >= width || ny >= height {
							continue
						}
						if mask.Pix[ny*mask.Stride+nx] == 0 || lm.Labels[ny*width+nx] != 0 {
							continue
						}
						lm.Labels[ny*width+nx] = label
						stack = append(stack, image.Pt(nx, ny))
					}
				}
			}
		}
	}

	return lm
}
