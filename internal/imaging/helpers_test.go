package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createInMemoryImage creates a solid color image.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createTestImage writes a solid color PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")
	writePNG(t, path, createInMemoryImage(width, height, c))
	return path
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

// grayFromRows builds a mask from strings where '#' is 255 and anything
// else is 0.
func grayFromRows(rows ...string) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				g.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return g
}

// solidGray returns a gray image filled with v.
func solidGray(width, height int, v uint8) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, width, height))
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// fillRect sets every pixel of r in g to v.
func fillRect(g *image.Gray, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// floorPlanGray draws a 100x100 white sheet with a 4px black outer wall and
// one interior wall splitting it into two rooms.
func floorPlanGray() *image.Gray {
	g := solidGray(100, 100, 255)
	fillRect(g, image.Rect(10, 10, 90, 14), 0)
	fillRect(g, image.Rect(10, 86, 90, 90), 0)
	fillRect(g, image.Rect(10, 10, 14, 90), 0)
	fillRect(g, image.Rect(86, 10, 90, 90), 0)
	fillRect(g, image.Rect(48, 10, 52, 90), 0)
	return g
}

func countNonZero(g *image.Gray) int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
