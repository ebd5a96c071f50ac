package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default overlay styling.
const (
	DefaultThickness    = 2
	DefaultContourColor = "#00FF00"
)

// DrawContours converts gray to RGBA and draws every contour on it as a
// closed polyline of the given colour and thickness.
func DrawContours(gray *image.Gray, contours []Contour, c color.Color, thickness int) *image.RGBA {
	b := gray.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), gray, b.Min, draw.Src)

	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	plot := brush(dst.Bounds(), thickness, func(x, y int) { dst.SetRGBA(x, y, rgba) })
	for _, contour := range contours {
		drawPolyline(contour.Points, true, plot)
	}
	return dst
}

// DrawFloorPlan draws one white rectangle per region on a black canvas of
// the given size. Each rectangle runs from (X1, Y1) to (X2, Y2).
func DrawFloorPlan(width, height int, regions []Region, thickness int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	plot := brush(dst.Bounds(), thickness, func(x, y int) { dst.Pix[y*dst.Stride+x] = 255 })
	for _, r := range regions {
		corners := []image.Point{
			{r.Bounds.X1, r.Bounds.Y1},
			{r.Bounds.X2, r.Bounds.Y1},
			{r.Bounds.X2, r.Bounds.Y2},
			{r.Bounds.X1, r.Bounds.Y2},
		}
		drawPolyline(corners, true, plot)
	}
	return dst
}

// Annotate writes each region's label number just inside its top-left
// corner.
func Annotate(dst draw.Image, regions []Region, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
	}
	for _, r := range regions {
		text := strconv.Itoa(r.Label)
		if r.Text != "" {
			text += " " + r.Text
		}
		d.Dot = fixed.Point26_6{X: fixed.I(r.Bounds.X1 + 4), Y: fixed.I(r.Bounds.Y1 + 15)}
		d.DrawString(text)
	}
}

// ColorizeLabels paints every label with a distinct colour on a black
// background.
func ColorizeLabels(lm *LabelMap) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, lm.Width, lm.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	if lm.Count == 0 {
		return dst
	}

	palette := make([]color.RGBA, lm.Count+1)
	for i, c := range colorful.FastHappyPalette(lm.Count) {
		r, g, b := c.RGB255()
		palette[i+1] = color.RGBA{R: r, G: g, B: b, A: 255}
	}

	for y := 0; y < lm.Height; y++ {
		for x := 0; x < lm.Width; x++ {
			if l := lm.Labels[y*lm.Width+x]; l != 0 {
				dst.SetRGBA(x, y, palette[l])
			}
		}
	}
	return dst
}

// ParseColor parses "#RRGGBB" into an opaque colour.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// brush returns a plot function that stamps a thickness x thickness square
// centred on each point, clipped to bounds.
func brush(bounds image.Rectangle, thickness int, set func(x, y int)) func(x, y int) {
	if thickness < 1 {
		thickness = 1
	}
	lo, hi := -(thickness / 2), (thickness-1)/2
	return func(x, y int) {
		for dy := lo; dy <= hi; dy++ {
			for dx := lo; dx <= hi; dx++ {
				p := image.Pt(x+dx, y+dy)
				if p.In(bounds) {
					set(p.X, p.Y)
				}
			}
		}
	}
}

// drawPolyline joins consecutive points with Bresenham lines.
func drawPolyline(points []image.Point, closed bool, plot func(x, y int)) {
	switch len(points) {
	case 0:
		return
	case 1:
		plot(points[0].X, points[0].Y)
		return
	}
	for i := 1; i < len(points); i++ {
		drawLine(points[i-1], points[i], plot)
	}
	if closed {
		drawLine(points[len(points)-1], points[0], plot)
	}
}

func drawLine(a, b image.Point, plot func(x, y int)) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	x, y := a.X, a.Y
	for {
		plot(x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
