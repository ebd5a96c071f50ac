package imaging

import (
	"image"
)

// ChainApprox selects how border points are stored.
type ChainApprox int

const (
	// ChainApproxNone keeps every border pixel.
	ChainApproxNone ChainApprox = iota

	// ChainApproxSimple compresses horizontal, vertical and diagonal runs
	// to their end points, so an axis-aligned rectangle has four points.
	ChainApproxSimple
)

// Hierarchy links a contour to its neighbours in the containment tree.
// Every field is a contour index or -1.
type Hierarchy struct {
	Next       int `json:"next"`
	Prev       int `json:"prev"`
	FirstChild int `json:"first_child"`
	Parent     int `json:"parent"`
}

// Contour is one border of a foreground component.
type Contour struct {
	// Points lists the border in tracing order.
	Points []image.Point

	// Hole is true for a border between a component and a hole inside it.
	Hole bool

	Hierarchy Hierarchy
}

// BoundingRect returns the smallest rectangle containing every point.
func (c Contour) BoundingRect() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c.Points[0], Max: c.Points[0].Add(image.Pt(1, 1))}
	for _, p := range c.Points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// neighbours in clockwise order (as displayed, y down) starting east.
var neighbours = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

func directionOf(from, to image.Point) int {
	d := to.Sub(from)
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return -1
}

// FindContours retrieves every outer and hole border of the non-zero pixels
// in mask and arranges them in a full containment tree, using the border
// following algorithm of Suzuki and Abe (1985).
//
// The image is treated as if surrounded by a one-pixel background frame, so
// components touching the edge still get closed borders. Contours are
// returned in the order their starting pixel is met in a raster scan.
func FindContours(mask *image.Gray, approx ChainApprox) []Contour {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()
	stride := width + 2

	// f holds 1 for unvisited foreground, ±NBD once a border passes through.
	f := make([]int32, stride*(height+2))
	for y := 0; y < height; y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < width; x++ {
			if row[x] != 0 {
				f[(y+1)*stride+x+1] = 1
			}
		}
	}

	// Border 1 is the frame: a hole border with no parent.
	isHole := []bool{false, true}
	parentOf := []int32{0, 0}
	nbd := int32(1)

	contours := make([]Contour, 0)
	for y := 1; y <= height; y++ {
		lnbd := int32(1)
		for x := 1; x <= width; x++ {
			idx := y*stride + x
			fij := f[idx]

			var from image.Point
			hole, start := false, false
			switch {
			case fij == 1 && f[idx-1] == 0:
				start, hole = true, false
				from = image.Pt(x-1, y)
			case fij >= 1 && f[idx+1] == 0:
				start, hole = true, true
				from = image.Pt(x+1, y)
				if fij > 1 {
					lnbd = fij
				}
			}

			if start {
				nbd++
				parent := lnbd
				if hole == isHole[lnbd] {
					parent = parentOf[lnbd]
				}
				isHole = append(isHole, hole)
				parentOf = append(parentOf, parent)

				points := followBorder(f, stride, image.Pt(x, y), from, nbd)
				for i := range points {
					points[i] = points[i].Sub(image.Pt(1, 1))
				}
				if approx == ChainApproxSimple {
					points = compressChain(points)
				}
				// Border numbers start at 2 for the first contour; the frame
				// (1) and "none" (0) both map to -1.
				parentIdx := -1
				if parent >= 2 {
					parentIdx = int(parent) - 2
				}
				contours = append(contours, Contour{
					Points:    points,
					Hole:      hole,
					Hierarchy: Hierarchy{Next: -1, Prev: -1, FirstChild: -1, Parent: parentIdx},
				})
			}

			if v := f[idx]; v != 1 && v != 0 {
				if v < 0 {
					v = -v
				}
				lnbd = v
			}
		}
	}

	linkSiblings(contours)
	return contours
}

// followBorder traces one border starting at start, whose background
// neighbour is from, labelling visited pixels with nbd. Coordinates are in
// the padded grid.
func followBorder(f []int32, stride int, start, from image.Point, nbd int32) []image.Point {
	at := func(p image.Point) int32 { return f[p.Y*stride+p.X] }
	set := func(p image.Point, v int32) { f[p.Y*stride+p.X] = v }

	// Look clockwise around start for the first foreground neighbour.
	d0 := directionOf(start, from)
	first := -1
	for k := 0; k < 8; k++ {
		d := (d0 + k) % 8
		if at(start.Add(neighbours[d])) != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		// Isolated pixel.
		set(start, -nbd)
		return []image.Point{start}
	}

	p1 := start.Add(neighbours[first])
	prev, cur := p1, start
	points := []image.Point{start}
	for {
		// Counter-clockwise around cur, starting just after prev.
		d := directionOf(cur, prev)
		eastClear := false
		var next image.Point
		for k := 1; k <= 8; k++ {
			dd := (d - k + 8) % 8
			q := cur.Add(neighbours[dd])
			if at(q) != 0 {
				next = q
				break
			}
			if dd == 0 {
				eastClear = true
			}
		}

		if eastClear {
			set(cur, -nbd)
		} else if at(cur) == 1 {
			set(cur, nbd)
		}

		if next == start && cur == p1 {
			break
		}
		prev, cur = cur, next
		points = append(points, cur)
	}
	return points
}

// compressChain keeps only the points where the step direction changes.
// The first point is always kept.
func compressChain(points []image.Point) []image.Point {
	n := len(points)
	if n <= 2 {
		return points
	}
	out := make([]image.Point, 0, n/2+1)
	for k := 0; k < n; k++ {
		prev := points[(k-1+n)%n]
		cur := points[k]
		next := points[(k+1)%n]
		if k == 0 || cur.Sub(prev) != next.Sub(cur) {
			out = append(out, cur)
		}
	}
	return out
}

// linkSiblings fills Next, Prev and FirstChild from Parent.
func linkSiblings(contours []Contour) {
	lastChild := make(map[int]int)
	for i := range contours {
		p := contours[i].Hierarchy.Parent
		if last, ok := lastChild[p]; ok {
			contours[last].Hierarchy.Next = i
			contours[i].Hierarchy.Prev = last
		} else if p >= 0 {
			contours[p].Hierarchy.FirstChild = i
		}
		lastChild[p] = i
	}
}
