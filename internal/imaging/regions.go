package imaging

import (
	"math"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive), so Width = X2 - X1.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Width returns X2 - X1.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Centroid is the mean pixel position of a region.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Region summarises one labeled component.
type Region struct {
	// Label is the component label in the LabelMap (1-based).
	Label int `json:"label"`

	// Bounds is the bounding box, max edges exclusive.
	Bounds Bounds `json:"bounds"`

	// Area is the number of pixels carrying this label.
	Area int `json:"area"`

	// Centroid is rounded to two decimals.
	Centroid Centroid `json:"centroid"`

	// Text holds any room label read inside Bounds. Empty unless OCR ran.
	Text string `json:"text,omitempty"`
}

// BBox returns the box as (minRow, minCol, maxRow, maxCol), max exclusive.
func (r Region) BBox() (minRow, minCol, maxRow, maxCol int) {
	return r.Bounds.Y1, r.Bounds.X1, r.Bounds.Y2, r.Bounds.X2
}

// RegionProps measures every label in lm, in ascending label order.
func RegionProps(lm *LabelMap) []Region {
	if lm.Count == 0 {
		return []Region{}
	}

	type acc struct {
		minX, minY, maxX, maxY int
		area                   int
		sumX, sumY             float64
	}
	accs := make([]acc, lm.Count+1)
	for i := range accs {
		accs[i] = acc{minX: math.MaxInt, minY: math.MaxInt, maxX: -1, maxY: -1}
	}

	for y := 0; y < lm.Height; y++ {
		row := lm.Labels[y*lm.Width : (y+1)*lm.Width]
		for x, l := range row {
			if l == 0 {
				continue
			}
			a := &accs[l]
			if x < a.minX {
				a.minX = x
			}
			if x > a.maxX {
				a.maxX = x
			}
			if y < a.minY {
				a.minY = y
			}
			if y > a.maxY {
				a.maxY = y
			}
			a.area++
			a.sumX += float64(x)
			a.sumY += float64(y)
		}
	}

	regions := make([]Region, 0, lm.Count)
	for l := 1; l <= lm.Count; l++ {
		a := accs[l]
		if a.area == 0 {
			continue
		}
		regions = append(regions, Region{
			Label: l,
			Bounds: Bounds{
				X1: a.minX,
				Y1: a.minY,
				X2: a.maxX + 1,
				Y2: a.maxY + 1,
			},
			Area: a.area,
			Centroid: Centroid{
				X: math.Round(a.sumX/float64(a.area)*100) / 100,
				Y: math.Round(a.sumY/float64(a.area)*100) / 100,
			},
		})
	}
	return regions
}

// FilterRegions drops regions smaller than minArea pixels. A minArea of 0
// or less keeps everything.
func FilterRegions(regions []Region, minArea int) []Region {
	if minArea <= 0 {
		return regions
	}
	kept := make([]Region, 0, len(regions))
	for _, r := range regions {
		if r.Area >= minArea {
			kept = append(kept, r)
		}
	}
	return kept
}
