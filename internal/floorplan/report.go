package floorplan

import (
	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
)

// Report is the JSON summary of one extraction.
type Report struct {
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	Threshold    uint8            `json:"threshold"`
	ContourCount int              `json:"contour_count"`
	HoleCount    int              `json:"hole_count"`
	RegionCount  int              `json:"region_count"`
	Regions      []imaging.Region `json:"regions"`
	Contours     []ContourReport  `json:"contours"`
}

// ContourReport describes one contour.
type ContourReport struct {
	// Index is the contour's position in the result, referenced by Parent.
	Index int `json:"index"`

	Points []Point `json:"points"`
	Hole   bool    `json:"hole"`

	// Parent is the index of the enclosing contour, or -1.
	Parent int `json:"parent"`
}

// Point is a pixel position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewReport summarises res.
func NewReport(res *Result) *Report {
	r := &Report{
		Width:        res.Width,
		Height:       res.Height,
		Threshold:    res.Threshold,
		ContourCount: len(res.Contours),
		HoleCount:    res.HoleCount(),
		RegionCount:  len(res.Regions),
		Regions:      res.Regions,
		Contours:     make([]ContourReport, len(res.Contours)),
	}
	if r.Regions == nil {
		r.Regions = []imaging.Region{}
	}
	for i, c := range res.Contours {
		points := make([]Point, len(c.Points))
		for j, p := range c.Points {
			points[j] = Point{X: p.X, Y: p.Y}
		}
		r.Contours[i] = ContourReport{
			Index:  i,
			Points: points,
			Hole:   c.Hole,
			Parent: c.Hierarchy.Parent,
		}
	}
	return r
}
