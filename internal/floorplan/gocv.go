//go:build gocv
// +build gocv

package floorplan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"gocv.io/x/gocv"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
	"github.com/arunvnaik/floorplan-sketch/internal/log"
)

// Column order of the stats matrix from ConnectedComponentsWithStats.
const (
	statLeft = iota
	statTop
	statWidth
	statHeight
	statArea
)

type gocvExtractor struct {
	opts Options
}

func newGoCVExtractor(opts Options) (Extractor, error) {
	return &gocvExtractor{opts: opts}, nil
}

// Extract runs the pipeline with OpenCV doing the pixel work. Results are
// converted to the same types the pure Go pipeline returns.
func (e *gocvExtractor) Extract(ctx context.Context, path string) (*Result, error) {
	src := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer src.Close()
	if src.Empty() {
		return nil, &imaging.LoadError{Path: path, Err: errors.New("opencv could not read image")}
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.Resize(src, &gray, image.Pt(e.opts.Width, e.opts.Height), 0, 0, gocv.InterpolationLinear)
	log.Debugf("loaded %s at %dx%d (opencv)", path, e.opts.Width, e.opts.Height)

	grayImg, err := matToGray(gray)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Width:  e.opts.Width,
		Height: e.opts.Height,
		Gray:   grayImg,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.contours(gray, res); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.regions(gray, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *gocvExtractor) contours(gray gocv.Mat, res *Result) error {
	input := gray
	if e.opts.CannyBlur {
		blurred := gocv.NewMat()
		defer blurred.Close()
		gocv.GaussianBlur(gray, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)
		input = blurred
	}

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(input, &edges, float32(e.opts.CannyLow), float32(e.opts.CannyHigh))

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	contours := gocv.FindContoursWithParams(edges, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	overlay := gocv.NewMat()
	defer overlay.Close()
	gocv.CvtColor(gray, &overlay, gocv.ColorGrayToBGR)
	gocv.DrawContours(&overlay, contours, -1, e.opts.ContourColor, e.opts.Thickness)

	res.Contours = make([]imaging.Contour, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		h := hierarchy.GetVeciAt(0, i)
		res.Contours[i] = imaging.Contour{
			Points: contours.At(i).ToPoints(),
			Hierarchy: imaging.Hierarchy{
				Next:       int(h[0]),
				Prev:       int(h[1]),
				FirstChild: int(h[2]),
				Parent:     int(h[3]),
			},
		}
	}
	// OpenCV does not flag holes; in a tree they sit at odd depths.
	for i := range res.Contours {
		depth := 0
		for p := res.Contours[i].Hierarchy.Parent; p >= 0; p = res.Contours[p].Hierarchy.Parent {
			depth++
		}
		res.Contours[i].Hole = depth%2 == 1
	}
	log.Debugf("found %d contours (%d holes)", len(res.Contours), res.HoleCount())

	img, err := overlay.ToImage()
	if err != nil {
		return fmt.Errorf("failed to convert contour image: %w", err)
	}
	res.ContourImage = toRGBA(img)
	return nil
}

func (e *gocvExtractor) regions(gray gocv.Mat, res *Result) error {
	binary := gocv.NewMat()
	defer binary.Close()
	t := gocv.Threshold(gray, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	res.Threshold = uint8(math.Round(float64(t)))
	log.Debugf("otsu threshold %d", res.Threshold)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(e.opts.ClosingSize, e.opts.ClosingSize))
	defer kernel.Close()
	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(binary, &closed, gocv.MorphClose, kernel)

	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()
	n := gocv.ConnectedComponentsWithStats(closed, &labels, &stats, &centroids)

	if labels.Rows() != res.Height || labels.Cols() != res.Width {
		return fmt.Errorf("label map is %dx%d, want %dx%d", labels.Cols(), labels.Rows(), res.Width, res.Height)
	}
	data := make([]int32, res.Width*res.Height)
	for y := 0; y < res.Height; y++ {
		for x := 0; x < res.Width; x++ {
			data[y*res.Width+x] = labels.GetIntAt(y, x)
		}
	}
	res.Labels = &imaging.LabelMap{
		Width:  res.Width,
		Height: res.Height,
		Count:  n - 1,
		Labels: data,
	}

	// Row 0 is the background.
	regions := make([]imaging.Region, 0, n)
	for l := 1; l < n; l++ {
		x, y := int(stats.GetIntAt(l, statLeft)), int(stats.GetIntAt(l, statTop))
		regions = append(regions, imaging.Region{
			Label: l,
			Bounds: imaging.Bounds{
				X1: x,
				Y1: y,
				X2: x + int(stats.GetIntAt(l, statWidth)),
				Y2: y + int(stats.GetIntAt(l, statHeight)),
			},
			Area: int(stats.GetIntAt(l, statArea)),
			Centroid: imaging.Centroid{
				X: math.Round(centroids.GetDoubleAt(l, 0)*100) / 100,
				Y: math.Round(centroids.GetDoubleAt(l, 1)*100) / 100,
			},
		})
	}
	res.Regions = imaging.FilterRegions(regions, e.opts.MinRegionArea)
	log.Debugf("kept %d of %d regions", len(res.Regions), n-1)

	canvas := gocv.Zeros(res.Height, res.Width, gocv.MatTypeCV8U)
	defer canvas.Close()
	white := color.RGBA{255, 255, 255, 0}
	for _, r := range res.Regions {
		rect := image.Rect(r.Bounds.X1, r.Bounds.Y1, r.Bounds.X2, r.Bounds.Y2)
		gocv.Rectangle(&canvas, rect, white, e.opts.Thickness)
	}

	plan, err := matToGray(canvas)
	if err != nil {
		return err
	}
	res.FloorPlan = plan
	return nil
}

func matToGray(m gocv.Mat) (*image.Gray, error) {
	img, err := m.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	if g, ok := img.(*image.Gray); ok {
		return g, nil
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
