package floorplan

import (
	"context"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
	"github.com/arunvnaik/floorplan-sketch/internal/log"
)

// Pipeline is the pure Go Extractor.
//
// Pipeline is safe for concurrent use; decoded inputs are shared through an
// ImageCache.
type Pipeline struct {
	opts  Options
	cache *imaging.ImageCache
}

// NewPipeline creates a Pipeline. Options are used as given; call
// NewExtractor for validation.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{
		opts:  opts,
		cache: imaging.NewImageCache(),
	}
}

// Extract runs both branches of the pipeline on the image at path:
//
//	load -> grayscale -> resize -> Canny -> contours -> overlay
//	                            -> Otsu -> close -> label -> regions -> sketch
//
// The context is checked between stages.
func (p *Pipeline) Extract(ctx context.Context, path string) (*Result, error) {
	gray, err := imaging.LoadGray(p.cache, path, p.opts.Width, p.opts.Height)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %s at %dx%d", path, p.opts.Width, p.opts.Height)

	res := &Result{
		Width:  p.opts.Width,
		Height: p.opts.Height,
		Gray:   gray,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	edges := imaging.Canny(gray, imaging.CannyOptions{
		Low:  p.opts.CannyLow,
		High: p.opts.CannyHigh,
		Blur: p.opts.CannyBlur,
	})
	res.Contours = imaging.FindContours(edges, imaging.ChainApproxSimple)
	res.ContourImage = imaging.DrawContours(gray, res.Contours, p.opts.ContourColor, p.opts.Thickness)
	log.Debugf("found %d contours (%d holes)", len(res.Contours), res.HoleCount())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Threshold = imaging.OtsuThreshold(gray)
	mask := imaging.Binarize(gray, res.Threshold)
	closed, err := imaging.Close(mask, p.opts.ClosingSize)
	if err != nil {
		return nil, err
	}
	log.Debugf("otsu threshold %d", res.Threshold)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res.Labels = imaging.Label(closed)
	res.Regions = imaging.FilterRegions(imaging.RegionProps(res.Labels), p.opts.MinRegionArea)
	res.FloorPlan = imaging.DrawFloorPlan(res.Width, res.Height, res.Regions, p.opts.Thickness)
	log.Debugf("kept %d of %d regions", len(res.Regions), res.Labels.Count)

	return res, nil
}
