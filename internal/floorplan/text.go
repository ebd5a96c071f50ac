package floorplan

import (
	"context"
	"image"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
	"github.com/arunvnaik/floorplan-sketch/internal/log"
)

// TextReader reads the text inside one box of an image.
type TextReader interface {
	ReadRegion(img image.Image, b imaging.Bounds) (string, error)
}

// ReadRegionText fills Region.Text for every region of at least minArea
// pixels using the working grayscale image. A failed region is logged and
// skipped; only context cancellation stops the loop.
func ReadRegionText(ctx context.Context, res *Result, r TextReader, minArea int) error {
	read := 0
	for i := range res.Regions {
		if err := ctx.Err(); err != nil {
			return err
		}
		region := &res.Regions[i]
		if region.Area < minArea {
			continue
		}
		text, err := r.ReadRegion(res.Gray, region.Bounds)
		if err != nil {
			log.Warnf("text in region %d: %v", region.Label, err)
			continue
		}
		region.Text = text
		if text != "" {
			read++
		}
	}
	log.Debugf("read text in %d regions", read)
	return nil
}
