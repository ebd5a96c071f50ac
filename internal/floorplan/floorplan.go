package floorplan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
)

// Backend names an Extractor implementation.
type Backend string

// Available backends.
const (
	BackendGo   Backend = "go"
	BackendGoCV Backend = "gocv"
)

// ErrBackendUnavailable is returned by NewExtractor when the requested
// backend was not compiled into this binary.
var ErrBackendUnavailable = errors.New("extraction backend not available in this build")

// Options tunes every stage of the pipeline.
type Options struct {
	// Width and Height are the working resolution. The input is resized to
	// exactly this size.
	Width  int
	Height int

	// CannyLow and CannyHigh are the hysteresis thresholds.
	CannyLow  float64
	CannyHigh float64

	// CannyBlur smooths the image before edge detection.
	CannyBlur bool

	// ClosingSize is the side of the square structuring element.
	ClosingSize int

	// ContourColor and Thickness style the contour overlay. Thickness also
	// applies to floor plan rectangles.
	ContourColor color.RGBA
	Thickness    int

	// MinRegionArea drops smaller regions from the result. 0 keeps all.
	MinRegionArea int
}

// DefaultOptions returns the classic settings: 800x800, Canny 50/150,
// 3x3 closing, green contours of thickness 2.
func DefaultOptions() Options {
	return Options{
		Width:        imaging.DefaultWidth,
		Height:       imaging.DefaultHeight,
		CannyLow:     imaging.DefaultCannyLow,
		CannyHigh:    imaging.DefaultCannyHigh,
		ClosingSize:  imaging.DefaultClosingSize,
		ContourColor: color.RGBA{0, 255, 0, 255},
		Thickness:    imaging.DefaultThickness,
	}
}

// Result holds everything one extraction produces.
type Result struct {
	// Width and Height are the working resolution.
	Width  int
	Height int

	// Threshold is the Otsu level used to binarise Gray.
	Threshold uint8

	// Gray is the resized grayscale input.
	Gray *image.Gray

	// Contours are the borders found in the edge map, with hierarchy.
	Contours []imaging.Contour

	// Regions are the labeled components that passed MinRegionArea.
	Regions []imaging.Region

	// Labels is the full label map, before area filtering.
	Labels *imaging.LabelMap

	// ContourImage is Gray with every contour drawn on it.
	ContourImage *image.RGBA

	// FloorPlan is the sketch: one rectangle per region on black.
	FloorPlan *image.Gray
}

// HoleCount returns the number of hole contours.
func (r *Result) HoleCount() int {
	n := 0
	for _, c := range r.Contours {
		if c.Hole {
			n++
		}
	}
	return n
}

// String renders a one-line summary.
func (r *Result) String() string {
	return fmt.Sprintf("%dx%d threshold=%d contours=%d holes=%d regions=%d",
		r.Width, r.Height, r.Threshold, len(r.Contours), r.HoleCount(), len(r.Regions))
}

// Extractor turns an image file into a floor plan sketch.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Result, error)
}

// NewExtractor returns the Extractor for backend. An empty backend selects
// BackendGo.
func NewExtractor(backend Backend, opts Options) (Extractor, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	switch backend {
	case "", BackendGo:
		return NewPipeline(opts), nil
	case BackendGoCV:
		return newGoCVExtractor(opts)
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}

func (o Options) validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("invalid working size %dx%d", o.Width, o.Height)
	case o.CannyLow < 0 || o.CannyHigh < o.CannyLow:
		return fmt.Errorf("invalid canny thresholds %v/%v", o.CannyLow, o.CannyHigh)
	case o.ClosingSize < 1:
		return fmt.Errorf("invalid closing size %d", o.ClosingSize)
	case o.Thickness < 1:
		return fmt.Errorf("invalid thickness %d", o.Thickness)
	}
	return nil
}
