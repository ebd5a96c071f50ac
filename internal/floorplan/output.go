package floorplan

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
	"github.com/arunvnaik/floorplan-sketch/internal/log"
)

// Output file names inside the output directory.
const (
	ContourFile   = "contours.png"
	FloorPlanFile = "floorplan.png"
	LabelsFile    = "labels.png"
	ReportFile    = "report.json"
)

// OutputOptions selects which files WriteOutputs produces. The contour
// overlay and floor plan are always written.
type OutputOptions struct {
	// Dir is created if missing.
	Dir string

	// Annotate writes region numbers (and any OCR text) onto the floor plan.
	Annotate bool

	// LabelMap also writes a colourised label image.
	LabelMap bool

	// Report also writes a JSON summary.
	Report bool
}

// WriteOutputs writes res into o.Dir and returns the paths written, in
// order.
func WriteOutputs(res *Result, o OutputOptions) ([]string, error) {
	if err := os.MkdirAll(o.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	save := func(name string, img image.Image) error {
		path := filepath.Join(o.Dir, name)
		if err := imaging.Save(path, img); err != nil {
			return err
		}
		log.Debugf("wrote %s", path)
		written = append(written, path)
		return nil
	}

	if err := save(ContourFile, res.ContourImage); err != nil {
		return written, err
	}

	var plan draw.Image = res.FloorPlan
	if o.Annotate {
		annotated := image.NewGray(res.FloorPlan.Bounds())
		copy(annotated.Pix, res.FloorPlan.Pix)
		imaging.Annotate(annotated, res.Regions, color.White)
		plan = annotated
	}
	if err := save(FloorPlanFile, plan); err != nil {
		return written, err
	}

	if o.LabelMap {
		if err := save(LabelsFile, imaging.ColorizeLabels(res.Labels)); err != nil {
			return written, err
		}
	}

	if o.Report {
		path := filepath.Join(o.Dir, ReportFile)
		if err := writeReport(path, NewReport(res)); err != nil {
			return written, err
		}
		log.Debugf("wrote %s", path)
		written = append(written, path)
	}

	return written, nil
}

func writeReport(path string, r *Report) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
