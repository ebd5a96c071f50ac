// Package config assembles run settings from a .env file, FLOORPLAN_*
// environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/arunvnaik/floorplan-sketch/internal/floorplan"
	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
	"github.com/arunvnaik/floorplan-sketch/internal/log"
	"github.com/arunvnaik/floorplan-sketch/internal/ocr"
)

// ErrInvalid is wrapped by every configuration error.
var ErrInvalid = errors.New("invalid configuration")

// Environment variable names.
const (
	EnvInput         = "FLOORPLAN_INPUT"
	EnvOutputDir     = "FLOORPLAN_OUTPUT_DIR"
	EnvWidth         = "FLOORPLAN_WIDTH"
	EnvHeight        = "FLOORPLAN_HEIGHT"
	EnvCannyLow      = "FLOORPLAN_CANNY_LOW"
	EnvCannyHigh     = "FLOORPLAN_CANNY_HIGH"
	EnvCannyBlur     = "FLOORPLAN_CANNY_BLUR"
	EnvClosingSize   = "FLOORPLAN_CLOSING_SIZE"
	EnvContourColor  = "FLOORPLAN_CONTOUR_COLOR"
	EnvThickness     = "FLOORPLAN_THICKNESS"
	EnvMinRegionArea = "FLOORPLAN_MIN_REGION_AREA"
	EnvBackend       = "FLOORPLAN_BACKEND"
	EnvAnnotate      = "FLOORPLAN_ANNOTATE"
	EnvLabelMap      = "FLOORPLAN_LABEL_MAP"
	EnvReport        = "FLOORPLAN_REPORT"
	EnvOCR           = "FLOORPLAN_OCR"
	EnvOCRLanguage   = "FLOORPLAN_OCR_LANG"
	EnvLogLevel      = "FLOORPLAN_LOG_LEVEL"
)

// Config holds every setting of one run.
type Config struct {
	Input     string
	OutputDir string

	Width  int
	Height int

	CannyLow  float64
	CannyHigh float64
	CannyBlur bool

	ClosingSize   int
	ContourColor  string
	Thickness     int
	MinRegionArea int

	Backend string

	Annotate bool
	LabelMap bool
	Report   bool

	OCR         bool
	OCRLanguage string

	LogLevel string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutputDir:    ".",
		Width:        imaging.DefaultWidth,
		Height:       imaging.DefaultHeight,
		CannyLow:     imaging.DefaultCannyLow,
		CannyHigh:    imaging.DefaultCannyHigh,
		ClosingSize:  imaging.DefaultClosingSize,
		ContourColor: imaging.DefaultContourColor,
		Thickness:    imaging.DefaultThickness,
		Backend:      string(floorplan.BackendGo),
		OCRLanguage:  ocr.DefaultLanguage,
		LogLevel:     log.LevelInfo,
	}
}

// Load builds a Config from defaults, the given .env files (".env" when
// none are named), the process environment and args. Missing .env files
// are ignored. Variables already set in the environment win over .env
// entries. The result is not validated.
//
// flag.ErrHelp is returned unwrapped when args ask for help.
func Load(args []string, output io.Writer, envFiles ...string) (*Config, error) {
	file, err := godotenv.Read(envFiles...)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
		file = map[string]string{}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.ParseFlags(args, output); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v))
				return
			}
			*dst = n
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, v))
				return
			}
			*dst = f
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalid, key, v))
				return
			}
			*dst = b
		}
	}

	str(EnvInput, &c.Input)
	str(EnvOutputDir, &c.OutputDir)
	integer(EnvWidth, &c.Width)
	integer(EnvHeight, &c.Height)
	float(EnvCannyLow, &c.CannyLow)
	float(EnvCannyHigh, &c.CannyHigh)
	boolean(EnvCannyBlur, &c.CannyBlur)
	integer(EnvClosingSize, &c.ClosingSize)
	str(EnvContourColor, &c.ContourColor)
	integer(EnvThickness, &c.Thickness)
	integer(EnvMinRegionArea, &c.MinRegionArea)
	str(EnvBackend, &c.Backend)
	boolean(EnvAnnotate, &c.Annotate)
	boolean(EnvLabelMap, &c.LabelMap)
	boolean(EnvReport, &c.Report)
	boolean(EnvOCR, &c.OCR)
	str(EnvOCRLanguage, &c.OCRLanguage)
	str(EnvLogLevel, &c.LogLevel)

	return errors.Join(errs...)
}

// ParseFlags overrides c with command-line flags. Current values are the
// flag defaults. A single positional argument sets Input.
func (c *Config) ParseFlags(args []string, output io.Writer) error {
	flags := flag.NewFlagSet("floorplan-sketch", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.Usage = func() {
		fmt.Fprintln(output, "Usage: floorplan-sketch [flags] <image>")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Flags:")
		flags.PrintDefaults()
	}

	flags.StringVar(&c.Input, "input", c.Input, "Input image (PNG, JPEG or GIF). May also be given as the only argument.")
	flags.StringVar(&c.OutputDir, "out", c.OutputDir, "Directory for output files.")
	flags.IntVar(&c.Width, "width", c.Width, "Working width in pixels.")
	flags.IntVar(&c.Height, "height", c.Height, "Working height in pixels.")
	flags.Float64Var(&c.CannyLow, "canny-low", c.CannyLow, "Canny low threshold.")
	flags.Float64Var(&c.CannyHigh, "canny-high", c.CannyHigh, "Canny high threshold.")
	flags.BoolVar(&c.CannyBlur, "blur", c.CannyBlur, "Blur before edge detection.")
	flags.IntVar(&c.ClosingSize, "closing", c.ClosingSize, "Side of the square closing element.")
	flags.StringVar(&c.ContourColor, "contour-color", c.ContourColor, "Contour colour as #RRGGBB.")
	flags.IntVar(&c.Thickness, "thickness", c.Thickness, "Line thickness for contours and rectangles.")
	flags.IntVar(&c.MinRegionArea, "min-area", c.MinRegionArea, "Drop regions smaller than this many pixels.")
	flags.StringVar(&c.Backend, "backend", c.Backend, "Extraction backend: go or gocv.")
	flags.BoolVar(&c.Annotate, "annotate", c.Annotate, "Write region numbers on the floor plan.")
	flags.BoolVar(&c.LabelMap, "labels", c.LabelMap, "Also write a colourised label map.")
	flags.BoolVar(&c.Report, "report", c.Report, "Also write a JSON report.")
	flags.BoolVar(&c.OCR, "ocr", c.OCR, "Read room labels with Tesseract (needs -tags ocr).")
	flags.StringVar(&c.OCRLanguage, "ocr-lang", c.OCRLanguage, "Tesseract language code.")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn or error.")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	switch flags.NArg() {
	case 0:
	case 1:
		c.Input = flags.Arg(0)
	default:
		return fmt.Errorf("%w: expected one input image, got %d arguments", ErrInvalid, flags.NArg())
	}
	return nil
}

// Validate checks that c describes a runnable extraction.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Input != "", "input image is required")
	check(c.OutputDir != "", "output directory is required")
	check(c.Width > 0 && c.Height > 0, "working size %dx%d must be positive", c.Width, c.Height)
	check(c.CannyLow >= 0, "canny low threshold %v must not be negative", c.CannyLow)
	check(c.CannyHigh >= c.CannyLow, "canny high threshold %v is below low threshold %v", c.CannyHigh, c.CannyLow)
	check(c.ClosingSize >= 1, "closing size %d must be at least 1", c.ClosingSize)
	check(c.Thickness >= 1, "thickness %d must be at least 1", c.Thickness)
	check(c.MinRegionArea >= 0, "minimum region area %d must not be negative", c.MinRegionArea)
	_, err := imaging.ParseColor(c.ContourColor)
	check(err == nil, "contour colour %q is not #RRGGBB", c.ContourColor)
	check(c.Backend == string(floorplan.BackendGo) || c.Backend == string(floorplan.BackendGoCV),
		"unknown backend %q", c.Backend)
	switch c.LogLevel {
	case log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError:
	default:
		check(false, "unknown log level %q", c.LogLevel)
	}
	check(!c.OCR || c.OCRLanguage != "", "ocr language is required")

	return errors.Join(errs...)
}

// ExtractOptions converts c into pipeline options.
func (c *Config) ExtractOptions() (floorplan.Options, error) {
	col, err := imaging.ParseColor(c.ContourColor)
	if err != nil {
		return floorplan.Options{}, fmt.Errorf("%w: contour colour %q: %v", ErrInvalid, c.ContourColor, err)
	}
	return floorplan.Options{
		Width:         c.Width,
		Height:        c.Height,
		CannyLow:      c.CannyLow,
		CannyHigh:     c.CannyHigh,
		CannyBlur:     c.CannyBlur,
		ClosingSize:   c.ClosingSize,
		ContourColor:  col,
		Thickness:     c.Thickness,
		MinRegionArea: c.MinRegionArea,
	}, nil
}

// OutputOptions converts c into output options.
func (c *Config) OutputOptions() floorplan.OutputOptions {
	return floorplan.OutputOptions{
		Dir:      c.OutputDir,
		Annotate: c.Annotate,
		LabelMap: c.LabelMap,
		Report:   c.Report,
	}
}
