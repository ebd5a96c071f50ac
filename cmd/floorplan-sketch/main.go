package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/arunvnaik/floorplan-sketch/internal/config"
	"github.com/arunvnaik/floorplan-sketch/internal/floorplan"
	"github.com/arunvnaik/floorplan-sketch/internal/log"
	"github.com/arunvnaik/floorplan-sketch/internal/ocr"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	log.Sync()
	os.Exit(code)
}

// run executes one extraction and returns the process exit code. Results go
// to stdout; usage and errors go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "floorplan-sketch %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		}
	}

	cfg, err := config.Load(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	log.SetLevel(cfg.LogLevel)
	log.Debugf("floorplan-sketch %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	if err := extract(ctx, cfg, stdout); err != nil {
		log.Errorf("%v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func extract(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	opts, err := cfg.ExtractOptions()
	if err != nil {
		return err
	}
	ex, err := floorplan.NewExtractor(floorplan.Backend(cfg.Backend), opts)
	if err != nil {
		return fmt.Errorf("backend %s: %w", cfg.Backend, err)
	}

	res, err := ex.Extract(ctx, cfg.Input)
	if err != nil {
		return err
	}

	if cfg.OCR {
		if err := readLabels(ctx, cfg, res); err != nil {
			return err
		}
	}

	written, err := floorplan.WriteOutputs(res, cfg.OutputOptions())
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %s\n", cfg.Input, res)
	for _, path := range written {
		fmt.Fprintf(stdout, "  wrote %s\n", path)
	}
	return nil
}

func readLabels(ctx context.Context, cfg *config.Config, res *floorplan.Result) error {
	reader, err := ocr.NewReader(cfg.OCRLanguage)
	if errors.Is(err, ocr.ErrUnavailable) {
		log.Warnf("skipping room labels: %v", err)
		return nil
	}
	if err != nil {
		return err
	}
	defer reader.Close()

	return floorplan.ReadRegionText(ctx, res, reader, ocr.MinOCRArea)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "floorplan-sketch - extract a rough floor plan sketch from an image")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Writes contours.png (edges traced over the input) and floorplan.png")
	fmt.Fprintln(w, "(one rectangle per thresholded region) into the output directory.")
	fmt.Fprintln(w)
	_ = config.Default().ParseFlags([]string{"-h"}, w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  FLOORPLAN_LOG_LEVEL=debug    Enable debug logging")
	fmt.Fprintln(w, "  FLOORPLAN_CANNY_LOW=30       Every setting has a FLOORPLAN_* variable")
	fmt.Fprintln(w, "  Variables may also be set in a .env file in the working directory.")
}
