// Package floorplan extracts an approximate floor plan sketch from a
// drawing or photo of one.
//
// An Extractor runs two branches on the same resized grayscale image:
//
//   - Canny edges, border following with hierarchy, and an overlay of every
//     contour on the input.
//   - Otsu binarisation, morphological closing, connected component
//     labeling, and one rectangle per region on a black canvas.
//
// Two backends implement Extractor. BackendGo uses the internal imaging
// package and needs nothing beyond the Go toolchain. BackendGoCV uses
// OpenCV through gocv and is only compiled with the "gocv" build tag;
// without it NewExtractor returns ErrBackendUnavailable.
//
// WriteOutputs stores the results as image files plus an optional JSON
// report, and ReadRegionText attaches text found inside each region by any
// TextReader.
package floorplan
