// Package imaging provides the raster operations behind floor plan
// extraction: loading and normalising a drawing, Canny edge detection,
// border following with hierarchy, Otsu binarisation, morphological closing,
// connected component labelling, region properties and the drawing helpers
// that render results.
//
// All operations work with standard Go image types and use a coordinate
// system where (0,0) is the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Masks
//
// Binary masks are *image.Gray values where 0 is background and any other
// value is foreground. Functions that produce masks write 255 for foreground.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Load failures are reported as *LoadError and match ErrImageNotFound with
// errors.Is. Other functions return errors for invalid inputs such as
// non-positive sizes, empty crop regions or unsupported output formats.
package imaging
