package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

// Default working resolution. Every input is resized to this size before
// analysis so that thresholds and line widths behave the same on any photo.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// ErrImageNotFound is returned when an input image is missing or cannot be
// decoded. The underlying cause is wrapped in the returned LoadError.
var ErrImageNotFound = errors.New("image file not found or could not be read")

// LoadError reports the path that failed to load together with the cause.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", ErrImageNotFound, e.Path)
}

// Unwrap exposes both the sentinel and the cause to errors.Is/errors.As.
func (e *LoadError) Unwrap() []error {
	return []error{ErrImageNotFound, e.Err}
}

// ImageCache provides thread-safe caching of loaded images to avoid redundant disk reads.
//
// The cache stores decoded image.Image objects keyed by their file path. Once an image
// is loaded, subsequent Load() calls for the same path return the cached copy without
// disk I/O.
//
// ImageCache is safe for concurrent use by multiple goroutines.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or loads it from disk if not cached.
//
// Supported formats are PNG, JPEG, and GIF. Any failure to open or decode the
// file is reported as a *LoadError, which matches ErrImageNotFound.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to open image: %w", err)}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to decode image: %w", err)}
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadGray loads an image through the cache and prepares it for analysis:
// conversion to 8-bit luminance followed by a resize to exactly
// width x height. The aspect ratio is not preserved.
//
// Errors:
//   - *LoadError (matching ErrImageNotFound) if the file is missing or unreadable
//   - an error if width or height is not positive
func LoadGray(cache *ImageCache, path string, width, height int) (*image.Gray, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return Preprocess(img, width, height)
}

// Preprocess converts img to grayscale and resizes it to width x height
// using bilinear interpolation.
func Preprocess(img image.Image, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("empty image")
	}

	gray := imaging.Grayscale(img)
	resized := imaging.Resize(gray, width, height, imaging.Linear)

	return nrgbaToGray(resized), nil
}

// nrgbaToGray copies the red channel of an already-desaturated image into an
// *image.Gray. Alpha is ignored, matching a plain grayscale decode.
func nrgbaToGray(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}
