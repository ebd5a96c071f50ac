//go:build !gocv
// +build !gocv

package floorplan

func newGoCVExtractor(Options) (Extractor, error) {
	return nil, ErrBackendUnavailable
}
