//go:build !gocv
// +build !gocv

package floorplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExtractor_GoCVUnavailable(t *testing.T) {
	ex, err := NewExtractor(BackendGoCV, testOptions())
	assert.Nil(t, ex)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}
