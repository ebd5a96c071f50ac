//go:build gocv
// +build gocv

package floorplan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoCVExtractor_Extract(t *testing.T) {
	path := createPlanImage(t)

	ex, err := NewExtractor(BackendGoCV, testOptions())
	require.NoError(t, err)

	res, err := ex.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, planSize, res.Gray.Bounds().Dx())
	assert.Len(t, res.Regions, 3)
	assert.Equal(t, 3, res.Labels.Count)
	assert.NotEmpty(t, res.Contours)
	assert.Equal(t, uint8(255), res.FloorPlan.GrayAt(26, 26).Y)
}

func TestGoCVExtractor_LabelMap(t *testing.T) {
	path := createPlanImage(t)

	ex, err := NewExtractor(BackendGoCV, testOptions())
	require.NoError(t, err)

	res, err := ex.Extract(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, res.Labels.Labels, planSize*planSize)

	areas := make(map[int]int)
	for _, l := range res.Labels.Labels {
		if l > 0 {
			areas[int(l)]++
		}
	}
	for _, r := range res.Regions {
		assert.Equal(t, r.Area, areas[r.Label], "label %d", r.Label)
	}
}

func TestGoCVExtractor_NotFound(t *testing.T) {
	ex, err := NewExtractor(BackendGoCV, testOptions())
	require.NoError(t, err)

	_, err = ex.Extract(context.Background(), "/nonexistent/plan.png")
	assert.Error(t, err)
}
