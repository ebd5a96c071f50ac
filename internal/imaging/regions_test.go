package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionProps(t *testing.T) {
	mask := grayFromRows(
		"........",
		".###....",
		".###..#.",
		"......#.",
	)

	regions := RegionProps(Label(mask))
	require.Len(t, regions, 2)

	a := regions[0]
	assert.Equal(t, 1, a.Label)
	assert.Equal(t, Bounds{X1: 1, Y1: 1, X2: 4, Y2: 3}, a.Bounds)
	assert.Equal(t, 6, a.Area)
	assert.Equal(t, 3, a.Bounds.Width())
	assert.Equal(t, 2, a.Bounds.Height())
	assert.Equal(t, Centroid{X: 2, Y: 1.5}, a.Centroid)

	minRow, minCol, maxRow, maxCol := a.BBox()
	assert.Equal(t, []int{1, 1, 3, 4}, []int{minRow, minCol, maxRow, maxCol})

	b := regions[1]
	assert.Equal(t, 2, b.Label)
	assert.Equal(t, Bounds{X1: 6, Y1: 2, X2: 7, Y2: 4}, b.Bounds)
	assert.Equal(t, 2, b.Area)
}

func TestRegionProps_CentroidRounding(t *testing.T) {
	mask := grayFromRows(
		"##",
		"#.",
	)

	regions := RegionProps(Label(mask))
	require.Len(t, regions, 1)
	assert.Equal(t, Centroid{X: 0.33, Y: 0.33}, regions[0].Centroid)
}

func TestRegionProps_Empty(t *testing.T) {
	regions := RegionProps(Label(grayFromRows("...")))
	assert.NotNil(t, regions)
	assert.Empty(t, regions)
}

func TestFilterRegions(t *testing.T) {
	regions := []Region{
		{Label: 1, Area: 5},
		{Label: 2, Area: 50},
		{Label: 3, Area: 10},
	}

	assert.Equal(t, regions, FilterRegions(regions, 0))

	kept := FilterRegions(regions, 10)
	require.Len(t, kept, 2)
	assert.Equal(t, 2, kept[0].Label)
	assert.Equal(t, 3, kept[1].Label)

	assert.Empty(t, FilterRegions(regions, 100))
}
