package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContours_Rectangle(t *testing.T) {
	mask := grayFromRows(
		"........",
		"........",
		"..####..",
		"..####..",
		"..####..",
		"........",
	)

	contours := FindContours(mask, ChainApproxSimple)
	require.Len(t, contours, 1)

	c := contours[0]
	assert.False(t, c.Hole)
	assert.Equal(t, []image.Point{{2, 2}, {2, 4}, {5, 4}, {5, 2}}, c.Points)
	assert.Equal(t, Hierarchy{Next: -1, Prev: -1, FirstChild: -1, Parent: -1}, c.Hierarchy)
	assert.Equal(t, image.Rect(2, 2, 6, 5), c.BoundingRect())
}

func TestFindContours_ApproxNone(t *testing.T) {
	mask := grayFromRows(
		"........",
		"..####..",
		"..####..",
		"..####..",
		"........",
	)

	contours := FindContours(mask, ChainApproxNone)
	require.Len(t, contours, 1)
	// Perimeter of a 4x3 block.
	assert.Len(t, contours[0].Points, 10)
}

func TestFindContours_Ring(t *testing.T) {
	mask := grayFromRows(
		".......",
		".#####.",
		".#...#.",
		".#...#.",
		".#...#.",
		".#####.",
		".......",
	)

	contours := FindContours(mask, ChainApproxSimple)
	require.Len(t, contours, 2)

	outer, hole := contours[0], contours[1]
	assert.False(t, outer.Hole)
	assert.True(t, hole.Hole)
	assert.Equal(t, -1, outer.Hierarchy.Parent)
	assert.Equal(t, 1, outer.Hierarchy.FirstChild)
	assert.Equal(t, 0, hole.Hierarchy.Parent)
	assert.Equal(t, -1, hole.Hierarchy.FirstChild)
	assert.Equal(t, image.Rect(1, 1, 6, 6), outer.BoundingRect())
}

func TestFindContours_Nested(t *testing.T) {
	mask := grayFromRows(
		"#######",
		"#.....#",
		"#.....#",
		"#..#..#",
		"#.....#",
		"#.....#",
		"#######",
	)

	contours := FindContours(mask, ChainApproxSimple)
	require.Len(t, contours, 3)

	assert.False(t, contours[0].Hole)
	assert.True(t, contours[1].Hole)
	assert.False(t, contours[2].Hole)

	assert.Equal(t, -1, contours[0].Hierarchy.Parent)
	assert.Equal(t, 0, contours[1].Hierarchy.Parent)
	assert.Equal(t, 1, contours[2].Hierarchy.Parent)
	assert.Equal(t, 1, contours[0].Hierarchy.FirstChild)
	assert.Equal(t, 2, contours[1].Hierarchy.FirstChild)

	assert.Equal(t, []image.Point{{3, 3}}, contours[2].Points)
}

func TestFindContours_Siblings(t *testing.T) {
	mask := grayFromRows(
		"##..##",
		"##..##",
	)

	contours := FindContours(mask, ChainApproxSimple)
	require.Len(t, contours, 2)

	assert.Equal(t, Hierarchy{Next: 1, Prev: -1, FirstChild: -1, Parent: -1}, contours[0].Hierarchy)
	assert.Equal(t, Hierarchy{Next: -1, Prev: 0, FirstChild: -1, Parent: -1}, contours[1].Hierarchy)
}

func TestFindContours_IsolatedPixel(t *testing.T) {
	mask := grayFromRows(
		"...",
		".#.",
		"...",
	)

	contours := FindContours(mask, ChainApproxSimple)
	require.Len(t, contours, 1)
	assert.Equal(t, []image.Point{{1, 1}}, contours[0].Points)
	assert.False(t, contours[0].Hole)
}

func TestFindContours_Empty(t *testing.T) {
	contours := FindContours(image.NewGray(image.Rect(0, 0, 5, 5)), ChainApproxSimple)
	assert.Empty(t, contours)
}

func TestFindContours_TouchesFrame(t *testing.T) {
	mask := grayFromRows(
		"###",
		"###",
	)

	contours := FindContours(mask, ChainApproxSimple)
	require.Len(t, contours, 1)
	assert.Equal(t, image.Rect(0, 0, 3, 2), contours[0].BoundingRect())
}

func TestCompressChain(t *testing.T) {
	points := []image.Point{{0, 0}, {0, 1}, {0, 2}, {1, 2}, {2, 2}, {2, 1}, {2, 0}, {1, 0}}
	assert.Equal(t, []image.Point{{0, 0}, {0, 2}, {2, 2}, {2, 0}}, compressChain(points))

	short := []image.Point{{0, 0}, {1, 0}}
	assert.Equal(t, short, compressChain(short))
}

func TestCompressChain_Diamond(t *testing.T) {
	points := []image.Point{{2, 0}, {3, 1}, {4, 2}, {3, 3}, {2, 4}, {1, 3}, {0, 2}, {1, 1}}
	assert.Equal(t, []image.Point{{2, 0}, {4, 2}, {2, 4}, {0, 2}}, compressChain(points))
}

func TestFindContours_DiagonalLine(t *testing.T) {
	mask := grayFromRows(
		"#....",
		".#...",
		"..#..",
		"...#.",
		"....#",
	)

	contours := FindContours(mask, ChainApproxSimple)
	require.Len(t, contours, 1)
	assert.Equal(t, []image.Point{{0, 0}, {4, 4}}, contours[0].Points)
	assert.False(t, contours[0].Hole)
}
