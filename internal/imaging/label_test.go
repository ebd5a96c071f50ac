package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel_EightConnected(t *testing.T) {
	mask := grayFromRows(
		"##....",
		"##..#.",
		"..#...",
		"......",
		"....##",
	)

	lm := Label(mask)
	assert.Equal(t, 3, lm.Count)

	// Diagonal contact joins (1,1) and (2,2).
	assert.Equal(t, 1, lm.At(0, 0))
	assert.Equal(t, 1, lm.At(2, 2))
	assert.Equal(t, 2, lm.At(4, 1))
	assert.Equal(t, 3, lm.At(5, 4))
	assert.Equal(t, 0, lm.At(3, 3))
}

func TestLabel_RasterOrder(t *testing.T) {
	mask := grayFromRows(
		"....#",
		"#....",
	)

	lm := Label(mask)
	assert.Equal(t, 2, lm.Count)
	assert.Equal(t, 1, lm.At(4, 0))
	assert.Equal(t, 2, lm.At(0, 1))
}

func TestLabel_Empty(t *testing.T) {
	lm := Label(image.NewGray(image.Rect(0, 0, 4, 4)))
	assert.Equal(t, 0, lm.Count)
	assert.Len(t, lm.Labels, 16)
}

func TestLabelMap_AtOutside(t *testing.T) {
	lm := Label(grayFromRows("##"))
	assert.Equal(t, 0, lm.At(-1, 0))
	assert.Equal(t, 0, lm.At(2, 0))
	assert.Equal(t, 0, lm.At(0, 1))
}

func TestLabel_FloorPlanRooms(t *testing.T) {
	g := floorPlanGray()
	lm := Label(Binarize(g, OtsuThreshold(g)))

	// Outside margin plus two rooms.
	assert.Equal(t, 3, lm.Count)
	assert.NotEqual(t, lm.At(30, 50), lm.At(70, 50))
	assert.Equal(t, 1, lm.At(0, 0))
}
