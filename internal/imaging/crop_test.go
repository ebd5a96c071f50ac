package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	cropped, err := CropRegion(img, Bounds{X1: 10, Y1: 20, X2: 60, Y2: 50}, 0, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 50, cropped.Bounds().Dx())
	assert.Equal(t, 30, cropped.Bounds().Dy())
}

func TestCropRegion_Padding(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	cropped, err := CropRegion(img, Bounds{X1: 10, Y1: 10, X2: 20, Y2: 20}, 5, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 20, cropped.Bounds().Dx())
	assert.Equal(t, 20, cropped.Bounds().Dy())
}

func TestCropRegion_PaddingClippedAtEdges(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	cropped, err := CropRegion(img, Bounds{X1: 0, Y1: 0, X2: 10, Y2: 100}, 8, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 18, cropped.Bounds().Dx())
	assert.Equal(t, 100, cropped.Bounds().Dy())
}

func TestCropRegion_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{0, 0, 255, 255})

	cropped, err := CropRegion(img, Bounds{X1: 0, Y1: 0, X2: 50, Y2: 25}, 0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 100, cropped.Bounds().Dx())
	assert.Equal(t, 50, cropped.Bounds().Dy())
}

func TestCropRegion_NonZeroOrigin(t *testing.T) {
	base := createInMemoryImage(100, 100, color.White)
	sub := base.(*image.RGBA).SubImage(image.Rect(50, 50, 100, 100))

	cropped, err := CropRegion(sub, Bounds{X1: 0, Y1: 0, X2: 10, Y2: 10}, 0, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 10, cropped.Bounds().Dx())
}

func TestCropRegion_Invalid(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name string
		b    Bounds
	}{
		{"empty width", Bounds{X1: 10, Y1: 0, X2: 10, Y2: 10}},
		{"inverted", Bounds{X1: 20, Y1: 20, X2: 10, Y2: 10}},
		{"outside", Bounds{X1: 200, Y1: 200, X2: 210, Y2: 210}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRegion(img, tt.b, 0, 1.0)
			assert.Error(t, err)
		})
	}
}
