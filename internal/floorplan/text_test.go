package floorplan

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunvnaik/floorplan-sketch/internal/imaging"
)

type fakeReader struct {
	texts map[imaging.Bounds]string
	fail  map[imaging.Bounds]bool
	calls int
}

func (f *fakeReader) ReadRegion(_ image.Image, b imaging.Bounds) (string, error) {
	f.calls++
	if f.fail[b] {
		return "", errors.New("unreadable")
	}
	return f.texts[b], nil
}

func TestReadRegionText(t *testing.T) {
	kitchen := imaging.Bounds{X1: 0, Y1: 0, X2: 50, Y2: 50}
	bath := imaging.Bounds{X1: 50, Y1: 0, X2: 100, Y2: 50}
	closet := imaging.Bounds{X1: 0, Y1: 50, X2: 5, Y2: 55}
	res := &Result{
		Gray: image.NewGray(image.Rect(0, 0, 100, 100)),
		Regions: []imaging.Region{
			{Label: 1, Bounds: kitchen, Area: 2500},
			{Label: 2, Bounds: bath, Area: 2500},
			{Label: 3, Bounds: closet, Area: 25},
		},
	}
	r := &fakeReader{
		texts: map[imaging.Bounds]string{kitchen: "KITCHEN", closet: "CL"},
		fail:  map[imaging.Bounds]bool{bath: true},
	}

	require.NoError(t, ReadRegionText(context.Background(), res, r, 100))
	assert.Equal(t, "KITCHEN", res.Regions[0].Text)
	assert.Equal(t, "", res.Regions[1].Text)
	assert.Equal(t, "", res.Regions[2].Text, "small regions are skipped")
	assert.Equal(t, 2, r.calls)
}

func TestReadRegionText_Canceled(t *testing.T) {
	res := &Result{
		Gray:    image.NewGray(image.Rect(0, 0, 10, 10)),
		Regions: []imaging.Region{{Label: 1, Area: 100}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &fakeReader{}
	err := ReadRegionText(ctx, res, r, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, r.calls)
}
