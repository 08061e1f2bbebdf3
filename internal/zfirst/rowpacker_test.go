package zfirst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func TestPackRow_PlacesAllWhenRoomAllows(t *testing.T) {
	container := model.Container{Width: 60, Length: 100, Height: 100}
	candidates := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 5, PackingMethod: model.Carton},
	}

	row := PackRow(candidates, nil, 0, container, 30, 0, false, config.DefaultSettings())

	require.Len(t, row.Placed, 5)
	assertNoOverlaps(t, row.Placed)
	assertWithinContainer(t, row.Placed, container)
}

func TestPackRow_SkipsSlotsThatDoNotFit(t *testing.T) {
	container := model.Container{Width: 15, Length: 100, Height: 10}
	candidates := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 3, PackingMethod: model.Carton},
	}

	row := PackRow(candidates, nil, 0, container, 30, 0, false, config.DefaultSettings())

	assert.LessOrEqual(t, len(row.Placed), 3)
	assertWithinContainer(t, row.Placed, container)
}

func TestPackRow_WidthGapFillDrawsFromRemainder(t *testing.T) {
	container := model.Container{Width: 60, Length: 100, Height: 100}
	candidates := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 30, L: 30, H: 10}, Quantity: 1, PackingMethod: model.Carton},
	}
	remainder := []model.BoxType{
		{Code: "B", Dimensions: model.Dimensions{W: 20, L: 20, H: 10}, Quantity: 1, PackingMethod: model.Carton},
	}

	row := PackRow(candidates, remainder, 0, container, 30, 0, false, config.DefaultSettings())

	assertNoOverlaps(t, row.Placed)
	found := false
	for _, b := range row.Placed {
		if b.Code == "B" {
			found = true
		}
	}
	assert.True(t, found, "width-gap fill should draw a B box from the remainder pool")
}

func assertNoOverlaps(t *testing.T, boxes []model.PlacedBox) {
	t.Helper()
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			assert.False(t, boxes[i].Overlaps3D(boxes[j]), "box %d and %d should not overlap", i, j)
		}
	}
}

func assertWithinContainer(t *testing.T, boxes []model.PlacedBox, container model.Container) {
	t.Helper()
	for _, b := range boxes {
		assert.LessOrEqual(t, b.RightX(), container.Width+0.01)
		assert.LessOrEqual(t, b.TopZ(), container.Height+0.01)
	}
}
