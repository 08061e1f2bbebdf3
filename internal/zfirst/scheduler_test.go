package zfirst

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func TestSchedule_PlacesWithinBoundsAndWithoutOverlap(t *testing.T) {
	container := model.Container{Width: 60, Length: 200, Height: 100}
	boxTypes := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 20, PackingMethod: model.Carton},
	}

	placed, _ := Schedule(container, boxTypes, config.DefaultSettings())

	assert.NotEmpty(t, placed)
	assert.LessOrEqual(t, len(placed), 20)
	assertNoOverlaps(t, placed)
	assertWithinContainer(t, placed, container)
	for _, p := range placed {
		assert.LessOrEqual(t, p.BackY(), container.Length+0.01)
	}
}

func TestSchedule_RespectsSortOrderGrouping(t *testing.T) {
	container := model.Container{Width: 60, Length: 200, Height: 100}
	boxTypes := []model.BoxType{
		{Code: "LATE", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 2, PackingMethod: model.Carton, SortOrder: 2},
		{Code: "EARLY", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 2, PackingMethod: model.Carton, SortOrder: 1},
	}

	placed, _ := Schedule(container, boxTypes, config.DefaultSettings())
	assertNoOverlaps(t, placed)

	var earlyMaxY, lateMinY float64
	hasEarly, hasLate := false, false
	for _, p := range placed {
		if p.Code == "EARLY" {
			hasEarly = true
			if p.Position.Y > earlyMaxY {
				earlyMaxY = p.Position.Y
			}
		}
		if p.Code == "LATE" {
			if !hasLate || p.Position.Y < lateMinY {
				lateMinY = p.Position.Y
			}
			hasLate = true
		}
	}
	if hasEarly && hasLate {
		assert.LessOrEqual(t, earlyMaxY, lateMinY+model.PositionTolerance, "lower sort_order groups should schedule before later ones")
	}
}
