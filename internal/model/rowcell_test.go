package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupIntoRows(t *testing.T) {
	boxes := []PlacedBox{
		{Position: Position{X: 0, Y: 0, Z: 0}, Dimensions: Dimensions{W: 1, L: 1, H: 1}},
		{Position: Position{X: 1, Y: 0.2, Z: 0}, Dimensions: Dimensions{W: 1, L: 1, H: 1}},
		{Position: Position{X: 0, Y: 10, Z: 0}, Dimensions: Dimensions{W: 1, L: 1, H: 1}},
	}

	rows := GroupIntoRows(boxes)
	if assert.Len(t, rows, 2) {
		assert.Len(t, rows[0].Boxes, 2, "boxes within tolerance should share a row")
		assert.Len(t, rows[1].Boxes, 1)
		assert.True(t, rows[0].Y < rows[1].Y)
	}
}

func TestGroupIntoCells(t *testing.T) {
	boxes := []PlacedBox{
		{Position: Position{X: 0, Y: 0, Z: 0}, Dimensions: Dimensions{W: 1, L: 1, H: 1}},
		{Position: Position{X: 0, Y: 0, Z: 1}, Dimensions: Dimensions{W: 1, L: 1, H: 1}},
		{Position: Position{X: 5, Y: 0, Z: 0}, Dimensions: Dimensions{W: 1, L: 1, H: 1}},
	}

	cells := GroupIntoCells(boxes)
	if assert.Len(t, cells, 2) {
		assert.Len(t, cells[0].Boxes, 2, "stacked boxes at the same x share a cell")
		assert.Equal(t, 2.0, cells[0].Height())
	}
}
