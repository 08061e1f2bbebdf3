package simpleindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func TestPack_ProcessesInInputOrder(t *testing.T) {
	container := model.Container{Width: 40, Length: 100, Height: 40}
	boxTypes := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 20, L: 20, H: 20}, Quantity: 2, PackingMethod: model.Carton},
		{Code: "B", Dimensions: model.Dimensions{W: 20, L: 20, H: 20}, Quantity: 2, PackingMethod: model.Carton},
	}

	result := Pack(container, boxTypes, config.DefaultSettings())
	require.Len(t, result.Containers, 1)

	boxes := result.Containers[0].Boxes
	require.Len(t, boxes, 4)
	assert.Equal(t, "A", boxes[0].Code, "the first two slots should be the A boxes, in input order")
	assert.Equal(t, "A", boxes[1].Code)
}

func TestBestOrientation_BreaksVolumeTiesOnSmallestHeight(t *testing.T) {
	// Volume is invariant under axis permutation, so every legal orientation
	// ties on volume; the tiebreaker is the smallest height, for stacking.
	container := model.Container{Width: 100, Length: 100, Height: 100}
	dims, ok := bestOrientation(model.Dimensions{W: 10, L: 5, H: 20}, container)
	require.True(t, ok)
	assert.Equal(t, 1000.0, dims.Volume())
	assert.Equal(t, 5.0, dims.H)
}

func TestPack_SkipsBoxThatFitsNoOrientation(t *testing.T) {
	container := model.Container{Width: 10, Length: 10, Height: 10}
	boxTypes := []model.BoxType{
		{Code: "HUGE", Dimensions: model.Dimensions{W: 50, L: 50, H: 50}, Quantity: 1, PackingMethod: model.Carton},
	}

	result := Pack(container, boxTypes, config.DefaultSettings())
	assert.Empty(t, result.Containers)
}
