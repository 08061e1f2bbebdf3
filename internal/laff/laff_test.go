package laff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func testSettings() config.Settings {
	s := config.DefaultSettings()
	s.DoorClearance = 0
	return s
}

func TestPack_SingleUniformType(t *testing.T) {
	container := model.Container{Width: 100, Length: 100, Height: 100}
	boxTypes := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Quantity: 8, PackingMethod: model.Carton},
	}

	result, err := Pack(container, boxTypes, testSettings())
	require.NoError(t, err)
	require.Len(t, result.Containers, 1)
	assert.Len(t, result.Containers[0].Boxes, 8)
	assert.Empty(t, result.UnplacedBoxes)
}

func TestPack_PrePackRequiresSupport(t *testing.T) {
	container := model.Container{Width: 20, Length: 20, Height: 40}
	boxTypes := []model.BoxType{
		{Code: "BASE", Dimensions: model.Dimensions{W: 20, L: 20, H: 10}, Quantity: 1, PackingMethod: model.PrePack},
		{Code: "TOP", Dimensions: model.Dimensions{W: 20, L: 20, H: 10}, Quantity: 1, PackingMethod: model.PrePack},
	}

	result, err := Pack(container, boxTypes, testSettings())
	require.NoError(t, err)
	require.Len(t, result.Containers, 1)
	for _, b := range result.Containers[0].Boxes {
		if b.Position.Z > 0 {
			assert.True(t, b.Position.Z >= 9.9, "a stacked PRE_PACK box should rest directly on its supporter")
		}
	}
}

func TestPack_OversizedBoxReportsError(t *testing.T) {
	container := model.Container{Width: 10, Length: 10, Height: 10}
	boxTypes := []model.BoxType{
		{Code: "HUGE", Dimensions: model.Dimensions{W: 50, L: 50, H: 50}, Quantity: 1, PackingMethod: model.Carton},
	}

	_, err := Pack(container, boxTypes, testSettings())
	require.Error(t, err)
}

func TestPack_OpensAdditionalContainerOnOverflow(t *testing.T) {
	container := model.Container{Width: 10, Length: 10, Height: 10}
	boxTypes := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Quantity: 2, PackingMethod: model.Carton},
	}

	result, err := Pack(container, boxTypes, testSettings())
	require.NoError(t, err)
	assert.Len(t, result.Containers, 2)
}
