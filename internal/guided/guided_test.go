package guided

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func TestLoadTemplate_EmptyPathReturnsErrNoTemplate(t *testing.T) {
	_, err := LoadTemplate("")
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestLoadTemplate_MissingFileReturnsErrNoTemplate(t *testing.T) {
	_, err := LoadTemplate("/nonexistent/path/manual_layout.json")
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestPack_FallsBackToZFirstWithoutTemplate(t *testing.T) {
	container := model.Container{Width: 60, Length: 200, Height: 100}
	boxTypes := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 4, PackingMethod: model.Carton},
	}

	result, err := Pack(container, boxTypes, config.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, result.Containers, 1)
	assert.NotEmpty(t, result.Containers[0].Boxes)
}
