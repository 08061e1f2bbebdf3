package zfirst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func TestSelectDominantLength_SingleLengthWins(t *testing.T) {
	pool := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 40, L: 40, H: 10}, Quantity: 10, PackingMethod: model.Carton},
	}
	primary, _, hasSecondary, top3 := SelectDominantLength(pool, 40, config.DefaultSettings())
	assert.Equal(t, 40.0, primary)
	assert.False(t, hasSecondary)
	require.NotEmpty(t, top3)
}

func TestSelectDominantLength_SecondaryLengthQualifies(t *testing.T) {
	cfg := config.DefaultSettings()
	pool := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 40, L: 40, H: 10}, Quantity: 20, PackingMethod: model.Carton},
		{Code: "B", Dimensions: model.Dimensions{W: 80, L: 80, H: 10}, Quantity: 10, PackingMethod: model.Carton},
	}
	primary, secondary, hasSecondary, _ := SelectDominantLength(pool, 100, cfg)
	assert.Equal(t, 80.0, primary, "B fills more of the container's width, so it wins on score despite lower quantity")
	if assert.True(t, hasSecondary) {
		assert.Equal(t, 40.0, secondary)
	}
}

func TestSelectDominantLength_FallsBackToQuantityWhenNoWidthUtilQualifies(t *testing.T) {
	cfg := config.DefaultSettings()
	pool := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Quantity: 3, PackingMethod: model.Carton},
		{Code: "B", Dimensions: model.Dimensions{W: 20, L: 20, H: 10}, Quantity: 9, PackingMethod: model.Carton},
	}
	primary, _, _, _ := SelectDominantLength(pool, 1000, cfg)
	assert.Equal(t, 20.0, primary, "with no length reaching 70%% width utilization, the higher-quantity length wins")
}
