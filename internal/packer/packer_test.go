package packer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func testContainer() model.Container {
	return model.Container{Width: 60, Length: 200, Height: 100}
}

func testBoxTypes() []model.BoxType {
	return []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 4, PackingMethod: model.Carton},
	}
}

func TestRun_ZFirstIsDefaultWhenAlgorithmEmpty(t *testing.T) {
	result, err := Run(Request{Container: testContainer(), BoxTypes: testBoxTypes(), Settings: config.DefaultSettings()})
	require.NoError(t, err)
	require.Len(t, result.Containers, 1)
	assert.NotEmpty(t, result.Containers[0].Boxes)
}

func TestRun_DispatchesEachKnownAlgorithm(t *testing.T) {
	for _, alg := range []Algorithm{ZFirst, LAFF, SimpleIndex, Guided} {
		t.Run(string(alg), func(t *testing.T) {
			result, err := Run(Request{
				Algorithm: alg,
				Container: testContainer(),
				BoxTypes:  testBoxTypes(),
				Settings:  config.DefaultSettings(),
			})
			require.NoError(t, err)
			require.Len(t, result.Containers, 1)
			assert.NotEmpty(t, result.Containers[0].Boxes)
		})
	}
}

func TestRun_RejectsInvalidPackingMethod(t *testing.T) {
	boxTypes := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Quantity: 1, PackingMethod: model.PackingMethod("BOGUS")},
	}
	_, err := Run(Request{Container: testContainer(), BoxTypes: boxTypes, Settings: config.DefaultSettings()})
	assert.Error(t, err)
}

func TestRun_UnknownAlgorithmErrors(t *testing.T) {
	_, err := Run(Request{
		Algorithm: Algorithm("not_a_real_algorithm"),
		Container: testContainer(),
		BoxTypes:  testBoxTypes(),
		Settings:  config.DefaultSettings(),
	})
	assert.Error(t, err)
}
