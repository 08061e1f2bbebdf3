package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/packer"
)

func TestDefaultScenarios_OmitsGuidedWithoutTemplate(t *testing.T) {
	settings := config.DefaultSettings()
	settings.GuidedTemplatePath = ""

	scenarios := DefaultScenarios(settings)
	for _, s := range scenarios {
		assert.NotEqual(t, packer.Guided, s.Algorithm)
	}
}

func TestDefaultScenarios_IncludesGuidedWithTemplate(t *testing.T) {
	settings := config.DefaultSettings()
	settings.GuidedTemplatePath = "/templates/manual_layout.json"

	scenarios := DefaultScenarios(settings)
	found := false
	for _, s := range scenarios {
		if s.Algorithm == packer.Guided {
			found = true
		}
	}
	assert.True(t, found, "expected a Guided scenario when a template path is configured")
}

func TestDefaultScenarios_LooseVariantDoublesTolerance(t *testing.T) {
	base := config.DefaultSettings()
	scenarios := DefaultScenarios(base)

	var loose *Scenario
	for i := range scenarios {
		if scenarios[i].Name == "Z-First (loose tolerance)" {
			loose = &scenarios[i]
		}
	}
	require.NotNil(t, loose)
	assert.Equal(t, base.InitialToleranceNoSecondary*2, loose.Settings.InitialToleranceNoSecondary)
}

func TestRun_ProducesOneResultPerScenario(t *testing.T) {
	container := model.Container{Width: 60, Length: 200, Height: 100}
	boxTypes := []model.BoxType{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 30, H: 10}, Quantity: 6, PackingMethod: model.Carton},
	}
	scenarios := []Scenario{
		{Name: "Z-First", Algorithm: packer.ZFirst, Settings: config.DefaultSettings()},
		{Name: "LAFF", Algorithm: packer.LAFF, Settings: config.DefaultSettings()},
	}

	results := Run(scenarios, container, boxTypes)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Greater(t, r.TotalBoxes, 0)
	}
}

func TestRun_ReportsErrorForOversizedBoxes(t *testing.T) {
	container := model.Container{Width: 10, Length: 10, Height: 10}
	boxTypes := []model.BoxType{
		{Code: "HUGE", Dimensions: model.Dimensions{W: 50, L: 50, H: 50}, Quantity: 1, PackingMethod: model.Carton},
	}
	scenarios := []Scenario{
		{Name: "Z-First", Algorithm: packer.ZFirst, Settings: config.DefaultSettings()},
	}

	results := Run(scenarios, container, boxTypes)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
