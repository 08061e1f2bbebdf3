// Package compare runs a box-type pool against every packing algorithm
// and reports their results side by side, for choosing which algorithm
// suits a given load.
package compare

import (
	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/format"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/packer"
)

// Scenario is one named algorithm/settings combination to compare.
type Scenario struct {
	Name      string
	Algorithm packer.Algorithm
	Settings  config.Settings
}

// Result holds one scenario's packing result plus derived statistics.
type Result struct {
	Scenario       Scenario
	PackResult     model.PackResult
	Report         format.Report
	ContainersUsed int
	TotalBoxes     int
	UnplacedCount  int
	Utilization    float64
	Err            error
}

// Run executes every scenario against the same container/box-type pool
// and returns results in scenario order.
func Run(scenarios []Scenario, container model.Container, boxTypes []model.BoxType) []Result {
	results := make([]Result, 0, len(scenarios))

	for _, scenario := range scenarios {
		packResult, err := packer.Run(packer.Request{
			Algorithm: scenario.Algorithm,
			Container: container,
			BoxTypes:  boxTypes,
			Settings:  scenario.Settings,
		})

		report := format.Format(packResult.Containers)

		results = append(results, Result{
			Scenario:       scenario,
			PackResult:     packResult,
			Report:         report,
			ContainersUsed: len(packResult.Containers),
			TotalBoxes:     report.TotalBoxes,
			UnplacedCount:  countUnplaced(packResult.UnplacedBoxes),
			Utilization:    report.OverallUtilization,
			Err:            err,
		})
	}

	return results
}

// DefaultScenarios builds the standard what-if comparison set from a
// baseline configuration: every algorithm at the baseline settings (Guided
// only when a template path is configured), plus a looser-tolerance
// Z-First variant.
func DefaultScenarios(base config.Settings) []Scenario {
	scenarios := []Scenario{
		{Name: "Z-First (default)", Algorithm: packer.ZFirst, Settings: base},
		{Name: "LAFF", Algorithm: packer.LAFF, Settings: base},
		{Name: "Simple-Index", Algorithm: packer.SimpleIndex, Settings: base},
	}

	if base.GuidedTemplatePath != "" {
		scenarios = append(scenarios, Scenario{Name: "Guided", Algorithm: packer.Guided, Settings: base})
	}

	loose := base
	loose.InitialToleranceNoSecondary = base.InitialToleranceNoSecondary * 2
	loose.InitialToleranceWithSecondary = base.InitialToleranceWithSecondary * 2
	scenarios = append(scenarios, Scenario{Name: "Z-First (loose tolerance)", Algorithm: packer.ZFirst, Settings: loose})

	return scenarios
}

func countUnplaced(boxes []model.BoxType) int {
	total := 0
	for _, bt := range boxes {
		total += bt.Quantity
	}
	return total
}
