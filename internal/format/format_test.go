package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cratepack/internal/model"
)

func TestFormat_AggregatesCellContentsByCode(t *testing.T) {
	container := model.NewContainerResult(1, model.Container{Width: 40, Length: 40, Height: 40})
	container.Boxes = []model.PlacedBox{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Position: model.Position{X: 0, Y: 0, Z: 0}},
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Position: model.Position{X: 0, Y: 0, Z: 10}},
		{Code: "B", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Position: model.Position{X: 0, Y: 0, Z: 20}},
	}

	report := Format([]model.ContainerResult{container})

	require.Len(t, report.Containers, 1)
	require.Len(t, report.Containers[0].Rows, 1)
	require.Len(t, report.Containers[0].Rows[0].Cells, 1)

	cell := report.Containers[0].Rows[0].Cells[0]
	assert.Equal(t, "2A+1B", cell.Content)
	assert.Equal(t, 3, cell.TotalBoxes)
}

func TestFormat_OverallUtilizationAveragesContainers(t *testing.T) {
	c1 := model.NewContainerResult(1, model.Container{Width: 10, Length: 10, Height: 10})
	c1.Boxes = []model.PlacedBox{
		{Code: "A", Dimensions: model.Dimensions{W: 10, L: 10, H: 10}, Position: model.Position{X: 0, Y: 0, Z: 0}},
	}
	c2 := model.NewContainerResult(2, model.Container{Width: 10, Length: 10, Height: 10})

	report := Format([]model.ContainerResult{c1, c2})
	assert.Equal(t, 100.0, report.Containers[0].Utilization, "a single box filling its own bounding box is 100%% utilized")
	assert.Equal(t, 0.0, report.Containers[1].Utilization)
	assert.Equal(t, 50.0, report.OverallUtilization)
}

func TestFormat_NoContainersReturnsZeroedReport(t *testing.T) {
	report := Format(nil)
	assert.Equal(t, 0, report.TotalContainers)
	assert.Equal(t, 0.0, report.OverallUtilization)
}
