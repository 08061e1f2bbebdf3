// Package format turns a packing run's raw placements into the grid
// report used downstream: containers broken into rows, rows into cells,
// each cell's contents aggregated into a code string like "1A+3C+9D".
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/piwi3910/cratepack/internal/model"
)

// CellReport is one cell's formatted contents.
type CellReport struct {
	Cell       int
	Content    string
	TotalBoxes int
	Columns    []string
	Position   model.Position
	Breakdown  map[string]int
	Dimensions model.Dimensions
	Boxes      []model.PlacedBox
}

// RowReport is one row's cells plus its overall height.
type RowReport struct {
	Row    int
	Height float64
	Cells  []CellReport
}

// ContainerReport is one container's formatted rows and utilization.
type ContainerReport struct {
	ContainerID   int
	Rows          []RowReport
	TotalBoxes    int
	Utilization   float64
	Dimensions    model.Container
}

// Report is the full formatted output of a packing run.
type Report struct {
	Containers         []ContainerReport
	TotalBoxes         int
	TotalContainers    int
	OverallUtilization float64
}

// Format converts packed containers into the grid report.
func Format(containers []model.ContainerResult) Report {
	report := Report{TotalContainers: len(containers)}

	var totalUtil float64
	for _, c := range containers {
		cr := formatContainer(c)
		report.Containers = append(report.Containers, cr)
		report.TotalBoxes += cr.TotalBoxes
		totalUtil += cr.Utilization
	}
	if len(containers) > 0 {
		report.OverallUtilization = totalUtil / float64(len(containers))
	}
	return report
}

func formatContainer(c model.ContainerResult) ContainerReport {
	rows := model.GroupIntoRows(c.Boxes)

	var rowReports []RowReport
	for i, row := range rows {
		rowReports = append(rowReports, formatRow(i+1, row))
	}

	return ContainerReport{
		ContainerID: c.ContainerID,
		Rows:        rowReports,
		TotalBoxes:  len(c.Boxes),
		Utilization: utilization(c.Boxes),
		Dimensions:  c.Dimensions,
	}
}

func formatRow(number int, row model.Row) RowReport {
	cells := model.GroupIntoCells(row.Boxes)
	sort.Slice(cells, func(i, j int) bool { return cells[i].X < cells[j].X })

	var cellReports []CellReport
	rowHeight := 0.0
	for i, cell := range cells {
		cr := formatCell(i+1, cell)
		cellReports = append(cellReports, cr)
		if cell.Height() > rowHeight {
			rowHeight = cell.Height()
		}
	}

	return RowReport{Row: number, Height: round1(rowHeight), Cells: cellReports}
}

func formatCell(number int, cell model.Cell) CellReport {
	content, breakdown := aggregateBoxes(cell.Boxes)

	columnSet := map[string]bool{}
	for _, b := range cell.Boxes {
		columnSet[b.Code] = true
	}
	var columns []string
	for c := range columnSet {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	minX, maxX := boundsX(cell.Boxes)
	minZ, maxZ := boundsZ(cell.Boxes)
	_, maxY := boundsY(cell.Boxes)
	minY := 0.0
	if len(cell.Boxes) > 0 {
		minY = cell.Boxes[0].Position.Y
	}

	return CellReport{
		Cell:       number,
		Content:    content,
		TotalBoxes: len(cell.Boxes),
		Columns:    columns,
		Position:   model.Position{X: minX, Y: minY, Z: minZ},
		Breakdown:  breakdown,
		Dimensions: model.Dimensions{W: round1(maxX - minX), L: round1(maxY - minY), H: round1(maxZ - minZ)},
		Boxes:      cell.Boxes,
	}
}

// aggregateBoxes renders a cell's contents as "1A+3C+9D": counts per
// code, sorted by code order.
func aggregateBoxes(boxes []model.PlacedBox) (string, map[string]int) {
	counts := map[string]int{}
	for _, b := range boxes {
		counts[b.Code]++
	}

	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, fmt.Sprintf("%d%s", counts[c], c))
	}
	return strings.Join(parts, "+"), counts
}

// utilization is used volume over the bounding box of all placed boxes,
// not over the full container.
func utilization(boxes []model.PlacedBox) float64 {
	if len(boxes) == 0 {
		return 0
	}
	var usedVolume float64
	for _, b := range boxes {
		usedVolume += b.Dimensions.Volume()
	}

	minX, maxX := boundsX(boxes)
	minY, maxY := boundsY(boxes)
	minZ, maxZ := boundsZ(boxes)
	boundingVolume := (maxX - minX) * (maxY - minY) * (maxZ - minZ)
	if boundingVolume <= 0 {
		return 0
	}
	return round2(usedVolume / boundingVolume * 100)
}

func boundsX(boxes []model.PlacedBox) (float64, float64) {
	if len(boxes) == 0 {
		return 0, 0
	}
	min, max := boxes[0].Position.X, boxes[0].RightX()
	for _, b := range boxes {
		if b.Position.X < min {
			min = b.Position.X
		}
		if b.RightX() > max {
			max = b.RightX()
		}
	}
	return min, max
}

func boundsY(boxes []model.PlacedBox) (float64, float64) {
	if len(boxes) == 0 {
		return 0, 0
	}
	min, max := boxes[0].Position.Y, boxes[0].BackY()
	for _, b := range boxes {
		if b.Position.Y < min {
			min = b.Position.Y
		}
		if b.BackY() > max {
			max = b.BackY()
		}
	}
	return min, max
}

func boundsZ(boxes []model.PlacedBox) (float64, float64) {
	if len(boxes) == 0 {
		return 0, 0
	}
	min, max := boxes[0].Position.Z, boxes[0].TopZ()
	for _, b := range boxes {
		if b.Position.Z < min {
			min = b.Position.Z
		}
		if b.TopZ() > max {
			max = b.TopZ()
		}
	}
	return min, max
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
