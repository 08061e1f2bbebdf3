package model

import "sort"

// PositionTolerance is the matching tolerance used when grouping placed
// boxes into rows (by y) and cells (by x).
const PositionTolerance = 0.5

// Row is a derived view: boxes sharing a common y origin within tolerance.
type Row struct {
	Y      float64
	Boxes  []PlacedBox
}

// Length is the row's Y-extent: the largest L among its boxes, which
// determines how far the next row's Y origin advances.
func (r Row) Length() float64 {
	var max float64
	for _, b := range r.Boxes {
		if b.Dimensions.L > max {
			max = b.Dimensions.L
		}
	}
	return max
}

// Height is the row's tallest occupied z-extent.
func (r Row) Height() float64 {
	var max float64
	for _, b := range r.Boxes {
		if z := b.TopZ(); z > max {
			max = z
		}
	}
	return max
}

// WidthUsed is the row's rightmost occupied x-extent.
func (r Row) WidthUsed() float64 {
	var max float64
	for _, b := range r.Boxes {
		if x := b.RightX(); x > max {
			max = x
		}
	}
	return max
}

// Cell is a derived view within a row: boxes sharing a common x origin,
// i.e. a vertical column of stacked boxes.
type Cell struct {
	X     float64
	Boxes []PlacedBox
}

func (c Cell) Height() float64 {
	var max float64
	for _, b := range c.Boxes {
		if z := b.TopZ(); z > max {
			max = z
		}
	}
	return max
}

func (c Cell) Width() float64 {
	var max float64
	for _, b := range c.Boxes {
		if w := b.Dimensions.W; w > max {
			max = w
		}
	}
	return max
}

// GroupIntoRows groups placed boxes by approximately-equal Y origin,
// ordered by Y ascending.
func GroupIntoRows(boxes []PlacedBox) []Row {
	var rows []Row
	for _, b := range boxes {
		placed := false
		for i := range rows {
			if approxEqual(rows[i].Y, b.Position.Y, PositionTolerance) {
				rows[i].Boxes = append(rows[i].Boxes, b)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, Row{Y: b.Position.Y, Boxes: []PlacedBox{b}})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Y < rows[j].Y })
	return rows
}

// GroupIntoCells groups a row's boxes by approximately-equal X origin,
// ordered by X ascending.
func GroupIntoCells(boxes []PlacedBox) []Cell {
	var cells []Cell
	for _, b := range boxes {
		placed := false
		for i := range cells {
			if approxEqual(cells[i].X, b.Position.X, PositionTolerance) {
				cells[i].Boxes = append(cells[i].Boxes, b)
				placed = true
				break
			}
		}
		if !placed {
			cells = append(cells, Cell{X: b.Position.X, Boxes: []PlacedBox{b}})
		}
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].X < cells[j].X })
	return cells
}

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
