package zfirst

import (
	"sort"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/orientation"
)

// cellHeightFillThreshold is the fraction of container height below which a
// cell is considered incomplete and eligible for donor stacking.
const cellHeightFillThreshold = 0.95

// cellHeightFillMinRemainder is the remaining-height floor below which a
// cell is considered full enough to stop stacking donors into it.
const cellHeightFillMinRemainder = 3.0

// widthGapFillUtilThreshold is the row width-utilization ceiling below
// which a row is still considered to have a fillable gap.
const widthGapFillUtilThreshold = 0.9

// minGapWidth is the smallest gap worth trying to fill, in either pass.
const minGapWidth = 5.0

// PostProcess runs the four consolidation passes over a fully scheduled
// container, in order: cell-move, cell-height fill, width-gap fill, row
// consolidation, then re-applies cell-height fill and width-gap fill once
// more since row consolidation can open new gaps.
func PostProcess(container model.Container, placed []model.PlacedBox, cfg config.Settings) []model.PlacedBox {
	placed = cellMove(container, placed)
	placed = cellHeightFill(container, placed, cfg)
	placed = widthGapFillPass(container, placed)
	placed = rowConsolidate(container, placed, cfg)
	placed = cellHeightFill(container, placed, cfg)
	placed = widthGapFillPass(container, placed)
	return placed
}

// cellMove relocates whole cells (a later row's column of stacked boxes)
// to an earlier row's right edge when the cell's width fits the earlier
// row's remaining width and its height fits the container. Rows are
// walked in y order; for each one, later rows are scanned (also in y
// order) for a movable cell, and the move repeats until the row's
// remaining width drops below minGapWidth or no cell fits anymore.
func cellMove(container model.Container, placed []model.PlacedBox) []model.PlacedBox {
	rows := model.GroupIntoRows(placed)
	if len(rows) < 2 {
		return placed
	}

	out := append([]model.PlacedBox(nil), placed...)

	for ri := 0; ri < len(rows)-1; ri++ {
		rowY := rows[ri].Y
		for {
			rowRightEdge := maxRightX(boxesInRow(out, rowY))
			remainingWidth := container.Width - rowRightEdge
			if remainingWidth < minGapWidth {
				break
			}

			moved := false
			for rj := ri + 1; rj < len(rows) && !moved; rj++ {
				laterBoxes := boxesInRow(out, rows[rj].Y)
				if len(laterBoxes) == 0 {
					continue
				}
				cells := model.GroupIntoCells(laterBoxes)
				sort.Slice(cells, func(a, b int) bool { return cells[a].X < cells[b].X })

				for _, cell := range cells {
					if cell.Width() > remainingWidth+model.PositionTolerance {
						continue
					}
					if cell.Height() > container.Height {
						continue
					}

					shiftX := rowRightEdge - cell.X
					skip := make(map[string]bool, len(cell.Boxes))
					for _, b := range cell.Boxes {
						skip[b.InstanceID] = true
					}

					candidates := make([]model.PlacedBox, len(cell.Boxes))
					conflict := false
					for i, b := range cell.Boxes {
						c := b
						c.Position.X += shiftX
						c.Position.Y = rowY
						if overlapsAnyExcept(c, out, skip) {
							conflict = true
							break
						}
						candidates[i] = c
					}
					if conflict {
						continue
					}

					for _, c := range candidates {
						out = replaceBox(out, c.InstanceID, c)
					}
					moved = true
					break
				}
			}
			if !moved {
				break
			}
		}
	}
	return out
}

// cellHeightFill detects cells below cellHeightFillThreshold of container
// height and stacks donor boxes pulled from other rows (later rows first,
// then earlier ones) on top until the cell's remaining headroom drops
// below cellHeightFillMinRemainder. Donors are re-oriented to the
// smallest-height legal orientation that still fits the cell's footprint
// and remaining headroom, and each donor is used at most once.
func cellHeightFill(container model.Container, placed []model.PlacedBox, cfg config.Settings) []model.PlacedBox {
	_ = cfg
	out := append([]model.PlacedBox(nil), placed...)
	rows := model.GroupIntoRows(placed)
	if container.Height <= 0 {
		return out
	}

	type target struct {
		rowY, cellX float64
	}
	var targets []target
	for _, row := range rows {
		for _, cell := range model.GroupIntoCells(row.Boxes) {
			if cell.Height() < cellHeightFillThreshold*container.Height {
				targets = append(targets, target{rowY: row.Y, cellX: cell.X})
			}
		}
	}

	consumed := map[string]bool{}

	for _, t := range targets {
		rowDepth := findRow(rows, t.rowY).Length()
		for {
			cell, ok := findCell(out, t.rowY, t.cellX)
			if !ok {
				break
			}
			remainingHeight := container.Height - cell.Height()
			if remainingHeight < cellHeightFillMinRemainder {
				break
			}

			donor, dims, ok := bestHeightDonor(out, rows, t.rowY, cell.Width(), rowDepth, remainingHeight, consumed)
			if !ok {
				break
			}

			candidate := donor
			candidate.Dimensions = dims
			candidate.Position = model.Position{X: cell.X, Y: t.rowY, Z: cell.Height()}
			skip := map[string]bool{donor.InstanceID: true}
			if overlapsAnyExcept(candidate, out, skip) {
				consumed[donor.InstanceID] = true
				continue
			}

			out = replaceBox(out, donor.InstanceID, candidate)
			consumed[donor.InstanceID] = true
		}
	}
	return out
}

// bestHeightDonor scans every row other than rowY (later rows first, then
// earlier ones) for the box whose smallest-height legal orientation both
// fits the target cell's width/depth/remaining-height and beats every
// other candidate's height.
func bestHeightDonor(all []model.PlacedBox, rows []model.Row, rowY, cellWidth, rowDepth, remainingHeight float64, consumed map[string]bool) (model.PlacedBox, model.Dimensions, bool) {
	var laterRows, earlierRows []model.Row
	for _, r := range rows {
		if diff(r.Y, rowY) <= model.PositionTolerance {
			continue
		}
		if r.Y > rowY {
			laterRows = append(laterRows, r)
		} else {
			earlierRows = append(earlierRows, r)
		}
	}
	scanOrder := append(append([]model.Row{}, laterRows...), earlierRows...)

	var bestBox model.PlacedBox
	var bestDims model.Dimensions
	bestH := -1.0
	found := false
	for _, r := range scanOrder {
		for _, donor := range boxesInRow(all, r.Y) {
			if consumed[donor.InstanceID] {
				continue
			}
			dims, ok := smallestFittingOrientation(donor, cellWidth, rowDepth, remainingHeight)
			if !ok {
				continue
			}
			if !found || dims.H < bestH {
				bestBox, bestDims, bestH, found = donor, dims, dims.H, true
			}
		}
	}
	return bestBox, bestDims, found
}

func smallestFittingOrientation(donor model.PlacedBox, maxW, maxL, maxH float64) (model.Dimensions, bool) {
	best := model.Dimensions{}
	bestH := -1.0
	found := false
	for _, o := range orientation.All(donor.Dimensions, donor.PackingMethod) {
		if o.W <= maxW+model.PositionTolerance && o.L <= maxL+model.PositionTolerance && o.H <= maxH {
			if !found || o.H < bestH {
				best, bestH, found = o, o.H, true
			}
		}
	}
	return best, found
}

// widthGapFillPass pulls a donor box from a later row into a row whose
// width utilization is still below widthGapFillUtilThreshold, placing it
// at the row's right edge at z=0.
func widthGapFillPass(container model.Container, placed []model.PlacedBox) []model.PlacedBox {
	out := append([]model.PlacedBox(nil), placed...)
	rows := model.GroupIntoRows(placed)
	consumed := map[string]bool{}

	for _, row := range rows {
		for {
			usedWidth := maxRightX(boxesInRow(out, row.Y))
			widthUtil := 0.0
			if container.Width > 0 {
				widthUtil = usedWidth / container.Width
			}
			remainingWidth := container.Width - usedWidth
			if widthUtil >= widthGapFillUtilThreshold || remainingWidth < minGapWidth {
				break
			}

			donor, dims, ok := bestWidthDonor(out, rows, row.Y, remainingWidth, container.Height, consumed)
			if !ok {
				break
			}

			candidate := donor
			candidate.Dimensions = dims
			candidate.Position = model.Position{X: usedWidth, Y: row.Y, Z: 0}
			if candidate.Position.Y+dims.L > container.Length || overlapsAny(candidate, out, donor.InstanceID) {
				consumed[donor.InstanceID] = true
				continue
			}

			out = replaceBox(out, donor.InstanceID, candidate)
			consumed[donor.InstanceID] = true
		}
	}
	return out
}

// bestWidthDonor scans rows later than rowY for the box whose
// largest-fitting legal orientation (within remainingWidth and container
// height) beats every other candidate's width.
func bestWidthDonor(all []model.PlacedBox, rows []model.Row, rowY, remainingWidth, containerHeight float64, consumed map[string]bool) (model.PlacedBox, model.Dimensions, bool) {
	var bestBox model.PlacedBox
	var bestDims model.Dimensions
	bestW := -1.0
	found := false
	for _, r := range rows {
		if r.Y <= rowY+model.PositionTolerance {
			continue
		}
		for _, donor := range boxesInRow(all, r.Y) {
			if consumed[donor.InstanceID] {
				continue
			}
			dims, ok := largestFittingOrientation(donor, remainingWidth, containerHeight)
			if !ok {
				continue
			}
			if dims.W > bestW {
				bestBox, bestDims, bestW, found = donor, dims, dims.W, true
			}
		}
	}
	return bestBox, bestDims, found
}

func largestFittingOrientation(donor model.PlacedBox, maxW, maxH float64) (model.Dimensions, bool) {
	best := model.Dimensions{}
	bestW := -1.0
	found := false
	for _, o := range orientation.All(donor.Dimensions, donor.PackingMethod) {
		if o.W <= maxW+model.PositionTolerance && o.H <= maxH {
			if o.W > bestW {
				best, bestW, found = o, o.W, true
			}
		}
	}
	return best, found
}

// rowConsolidate merges adjacent rows whose combined depth still fits
// within the shallower row's footprint into one row, eliminating an
// otherwise-wasted row boundary.
func rowConsolidate(container model.Container, placed []model.PlacedBox, cfg config.Settings) []model.PlacedBox {
	rows := model.GroupIntoRows(placed)
	if len(rows) < 2 {
		return placed
	}

	var out []model.PlacedBox
	i := 0
	for i < len(rows) {
		if i+1 >= len(rows) {
			out = append(out, rows[i].Boxes...)
			i++
			continue
		}
		a, b := rows[i], rows[i+1]
		if canMergeRows(container, a, b, cfg) {
			merged := mergeRowBoxes(a, b)
			out = append(out, merged...)
			i += 2
			continue
		}
		out = append(out, a.Boxes...)
		i++
	}
	return out
}

func canMergeRows(container model.Container, a, b model.Row, cfg config.Settings) bool {
	if a.WidthUsed()+b.WidthUsed() > container.Width*1.2 {
		return false
	}
	// Only merge when b's boxes could be re-oriented/placed to tuck
	// beside a's without exceeding the shallower row's own depth — the
	// cheap, conservative check here is that b's own length already
	// fits within a's row depth (a strict subset fits "for free").
	relax := cfg.HeightRelaxation
	return b.Length() <= a.Length()+relax
}

func mergeRowBoxes(a, b model.Row) []model.PlacedBox {
	out := append([]model.PlacedBox(nil), a.Boxes...)
	cells := model.GroupIntoCells(a.Boxes)
	xCursor := a.WidthUsed()
	for _, box := range b.Boxes {
		placedOnTop := false
		for ci := range cells {
			cell := &cells[ci]
			if box.Dimensions.W <= cell.Width()+model.PositionTolerance && cell.Height()+box.Dimensions.H <= a.Length() {
				candidate := box
				candidate.Position = model.Position{X: cell.X, Y: a.Y, Z: cell.Height()}
				out = append(out, candidate)
				cell.Boxes = append(cell.Boxes, candidate)
				placedOnTop = true
				break
			}
		}
		if placedOnTop {
			continue
		}
		candidate := box
		candidate.Position = model.Position{X: xCursor, Y: a.Y, Z: 0}
		out = append(out, candidate)
		xCursor += box.Dimensions.W
	}
	return out
}

func boxesInRow(all []model.PlacedBox, rowY float64) []model.PlacedBox {
	var out []model.PlacedBox
	for _, b := range all {
		if diff(b.Position.Y, rowY) <= model.PositionTolerance {
			out = append(out, b)
		}
	}
	return out
}

func findRow(rows []model.Row, y float64) model.Row {
	for _, r := range rows {
		if diff(r.Y, y) <= model.PositionTolerance {
			return r
		}
	}
	return model.Row{Y: y}
}

func findCell(all []model.PlacedBox, rowY, cellX float64) (model.Cell, bool) {
	for _, cell := range model.GroupIntoCells(boxesInRow(all, rowY)) {
		if diff(cell.X, cellX) <= model.PositionTolerance {
			return cell, true
		}
	}
	return model.Cell{}, false
}

func maxRightX(boxes []model.PlacedBox) float64 {
	m := 0.0
	for _, b := range boxes {
		if r := b.RightX(); r > m {
			m = r
		}
	}
	return m
}

func overlapsAny(candidate model.PlacedBox, all []model.PlacedBox, skipID string) bool {
	return overlapsAnyExcept(candidate, all, map[string]bool{skipID: true})
}

func overlapsAnyExcept(candidate model.PlacedBox, all []model.PlacedBox, skip map[string]bool) bool {
	for _, other := range all {
		if skip[other.InstanceID] || other.InstanceID == candidate.InstanceID {
			continue
		}
		if candidate.Overlaps3D(other) {
			return true
		}
	}
	return false
}

func replaceBox(all []model.PlacedBox, id string, replacement model.PlacedBox) []model.PlacedBox {
	for i := range all {
		if all[i].InstanceID == id {
			all[i] = replacement
			return all
		}
	}
	return all
}
