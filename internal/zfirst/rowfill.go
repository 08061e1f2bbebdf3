package zfirst

import (
	"sort"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/orientation"
)

// activeCellHeightFill retries leftover slots against the vertical gaps
// left atop already-placed boxes in the row just packed: each column's
// existing stack height becomes a candidate z for a leftover box that
// still fits above it.
func activeCellHeightFill(result *RowResult, leftover []slot, container model.Container, primaryL, secondaryL float64, hasSecondary bool, tau float64, rowY float64) {
	if len(leftover) == 0 {
		return
	}

	cells := model.GroupIntoCells(result.Placed)
	sort.Slice(cells, func(i, j int) bool { return cells[i].X < cells[j].X })

	var stillLeft []slot
	for _, s := range leftover {
		placed := false
		for ci := range cells {
			cell := &cells[ci]
			cellWidth := cell.Width()
			cellTop := cell.Height()
			scored := scoreSlot(s.boxType, primaryL, secondaryL, hasSecondary, tau, 0.9, 0.1, container.Width)
			for _, cand := range scored {
				if cand.dims.W <= cellWidth+model.PositionTolerance && cellTop+cand.dims.H <= container.Height {
					pos := model.Position{X: cell.X, Y: rowY, Z: cellTop}
					pb := model.NewPlacedBox(s.boxType, cand.dims, pos)
					result.Placed = append(result.Placed, pb)
					result.ConsumedMain[s.boxType.Key()]++
					cell.Boxes = append(cell.Boxes, pb)
					placed = true
					break
				}
			}
			if placed {
				break
			}
		}
		if !placed {
			stillLeft = append(stillLeft, s)
		}
	}
	_ = stillLeft // remaining slots flow back to the scheduler's remaining-count bookkeeping
}

// widthGapFill draws from the cross-group remainder pool to fill any
// leftover width at the end of the row.
func widthGapFill(result *RowResult, remainder []model.BoxType, container model.Container, rowY float64) {
	if len(remainder) == 0 {
		return
	}

	usedWidth := 0.0
	for _, p := range result.Placed {
		if r := p.RightX(); r > usedWidth {
			usedWidth = r
		}
	}
	gap := container.Width - usedWidth
	if gap <= model.PositionTolerance {
		return
	}

	rowHeight := 0.0
	for _, p := range result.Placed {
		if t := p.TopZ(); t > rowHeight {
			rowHeight = t
		}
	}
	if rowHeight == 0 {
		rowHeight = container.Height
	}

	candidates := append([]model.BoxType(nil), remainder...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Dimensions.W*candidates[i].Dimensions.L < candidates[j].Dimensions.W*candidates[j].Dimensions.L
	})

	x := usedWidth
	z := 0.0
	columnMaxWidth := 0.0
	for i := range candidates {
		bt := candidates[i]
		for bt.Quantity > 0 {
			fit, dims, ok := bestFitWithinGap(bt, x, container.Width, z, rowHeight)
			if !ok {
				break
			}
			pos := model.Position{X: x, Y: rowY, Z: z}
			result.Placed = append(result.Placed, model.NewPlacedBox(bt, dims, pos))
			result.ConsumedRemainder[bt.Key()]++
			bt.Quantity--
			z += dims.H
			if dims.W > columnMaxWidth {
				columnMaxWidth = dims.W
			}
			_ = fit
			if z >= rowHeight {
				x += columnMaxWidth
				z = 0
				columnMaxWidth = 0
			}
		}
	}
}

func bestFitWithinGap(bt model.BoxType, x, containerW, z, rowHeight float64) (float64, model.Dimensions, bool) {
	for _, o := range orientation.All(bt.Dimensions, bt.PackingMethod) {
		if x+o.W <= containerW && z+o.H <= rowHeight {
			return o.W, o, true
		}
	}
	return 0, model.Dimensions{}, false
}
