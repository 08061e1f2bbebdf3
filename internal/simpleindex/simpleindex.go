// Package simpleindex implements the Simple-Index packing algorithm:
// process box types strictly in input order (never sorted), pick each
// box's minimum-volume legal orientation, and pack cell-by-cell (fill
// height, then width, then start a new row).
package simpleindex

import (
	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

const cellFullThreshold = 0.95

// Pack packs boxes into a single container in input order. Unlike LAFF and
// Z-First, Simple-Index never opens a second container or reports
// oversized boxes distinctly — a box that fits nowhere is just skipped,
// same as the algorithm it is grounded on.
func Pack(container model.Container, boxTypes []model.BoxType, cfg config.Settings) model.PackResult {
	var expanded []model.BoxType
	for _, bt := range boxTypes {
		for i := 0; i < bt.Quantity; i++ {
			single := bt
			single.Quantity = 1
			expanded = append(expanded, single)
		}
	}

	cr := model.NewContainerResult(1, container)

	x, y, z := 0.0, cfg.DoorClearance, 0.0
	cellWidth := 0.0
	rowLength := 0.0
	const defaultRowLength = 34.0

	var unplaced []model.BoxType

	for _, bt := range expanded {
		dims, ok := bestOrientation(bt.Dimensions, container)
		if !ok {
			unplaced = append(unplaced, bt)
			continue
		}

		fitsCurrentCell := z+dims.H <= container.Height && x+dims.W <= container.Width
		if !fitsCurrentCell {
			if z >= container.Height*cellFullThreshold {
				x += cellWidth
				z = 0
				cellWidth = 0
				if x+dims.W > container.Width {
					advanceRow(&y, &x, &z, &cellWidth, &rowLength, defaultRowLength)
				}
			} else if x+dims.W > container.Width {
				advanceRow(&y, &x, &z, &cellWidth, &rowLength, defaultRowLength)
			}
			if x+dims.W > container.Width {
				unplaced = append(unplaced, bt)
				continue
			}
		}

		pos := model.Position{X: x, Y: y, Z: z}
		cr.Boxes = append(cr.Boxes, model.NewPlacedBox(bt, dims, pos))

		z += dims.H
		if dims.W > cellWidth {
			cellWidth = dims.W
		}
		if dims.L > rowLength {
			rowLength = dims.L
		}

		if z >= container.Height*cellFullThreshold {
			x += cellWidth
			z = 0
			cellWidth = 0
			if x >= container.Width*cellFullThreshold {
				advanceRow(&y, &x, &z, &cellWidth, &rowLength, defaultRowLength)
			}
		}
	}

	var result model.PackResult
	if len(cr.Boxes) > 0 {
		result.Containers = append(result.Containers, cr)
	}
	result.UnplacedBoxes = unplaced
	return result
}

func advanceRow(y, x, z, cellWidth, rowLength *float64, defaultRowLength float64) {
	if *rowLength > 0 {
		*y += *rowLength
	} else {
		*y += defaultRowLength
	}
	*x = 0
	*z = 0
	*cellWidth = 0
	*rowLength = 0
}

// bestOrientation tries all six axis permutations and keeps the smallest
// legal volume, breaking ties on smaller height for better stacking.
func bestOrientation(dims model.Dimensions, container model.Container) (model.Dimensions, bool) {
	perms := []model.Dimensions{
		{W: dims.W, L: dims.L, H: dims.H},
		{W: dims.L, L: dims.W, H: dims.H},
		{W: dims.W, L: dims.H, H: dims.L},
		{W: dims.H, L: dims.W, H: dims.L},
		{W: dims.L, L: dims.H, H: dims.W},
		{W: dims.H, L: dims.L, H: dims.W},
	}

	var best model.Dimensions
	found := false
	bestVolume := -1.0
	bestHeight := -1.0

	for _, p := range perms {
		if p.W > container.Width || p.H > container.Height || p.L > container.Length {
			continue
		}
		vol := p.Volume()
		if !found || vol < bestVolume || (vol == bestVolume && p.H < bestHeight) {
			best = p
			bestVolume = vol
			bestHeight = p.H
			found = true
		}
	}
	return best, found
}
