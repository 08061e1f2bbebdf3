// Package laff implements the LAFF (Largest Area First Fit) packing
// algorithm: place each box into the empty space selected by
// emptyspace.Engine, splitting and merging free space as it goes. On
// overflow it opens a new container; if a box still doesn't fit anywhere,
// the run fails.
package laff

import (
	"fmt"
	"log/slog"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/emptyspace"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/orientation"
)

// Pack runs LAFF over the given container template and box types,
// expanding quantities and opening additional containers as needed.
func Pack(container model.Container, boxTypes []model.BoxType, cfg config.Settings) (model.PackResult, error) {
	var expanded []model.BoxType
	for _, bt := range boxTypes {
		for i := 0; i < bt.Quantity; i++ {
			single := bt
			single.Quantity = 1
			expanded = append(expanded, single)
		}
	}

	var result model.PackResult
	containerID := 0

	for len(expanded) > 0 {
		containerID++
		cr := model.NewContainerResult(containerID, container)
		eng := emptyspace.New(container, cfg.ContainerWalls, cfg.DoorClearance)

		var remaining []model.BoxType
		placedAny := false
		for _, bt := range expanded {
			idx, dims, ok := findFit(eng, bt)
			if !ok {
				remaining = append(remaining, bt)
				continue
			}
			// Check support against the selected space's position before
			// committing Place, which splits/removes that space from the
			// free list: a rejected box must not cost the engine a space
			// it never actually occupied.
			pos := eng.Spaces()[idx].Position
			if bt.PackingMethod == model.PrePack && !emptyspace.HasSupport(cr.Boxes, pos, dims) {
				remaining = append(remaining, bt)
				continue
			}
			pos = eng.Place(idx, dims)
			cr.Boxes = append(cr.Boxes, model.NewPlacedBox(bt, dims, pos))
			placedAny = true
		}

		if len(cr.Boxes) > 0 {
			result.Containers = append(result.Containers, cr)
		}

		if !placedAny {
			// Nothing fit this pass: whatever remains either doesn't fit
			// this container's footprint at all (oversized) or lost a
			// support race; either way opening more containers won't help.
			for _, bt := range remaining {
				if !orientation.FitsContainer(bt.Dimensions, bt.PackingMethod, container.Width, container.Length, container.Height) {
					result.OversizedCodes = append(result.OversizedCodes, bt.Code)
					slog.Warn("laff: box does not fit container in any orientation", "code", bt.Code, "container_id", containerID)
				}
			}
			if len(result.OversizedCodes) > 0 {
				return result, fmt.Errorf("laff: box(es) %v do not fit in the container in any orientation", result.OversizedCodes)
			}
			result.UnplacedBoxes = remaining
			break
		}

		if len(remaining) > 0 {
			slog.Debug("laff: container full, opening another", "container_id", containerID, "remaining_types", len(remaining))
		}

		expanded = remaining
	}

	return result, nil
}

func findFit(eng *emptyspace.Engine, bt model.BoxType) (int, model.Dimensions, bool) {
	for _, dims := range orientation.All(bt.Dimensions, bt.PackingMethod) {
		if idx, ok := eng.Select(dims.W, dims.L, dims.H); ok {
			return idx, dims, true
		}
	}
	return -1, model.Dimensions{}, false
}
