package zfirst

import (
	"fmt"
	"log/slog"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/orientation"
)

// Pack runs the Z-First algorithm: schedule rows for one container at a
// time, post-process the result, and open another container for whatever
// didn't fit, same overflow/oversize handling as LAFF.
func Pack(container model.Container, boxTypes []model.BoxType, cfg config.Settings) (model.PackResult, error) {
	remaining := append([]model.BoxType(nil), boxTypes...)

	var result model.PackResult
	containerID := 0

	for totalQuantity(remaining) > 0 {
		containerID++
		placed, next := Schedule(container, remaining, cfg)
		placed = PostProcess(container, placed, cfg)

		if len(placed) > 0 {
			cr := model.NewContainerResult(containerID, container)
			cr.Boxes = placed
			result.Containers = append(result.Containers, cr)
		}

		// next already reflects Schedule's own per-key bookkeeping, the
		// only place that tracks consumption against the full key
		// (including purchasing_doc); PlacedBox doesn't carry that field,
		// so it can never be used to reconstruct a correct remaining list.
		remaining = next

		if len(placed) == 0 {
			var oversized []string
			for _, bt := range remaining {
				if bt.Quantity <= 0 {
					continue
				}
				if !orientation.FitsContainer(bt.Dimensions, bt.PackingMethod, container.Width, container.Length, container.Height) {
					oversized = append(oversized, bt.Code)
					slog.Warn("zfirst: box does not fit container in any orientation", "code", bt.Code, "container_id", containerID)
				}
			}
			if len(oversized) > 0 {
				result.OversizedCodes = oversized
				return result, fmt.Errorf("zfirst: box(es) %v do not fit in the container in any orientation", oversized)
			}
			result.UnplacedBoxes = nonZero(remaining)
			break
		}

		if totalQuantity(remaining) > 0 {
			slog.Debug("zfirst: container full, opening another", "container_id", containerID, "remaining_types", len(remaining))
		}
	}

	return result, nil
}

func totalQuantity(boxTypes []model.BoxType) int {
	total := 0
	for _, bt := range boxTypes {
		total += bt.Quantity
	}
	return total
}

func nonZero(boxTypes []model.BoxType) []model.BoxType {
	var out []model.BoxType
	for _, bt := range boxTypes {
		if bt.Quantity > 0 {
			out = append(out, bt)
		}
	}
	return out
}
