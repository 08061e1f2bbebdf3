// Package zfirst implements the Z-First row-packing algorithm: dominant-length row selection, per-row column-cursor
// packing, a global row scheduler that tracks remaining quantities across
// sort_order groups, and post-processing passes that consolidate the
// result.
package zfirst

import (
	"log/slog"
	"sort"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

// remainingKey identifies one distinguishable box pool for bookkeeping
// across rows.
type remainingKey = model.Key

// rowGapFillUtilThreshold gates the other-groups gap-fill helper: a row
// below this width utilization after its main pack is a candidate.
const rowGapFillUtilThreshold = 0.8

// rowGapFillMaxBoxes caps how many boxes the other-groups gap-fill helper
// pulls into a single row.
const rowGapFillMaxBoxes = 5

// rowRetryHeightThreshold and rowRetryPlacedFraction gate the alternate-L*
// retry: a row shorter than this fraction of container height, having
// placed fewer than this fraction of its candidate pool, is retried with
// the next top-3 length.
const rowRetryHeightThreshold = 0.5
const rowRetryPlacedFraction = 0.3

// Schedule runs the global row scheduler over the full box-type pool for
// one container, producing all rows front-to-back. It returns the placed
// boxes and the box types still remaining afterward, tracked through the
// same per-key bookkeeping used while scheduling (never reconstructed from
// the placed boxes themselves, which don't carry every key field).
func Schedule(container model.Container, boxTypes []model.BoxType, cfg config.Settings) ([]model.PlacedBox, []model.BoxType) {
	remaining := map[remainingKey]int{}
	byKey := map[remainingKey]model.BoxType{}
	for _, bt := range boxTypes {
		k := bt.Key()
		remaining[k] += bt.Quantity
		byKey[k] = bt
	}

	groups := groupBySortOrder(boxTypes)

	var placed []model.PlacedBox
	y := cfg.DoorClearance

	for _, group := range groups {
		groupKeys := map[remainingKey]bool{}
		for _, bt := range group {
			groupKeys[bt.Key()] = true
		}

		for {
			pool := poolFromRemaining(group, remaining, byKey)
			if len(pool) == 0 {
				break
			}

			primary, secondary, hasSecondary, top3 := SelectDominantLength(pool, container.Width, cfg)
			if primary <= 0 {
				break
			}
			if y+primary > container.Length {
				break
			}

			crossGroupRemainder := poolFromRemaining(allRemainingKeys(remaining, byKey), remaining, byKey)
			row := PackRow(pool, crossGroupRemainder, y, container, primary, secondary, hasSecondary, cfg)
			if len(row.Placed) == 0 {
				break
			}

			row = maybeRetryRow(row, pool, crossGroupRemainder, top3, primary, secondary, hasSecondary, y, container, cfg)

			otherGroupPool := poolFromRemaining(otherGroupKeys(remaining, byKey, groupKeys), remaining, byKey)
			gapConsumed := rowGapFill(&row, otherGroupPool, container, y)

			for k, n := range row.ConsumedMain {
				remaining[k] -= n
			}
			for k, n := range row.ConsumedRemainder {
				remaining[k] -= n
			}
			for k, n := range gapConsumed {
				remaining[k] -= n
			}
			placed = append(placed, row.Placed...)

			rowDepth := maxRowDepth(row.Placed, y)
			y += rowDepth
		}
	}

	return placed, allRemainingKeys(remaining, byKey)
}

// maybeRetryRow implements the §4.5 step-4 retry: if the row's height came
// in under rowRetryHeightThreshold of the container height and it placed
// fewer than rowRetryPlacedFraction of its candidate pool, retry once with
// the next top-3 length and keep whichever result places more boxes, or
// (on a tie) reaches a greater height.
func maybeRetryRow(row RowResult, pool, crossGroupRemainder []model.BoxType, top3 []LengthCandidate, primary, secondary float64, hasSecondary bool, y float64, container model.Container, cfg config.Settings) RowResult {
	if len(top3) < 2 || container.Height <= 0 {
		return row
	}

	height := maxHeight(row.Placed)
	totalCandidates := totalBoxQuantity(pool)
	if totalCandidates == 0 {
		return row
	}
	if height >= rowRetryHeightThreshold*container.Height {
		return row
	}
	if float64(len(row.Placed)) >= rowRetryPlacedFraction*float64(totalCandidates) {
		return row
	}

	altLength := top3[1].Length
	if altLength == primary {
		if len(top3) < 3 {
			return row
		}
		altLength = top3[2].Length
	}
	if altLength == primary {
		return row
	}

	alt := PackRow(pool, crossGroupRemainder, y, container, altLength, secondary, hasSecondary, cfg)
	altHeight := maxHeight(alt.Placed)

	slog.Debug("zfirst: retrying row with alternate dominant length", "row_y", y, "primary_length", primary, "alt_length", altLength, "placed", len(row.Placed), "alt_placed", len(alt.Placed))

	if len(alt.Placed) > len(row.Placed) {
		return alt
	}
	if len(alt.Placed) == len(row.Placed) && altHeight > height {
		return alt
	}
	return row
}

// rowGapFill implements §4.5 step 3: when a just-packed row's width
// utilization is still below rowGapFillUtilThreshold, pull up to
// rowGapFillMaxBoxes boxes from groups other than the one just scheduled
// and slot them into the row's existing X-gap without opening a new row.
// PackRow's column cursor never leaves an interior X-gap (each column
// packs flush against the last), so "existing X-gaps" reduces in practice
// to the one trailing gap after the row's last column; this is a
// deliberate simplification, not a missed case (see DESIGN.md).
func rowGapFill(row *RowResult, otherGroupPool []model.BoxType, container model.Container, rowY float64) map[remainingKey]int {
	consumed := map[remainingKey]int{}
	if len(otherGroupPool) == 0 || container.Width <= 0 {
		return consumed
	}

	usedWidth := 0.0
	for _, p := range row.Placed {
		if r := p.RightX(); r > usedWidth {
			usedWidth = r
		}
	}
	if usedWidth/container.Width >= rowGapFillUtilThreshold {
		return consumed
	}

	rowHeight := maxHeight(row.Placed)
	if rowHeight == 0 {
		rowHeight = container.Height
	}

	candidates := append([]model.BoxType(nil), otherGroupPool...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Dimensions.W*candidates[i].Dimensions.L < candidates[j].Dimensions.W*candidates[j].Dimensions.L
	})

	x, z, columnMaxWidth := usedWidth, 0.0, 0.0
	placedCount := 0
	for i := range candidates {
		bt := candidates[i]
		for bt.Quantity > 0 && placedCount < rowGapFillMaxBoxes {
			_, dims, ok := bestFitWithinGap(bt, x, container.Width, z, rowHeight)
			if !ok {
				break
			}
			pos := model.Position{X: x, Y: rowY, Z: z}
			row.Placed = append(row.Placed, model.NewPlacedBox(bt, dims, pos))
			consumed[bt.Key()]++
			bt.Quantity--
			placedCount++
			z += dims.H
			if dims.W > columnMaxWidth {
				columnMaxWidth = dims.W
			}
			if z >= rowHeight {
				x += columnMaxWidth
				z = 0
				columnMaxWidth = 0
			}
		}
		if placedCount >= rowGapFillMaxBoxes {
			break
		}
	}
	if placedCount > 0 {
		slog.Debug("zfirst: row-gap-fill pulled boxes from other groups", "row_y", rowY, "count", placedCount)
	}
	return consumed
}

// groupBySortOrder partitions box types into sort_order buckets, in
// ascending sort_order, so that lower sort_order box types are scheduled
// to fill rows before later groups start.
func groupBySortOrder(boxTypes []model.BoxType) [][]model.BoxType {
	order := map[int][]model.BoxType{}
	var keys []int
	for _, bt := range boxTypes {
		so := bt.EffectiveSortOrder()
		if _, ok := order[so]; !ok {
			keys = append(keys, so)
		}
		order[so] = append(order[so], bt)
	}
	sort.Ints(keys)
	groups := make([][]model.BoxType, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, order[k])
	}
	return groups
}

func poolFromRemaining(candidates []model.BoxType, remaining map[remainingKey]int, byKey map[remainingKey]model.BoxType) []model.BoxType {
	var pool []model.BoxType
	for _, bt := range candidates {
		k := bt.Key()
		n := remaining[k]
		if n <= 0 {
			continue
		}
		single := byKey[k]
		single.Quantity = n
		pool = append(pool, single)
	}
	return pool
}

func allRemainingKeys(remaining map[remainingKey]int, byKey map[remainingKey]model.BoxType) []model.BoxType {
	var out []model.BoxType
	for k, n := range remaining {
		if n <= 0 {
			continue
		}
		bt := byKey[k]
		bt.Quantity = n
		out = append(out, bt)
	}
	return out
}

// otherGroupKeys returns remaining box types whose key isn't in
// groupKeys, i.e. the pool belonging to every sort_order group except the
// one currently being scheduled.
func otherGroupKeys(remaining map[remainingKey]int, byKey map[remainingKey]model.BoxType, groupKeys map[remainingKey]bool) []model.BoxType {
	var out []model.BoxType
	for k, n := range remaining {
		if n <= 0 || groupKeys[k] {
			continue
		}
		bt := byKey[k]
		bt.Quantity = n
		out = append(out, bt)
	}
	return out
}

func maxRowDepth(placed []model.PlacedBox, rowY float64) float64 {
	depth := 0.0
	for _, p := range placed {
		if p.Position.Y < rowY-model.PositionTolerance {
			continue
		}
		if d := p.BackY() - rowY; d > depth {
			depth = d
		}
	}
	return depth
}

func maxHeight(placed []model.PlacedBox) float64 {
	h := 0.0
	for _, p := range placed {
		if t := p.TopZ(); t > h {
			h = t
		}
	}
	return h
}

func totalBoxQuantity(boxTypes []model.BoxType) int {
	total := 0
	for _, bt := range boxTypes {
		total += bt.Quantity
	}
	return total
}
