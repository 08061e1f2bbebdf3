package zfirst

import (
	"log/slog"
	"sort"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/orientation"
)

// RowResult is the outcome of packing one row.
type RowResult struct {
	Placed            []model.PlacedBox
	ConsumedMain      map[model.Key]int
	ConsumedRemainder map[model.Key]int
}

func methodPriority(m model.PackingMethod) int {
	if m == model.PrePack {
		return 0
	}
	return 1
}

// slot is one individual box instance awaiting placement within a row.
type slot struct {
	boxType model.BoxType
}

// expandSorted sorts candidates by (method_priority, sort_order,
// -quantity, height, -base_area) and expands each by quantity into
// individual slots, preserving that order.
func expandSorted(pool []model.BoxType) []slot {
	sorted := append([]model.BoxType(nil), pool...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if methodPriority(a.PackingMethod) != methodPriority(b.PackingMethod) {
			return methodPriority(a.PackingMethod) < methodPriority(b.PackingMethod)
		}
		if a.EffectiveSortOrder() != b.EffectiveSortOrder() {
			return a.EffectiveSortOrder() < b.EffectiveSortOrder()
		}
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Dimensions.H != b.Dimensions.H {
			return a.Dimensions.H < b.Dimensions.H
		}
		return a.Dimensions.W*a.Dimensions.L > b.Dimensions.W*b.Dimensions.L
	})

	var slots []slot
	for _, bt := range sorted {
		for i := 0; i < bt.Quantity; i++ {
			single := bt
			single.Quantity = 1
			slots = append(slots, slot{boxType: single})
		}
	}
	return slots
}

// minLengthDeviation reports the smallest deviation from target length
// across a slot's legal orientations.
func minLengthDeviation(bt model.BoxType, target float64) float64 {
	best := -1.0
	for _, o := range orientation.All(bt.Dimensions, bt.PackingMethod) {
		d := diff(o.L, target)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// scoredOrientation is one candidate orientation for a slot, with its
// placement score.
type scoredOrientation struct {
	dims  model.Dimensions
	score float64
}

func scoreSlot(bt model.BoxType, primaryL, secondaryL float64, hasSecondary bool, tau, wWeight, lWeight, containerW float64) []scoredOrientation {
	var out []scoredOrientation
	for _, o := range orientation.All(bt.Dimensions, bt.PackingMethod) {
		matchScore := 1.0
		if diff(o.L, primaryL) <= tau {
			matchScore = 0
		} else if hasSecondary && diff(o.L, secondaryL) <= tau {
			matchScore = 0.5
		}
		score := wWeight*(o.W/containerW) + lWeight*matchScore
		out = append(out, scoredOrientation{dims: o, score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].score > out[j].score })
	return out
}

// PackRow fills one row starting at rowY, following the Z-first column
// cursor strategy.
func PackRow(candidates []model.BoxType, remainder []model.BoxType, rowY float64, container model.Container, primaryL, secondaryL float64, hasSecondary bool, cfg config.Settings) RowResult {
	result := RowResult{ConsumedMain: map[model.Key]int{}, ConsumedRemainder: map[model.Key]int{}}

	slots := expandSorted(candidates)
	if len(slots) == 0 {
		return result
	}

	tau := cfg.InitialToleranceNoSecondary
	if hasSecondary {
		tau = cfg.InitialToleranceWithSecondary
	}

	eligible := func(s slot, tauVal float64) bool {
		if minLengthDeviation(s.boxType, primaryL) <= tauVal {
			return true
		}
		return hasSecondary && minLengthDeviation(s.boxType, secondaryL) <= tauVal
	}

	matching := 0
	for _, s := range slots {
		if eligible(s, tau) {
			matching++
		}
	}
	if float64(matching) < 0.5*float64(len(slots)) {
		tau = 3.0
		matching = 0
		for _, s := range slots {
			if eligible(s, tau) {
				matching++
			}
		}
	}
	filterActive := matching >= 10

	x, z, columnMaxWidth := 0.0, 0.0, 0.0
	placedCount := 0
	relaxEvery := 10
	if p4 := len(slots) / 4; p4 > relaxEvery {
		relaxEvery = p4
	}

	var leftover []slot

	widthUtil := func() float64 {
		if container.Width == 0 {
			return 0
		}
		return x / container.Width
	}

	for _, s := range slots {
		if filterActive && !eligible(s, tau) {
			leftover = append(leftover, s)
			continue
		}

		wWeight, lWeight := cfg.WeightWLow, cfg.WeightLLow
		if widthUtil() < 0.7 && placedCount >= 10 {
			wWeight, lWeight = cfg.WeightWHigh, cfg.WeightLHigh
		}

		scored := scoreSlot(s.boxType, primaryL, secondaryL, hasSecondary, tau, wWeight, lWeight, container.Width)

		placed := false
		for _, cand := range scored {
			if x+cand.dims.W <= container.Width && z+cand.dims.H <= container.Height {
				pos := model.Position{X: x, Y: rowY, Z: z}
				result.Placed = append(result.Placed, model.NewPlacedBox(s.boxType, cand.dims, pos))
				result.ConsumedMain[s.boxType.Key()]++
				z += cand.dims.H
				if cand.dims.W > columnMaxWidth {
					columnMaxWidth = cand.dims.W
				}
				placed = true
				placedCount++
				break
			}
		}

		if !placed {
			// Column full vertically at the current x; advance and retry once.
			x += columnMaxWidth
			z = 0
			columnMaxWidth = 0
			for _, cand := range scored {
				if x+cand.dims.W <= container.Width && z+cand.dims.H <= container.Height {
					pos := model.Position{X: x, Y: rowY, Z: z}
					result.Placed = append(result.Placed, model.NewPlacedBox(s.boxType, cand.dims, pos))
					result.ConsumedMain[s.boxType.Key()]++
					z += cand.dims.H
					columnMaxWidth = cand.dims.W
					placed = true
					placedCount++
					break
				}
			}
		}

		if !placed {
			leftover = append(leftover, s)
			continue
		}

		if placedCount%relaxEvery == 0 && widthUtil() < 0.8 && tau < 3.0 {
			tau += 1.0
			slog.Debug("zfirst: relaxing row length tolerance", "row_y", rowY, "placed_count", placedCount, "tau", tau)
		}
	}

	activeCellHeightFill(&result, leftover, container, primaryL, secondaryL, hasSecondary, tau, rowY)
	widthGapFill(&result, remainder, container, rowY)

	return result
}
