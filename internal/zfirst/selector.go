package zfirst

import (
	"sort"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/orientation"
)

// LengthCandidate is one dominant-length option the selector considered.
type LengthCandidate struct {
	Length        float64
	Quantity      int
	DistinctCodes int
	Score         float64
}

// lengthTolerance groups orientation lengths that differ by this much into
// the same candidate bucket.
const lengthTolerance = 0.5

// SelectDominantLength chooses the row's target Y-extent from the
// candidate pool, returning the primary length, the secondary length (if
// one qualifies), and the top-3 candidates for retry.
func SelectDominantLength(pool []model.BoxType, containerW float64, cfg config.Settings) (primary float64, secondary float64, hasSecondary bool, top3 []LengthCandidate) {
	type bucket struct {
		length        float64
		quantity      int
		codes         map[string]bool
		widthSum      float64
		widthsCounted map[string]bool
	}
	var buckets []*bucket

	find := func(length float64) *bucket {
		for _, b := range buckets {
			if diff(b.length, length) <= lengthTolerance {
				return b
			}
		}
		return nil
	}

	for _, bt := range pool {
		if bt.Quantity <= 0 {
			continue
		}
		for _, o := range orientation.All(bt.Dimensions, bt.PackingMethod) {
			b := find(o.L)
			if b == nil {
				b = &bucket{length: o.L, codes: map[string]bool{}, widthsCounted: map[string]bool{}}
				buckets = append(buckets, b)
			}
			b.quantity += bt.Quantity
			b.codes[bt.Code] = true
			widthKey := bt.Code
			if !b.widthsCounted[widthKey] {
				b.widthsCounted[widthKey] = true
				b.widthSum += o.W
			}
		}
	}

	if len(buckets) == 0 {
		return 0, 0, false, nil
	}

	maxQty := 0
	for _, b := range buckets {
		if b.quantity > maxQty {
			maxQty = b.quantity
		}
	}

	candidates := make([]LengthCandidate, len(buckets))
	anyQualifies := false
	for i, b := range buckets {
		widthUtil := b.widthSum / containerW
		if widthUtil > 1 {
			widthUtil = 1
		}
		normQty := 0.0
		if maxQty > 0 {
			normQty = float64(b.quantity) / float64(maxQty)
		}
		score := cfg.WidthUtilWeight*widthUtil + cfg.QuantityWeight*normQty
		if widthUtil >= 0.7 {
			anyQualifies = true
		}
		candidates[i] = LengthCandidate{Length: b.length, Quantity: b.quantity, DistinctCodes: len(b.codes), Score: score}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })

	if !anyQualifies {
		// Fall back to the pure quantity leader.
		byQty := append([]LengthCandidate(nil), candidates...)
		sort.Slice(byQty, func(i, j int) bool { return byQty[i].Quantity > byQty[j].Quantity })
		candidates = byQty
	}

	primary = candidates[0].Length

	totalQty := 0
	for _, b := range buckets {
		totalQty += b.quantity
	}

	if len(candidates) > 1 {
		second := candidates[1]
		if diff(second.Length, primary) > 3.0 && float64(second.Quantity) >= 0.3*float64(totalQty) {
			secondary = second.Length
			hasSecondary = true
		}
	}

	n := len(candidates)
	if n > 3 {
		n = 3
	}
	return primary, secondary, hasSecondary, candidates[:n]
}

func diff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d
}
