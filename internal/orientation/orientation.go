// Package orientation enumerates the legal orientations of a box under its
// packing method and provides the richer fit predicate the
// LAFF substrate uses to pick among them.
package orientation

import "github.com/piwi3910/cratepack/internal/model"

// All returns the legal orientation set for a box type's canonical
// dimensions under its packing method.
//
// CARTON: exactly the two orientations that keep the w×l face on the
// floor. PRE_PACK: those same two, plus — only when h > l — the two
// orientations that stand the box on its (now taller) end.
func All(dims model.Dimensions, method model.PackingMethod) []model.Dimensions {
	w, l, h := dims.W, dims.L, dims.H
	orientations := []model.Dimensions{
		{W: w, L: l, H: h},
		{W: l, L: w, H: h},
	}
	if method == model.PrePack && h > l {
		orientations = append(orientations,
			model.Dimensions{W: l, L: h, H: w},
			model.Dimensions{W: h, L: l, H: w},
		)
	}
	return orientations
}

// CanFit returns the smallest-base-area legal orientation of dims that
// fits within the given available width/length/height, or ok=false if
// none does. allowRotation, when false, restricts the search to the
// canonical (w,l,h) orientation only.
func CanFit(dims model.Dimensions, method model.PackingMethod, availW, availL, availH float64, allowRotation bool) (result model.Dimensions, ok bool) {
	candidates := All(dims, method)
	if !allowRotation {
		candidates = candidates[:1]
	}

	bestArea := -1.0
	for _, c := range candidates {
		if c.W <= availW && c.L <= availL && c.H <= availH {
			area := c.W * c.L
			if bestArea < 0 || area < bestArea {
				bestArea = area
				result = c
				ok = true
			}
		}
	}
	return result, ok
}

// FitsContainer reports whether any legal orientation of dims fits within
// the container's width, length, and height — used to detect an
// OversizedBox: a box type that fits the container in none of its legal
// orientations, checked across every legal orientation rather than just
// the canonical one.
func FitsContainer(dims model.Dimensions, method model.PackingMethod, containerW, containerL, containerH float64) bool {
	for _, c := range All(dims, method) {
		if c.W <= containerW && c.L <= containerL && c.H <= containerH {
			return true
		}
	}
	return false
}
