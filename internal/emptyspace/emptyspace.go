// Package emptyspace implements the LAFF substrate: a set of
// non-overlapping empty cuboids that shrinks as boxes are placed, split
// guillotine-style on each placement and opportunistically merged back
// together. Z-First doesn't use this — it tracks row/column cursors
// instead.
package emptyspace

import "github.com/piwi3910/cratepack/internal/model"

// Space is one free cuboid.
type Space struct {
	Position model.Position
	Dims     model.Dimensions
}

func (s Space) Volume() float64 { return s.Dims.Volume() }

func (s Space) maxX() float64 { return s.Position.X + s.Dims.W }
func (s Space) maxY() float64 { return s.Position.Y + s.Dims.L }
func (s Space) maxZ() float64 { return s.Position.Z + s.Dims.H }

// Engine owns the current free-space list for one container.
type Engine struct {
	spaces []Space
}

// New creates an engine with a single initial cuboid covering
// [wall, W-wall] × [doorClearance, L-wall] × [0, H-wall].
func New(container model.Container, wall, doorClearance float64) *Engine {
	w := container.Width - 2*wall
	l := container.Length - wall - doorClearance
	h := container.Height - wall
	if w <= 0 || l <= 0 || h <= 0 {
		return &Engine{}
	}
	return &Engine{spaces: []Space{{
		Position: model.Position{X: wall, Y: doorClearance, Z: 0},
		Dims:     model.Dimensions{W: w, L: l, H: h},
	}}}
}

// Spaces returns the current free-space list (read-only use expected).
func (e *Engine) Spaces() []Space { return e.spaces }

// Select picks the space a box should be placed into: lowest z first, then
// largest base area, then smallest height.
func (e *Engine) Select(needW, needL, needH float64) (int, bool) {
	best := -1
	for i, s := range e.spaces {
		if needW > s.Dims.W || needL > s.Dims.L || needH > s.Dims.H {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := e.spaces[best]
		if s.Position.Z < b.Position.Z {
			best = i
		} else if s.Position.Z == b.Position.Z {
			sArea, bArea := s.Dims.W*s.Dims.L, b.Dims.W*b.Dims.L
			if sArea > bArea {
				best = i
			} else if sArea == bArea && s.Dims.H < b.Dims.H {
				best = i
			}
		}
	}
	return best, best >= 0
}

// Place removes the space at idx and splits/merges around a box of the
// given dimensions placed at that space's minimum corner. Returns the
// placement position.
func (e *Engine) Place(idx int, dims model.Dimensions) model.Position {
	space := e.spaces[idx]
	pos := space.Position
	e.spaces = append(e.spaces[:idx], e.spaces[idx+1:]...)

	var children []Space
	// Right remainder.
	if rem := space.Dims.W - dims.W; rem > 0.001 {
		children = append(children, Space{
			Position: model.Position{X: pos.X + dims.W, Y: pos.Y, Z: pos.Z},
			Dims:     model.Dimensions{W: rem, L: space.Dims.L, H: space.Dims.H},
		})
	}
	// Front remainder, limited to the placed box's x/z footprint.
	if rem := space.Dims.L - dims.L; rem > 0.001 {
		children = append(children, Space{
			Position: model.Position{X: pos.X, Y: pos.Y + dims.L, Z: pos.Z},
			Dims:     model.Dimensions{W: dims.W, L: rem, H: dims.H},
		})
	}
	// Top remainder, limited to the placed box's x/y footprint.
	if rem := space.Dims.H - dims.H; rem > 0.001 {
		children = append(children, Space{
			Position: model.Position{X: pos.X, Y: pos.Y, Z: pos.Z + dims.H},
			Dims:     model.Dimensions{W: dims.W, L: dims.L, H: rem},
		})
	}

	e.spaces = append(e.spaces, children...)
	e.merge()
	return pos
}

// merge opportunistically coalesces pairs of spaces that share a full
// face: equal on two axes, adjacent on the third.
// Not exhaustive — one pass, first match wins, same as the substrate this
// generalizes.
func (e *Engine) merge() {
	for i := 0; i < len(e.spaces); i++ {
		for j := i + 1; j < len(e.spaces); j++ {
			if merged, ok := mergePair(e.spaces[i], e.spaces[j]); ok {
				e.spaces[i] = merged
				e.spaces = append(e.spaces[:j], e.spaces[j+1:]...)
				j = i // re-scan from i+1 against the merged space
			}
		}
	}
}

func mergePair(a, b Space) (Space, bool) {
	const tol = 0.01
	sameX := floatsEqual(a.Position.X, b.Position.X, tol) && floatsEqual(a.Dims.W, b.Dims.W, tol)
	sameY := floatsEqual(a.Position.Y, b.Position.Y, tol) && floatsEqual(a.Dims.L, b.Dims.L, tol)
	sameZ := floatsEqual(a.Position.Z, b.Position.Z, tol) && floatsEqual(a.Dims.H, b.Dims.H, tol)

	switch {
	case sameY && sameZ && floatsEqual(a.maxX(), b.Position.X, tol):
		return Space{Position: a.Position, Dims: model.Dimensions{W: a.Dims.W + b.Dims.W, L: a.Dims.L, H: a.Dims.H}}, true
	case sameY && sameZ && floatsEqual(b.maxX(), a.Position.X, tol):
		return Space{Position: b.Position, Dims: model.Dimensions{W: a.Dims.W + b.Dims.W, L: a.Dims.L, H: a.Dims.H}}, true
	case sameX && sameZ && floatsEqual(a.maxY(), b.Position.Y, tol):
		return Space{Position: a.Position, Dims: model.Dimensions{W: a.Dims.W, L: a.Dims.L + b.Dims.L, H: a.Dims.H}}, true
	case sameX && sameZ && floatsEqual(b.maxY(), a.Position.Y, tol):
		return Space{Position: b.Position, Dims: model.Dimensions{W: a.Dims.W, L: a.Dims.L + b.Dims.L, H: a.Dims.H}}, true
	case sameX && sameY && floatsEqual(a.maxZ(), b.Position.Z, tol):
		return Space{Position: a.Position, Dims: model.Dimensions{W: a.Dims.W, L: a.Dims.L, H: a.Dims.H + b.Dims.H}}, true
	case sameX && sameY && floatsEqual(b.maxZ(), a.Position.Z, tol):
		return Space{Position: b.Position, Dims: model.Dimensions{W: a.Dims.W, L: a.Dims.L, H: a.Dims.H + b.Dims.H}}, true
	}
	return Space{}, false
}

func floatsEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// HasSupport checks the PRE_PACK stacking rule: a placement at z>0 is
// legal only if some already-placed box's top face lies within tolerance
// directly beneath it, with overlapping x/y footprints. CARTON has no
// such check, so callers should skip this for CARTON boxes.
func HasSupport(placed []model.PlacedBox, pos model.Position, dims model.Dimensions) bool {
	if pos.Z <= 0.0001 {
		return true
	}
	const tol = 0.1
	candidate := model.PlacedBox{Position: pos, Dimensions: dims}
	for _, p := range placed {
		if d := p.TopZ() - pos.Z; d > -tol && d < tol {
			if candidate.Overlaps2D(p) || touches2D(candidate, p) {
				return true
			}
		}
	}
	return false
}

// touches2D reports whether two footprints share area or an edge. Support
// checks treat edge-touching as overlap, unlike the strict placement
// non-overlap check, which excludes touching faces.
func touches2D(a, b model.PlacedBox) bool {
	return a.Position.X < b.RightX()+0.001 && a.RightX() > b.Position.X-0.001 &&
		a.Position.Y < b.BackY()+0.001 && a.BackY() > b.Position.Y-0.001
}
