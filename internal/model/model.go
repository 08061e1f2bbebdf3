// Package model defines the shared data types for container loading: box
// types, container geometry, and the placements produced by a packing run.
package model

import "github.com/google/uuid"

// PackingMethod constrains which orientations a box type may take.
type PackingMethod string

const (
	PrePack PackingMethod = "PRE_PACK"
	Carton  PackingMethod = "CARTON"
)

// DefaultSortOrder is the sentinel sort_order used when a box type doesn't
// specify one; it sorts last.
const DefaultSortOrder = 999

// Dimensions is a box's extent along the container's three axes.
type Dimensions struct {
	W float64 `json:"w"`
	L float64 `json:"l"`
	H float64 `json:"h"`
}

func (d Dimensions) Volume() float64 { return d.W * d.L * d.H }

// Permute returns d with its three axes reassigned (w,l,h).
func (d Dimensions) Permute(w, l, h float64) Dimensions {
	return Dimensions{W: w, L: l, H: h}
}

// Position is the minimum corner of a placed box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoxType is a read-only input: one kind of box and how many are requested.
type BoxType struct {
	Code          string        `json:"code"`
	Dimensions    Dimensions    `json:"dimensions"`
	Quantity      int           `json:"quantity"`
	PackingMethod PackingMethod `json:"packing_method"`
	Material      string        `json:"material,omitempty"`
	PurchasingDoc string        `json:"purchasing_doc,omitempty"`
	SortOrder     int           `json:"sort_order"`
}

// Key identifies a box type for remaining-count bookkeeping.
type Key struct {
	Code          string
	Material      string
	PurchasingDoc string
	Method        PackingMethod
}

func (b BoxType) Key() Key {
	return Key{Code: b.Code, Material: b.Material, PurchasingDoc: b.PurchasingDoc, Method: b.PackingMethod}
}

func (b BoxType) EffectiveSortOrder() int {
	if b.SortOrder == 0 {
		return DefaultSortOrder
	}
	return b.SortOrder
}

// PlacedBox is one concrete box instance after packing.
type PlacedBox struct {
	InstanceID    string        `json:"instance_id"`
	Code          string        `json:"code"`
	Dimensions    Dimensions    `json:"dimensions"`
	Position      Position      `json:"position"`
	Material      string        `json:"material,omitempty"`
	PackingMethod PackingMethod `json:"packing_method"`
}

func NewPlacedBox(bt BoxType, dims Dimensions, pos Position) PlacedBox {
	return PlacedBox{
		InstanceID:    uuid.New().String()[:8],
		Code:          bt.Code,
		Dimensions:    dims,
		Position:      pos,
		Material:      bt.Material,
		PackingMethod: bt.PackingMethod,
	}
}

// TopZ returns the z-coordinate of the box's top face.
func (p PlacedBox) TopZ() float64 { return p.Position.Z + p.Dimensions.H }

// RightX returns the x-coordinate of the box's right face.
func (p PlacedBox) RightX() float64 { return p.Position.X + p.Dimensions.W }

// BackY returns the y-coordinate of the box's far face.
func (p PlacedBox) BackY() float64 { return p.Position.Y + p.Dimensions.L }

// Overlaps2D reports whether the box's x/y footprint overlaps another's,
// treating touching faces as non-overlapping.
func (p PlacedBox) Overlaps2D(o PlacedBox) bool {
	return p.Position.X < o.RightX() && p.RightX() > o.Position.X &&
		p.Position.Y < o.BackY() && p.BackY() > o.Position.Y
}

// Overlaps3D reports whether two placed boxes overlap in their open
// interiors.
func (p PlacedBox) Overlaps3D(o PlacedBox) bool {
	return p.Position.X < o.RightX() && p.RightX() > o.Position.X &&
		p.Position.Y < o.BackY() && p.BackY() > o.Position.Y &&
		p.Position.Z < o.TopZ() && p.TopZ() > o.Position.Z
}

// Container is the inner volume boxes are packed into.
type Container struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// ContainerResult is one packed container in the output.
type ContainerResult struct {
	ContainerID int           `json:"container_id"`
	RunID       string        `json:"run_id"`
	Dimensions  Container     `json:"dimensions"`
	Boxes       []PlacedBox   `json:"boxes"`
}

func NewContainerResult(id int, dims Container) ContainerResult {
	return ContainerResult{ContainerID: id, RunID: uuid.New().String()[:8], Dimensions: dims}
}

// PackResult is the full output of a packing run: zero or more containers
// plus whatever could not be placed.
type PackResult struct {
	Containers     []ContainerResult `json:"containers"`
	UnplacedBoxes  []BoxType         `json:"unplaced_boxes"`
	OversizedCodes []string          `json:"oversized_codes,omitempty"`
}

func (m PackingMethod) Valid() bool {
	return m == PrePack || m == Carton
}
