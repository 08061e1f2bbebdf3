// Package guided implements the Guided packing algorithm: pack rows
// according to a manually captured layout template (its list of rows and
// each row's recorded length) instead of deriving row geometry from the
// box pool itself. With no template it falls back to Z-First.
package guided

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/zfirst"
)

// RowTemplate is one row of a captured manual layout.
type RowTemplate struct {
	Row      int     `json:"row"`
	Length   float64 `json:"length"`
	BoxCount int     `json:"box_count"`
}

// Template is the decoded manual-layout reference file.
type Template struct {
	TotalRows      int           `json:"total_rows"`
	TotalLengthUsed float64      `json:"total_length_used"`
	Rows           []RowTemplate `json:"rows"`
}

type templateFile struct {
	Reference Template `json:"manual_packing_reference"`
}

// ErrNoTemplate is returned by LoadTemplate when the path is empty or the
// file doesn't exist; callers fall back to zfirst.Pack in that case.
var ErrNoTemplate = fmt.Errorf("guided: no manual layout template configured")

// LoadTemplate reads and decodes a manual-layout reference file.
func LoadTemplate(path string) (Template, error) {
	if path == "" {
		return Template{}, ErrNoTemplate
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Template{}, ErrNoTemplate
		}
		return Template{}, fmt.Errorf("guided: reading template: %w", err)
	}
	var tf templateFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return Template{}, fmt.Errorf("guided: decoding template: %w", err)
	}
	if len(tf.Reference.Rows) == 0 {
		return Template{}, ErrNoTemplate
	}
	return tf.Reference, nil
}

// Pack packs against the template's row structure: each row is allotted
// the template's recorded length (rather than a dominant-length
// selection), then filled with the Z-First row packer against the
// remaining box pool. With no usable template it falls back to
// zfirst.Pack outright.
func Pack(container model.Container, boxTypes []model.BoxType, cfg config.Settings) (model.PackResult, error) {
	tmpl, err := LoadTemplate(cfg.GuidedTemplatePath)
	if err != nil {
		return zfirst.Pack(container, boxTypes, cfg)
	}

	remaining := map[model.Key]int{}
	byKey := map[model.Key]model.BoxType{}
	for _, bt := range boxTypes {
		k := bt.Key()
		remaining[k] += bt.Quantity
		byKey[k] = bt
	}

	cr := model.NewContainerResult(1, container)
	y := cfg.DoorClearance

	for _, rt := range tmpl.Rows {
		pool := poolFrom(remaining, byKey)
		if len(pool) == 0 {
			break
		}
		row := zfirst.PackRow(pool, nil, y, container, rt.Length, 0, false, cfg)
		for k, n := range row.ConsumedMain {
			remaining[k] -= n
		}
		cr.Boxes = append(cr.Boxes, row.Placed...)
		if rt.Length > 0 {
			y += rt.Length
		} else {
			y += rowDepth(row.Placed, y)
		}
	}

	var result model.PackResult
	if len(cr.Boxes) > 0 {
		result.Containers = append(result.Containers, cr)
	}
	for k, n := range remaining {
		if n <= 0 {
			continue
		}
		bt := byKey[k]
		bt.Quantity = n
		result.UnplacedBoxes = append(result.UnplacedBoxes, bt)
	}
	return result, nil
}

func poolFrom(remaining map[model.Key]int, byKey map[model.Key]model.BoxType) []model.BoxType {
	var pool []model.BoxType
	for k, n := range remaining {
		if n <= 0 {
			continue
		}
		bt := byKey[k]
		bt.Quantity = n
		pool = append(pool, bt)
	}
	return pool
}

func rowDepth(placed []model.PlacedBox, rowY float64) float64 {
	depth := 0.0
	for _, p := range placed {
		if d := p.BackY() - rowY; d > depth {
			depth = d
		}
	}
	return depth
}
