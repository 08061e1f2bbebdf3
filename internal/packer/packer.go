// Package packer is the single entry point callers use to run a packing
// job: it resolves an Algorithm tag to the matching implementation and
// normalizes all of their results into one model.PackResult.
package packer

import (
	"fmt"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/guided"
	"github.com/piwi3910/cratepack/internal/laff"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/simpleindex"
	"github.com/piwi3910/cratepack/internal/zfirst"
)

// Algorithm selects which packing strategy Run dispatches to.
type Algorithm string

const (
	ZFirst      Algorithm = "z_first"
	LAFF        Algorithm = "laff"
	SimpleIndex Algorithm = "simple_index"
	Guided      Algorithm = "guided"
)

// Request bundles everything one packing run needs.
type Request struct {
	Algorithm Algorithm
	Container model.Container
	BoxTypes  []model.BoxType
	Settings  config.Settings
}

// Run dispatches to the requested algorithm and returns its result.
func Run(req Request) (model.PackResult, error) {
	for _, bt := range req.BoxTypes {
		if !bt.PackingMethod.Valid() {
			return model.PackResult{}, fmt.Errorf("packer: box %q has invalid packing_method %q", bt.Code, bt.PackingMethod)
		}
	}

	switch req.Algorithm {
	case LAFF:
		return laff.Pack(req.Container, req.BoxTypes, req.Settings)
	case SimpleIndex:
		return simpleindex.Pack(req.Container, req.BoxTypes, req.Settings), nil
	case Guided:
		return guided.Pack(req.Container, req.BoxTypes, req.Settings)
	case ZFirst, "":
		return zfirst.Pack(req.Container, req.BoxTypes, req.Settings)
	default:
		return model.PackResult{}, fmt.Errorf("packer: unknown algorithm %q", req.Algorithm)
	}
}
