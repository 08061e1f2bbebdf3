// Package config holds the tunable parameters the packing core recognizes
// and persists them the way the original
// desktop tool persisted its settings: a JSON file in a directory under the
// user's home directory (~/.cratepack).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds the tunable buffers, tolerances, and dominant-length /
// orientation scoring weights the packing core reads.
type Settings struct {
	DoorClearance   float64 `json:"door_clearance"`
	ContainerWalls  float64 `json:"container_walls"`
	BetweenItems    float64 `json:"between_items"`
	InitialToleranceNoSecondary float64 `json:"initial_tolerance_no_secondary"`
	InitialToleranceWithSecondary float64 `json:"initial_tolerance_with_secondary"`

	// Dominant-length selector weights.
	WidthUtilWeight float64 `json:"width_util_weight"`
	QuantityWeight  float64 `json:"quantity_weight"`

	// Row-packer orientation-scoring weight pairs.
	WeightWHigh float64 `json:"weight_w_high"` // used when util < 70% and >=10 placed
	WeightLHigh float64 `json:"weight_l_high"`
	WeightWLow  float64 `json:"weight_w_low"`
	WeightLLow  float64 `json:"weight_l_low"`

	// Guided algorithm template path; empty means no template configured.
	GuidedTemplatePath string `json:"guided_template_path,omitempty"`

	// HeightRelaxation is the amount (container-height units) by which the
	// row-consolidation pass is allowed to exceed a row's own depth when
	// merging in a neighboring row. Zero means off.
	HeightRelaxation float64 `json:"height_relaxation"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		DoorClearance:                 10.0,
		ContainerWalls:                0.0,
		BetweenItems:                  0.5,
		InitialToleranceNoSecondary:   1.0,
		InitialToleranceWithSecondary: 2.0,
		WidthUtilWeight:               0.6,
		QuantityWeight:                0.4,
		WeightWHigh:                   0.9,
		WeightLHigh:                   0.1,
		WeightWLow:                    0.7,
		WeightLLow:                    0.3,
		HeightRelaxation:              0,
	}
}

// DefaultConfigDir returns ~/.cratepack.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cratepack")
}

// DefaultConfigPath returns ~/.cratepack/config.json.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// Save persists settings as indented JSON, creating parent directories.
func Save(path string, s Settings) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads settings from path, returning DefaultSettings if the file
// doesn't exist yet.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
