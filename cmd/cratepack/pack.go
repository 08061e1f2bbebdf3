package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/format"
	"github.com/piwi3910/cratepack/internal/manifest"
	"github.com/piwi3910/cratepack/internal/model"
	"github.com/piwi3910/cratepack/internal/packer"
)

func newPackCmd() *cobra.Command {
	var (
		manifestPath string
		algorithm    string
		width        float64
		length       float64
		height       float64
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack a box-type manifest into containers",
		RunE: func(cmd *cobra.Command, args []string) error {
			boxTypes, err := loadManifest(manifestPath)
			if err != nil {
				return err
			}

			settings, err := config.Load(resolveConfigPath(configPath))
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			container := model.Container{Width: width, Length: length, Height: height}

			slog.Debug("pack: starting run", "algorithm", algorithm, "box_types", len(boxTypes), "container", container)

			result, err := packer.Run(packer.Request{
				Algorithm: packer.Algorithm(algorithm),
				Container: container,
				BoxTypes:  boxTypes,
				Settings:  settings,
			})
			if err != nil {
				return err
			}

			report := format.Format(result.Containers)
			return printJSON(cmd, map[string]any{
				"report":          report,
				"unplaced_boxes":  result.UnplacedBoxes,
				"oversized_codes": result.OversizedCodes,
			})
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a CSV or XLSX box-type manifest (required)")
	cmd.Flags().StringVar(&algorithm, "algorithm", string(packer.ZFirst), "packing algorithm: z_first, laff, simple_index, guided")
	cmd.Flags().Float64Var(&width, "width", 0, "container inner width (required)")
	cmd.Flags().Float64Var(&length, "length", 0, "container inner length (required)")
	cmd.Flags().Float64Var(&height, "height", 0, "container inner height (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a settings JSON file (defaults to ~/.cratepack/config.json)")
	cmd.MarkFlagRequired("manifest")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("length")
	cmd.MarkFlagRequired("height")

	return cmd
}

func resolveConfigPath(path string) string {
	if path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

func loadManifest(path string) ([]model.BoxType, error) {
	var result manifest.ImportResult
	if isExcel(path) {
		result = manifest.ImportExcel(path)
	} else {
		result = manifest.ImportCSV(path)
	}
	for _, w := range result.Warnings {
		slog.Warn("manifest import", "warning", w)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("manifest import failed: %v", result.Errors)
	}
	return result.BoxTypes, nil
}

func isExcel(path string) bool {
	n := len(path)
	return n >= 5 && (path[n-5:] == ".xlsx" || path[n-4:] == ".xls")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
