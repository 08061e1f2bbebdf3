package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/cratepack/internal/compare"
	"github.com/piwi3910/cratepack/internal/config"
	"github.com/piwi3910/cratepack/internal/model"
)

func newCompareCmd() *cobra.Command {
	var (
		manifestPath string
		width        float64
		length       float64
		height       float64
		configPath   string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every packing algorithm against a manifest and report side by side",
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
			scenarios := compare.DefaultScenarios(settings)
			results := compare.Run(scenarios, container, boxTypes)

			return printJSON(cmd, results)
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to a CSV or XLSX box-type manifest (required)")
	cmd.Flags().Float64Var(&width, "width", 0, "container inner width (required)")
	cmd.Flags().Float64Var(&length, "length", 0, "container inner length (required)")
	cmd.Flags().Float64Var(&height, "height", 0, "container inner height (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a settings JSON file")
	cmd.MarkFlagRequired("manifest")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("length")
	cmd.MarkFlagRequired("height")

	return cmd
}
