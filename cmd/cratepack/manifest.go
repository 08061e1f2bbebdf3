package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/cratepack/internal/manifest"
)

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect box-type manifests",
	}
	cmd.AddCommand(newManifestValidateCmd())
	return cmd
}

func newManifestValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse a manifest and report errors/warnings without packing",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result manifest.ImportResult
			if isExcel(path) {
				result = manifest.ImportExcel(path)
			} else {
				result = manifest.ImportCSV(path)
			}
			return printJSON(cmd, result)
		},
	}

	cmd.Flags().StringVar(&path, "manifest", "", "path to a CSV or XLSX box-type manifest (required)")
	cmd.MarkFlagRequired("manifest")

	return cmd
}
