package main

import (
	"github.com/spf13/cobra"

	"github.com/geodb-project/geodb/build"
)

func newBuildCmd() *cobra.Command {
	var allPath, altPath, outPath string
	var minPop uint32

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a geodb database from the two GeoNames archive members",
		RunE: func(cmd *cobra.Command, args []string) error {
			return build.Run(cmd.Context(), allPath, altPath, outPath, minPop)
		},
	}

	cmd.Flags().StringVar(&allPath, "all", "", "path to the allCountries.zip archive (required)")
	cmd.Flags().StringVar(&altPath, "alt", "", "path to the alternateNamesV2.zip archive (required)")
	cmd.Flags().StringVar(&outPath, "out", "", "output database path (required)")
	cmd.Flags().Uint32Var(&minPop, "min-pop", 0, "minimum population for a record to be admitted")
	cmd.MarkFlagRequired("all")
	cmd.MarkFlagRequired("alt")
	cmd.MarkFlagRequired("out")

	return cmd
}
