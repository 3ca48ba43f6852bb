package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"epsg-finder-service/internal/adapters/tabular"
	"epsg-finder-service/internal/domain"
	"epsg-finder-service/internal/services"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve a whole coordinate table from a CSV or XLSX file",
	Long: `Resolve every row of a coordinate table.

The input file must carry "lat" and "lon" columns (any letter case). Each
row gains the UTM zone, the EPSG code and an epsg.io lookup link; rows
whose coordinates do not parse are marked with the error instead and the
remaining rows still resolve.

Examples:
  epsgfind batch --in points.csv --out out.csv
  epsgfind batch --in survey.xlsx --out out.csv --workers 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		workers, _ := cmd.Flags().GetInt("workers")

		tbl, err := tabular.ReadFile(in)
		if err != nil {
			return err
		}

		rows, err := services.ResolveTable(tbl, services.BatchOptions{Workers: workers})
		if err != nil {
			var missing *domain.MissingColumnsError
			if errors.As(err, &missing) {
				return fmt.Errorf("%s is missing required columns: %v", in, missing.Missing)
			}
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %q: %w", out, err)
		}
		defer f.Close()

		if err := tabular.WriteCSV(f, rows); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %q: %w", out, err)
		}

		fmt.Printf("Processed %d records (%d failed) -> %s\n", len(rows), services.CountFailed(rows), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("in", "", "Input table file, .csv or .xlsx (required)")
	batchCmd.Flags().String("out", "", "Output CSV file (required)")
	batchCmd.Flags().Int("workers", 0, "Concurrent row resolution cap (0 = default)")
	batchCmd.MarkFlagRequired("in")
	batchCmd.MarkFlagRequired("out")
}
