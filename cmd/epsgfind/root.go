package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "epsgfind",
	Short: "UTM zone and EPSG code lookup for geographic coordinates",
	Long: `epsgfind resolves geographic coordinates to projection identifiers.

Given a latitude/longitude pair (decimal degrees or DMS tuples) it derives
the UTM zone, the matching WGS84/UTM EPSG code and a reference table of
standard projections. It can also process whole coordinate tables from
CSV or XLSX files.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
