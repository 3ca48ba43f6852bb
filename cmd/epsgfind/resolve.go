package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"epsg-finder-service/internal/domain"
)

// resolveCmd represents the resolve command.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a single coordinate to its UTM zone and EPSG code",
	Long: `Resolve one coordinate to its UTM zone, EPSG code and the standard
projection reference table.

Examples:
  epsgfind resolve --lat 51.5 --lon -0.1
  epsgfind resolve --lat-dms "51 30 0 N" --lon-dms "0 6 0 W"

DMS tuples are four space-separated fields: degrees minutes seconds direction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := coordFlag(cmd, "lat", "lat-dms", domain.North, domain.South)
		if err != nil {
			return err
		}
		lon, err := coordFlag(cmd, "lon", "lon-dms", domain.East, domain.West)
		if err != nil {
			return err
		}

		coord := domain.Coordinate{Lat: lat, Lon: lon}
		if !coord.InRange() {
			log.Printf("warning: coordinate %.6f, %.6f is outside the standard lat/lon domain; the zone formula is applied unchanged", lat, lon)
		}

		res := domain.Resolve(coord)
		zone := domain.ResolveUTM(lat, lon)

		fmt.Printf("Location: %.6f, %.6f\n", lat, lon)
		fmt.Printf("UTM Zone: %s\n", zone)
		fmt.Printf("EPSG Code: %d\n", zone.EPSG())
		fmt.Println()
		fmt.Println("Projections:")
		for _, e := range res.Projections {
			link := ""
			if code, err := domain.ParseEPSGRef(e.Code); err == nil {
				link = domain.EPSGLookupURL(code)
			}
			fmt.Printf("  %-30s %-11s %s\n", e.Name, e.Code, link)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().Float64("lat", 0, "Latitude in decimal degrees")
	resolveCmd.Flags().Float64("lon", 0, "Longitude in decimal degrees")
	resolveCmd.Flags().String("lat-dms", "", `Latitude as a DMS tuple, e.g. "51 30 0 N"`)
	resolveCmd.Flags().String("lon-dms", "", `Longitude as a DMS tuple, e.g. "0 6 0 W"`)
	resolveCmd.MarkFlagsMutuallyExclusive("lat", "lat-dms")
	resolveCmd.MarkFlagsMutuallyExclusive("lon", "lon-dms")
}

// coordFlag reads one axis from either its decimal flag or its DMS flag.
// The DMS direction must belong to the axis (N/S for latitude, E/W for
// longitude).
func coordFlag(cmd *cobra.Command, ddFlag, dmsFlag string, a, b domain.Direction) (float64, error) {
	if cmd.Flags().Changed(dmsFlag) {
		raw, _ := cmd.Flags().GetString(dmsFlag)
		angle, err := parseDMS(raw)
		if err != nil {
			return 0, fmt.Errorf("--%s: %w", dmsFlag, err)
		}
		if angle.Direction != a && angle.Direction != b {
			return 0, fmt.Errorf("--%s: direction %q must be %s or %s", dmsFlag, angle.Direction, a, b)
		}
		return angle.DecimalDegrees()
	}

	if !cmd.Flags().Changed(ddFlag) {
		return 0, fmt.Errorf("either --%s or --%s is required", ddFlag, dmsFlag)
	}
	v, _ := cmd.Flags().GetFloat64(ddFlag)
	return v, nil
}

// parseDMS parses "degrees minutes seconds direction", e.g. "51 30 0 N".
func parseDMS(raw string) (domain.DMS, error) {
	fields := strings.Fields(raw)
	if len(fields) != 4 {
		return domain.DMS{}, fmt.Errorf("DMS tuple %q must have 4 fields: degrees minutes seconds direction", raw)
	}

	var parts [3]float64
	for i, f := range fields[:3] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return domain.DMS{}, fmt.Errorf("DMS field %q is not a number", f)
		}
		parts[i] = v
	}

	return domain.DMS{
		Degrees:   parts[0],
		Minutes:   parts[1],
		Seconds:   parts[2],
		Direction: domain.Direction(strings.ToUpper(fields[3])),
	}, nil
}
