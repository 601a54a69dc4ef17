package main

import (
	"fmt"
	"strconv"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
	"github.com/spf13/cobra"

	"github.com/andreiashu/jgd"
)

// earthRadiusMeters converts unit-sphere angles to ground distance.
const earthRadiusMeters = 6371010.0

var (
	convertFrom string
	convertTo   string
	convertDms  bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <lat> <lon>",
	Short: "Convert a single coordinate",
	Long: `convert transforms one coordinate, given in decimal degrees, between two
datums. The first output line is the converted coordinate; the remaining
lines report the geohash of the result and how far the point moved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("bad latitude %q: %w", args[0], err)
		}
		lon, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("bad longitude %q: %w", args[1], err)
		}
		from, err := jgd.ParseDatum(convertFrom)
		if err != nil {
			return err
		}
		to, err := jgd.ParseDatum(convertTo)
		if err != nil {
			return err
		}
		fn, err := jgd.Transform(from, to)
		if err != nil {
			return err
		}

		in := jgd.LatLon{Lat: lat, Lon: lon}
		out, err := fn(in)
		if err != nil {
			return err
		}

		if convertDms {
			dmsLat, dmsLon := out.ToDms()
			fmt.Printf("%s %s\n", dmsLat, dmsLon)
		} else {
			fmt.Printf("%.9f %.9f\n", out.Lat, out.Lon)
		}
		fmt.Printf("geohash: %s\n", geohash.Encode(out.Lat, out.Lon))

		moved := s2.LatLngFromDegrees(in.Lat, in.Lon).
			Distance(s2.LatLngFromDegrees(out.Lat, out.Lon)).Radians() * earthRadiusMeters
		fmt.Printf("moved: %.4f m\n", moved)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "tokyo", "source datum")
	convertCmd.Flags().StringVar(&convertTo, "to", "jgd2011", "target datum")
	convertCmd.Flags().BoolVar(&convertDms, "dms", false, "print the result in degrees, minutes and seconds")
	rootCmd.AddCommand(convertCmd)
}
