package main

import (
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"github.com/andreiashu/jgd"
)

var (
	geojsonFrom string
	geojsonTo   string
)

var geojsonCmd = &cobra.Command{
	Use:   "geojson [file]",
	Short: "Convert every coordinate of a GeoJSON FeatureCollection",
	Long: `geojson reads a FeatureCollection from the given file, or stdin when no
file is named, converts every geometry coordinate between the two datums
and writes the result to stdout. Properties and feature ids pass through
unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := jgd.ParseDatum(geojsonFrom)
		if err != nil {
			return err
		}
		to, err := jgd.ParseDatum(geojsonTo)
		if err != nil {
			return err
		}
		fn, err := jgd.Transform(from, to)
		if err != nil {
			return err
		}

		var data []byte
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return fmt.Errorf("parsing GeoJSON: %w", err)
		}
		if err := jgd.TransformFeatureCollection(fc, fn); err != nil {
			return err
		}

		out, err := fc.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding GeoJSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	geojsonCmd.Flags().StringVar(&geojsonFrom, "from", "jgd2000", "source datum")
	geojsonCmd.Flags().StringVar(&geojsonTo, "to", "jgd2011", "target datum")
	rootCmd.AddCommand(geojsonCmd)
}
