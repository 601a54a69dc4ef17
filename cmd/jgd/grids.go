package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andreiashu/jgd"
)

var gridsCmd = &cobra.Command{
	Use:   "grids",
	Short: "Show the installed parameter tables",
	Long: `grids reports which parameter tables are installed, how many grid points
each carries and the area each covers. A table reported as missing makes
the library fall back to the lower-accuracy three-parameter transform
(Tokyo Datum) or to the identity (JGD2000 to JGD2011).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printGrid("TKY2JGD")(jgd.TKY2JGD())
		printGrid("touhokutaiheiyouoki2011")(jgd.Touhokutaiheiyouoki2011())
		return nil
	},
}

func printGrid(name string) func(*jgd.Grid, error) {
	return func(g *jgd.Grid, err error) {
		if err != nil {
			fmt.Printf("%s: not installed\n    %v\n", name, err)
			return
		}
		fmt.Printf("%s: %d grid points\n", name, g.Len())
		if sw, ne, ok := g.Bounds(); ok {
			fmt.Printf("    covers %.4f..%.4f N, %.4f..%.4f E\n", sw.Lat, ne.Lat, sw.Lon, ne.Lon)
		}
	}
}

func init() {
	rootCmd.AddCommand(gridsCmd)
}
