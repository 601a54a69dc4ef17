package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jgd",
	Short: "Convert coordinates between Japanese geodetic datums",
	Long: `jgd converts coordinates between the geodetic datums used in Japan:
Tokyo Datum, JGD2000 and JGD2011. Grid-based transforms follow the GSI
TKY2JGD and touhokutaiheiyouoki2011 parameter files; where no grid
parameters exist, a three-parameter transform through Tokyo97 takes over.

Datum names accepted by --from and --to: tokyo, tokyo97, jgd2000, jgd2011.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
