// Command update-grids rebuilds the compiled parameter tables from GSI
// .par sources.
//
// Usage:
//
//	go run ./cmd/update-grids [-config grids.toml]
//
// This reads .par files from ./par-data/ and writes compiled tables to
// ./grid-data/. Sources without a configured URL must be downloaded by
// hand first; see grid-data/SOURCES. After running, optionally compress
// the tables:
//
//	bzip2 -f grid-data/*.bin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/andreiashu/jgd"
)

func main() {
	configPath := flag.String("config", "", "TOML grid source list overriding the built-in sources")
	dataDir := flag.String("data", "./par-data", "directory holding .par source files")
	gridDir := flag.String("grids", "./grid-data", "directory compiled tables are written to")
	flag.Parse()

	fmt.Println("Rebuilding grid tables from .par sources...")

	opts := []jgd.Option{jgd.WithDataDir(*dataDir), jgd.WithGridDir(*gridDir)}
	if *configPath != "" {
		sources, err := jgd.GridSources(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, jgd.WithSources(sources))
	}

	if err := jgd.UpdateGrids(opts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Validating rebuilt tables...")
	if err := jgd.ValidateGrids(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Grid tables rebuilt and validated.")
	fmt.Println("Run 'bzip2 -f grid-data/*.bin' to compress the tables.")
}
