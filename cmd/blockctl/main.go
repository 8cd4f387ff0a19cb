// Command blockctl loads a building catalog, runs the beam-pruned block
// optimizer, and renders the result to the terminal (and optionally to a
// JSON file). It is a local batch tool: no server, no persistence.
package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blocksolve/blocksolve/internal/blockerr"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "blockctl",
		Short: "Block layout optimizer",
		Long: `blockctl loads a building catalog and searches for the
highest-income assignment of buildings into one or more fixed-size blocks.`,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("catalog", "c", "", "Path to catalog file (JSON or YAML)")
	flags.IntP("capacity", "C", 50, "Block size capacity")
	flags.IntP("beam", "b", 400, "Beam width")
	flags.Bool("debug", false, "Attach a debug report to the result")
	flags.BoolP("quiet", "q", false, "Minimal output")
	flags.Int("money", 1000, "Starting money")
	flags.Int("wood", 100, "Starting wood")
	flags.Int("cement", 100, "Starting cement")
	flags.Int("steel", 100, "Starting steel")
	flags.String("config", "", "Path to config file (JSON or YAML)")
	flags.StringP("out", "o", "", "Write the JSON result to this path")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newPlanCmd())

	if err := rootCmd.Execute(); err != nil {
		color.Red("%v", err)
		os.Exit(exitCodeFor(err))
	}
}

func fatalf(format string, args ...interface{}) {
	color.Red(format, args...)
	os.Exit(1)
}

// exitCodeFor classifies an error for the process exit code: NoSolution is a
// legitimate outcome (exit 1), InvalidCatalog/InvalidArgument are caller
// errors (exit 2), anything else also exits 1.
func exitCodeFor(err error) int {
	if errors.Is(err, blockerr.ErrInvalidCatalog) || errors.Is(err, blockerr.ErrInvalidArgument) {
		return 2
	}
	return 1
}
