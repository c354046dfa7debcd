package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hpgl2svg [file]",
	Short: "hpgl2svg converts HPGL plotter programs into SVG documents",
	Long: `hpgl2svg replays an HPGL plotter program (pen up, pen down, plots and pen selection)
and writes the drawing as an SVG document wrapped in HTML to standard output.

Use "-" as the file to read standard input.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitOnError reports err on stderr and stops the process.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./hpgl2svg.yaml when present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every command and segment to stderr")
}
