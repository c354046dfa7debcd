package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/hpgl2svg"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hpgl2svg",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hpgl2svg version %s\n", strings.TrimSpace(hpgl2svg.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
