package main

import (
	"os"

	"github.com/aretw0/hpgl2svg/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Summarize what an HPGL program draws",
	Long:  `Interprets the program without rendering it and prints commands by kind, segments per color, the drawn extent and the final plotter state.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.InspectOptions{Input: cli.StdinName}
		if len(args) > 0 {
			opts.Input = args[0]
		}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Charset, _ = cmd.Flags().GetString("charset")
		opts.Lenient, _ = cmd.Flags().GetBool("lenient")

		exitOnError(cli.Inspect(cmd.Context(), opts, os.Stdin, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "Print the summary as JSON")
	inspectCmd.Flags().String("charset", "", "Input encoding label, e.g. latin1")
	inspectCmd.Flags().Bool("lenient", false, "Skip unsupported instructions with a warning instead of failing")
}
