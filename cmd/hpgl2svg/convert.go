package main

import (
	"os"

	"github.com/aretw0/hpgl2svg/internal/cli"
	"github.com/spf13/cobra"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert an HPGL program into an SVG, PNG or PDF document",
	Long: `Interprets the program and writes the document to standard output or to --output.
Nothing is written when the conversion fails, e.g. on an unknown pen.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.ConvertOptions{Input: cli.StdinName}
		if len(args) > 0 {
			opts.Input = args[0]
		}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Output, _ = cmd.Flags().GetString("output")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Axes, _ = cmd.Flags().GetString("axes")
		opts.Wrapper, _ = cmd.Flags().GetString("wrapper")
		opts.Charset, _ = cmd.Flags().GetString("charset")
		opts.Lenient, _ = cmd.Flags().GetBool("lenient")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		exitOnError(cli.Convert(ctx, opts, os.Stdin, os.Stdout))
	},
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Write the document to this file instead of stdout")
	cmd.Flags().StringP("format", "f", "", "Output format: svg, png or pdf")
	cmd.Flags().String("axes", "", "Axis convention: xy (plotter x is image x) or yx (transposed)")
	cmd.Flags().String("wrapper", "", "SVG wrapper: html or svg")
	cmd.Flags().String("charset", "", "Input encoding label, e.g. latin1")
	cmd.Flags().Bool("lenient", false, "Skip unsupported instructions with a warning instead of failing")
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addConvertFlags(convertCmd)

	// The root command converts too, so "hpgl2svg plot.hpgl" keeps working.
	addConvertFlags(rootCmd)
	rootCmd.Run = convertCmd.Run
}
