package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/hpgl2svg/internal/cli"
	"github.com/aretw0/hpgl2svg/internal/config"
	"github.com/aretw0/hpgl2svg/pkg/adapters/mcp"
	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts hpgl2svg as an MCP Server exposing the convert_hpgl and inspect_hpgl tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")

		cfg, err := config.Load(configPath)
		exitOnError(err)

		// Logs go to stderr so they never corrupt JSON-RPC on stdout.
		logger := cli.CreateLogger(debug)
		log.SetOutput(os.Stderr)

		conv, err := cli.NewConverter(cfg, logger, domain.LifecycleHooks{})
		exitOnError(err)
		srv := mcp.NewServer(conv, cli.NewNamedSinkFactory(cfg), logger)

		switch transport {
		case "stdio":
			logger.Info("Starting hpgl2svg MCP Server (Stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("Starting hpgl2svg MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
			logger.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
