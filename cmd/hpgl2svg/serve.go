package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/hpgl2svg/internal/cli"
	"github.com/aretw0/hpgl2svg/internal/config"
	"github.com/aretw0/hpgl2svg/internal/presentation/tui"
	httpAdapter "github.com/aretw0/hpgl2svg/pkg/adapters/http"
	"github.com/aretw0/hpgl2svg/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP conversion server",
	Long: `Exposes the converter over HTTP:

  POST /convert?format=svg|png|pdf   body: HPGL program, response: document
  POST /inspect                      body: HPGL program, response: JSON summary
  GET  /healthz
  GET  /metrics                      Prometheus metrics`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		quiet, _ := cmd.Flags().GetBool("quiet")
		logLevel, _ := cmd.Flags().GetString("log-level")
		logJSON, _ := cmd.Flags().GetBool("log-json")

		cfg, err := config.Load(configPath)
		exitOnError(err)

		logger, err := cli.CreateServerLogger(logLevel, logJSON, debug)
		exitOnError(err)
		metrics := observability.NewMetrics()
		conv, err := cli.NewConverter(cfg, logger, metrics.Hooks())
		exitOnError(err)

		handler := httpAdapter.NewHandler(conv, cli.NewNamedSinkFactory(cfg),
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if !quiet {
			tui.PrintBanner(os.Stderr)
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Fprintf(os.Stderr, "Starting hpgl2svg server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			exitOnError(fmt.Errorf("server error: %w", err))

		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "\nStart shutdown... Signal: %v\n", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Fprintf(os.Stderr, "Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Error killing server: %v\n", err)
				}
			}
			fmt.Fprintln(os.Stderr, "hpgl2svg server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	serveCmd.Flags().String("log-level", "info", "Log level: debug, info, warn or error")
	serveCmd.Flags().Bool("log-json", false, "Write logs as JSON lines")
}
