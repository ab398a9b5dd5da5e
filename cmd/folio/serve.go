package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/cli"
	"github.com/aretw0/folio/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	Long: `Serves the portfolio page, the carousel JSON API, the SSE and WebSocket
streams and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSite(cmd, func(ctx context.Context, cfg *config.Config, site *folio.Site, logger *slog.Logger) error {
			return cli.Serve(ctx, site, cfg.Server.Addr(), logger)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "Interface to listen on")
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Duration("interval", 6*time.Second, "Autoplay interval (0 disables autoplay)")
	serveCmd.Flags().String("redis-addr", "", "Redis address for state fan-out")
	serveCmd.Flags().Int("max-sessions", 1000, "Maximum concurrent carousel sessions (0 is unlimited)")
}
