package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/cli"
	"github.com/aretw0/folio/internal/config"
	"github.com/aretw0/folio/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Folio is a portfolio site with an auto-advancing project carousel",
	Long: `Folio serves a single-page portfolio whose project carousel is driven by
one event loop per visitor. The same carousel can be played in the terminal
or driven by AI agents over MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./folio.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("slides-dir", "", "Directory of slide documents (default: embedded slides)")
	rootCmd.PersistentFlags().String("lang", "en", "Default language")
	rootCmd.PersistentFlags().String("theme", "system", "Default theme: light, dark or system")
}

// loadConfig resolves the configuration for cmd, with its changed flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	file, _ := cmd.Flags().GetString("config")
	keys := config.FlagKeys
	if cmd.Name() == "mcp" {
		keys = config.MCPFlagKeys()
	}
	cfg, err := config.Load(config.Options{ConfigFile: file, Flags: cmd.Flags(), FlagKeys: keys})
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.FromConfig(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// withSite loads the configuration, builds the site and runs fn until an
// interrupt arrives.
func withSite(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, site *folio.Site, logger *slog.Logger) error, extra ...folio.Option) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := cli.NotifyContext(cmd.Context())
	defer stop()

	site, cleanup, err := cli.BuildSite(ctx, cfg, logger, extra...)
	if err != nil {
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Warn("shutdown", "err", err)
		}
	}()

	err = fn(ctx, cfg, site, logger)
	if sig := cli.Interrupted(ctx); sig != nil {
		logger.Debug("interrupted", "signal", sig.String())
	}
	return err
}
