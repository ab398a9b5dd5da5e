package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/cli"
	"github.com/aretw0/folio/internal/config"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the project carousel in the terminal",
	Long: `Renders the carousel as a card in the terminal.

Keys: ←/→ or h/l navigate, space pauses, 1-9 jump to a project,
t toggles the theme, b cycles blog posts, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		return withSite(cmd, func(ctx context.Context, cfg *config.Config, site *folio.Site, logger *slog.Logger) error {
			return cli.Play(ctx, site, cli.PlayOptions{
				In:     os.Stdin,
				Out:    os.Stdout,
				Theme:  domain.ParseTheme(cfg.Theme.Default),
				Banner: !quiet,
				Logger: logger,
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Duration("interval", 6*time.Second, "Autoplay interval (0 disables autoplay)")
	playCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")
}
