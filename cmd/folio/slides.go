package main

import (
	"github.com/aretw0/folio/internal/cli"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/spf13/cobra"
)

var slidesCmd = &cobra.Command{
	Use:   "slides",
	Short: "Inspect the project slides",
}

var slidesListCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List slides in carousel order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := slideSource(cmd, args)
		if err != nil {
			return err
		}
		return cli.ListSlides(cmd.Context(), cmd.OutOrStdout(), src)
	},
}

var slidesValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check slides for missing names and malformed links",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := slideSource(cmd, args)
		if err != nil {
			return err
		}
		return cli.ValidateSlides(cmd.Context(), cmd.OutOrStdout(), src)
	},
}

func init() {
	rootCmd.AddCommand(slidesCmd)
	slidesCmd.AddCommand(slidesListCmd, slidesValidateCmd)
}

// slideSource uses the directory argument, then the configured slides directory.
func slideSource(cmd *cobra.Command, args []string) (ports.SlideSource, error) {
	if len(args) > 0 {
		return cli.SlideSource(args[0])
	}
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.SlideSource(cfg.Content.SlidesDir)
}
