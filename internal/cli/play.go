package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/internal/presentation/tui"
	"github.com/aretw0/folio/pkg/domain"
)

// TerminalSession is the session id of the terminal player.
const TerminalSession = "terminal"

// PlayOptions configures the terminal player.
type PlayOptions struct {
	In     *os.File
	Out    io.Writer
	Theme  domain.Theme
	Banner bool
	Logger *slog.Logger
}

// Play runs the carousel in the terminal until the user quits or ctx is done.
func Play(ctx context.Context, site *folio.Site, opts PlayOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	theme := opts.Theme
	if theme == "" {
		theme = site.Theme()
	}

	c, err := site.Sessions.Get(ctx, TerminalSession)
	if err != nil {
		return err
	}

	if opts.Banner {
		tui.PrintBanner(opts.Out)
		printSystemMessage(opts.Out, "Session '%s' active. Press q to quit.", TerminalSession)
	}

	restore, err := tui.RawInput(opts.In)
	if err != nil {
		return err
	}
	defer restore()

	lang := site.Language()
	player := tui.NewPlayer(c, opts.Out,
		tui.WithTheme(theme),
		tui.WithTranslator(site.Catalog.Translator(lang)),
		tui.WithPortfolio(site.Content.For(lang)),
		tui.WithWidth(tui.Width(opts.In, 80)),
		tui.WithLogger(opts.Logger),
	)
	if err := player.Run(ctx, opts.In); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	fmt.Fprint(opts.Out, "\r\n")
	return nil
}

func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
