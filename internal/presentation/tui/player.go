package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/i18n"
	"github.com/aretw0/folio/pkg/input"
	"github.com/jonboulle/clockwork"
	"github.com/muesli/termenv"
)

// DefaultRefresh redraws animation frames and the countdown.
const DefaultRefresh = 100 * time.Millisecond

// Player draws a carousel in the terminal and feeds it keyboard input.
type Player struct {
	c         *carousel.Controller
	out       *termenv.Output
	t         func(key string, args ...any) string
	portfolio *domain.Portfolio
	clock     clockwork.Clock
	refresh   time.Duration
	width     int
	logger    *slog.Logger

	drawMu sync.Mutex

	mu     sync.Mutex
	theme  domain.Theme
	blog   int // index of the open blog post, -1 when closed
	render func(string) (string, error)
	quit   context.CancelFunc
}

type PlayerOption func(*Player)

func WithTheme(t domain.Theme) PlayerOption {
	return func(p *Player) { p.theme = t }
}

func WithTranslator(t func(key string, args ...any) string) PlayerOption {
	return func(p *Player) { p.t = t }
}

// WithPortfolio enables the blog pane ("b").
func WithPortfolio(pf *domain.Portfolio) PlayerOption {
	return func(p *Player) { p.portfolio = pf }
}

// WithProfile forces a color profile (termenv.Ascii in tests).
func WithProfile(profile termenv.Profile) PlayerOption {
	return func(p *Player) { p.out = termenv.NewOutput(p.out.Writer(), termenv.WithProfile(profile)) }
}

func WithClock(clock clockwork.Clock) PlayerOption {
	return func(p *Player) { p.clock = clock }
}

func WithRefresh(d time.Duration) PlayerOption {
	return func(p *Player) { p.refresh = d }
}

func WithWidth(w int) PlayerOption {
	return func(p *Player) { p.width = w }
}

func WithLogger(logger *slog.Logger) PlayerOption {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPlayer creates a player writing to w.
func NewPlayer(c *carousel.Controller, w io.Writer, opts ...PlayerOption) *Player {
	p := &Player{
		c:       c,
		out:     termenv.NewOutput(w),
		t:       i18n.Default().Translator(i18n.Default().Fallback()),
		clock:   clockwork.NewRealClock(),
		refresh: DefaultRefresh,
		width:   80,
		logger:  logging.NewNop(),
		theme:   domain.ThemeSystem,
		blog:    -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run attaches keyboard input from in and redraws until ctx is done, the
// user quits or the carousel is unmounted.
func (p *Player) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p.mu.Lock()
	p.quit = cancel
	p.mu.Unlock()

	if err := p.c.Attach(&input.KeyReader{R: in, Other: p.handleKey}); err != nil {
		if errors.Is(err, domain.ErrClosed) {
			return nil
		}
		return err
	}

	p.out.HideCursor()
	defer p.out.ShowCursor()

	ticker := p.clock.NewTicker(p.refresh)
	defer ticker.Stop()
	states := p.c.Watch(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.c.Done():
			return nil
		case _, ok := <-states:
			if !ok {
				return nil
			}
			p.draw()
		case <-ticker.Chan():
			p.draw()
		}
	}
}

func (p *Player) handleKey(ctx context.Context, key string) {
	var err error
	switch key {
	case "q", input.KeyEscape, input.KeyCtrlC:
		p.mu.Lock()
		quit := p.quit
		p.mu.Unlock()
		if quit != nil {
			quit()
		}
		return
	case input.KeySpace:
		if p.c.State().Paused {
			err = p.c.Dispatch(ctx, domain.Resume(domain.SourceKeyboard))
		} else {
			err = p.c.Dispatch(ctx, domain.Pause(domain.SourceKeyboard))
		}
	case "t":
		p.mu.Lock()
		p.theme = p.theme.Toggle()
		p.render = nil
		p.mu.Unlock()
	case "b":
		p.mu.Lock()
		if p.portfolio != nil && len(p.portfolio.Blog) > 0 {
			p.blog++
			if p.blog >= len(p.portfolio.Blog) {
				p.blog = -1
			}
		}
		p.mu.Unlock()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			err = p.c.Dispatch(ctx, domain.GoTo(int(key[0]-'1'), domain.SourceKeyboard))
		}
	}
	if err != nil {
		p.logger.Debug("key ignored", "key", key, "err", err)
	}
	p.draw()
}

// View renders one frame.
func (p *Player) View() string {
	st := p.c.State()
	visuals := p.c.Visuals()

	p.mu.Lock()
	theme, blog := p.theme, p.blog
	p.mu.Unlock()

	v := CardView{
		Slide: p.c.Registry().At(st.ActiveIndex),
		State: st,
		Theme: theme,
		T:     p.t,
	}
	if st.ActiveIndex < len(visuals) {
		v.Visual = visuals[st.ActiveIndex]
	}
	if at, ok := p.c.NextAdvance(); ok {
		if d := at.Sub(p.clock.Now()); d > 0 {
			v.NextAdvance = d
		}
	}

	var b strings.Builder
	b.WriteString(RenderCard(p.out, v))
	b.WriteString("\r\n")
	b.WriteString(p.out.String(p.t("tui.help")).Faint().String())
	b.WriteString("\r\n")

	if blog >= 0 && p.portfolio != nil && blog < len(p.portfolio.Blog) {
		post := p.portfolio.Blog[blog]
		body := post.Body
		if body == "" {
			body = "# " + post.Title + "\n\n" + post.Summary
		}
		if md, err := p.markdown(theme)(body); err == nil {
			b.WriteString(strings.ReplaceAll(md, "\n", "\r\n"))
		} else {
			p.logger.Warn("blog render failed", "title", post.Title, "err", err)
		}
	}
	return b.String()
}

func (p *Player) markdown(theme domain.Theme) func(string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.render == nil {
		r, err := NewRenderer(theme, p.width)
		if err != nil {
			return func(string) (string, error) { return "", err }
		}
		p.render = r
	}
	return p.render
}

func (p *Player) draw() {
	frame := p.View()
	p.drawMu.Lock()
	defer p.drawMu.Unlock()
	p.out.ClearScreen()
	io.WriteString(p.out, frame)
}
