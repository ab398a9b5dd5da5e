package tui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/i18n"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/aretw0/folio/pkg/tween"
	"github.com/jonboulle/clockwork"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func english() func(string, ...any) string {
	return i18n.Default().Translator(language.English)
}

func startCarousel(t *testing.T) *carousel.Controller {
	t.Helper()
	c, err := carousel.New(registry.Default(), carousel.WithInterval(0))
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRenderCard(t *testing.T) {
	o := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))

	out := RenderCard(o, CardView{
		Slide:       domain.Slide{Name: "Next", Tag: "soon", Placeholder: true, Link: "https://example.com"},
		Visual:      tween.Emphasized,
		State:       domain.State{ActiveIndex: 1, SlideCount: 4, Paused: true},
		NextAdvance: 0,
		Theme:       domain.ThemeDark,
		T:           english(),
	})
	assert.Contains(t, out, "SOON")
	assert.Contains(t, out, "[Coming soon]")
	assert.NotContains(t, out, "https://example.com", "placeholders hide their link")
	assert.Contains(t, out, "○ ● ○ ○")
	assert.Contains(t, out, "2 / 4")
	assert.Contains(t, out, "paused")

	out = RenderCard(o, CardView{
		Slide:       domain.Slide{Name: "Folio", Tag: "go", Link: "https://example.com/folio"},
		Visual:      tween.Emphasized,
		State:       domain.State{ActiveIndex: 0, SlideCount: 2},
		NextAdvance: 2600 * time.Millisecond,
		Theme:       domain.ThemeLight,
		T:           english(),
	})
	assert.Contains(t, out, "View project: https://example.com/folio")
	assert.Contains(t, out, "playing · next in 3s")
}

func TestNewRenderer(t *testing.T) {
	for _, theme := range domain.Themes() {
		render, err := NewRenderer(theme, 60)
		require.NoError(t, err, theme)
		out, err := render("# Title\n\nTimers, clicks and frames.")
		require.NoError(t, err)
		assert.Contains(t, out, "Timers,")
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
}

func TestPlayer_KeysDriveCarousel(t *testing.T) {
	c := startCarousel(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	var out syncBuffer
	p := NewPlayer(c, &out,
		WithProfile(termenv.Ascii),
		WithClock(clockwork.NewFakeClock()),
		WithTheme(domain.ThemeDark),
		WithTranslator(english()),
	)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background(), pr) }()

	_, err := pw.Write([]byte("\x1b[C"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return c.State().ActiveIndex == 1 }, time.Second, 5*time.Millisecond)

	_, err = pw.Write([]byte(" "))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return c.State().Paused }, time.Second, 5*time.Millisecond)

	_, err = pw.Write([]byte("3"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return c.State().ActiveIndex == 2 }, time.Second, 5*time.Millisecond)

	_, err = pw.Write([]byte("q"))
	require.NoError(t, err)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("player did not quit")
	}

	assert.Contains(t, out.String(), registry.Default().At(2).Name)
	assert.Contains(t, out.String(), "paused")
}

func TestPlayer_ThemeAndBlog(t *testing.T) {
	c := startCarousel(t)
	pf := content.Default().For(language.English)
	require.NotEmpty(t, pf.Blog)

	p := NewPlayer(c, io.Discard,
		WithProfile(termenv.Ascii),
		WithClock(clockwork.NewFakeClock()),
		WithTheme(domain.ThemeLight),
		WithPortfolio(pf),
	)
	ctx := context.Background()

	assert.NotContains(t, p.View(), "Timers")

	p.handleKey(ctx, "b")
	assert.Contains(t, p.View(), "Timers")

	p.handleKey(ctx, "t")
	p.mu.Lock()
	assert.Equal(t, domain.ThemeDark, p.theme)
	p.mu.Unlock()

	for range pf.Blog {
		p.handleKey(ctx, "b")
	}
	assert.False(t, strings.Contains(p.View(), "Timers"), "cycling past the last post closes the pane")
}

func TestPlayer_StopsWhenCarouselCloses(t *testing.T) {
	c := startCarousel(t)
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	p := NewPlayer(c, io.Discard, WithProfile(termenv.Ascii), WithClock(clockwork.NewFakeClock()))
	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background(), pr) }()

	require.Eventually(t, func() bool {
		// Wait until the player is attached and watching.
		return c.State().SlideCount > 0
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("player kept running after unmount")
	}
}
