package cli

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/folio/internal/config"
	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/internal/testutils"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load(config.Options{})
	require.NoError(t, err)
	return cfg
}

func TestBuildSite_Defaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.Carousel.Interval = 0

	site, cleanup, err := BuildSite(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, registry.Default().Len(), site.Registry.Len())
	assert.Equal(t, "en", site.Language().String())
	assert.Equal(t, domain.ThemeSystem, site.Theme())
}

func TestBuildSite_MaxSessions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Carousel.Interval = 0
	cfg.Carousel.MaxSessions = 1

	site, cleanup, err := BuildSite(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	_, err = site.Sessions.Get(context.Background(), "a")
	require.NoError(t, err)
	_, err = site.Sessions.Get(context.Background(), "b")
	assert.ErrorIs(t, err, domain.ErrSessionLimit)
}

func TestBuildSite_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Carousel.Interval = 0
	cfg.Redis.Addr = mr.Addr()

	site, cleanup, err := BuildSite(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	c, err := site.Sessions.Get(context.Background(), "r1")
	require.NoError(t, err)
	require.NoError(t, c.Dispatch(context.Background(), domain.Intent{Kind: domain.IntentNext, Source: domain.SourceAPI}))
	require.NoError(t, cleanup())
}

func TestBuildSite_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.Redis.Addr = addr

	_, _, err := BuildSite(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestBuildSite_UnknownLanguage(t *testing.T) {
	cfg := testConfig(t)
	cfg.I18n.DefaultLanguage = "fr"

	_, _, err := BuildSite(context.Background(), cfg, logging.NewNop())
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestSlides(t *testing.T) {
	t.Run("List embedded", func(t *testing.T) {
		src, err := SlideSource("")
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, ListSlides(context.Background(), &out, src))
		assert.Contains(t, out.String(), "NAME")
		assert.Contains(t, out.String(), "Folio")
		assert.Contains(t, out.String(), "https://github.com/aretw0/trellis")
	})

	t.Run("Validate reports every problem", func(t *testing.T) {
		dir, _ := testutils.SetupSlidesRepo(t, map[string]string{
			"01-bad.md": "---\nname: Bad\nlink: ftp://example.com\n---\nBody.",
			"02-ok.md":  "---\nname: Ok\n---\nBody.",
		})
		src, err := SlideSource(dir)
		require.NoError(t, err)

		var out bytes.Buffer
		err = ValidateSlides(context.Background(), &out, src)
		var verr *registry.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, out.String(), "✗ slide 0 (Bad)")
	})

	t.Run("Validate empty directory", func(t *testing.T) {
		dir, _ := testutils.SetupSlidesRepo(t, map[string]string{})
		src, err := SlideSource(dir)
		require.NoError(t, err)

		var out bytes.Buffer
		err = ValidateSlides(context.Background(), &out, src)
		assert.ErrorIs(t, err, domain.ErrEmptyRegistry)
		assert.Contains(t, out.String(), "no slides found")
	})

	t.Run("Validate embedded", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, ValidateSlides(context.Background(), &out, registry.Default()))
		assert.Equal(t, "✓ slides are valid\n", out.String())
	})
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Carousel.Interval = 0
	site, cleanup, err := BuildSite(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, site, "127.0.0.1:0", logging.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestPlay_QuitKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Carousel.Interval = 0
	site, cleanup, err := BuildSite(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer cleanup()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Play(context.Background(), site, PlayOptions{In: r, Out: &out, Theme: domain.ThemeDark, Logger: logging.NewNop()})
	}()

	_, err = w.Write([]byte("q"))
	require.NoError(t, err)
	defer w.Close()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after q")
	}
	_, err = site.Sessions.Lookup(TerminalSession)
	assert.NoError(t, err)
}

func TestNotifyContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := NotifyContext(parent)
	defer stop()
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled by parent")
	}
	assert.Nil(t, Interrupted(ctx))
}

func TestNotifyContext_Stop(t *testing.T) {
	ctx, stop := NotifyContext(context.Background())
	stop()

	<-ctx.Done()
	assert.Nil(t, Interrupted(ctx))
	assert.ErrorIs(t, context.Cause(ctx), context.Canceled)
}
