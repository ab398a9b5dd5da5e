package folio

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/internal/metrics"
	httpAdapter "github.com/aretw0/folio/pkg/adapters/http"
	loamAdapter "github.com/aretw0/folio/pkg/adapters/loam"
	"github.com/aretw0/folio/pkg/adapters/mcp"
	"github.com/aretw0/folio/pkg/adapters/memory"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/i18n"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/aretw0/folio/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
)

//go:embed VERSION
var rawVersion string

// Version is the release of this module.
var Version = strings.TrimSpace(rawVersion)

// Site wires the slide registry, the per-visitor carousels and the
// localized content into the surfaces (web, MCP, terminal).
type Site struct {
	Registry *registry.Registry
	Catalog  *i18n.Catalog
	Content  *content.Library
	Sessions *session.Manager
	Metrics  *metrics.Collectors

	broadcaster ports.Broadcaster
	ownsBroad   bool
	source      ports.SlideSource
	slidesDir   string
	carousel    []carousel.Option
	ttl         time.Duration
	maxSessions int
	hooks       domain.LifecycleHooks
	language    language.Tag
	theme       domain.Theme
	promReg     *prometheus.Registry
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Site.
type Option func(*Site)

// WithSource injects a custom SlideSource, bypassing the embedded slides.
func WithSource(src ports.SlideSource) Option {
	return func(s *Site) { s.source = src }
}

// WithSlidesDir reads slides from a Loam directory of markdown documents.
func WithSlidesDir(dir string) Option {
	return func(s *Site) { s.slidesDir = dir }
}

// WithBroadcaster fans state diffs out through b (e.g. Redis). The Site
// does not close it. Without it an in-process broadcaster is used.
func WithBroadcaster(b ports.Broadcaster) Option {
	return func(s *Site) { s.broadcaster = b }
}

// WithCarouselOptions are applied to every session's controller.
func WithCarouselOptions(opts ...carousel.Option) Option {
	return func(s *Site) { s.carousel = append(s.carousel, opts...) }
}

// WithLifecycleHooks registers observability hooks next to the metrics.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Site) { s.hooks = hooks }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Site) { s.ttl = ttl }
}

// WithMaxSessions caps the number of mounted carousels. Zero means unlimited.
func WithMaxSessions(n int) Option {
	return func(s *Site) { s.maxSessions = n }
}

// WithLanguage sets the default language of the page and the terminal.
func WithLanguage(tag language.Tag) Option {
	return func(s *Site) { s.language = tag }
}

func WithTheme(t domain.Theme) Option {
	return func(s *Site) { s.theme = t }
}

// WithMetricsRegistry registers the collectors on reg instead of a private registry.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Site) { s.promReg = reg }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) { s.logger = logger }
}

// New builds a Site. Slides come from WithSource, then WithSlidesDir, then
// the embedded defaults.
func New(ctx context.Context, opts ...Option) (*Site, error) {
	s := &Site{
		ttl:      session.DefaultTTL,
		language: language.English,
		theme:    domain.ThemeSystem,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	src := s.source
	if src == nil && s.slidesDir != "" {
		absPath, err := filepath.Abs(s.slidesDir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		loamSrc, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, err
		}
		src = loamSrc
	}
	if src == nil {
		src = registry.Default()
	}
	reg, err := registry.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	s.Registry = reg

	catalog, err := i18n.Default().WithFallback(s.language)
	if err != nil {
		return nil, err
	}
	s.Catalog = catalog
	s.Content = content.Default()

	s.Metrics = metrics.New(s.promReg)

	if s.broadcaster == nil {
		s.broadcaster = memory.NewBroadcaster(memory.WithLogger(s.logger))
		s.ownsBroad = true
	}

	carouselOpts := append([]carousel.Option{
		carousel.WithLogger(s.logger),
		carousel.WithLifecycleHooks(domain.MergeHooks(s.Metrics.Hooks(), s.hooks)),
	}, s.carousel...)
	s.Sessions = session.NewManager(
		session.NewFactory(reg, carouselOpts...),
		session.WithBroadcaster(s.broadcaster),
		session.WithTTL(s.ttl),
		session.WithMaxSessions(s.maxSessions),
		session.WithLogger(s.logger),
		session.WithActiveObserver(s.Metrics.SetActiveSessions),
	)

	s.logger.Info("site ready", "slides", reg.Len(), "language", s.language.String(), "version", Version)
	return s, nil
}

// Handler returns the web surface: page, JSON API, SSE, WebSocket and /metrics.
func (s *Site) Handler() (http.Handler, error) {
	return httpAdapter.NewHandler(s.Sessions, s.Registry,
		httpAdapter.WithBroadcaster(s.broadcaster),
		httpAdapter.WithCatalog(s.Catalog),
		httpAdapter.WithContent(s.Content),
		httpAdapter.WithMetrics(s.Metrics.Handler()),
		httpAdapter.WithLogger(s.logger),
		httpAdapter.WithDefaultTheme(s.theme),
		httpAdapter.WithVersion(Version),
	)
}

// MCP returns an MCP server over the same sessions.
func (s *Site) MCP() *mcp.Server {
	return mcp.NewServer(s.Sessions, s.Registry, Version,
		mcp.WithContent(s.Content),
		mcp.WithLogger(s.logger),
	)
}

// Language returns the default language.
func (s *Site) Language() language.Tag {
	return s.language
}

// Theme returns the default theme.
func (s *Site) Theme() domain.Theme {
	return s.theme
}

// Run reaps idle sessions until ctx is done.
func (s *Site) Run(ctx context.Context) error {
	return s.Sessions.Run(ctx)
}

// Close unmounts every carousel.
func (s *Site) Close() error {
	err := s.Sessions.Close()
	if s.ownsBroad {
		if cerr := s.broadcaster.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
