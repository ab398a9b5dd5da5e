package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/config"
	"github.com/aretw0/folio/pkg/adapters/redis"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/i18n"
)

// BuildSite assembles a Site from the configuration. cleanup closes the site
// and, when Redis is configured, the broadcaster.
func BuildSite(ctx context.Context, cfg *config.Config, logger *slog.Logger, extra ...folio.Option) (site *folio.Site, cleanup func() error, err error) {
	lang, err := i18n.Default().Parse(cfg.I18n.DefaultLanguage)
	if err != nil {
		return nil, nil, err
	}

	opts := []folio.Option{
		folio.WithLogger(logger),
		folio.WithLanguage(lang),
		folio.WithTheme(domain.ParseTheme(cfg.Theme.Default)),
		folio.WithSessionTTL(cfg.Carousel.SessionTTL),
		folio.WithMaxSessions(cfg.Carousel.MaxSessions),
		folio.WithCarouselOptions(
			carousel.WithInterval(cfg.Carousel.Interval),
			carousel.WithFrameInterval(cfg.Carousel.FrameInterval),
		),
	}
	if cfg.Content.SlidesDir != "" {
		opts = append(opts, folio.WithSlidesDir(cfg.Content.SlidesDir))
	}

	var rb *redis.Broadcaster
	if cfg.Redis.Addr != "" {
		rb = redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithLogger(logger),
		)
		if err := rb.Ping(ctx); err != nil {
			rb.Close()
			return nil, nil, fmt.Errorf("redis %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("state diffs fan out through Redis", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		opts = append(opts, folio.WithBroadcaster(rb))
	}
	opts = append(opts, extra...)

	site, err = folio.New(ctx, opts...)
	if err != nil {
		if rb != nil {
			rb.Close()
		}
		return nil, nil, err
	}

	cleanup = func() error {
		err := site.Close()
		if rb != nil {
			if cerr := rb.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return site, cleanup, nil
}
