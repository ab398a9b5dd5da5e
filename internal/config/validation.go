package config

import (
	"errors"
	"fmt"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/i18n"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.MCP.Port < 1 || c.MCP.Port > 65535 {
		errs = append(errs, fmt.Errorf("mcp.port must be between 1 and 65535, got %d", c.MCP.Port))
	}
	if c.Carousel.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("carousel.max_sessions must not be negative"))
	}
	if c.Carousel.Interval < 0 {
		errs = append(errs, fmt.Errorf("carousel.interval must not be negative"))
	}
	if c.Carousel.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("carousel.frame_interval must be positive"))
	}
	if c.Carousel.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("carousel.session_ttl must be positive"))
	}
	if _, err := logging.FromConfig(c.Log.Level, c.Log.Format); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	if _, err := i18n.Default().Parse(c.I18n.DefaultLanguage); err != nil {
		errs = append(errs, fmt.Errorf("i18n.default_language: %w", err))
	}
	switch domain.Theme(c.Theme.Default) {
	case domain.ThemeLight, domain.ThemeDark, domain.ThemeSystem:
	default:
		errs = append(errs, fmt.Errorf("theme.default must be light, dark or system, got %q", c.Theme.Default))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("redis.db must not be negative"))
	}

	return errors.Join(errs...)
}
