// Package config loads folio settings using Viper: defaults, an optional
// folio.yaml, a best-effort .env file, FOLIO_ environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (server.port -> FOLIO_SERVER_PORT).
const EnvPrefix = "FOLIO"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Carousel CarouselConfig `mapstructure:"carousel"`
	Content  ContentConfig  `mapstructure:"content"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	I18n     I18nConfig     `mapstructure:"i18n"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	MCP      MCPConfig      `mapstructure:"mcp"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CarouselConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	// MaxSessions caps mounted carousels. Zero means unlimited.
	MaxSessions int `mapstructure:"max_sessions"`
}

type ContentConfig struct {
	// SlidesDir points at a Loam directory of slide documents. Empty uses the embedded slides.
	SlidesDir string `mapstructure:"slides_dir"`
}

type RedisConfig struct {
	// Addr enables the Redis broadcaster when set.
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
}

type ThemeConfig struct {
	Default string `mapstructure:"default"`
}

type MCPConfig struct {
	// Port is used by the SSE transport.
	Port int `mapstructure:"port"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"carousel.interval":       "6s",
		"carousel.frame_interval": "16ms",
		"carousel.session_ttl":    "10m",
		"carousel.max_sessions":   1000,
		"content.slides_dir":      "",
		"redis.addr":              "",
		"redis.password":          "",
		"redis.db":                0,
		"redis.prefix":            "folio:carousel:",
		"log.level":               "info",
		"log.format":              "text",
		"i18n.default_language":   "en",
		"theme.default":           "system",
		"mcp.port":                8081,
	}
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"host":         "server.host",
	"port":         "server.port",
	"interval":     "carousel.interval",
	"slides-dir":   "content.slides_dir",
	"redis-addr":   "redis.addr",
	"log-level":    "log.level",
	"log-format":   "log.format",
	"lang":         "i18n.default_language",
	"theme":        "theme.default",
	"max-sessions": "carousel.max_sessions",
}

// MCPFlagKeys is FlagKeys for the mcp command, whose --port is the MCP SSE port.
func MCPFlagKeys() map[string]string {
	keys := make(map[string]string, len(FlagKeys))
	for name, key := range FlagKeys {
		keys[name] = key
	}
	keys["port"] = "mcp.port"
	return keys
}

// Options controls where Load looks.
type Options struct {
	// ConfigFile is an explicit config path. Empty searches for folio.yaml in the working directory.
	ConfigFile string
	// EnvFile is loaded into the environment if present. Empty means ".env".
	EnvFile string
	// Flags are bound according to FlagKeys; only flags the user changed override.
	Flags *pflag.FlagSet
	// FlagKeys replaces the package FlagKeys when set.
	FlagKeys map[string]string
}

// Load resolves the configuration and validates it.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	keys := opts.FlagKeys
	if keys == nil {
		keys = FlagKeys
	}
	if opts.Flags != nil {
		for name, key := range keys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
