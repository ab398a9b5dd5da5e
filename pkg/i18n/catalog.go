// Package i18n provides the language context of the site: message catalogs
// per language and per-request language resolution.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Label    string            `yaml:"label"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds the messages of every supported language.
type Catalog struct {
	fallback language.Tag
	tags     []language.Tag
	labels   map[language.Tag]string
	keys     map[language.Tag]map[string]struct{}
	builder  *catalog.Builder
	matcher  language.Matcher
}

// Load reads every locales/*.yaml file of fsys. fallback must be one of them.
func Load(fsys fs.FS, fallback language.Tag) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		fallback: fallback,
		labels:   map[language.Tag]string{},
		keys:     map[language.Tag]map[string]struct{}{},
		builder:  catalog.NewBuilder(catalog.Fallback(fallback)),
	}

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}

		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if file.Locale != name {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name", p, file.Locale)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale: %w", p, err)
		}

		c.tags = append(c.tags, tag)
		c.labels[tag] = file.Label
		c.keys[tag] = make(map[string]struct{}, len(file.Messages))
		for key, msg := range file.Messages {
			if err := c.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", p, key, err)
			}
			c.keys[tag][key] = struct{}{}
		}
	}

	if _, ok := c.keys[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s is not defined in catalogs", fallback)
	}

	// The fallback goes first so the matcher prefers it on ties.
	sort.SliceStable(c.tags, func(i, j int) bool { return c.tags[i] == fallback && c.tags[j] != fallback })
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Default returns the catalog built from the embedded locales, falling back to English.
func Default() *Catalog {
	c, err := Load(embeddedLocales, language.English)
	if err != nil {
		panic(fmt.Sprintf("embedded locales are invalid: %v", err))
	}
	return c
}

// WithFallback returns a copy of the catalog using tag as the default language.
func (c *Catalog) WithFallback(tag language.Tag) (*Catalog, error) {
	if _, ok := c.keys[tag]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownLanguage, tag)
	}
	cp := *c
	cp.fallback = tag
	cp.tags = append([]language.Tag(nil), c.tags...)
	sort.SliceStable(cp.tags, func(i, j int) bool { return cp.tags[i] == tag && cp.tags[j] != tag })
	cp.matcher = language.NewMatcher(cp.tags)
	return &cp, nil
}

// T translates key into tag, formatting args like fmt.Sprintf.
// Missing keys fall back to the default language and then to the key itself.
func (c *Catalog) T(tag language.Tag, key string, args ...any) string {
	tag = c.Match(tag)
	if _, ok := c.keys[tag][key]; !ok {
		tag = c.fallback
	}
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(key, args...)
}

// Translator binds a language for templates.
func (c *Catalog) Translator(tag language.Tag) func(key string, args ...any) string {
	return func(key string, args ...any) string {
		return c.T(tag, key, args...)
	}
}

// Supported returns the supported languages, default first.
func (c *Catalog) Supported() []language.Tag {
	return append([]language.Tag(nil), c.tags...)
}

// Fallback returns the default language.
func (c *Catalog) Fallback() language.Tag {
	return c.fallback
}

// Label returns the native display name of a supported language.
func (c *Catalog) Label(tag language.Tag) string {
	if l := c.labels[tag]; l != "" {
		return l
	}
	return tag.String()
}

// Match returns the closest supported language, or the default.
func (c *Catalog) Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	return c.tags[idx]
}

// Parse resolves a textual tag to a supported language.
func (c *Catalog) Parse(value string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, value)
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return language.Und, fmt.Errorf("%w: %q", domain.ErrUnknownLanguage, value)
	}
	return c.tags[idx], nil
}

// Resolve picks the language for a request: the lang query parameter, then
// Accept-Language, then the default. Nothing is remembered between requests.
func (c *Catalog) Resolve(r *http.Request) language.Tag {
	if r == nil {
		return c.fallback
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := c.Parse(v); err == nil {
			return tag
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return c.Match(tags...)
		}
	}
	return c.fallback
}

// Option is a language choice for UI surfaces.
type Option struct {
	Tag    string
	Label  string
	Active bool
}

// Options lists supported languages with the active one marked.
func (c *Catalog) Options(active language.Tag) []Option {
	out := make([]Option, 0, len(c.tags))
	for _, tag := range c.tags {
		out = append(out, Option{Tag: tag.String(), Label: c.Label(tag), Active: tag == active})
	}
	return out
}
