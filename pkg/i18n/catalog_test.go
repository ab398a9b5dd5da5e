package i18n

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefault_Translates(t *testing.T) {
	c := Default()
	assert.Equal(t, "Projects", c.T(language.English, "nav.projects"))
	assert.Equal(t, "Proyectos", c.T(language.Spanish, "nav.projects"))
	assert.Equal(t, "2 / 5", c.T(language.Spanish, "carousel.position", 2, 5))
}

func TestCatalog_Fallbacks(t *testing.T) {
	c := Default()

	// es has no blog.read: falls back to English.
	assert.Equal(t, "Read more", c.T(language.Spanish, "blog.read"))
	// Regional variants match their base language.
	assert.Equal(t, "Proyectos", c.T(language.MustParse("es-MX"), "nav.projects"))
	// Unsupported languages use the default.
	assert.Equal(t, "Projects", c.T(language.French, "nav.projects"))
	// Unknown keys render as themselves.
	assert.Equal(t, "no.such.key", c.T(language.English, "no.such.key"))
}

func TestCatalog_Resolve(t *testing.T) {
	c := Default()

	tests := []struct {
		name   string
		target string
		accept string
		want   language.Tag
	}{
		{"default", "/", "", language.English},
		{"query wins", "/?lang=es", "en-US,en;q=0.9", language.Spanish},
		{"accept language", "/", "es-AR,es;q=0.9,en;q=0.5", language.Spanish},
		{"unsupported accept", "/", "fr-FR", language.English},
		{"bad query falls through", "/?lang=zz-invalid-", "es", language.Spanish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			assert.Equal(t, tt.want, c.Resolve(r))
		})
	}
	assert.Equal(t, language.English, c.Resolve(nil))
}

func TestCatalog_Parse(t *testing.T) {
	c := Default()
	tag, err := c.Parse("es")
	require.NoError(t, err)
	assert.Equal(t, language.Spanish, tag)

	_, err = c.Parse("fr")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
	_, err = c.Parse("not a tag")
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestCatalog_WithFallback(t *testing.T) {
	c, err := Default().WithFallback(language.Spanish)
	require.NoError(t, err)
	assert.Equal(t, language.Spanish, c.Fallback())
	assert.Equal(t, language.Spanish, c.Supported()[0])
	assert.Equal(t, "Proyectos", c.T(language.French, "nav.projects"))

	_, err = Default().WithFallback(language.German)
	assert.ErrorIs(t, err, domain.ErrUnknownLanguage)
}

func TestCatalog_Options(t *testing.T) {
	opts := Default().Options(language.Spanish)
	require.Len(t, opts, 2)
	assert.Equal(t, Option{Tag: "en", Label: "English"}, opts[0])
	assert.Equal(t, Option{Tag: "es", Label: "Español", Active: true}, opts[1])
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{}, language.English)
	assert.Error(t, err)

	_, err = Load(fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: es\nmessages: {}\n")},
	}, language.English)
	assert.ErrorContains(t, err, "must match file name")

	_, err = Load(fstest.MapFS{
		"locales/es.yaml": {Data: []byte("locale: es\nmessages: {a: b}\n")},
	}, language.English)
	assert.ErrorContains(t, err, "fallback locale")
}
