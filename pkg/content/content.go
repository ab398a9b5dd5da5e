// Package content holds the localized portfolio sections rendered around the carousel.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Library maps languages to their portfolio document.
type Library struct {
	fallback language.Tag
	docs     map[language.Tag]*domain.Portfolio
}

// Load decodes every data/<lang>.yaml of fsys.
func Load(fsys fs.FS, fallback language.Tag) (*Library, error) {
	paths, err := fs.Glob(fsys, "data/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob content: %w", err)
	}
	sort.Strings(paths)

	lib := &Library{fallback: fallback, docs: map[language.Tag]*domain.Portfolio{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read content %s: %w", p, err)
		}
		var doc domain.Portfolio
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse content %s: %w", p, err)
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("content %s: parse language: %w", p, err)
		}
		doc.Language = tag.String()
		lib.docs[tag] = &doc
	}

	if _, ok := lib.docs[fallback]; !ok {
		return nil, fmt.Errorf("%w: no content for default language %s", domain.ErrUnknownLanguage, fallback)
	}
	return lib, nil
}

// Default returns the embedded library, falling back to English.
func Default() *Library {
	lib, err := Load(embedded, language.English)
	if err != nil {
		panic(fmt.Sprintf("embedded content is invalid: %v", err))
	}
	return lib
}

// For returns the document for tag, its base language, or the fallback.
func (l *Library) For(tag language.Tag) *domain.Portfolio {
	if doc, ok := l.docs[tag]; ok {
		return doc
	}
	if base, conf := tag.Base(); conf != language.No {
		if doc, ok := l.docs[language.Make(base.String())]; ok {
			return doc
		}
	}
	return l.docs[l.fallback]
}

// Languages lists the languages with content.
func (l *Library) Languages() []language.Tag {
	out := make([]language.Tag, 0, len(l.docs))
	for tag := range l.docs {
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
