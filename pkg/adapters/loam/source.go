package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/loam"
)

// Source adapts a Loam repository of slide documents to ports.SlideSource.
//
// Each document is one slide. Slides are ordered by document ID, so a
// directory of "01-folio.md", "02-trellis.md" keeps its file order. When the
// front matter has no description, the document body is used.
type Source struct {
	Repo *loam.TypedRepository[SlideMetadata]
}

var _ ports.SlideSource = (*Source)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[SlideMetadata]) *Source {
	return &Source{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric types consistent across serializers and
	// ReadOnly stops Loam from sandboxing the directory in dev mode.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[SlideMetadata](repo)), nil
}

// LoadSlides lists every document and converts it to a slide.
func (s *Source) LoadSlides(ctx context.Context) ([]domain.Slide, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	type keyed struct {
		id    string
		slide domain.Slide
	}
	items := make([]keyed, 0, len(docs))
	for _, doc := range docs {
		meta := doc.Data
		if meta.Draft {
			continue
		}

		name := meta.Name
		if name == "" {
			name = humanize(doc.ID)
		}
		description := meta.Description
		if description == "" {
			description = strings.TrimSpace(doc.Content)
		}

		items = append(items, keyed{
			id: doc.ID,
			slide: domain.Slide{
				Name:         name,
				Tag:          meta.Tag,
				Description:  description,
				Link:         meta.Link,
				PreviewImage: meta.PreviewImage,
				Placeholder:  meta.Placeholder,
			},
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].id < items[j].id })

	slides := make([]domain.Slide, len(items))
	for i, it := range items {
		slides[i] = it.slide
	}
	return slides, nil
}

// humanize turns "02-my_project.md" into "my project".
func humanize(id string) string {
	base := trimExtension(filepath.Base(id))
	if i := strings.IndexByte(base, '-'); i > 0 && isDigits(base[:i]) {
		base = base[i+1:]
	}
	return strings.NewReplacer("-", " ", "_", " ").Replace(base)
}

func trimExtension(id string) string {
	return strings.TrimSuffix(id, filepath.Ext(id))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
