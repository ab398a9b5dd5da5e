// Package registry holds the ordered, immutable list of project slides.
package registry

import (
	"context"
	"fmt"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
)

// Registry is a fixed, ordered list of slides. It is safe for concurrent reads
// because nothing mutates it after construction.
type Registry struct {
	slides []domain.Slide
}

// New creates a registry from the given slides, validating each one.
// The input is copied; later changes to it do not affect the registry.
func New(slides ...domain.Slide) (*Registry, error) {
	if len(slides) == 0 {
		return nil, domain.ErrEmptyRegistry
	}
	if err := Validate(slides); err != nil {
		return nil, err
	}
	return &Registry{slides: append([]domain.Slide(nil), slides...)}, nil
}

// Load builds a registry from a SlideSource.
func Load(ctx context.Context, src ports.SlideSource) (*Registry, error) {
	slides, err := src.LoadSlides(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load slides: %w", err)
	}
	return New(slides...)
}

// Len returns the slide count.
func (r *Registry) Len() int {
	return len(r.slides)
}

// At returns the slide at index i. Out of range indices wrap around.
func (r *Registry) At(i int) domain.Slide {
	return r.slides[domain.Wrap(i, len(r.slides))]
}

// Slides returns a copy of the ordered slide list.
func (r *Registry) Slides() []domain.Slide {
	return append([]domain.Slide(nil), r.slides...)
}

// LoadSlides implements ports.SlideSource so a registry can seed other components.
func (r *Registry) LoadSlides(_ context.Context) ([]domain.Slide, error) {
	return r.Slides(), nil
}
