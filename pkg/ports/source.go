package ports

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
)

// SlideSource defines the interface for loading the project slides.
// Implementations return slides in display order. The returned slice is owned by the caller.
type SlideSource interface {
	LoadSlides(ctx context.Context) ([]domain.Slide, error)
}

// SlideSourceFunc adapts a function to SlideSource.
type SlideSourceFunc func(ctx context.Context) ([]domain.Slide, error)

func (f SlideSourceFunc) LoadSlides(ctx context.Context) ([]domain.Slide, error) {
	return f(ctx)
}
