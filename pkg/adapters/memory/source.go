package memory

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
)

// Source implements ports.SlideSource over a fixed list.
type Source struct {
	slides []domain.Slide
}

var _ ports.SlideSource = (*Source)(nil)

// NewSource copies slides into a new source.
func NewSource(slides ...domain.Slide) *Source {
	return &Source{slides: append([]domain.Slide(nil), slides...)}
}

// LoadSlides returns a copy of the slides.
func (s *Source) LoadSlides(ctx context.Context) ([]domain.Slide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.Slide(nil), s.slides...), nil
}
