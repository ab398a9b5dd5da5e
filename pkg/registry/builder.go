package registry

import "github.com/aretw0/folio/pkg/domain"

// Builder assembles a registry fluently:
//
//	b := registry.NewBuilder()
//	b.Add("Folio").Tag("Go").Describe("This site").Link("https://example.com")
//	b.Add("Next thing").Placeholder()
//	reg, err := b.Build()
type Builder struct {
	slides []*SlideBuilder
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a slide. Slides keep insertion order.
func (b *Builder) Add(name string) *SlideBuilder {
	sb := &SlideBuilder{slide: domain.Slide{Name: name}, builder: b}
	b.slides = append(b.slides, sb)
	return sb
}

// Build validates the slides and creates the registry.
func (b *Builder) Build() (*Registry, error) {
	slides := make([]domain.Slide, 0, len(b.slides))
	for _, sb := range b.slides {
		slides = append(slides, sb.slide)
	}
	return New(slides...)
}

// SlideBuilder configures one slide.
type SlideBuilder struct {
	slide   domain.Slide
	builder *Builder
}

func (sb *SlideBuilder) Tag(tag string) *SlideBuilder {
	sb.slide.Tag = tag
	return sb
}

func (sb *SlideBuilder) Describe(text string) *SlideBuilder {
	sb.slide.Description = text
	return sb
}

func (sb *SlideBuilder) Link(url string) *SlideBuilder {
	sb.slide.Link = url
	return sb
}

func (sb *SlideBuilder) Preview(image string) *SlideBuilder {
	sb.slide.PreviewImage = image
	return sb
}

// Placeholder marks the slide as "coming soon".
func (sb *SlideBuilder) Placeholder() *SlideBuilder {
	sb.slide.Placeholder = true
	return sb
}

// Add starts the next slide, allowing chains across slides.
func (sb *SlideBuilder) Add(name string) *SlideBuilder {
	return sb.builder.Add(name)
}
