package folio_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/pkg/adapters/memory"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/domain"
)

// ExampleNew_memory builds a site from in-memory slides and drives one
// visitor's carousel by hand.
func ExampleNew_memory() {
	src := memory.NewSource(
		domain.Slide{Name: "Folio", Tag: "Web", Description: "This site."},
		domain.Slide{Name: "Loam", Tag: "Go", Description: "Documents as data.", Link: "https://example.com/loam"},
		domain.Slide{Name: "Next", Tag: "Research", Placeholder: true},
	)

	ctx := context.Background()
	site, err := folio.New(ctx,
		folio.WithSource(src),
		folio.WithCarouselOptions(carousel.WithInterval(0)), // no autoplay
	)
	if err != nil {
		log.Fatal(err)
	}
	defer site.Close()

	c, err := site.Sessions.Get(ctx, "visitor")
	if err != nil {
		log.Fatal(err)
	}

	_ = c.Next(ctx)
	st := c.State()
	fmt.Printf("%s (%d/%d)\n", c.Registry().At(st.ActiveIndex).Name, st.ActiveIndex+1, st.SlideCount)

	_ = c.GoTo(ctx, -1)
	st = c.State()
	fmt.Printf("%s (%d/%d)\n", c.Registry().At(st.ActiveIndex).Name, st.ActiveIndex+1, st.SlideCount)

	// Output:
	// Loam (2/3)
	// Next (3/3)
}
