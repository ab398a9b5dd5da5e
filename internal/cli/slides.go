package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	loamAdapter "github.com/aretw0/folio/pkg/adapters/loam"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/registry"
)

// SlideSource returns the Loam source for dir, or the embedded slides when dir is empty.
func SlideSource(dir string) (ports.SlideSource, error) {
	if dir == "" {
		return registry.Default(), nil
	}
	src, err := loamAdapter.Open(dir)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// ListSlides prints the slides of src as a table.
func ListSlides(ctx context.Context, w io.Writer, src ports.SlideSource) error {
	reg, err := registry.Load(ctx, src)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTAG\tLINK")
	for i, s := range reg.Slides() {
		link := s.Link
		switch {
		case s.Placeholder:
			link = "(coming soon)"
		case link == "":
			link = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.Name, s.Tag, link)
	}
	return tw.Flush()
}

// ValidateSlides checks every slide of src and prints each problem.
func ValidateSlides(ctx context.Context, w io.Writer, src ports.SlideSource) error {
	_, err := registry.Load(ctx, src)
	var verr *registry.ValidationError
	switch {
	case err == nil:
		fmt.Fprintln(w, "✓ slides are valid")
		return nil
	case errors.As(err, &verr):
		for _, p := range verr.Problems {
			fmt.Fprintf(w, "✗ %s\n", p)
		}
	case errors.Is(err, domain.ErrEmptyRegistry):
		fmt.Fprintln(w, "✗ no slides found")
	}
	return err
}
