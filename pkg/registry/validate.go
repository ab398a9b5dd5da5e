package registry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
)

// ValidationError collects every problem found in a slide list.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid slides: %s", strings.Join(e.Problems, "; "))
}

// Validate checks that every slide has a name and that links are absolute http(s) URLs.
func Validate(slides []domain.Slide) error {
	var problems []string
	for i, s := range slides {
		if strings.TrimSpace(s.Name) == "" {
			problems = append(problems, fmt.Sprintf("slide %d: missing name", i))
		}
		if s.Link != "" && !isWebURL(s.Link) {
			problems = append(problems, fmt.Sprintf("slide %d (%s): link %q is not an absolute http(s) URL", i, s.Name, s.Link))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
