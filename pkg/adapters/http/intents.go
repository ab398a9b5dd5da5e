package http

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/input"
)

// SourceParam names the UI element behind a POST intent.
const SourceParam = "source"

// routeIntent delivers an intent through the input router matching its
// source, so arrows, dots, keys and hover reach the carousel the same way
// from every surface. Anything else is an API call.
func routeIntent(ctx context.Context, d input.Dispatcher, in domain.Intent) error {
	r := input.NewRouter(d)
	switch in.Source {
	case domain.SourceArrow:
		switch in.Kind {
		case domain.IntentPrev:
			return r.Arrow(ctx, input.Left)
		case domain.IntentNext:
			return r.Arrow(ctx, input.Right)
		}
	case domain.SourceDot:
		if in.Kind == domain.IntentGoTo {
			return r.Dot(ctx, in.Index)
		}
	case domain.SourceKeyboard:
		switch in.Kind {
		case domain.IntentPrev:
			_, err := r.Key(ctx, input.KeyArrowLeft)
			return err
		case domain.IntentNext:
			_, err := r.Key(ctx, input.KeyArrowRight)
			return err
		}
	case domain.SourcePointer:
		switch in.Kind {
		case domain.IntentPause:
			return r.Hover(ctx, true)
		case domain.IntentResume:
			return r.Hover(ctx, false)
		}
	}
	in.Source = domain.SourceAPI
	return d.Dispatch(ctx, in)
}
