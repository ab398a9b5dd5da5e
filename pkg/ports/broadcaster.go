package ports

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
)

// Broadcaster fans out state diffs keyed by session ID.
//
// A subscriber that falls behind is closed rather than skipped, so a consumer
// never applies a diff on top of a missing one. Consumers resynchronize from a
// full snapshot when they (re)connect.
type Broadcaster interface {
	// Publish sends the diff to every current subscriber of sessionID.
	Publish(ctx context.Context, sessionID string, diff *domain.StateDiff) error

	// Subscribe registers interest in sessionID. The subscription is active when
	// Subscribe returns. The channel is closed once ctx is done, the broadcaster
	// is closed, or the subscriber's queue overflows.
	Subscribe(ctx context.Context, sessionID string) (<-chan *domain.StateDiff, error)

	// Close releases resources and closes every open subscription.
	Close() error
}
