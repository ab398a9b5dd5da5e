package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
)

// DefaultBuffer is the per-subscriber queue size.
const DefaultBuffer = 16

// Broadcaster implements ports.Broadcaster in process.
// Safe for concurrent use. A subscriber whose queue is full is closed instead
// of blocking publishers, so it resynchronizes from a snapshot.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *domain.StateDiff]struct{} // SessionID -> Set of Channels
	closed      bool
	done        chan struct{}
	buffer      int
	logger      *slog.Logger
}

var _ ports.Broadcaster = (*Broadcaster)(nil)

// BroadcasterOption configures a Broadcaster.
type BroadcasterOption func(*Broadcaster)

// WithBuffer sets the per-subscriber queue size.
func WithBuffer(n int) BroadcasterOption {
	return func(b *Broadcaster) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) BroadcasterOption {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

// NewBroadcaster creates an empty in-memory broadcaster.
func NewBroadcaster(opts ...BroadcasterOption) *Broadcaster {
	b := &Broadcaster{
		subscribers: make(map[string]map[chan *domain.StateDiff]struct{}),
		done:        make(chan struct{}),
		buffer:      DefaultBuffer,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a channel for sessionID until ctx is done.
func (b *Broadcaster) Subscribe(ctx context.Context, sessionID string) (<-chan *domain.StateDiff, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, domain.ErrClosed
	}

	ch := make(chan *domain.StateDiff, b.buffer)
	if _, ok := b.subscribers[sessionID]; !ok {
		b.subscribers[sessionID] = make(map[chan *domain.StateDiff]struct{})
	}
	b.subscribers[sessionID][ch] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.unsubscribe(sessionID, ch)
	}()
	return ch, nil
}

func (b *Broadcaster) unsubscribe(sessionID string, ch chan *domain.StateDiff) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.subscribers[sessionID]; ok {
		if _, ok := subs[ch]; !ok {
			return
		}
		delete(subs, ch)
		close(ch)
		if len(subs) == 0 {
			delete(b.subscribers, sessionID)
		}
	}
}

// Publish delivers diff to every subscriber of sessionID.
// Subscribers that cannot take it are unsubscribed.
func (b *Broadcaster) Publish(_ context.Context, sessionID string, diff *domain.StateDiff) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return domain.ErrClosed
	}

	var overflow []chan *domain.StateDiff
	for ch := range b.subscribers[sessionID] {
		select {
		case ch <- diff:
		default:
			overflow = append(overflow, ch)
		}
	}
	b.mu.RUnlock()

	for _, ch := range overflow {
		b.logger.Warn("closing slow subscriber", "session_id", sessionID)
		b.unsubscribe(sessionID, ch)
	}
	return nil
}

// Subscribers returns the number of live subscriptions for sessionID.
func (b *Broadcaster) Subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[sessionID])
}

// Close closes every subscription. Further calls fail with domain.ErrClosed.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	for id, subs := range b.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
	return nil
}
