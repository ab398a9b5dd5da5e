package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces the pub/sub channels.
const DefaultPrefix = "folio:carousel:"

// Broadcaster implements ports.Broadcaster over Redis pub/sub, so every
// replica serving a session sees the diffs produced by whichever replica owns
// its controller. Nothing is stored in Redis.
type Broadcaster struct {
	client     *backend.Client
	ownsClient bool
	prefix     string
	buffer     int
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

var _ ports.Broadcaster = (*Broadcaster)(nil)

type Option func(*Broadcaster)

// WithPrefix sets the channel prefix.
func WithPrefix(prefix string) Option {
	return func(b *Broadcaster) {
		b.prefix = prefix
	}
}

// WithBuffer sets the per-subscriber queue size.
func WithBuffer(n int) Option {
	return func(b *Broadcaster) {
		if n > 0 {
			b.buffer = n
		}
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

// New creates a broadcaster with its own client.
func New(address, password string, db int, opts ...Option) *Broadcaster {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	b := NewFromClient(rdb, opts...)
	b.ownsClient = true
	return b
}

// NewFromClient creates a broadcaster from an existing client. Close leaves the client open.
func NewFromClient(client *backend.Client, opts ...Option) *Broadcaster {
	b := &Broadcaster{
		client: client,
		prefix: DefaultPrefix,
		buffer: 16,
		logger: logging.NewNop(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Broadcaster) channel(sessionID string) string {
	return b.prefix + sessionID
}

// Ping checks connectivity.
func (b *Broadcaster) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Publish encodes the diff as JSON and publishes it on the session channel.
func (b *Broadcaster) Publish(ctx context.Context, sessionID string, diff *domain.StateDiff) error {
	if b.isClosed() {
		return domain.ErrClosed
	}
	payload, err := json.Marshal(diff)
	if err != nil {
		return fmt.Errorf("failed to marshal diff: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel(sessionID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish diff: %w", err)
	}
	return nil
}

// Subscribe subscribes to the session channel and waits for the server's confirmation.
// The subscription ends when its queue overflows.
func (b *Broadcaster) Subscribe(ctx context.Context, sessionID string) (<-chan *domain.StateDiff, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, domain.ErrClosed
	}
	b.wg.Add(1)
	b.mu.Unlock()

	ps := b.client.Subscribe(ctx, b.channel(sessionID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		b.wg.Done()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	out := make(chan *domain.StateDiff, b.buffer)
	go func() {
		defer b.wg.Done()
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.done:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var diff domain.StateDiff
				if err := json.Unmarshal([]byte(msg.Payload), &diff); err != nil {
					b.logger.Warn("discarding malformed diff", "session_id", sessionID, "err", err)
					continue
				}
				select {
				case out <- &diff:
				default:
					// The reader must resynchronize from a snapshot.
					b.logger.Warn("closing slow subscriber", "session_id", sessionID)
					return
				}
			}
		}
	}()
	return out, nil
}

// Close ends every subscription and, for broadcasters created with New, the client.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	b.wg.Wait()
	if b.ownsClient {
		return b.client.Close()
	}
	return nil
}

func (b *Broadcaster) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
