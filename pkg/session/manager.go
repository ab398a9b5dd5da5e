package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/jonboulle/clockwork"
)

// DefaultTTL is how long an unused session stays mounted.
const DefaultTTL = 10 * time.Minute

// Factory builds an unstarted controller for a session.
type Factory func(ctx context.Context, sessionID string) (*carousel.Controller, error)

// NewFactory returns a Factory creating controllers over reg tagged with the session ID.
func NewFactory(reg *registry.Registry, opts ...carousel.Option) Factory {
	return func(_ context.Context, sessionID string) (*carousel.Controller, error) {
		return carousel.New(reg, append(opts[:len(opts):len(opts)], carousel.WithSessionID(sessionID))...)
	}
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type entry struct {
	c        *carousel.Controller
	lastUsed time.Time
	users    int // long-lived holders (streams); never reaped while > 0
}

// Manager orchestrates per-session controllers.
// It uses Reference Counting to garbage collect unused creation locks.
type Manager struct {
	factory     Factory
	broadcaster ports.Broadcaster
	ttl         time.Duration
	max         int
	clock       clockwork.Clock
	logger      *slog.Logger
	onChange    func(active int)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex            // Global lock for the maps
	locks   map[string]*lockEntry // Map of active creation locks
	entries map[string]*entry
	closed  bool
}

// Option configures the Manager.
type Option func(*Manager)

// WithBroadcaster publishes state diffs of every managed controller.
func WithBroadcaster(b ports.Broadcaster) Option {
	return func(m *Manager) {
		m.broadcaster = b
	}
}

// WithTTL sets the idle time after which a session is unmounted.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithMaxSessions caps the number of mounted sessions. Zero means unlimited.
func WithMaxSessions(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.max = n
		}
	}
}

// WithClock injects the time source used for idle tracking.
func WithClock(clock clockwork.Clock) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithActiveObserver is called with the number of mounted sessions whenever it changes.
func WithActiveObserver(fn func(active int)) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// NewManager creates a new Session Manager building controllers with factory.
func NewManager(factory Factory, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		ttl:     DefaultTTL,
		clock:   clockwork.NewRealClock(),
		locks:   make(map[string]*lockEntry),
		entries: make(map[string]*entry),
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn(ctx)
}

// Get returns the session's controller, mounting one if needed, and marks the session used.
func (m *Manager) Get(ctx context.Context, sessionID string) (*carousel.Controller, error) {
	var c *carousel.Controller
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		c, err = m.getLocked(ctx, sessionID, false)
		return err
	})
	return c, err
}

// Acquire is like Get but keeps the session mounted until release is called.
// Streams (SSE, WebSocket) use it for the lifetime of the connection.
func (m *Manager) Acquire(ctx context.Context, sessionID string) (c *carousel.Controller, release func(), err error) {
	err = m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		c, err = m.getLocked(ctx, sessionID, true)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var once sync.Once
	release = func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if e, ok := m.entries[sessionID]; ok && e.c == c {
				e.users--
				e.lastUsed = m.clock.Now()
			}
		})
	}
	return c, release, nil
}

func (m *Manager) getLocked(ctx context.Context, sessionID string, hold bool) (*carousel.Controller, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, domain.ErrClosed
	}
	if e, ok := m.entries[sessionID]; ok && !isDone(e.c) {
		e.lastUsed = m.clock.Now()
		if hold {
			e.users++
		}
		m.mu.Unlock()
		return e.c, nil
	}
	if m.full(sessionID) {
		m.mu.Unlock()
		return nil, domain.ErrSessionLimit
	}
	m.mu.Unlock()

	c, err := m.factory(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create carousel for session %s: %w", sessionID, err)
	}
	if err := c.Start(m.ctx); err != nil {
		return nil, fmt.Errorf("failed to mount carousel for session %s: %w", sessionID, err)
	}

	e := &entry{c: c, lastUsed: m.clock.Now()}
	if hold {
		e.users = 1
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = c.Close()
		return nil, domain.ErrClosed
	}
	// Another session may have taken the last slot while this one was mounting.
	if m.full(sessionID) {
		m.mu.Unlock()
		_ = c.Close()
		return nil, domain.ErrSessionLimit
	}
	m.entries[sessionID] = e
	active := len(m.entries)
	m.mu.Unlock()

	m.logger.Debug("session mounted", "session_id", sessionID)
	m.notify(active)
	m.startPublisher(sessionID, c)
	return c, nil
}

// full reports whether mounting sessionID would exceed the cap. Replacing a
// dead entry does not grow the map. Callers hold m.mu.
func (m *Manager) full(sessionID string) bool {
	if _, ok := m.entries[sessionID]; ok {
		return false
	}
	return m.max > 0 && len(m.entries) >= m.max
}

// Lookup returns a mounted controller without creating one.
func (m *Manager) Lookup(sessionID string) (*carousel.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[sessionID]; ok && !isDone(e.c) {
		return e.c, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Delete unmounts a session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		e, ok := m.entries[sessionID]
		if ok {
			delete(m.entries, sessionID)
		}
		active := len(m.entries)
		m.mu.Unlock()

		if !ok {
			return domain.ErrSessionNotFound
		}
		m.notify(active)
		return e.c.Close()
	})
}

// List returns the mounted session IDs in sorted order.
func (m *Manager) List() []string {
	m.mu.Lock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	sort.Strings(ids)
	return ids
}

// Len returns the number of mounted sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Reap unmounts sessions idle for longer than the TTL and returns how many were closed.
func (m *Manager) Reap() int {
	now := m.clock.Now()

	m.mu.Lock()
	var stale []*carousel.Controller
	var ids []string
	for id, e := range m.entries {
		if isDone(e.c) || (e.users <= 0 && now.Sub(e.lastUsed) >= m.ttl) {
			stale = append(stale, e.c)
			ids = append(ids, id)
			delete(m.entries, id)
		}
	}
	active := len(m.entries)
	m.mu.Unlock()

	for i, c := range stale {
		_ = c.Close()
		m.logger.Debug("session reaped", "session_id", ids[i])
	}
	if len(stale) > 0 {
		m.notify(active)
	}
	return len(stale)
}

// Run reaps idle sessions periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	ticker := m.clock.NewTicker(max(m.ttl/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.ctx.Done():
			return nil
		case <-ticker.Chan():
			if n := m.Reap(); n > 0 {
				m.logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}

// Close unmounts every session and waits for publishers to drain.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	all := make([]*carousel.Controller, 0, len(m.entries))
	for id, e := range m.entries {
		all = append(all, e.c)
		delete(m.entries, id)
	}
	m.mu.Unlock()

	for _, c := range all {
		_ = c.Close()
	}
	m.cancel()
	m.wg.Wait()
	m.notify(0)
	return nil
}

func (m *Manager) startPublisher(sessionID string, c *carousel.Controller) {
	if m.broadcaster == nil {
		return
	}
	updates := c.Watch(m.ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		var prev *domain.State
		for s := range updates {
			diff := domain.Diff(prev, &s)
			prev = &s
			if diff == nil {
				continue
			}
			if err := m.broadcaster.Publish(m.ctx, sessionID, diff); err != nil {
				m.logger.Warn("failed to publish state diff", "session_id", sessionID, "err", err)
			}
		}
	}()
}

func (m *Manager) notify(active int) {
	if m.onChange != nil {
		m.onChange(active)
	}
}

func isDone(c *carousel.Controller) bool {
	select {
	case <-c.Done():
		return true
	default:
		return false
	}
}
