package session

import (
	"container/list"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vango-dev/techcorp/pkg/owner"
)

var (
	// ErrTooManySessionsFromIP is returned when the per-IP session limit is exceeded.
	ErrTooManySessionsFromIP = errors.New("session: too many sessions from this IP address")

	// ErrManagerStopped is returned when operations are attempted on a closed manager.
	ErrManagerStopped = errors.New("session: manager is stopped")
)

// Config configures a Manager.
type Config struct {
	// IdleTimeout is how long a visitor may go unseen before it is swept.
	// Default: 30 minutes.
	IdleTimeout time.Duration

	// CleanupInterval is how often idle visitors are swept.
	// Default: 1 minute.
	CleanupInterval time.Duration

	// MaxSessions bounds the number of live visitors. When full, the least
	// recently seen visitor is evicted. Zero means unbounded.
	MaxSessions int

	// MaxSessionsPerIP bounds visitors per client address. Zero means unbounded.
	MaxSessionsPerIP int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:      30 * time.Minute,
		CleanupInterval:  time.Minute,
		MaxSessions:      10000,
		MaxSessionsPerIP: 100,
	}
}

// Factory builds per-visitor state bound to the visitor's scope.
type Factory[T any] func(o *owner.Owner) T

// Visitor is one tracked site visitor.
type Visitor[T any] struct {
	ID        string
	IP        string
	CreatedAt time.Time

	// Owner is disposed when the visitor is removed, evicted or swept.
	Owner *owner.Owner

	// Value is the state built by the manager's Factory.
	Value T

	lastSeen time.Time
	elem     *list.Element
}

// Manager owns the set of live visitors. It is safe for concurrent use.
type Manager[T any] struct {
	mu sync.Mutex

	visitors map[string]*Visitor[T]
	// Front is the most recently seen visitor.
	lru  *list.List
	byIP map[string]int

	root    *owner.Owner
	factory Factory[T]
	config  Config
	logger  *slog.Logger

	// now is overridable for tests.
	now func() time.Time

	onEvict func(reason string)

	done    chan struct{}
	stopped bool
}

// NewManager creates a Manager and starts its sweep loop. Visitor scopes
// derive from ctx.
func NewManager[T any](ctx context.Context, factory Factory[T], config Config, logger *slog.Logger) *Manager[T] {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultConfig()
	if config.IdleTimeout <= 0 {
		config.IdleTimeout = defaults.IdleTimeout
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = defaults.CleanupInterval
	}

	m := &Manager[T]{
		visitors: make(map[string]*Visitor[T]),
		lru:      list.New(),
		byIP:     make(map[string]int),
		root:     owner.New(ctx),
		factory:  factory,
		config:   config,
		logger:   logger.With("component", "session_manager"),
		now:      time.Now,
		done:     make(chan struct{}),
	}

	go m.cleanupLoop()
	return m
}

// OnEvict registers fn to be called with "idle", "capacity" or "removed"
// whenever a visitor goes away. It must be set before the manager is used.
func (m *Manager[T]) OnEvict(fn func(reason string)) {
	m.onEvict = fn
}

// Acquire returns the visitor with the given id, marking it as seen. When
// id is empty or unknown a new visitor is created under a fresh id, and
// created is true.
func (m *Manager[T]) Acquire(id, ip string) (v *Visitor[T], created bool, err error) {
	var evicted []*Visitor[T]
	defer func() { m.dispose(evicted, "capacity") }()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return nil, false, ErrManagerStopped
	}

	if existing, ok := m.visitors[id]; ok && id != "" {
		m.touchLocked(existing)
		return existing, false, nil
	}

	if m.config.MaxSessionsPerIP > 0 && m.byIP[ip] >= m.config.MaxSessionsPerIP {
		return nil, false, ErrTooManySessionsFromIP
	}
	for m.config.MaxSessions > 0 && len(m.visitors) >= m.config.MaxSessions {
		back := m.lru.Back()
		if back == nil {
			break
		}
		evicted = append(evicted, m.removeLocked(back.Value.(string)))
	}

	now := m.now()
	scope := m.root.Child()
	v = &Visitor[T]{
		ID:        uuid.NewString(),
		IP:        ip,
		CreatedAt: now,
		Owner:     scope,
		lastSeen:  now,
	}
	v.Value = m.factory(scope)
	v.elem = m.lru.PushFront(v.ID)
	m.visitors[v.ID] = v
	m.byIP[ip]++

	m.logger.Debug("session created",
		"session_id", v.ID,
		"total", len(m.visitors))
	return v, true, nil
}

// Lookup returns the visitor with the given id and marks it as seen.
func (m *Manager[T]) Lookup(id string) (*Visitor[T], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visitors[id]
	if !ok || m.stopped {
		return nil, false
	}
	m.touchLocked(v)
	return v, true
}

// Touch marks the visitor with the given id as seen. It reports false
// when the visitor is gone.
func (m *Manager[T]) Touch(id string) bool {
	_, ok := m.Lookup(id)
	return ok
}

// Remove disposes the visitor with the given id, if any.
func (m *Manager[T]) Remove(id string) {
	m.mu.Lock()
	v := m.removeLocked(id)
	m.mu.Unlock()

	m.dispose([]*Visitor[T]{v}, "removed")
}

// Len returns the number of live visitors.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}

// Stats contains manager statistics.
type Stats struct {
	// Total is the number of live visitors.
	Total int

	// UniqueIPs is the number of distinct client addresses.
	UniqueIPs int
}

// Stats returns manager statistics.
func (m *Manager[T]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Total: len(m.visitors), UniqueIPs: len(m.byIP)}
}

// Close stops the sweep loop and disposes every visitor. It is idempotent.
func (m *Manager[T]) Close() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	close(m.done)
	count := len(m.visitors)
	m.visitors = make(map[string]*Visitor[T])
	m.lru.Init()
	m.byIP = make(map[string]int)
	m.mu.Unlock()

	// Disposing the root disposes every visitor scope.
	m.root.Dispose()
	m.logger.Debug("session manager closed", "disposed", count)
}

func (m *Manager[T]) touchLocked(v *Visitor[T]) {
	v.lastSeen = m.now()
	m.lru.MoveToFront(v.elem)
}

// removeLocked unlinks a visitor and returns it for disposal outside the lock.
func (m *Manager[T]) removeLocked(id string) *Visitor[T] {
	v, ok := m.visitors[id]
	if !ok {
		return nil
	}
	delete(m.visitors, id)
	m.lru.Remove(v.elem)
	m.byIP[v.IP]--
	if m.byIP[v.IP] <= 0 {
		delete(m.byIP, v.IP)
	}
	return v
}

// dispose tears down visitor scopes. It must be called without m.mu held
// because Dispose waits for the scope's goroutines.
func (m *Manager[T]) dispose(visitors []*Visitor[T], reason string) {
	for _, v := range visitors {
		if v == nil {
			continue
		}
		v.Owner.Dispose()
		if m.onEvict != nil {
			m.onEvict(reason)
		}
		m.logger.Debug("session disposed",
			"session_id", v.ID,
			"reason", reason)
	}
}

func (m *Manager[T]) cleanupLoop() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.done:
			return
		}
	}
}

// sweep removes visitors idle longer than IdleTimeout.
func (m *Manager[T]) sweep() int {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return 0
	}
	cutoff := m.now().Add(-m.config.IdleTimeout)
	var expired []*Visitor[T]
	// The LRU list is ordered by lastSeen, so stop at the first fresh entry.
	for e := m.lru.Back(); e != nil; {
		prev := e.Prev()
		v := m.visitors[e.Value.(string)]
		if !v.lastSeen.Before(cutoff) {
			break
		}
		expired = append(expired, m.removeLocked(v.ID))
		e = prev
	}
	remaining := len(m.visitors)
	m.mu.Unlock()

	m.dispose(expired, "idle")
	if len(expired) > 0 {
		m.logger.Debug("swept idle sessions",
			"count", len(expired),
			"remaining", remaining)
	}
	return len(expired)
}
