package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/cardmenu/internal/logging"
	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/binder"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/google/uuid"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type entry struct {
	binder    *binder.Binder
	createdAt time.Time
}

// Info describes a live session.
type Info struct {
	ID        string
	CreatedAt time.Time
}

// Observer is told when sessions start and end.
type Observer interface {
	SessionOpened()
	SessionClosed()
}

// Manager owns the binders of every live session.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	machine *runtime.Machine

	mu       sync.Mutex            // Guards sessions and locks
	sessions map[string]*entry     // Live sessions
	locks    map[string]*lockEntry // Active per-session locks

	binderOpts []binder.Option
	newID      func() string
	observer   Observer
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithBinderOptions sets the options every new binder is created with.
func WithBinderOptions(opts ...binder.Option) Option {
	return func(m *Manager) {
		m.binderOpts = append(m.binderOpts, opts...)
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// WithObserver registers an observer of session starts and ends.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// NewManager creates a Manager whose sessions all run machine.
func NewManager(machine *runtime.Machine, opts ...Option) *Manager {
	m := &Manager{
		machine:  machine,
		sessions: make(map[string]*entry),
		locks:    make(map[string]*lockEntry),
		newID:    uuid.NewString,
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Machine returns the machine shared by every session.
func (m *Manager) Machine() *runtime.Machine {
	return m.machine
}

// Create starts a new session in the initial state and returns its ID.
func (m *Manager) Create(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := m.newID()
	b := binder.NewFromMachine(m.machine, m.binderOpts...)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[id]; exists {
		return "", &domain.InvalidInputError{Value: id, Reason: "session ID already in use"}
	}
	m.sessions[id] = &entry{binder: b, createdAt: time.Now()}
	if m.observer != nil {
		m.observer.SessionOpened()
	}

	m.logger.Debug("session created", "session_id", id, "mode", b.State().Mode)
	return id, nil
}

// Do runs fn with the binder of the session while holding its lock.
// It fails with domain.ErrSessionNotFound when the session does not exist.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(*binder.Binder) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		b, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		return fn(b)
	})
}

// Delete ends the session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.sessions[sessionID]; !ok {
			return domain.ErrSessionNotFound
		}
		delete(m.sessions, sessionID)
		if m.observer != nil {
			m.observer.SessionClosed()
		}
		m.logger.Debug("session deleted", "session_id", sessionID)
		return nil
	})
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// List returns the live sessions ordered by creation time.
func (m *Manager) List() []Info {
	m.mu.Lock()
	infos := make([]Info, 0, len(m.sessions))
	for id, e := range m.sessions {
		infos = append(infos, Info{ID: id, CreatedAt: e.createdAt})
	}
	m.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

func (m *Manager) lookup(sessionID string) (*binder.Binder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e.binder, nil
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.locks[sessionID]
	if !exists {
		e = &lockEntry{}
		m.locks[sessionID] = e
	}
	e.refs++
	return e
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.locks[sessionID]
	if !exists {
		return
	}

	e.refs--
	if e.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	e := m.acquire(sessionID)
	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
