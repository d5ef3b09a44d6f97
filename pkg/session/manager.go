package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/compact/internal/logging"
	"github.com/aretw0/compact/pkg/domain"
	"github.com/aretw0/compact/pkg/ports"
	"github.com/aretw0/compact/pkg/value"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Change describes a dispatch that produced a new state.
type Change struct {
	SessionID string
	Action    domain.Action
	State     any
	Paths     []string // Changed paths, as reported by value.Changes.
}

// Listener receives every Change. It runs while the session is locked and
// must not dispatch to the same session.
type Listener func(Change)

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	reducer ports.Reducer
	store   ports.StateStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	subMu     sync.RWMutex
	listeners map[int]Listener
	nextID    int

	logger *slog.Logger
}

var _ ports.Dispatcher = (*Manager)(nil)

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager applying reducer to the states kept in store.
func NewManager(reducer ports.Reducer, store ports.StateStore, opts ...Option) *Manager {
	m := &Manager{
		reducer:   reducer,
		store:     store,
		locks:     make(map[string]*lockEntry),
		listeners: make(map[int]Listener),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
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

// State returns the current state of a session, starting it if needed.
func (m *Manager) State(ctx context.Context, sessionID string) (any, error) {
	var state any
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.loadOrStart(ctx, sessionID)
		return err
	})
	return state, err
}

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (any, error) {
	var state any
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// Dispatch applies action to the state of a session and returns the result.
// A session that does not exist yet starts from the default state.
// The store is written, and listeners notified, only when the state changed.
func (m *Manager) Dispatch(ctx context.Context, sessionID string, action domain.Action) (any, error) {
	var next any
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := m.loadOrStart(ctx, sessionID)
		if err != nil {
			return err
		}

		next = m.reducer.Reduce(state, action)
		if value.Same(state, next) {
			return nil
		}
		if err := m.store.Save(ctx, sessionID, next); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		changes := value.Changes(state, next)
		m.logger.Debug("state changed", "session_id", sessionID, "action", action.Type, "paths", changes)
		m.notify(Change{SessionID: sessionID, Action: action, State: next, Paths: changes})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// ResetActionType is the action type of the Change reported by Reset.
const ResetActionType = "session/reset"

// Reset puts a session back to the default state. Listeners are notified
// when that differs from the state the session had.
func (m *Manager) Reset(ctx context.Context, sessionID string) (any, error) {
	state := m.reducer.Default()
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		old, err := m.store.Load(ctx, sessionID)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if err := m.store.Save(ctx, sessionID, state); err != nil {
			return err
		}
		if value.Same(old, state) {
			return nil
		}

		changes := value.Changes(old, state)
		m.logger.Debug("session reset", "session_id", sessionID, "paths", changes)
		m.notify(Change{SessionID: sessionID, Action: domain.Action{Type: ResetActionType}, State: state, Paths: changes})
		return nil
	})
	return state, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Reducer returns the reducer the manager applies.
func (m *Manager) Reducer() ports.Reducer {
	return m.reducer
}

// Subscribe registers l and returns a function removing it.
func (m *Manager) Subscribe(l Listener) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) notify(c Change) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()
	for _, l := range m.listeners {
		l(c)
	}
}

func (m *Manager) loadOrStart(ctx context.Context, sessionID string) (any, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to check session existence: %w", err)
	}

	state = m.reducer.Default()
	if err := m.store.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	m.logger.Debug("session started", "session_id", sessionID)
	return state, nil
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
