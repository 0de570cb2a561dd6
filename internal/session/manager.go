package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTTL is how long an untouched session survives before the
// janitor reclaims it.
const DefaultTTL = 30 * time.Minute

const sweepInterval = 5 * time.Minute

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Manager owns all live session stores, keyed by session id. Sessions
// are created on demand, touched on every access and pruned after TTL
// of inactivity. Everything lives in process memory; restarting the
// service discards all sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewManager creates a session manager with the given idle TTL. A ttl
// of zero falls back to DefaultTTL.
func NewManager(ttl time.Duration, logger *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Create allocates a fresh session and returns its id and store.
func (m *Manager) Create() (string, *Store) {
	id := uuid.NewString()
	store := NewStore()

	m.mu.Lock()
	m.sessions[id] = &entry{store: store, lastSeen: m.now()}
	m.mu.Unlock()

	m.logger.Debug("Session created", zap.String("session_id", id))
	return id, store
}

// Get returns the store for a session id, touching its idle timer.
func (m *Manager) Get(id string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.store, true
}

// Delete discards a session. Unknown ids are a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run sweeps expired sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.pruneExpired(); n > 0 {
				m.logger.Info("Pruned expired sessions", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) pruneExpired() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	var pruned int
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}
