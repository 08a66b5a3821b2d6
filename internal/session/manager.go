package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/legacyloop/internal/metrics"
)

// ErrNoSession is returned when a session id is unknown or has expired.
var ErrNoSession = errors.New("session not found")

// Manager tracks live sessions and ends those left idle.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	opts     []Option
	logger   *slog.Logger
}

// NewManager creates a Manager. idleTTL <= 0 keeps sessions until deleted.
// opts are applied to every session it creates.
func NewManager(idleTTL time.Duration, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		opts:     opts,
		logger:   logger,
	}
}

// Create starts a new session with a random id.
func (m *Manager) Create() *Session {
	s := New(uuid.NewString(), m.opts...)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	metrics.Inc(metrics.SessionsCreated)
	m.logger.Debug("session created", "session", s.ID())
	return s
}

// Get returns the session with id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Delete ends the session with id, discarding all of its state.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNoSession
	}
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep ends every session idle since before now-idleTTL and returns how many it removed.
func (m *Manager) Sweep(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-m.idleTTL)

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	removed := 0
	m.mu.Lock()
	for _, id := range stale {
		// Re-check: the session may have been used since it was collected.
		if s, ok := m.sessions[id]; ok && s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			removed++
			metrics.Inc(metrics.SessionsExpired)
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		m.logger.Info("expired idle sessions", "count", removed)
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 || m.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}
