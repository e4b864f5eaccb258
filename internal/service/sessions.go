package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saludplus/backend/pkg/logger"
)

// SessionManager hands out one Coordinator per registration session and
// evicts the ones that have gone idle. Eviction flushes pending saves, so a
// returning doctor picks up from the persisted snapshot.
type SessionManager struct {
	deps    coordinatorDeps
	idleTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*Coordinator
	done     chan struct{}
	closed   bool
}

func newSessionManager(deps coordinatorDeps, idleTTL time.Duration) *SessionManager {
	m := &SessionManager{
		deps:     deps,
		idleTTL:  idleTTL,
		sessions: make(map[string]*Coordinator),
		done:     make(chan struct{}),
	}

	go m.evictLoop()

	return m
}

// GetOrCreate returns the session's coordinator, creating it and restoring
// its persisted snapshot on first access.
func (m *SessionManager) GetOrCreate(ctx context.Context, sessionID string) (*Coordinator, error) {
	m.mu.Lock()
	if c, ok := m.sessions[sessionID]; ok {
		m.mu.Unlock()
		c.touch()
		return c, nil
	}
	m.mu.Unlock()

	c := newCoordinator(sessionID, m.deps)

	snapshot, err := c.persistence.Load(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}
	if snapshot != nil {
		c.restore(snapshot)
		logger.Info("registration session restored",
			zap.String("session_id", sessionID),
			zap.String("current_step", string(snapshot.Progress.CurrentStep)))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have created the session while we were loading.
	if existing, ok := m.sessions[sessionID]; ok {
		c.Close()
		return existing, nil
	}

	m.sessions[sessionID] = c
	return c, nil
}

// Drop closes and removes a session. Used after a completed registration.
func (m *SessionManager) Drop(sessionID string) {
	m.mu.Lock()
	c, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok {
		c.Close()
	}
}

func (m *SessionManager) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *SessionManager) evictIdle() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	var stale []*Coordinator
	for id, c := range m.sessions {
		c.mu.Lock()
		idle := c.lastAccess.Before(cutoff)
		c.mu.Unlock()

		if idle {
			stale = append(stale, c)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}

	if len(stale) > 0 {
		logger.Debug("idle registration sessions evicted", zap.Int("count", len(stale)))
	}
}

// Shutdown stops the eviction loop and closes every live session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.done)

	sessions := make([]*Coordinator, 0, len(m.sessions))
	for id, c := range m.sessions {
		sessions = append(sessions, c)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}
