package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/internal/repository"
	"github.com/saludplus/backend/pkg/debounce"
	"github.com/saludplus/backend/pkg/logger"
)

// persistenceManager snapshots a session's draft and progress to durable
// storage. Writes are debounced and skipped entirely when a deep-equality
// check against the last saved snapshot shows no change, so fast typing does
// not thrash the store.
type persistenceManager struct {
	store     repository.Drafts
	schedule  *debounce.Scheduler
	quiet     time.Duration
	sessionID string

	mu        sync.Mutex
	pending   *domain.DraftSnapshot
	lastSaved *domain.DraftSnapshot
}

func newPersistenceManager(store repository.Drafts, schedule *debounce.Scheduler, quiet time.Duration, sessionID string) *persistenceManager {
	return &persistenceManager{
		store:     store,
		schedule:  schedule,
		quiet:     quiet,
		sessionID: sessionID,
	}
}

const saveTimerKey = "persistence:save"

// Save schedules a debounced write of the given state. The snapshot is taken
// synchronously so the write is derived from the draft as it was when the
// save was requested, not when the timer fires.
func (m *persistenceManager) Save(draft domain.RegistrationDraft, progress domain.RegistrationProgress) {
	snapshot := &domain.DraftSnapshot{
		Data:      draft,
		Progress:  progress,
		Timestamp: time.Now(),
		SessionID: m.sessionID,
	}

	m.mu.Lock()
	m.pending = snapshot
	m.mu.Unlock()

	m.schedule.Schedule(saveTimerKey, m.quiet, m.flush)
}

func (m *persistenceManager) flush() {
	m.mu.Lock()
	snapshot := m.pending
	m.pending = nil

	if snapshot == nil {
		m.mu.Unlock()
		return
	}

	if m.lastSaved != nil &&
		reflect.DeepEqual(snapshot.Data, m.lastSaved.Data) &&
		reflect.DeepEqual(snapshot.Progress.CompletedSteps, m.lastSaved.Progress.CompletedSteps) &&
		snapshot.Progress.CurrentStep == m.lastSaved.Progress.CurrentStep {
		// Nothing changed since the last write.
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.store.Save(ctx, snapshot); err != nil {
		// Autosave is best effort; the next edit retries.
		logger.Error("draft autosave failed", zap.String("session_id", m.sessionID), zap.Error(err))
		return
	}

	m.mu.Lock()
	m.lastSaved = snapshot
	m.mu.Unlock()
}

// Load returns the stored snapshot or (nil, nil) when none exists.
func (m *persistenceManager) Load(ctx context.Context) (*domain.DraftSnapshot, error) {
	snapshot, err := m.store.Load(ctx, m.sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	m.mu.Lock()
	m.lastSaved = snapshot
	m.mu.Unlock()

	return snapshot, nil
}

// Clear drops the pending write and removes the stored snapshot. Called only
// after a confirmed successful submission or an explicit reset.
func (m *persistenceManager) Clear(ctx context.Context) error {
	m.schedule.Cancel(saveTimerKey)

	m.mu.Lock()
	m.pending = nil
	m.lastSaved = nil
	m.mu.Unlock()

	return m.store.Clear(ctx, m.sessionID)
}

// FlushNow writes any pending snapshot synchronously. Used when a session is
// torn down so eviction never loses an unsaved edit.
func (m *persistenceManager) FlushNow() {
	m.schedule.Cancel(saveTimerKey)
	m.flush()
}
