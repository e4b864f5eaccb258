package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/saludplus/backend/internal/domain"
)

// DraftMemoryRepository keeps snapshots in process memory. Used by tests and
// as a fallback when Redis is intentionally not configured; snapshots go
// through JSON the same way the Redis store does so both stores accept and
// reject the same data.
type DraftMemoryRepository struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewDraftMemoryRepository() *DraftMemoryRepository {
	return &DraftMemoryRepository{
		snapshots: make(map[string][]byte),
	}
}

func (r *DraftMemoryRepository) Save(_ context.Context, snapshot *domain.DraftSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[snapshot.SessionID] = payload

	return nil
}

func (r *DraftMemoryRepository) Load(_ context.Context, sessionID string) (*domain.DraftSnapshot, error) {
	r.mu.RLock()
	payload, ok := r.snapshots[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}

	var snapshot domain.DraftSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		r.mu.Lock()
		delete(r.snapshots, sessionID)
		r.mu.Unlock()
		return nil, domain.ErrNotFound
	}

	if !snapshot.Progress.CurrentStep.IsValid() {
		return nil, domain.ErrNotFound
	}

	return &snapshot, nil
}

func (r *DraftMemoryRepository) Clear(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.snapshots, sessionID)

	return nil
}

// Corrupt overwrites the stored record with bytes that cannot decode.
// Test hook for the malformed-snapshot path.
func (r *DraftMemoryRepository) Corrupt(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[sessionID] = []byte("{not json")
}
