package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/pkg/logger"
)

const draftKeyPrefix = "registration:draft:"

type draftRedisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func newDraftRedisRepository(client redis.UniversalClient, ttl time.Duration) *draftRedisRepository {
	return &draftRedisRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *draftRedisRepository) Save(ctx context.Context, snapshot *domain.DraftSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal draft snapshot: %w", err)
	}

	if err := r.client.Set(ctx, draftKeyPrefix+snapshot.SessionID, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft snapshot: %w", err)
	}

	return nil
}

// Load returns the stored snapshot, or domain.ErrNotFound when there is
// none. A record that fails to decode is discarded and reported as absent so
// a corrupt snapshot never takes the wizard down.
func (r *draftRedisRepository) Load(ctx context.Context, sessionID string) (*domain.DraftSnapshot, error) {
	payload, err := r.client.Get(ctx, draftKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis get draft snapshot: %w", err)
	}

	var snapshot domain.DraftSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		logger.Warn("discarding malformed draft snapshot", zap.String("session_id", sessionID), zap.Error(err))
		_ = r.client.Del(ctx, draftKeyPrefix+sessionID).Err()
		return nil, domain.ErrNotFound
	}

	if !snapshot.Progress.CurrentStep.IsValid() {
		logger.Warn("discarding draft snapshot with unknown step",
			zap.String("session_id", sessionID),
			zap.String("step", string(snapshot.Progress.CurrentStep)))
		_ = r.client.Del(ctx, draftKeyPrefix+sessionID).Err()
		return nil, domain.ErrNotFound
	}

	return &snapshot, nil
}

func (r *draftRedisRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, draftKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis del draft snapshot: %w", err)
	}
	return nil
}
