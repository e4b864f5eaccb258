package repository

import (
	"context"
	"time"

	"github.com/saludplus/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Doctors        Doctors
	RefreshSession RefreshSession
	Drafts         Drafts
}

func NewRepositories(db *sqlx.DB, cache redis.UniversalClient, draftTTL time.Duration) *Repositories {
	return &Repositories{
		Doctors:        newDoctorRepository(db),
		RefreshSession: newRefreshSessionRepository(db),
		Drafts:         newDraftRedisRepository(cache, draftTTL),
	}
}

type Doctors interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Doctor, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
}

type RefreshSession interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
}

// Drafts stores in-progress registration snapshots keyed by session.
// Load must treat malformed records as absent, never as an error.
type Drafts interface {
	Save(ctx context.Context, snapshot *domain.DraftSnapshot) error
	Load(ctx context.Context, sessionID string) (*domain.DraftSnapshot, error)
	Clear(ctx context.Context, sessionID string) error
}
