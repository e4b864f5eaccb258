package repository

import (
	"context"
	"fmt"

	"github.com/saludplus/backend/internal/domain"

	"github.com/jmoiron/sqlx"
)

type refreshSessionRepository struct {
	db *sqlx.DB
}

func newRefreshSessionRepository(db *sqlx.DB) *refreshSessionRepository {
	return &refreshSessionRepository{
		db: db,
	}
}

func (r *refreshSessionRepository) Create(ctx context.Context, session *domain.RefreshSession) error {
	const query = `
				INSERT INTO refresh_session (id, doctor_id, refresh_token, user_agent, ip, expires_in)
				VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?)
				`
	_, err := r.db.ExecContext(ctx, query, session.ID, session.DoctorID, session.RefreshToken, session.UserAgent, session.IP, session.ExpiresIn)

	if err != nil {
		return fmt.Errorf("db insert refresh session: %w", err)
	}

	return nil
}
