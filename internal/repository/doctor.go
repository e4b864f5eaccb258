package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/saludplus/backend/internal/db"
	"github.com/saludplus/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type doctorRepository struct {
	db *sqlx.DB
}

func newDoctorRepository(db *sqlx.DB) *doctorRepository {
	return &doctorRepository{
		db: db,
	}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
	INSERT INTO doctor
	(id, profile_id, first_name, last_name, email, phone, password_hash, document_type, document_number,
	 university, graduation_year, medical_board, years_of_experience, bio,
	 specialty, dashboard, working_hours, selected_features, email_verified, verification_code)
	VALUES(uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.ProfileID,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Phone,
		doctor.PasswordHash,
		doctor.DocumentType,
		doctor.DocumentNumber,
		doctor.University,
		doctor.GraduationYear,
		doctor.MedicalBoard,
		doctor.YearsOfExperience,
		doctor.Bio,
		doctor.Specialty,
		doctor.Dashboard,
		doctor.WorkingHours,
		doctor.SelectedFeatures,
		doctor.EmailVerified,
		doctor.VerificationCode,
	)

	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert doctor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *doctorRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Doctor, error) {
	const query = `
	SELECT id, profile_id, first_name, last_name, email, phone, password_hash, document_type, document_number,
	       university, graduation_year, medical_board, years_of_experience, bio,
	       specialty, dashboard, working_hours, selected_features, email_verified, verification_code,
	       created_at, updated_at, deleted_at
	FROM doctor WHERE id = uuid_to_bin(?) AND deleted_at IS NULL;
	`
	var doctor domain.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from doctor by id failed: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT COUNT(*) FROM doctor WHERE email = ? AND deleted_at IS NULL`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, email); err != nil {
		return false, fmt.Errorf("count doctors by email failed: %w", err)
	}

	return count > 0, nil
}

func (r *doctorRepository) PhoneExists(ctx context.Context, phone string) (bool, error) {
	const query = `SELECT COUNT(*) FROM doctor WHERE phone = ? AND deleted_at IS NULL`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, phone); err != nil {
		return false, fmt.Errorf("count doctors by phone failed: %w", err)
	}

	return count > 0, nil
}
