package domain

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkingHoursList stores the configured attention blocks as a JSON column.
type WorkingHoursList []WorkingHours

// Value implements driver.Valuer for storing the list in the database.
func (w WorkingHoursList) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner for reading the list back from the database.
func (w *WorkingHoursList) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for WorkingHoursList: %T", value)
	}

	return json.Unmarshal(bytes, w)
}

// FeatureList stores the dashboard features selected during registration.
type FeatureList []string

// Value implements driver.Valuer for storing the list in the database.
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for reading the list back from the database.
func (f *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for FeatureList: %T", value)
	}

	return json.Unmarshal(bytes, f)
}

// Doctor is a finalized registration: the profile row created by the
// finalize call. Until then everything lives in the RegistrationDraft.
type Doctor struct {
	ID                uuid.UUID        `db:"id" json:"id"`
	ProfileID         uuid.UUID        `db:"profile_id" json:"profile_id"`
	FirstName         string           `db:"first_name" json:"first_name"`
	LastName          string           `db:"last_name" json:"last_name"`
	Email             string           `db:"email" json:"email"`
	Phone             string           `db:"phone" json:"phone"`
	PasswordHash      string           `db:"password_hash" json:"-"`
	DocumentType      string           `db:"document_type" json:"document_type"`
	DocumentNumber    string           `db:"document_number" json:"document_number"`
	University        sql.NullString   `db:"university" json:"university"`
	GraduationYear    sql.NullInt64    `db:"graduation_year" json:"graduation_year"`
	MedicalBoard      sql.NullString   `db:"medical_board" json:"medical_board"`
	YearsOfExperience sql.NullInt64    `db:"years_of_experience" json:"years_of_experience"`
	Bio               sql.NullString   `db:"bio" json:"bio"`
	Specialty         string           `db:"specialty" json:"specialty"`
	Dashboard         string           `db:"dashboard" json:"dashboard"`
	WorkingHours      WorkingHoursList `db:"working_hours" json:"working_hours"`
	SelectedFeatures  FeatureList      `db:"selected_features" json:"selected_features"`
	EmailVerified     bool             `db:"email_verified" json:"email_verified"`
	VerificationCode  sql.NullString   `db:"verification_code" json:"-"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time       `db:"updated_at" json:"updated_at"`
	DeletedAt         *time.Time       `db:"deleted_at" json:"deleted_at"`
}
