package domain

import "time"

// WorkingHours describes one weekly attention block configured during the
// dashboard_configuration step.
type WorkingHours struct {
	Day  string `json:"day" db:"day"`
	From string `json:"from" db:"from"`
	To   string `json:"to" db:"to"`
}

// RegistrationDraft is the mutable aggregate a doctor fills in across the
// wizard. It is owned exclusively by the registration coordinator; handlers
// only read it or request mutations through the coordinator.
type RegistrationDraft struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`

	DocumentType      string `json:"document_type"`
	DocumentNumber    string `json:"document_number"`
	University        string `json:"university"`
	GraduationYear    int    `json:"graduation_year"`
	MedicalBoard      string `json:"medical_board"`
	YearsOfExperience int    `json:"years_of_experience"`
	Bio               string `json:"bio"`

	Specialty         string         `json:"specialty"`
	WorkingHours      []WorkingHours `json:"working_hours"`
	SelectedFeatures  []string       `json:"selected_features"`
	IdentityConfirmed bool           `json:"identity_confirmed"`
	AcceptsTerms      bool           `json:"accepts_terms"`
}

// DraftPatch is a partial update of the draft. Nil fields are left untouched
// so forms can submit only the fields they own.
type DraftPatch struct {
	FirstName       *string `json:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Password        *string `json:"password,omitempty"`
	PasswordConfirm *string `json:"password_confirm,omitempty"`

	DocumentType      *string `json:"document_type,omitempty"`
	DocumentNumber    *string `json:"document_number,omitempty"`
	University        *string `json:"university,omitempty"`
	GraduationYear    *int    `json:"graduation_year,omitempty"`
	MedicalBoard      *string `json:"medical_board,omitempty"`
	YearsOfExperience *int    `json:"years_of_experience,omitempty"`
	Bio               *string `json:"bio,omitempty"`

	Specialty         *string         `json:"specialty,omitempty"`
	WorkingHours      *[]WorkingHours `json:"working_hours,omitempty"`
	SelectedFeatures  *[]string       `json:"selected_features,omitempty"`
	IdentityConfirmed *bool           `json:"identity_confirmed,omitempty"`
	AcceptsTerms      *bool           `json:"accepts_terms,omitempty"`
}

// RegistrationProgress tracks how far the doctor has advanced through the
// wizard. CompletedSteps is an ordered set: a step appears at most once.
type RegistrationProgress struct {
	CurrentStep    Step      `json:"current_step"`
	CompletedSteps []Step    `json:"completed_steps"`
	TotalSteps     int       `json:"total_steps"`
	Percentage     int       `json:"percentage"`
	IsComplete     bool      `json:"is_complete"`
	LastUpdated    time.Time `json:"last_updated"`
}

// NewRegistrationProgress returns the progress of a freshly started
// registration.
func NewRegistrationProgress() RegistrationProgress {
	return RegistrationProgress{
		CurrentStep:    StepPersonalInfo,
		CompletedSteps: []Step{},
		TotalSteps:     TotalSteps,
		LastUpdated:    time.Now(),
	}
}

// HasCompleted reports whether s is already part of CompletedSteps.
func (p *RegistrationProgress) HasCompleted(s Step) bool {
	for _, done := range p.CompletedSteps {
		if done == s {
			return true
		}
	}
	return false
}

// DraftSnapshot is the durable record persisted between reloads. Malformed
// snapshots are treated as absent on load, never as an error.
type DraftSnapshot struct {
	Data      RegistrationDraft    `json:"data"`
	Progress  RegistrationProgress `json:"progress"`
	Timestamp time.Time            `json:"timestamp"`
	SessionID string               `json:"session_id"`
}
