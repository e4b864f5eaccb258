package service

import (
	"strings"
	"time"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/pkg/email"
	"github.com/saludplus/backend/pkg/phone"
	"github.com/saludplus/backend/pkg/validator"
)

// Validation messages shown inline next to the offending field.
const (
	msgRequired         = "Este campo es obligatorio"
	msgNameTooShort     = "El nombre debe tener al menos 2 caracteres"
	msgInvalidEmail     = "Formato de correo inválido"
	msgInvalidPhone     = "Número de teléfono inválido (ej. 04141234567)"
	msgWeakPassword     = "La contraseña debe tener al menos 8 caracteres, con mayúsculas, minúsculas y números"
	msgPasswordMismatch = "Las contraseñas no coinciden"
	msgInvalidDocument  = "Número de documento inválido (ej. V-12345678)"
	msgInvalidYear      = "Año de graduación inválido"
	msgInvalidExp       = "Años de experiencia inválidos"
	msgBioTooLong       = "La biografía no puede superar los 1000 caracteres"
	msgNoSpecialty      = "Seleccione una especialidad"
	msgNoFeatures       = "Seleccione al menos una funcionalidad"
	msgInvalidHours     = "Horario de atención inválido"
	msgIdentityPending  = "Debe confirmar su identidad para continuar"
	msgTermsNotAccepted = "Debe aceptar los términos y condiciones"
	msgLicensePending   = "Debe verificar su licencia médica para continuar"
)

// Orchestrator validates one step at a time from declarative field rules.
// It never panics and never returns a Go error: invalid input produces a
// structured, field-scoped error map.
type Orchestrator struct{}

func NewOrchestrator() *Orchestrator {
	return &Orchestrator{}
}

// SanitizeName upper-cases the name, keeps only letters, Spanish diacritics
// and spaces, and collapses runs of whitespace.
func SanitizeName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r == ' ':
			b.WriteRune(r)
		case r == 'Á', r == 'É', r == 'Í', r == 'Ó', r == 'Ú', r == 'Ü', r == 'Ñ':
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// SanitizeEmail trims and lower-cases the address.
func SanitizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SanitizeDocumentNumber normalizes a cédula to the canonical `V-12345678`
// form; input with a lowercase prefix or a missing dash is accepted.
func SanitizeDocumentNumber(docType, number string) string {
	number = strings.ToUpper(strings.TrimSpace(number))
	number = strings.TrimPrefix(number, strings.ToUpper(docType)+"-")
	number = strings.TrimPrefix(number, strings.ToUpper(docType))
	return strings.TrimLeft(number, "-")
}

// SanitizeDraft applies all field sanitizers in place. Called by the
// coordinator on every merge so validation always sees canonical values.
func (o *Orchestrator) SanitizeDraft(draft *domain.RegistrationDraft) {
	draft.FirstName = SanitizeName(draft.FirstName)
	draft.LastName = SanitizeName(draft.LastName)
	draft.Email = SanitizeEmail(draft.Email)
	draft.DocumentType = strings.ToUpper(strings.TrimSpace(draft.DocumentType))
	draft.DocumentNumber = SanitizeDocumentNumber(draft.DocumentType, draft.DocumentNumber)
	draft.Specialty = strings.ToLower(strings.TrimSpace(draft.Specialty))
}

// ValidateStep runs the declarative rules for one step against the draft.
func (o *Orchestrator) ValidateStep(step domain.Step, draft *domain.RegistrationDraft) domain.StepValidation {
	var errs []domain.FieldError

	switch step {
	case domain.StepPersonalInfo:
		errs = o.validatePersonalInfo(draft)
	case domain.StepProfessionalInfo:
		errs = o.validateProfessionalInfo(draft)
	case domain.StepSpecialtySelection:
		errs = o.validateSpecialtySelection(draft)
	case domain.StepLicenseVerification:
		errs = o.validateLicenseVerification(draft)
	case domain.StepIdentityVerification:
		errs = o.validateIdentityVerification(draft)
	case domain.StepDashboardConfiguration:
		errs = o.validateDashboardConfiguration(draft)
	case domain.StepFinalReview:
		errs = o.validateFinalReview(draft)
	}

	return domain.StepValidation{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// ValidateAll validates every data-entry step; used by the final submission
// guard.
func (o *Orchestrator) ValidateAll(draft *domain.RegistrationDraft) domain.StepValidation {
	var errs []domain.FieldError
	seen := make(map[string]bool)

	for _, step := range domain.StepOrder {
		for _, e := range o.ValidateStep(step, draft).Errors {
			if !seen[e.Field] {
				seen[e.Field] = true
				errs = append(errs, e)
			}
		}
	}

	return domain.StepValidation{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

func (o *Orchestrator) validatePersonalInfo(draft *domain.RegistrationDraft) []domain.FieldError {
	var errs []domain.FieldError

	errs = appendNameErrors(errs, "first_name", draft.FirstName)
	errs = appendNameErrors(errs, "last_name", draft.LastName)

	switch {
	case draft.Email == "":
		errs = append(errs, domain.FieldError{Field: "email", Message: msgRequired})
	case !email.IsEmailValid(draft.Email):
		errs = append(errs, domain.FieldError{Field: "email", Message: msgInvalidEmail})
	}

	switch {
	case draft.Phone == "":
		errs = append(errs, domain.FieldError{Field: "phone", Message: msgRequired})
	case !phone.IsValid(draft.Phone):
		errs = append(errs, domain.FieldError{Field: "phone", Message: msgInvalidPhone})
	}

	switch {
	case draft.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: msgRequired})
	case !isStrongPassword(draft.Password):
		errs = append(errs, domain.FieldError{Field: "password", Message: msgWeakPassword})
	}

	if draft.Password != draft.PasswordConfirm {
		errs = append(errs, domain.FieldError{Field: "password_confirm", Message: msgPasswordMismatch})
	}

	return errs
}

func appendNameErrors(errs []domain.FieldError, field, value string) []domain.FieldError {
	switch {
	case value == "":
		return append(errs, domain.FieldError{Field: field, Message: msgRequired})
	case len([]rune(value)) < 2:
		return append(errs, domain.FieldError{Field: field, Message: msgNameTooShort})
	}
	return errs
}

func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}

func (o *Orchestrator) validateProfessionalInfo(draft *domain.RegistrationDraft) []domain.FieldError {
	var errs []domain.FieldError

	if draft.DocumentType != "V" && draft.DocumentType != "E" {
		errs = append(errs, domain.FieldError{Field: "document_type", Message: msgRequired})
	}

	doc := draft.DocumentType + "-" + draft.DocumentNumber
	switch {
	case draft.DocumentNumber == "":
		errs = append(errs, domain.FieldError{Field: "document_number", Message: msgRequired})
	case !validator.DocumentPattern.MatchString(doc):
		errs = append(errs, domain.FieldError{Field: "document_number", Message: msgInvalidDocument})
	}

	if len(strings.TrimSpace(draft.University)) < 3 {
		errs = append(errs, domain.FieldError{Field: "university", Message: msgRequired})
	}

	if draft.GraduationYear < 1950 || draft.GraduationYear > time.Now().Year() {
		errs = append(errs, domain.FieldError{Field: "graduation_year", Message: msgInvalidYear})
	}

	if strings.TrimSpace(draft.MedicalBoard) == "" {
		errs = append(errs, domain.FieldError{Field: "medical_board", Message: msgRequired})
	}

	if draft.YearsOfExperience < 0 || draft.YearsOfExperience > 60 {
		errs = append(errs, domain.FieldError{Field: "years_of_experience", Message: msgInvalidExp})
	}

	if len([]rune(draft.Bio)) > 1000 {
		errs = append(errs, domain.FieldError{Field: "bio", Message: msgBioTooLong})
	}

	return errs
}

func (o *Orchestrator) validateSpecialtySelection(draft *domain.RegistrationDraft) []domain.FieldError {
	if strings.TrimSpace(draft.Specialty) == "" {
		return []domain.FieldError{{Field: "specialty", Message: msgNoSpecialty}}
	}
	return nil
}

// validateLicenseVerification only covers the fields the verifier needs;
// whether the verification itself passed is decided by the license verifier
// (it owns the async state), not by field rules.
func (o *Orchestrator) validateLicenseVerification(draft *domain.RegistrationDraft) []domain.FieldError {
	var errs []domain.FieldError

	doc := draft.DocumentType + "-" + draft.DocumentNumber
	if !validator.DocumentPattern.MatchString(doc) {
		errs = append(errs, domain.FieldError{Field: "document_number", Message: msgInvalidDocument})
	}
	if draft.FirstName == "" || draft.LastName == "" {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: msgRequired})
	}

	return errs
}

func (o *Orchestrator) validateIdentityVerification(draft *domain.RegistrationDraft) []domain.FieldError {
	if !draft.IdentityConfirmed {
		return []domain.FieldError{{Field: "identity_confirmed", Message: msgIdentityPending}}
	}
	return nil
}

func (o *Orchestrator) validateDashboardConfiguration(draft *domain.RegistrationDraft) []domain.FieldError {
	var errs []domain.FieldError

	if len(draft.SelectedFeatures) == 0 {
		errs = append(errs, domain.FieldError{Field: "selected_features", Message: msgNoFeatures})
	}

	for _, wh := range draft.WorkingHours {
		if !isValidTimeRange(wh.From, wh.To) {
			errs = append(errs, domain.FieldError{Field: "working_hours", Message: msgInvalidHours})
			break
		}
	}

	return errs
}

func (o *Orchestrator) validateFinalReview(draft *domain.RegistrationDraft) []domain.FieldError {
	if !draft.AcceptsTerms {
		return []domain.FieldError{{Field: "accepts_terms", Message: msgTermsNotAccepted}}
	}
	return nil
}

func isValidTimeRange(from, to string) bool {
	f, err1 := time.Parse("15:04", from)
	t, err2 := time.Parse("15:04", to)
	return err1 == nil && err2 == nil && f.Before(t)
}
