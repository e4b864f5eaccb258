package domain

// FieldError is a local, recoverable validation failure scoped to a single
// field. It never blocks other fields and is surfaced inline by the UI.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StepValidation is the structured result of validating one step. The
// orchestrator never panics or returns a Go error for invalid input; it
// returns this instead.
type StepValidation struct {
	IsValid bool         `json:"is_valid"`
	Errors  []FieldError `json:"errors"`
}

// ErrorFor returns the message attached to field, or "" when the field is
// clean.
func (v *StepValidation) ErrorFor(field string) string {
	for _, e := range v.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}
