package domain

// Availability is the tri-state result of a uniqueness check.
type Availability string

const (
	AvailabilityUnknown   Availability = "unknown"
	AvailabilityAvailable Availability = "available"
	AvailabilityTaken     Availability = "taken"
)

// FieldAvailability holds the async uniqueness-check state of a single
// mutable field (email, phone). LastCheckedValue prevents a second network
// call for an unchanged input; any change of the underlying value drops the
// state back to unknown.
type FieldAvailability struct {
	Status           Availability `json:"status"`
	IsChecking       bool         `json:"is_checking"`
	LastCheckedValue string       `json:"last_checked_value"`
}

// VerificationStatus is the license verification state machine:
// idle → verifying → {verified | failed | error}.
type VerificationStatus string

const (
	VerificationIdle      VerificationStatus = "idle"
	VerificationVerifying VerificationStatus = "verifying"
	VerificationVerified  VerificationStatus = "verified"
	VerificationFailed    VerificationStatus = "failed"
	VerificationError     VerificationStatus = "error"
)

// NameMatch is the outcome of comparing the name the doctor typed against
// the name the registry returned.
type NameMatch struct {
	Matches    bool    `json:"matches"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// VerificationResult is the aggregate outcome of a registry lookup. Any edit
// of the document type or number invalidates a prior result: the caller must
// reset to VerificationIdle and discard it.
type VerificationResult struct {
	Status     VerificationStatus `json:"status"`
	IsValid    bool               `json:"is_valid"`
	IsVerified bool               `json:"is_verified"`
	DoctorName string             `json:"doctor_name,omitempty"`
	Specialty  string             `json:"specialty,omitempty"`
	Dashboard  string             `json:"dashboard,omitempty"`
	NameMatch  *NameMatch         `json:"name_match,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Settled reports whether the verification is no longer in flight.
func (r *VerificationResult) Settled() bool {
	return r.Status != VerificationVerifying
}
