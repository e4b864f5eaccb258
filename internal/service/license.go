package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/internal/sacs"
	"github.com/saludplus/backend/pkg/debounce"
	"github.com/saludplus/backend/pkg/logger"
	"github.com/saludplus/backend/pkg/masker"
	"github.com/saludplus/backend/pkg/namematch"
	"github.com/saludplus/backend/pkg/validator"
)

// RegistryClient is the slice of the SACS client the verifier needs.
type RegistryClient interface {
	VerifyLicense(ctx context.Context, req sacs.VerifyRequest) (*sacs.VerifyResponse, error)
}

// DefaultDashboard receives doctors whose specialty matches no configured
// dashboard.
const DefaultDashboard = "medicina-general"

// dashboardKeywords maps specialty keywords to the dashboard the doctor is
// assigned after verification. Matching is contains-based over the
// lower-cased specialty.
var dashboardKeywords = []struct {
	keyword   string
	dashboard string
}{
	{"cardio", "cardiologia"},
	{"pediatr", "pediatria"},
	{"ginec", "ginecologia-obstetricia"},
	{"obstet", "ginecologia-obstetricia"},
	{"dermat", "dermatologia"},
	{"psiquiat", "salud-mental"},
	{"psicolog", "salud-mental"},
	{"traumat", "traumatologia"},
	{"ortoped", "traumatologia"},
	{"neurolog", "neurologia"},
	{"oncolog", "oncologia"},
	{"oftalmolog", "oftalmologia"},
	{"endocrin", "endocrinologia"},
	{"medicina interna", "medicina-interna"},
	{"internista", "medicina-interna"},
}

// DashboardForSpecialty resolves the dashboard for a specialty string.
func DashboardForSpecialty(specialty string) string {
	s := strings.ToLower(strings.TrimSpace(specialty))
	for _, entry := range dashboardKeywords {
		if strings.Contains(s, entry.keyword) {
			return entry.dashboard
		}
	}
	return DefaultDashboard
}

// licenseVerifier drives the license verification state machine for one
// session: idle → verifying → {verified | failed | error}. A registry call
// is scheduled after a quiet period once the document fields pass their
// format gate; any later edit of the document resets to idle and discards
// the result.
type licenseVerifier struct {
	client   RegistryClient
	schedule *debounce.Scheduler
	quiet    time.Duration
	onChange func()

	mu         sync.Mutex
	result     domain.VerificationResult
	lastDocKey string
}

func newLicenseVerifier(client RegistryClient, schedule *debounce.Scheduler, quiet time.Duration, onChange func()) *licenseVerifier {
	return &licenseVerifier{
		client:   client,
		schedule: schedule,
		quiet:    quiet,
		onChange: onChange,
		result:   domain.VerificationResult{Status: domain.VerificationIdle},
	}
}

const licenseTimerKey = "license:verify"

// Result returns a copy of the current verification result.
func (v *licenseVerifier) Result() domain.VerificationResult {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// OnDraftChanged re-evaluates the verification trigger after a draft merge.
// An edit of the document type or number invalidates any prior result: no
// stale IsVerified survives an edit.
func (v *licenseVerifier) OnDraftChanged(draft *domain.RegistrationDraft) {
	docKey := draft.DocumentType + "-" + draft.DocumentNumber

	v.mu.Lock()
	docChanged := docKey != v.lastDocKey
	v.lastDocKey = docKey

	if docChanged {
		v.result = domain.VerificationResult{Status: domain.VerificationIdle}
		v.schedule.Cancel(licenseTimerKey)
	}

	gated := v.gate(draft)
	alreadySettled := !docChanged && v.result.Status != domain.VerificationIdle

	if !gated || alreadySettled {
		v.mu.Unlock()
		if docChanged && v.onChange != nil {
			go v.onChange()
		}
		return
	}

	req := sacs.VerifyRequest{
		DocumentType:   draft.DocumentType,
		DocumentNumber: draft.DocumentNumber,
		FirstName:      draft.FirstName,
		LastName:       draft.LastName,
	}
	v.result = domain.VerificationResult{Status: domain.VerificationVerifying}
	v.mu.Unlock()

	v.schedule.Schedule(licenseTimerKey, v.quiet, func() {
		v.verify(req, docKey)
	})

	if v.onChange != nil {
		go v.onChange()
	}
}

// gate reports whether the draft carries enough well-formed data for a
// registry call: a format-valid document and a non-empty full name.
func (v *licenseVerifier) gate(draft *domain.RegistrationDraft) bool {
	doc := draft.DocumentType + "-" + draft.DocumentNumber
	return validator.DocumentPattern.MatchString(doc) &&
		draft.FirstName != "" && draft.LastName != ""
}

func (v *licenseVerifier) verify(req sacs.VerifyRequest, docKey string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := v.client.VerifyLicense(ctx, req)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.lastDocKey != docKey {
		// Document edited while the request was in flight; result is stale.
		return
	}

	switch {
	case errors.Is(err, sacs.ErrNotFound):
		v.result = domain.VerificationResult{
			Status: domain.VerificationFailed,
			Error:  "No se encontró un registro con ese documento. Verifique los datos ingresados.",
		}
	case err != nil:
		v.result = domain.VerificationResult{
			Status: domain.VerificationError,
			Error:  "El servicio de verificación no está disponible. Intente nuevamente.",
		}
		logger.Error("license verification request failed",
			zap.String("document", masker.Document(docKey)),
			zap.Error(err))
	default:
		v.result = v.buildResult(req, resp)
	}

	logger.Audit("registration", "license_verification_settled",
		zap.String("document", masker.Document(docKey)),
		zap.String("status", string(v.result.Status)))

	if v.onChange != nil {
		go v.onChange()
	}
}

func (v *licenseVerifier) buildResult(req sacs.VerifyRequest, resp *sacs.VerifyResponse) domain.VerificationResult {
	result := domain.VerificationResult{
		IsValid:    resp.Valid,
		IsVerified: resp.Verified,
		DoctorName: resp.RegisteredName,
		Specialty:  resp.Specialty,
	}

	if !resp.Valid || !resp.Verified {
		result.Status = domain.VerificationFailed
		result.Error = "La licencia no pudo ser verificada. Verifique los datos ingresados."
		return result
	}

	result.Status = domain.VerificationVerified
	result.Dashboard = DashboardForSpecialty(resp.Specialty)

	if resp.RegisteredName != "" {
		match := namematch.Compare(req.FirstName+" "+req.LastName, resp.RegisteredName)
		result.NameMatch = &domain.NameMatch{
			Matches:    match.Matches,
			Confidence: match.Confidence,
			Message:    match.Message,
		}
	}

	return result
}

// Sufficient decides whether the verification state unblocks the license
// step. Everything must hold: the step's fields are clean, nothing is in
// flight, the registry said valid+verified, and the name match is not an
// explicit mismatch — a missing name match passes, only NameMatch.Matches ==
// false blocks.
func (v *licenseVerifier) Sufficient(stepValidation domain.StepValidation) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !stepValidation.IsValid {
		return false
	}
	if !v.result.Settled() {
		return false
	}
	if !v.result.IsValid || !v.result.IsVerified {
		return false
	}
	if v.result.NameMatch != nil && !v.result.NameMatch.Matches {
		return false
	}

	return true
}

// restore re-seeds verifier state from a loaded snapshot so a reload does
// not forget which document the draft already carries.
func (v *licenseVerifier) restore(draft *domain.RegistrationDraft) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastDocKey = draft.DocumentType + "-" + draft.DocumentNumber
	v.result = domain.VerificationResult{Status: domain.VerificationIdle}
}
