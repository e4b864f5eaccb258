package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/internal/sacs"
	"github.com/saludplus/backend/pkg/debounce"
)

type LicenseVerifierSuite struct {
	suite.Suite
	registry *fakeRegistry
	schedule *debounce.Scheduler
	verifier *licenseVerifier
}

func TestLicenseVerifierSuite(t *testing.T) {
	suite.Run(t, new(LicenseVerifierSuite))
}

func (s *LicenseVerifierSuite) SetupTest() {
	s.registry = &fakeRegistry{response: verifiedResponse()}
	s.schedule = debounce.NewScheduler()
	s.verifier = newLicenseVerifier(s.registry, s.schedule, 5*time.Millisecond, nil)
}

func (s *LicenseVerifierSuite) TearDownTest() {
	s.schedule.Stop()
}

func (s *LicenseVerifierSuite) draft() domain.RegistrationDraft {
	return domain.RegistrationDraft{
		FirstName:      "JUAN",
		LastName:       "PEREZ",
		DocumentType:   "V",
		DocumentNumber: "12345678",
	}
}

func (s *LicenseVerifierSuite) waitSettled() domain.VerificationResult {
	s.Require().Eventually(func() bool {
		r := s.verifier.Result()
		return r.Status != domain.VerificationVerifying && r.Status != domain.VerificationIdle
	}, time.Second, 5*time.Millisecond)
	return s.verifier.Result()
}

func (s *LicenseVerifierSuite) TestStartsIdle() {
	s.Equal(domain.VerificationIdle, s.verifier.Result().Status)
}

func (s *LicenseVerifierSuite) TestNoCallWithoutCompleteDocument() {
	draft := s.draft()
	draft.DocumentNumber = "12" // fails the format gate

	s.verifier.OnDraftChanged(&draft)
	time.Sleep(30 * time.Millisecond)

	s.Equal(domain.VerificationIdle, s.verifier.Result().Status)
	s.Zero(s.registry.callCount())
}

func (s *LicenseVerifierSuite) TestSuccessfulVerification() {
	draft := s.draft()
	s.verifier.OnDraftChanged(&draft)

	result := s.waitSettled()
	s.Equal(domain.VerificationVerified, result.Status)
	s.True(result.IsValid)
	s.True(result.IsVerified)
	s.Equal("JUAN PEREZ", result.DoctorName)
	s.Equal("cardiologia", result.Dashboard)

	s.Require().NotNil(result.NameMatch)
	s.True(result.NameMatch.Matches)
	s.InDelta(1.0, result.NameMatch.Confidence, 0.001)
}

func (s *LicenseVerifierSuite) TestNotFoundMapsToFailed() {
	s.registry.err = sacs.ErrNotFound

	draft := s.draft()
	s.verifier.OnDraftChanged(&draft)

	result := s.waitSettled()
	s.Equal(domain.VerificationFailed, result.Status)
	s.NotEmpty(result.Error)
}

func (s *LicenseVerifierSuite) TestTransportErrorMapsToError() {
	s.registry.err = errors.New("connection refused")

	draft := s.draft()
	s.verifier.OnDraftChanged(&draft)

	result := s.waitSettled()
	s.Equal(domain.VerificationError, result.Status)
}

func (s *LicenseVerifierSuite) TestDocumentEditResetsResult() {
	draft := s.draft()
	s.verifier.OnDraftChanged(&draft)
	s.waitSettled()

	draft.DocumentNumber = "87654321"
	s.verifier.OnDraftChanged(&draft)

	// The edit must reset before the new verification settles; the new
	// verification then runs against the new document.
	s.Require().Eventually(func() bool {
		return s.registry.callCount() == 2
	}, time.Second, 5*time.Millisecond)

	s.registry.mu.Lock()
	lastDoc := s.registry.lastReq.DocumentNumber
	s.registry.mu.Unlock()
	s.Equal("87654321", lastDoc)
}

func (s *LicenseVerifierSuite) TestUnchangedDocumentDoesNotReverify() {
	draft := s.draft()
	s.verifier.OnDraftChanged(&draft)
	s.waitSettled()

	draft.Bio = "Cardiólogo intervencionista"
	s.verifier.OnDraftChanged(&draft)
	time.Sleep(30 * time.Millisecond)

	s.Equal(1, s.registry.callCount())
	s.Equal(domain.VerificationVerified, s.verifier.Result().Status)
}

func (s *LicenseVerifierSuite) TestNameMismatchBlocksSufficiency() {
	s.registry.response = verifiedResponse()
	s.registry.response.RegisteredName = "PEDRO RAMIREZ GONZALEZ"

	draft := s.draft()
	s.verifier.OnDraftChanged(&draft)
	result := s.waitSettled()

	s.Require().NotNil(result.NameMatch)
	s.False(result.NameMatch.Matches)

	clean := domain.StepValidation{IsValid: true}
	s.False(s.verifier.Sufficient(clean))
}

func (s *LicenseVerifierSuite) TestSufficientAfterVerified() {
	draft := s.draft()
	s.verifier.OnDraftChanged(&draft)
	s.waitSettled()

	s.True(s.verifier.Sufficient(domain.StepValidation{IsValid: true}))
	s.False(s.verifier.Sufficient(domain.StepValidation{IsValid: false}))
}

func (s *LicenseVerifierSuite) TestDashboardForSpecialty() {
	s.Equal("cardiologia", DashboardForSpecialty("Cardiología Intervencionista"))
	s.Equal("pediatria", DashboardForSpecialty("pediatría"))
	s.Equal("salud-mental", DashboardForSpecialty("Psiquiatría"))
	s.Equal("ginecologia-obstetricia", DashboardForSpecialty("obstetricia"))
	s.Equal(DefaultDashboard, DashboardForSpecialty("medicina familiar"))
	s.Equal(DefaultDashboard, DashboardForSpecialty(""))
}
