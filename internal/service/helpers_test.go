package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saludplus/backend/internal/config"
	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/internal/repository"
	"github.com/saludplus/backend/internal/sacs"
	"github.com/saludplus/backend/pkg/auth"
	"github.com/saludplus/backend/pkg/hash"
	"github.com/saludplus/backend/pkg/otp"
)

// fakeDoctorRepo is an in-memory repository.Doctors with controllable
// uniqueness responses and an optional delay on Create.
type fakeDoctorRepo struct {
	mu           sync.Mutex
	doctors      map[uuid.UUID]*domain.Doctor
	takenEmails  map[string]bool
	takenPhones  map[string]bool
	lookupErr    error
	createErr    error
	createDelay  time.Duration
	createCalls  int
	lookupCalls  int
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors:     make(map[uuid.UUID]*domain.Doctor),
		takenEmails: make(map[string]bool),
		takenPhones: make(map[string]bool),
	}
}

func (r *fakeDoctorRepo) Create(ctx context.Context, doctor *domain.Doctor) error {
	if r.createDelay > 0 {
		time.Sleep(r.createDelay)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if r.takenEmails[doctor.Email] {
		return domain.ErrDuplicateEntry
	}

	r.doctors[doctor.ID] = doctor
	r.takenEmails[doctor.Email] = true
	r.takenPhones[doctor.Phone] = true
	return nil
}

func (r *fakeDoctorRepo) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.doctors[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeDoctorRepo) lookupCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookupCalls
}

func (r *fakeDoctorRepo) createCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls
}

func (r *fakeDoctorRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookupCalls++
	if r.lookupErr != nil {
		return false, r.lookupErr
	}
	return r.takenEmails[email], nil
}

func (r *fakeDoctorRepo) PhoneExists(ctx context.Context, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lookupCalls++
	if r.lookupErr != nil {
		return false, r.lookupErr
	}
	return r.takenPhones[phone], nil
}

type fakeRefreshSessionRepo struct {
	mu       sync.Mutex
	sessions []*domain.RefreshSession
}

func (r *fakeRefreshSessionRepo) Create(ctx context.Context, session *domain.RefreshSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session)
	return nil
}

// fakeRegistry answers license verifications without a network.
type fakeRegistry struct {
	mu       sync.Mutex
	response *sacs.VerifyResponse
	err      error
	calls    int
	lastReq  sacs.VerifyRequest
}

func (f *fakeRegistry) VerifyLicense(ctx context.Context, req sacs.VerifyRequest) (*sacs.VerifyResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeRegistry) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Notification
}

func (n *recordingNotifier) Notify(sessionID string, event Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) bySeverity(severity string) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	var out []Notification
	for _, e := range n.events {
		if e.Severity == severity {
			out = append(out, e)
		}
	}
	return out
}

func testRegistrationConfig() config.RegistrationConfig {
	return config.RegistrationConfig{
		AvailabilityDebounce: 5 * time.Millisecond,
		VerificationDebounce: 5 * time.Millisecond,
		SaveDebounce:         5 * time.Millisecond,
		DraftTTL:             time.Hour,
		SessionIdleTTL:       time.Hour,
	}
}

func testTokenManager() auth.TokenManager {
	manager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		SigningKey:      "test-signing-key",
	})
	if err != nil {
		panic(err)
	}
	return manager
}

func testCoordinatorDeps(doctors *fakeDoctorRepo, registry RegistryClient, notifier Notifier) coordinatorDeps {
	if notifier == nil {
		notifier = NewLogNotifier()
	}

	return coordinatorDeps{
		cfg: testRegistrationConfig(),
		repos: &repository.Repositories{
			Doctors:        doctors,
			RefreshSession: &fakeRefreshSessionRepo{},
			Drafts:         repository.NewDraftMemoryRepository(),
		},
		registry:     registry,
		hasher:       hash.NewSHA256Hasher("test-salt"),
		tokenManager: testTokenManager(),
		otpGenerator: otp.NewGOTPGenerator(),
		notifier:     notifier,
		codeLength:   6,
	}
}

// validDraftPatch fills every field the wizard requires.
func validDraftPatch() domain.DraftPatch {
	firstName := "Juan"
	lastName := "Pérez"
	email := "jperez@clinica.com"
	phoneNumber := "04141234567"
	password := "Segura123"
	docType := "V"
	docNumber := "12345678"
	university := "Universidad Central de Venezuela"
	gradYear := 2010
	board := "Colegio de Médicos de Caracas"
	experience := 12
	specialty := "Cardiología"
	features := []string{"agenda", "historias"}
	hours := []domain.WorkingHours{{Day: "lunes", From: "08:00", To: "12:00"}}
	identityConfirmed := true
	acceptsTerms := true

	return domain.DraftPatch{
		FirstName:         &firstName,
		LastName:          &lastName,
		Email:             &email,
		Phone:             &phoneNumber,
		Password:          &password,
		PasswordConfirm:   &password,
		DocumentType:      &docType,
		DocumentNumber:    &docNumber,
		University:        &university,
		GraduationYear:    &gradYear,
		MedicalBoard:      &board,
		YearsOfExperience: &experience,
		Specialty:         &specialty,
		SelectedFeatures:  &features,
		WorkingHours:      &hours,
		IdentityConfirmed: &identityConfirmed,
		AcceptsTerms:      &acceptsTerms,
	}
}

func verifiedResponse() *sacs.VerifyResponse {
	return &sacs.VerifyResponse{
		Valid:          true,
		Verified:       true,
		RegisteredName: "JUAN PEREZ",
		Specialty:      "Cardiología",
		LicenseNumber:  "MPPS-45678",
	}
}
