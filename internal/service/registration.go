package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saludplus/backend/internal/config"
	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/internal/queue/client"
	"github.com/saludplus/backend/internal/queue/task"
	"github.com/saludplus/backend/internal/repository"
	"github.com/saludplus/backend/pkg/auth"
	"github.com/saludplus/backend/pkg/debounce"
	"github.com/saludplus/backend/pkg/hash"
	"github.com/saludplus/backend/pkg/logger"
	"github.com/saludplus/backend/pkg/masker"
	"github.com/saludplus/backend/pkg/otp"
	"github.com/saludplus/backend/pkg/phone"
)

// Tokens is the session pair issued after a successful registration.
type Tokens struct {
	AccessToken  string        `json:"access_token"`
	AccessTTL    time.Duration `json:"-"`
	RefreshToken uuid.UUID     `json:"refresh_token"`
	RefreshTTL   time.Duration `json:"-"`
}

// SubmissionResult is the outcome of a confirmed finalize call.
type SubmissionResult struct {
	UserID                 uuid.UUID `json:"user_id"`
	ProfileID              uuid.UUID `json:"profile_id"`
	NeedsEmailVerification bool      `json:"needs_email_verification"`
	Tokens                 *Tokens   `json:"tokens,omitempty"`
}

// StepResult is returned by the navigation operations. When the last
// data-entry step completes, Submission carries the finalize outcome instead
// of a next step.
type StepResult struct {
	Validation domain.StepValidation `json:"validation"`
	Completed  bool                  `json:"completed"`
	NextStep   domain.Step           `json:"next_step,omitempty"`
	Submission *SubmissionResult     `json:"submission,omitempty"`
}

// State is a read-only snapshot of a session's workflow, safe to hand to
// handlers.
type State struct {
	Draft        domain.RegistrationDraft            `json:"draft"`
	Progress     domain.RegistrationProgress         `json:"progress"`
	Availability map[string]domain.FieldAvailability `json:"availability"`
	Verification domain.VerificationResult           `json:"verification"`
	Route        string                              `json:"route"`
}

// Coordinator owns one session's registration workflow: the draft, the
// progress, the async checkers and the persistence manager. All mutations go
// through it; handlers never touch the draft directly.
type Coordinator struct {
	sessionID    string
	cfg          config.RegistrationConfig
	orchestrator *Orchestrator
	machine      stepMachine
	schedule     *debounce.Scheduler
	availability *availabilityChecker
	license      *licenseVerifier
	persistence  *persistenceManager
	repos        *repository.Repositories
	hasher       hash.PasswordHasher
	tokenManager auth.TokenManager
	otpGenerator otp.Generator
	notifier     Notifier
	codeLength   int

	mu           sync.Mutex
	draft        domain.RegistrationDraft
	progress     domain.RegistrationProgress
	isSubmitting bool
	listeners    []func()
	lastAccess   time.Time
}

type coordinatorDeps struct {
	cfg          config.RegistrationConfig
	repos        *repository.Repositories
	registry     RegistryClient
	hasher       hash.PasswordHasher
	tokenManager auth.TokenManager
	otpGenerator otp.Generator
	notifier     Notifier
	codeLength   int
}

func newCoordinator(sessionID string, deps coordinatorDeps) *Coordinator {
	c := &Coordinator{
		sessionID:    sessionID,
		cfg:          deps.cfg,
		orchestrator: NewOrchestrator(),
		schedule:     debounce.NewScheduler(),
		repos:        deps.repos,
		hasher:       deps.hasher,
		tokenManager: deps.tokenManager,
		otpGenerator: deps.otpGenerator,
		notifier:     deps.notifier,
		codeLength:   deps.codeLength,
		progress:     domain.NewRegistrationProgress(),
		lastAccess:   time.Now(),
	}

	c.availability = newAvailabilityChecker(deps.repos.Doctors, c.schedule, deps.cfg.AvailabilityDebounce, c.notifyListeners)
	c.license = newLicenseVerifier(deps.registry, c.schedule, deps.cfg.VerificationDebounce, c.notifyListeners)
	c.persistence = newPersistenceManager(deps.repos.Drafts, c.schedule, deps.cfg.SaveDebounce, sessionID)

	return c
}

// restore seeds the coordinator from a persisted snapshot.
func (c *Coordinator) restore(snapshot *domain.DraftSnapshot) {
	c.mu.Lock()
	c.draft = snapshot.Data
	c.progress = snapshot.Progress
	recomputeProgress(&c.progress)
	c.mu.Unlock()

	c.license.restore(&snapshot.Data)
}

// Close stops every pending timer. Any unsaved draft change is flushed
// first so eviction never loses data.
func (c *Coordinator) Close() {
	c.persistence.FlushNow()
	c.schedule.Stop()
}

// Subscribe registers a listener invoked after every state change.
func (c *Coordinator) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Coordinator) notifyListeners() {
	c.mu.Lock()
	listeners := make([]func(), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (c *Coordinator) touch() {
	c.mu.Lock()
	c.lastAccess = time.Now()
	c.mu.Unlock()
}

// State returns a read-only snapshot of the session.
func (c *Coordinator) State() State {
	c.mu.Lock()
	draft := c.draft
	progress := c.progress
	c.mu.Unlock()

	return State{
		Draft:    draft,
		Progress: progress,
		Availability: map[string]domain.FieldAvailability{
			FieldEmail: c.availability.State(FieldEmail),
			FieldPhone: c.availability.State(FieldPhone),
		},
		Verification: c.license.Result(),
		Route:        domain.RouteForStep(progress.CurrentStep),
	}
}

// UpdateData merges a partial update into the draft, sanitizes it, kicks the
// async checkers for the fields that changed and schedules a debounced save.
func (c *Coordinator) UpdateData(_ context.Context, patch domain.DraftPatch) State {
	c.touch()

	c.mu.Lock()
	prevEmail, prevPhone := c.draft.Email, c.draft.Phone

	applyPatch(&c.draft, patch)
	c.orchestrator.SanitizeDraft(&c.draft)

	draft := c.draft
	progress := c.progress
	c.mu.Unlock()

	if draft.Email != prevEmail {
		c.availability.OnValueChanged(FieldEmail, draft.Email)
	}
	if draft.Phone != prevPhone {
		c.availability.OnValueChanged(FieldPhone, draft.Phone)
	}
	c.license.OnDraftChanged(&draft)

	c.persistence.Save(draft, progress)
	c.notifyListeners()

	return c.State()
}

func applyPatch(draft *domain.RegistrationDraft, patch domain.DraftPatch) {
	if patch.FirstName != nil {
		draft.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		draft.LastName = *patch.LastName
	}
	if patch.Email != nil {
		draft.Email = *patch.Email
	}
	if patch.Phone != nil {
		draft.Phone = *patch.Phone
	}
	if patch.Password != nil {
		draft.Password = *patch.Password
	}
	if patch.PasswordConfirm != nil {
		draft.PasswordConfirm = *patch.PasswordConfirm
	}
	if patch.DocumentType != nil {
		draft.DocumentType = *patch.DocumentType
	}
	if patch.DocumentNumber != nil {
		draft.DocumentNumber = *patch.DocumentNumber
	}
	if patch.University != nil {
		draft.University = *patch.University
	}
	if patch.GraduationYear != nil {
		draft.GraduationYear = *patch.GraduationYear
	}
	if patch.MedicalBoard != nil {
		draft.MedicalBoard = *patch.MedicalBoard
	}
	if patch.YearsOfExperience != nil {
		draft.YearsOfExperience = *patch.YearsOfExperience
	}
	if patch.Bio != nil {
		draft.Bio = *patch.Bio
	}
	if patch.Specialty != nil {
		draft.Specialty = *patch.Specialty
	}
	if patch.WorkingHours != nil {
		draft.WorkingHours = *patch.WorkingHours
	}
	if patch.SelectedFeatures != nil {
		draft.SelectedFeatures = *patch.SelectedFeatures
	}
	if patch.IdentityConfirmed != nil {
		draft.IdentityConfirmed = *patch.IdentityConfirmed
	}
	if patch.AcceptsTerms != nil {
		draft.AcceptsTerms = *patch.AcceptsTerms
	}
}

// CanAccess reports whether the session may enter the given step.
func (c *Coordinator) CanAccess(step domain.Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.machine.CanAccess(&c.progress, step)
}

// validateStepLocked runs the step's rules plus the async gates that scope
// to it: taken email/phone block the personal step, an unsettled or failed
// verification blocks the license step.
func (c *Coordinator) validateStepLocked(step domain.Step, draft *domain.RegistrationDraft) domain.StepValidation {
	validation := c.orchestrator.ValidateStep(step, draft)

	switch step {
	case domain.StepPersonalInfo:
		if st := c.availability.State(FieldEmail); st.Status == domain.AvailabilityTaken {
			validation.Errors = append(validation.Errors, domain.FieldError{
				Field: "email", Message: "Este correo ya está registrado",
			})
		}
		if st := c.availability.State(FieldPhone); st.Status == domain.AvailabilityTaken {
			validation.Errors = append(validation.Errors, domain.FieldError{
				Field: "phone", Message: "Este número de teléfono ya está registrado",
			})
		}
	case domain.StepLicenseVerification:
		if !c.license.Sufficient(validation) {
			validation.Errors = append(validation.Errors, domain.FieldError{
				Field: "license", Message: msgLicensePending,
			})
		}
	}

	validation.IsValid = len(validation.Errors) == 0
	return validation
}

// CompleteStepAndContinue re-validates step, marks it completed and advances
// to the next one. Completing the last data-entry step submits the
// registration instead of navigating.
func (c *Coordinator) CompleteStepAndContinue(ctx context.Context, step domain.Step) (*StepResult, error) {
	c.touch()

	if step.Index() < 0 {
		return nil, ErrInvalidStep
	}

	c.mu.Lock()
	if c.progress.CurrentStep == domain.StepCompleted {
		c.mu.Unlock()
		return nil, ErrAlreadyCompleted
	}
	if !c.machine.CanAccess(&c.progress, step) {
		c.mu.Unlock()
		return nil, ErrStepNotReachable
	}

	draft := c.draft
	validation := c.validateStepLocked(step, &draft)
	if !validation.IsValid {
		c.mu.Unlock()
		return &StepResult{Validation: validation}, nil
	}

	c.machine.MarkCompleted(&c.progress, step)
	next, hasNext := c.machine.Advance(&c.progress, step)
	progress := c.progress
	c.mu.Unlock()

	c.persistence.Save(draft, progress)
	c.notifyListeners()

	if !hasNext {
		submission, err := c.SubmitRegistration(ctx)
		if err != nil {
			return nil, err
		}
		return &StepResult{Validation: validation, Completed: true, Submission: submission}, nil
	}

	return &StepResult{Validation: validation, Completed: true, NextStep: next}, nil
}

// GoToPreviousStep navigates one step back. Unconditional except from the
// first step.
func (c *Coordinator) GoToPreviousStep(_ context.Context) (domain.Step, error) {
	c.touch()

	c.mu.Lock()
	prev, ok := c.machine.Retreat(&c.progress)
	draft := c.draft
	progress := c.progress
	c.mu.Unlock()

	if !ok {
		return "", ErrStepNotReachable
	}

	c.persistence.Save(draft, progress)
	c.notifyListeners()

	return prev, nil
}

// GoToStep jumps to target. The step being left is re-validated — even when
// navigating backward — so completedSteps stays consistent with the draft.
func (c *Coordinator) GoToStep(_ context.Context, target domain.Step) (*StepResult, error) {
	c.touch()

	if target.Index() < 0 {
		return nil, ErrInvalidStep
	}

	c.mu.Lock()
	current := c.progress.CurrentStep
	if !c.machine.CanAccess(&c.progress, target) {
		c.mu.Unlock()
		return nil, ErrStepNotReachable
	}

	draft := c.draft
	validation := c.validateStepLocked(current, &draft)
	if validation.IsValid {
		c.machine.MarkCompleted(&c.progress, current)
	} else if target.Index() > current.Index() {
		// Forward navigation over an invalid step is refused.
		c.mu.Unlock()
		return &StepResult{Validation: validation}, nil
	}

	c.progress.CurrentStep = target
	c.progress.LastUpdated = time.Now()
	progress := c.progress
	c.mu.Unlock()

	c.persistence.Save(draft, progress)
	c.notifyListeners()

	return &StepResult{Validation: validation, Completed: validation.IsValid, NextStep: target}, nil
}

// SubmitRegistration validates the whole aggregate and posts it. Guarded by
// a single-flight flag: a second call while one is outstanding is rejected,
// not queued. On any failure the draft and the persisted snapshot stay
// untouched so the doctor can retry without data loss.
func (c *Coordinator) SubmitRegistration(ctx context.Context) (*SubmissionResult, error) {
	c.touch()

	c.mu.Lock()
	if c.isSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if c.progress.CurrentStep == domain.StepCompleted {
		c.mu.Unlock()
		return nil, ErrAlreadyCompleted
	}
	c.isSubmitting = true
	draft := c.draft
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.isSubmitting = false
		c.mu.Unlock()
	}()

	if validation := c.orchestrator.ValidateAll(&draft); !validation.IsValid {
		return nil, &ValidationFailedError{Validation: validation}
	}
	if !c.license.Sufficient(c.orchestrator.ValidateStep(domain.StepLicenseVerification, &draft)) {
		return nil, &ValidationFailedError{Validation: domain.StepValidation{
			Errors: []domain.FieldError{{Field: "license", Message: msgLicensePending}},
		}}
	}

	result, err := c.finalize(ctx, &draft)
	if err != nil {
		c.notifier.Notify(c.sessionID, Notification{
			Title:       "No se pudo completar el registro",
			Description: "Sus datos están guardados, intente nuevamente.",
			Severity:    SeverityError,
		})
		return nil, err
	}

	// Confirmed success: only now is the snapshot cleared and the terminal
	// state reached.
	if err := c.persistence.Clear(ctx); err != nil {
		logger.Error("clear draft after submit failed", zap.String("session_id", c.sessionID), zap.Error(err))
	}

	c.mu.Lock()
	c.machine.Complete(&c.progress)
	c.mu.Unlock()

	c.notifier.Notify(c.sessionID, Notification{
		Title:       "Registro completado",
		Description: "Revise su correo para verificar su cuenta.",
		Severity:    SeveritySuccess,
	})
	c.notifyListeners()

	logger.Audit("registration", "registration_finalized",
		zap.String("session_id", c.sessionID),
		zap.String("email", masker.Email(draft.Email)),
		zap.String("user_id", result.UserID.String()))

	return result, nil
}

func (c *Coordinator) finalize(ctx context.Context, draft *domain.RegistrationDraft) (*SubmissionResult, error) {
	passwordHash, err := c.hasher.Hash(draft.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	doctorID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate doctor id failed: %w", err)
	}
	profileID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate profile id failed: %w", err)
	}

	normalizedPhone, _ := phone.Normalize(draft.Phone)
	verificationCode := c.otpGenerator.RandomSecret(c.codeLength)
	verification := c.license.Result()

	dashboard := verification.Dashboard
	if dashboard == "" {
		dashboard = DashboardForSpecialty(draft.Specialty)
	}

	doctor := &domain.Doctor{
		ID:                doctorID,
		ProfileID:         profileID,
		FirstName:         draft.FirstName,
		LastName:          draft.LastName,
		Email:             draft.Email,
		Phone:             normalizedPhone,
		PasswordHash:      passwordHash,
		DocumentType:      draft.DocumentType,
		DocumentNumber:    draft.DocumentNumber,
		University:        nullString(draft.University),
		GraduationYear:    nullInt64(int64(draft.GraduationYear)),
		MedicalBoard:      nullString(draft.MedicalBoard),
		YearsOfExperience: nullInt64(int64(draft.YearsOfExperience)),
		Bio:               nullString(draft.Bio),
		Specialty:         draft.Specialty,
		Dashboard:         dashboard,
		WorkingHours:      domain.WorkingHoursList(draft.WorkingHours),
		SelectedFeatures:  domain.FeatureList(draft.SelectedFeatures),
		VerificationCode:  nullString(verificationCode),
	}

	if err := c.repos.Doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrDoctorExists
		}
		return nil, fmt.Errorf("create doctor failed: %w", err)
	}

	tokens, err := c.createSession(ctx, doctorID)
	if err != nil {
		// The profile exists; the doctor can still sign in normally.
		logger.Error("create session after registration failed", zap.Error(err))
		tokens = nil
	}

	c.enqueueVerificationEmail(ctx, draft.Email, verificationCode)

	return &SubmissionResult{
		UserID:                 doctorID,
		ProfileID:              profileID,
		NeedsEmailVerification: true,
		Tokens:                 tokens,
	}, nil
}

func (c *Coordinator) createSession(ctx context.Context, doctorID uuid.UUID) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = c.tokenManager.NewJWT(&doctorID)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = c.tokenManager.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	sessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}

	session := &domain.RefreshSession{
		ID:           sessionID,
		DoctorID:     doctorID,
		RefreshToken: res.RefreshToken,
		UserAgent:    "registration",
		IP:           "",
		ExpiresIn:    time.Now().Add(res.RefreshTTL),
	}

	if err := c.repos.RefreshSession.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}

func (c *Coordinator) enqueueVerificationEmail(ctx context.Context, to string, code string) {
	queueClient := client.GetClient(ctx)
	if queueClient == nil {
		return
	}

	t, err := task.NewSendEmailTask(to, code)
	if err != nil {
		logger.Error("build send email task failed", zap.Error(err))
		return
	}

	if _, err := queueClient.EnqueueContext(ctx, t); err != nil {
		// Best effort: the doctor can request a new code later.
		logger.Error("enqueue verification email failed",
			zap.String("email", masker.Email(to)), zap.Error(err))
	}
}

// Reset clears the persisted snapshot and returns the session to defaults.
// Explicit user action only.
func (c *Coordinator) Reset(ctx context.Context) error {
	c.touch()

	if err := c.persistence.Clear(ctx); err != nil {
		return fmt.Errorf("clear draft failed: %w", err)
	}

	c.mu.Lock()
	c.draft = domain.RegistrationDraft{}
	c.progress = domain.NewRegistrationProgress()
	c.mu.Unlock()

	c.license.restore(&domain.RegistrationDraft{})
	c.notifyListeners()

	return nil
}

// CheckAvailability runs an immediate uniqueness check for the explicit
// availability endpoint.
func (c *Coordinator) CheckAvailability(ctx context.Context, field, value string) domain.FieldAvailability {
	c.touch()
	return c.availability.CheckNow(ctx, field, value)
}

// ValidationFailedError carries the structured error map of a rejected
// submission.
type ValidationFailedError struct {
	Validation domain.StepValidation
}

func (e *ValidationFailedError) Error() string {
	return "registration draft failed validation"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: v != 0}
}
