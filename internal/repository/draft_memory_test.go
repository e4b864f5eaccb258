package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/saludplus/backend/internal/domain"
)

type DraftMemoryRepositorySuite struct {
	suite.Suite
	repo *DraftMemoryRepository
}

func TestDraftMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(DraftMemoryRepositorySuite))
}

func (s *DraftMemoryRepositorySuite) SetupTest() {
	s.repo = NewDraftMemoryRepository()
}

func (s *DraftMemoryRepositorySuite) snapshot(sessionID string) *domain.DraftSnapshot {
	progress := domain.NewRegistrationProgress()
	progress.CompletedSteps = []domain.Step{domain.StepPersonalInfo}
	progress.CurrentStep = domain.StepProfessionalInfo
	progress.Percentage = 14

	return &domain.DraftSnapshot{
		Data: domain.RegistrationDraft{
			FirstName:      "JUAN",
			LastName:       "PEREZ",
			Email:          "jperez@clinica.com",
			Phone:          "584141234567",
			DocumentType:   "V",
			DocumentNumber: "12345678",
			Specialty:      "cardiologia",
			WorkingHours:   []domain.WorkingHours{{Day: "lunes", From: "08:00", To: "12:00"}},
		},
		Progress:  progress,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		SessionID: sessionID,
	}
}

func (s *DraftMemoryRepositorySuite) TestRoundTrip() {
	ctx := context.Background()
	original := s.snapshot("sess-1")

	s.Require().NoError(s.repo.Save(ctx, original))

	loaded, err := s.repo.Load(ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(original.Data, loaded.Data)
	s.Equal(original.Progress.CompletedSteps, loaded.Progress.CompletedSteps)
	s.Equal(original.Progress.CurrentStep, loaded.Progress.CurrentStep)
	s.Equal(original.SessionID, loaded.SessionID)
}

func (s *DraftMemoryRepositorySuite) TestLoadMissing() {
	_, err := s.repo.Load(context.Background(), "nope")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *DraftMemoryRepositorySuite) TestMalformedSnapshotTreatedAsAbsent() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, s.snapshot("sess-1")))

	s.repo.Corrupt("sess-1")

	_, err := s.repo.Load(ctx, "sess-1")
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *DraftMemoryRepositorySuite) TestClear() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, s.snapshot("sess-1")))

	s.Require().NoError(s.repo.Clear(ctx, "sess-1"))

	_, err := s.repo.Load(ctx, "sess-1")
	s.ErrorIs(err, domain.ErrNotFound)

	// Clearing an absent snapshot is not an error.
	s.NoError(s.repo.Clear(ctx, "sess-1"))
}
