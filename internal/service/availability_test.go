package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/pkg/debounce"
)

type AvailabilityCheckerSuite struct {
	suite.Suite
	repo     *fakeDoctorRepo
	schedule *debounce.Scheduler
	checker  *availabilityChecker
}

func TestAvailabilityCheckerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityCheckerSuite))
}

func (s *AvailabilityCheckerSuite) SetupTest() {
	s.repo = newFakeDoctorRepo()
	s.schedule = debounce.NewScheduler()
	s.checker = newAvailabilityChecker(s.repo, s.schedule, 20*time.Millisecond, nil)
}

func (s *AvailabilityCheckerSuite) TearDownTest() {
	s.schedule.Stop()
}

func (s *AvailabilityCheckerSuite) waitSettled(field string) domain.FieldAvailability {
	s.Require().Eventually(func() bool {
		st := s.checker.State(field)
		return !st.IsChecking && st.Status != domain.AvailabilityUnknown
	}, time.Second, 5*time.Millisecond)
	return s.checker.State(field)
}

func (s *AvailabilityCheckerSuite) TestStartsUnknown() {
	s.Equal(domain.AvailabilityUnknown, s.checker.State(FieldEmail).Status)
	s.Equal(domain.AvailabilityUnknown, s.checker.State(FieldPhone).Status)
}

func (s *AvailabilityCheckerSuite) TestAvailableEmail() {
	s.checker.OnValueChanged(FieldEmail, "nueva@clinica.com")

	st := s.waitSettled(FieldEmail)
	s.Equal(domain.AvailabilityAvailable, st.Status)
	s.Equal("nueva@clinica.com", st.LastCheckedValue)
}

func (s *AvailabilityCheckerSuite) TestTakenPhone() {
	s.repo.takenPhones["584141234567"] = true

	s.checker.OnValueChanged(FieldPhone, "04141234567")

	st := s.waitSettled(FieldPhone)
	s.Equal(domain.AvailabilityTaken, st.Status)
	s.Equal("584141234567", st.LastCheckedValue)
}

func (s *AvailabilityCheckerSuite) TestInvalidFormatNeverReachesBackend() {
	s.checker.OnValueChanged(FieldEmail, "no-es-correo")
	s.checker.OnValueChanged(FieldPhone, "123")
	time.Sleep(30 * time.Millisecond)

	s.Zero(s.repo.lookupCount())
	s.Equal(domain.AvailabilityUnknown, s.checker.State(FieldEmail).Status)
}

func (s *AvailabilityCheckerSuite) TestUnchangedValueIsDeduped() {
	s.checker.OnValueChanged(FieldEmail, "unica@clinica.com")
	s.waitSettled(FieldEmail)

	calls := s.repo.lookupCount()
	s.checker.OnValueChanged(FieldEmail, "unica@clinica.com")
	time.Sleep(30 * time.Millisecond)

	s.Equal(calls, s.repo.lookupCount())
}

func (s *AvailabilityCheckerSuite) TestRapidEditsCollapseToOneCheck() {
	s.checker.OnValueChanged(FieldEmail, "a@clinica.com")
	s.checker.OnValueChanged(FieldEmail, "ab@clinica.com")
	s.checker.OnValueChanged(FieldEmail, "abc@clinica.com")

	st := s.waitSettled(FieldEmail)
	s.Equal("abc@clinica.com", st.LastCheckedValue)
	s.Equal(1, s.repo.lookupCount())
}

func (s *AvailabilityCheckerSuite) TestBackendErrorFailsOpen() {
	s.repo.lookupErr = errors.New("db down")

	s.checker.OnValueChanged(FieldEmail, "alguien@clinica.com")

	st := s.waitSettled(FieldEmail)
	s.Equal(domain.AvailabilityAvailable, st.Status)
}

func (s *AvailabilityCheckerSuite) TestCheckNowBypassesDebounce() {
	s.repo.takenEmails["ocupado@clinica.com"] = true

	st := s.checker.CheckNow(context.Background(), FieldEmail, "ocupado@clinica.com")

	s.Equal(domain.AvailabilityTaken, st.Status)
	s.False(st.IsChecking)
}
