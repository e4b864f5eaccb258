package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/saludplus/backend/internal/domain"
)

type StepMachineSuite struct {
	suite.Suite
	machine  stepMachine
	progress domain.RegistrationProgress
}

func TestStepMachineSuite(t *testing.T) {
	suite.Run(t, new(StepMachineSuite))
}

func (s *StepMachineSuite) SetupTest() {
	s.machine = stepMachine{}
	s.progress = domain.NewRegistrationProgress()
}

func (s *StepMachineSuite) TestFirstStepAlwaysAccessible() {
	s.True(s.machine.CanAccess(&s.progress, domain.StepPersonalInfo))
}

func (s *StepMachineSuite) TestLaterStepsGatedOnPredecessor() {
	s.False(s.machine.CanAccess(&s.progress, domain.StepProfessionalInfo))
	s.False(s.machine.CanAccess(&s.progress, domain.StepFinalReview))

	s.machine.MarkCompleted(&s.progress, domain.StepPersonalInfo)
	s.True(s.machine.CanAccess(&s.progress, domain.StepProfessionalInfo))
	s.False(s.machine.CanAccess(&s.progress, domain.StepSpecialtySelection))
}

func (s *StepMachineSuite) TestSkippingAStepIsNotAllowed() {
	s.machine.MarkCompleted(&s.progress, domain.StepPersonalInfo)
	s.machine.MarkCompleted(&s.progress, domain.StepProfessionalInfo)

	// specialty_selection not completed, so license_verification stays gated
	s.False(s.machine.CanAccess(&s.progress, domain.StepLicenseVerification))
}

func (s *StepMachineSuite) TestUnknownStepNeverAccessible() {
	s.False(s.machine.CanAccess(&s.progress, domain.Step("banana")))
}

func (s *StepMachineSuite) TestCompletedOnlyReachableWhenComplete() {
	s.False(s.machine.CanAccess(&s.progress, domain.StepCompleted))

	s.machine.Complete(&s.progress)
	s.True(s.machine.CanAccess(&s.progress, domain.StepCompleted))
}

func (s *StepMachineSuite) TestMarkCompletedIsIdempotent() {
	s.machine.MarkCompleted(&s.progress, domain.StepPersonalInfo)
	s.machine.MarkCompleted(&s.progress, domain.StepPersonalInfo)

	s.Len(s.progress.CompletedSteps, 1)
	s.Equal(14, s.progress.Percentage)
}

func (s *StepMachineSuite) TestPercentageRounding() {
	s.machine.MarkCompleted(&s.progress, domain.StepPersonalInfo)
	s.Equal(14, s.progress.Percentage) // 1/7

	s.machine.MarkCompleted(&s.progress, domain.StepProfessionalInfo)
	s.Equal(29, s.progress.Percentage) // 2/7

	s.machine.MarkCompleted(&s.progress, domain.StepSpecialtySelection)
	s.Equal(43, s.progress.Percentage) // 3/7
}

func (s *StepMachineSuite) TestAdvanceAndRetreat() {
	next, ok := s.machine.Advance(&s.progress, domain.StepPersonalInfo)
	s.True(ok)
	s.Equal(domain.StepProfessionalInfo, next)
	s.Equal(domain.StepProfessionalInfo, s.progress.CurrentStep)

	prev, ok := s.machine.Retreat(&s.progress)
	s.True(ok)
	s.Equal(domain.StepPersonalInfo, prev)
}

func (s *StepMachineSuite) TestNoAdvancePastLastStep() {
	_, ok := s.machine.Advance(&s.progress, domain.StepFinalReview)
	s.False(ok)
}

func (s *StepMachineSuite) TestNoRetreatFromFirstStep() {
	_, ok := s.machine.Retreat(&s.progress)
	s.False(ok)
}

func (s *StepMachineSuite) TestCompleteReachesTerminalState() {
	s.machine.Complete(&s.progress)

	s.Equal(domain.StepCompleted, s.progress.CurrentStep)
	s.Equal(100, s.progress.Percentage)
	s.True(s.progress.IsComplete)
	s.Len(s.progress.CompletedSteps, domain.TotalSteps)
}
