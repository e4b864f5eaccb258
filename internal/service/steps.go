package service

import (
	"math"
	"time"

	"github.com/saludplus/backend/internal/domain"
)

// stepMachine implements the wizard's reachability and completion rules over
// a RegistrationProgress. It is a set of pure transitions; the coordinator
// owns the progress value and the locking around it.
type stepMachine struct{}

// CanAccess reports whether the doctor may enter step: always true for the
// first step, otherwise the previous step must already be completed. The
// terminal state is only reachable through a successful submission.
func (stepMachine) CanAccess(progress *domain.RegistrationProgress, step domain.Step) bool {
	if step == domain.StepCompleted {
		return progress.IsComplete
	}

	idx := step.Index()
	if idx < 0 {
		return false
	}
	if idx == 0 {
		return true
	}

	return progress.HasCompleted(domain.StepOrder[idx-1])
}

// MarkCompleted adds step to the completed set. Completing the same step
// twice leaves the set unchanged.
func (stepMachine) MarkCompleted(progress *domain.RegistrationProgress, step domain.Step) {
	if step.Index() < 0 || progress.HasCompleted(step) {
		return
	}

	progress.CompletedSteps = append(progress.CompletedSteps, step)
	recomputeProgress(progress)
}

// Advance moves CurrentStep to the step after current. ok is false when
// current is the last data-entry step; the caller submits instead of
// navigating.
func (stepMachine) Advance(progress *domain.RegistrationProgress, current domain.Step) (domain.Step, bool) {
	next, ok := domain.NextStep(current)
	if !ok {
		return "", false
	}

	progress.CurrentStep = next
	progress.LastUpdated = time.Now()
	return next, true
}

// Retreat moves CurrentStep one step back. Always permitted except from the
// first step.
func (stepMachine) Retreat(progress *domain.RegistrationProgress) (domain.Step, bool) {
	prev, ok := domain.PreviousStep(progress.CurrentStep)
	if !ok {
		return "", false
	}

	progress.CurrentStep = prev
	progress.LastUpdated = time.Now()
	return prev, true
}

// Complete transitions to the terminal state after a confirmed submission.
func (m stepMachine) Complete(progress *domain.RegistrationProgress) {
	for _, step := range domain.StepOrder {
		m.MarkCompleted(progress, step)
	}
	progress.CurrentStep = domain.StepCompleted
	progress.LastUpdated = time.Now()
}

func recomputeProgress(progress *domain.RegistrationProgress) {
	progress.TotalSteps = domain.TotalSteps
	progress.Percentage = int(math.Round(float64(len(progress.CompletedSteps)) / float64(progress.TotalSteps) * 100))
	progress.IsComplete = progress.Percentage == 100
	progress.LastUpdated = time.Now()
}
