package domain

// Step is one stage of the registration wizard. Every step has its own
// validation gate; a step can only be entered once the previous one has
// been completed.
type Step string

const (
	StepPersonalInfo           Step = "personal_info"
	StepProfessionalInfo       Step = "professional_info"
	StepSpecialtySelection     Step = "specialty_selection"
	StepLicenseVerification    Step = "license_verification"
	StepIdentityVerification   Step = "identity_verification"
	StepDashboardConfiguration Step = "dashboard_configuration"
	StepFinalReview            Step = "final_review"
	StepCompleted              Step = "completed"
)

// StepOrder lists the data-entry steps in wizard order. StepCompleted is the
// terminal state and is deliberately not part of the order.
var StepOrder = []Step{
	StepPersonalInfo,
	StepProfessionalInfo,
	StepSpecialtySelection,
	StepLicenseVerification,
	StepIdentityVerification,
	StepDashboardConfiguration,
	StepFinalReview,
}

// TotalSteps is the number of data-entry steps a doctor has to complete.
var TotalSteps = len(StepOrder)

var stepIndex = func() map[Step]int {
	m := make(map[Step]int, len(StepOrder))
	for i, s := range StepOrder {
		m[s] = i
	}
	return m
}()

// Index returns the zero-based position of s in StepOrder, or -1 for
// StepCompleted and unknown values.
func (s Step) Index() int {
	if i, ok := stepIndex[s]; ok {
		return i
	}
	return -1
}

// IsValid reports whether s is a known data-entry step or the terminal state.
func (s Step) IsValid() bool {
	return s == StepCompleted || s.Index() >= 0
}

// NextStep returns the step that follows s. ok is false when s is the last
// data-entry step or not part of the order.
func NextStep(s Step) (Step, bool) {
	i := s.Index()
	if i < 0 || i+1 >= len(StepOrder) {
		return "", false
	}
	return StepOrder[i+1], true
}

// PreviousStep returns the step before s. ok is false for the first step.
func PreviousStep(s Step) (Step, bool) {
	i := s.Index()
	if i <= 0 {
		return "", false
	}
	return StepOrder[i-1], true
}

var stepRoutes = map[Step]string{
	StepPersonalInfo:           "/registro/datos-personales",
	StepProfessionalInfo:       "/registro/datos-profesionales",
	StepSpecialtySelection:     "/registro/especialidad",
	StepLicenseVerification:    "/registro/verificacion-licencia",
	StepIdentityVerification:   "/registro/verificacion-identidad",
	StepDashboardConfiguration: "/registro/configuracion",
	StepFinalReview:            "/registro/resumen",
	StepCompleted:              "/registro/completado",
}

// RouteForStep resolves the display route the frontend router mounts for a
// step. Unknown steps fall back to the first step's route.
func RouteForStep(s Step) string {
	if route, ok := stepRoutes[s]; ok {
		return route
	}
	return stepRoutes[StepPersonalInfo]
}
