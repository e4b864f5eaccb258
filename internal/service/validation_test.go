package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/saludplus/backend/internal/domain"
)

type ValidationSuite struct {
	suite.Suite
	orchestrator *Orchestrator
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

func (s *ValidationSuite) SetupTest() {
	s.orchestrator = NewOrchestrator()
}

func (s *ValidationSuite) validDraft() domain.RegistrationDraft {
	return domain.RegistrationDraft{
		FirstName:         "JUAN",
		LastName:          "PÉREZ",
		Email:             "jperez@clinica.com",
		Phone:             "04141234567",
		Password:          "Segura123",
		PasswordConfirm:   "Segura123",
		DocumentType:      "V",
		DocumentNumber:    "12345678",
		University:        "Universidad Central de Venezuela",
		GraduationYear:    2010,
		MedicalBoard:      "Colegio de Médicos de Caracas",
		YearsOfExperience: 12,
		Specialty:         "cardiología",
		SelectedFeatures:  []string{"agenda"},
		WorkingHours:      []domain.WorkingHours{{Day: "lunes", From: "08:00", To: "12:00"}},
		IdentityConfirmed: true,
		AcceptsTerms:      true,
	}
}

func (s *ValidationSuite) TestSanitizeName() {
	s.Equal("JUAN PÉREZ", SanitizeName("  juan   pérez  "))
	s.Equal("MARÍA ÑÁÑEZ", SanitizeName("maría ñáñez"))
	s.Equal("ANA", SanitizeName("ana123!@#"))
}

func (s *ValidationSuite) TestSanitizeEmail() {
	s.Equal("jperez@clinica.com", SanitizeEmail("  JPerez@Clinica.COM "))
}

func (s *ValidationSuite) TestSanitizeDocumentNumber() {
	s.Equal("12345678", SanitizeDocumentNumber("V", "v-12345678"))
	s.Equal("12345678", SanitizeDocumentNumber("V", "V12345678"))
	s.Equal("12345678", SanitizeDocumentNumber("V", "12345678"))
	s.Equal("12345678", SanitizeDocumentNumber("E", "E-12345678"))
}

func (s *ValidationSuite) TestPersonalInfoValid() {
	draft := s.validDraft()
	result := s.orchestrator.ValidateStep(domain.StepPersonalInfo, &draft)

	s.True(result.IsValid)
	s.Empty(result.Errors)
}

func (s *ValidationSuite) TestPersonalInfoRejectsBadPhone() {
	draft := s.validDraft()
	draft.Phone = "0411123456" // 411 is not an assigned mobile prefix

	result := s.orchestrator.ValidateStep(domain.StepPersonalInfo, &draft)
	s.False(result.IsValid)
	s.Equal(msgInvalidPhone, result.ErrorFor("phone"))
}

func (s *ValidationSuite) TestPersonalInfoPasswordRules() {
	draft := s.validDraft()
	draft.Password = "corta1A"
	draft.PasswordConfirm = "corta1A"

	result := s.orchestrator.ValidateStep(domain.StepPersonalInfo, &draft)
	s.Equal(msgWeakPassword, result.ErrorFor("password"))

	draft = s.validDraft()
	draft.Password = "solominusculas1"
	draft.PasswordConfirm = "solominusculas1"
	result = s.orchestrator.ValidateStep(domain.StepPersonalInfo, &draft)
	s.Equal(msgWeakPassword, result.ErrorFor("password"))

	draft = s.validDraft()
	draft.PasswordConfirm = "Distinta123"
	result = s.orchestrator.ValidateStep(domain.StepPersonalInfo, &draft)
	s.Equal(msgPasswordMismatch, result.ErrorFor("password_confirm"))
}

func (s *ValidationSuite) TestPersonalInfoEmptyFieldsAreRequired() {
	draft := domain.RegistrationDraft{}
	result := s.orchestrator.ValidateStep(domain.StepPersonalInfo, &draft)

	s.False(result.IsValid)
	s.Equal(msgRequired, result.ErrorFor("first_name"))
	s.Equal(msgRequired, result.ErrorFor("email"))
	s.Equal(msgRequired, result.ErrorFor("phone"))
	s.Equal(msgRequired, result.ErrorFor("password"))
}

func (s *ValidationSuite) TestProfessionalInfoDocumentPattern() {
	draft := s.validDraft()
	draft.DocumentNumber = "12345" // below the 6 digit minimum

	result := s.orchestrator.ValidateStep(domain.StepProfessionalInfo, &draft)
	s.Equal(msgInvalidDocument, result.ErrorFor("document_number"))

	draft.DocumentNumber = "123456789"
	result = s.orchestrator.ValidateStep(domain.StepProfessionalInfo, &draft)
	s.True(result.IsValid)
}

func (s *ValidationSuite) TestProfessionalInfoGraduationYearBounds() {
	draft := s.validDraft()
	draft.GraduationYear = 1949

	result := s.orchestrator.ValidateStep(domain.StepProfessionalInfo, &draft)
	s.Equal(msgInvalidYear, result.ErrorFor("graduation_year"))

	draft.GraduationYear = 2099
	result = s.orchestrator.ValidateStep(domain.StepProfessionalInfo, &draft)
	s.Equal(msgInvalidYear, result.ErrorFor("graduation_year"))
}

func (s *ValidationSuite) TestProfessionalInfoBioLimit() {
	draft := s.validDraft()
	draft.Bio = strings.Repeat("a", 1001)

	result := s.orchestrator.ValidateStep(domain.StepProfessionalInfo, &draft)
	s.Equal(msgBioTooLong, result.ErrorFor("bio"))
}

func (s *ValidationSuite) TestSpecialtyRequired() {
	draft := s.validDraft()
	draft.Specialty = "  "

	result := s.orchestrator.ValidateStep(domain.StepSpecialtySelection, &draft)
	s.Equal(msgNoSpecialty, result.ErrorFor("specialty"))
}

func (s *ValidationSuite) TestIdentityMustBeConfirmed() {
	draft := s.validDraft()
	draft.IdentityConfirmed = false

	result := s.orchestrator.ValidateStep(domain.StepIdentityVerification, &draft)
	s.Equal(msgIdentityPending, result.ErrorFor("identity_confirmed"))
}

func (s *ValidationSuite) TestDashboardConfigurationRules() {
	draft := s.validDraft()
	draft.SelectedFeatures = nil

	result := s.orchestrator.ValidateStep(domain.StepDashboardConfiguration, &draft)
	s.Equal(msgNoFeatures, result.ErrorFor("selected_features"))

	draft = s.validDraft()
	draft.WorkingHours = []domain.WorkingHours{{Day: "lunes", From: "14:00", To: "09:00"}}
	result = s.orchestrator.ValidateStep(domain.StepDashboardConfiguration, &draft)
	s.Equal(msgInvalidHours, result.ErrorFor("working_hours"))
}

func (s *ValidationSuite) TestFinalReviewRequiresTerms() {
	draft := s.validDraft()
	draft.AcceptsTerms = false

	result := s.orchestrator.ValidateStep(domain.StepFinalReview, &draft)
	s.Equal(msgTermsNotAccepted, result.ErrorFor("accepts_terms"))
}

func (s *ValidationSuite) TestValidateAllDedupesByField() {
	// An invalid document fails both professional_info and
	// license_verification; the aggregate must report it once.
	draft := s.validDraft()
	draft.DocumentNumber = "12"

	result := s.orchestrator.ValidateAll(&draft)
	s.False(result.IsValid)

	count := 0
	for _, e := range result.Errors {
		if e.Field == "document_number" {
			count++
		}
	}
	s.Equal(1, count)
}

func (s *ValidationSuite) TestValidateAllPassesOnFullDraft() {
	draft := s.validDraft()
	result := s.orchestrator.ValidateAll(&draft)

	s.True(result.IsValid)
}
