package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saludplus/backend/internal/domain"
	"github.com/saludplus/backend/internal/service"
	"github.com/saludplus/backend/pkg/logger"
)

func (h *Handler) initRegistrationRoutes(api *gin.RouterGroup) {
	registration := api.Group("/registration", h.sessionIdentityMiddleware)

	registration.GET("/draft", h.getDraft)
	registration.PATCH("/draft", h.updateDraft)
	registration.DELETE("/draft", h.resetDraft)

	registration.GET("/progress", h.getProgress)

	registration.POST("/steps/:step/complete", h.completeStep)
	registration.POST("/steps/back", h.previousStep)
	registration.POST("/steps/:step/goto", h.goToStep)

	registration.POST("/availability", h.checkAvailability)
	registration.GET("/verification", h.getVerification)
	registration.GET("/summary.pdf", h.getSummaryPDF)

	registration.POST("/finalize", h.finalize)
}

func (h *Handler) coordinator(c *gin.Context) (*service.Coordinator, bool) {
	sessionID, err := h.getSessionID(c)
	if err != nil {
		errorResponse(c, SessionHeaderMissingCode)
		return nil, false
	}

	coordinator, err := h.services.Registrations.GetOrCreate(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error("load registration session failed", zap.String("session_id", sessionID), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}

	return coordinator, true
}

// @Summary Get registration draft
// @Tags Registration
// @Description Current draft, progress and async check state for the session
// @ModuleID getDraft
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Success 200 {object} service.State
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/draft [get]
func (h *Handler) getDraft(c *gin.Context) {
	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, coordinator.State())
}

// @Summary Update registration draft
// @Tags Registration
// @Description Merge a partial update into the draft. Absent fields are untouched.
// @ModuleID updateDraft
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Param input body domain.DraftPatch true "Fields to update"
// @Success 200 {object} service.State
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/draft [patch]
func (h *Handler) updateDraft(c *gin.Context) {
	var patch domain.DraftPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		validationErrorResponse(c, err)
		return
	}

	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, coordinator.UpdateData(c.Request.Context(), patch))
}

// @Summary Reset registration draft
// @Tags Registration
// @Description Discard the draft and the persisted snapshot
// @ModuleID resetDraft
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Success 204
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/draft [delete]
func (h *Handler) resetDraft(c *gin.Context) {
	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	if err := coordinator.Reset(c.Request.Context()); err != nil {
		logger.Error("reset registration failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

type progressResponse struct {
	Progress domain.RegistrationProgress `json:"progress"`
	Route    string                      `json:"route"`
}

// @Summary Get registration progress
// @Tags Registration
// @Description Current step, completed steps and completion percentage
// @ModuleID getProgress
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Success 200 {object} progressResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/progress [get]
func (h *Handler) getProgress(c *gin.Context) {
	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	state := coordinator.State()
	c.JSON(http.StatusOK, progressResponse{Progress: state.Progress, Route: state.Route})
}

// @Summary Complete a step
// @Tags Registration
// @Description Validate the step and advance. Completing the final step submits the registration.
// @ModuleID completeStep
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Param step path string true "Step name"
// @Success 200 {object} service.StepResult
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500
// @Router /registration/steps/{step}/complete [post]
func (h *Handler) completeStep(c *gin.Context) {
	step := domain.Step(c.Param("step"))

	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	result, err := coordinator.CompleteStepAndContinue(c.Request.Context(), step)
	if err != nil {
		h.registrationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type previousStepResponse struct {
	Step  domain.Step `json:"step"`
	Route string      `json:"route"`
}

// @Summary Go to previous step
// @Tags Registration
// @Description Navigate one step back without validation
// @ModuleID previousStep
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Success 200 {object} previousStepResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/steps/back [post]
func (h *Handler) previousStep(c *gin.Context) {
	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	step, err := coordinator.GoToPreviousStep(c.Request.Context())
	if err != nil {
		h.registrationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, previousStepResponse{Step: step, Route: domain.RouteForStep(step)})
}

// @Summary Jump to a step
// @Tags Registration
// @Description Navigate to any reachable step. The step being left is re-validated.
// @ModuleID goToStep
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Param step path string true "Target step name"
// @Success 200 {object} service.StepResult
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/steps/{step}/goto [post]
func (h *Handler) goToStep(c *gin.Context) {
	step := domain.Step(c.Param("step"))

	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	result, err := coordinator.GoToStep(c.Request.Context(), step)
	if err != nil {
		h.registrationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type availabilityRequest struct {
	Field string `json:"field" binding:"required,oneof=email phone"`
	Value string `json:"value" binding:"required"`
}

// @Summary Check field availability
// @Tags Registration
// @Description Immediate uniqueness check for email or phone, bypassing the debounce
// @ModuleID checkAvailability
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Param input body availabilityRequest true "Field and value"
// @Success 200 {object} domain.FieldAvailability
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/availability [post]
func (h *Handler) checkAvailability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, coordinator.CheckAvailability(c.Request.Context(), req.Field, req.Value))
}

// @Summary Get license verification status
// @Tags Registration
// @Description Current outcome of the professional license verification
// @ModuleID getVerification
// @Accept  json
// @Produce  json
// @Param X-Registration-Session header string true "Session ID"
// @Success 200 {object} domain.VerificationResult
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/verification [get]
func (h *Handler) getVerification(c *gin.Context) {
	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, coordinator.State().Verification)
}

// @Summary Download registration summary
// @Tags Registration
// @Description PDF review document of the current draft
// @ModuleID getSummaryPDF
// @Accept  json
// @Produce  application/pdf
// @Param X-Registration-Session header string true "Session ID"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Failure 500
// @Router /registration/summary.pdf [get]
func (h *Handler) getSummaryPDF(c *gin.Context) {
	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	state := coordinator.State()

	data, err := h.newPDFGenerator().GenerateRegistrationSummary(&state.Draft, &state.Progress, &state.Verification)
	if err != nil {
		logger.Error("generate registration summary failed", zap.Error(err))
		errorResponse(c, SummaryUnavailableCode)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="resumen-registro.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary Finalize registration
// @Tags Registration
// @Description Validate the whole draft and create the doctor profile
// @ModuleID finalize
// @Accept  json
// @Produce  json
// @Success 201 {object} service.SubmissionResult
// @Param X-Registration-Session header string true "Session ID"
// @Failure 400 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500
// @Router /registration/finalize [post]
func (h *Handler) finalize(c *gin.Context) {
	coordinator, ok := h.coordinator(c)
	if !ok {
		return
	}

	result, err := coordinator.SubmitRegistration(c.Request.Context())
	if err != nil {
		h.registrationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *Handler) registrationErrorResponse(c *gin.Context, err error) {
	var vfe *service.ValidationFailedError
	if errors.As(err, &vfe) {
		out := make([]ValidationError, len(vfe.Validation.Errors))
		for i, ferr := range vfe.Validation.Errors {
			out[i] = ValidationError{ferr.Field, ferr.Message}
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ValidationErrorStruct{
			ErrorCode:    6000,
			ErrorMessage: "Validation error",
			Errors:       out,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidStep):
		errorResponse(c, InvalidStepCode)
	case errors.Is(err, service.ErrStepNotReachable):
		errorResponse(c, StepNotReachableCode)
	case errors.Is(err, service.ErrAlreadyCompleted):
		conflictResponse(c, AlreadyCompletedCode)
	case errors.Is(err, service.ErrSubmissionInFlight):
		conflictResponse(c, SubmissionInFlightCode)
	case errors.Is(err, service.ErrDoctorExists):
		conflictResponse(c, DoctorAlreadyExistsCode)
	default:
		logger.Error("registration operation failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
