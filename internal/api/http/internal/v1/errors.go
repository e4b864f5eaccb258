package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	DoctorAlreadyExistsCode    = 1001
	DoctorAlreadyExistsMessage = "doctor already exists"
	SessionHeaderMissingCode   = 1002
	SessionHeaderMissingMessage = "registration session header missing or invalid"

	InvalidStepCode           = 2001
	InvalidStepMessage        = "unknown registration step"
	StepNotReachableCode      = 2002
	StepNotReachableMessage   = "step not reachable yet"
	AlreadyCompletedCode      = 2003
	AlreadyCompletedMessage   = "registration already completed"
	SubmissionInFlightCode    = 2004
	SubmissionInFlightMessage = "submission already in progress"

	SummaryUnavailableCode    = 3001
	SummaryUnavailableMessage = "summary document unavailable"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case DoctorAlreadyExistsCode:
		errorStruct.ErrorCode = DoctorAlreadyExistsCode
		errorStruct.ErrorMessage = DoctorAlreadyExistsMessage
	case SessionHeaderMissingCode:
		errorStruct.ErrorCode = SessionHeaderMissingCode
		errorStruct.ErrorMessage = SessionHeaderMissingMessage
	case InvalidStepCode:
		errorStruct.ErrorCode = InvalidStepCode
		errorStruct.ErrorMessage = InvalidStepMessage
	case StepNotReachableCode:
		errorStruct.ErrorCode = StepNotReachableCode
		errorStruct.ErrorMessage = StepNotReachableMessage
	case AlreadyCompletedCode:
		errorStruct.ErrorCode = AlreadyCompletedCode
		errorStruct.ErrorMessage = AlreadyCompletedMessage
	case SubmissionInFlightCode:
		errorStruct.ErrorCode = SubmissionInFlightCode
		errorStruct.ErrorMessage = SubmissionInFlightMessage
	case SummaryUnavailableCode:
		errorStruct.ErrorCode = SummaryUnavailableCode
		errorStruct.ErrorMessage = SummaryUnavailableMessage
	}

	return errorStruct
}
