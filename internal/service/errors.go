package service

import "errors"

var (
	ErrInvalidStep        = errors.New("unknown registration step")
	ErrStepNotReachable   = errors.New("step not reachable yet")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrAlreadyCompleted   = errors.New("registration already completed")
	ErrDoctorExists       = errors.New("doctor already registered")
)
