package flow

import "errors"

var (
	// ErrInvalidTransition is returned when an intent is not valid on the
	// current screen or its guard fails. Nothing is changed.
	ErrInvalidTransition = errors.New("flow: invalid transition")
	ErrTaskNotFound      = errors.New("flow: task not found")
	ErrNoProfile         = errors.New("flow: no profile")
	// ErrPersistence wraps store failures. Callers treat it as fatal.
	ErrPersistence = errors.New("flow: persistence failure")
)
