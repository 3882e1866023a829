package booking

import "fmt"

// PreconditionError blocks a submission before any dispatch call is made.
type PreconditionError struct {
	Code    string
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

func NewPreconditionError(msg string) error {
	return &PreconditionError{
		Code:    "preconditionError",
		Message: msg,
	}
}

// ValidationError wraps a failed gate result when a caller needs an error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}
