package booking

import "fmt"

// Error codes for booking failures.
const (
	CodeUpstreamUnavailable = "upstreamUnavailable"
	CodeMalformedRequest    = "malformedRequest"
	CodeSchedulingConflict  = "schedulingConflict"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewUpstreamError(msg string) error {
	return &BookingError{
		Code:    CodeUpstreamUnavailable,
		Message: msg,
	}
}

func NewMalformedRequestError(msg string) error {
	return &BookingError{
		Code:    CodeMalformedRequest,
		Message: msg,
	}
}

func NewSchedulingConflictError(msg string) error {
	return &BookingError{
		Code:    CodeSchedulingConflict,
		Message: msg,
	}
}
