package types

import (
	"errors"
	"fmt"
	"net/http"
)

// CheckInError is the caller-facing error taxonomy of the check-in workflow.
// Every failure leaves the scanning session usable; none of these are fatal.
type CheckInError struct {
	Code    string
	Message string
	cause   error
}

func (e *CheckInError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

func (e *CheckInError) Unwrap() error {
	return e.cause
}

// Is matches on the taxonomy code so wrapped instances compare equal to the sentinels.
func (e *CheckInError) Is(target error) bool {
	var t *CheckInError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithCause returns a copy carrying the underlying storage error.
func (e *CheckInError) WithCause(cause error) *CheckInError {
	return &CheckInError{Code: e.Code, Message: e.Message, cause: cause}
}

// HTTPStatus maps a taxonomy code to the response status used by the handlers.
func (e *CheckInError) HTTPStatus() int {
	switch e.Code {
	case "INVALID_CODE", "INVALID_CODE_FORMAT":
		return http.StatusBadRequest
	case "VISITOR_NOT_FOUND":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrInvalidCode         = &CheckInError{Code: "INVALID_CODE", Message: "scanned code is empty"}
	ErrInvalidCodeFormat   = &CheckInError{Code: "INVALID_CODE_FORMAT", Message: "scanned code is not a visitor ID"}
	ErrVisitorNotFound     = &CheckInError{Code: "VISITOR_NOT_FOUND", Message: "no visitor found for this code"}
	ErrScanWriteFailed     = &CheckInError{Code: "SCAN_WRITE_FAILED", Message: "could not record the scan"}
	ErrVisitorUpdateFailed = &CheckInError{Code: "VISITOR_UPDATE_FAILED", Message: "could not update the visitor status"}
	ErrLookupFailed        = &CheckInError{Code: "LOOKUP_FAILED", Message: "lookup failed, try scanning again"}
)

// AsCheckInError extracts a *CheckInError, or wraps an unknown error as LOOKUP_FAILED.
func AsCheckInError(err error) *CheckInError {
	var ce *CheckInError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrLookupFailed.WithCause(err)
}
