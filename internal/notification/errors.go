package notification

import (
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION"
	CodeNotConfigured Code = "NOT_CONFIGURED"
	CodeInternal      Code = "INTERNAL"
	CodeTooLarge      Code = "TOO_LARGE"
)

const (
	msgNoRecipients   = "No email addresses provided"
	msgBlankRecipient = "Email addresses must be non-empty strings"
	msgSubjectMessage = "Subject and message are required"
	msgInvalidType    = "Invalid notification type"
	msgNotConfigured  = "Email service not configured"
	msgInternal       = "Internal server error"
	msgTooLarge       = "Request body too large"
)

// Error is a batch-level dispatch failure. Per-recipient failures are never
// reported through it.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// TooLargeError reports a request body over the accepted size.
func TooLargeError(err error) *Error {
	return &Error{Code: CodeTooLarge, Message: msgTooLarge, Err: err}
}

func validationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

func internalError(err error) *Error {
	return &Error{Code: CodeInternal, Message: msgInternal, Err: err}
}
