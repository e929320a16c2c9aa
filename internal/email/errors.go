package email

import "fmt"

// These constants mirror domain error codes to avoid circular imports.
const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

// EmailError represents an email-specific error with a code and message.
type EmailError struct {
	Code    string
	Message string
}

func (e *EmailError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *EmailError) ErrorCode() string {
	return e.Code
}

func newEmailError(code, message string) *EmailError {
	return &EmailError{Code: code, Message: message}
}

var (
	// ErrNoRecipients is returned when a message has an empty To list.
	ErrNoRecipients = newEmailError(codeInvalid, "Email has no recipients")

	// ErrInvalidFromAddress is returned when the from address is invalid.
	ErrInvalidFromAddress = newEmailError(codeInvalid, "Invalid from email address")

	// ErrInvalidToAddress is returned when a recipient address is invalid.
	ErrInvalidToAddress = newEmailError(codeInvalid, "Invalid to email address")
)

// TransportError records a failed delivery attempt. It is logged and reported
// by Transport and never returned to whoever scheduled the message.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the error code for HTTP status mapping.
func (e *TransportError) ErrorCode() string {
	return codeInternal
}
