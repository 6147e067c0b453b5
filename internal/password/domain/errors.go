package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCharsetSelected is returned when every charset flag is off.
	ErrNoCharsetSelected = errors.New("at least one character type must be selected")
	// ErrEmptyInput is returned by the check flow for blank passwords.
	ErrEmptyInput = errors.New("please enter a password to check")
	// ErrTransport covers missing responses and bodies that match neither
	// the success nor the error shape of the generation contract.
	ErrTransport = errors.New("password service unreachable or returned a malformed response")
	// ErrCheckFailed covers every failure of the check request.
	ErrCheckFailed = errors.New("an error occurred while checking your password, please try again")
)

// ServiceError carries the service's own error message verbatim.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewTransportError wraps cause so that errors.Is(err, ErrTransport) holds.
func NewTransportError(cause error) error {
	return fmt.Errorf("%w: %v", ErrTransport, cause)
}

// NewCheckFailed wraps cause so that errors.Is(err, ErrCheckFailed) holds.
func NewCheckFailed(cause error) error {
	return fmt.Errorf("%w: %v", ErrCheckFailed, cause)
}
