package common

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError pairs a stable machine code with the HTTP status it maps to.
// Handlers wrap storage and queue failures in one so WriteError can render
// the canonical envelope without switching on error strings.
type APIError struct {
	Code    string
	Message string
	Status  int
	Details any
	cause   error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Errorf builds an APIError wrapping cause. A zero status maps to 500.
func Errorf(code string, status int, cause error, format string, args ...any) *APIError {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &APIError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
		cause:   cause,
	}
}

// AsAPIError extracts an APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var target *APIError
	ok := errors.As(err, &target)
	return target, ok
}
