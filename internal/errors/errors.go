package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Error kinds surfaced by the engine and the service around it.
var (
	ErrInvalidConfiguration = new(ErrCodeInvalidConfiguration, "invalid configuration")
	ErrInvalidInput         = new(ErrCodeInvalidInput, "invalid input")
	ErrNotFound             = new(ErrCodeNotFound, "resource not found")
	ErrUnauthorized         = new(ErrCodeUnauthorized, "unauthorized")
	ErrDatabase             = new(ErrCodeDatabase, "database error")
	ErrSystem               = new(ErrCodeSystemError, "system error")

	statusCodeMap = map[error]int{
		ErrInvalidConfiguration: http.StatusUnprocessableEntity,
		ErrInvalidInput:         http.StatusBadRequest,
		ErrNotFound:             http.StatusNotFound,
		ErrUnauthorized:         http.StatusUnauthorized,
		ErrDatabase:             http.StatusInternalServerError,
		ErrSystem:               http.StatusInternalServerError,
	}
)

const (
	ErrCodeInvalidConfiguration = "invalid_configuration"
	ErrCodeInvalidInput         = "invalid_input"
	ErrCodeNotFound             = "not_found"
	ErrCodeUnauthorized         = "unauthorized"
	ErrCodeDatabase             = "database_error"
	ErrCodeSystemError          = "system_error"
)

// InternalError is a sentinel error kind identified by its code.
type InternalError struct {
	Code    string
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any InternalError carrying the same code.
func (e *InternalError) Is(target error) bool {
	t, ok := target.(*InternalError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{Code: code, Message: message}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Code returns the machine-readable code of the first sentinel err is marked with.
func Code(err error) string {
	for sentinel := range statusCodeMap {
		if errors.Is(err, sentinel) {
			return sentinel.(*InternalError).Code
		}
	}
	return ErrCodeSystemError
}

// HTTPStatusFromErr maps an error kind to an HTTP status code.
func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
