package util

import (
	"errors"
	"fmt"
)

// ErrorCode classifies domain errors
type ErrorCode string

const (
	CodeNotSupported    ErrorCode = "NOT_SUPPORTED"
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// Context keys used with AddContext
const (
	CtxPath     = "path"
	CtxLanguage = "language"
	CtxSample   = "sample"
)

// DomainError is an error with a stable code and optional context
type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]any
}

// WithContext attaches a key/value pair to the error
func (e *DomainError) WithContext(key string, value any) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if len(e.Context) > 0 {
		msg += fmt.Sprintf(" %v", e.Context)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a domain error with the same code and message,
// so copies made by AddContext still match their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewError creates a domain error with the given code
func NewError(code ErrorCode, msg string) *DomainError {
	return &DomainError{Code: code, Message: msg}
}

// WrapError wraps err in a domain error with the given code
func WrapError(err error, code ErrorCode, msg string) error {
	return &DomainError{Code: code, Message: msg, Err: err}
}

// AddContext returns err with key/value context attached. Errors that are
// not domain errors are wrapped as internal errors. Shared sentinel errors
// are copied rather than mutated.
func AddContext(err error, key string, value any) error {
	var de *DomainError
	if errors.As(err, &de) {
		clone := &DomainError{Code: de.Code, Message: de.Message, Err: de.Err}
		for k, v := range de.Context {
			clone.WithContext(k, v)
		}
		return clone.WithContext(key, value)
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "wrapped error",
		Err:     err,
		Context: map[string]any{key: value},
	}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
