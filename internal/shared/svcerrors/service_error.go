package svcerrors

import (
	"errors"
	"fmt"
)

const (
	categoryConfiguration = "configuration"
	categoryIO            = "io"
	categoryDecode        = "decode"
	categoryProvider      = "provider"
	categoryInternal      = "internal"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// Process exit codes used by the CLI.
const (
	ExitCodeFailure       = 1
	ExitCodeConfiguration = 2
)

// NewConfigurationError creates a new ServiceError with category configuration.
// Configuration errors are fatal: they abort a report run before any file is read.
func NewConfigurationError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category: categoryConfiguration,
		Code:     code,
		Message:  message,
		Cause:    cause,
		ExitCode: ExitCodeConfiguration,
	}
}

// NewIOError creates a new ServiceError with category io.
func NewIOError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category: categoryIO,
		Code:     code,
		Message:  message,
		Cause:    cause,
		ExitCode: ExitCodeFailure,
	}
}

// NewDecodeError creates a new ServiceError with category decode.
func NewDecodeError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category: categoryDecode,
		Code:     code,
		Message:  message,
		Cause:    cause,
		ExitCode: ExitCodeFailure,
	}
}

// NewProviderError creates a new ServiceError with category provider.
func NewProviderError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category: categoryProvider,
		Code:     code,
		Message:  message,
		Cause:    cause,
		ExitCode: ExitCodeFailure,
	}
}

// NewInternalError creates a new ServiceError with category internal.
func NewInternalError(code string, cause error) *ServiceError {
	return &ServiceError{
		Category: categoryInternal,
		Code:     code,
		Message:  "internal error",
		Cause:    cause,
		ExitCode: ExitCodeFailure,
	}
}

// NewInternalErrorUndefined creates a new ServiceError with category internal and code SYS_9001.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

// PanicToError converts a recovered panic value into an error.
func PanicToError(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("%v", p)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError represents a categorised error with a stable code, message, and cause.
// It implements the error interface and supports error wrapping.
type ServiceError struct {
	Category string // configuration, io, decode, provider or internal
	Code     string // package-owned stable code (e.g. RUL_1000)
	Message  string // human-readable, names the offending rule/property/file
	Cause    error  // wrapped underlying error
	ExitCode int    // process exit code when the error ends a run
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil && e.Category != categoryInternal {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsConfigurationError() bool {
	return e.Category == categoryConfiguration
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

// ExitCodeOf maps an error to a process exit code.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if svcErr, ok := AsServiceError(err); ok {
		return svcErr.ExitCode
	}
	return ExitCodeFailure
}
