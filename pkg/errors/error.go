// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters and configuration
//   - Data errors (200-299): Empty or missing payloads from providers
//   - Indicator errors (300-399): Technical indicator calculation errors
//   - Upstream provider errors (400-499): Market data provider timeouts, transport failures, rejections
//   - AI provider errors (500-599): AI client configuration, request, and response errors
//   - Search provider errors (600-699): Symbol search configuration errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeNoData, "no quote data available")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeNoData, "no data available for %s", symbol)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeUpstreamUnreachable, "failed to fetch data", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeNoData) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError represents an error when there is not enough data
// for a calculation (e.g., indicator calculations requiring a minimum period).
type InsufficientDataError struct {
	Required int    // Minimum data points required
	Actual   int    // Actual data points available
	Message  string // Human-readable message
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(required, actual int, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Message:  message,
	}
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
// It uses errors.As to check the error chain.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}

// UpstreamRejectionError carries the provider-reported details of a rejected
// request: the upstream answered, but with a non-2xx status or a non-zero
// code in its response envelope. It is wrapped by an Error with
// ErrCodeUpstreamRejected so callers can surface the provider code.
type UpstreamRejectionError struct {
	ProviderCode int    // Numeric code reported by the provider
	HTTPStatus   int    // Upstream HTTP status
	Message      string // Provider-reported message
}

// NewUpstreamRejectionError creates a new UpstreamRejectionError.
func NewUpstreamRejectionError(providerCode, httpStatus int, message string) *UpstreamRejectionError {
	return &UpstreamRejectionError{
		ProviderCode: providerCode,
		HTTPStatus:   httpStatus,
		Message:      message,
	}
}

// Error implements the error interface.
func (e *UpstreamRejectionError) Error() string {
	return e.Message
}

// AsUpstreamRejection extracts an UpstreamRejectionError from err's chain.
func AsUpstreamRejection(err error) (*UpstreamRejectionError, bool) {
	var rejection *UpstreamRejectionError
	if errors.As(err, &rejection) {
		return rejection, true
	}

	return nil, false
}

// InvalidAIResponseError carries the raw text of an AI completion that could
// not be parsed into the expected JSON shape. It is wrapped by an Error with
// ErrCodeAIResponseInvalid so the request boundary can echo the raw response.
type InvalidAIResponseError struct {
	Raw   string // Raw response content returned by the AI provider
	Cause error  // Underlying parse error
}

// NewInvalidAIResponseError creates a new InvalidAIResponseError.
func NewInvalidAIResponseError(raw string, cause error) *InvalidAIResponseError {
	return &InvalidAIResponseError{
		Raw:   raw,
		Cause: cause,
	}
}

// Error implements the error interface.
func (e *InvalidAIResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid AI response: %v", e.Cause)
	}

	return "invalid AI response"
}

// Unwrap returns the underlying parse error.
func (e *InvalidAIResponseError) Unwrap() error {
	return e.Cause
}

// AsInvalidAIResponse extracts an InvalidAIResponseError from err's chain.
func AsInvalidAIResponse(err error) (*InvalidAIResponseError, bool) {
	var invalid *InvalidAIResponseError
	if errors.As(err, &invalid) {
		return invalid, true
	}

	return nil, false
}
