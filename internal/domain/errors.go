package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream error")
	ErrStore        = errors.New("store error")
	ErrConfig       = errors.New("configuration error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ---------------------------------------------------------------------------
// Authentication
// ---------------------------------------------------------------------------

// AuthFailure classifies why a bearer credential was rejected.
type AuthFailure int

const (
	AuthInvalid AuthFailure = iota
	AuthExpired
	AuthRevoked
	AuthUnreachable
)

func (k AuthFailure) String() string {
	switch k {
	case AuthExpired:
		return "expired"
	case AuthRevoked:
		return "revoked"
	case AuthUnreachable:
		return "unreachable"
	default:
		return "invalid"
	}
}

// AuthError is returned by the identity verifier. Message is safe to show
// to the caller; Err carries the internal cause for logs.
type AuthError struct {
	Kind AuthFailure
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Kind, e.Err)
	}
	return "auth " + e.Kind.String()
}

func (e *AuthError) Unwrap() error { return ErrUnauthorized }

// Message returns the user-facing remediation text for the failure kind.
func (e *AuthError) Message() string {
	switch e.Kind {
	case AuthExpired:
		return "Token has expired. Please sign in again."
	case AuthRevoked:
		return "Token has been revoked. Please sign in again."
	case AuthUnreachable:
		return "Could not verify credentials."
	default:
		return "Invalid authentication token."
	}
}

// NewAuthError creates an AuthError of the given kind.
func NewAuthError(kind AuthFailure, cause error) *AuthError {
	return &AuthError{Kind: kind, Err: cause}
}

// ---------------------------------------------------------------------------
// Upstream inference
// ---------------------------------------------------------------------------

// UpstreamFailure classifies an inference backend failure.
type UpstreamFailure int

const (
	// InferenceUnavailable: the backend could not be reached or timed out.
	InferenceUnavailable UpstreamFailure = iota
	// InferenceRejected: the backend answered with a non-success status or flag.
	InferenceRejected
)

// UpstreamError is the single error channel of every inference client.
// StatusCode is zero when no HTTP response was received.
type UpstreamError struct {
	Kind       UpstreamFailure
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("inference error (%d): %s", e.StatusCode, e.Message)
	}
	return "inference error: " + e.Message
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// ---------------------------------------------------------------------------
// Store
// ---------------------------------------------------------------------------

// StoreOp names the kind of store access that failed.
type StoreOp string

const (
	StoreWrite StoreOp = "write"
	StoreRead  StoreOp = "read"
)

// StoreError wraps a persistence failure. errors.Is matches both ErrStore
// and the underlying cause.
type StoreError struct {
	Op  StoreOp
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }

// NewStoreError creates a StoreError. A nil cause returns nil.
func NewStoreError(op StoreOp, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// ConfigError reports a malformed startup source, e.g. the use-case file.
type ConfigError struct {
	Source   string
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Source, strings.Join(e.Problems, "; "))
}

func (e *ConfigError) Unwrap() error { return ErrConfig }
