package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// -- Resource State --
	ErrNotFound             = errors.New("resource not found")
	ErrEquipmentUnavailable = errors.New("equipment is no longer available")
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrAlreadyExists        = errors.New("resource already exists")

	// -- Authentication/Authorization --
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports malformed or missing request fields. It is raised
// before any persistence happens.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ConflictError marks a lost optimistic-concurrency race: either an
// availability flip or a status transition found the record in a different
// state than expected. The caller may refresh and retry.
type ConflictError struct {
	Reason string
	Err    error
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conflict: %s: %v", e.Reason, e.Err)
	}
	return "conflict: " + e.Reason
}

func (e *ConflictError) Unwrap() error { return e.Err }
