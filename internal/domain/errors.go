package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine operations
var (
	// ErrEngineOffline indicates the engine service is unreachable
	ErrEngineOffline = errors.New("engine is unreachable")

	// ErrModelNotFound indicates the requested model does not exist
	ErrModelNotFound = errors.New("model not found")

	// ErrNothingStaged indicates commit was called with no delete target staged
	ErrNothingStaged = errors.New("no model staged for deletion")
)

// ServiceError is a non-2xx application error from the engine.
// Detail is surfaced to the user verbatim.
type ServiceError struct {
	Status int
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("engine returned status %d", e.Status)
}

// ValidationError is a client-side precondition failure. It blocks the
// action before any request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
