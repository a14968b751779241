// Package errors provides structured error types for the fanout application.
//
// Domain packages (pkg/dag, pkg/dag/count) return plain sentinel errors; this
// package wraps them with machine-readable codes at the CLI and API boundary,
// enabling:
//   - Consistent error handling across CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNode, "no node %q in graph", id)
//	if errors.Is(err, errors.ErrCodeUnknownNode) {
//	    // Handle the bad query
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCyclicGraph, origErr, "graph %q", name)
package errors

import (
	"errors"
	"fmt"

	"github.com/matzehuels/fanout/pkg/dag"
	"github.com/matzehuels/fanout/pkg/dag/count"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Graph construction errors
	ErrCodeDuplicateEdge Code = "DUPLICATE_EDGE"

	// Query errors
	ErrCodeUnknownNode    Code = "UNKNOWN_NODE"
	ErrCodeCyclicGraph    Code = "CYCLIC_GRAPH"
	ErrCodeOrderViolation Code = "ORDER_VIOLATION"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeGraphNotFound Code = "GRAPH_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FromDomain classifies a sentinel error from the engine packages into a
// coded Error. Unrecognized errors become ErrCodeInternal: an error the
// boundary cannot name is by definition unexpected.
func FromDomain(err error) *Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, dag.ErrDuplicateEdge):
		return Wrap(ErrCodeDuplicateEdge, err, "edge already exists")
	case errors.Is(err, dag.ErrSelfLoop), errors.Is(err, dag.ErrInvalidNodeID),
		errors.Is(err, dag.ErrDuplicateNodeID):
		return Wrap(ErrCodeInvalidInput, err, "invalid graph input")
	case errors.Is(err, dag.ErrUnknownNode):
		return Wrap(ErrCodeUnknownNode, err, "query references a node absent from the graph")
	case errors.Is(err, dag.ErrGraphHasCycle):
		return Wrap(ErrCodeCyclicGraph, err, "graph is not acyclic")
	case errors.Is(err, count.ErrOrderViolation):
		return Wrap(ErrCodeOrderViolation, err, "propagation order does not increase along every edge")
	default:
		return Wrap(ErrCodeInternal, err, "unexpected error")
	}
}
