package errors

import (
	"errors"
	"testing"

	"github.com/matzehuels/fanout/pkg/dag"
	"github.com/matzehuels/fanout/pkg/dag/count"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeCyclicGraph, cause, "failed to validate")

	if err.Code != ErrCodeCyclicGraph {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCyclicGraph)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeCyclicGraph,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeCyclicGraph, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeCyclicGraph,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeUnknownNode, "test"),
			expected: ErrCodeUnknownNode,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "cycle",
			err:      dag.ErrGraphHasCycle,
			expected: ErrCodeCyclicGraph,
		},
		{
			name:     "unknown node",
			err:      dag.ErrUnknownNode,
			expected: ErrCodeUnknownNode,
		},
		{
			name:     "duplicate edge",
			err:      dag.ErrDuplicateEdge,
			expected: ErrCodeDuplicateEdge,
		},
		{
			name:     "self loop",
			err:      dag.ErrSelfLoop,
			expected: ErrCodeInvalidInput,
		},
		{
			name:     "order violation",
			err:      count.ErrOrderViolation,
			expected: ErrCodeOrderViolation,
		},
		{
			name:     "unclassified",
			err:      errors.New("something else"),
			expected: ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			if got.Code != tt.expected {
				t.Errorf("FromDomain().Code = %v, want %v", got.Code, tt.expected)
			}
			if !errors.Is(got, tt.err) {
				t.Error("FromDomain() does not wrap the original error")
			}
		})
	}

	if got := FromDomain(nil); got != nil {
		t.Errorf("FromDomain(nil) = %v, want nil", got)
	}
}

func TestFromDomain_WrappedSentinel(t *testing.T) {
	// Sentinels arrive wrapped with context from the engine packages.
	err := Wrap(ErrCodeInternal, dag.ErrUnknownNode, "query failed")

	if got := FromDomain(errors.Unwrap(err)); got.Code != ErrCodeUnknownNode {
		t.Errorf("FromDomain().Code = %v, want %v", got.Code, ErrCodeUnknownNode)
	}
}
