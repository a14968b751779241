package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeID validates a node identifier supplied by a user.
// It rejects IDs that could not have come from a well-formed graph file.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No whitespace (IDs are whitespace-separated in the text format)
//   - Maximum length of 256 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node ID cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node ID too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node ID contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "node ID cannot contain whitespace: %q", id)
		}
	}

	if strings.Contains(id, ":") {
		return New(ErrCodeInvalidInput, "node ID cannot contain %q", ":")
	}

	return nil
}

// graphNameRegex matches valid stored-graph names.
var graphNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateGraphName validates the name under which a graph is stored.
// It ensures the name is a simple identifier without path components, so it
// is safe to use in cache keys and file names.
func ValidateGraphName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "graph name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "graph name too long (max 128 characters)")
	}

	if !graphNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid graph name: %q", name)
	}

	return nil
}
