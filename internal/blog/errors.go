package blog

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both missing records and records the viewer may not see.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPage is returned for a non-numeric page or a page below 1.
	ErrInvalidPage = errors.New("invalid page")
	// ErrPermissionDenied is returned when a non-owner tries to mutate a record.
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthorized     = errors.New("authentication required")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
)

// ValidationError carries per-field messages keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

func newFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
