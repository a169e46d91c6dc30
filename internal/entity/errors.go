package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers missing records and nested-path scope mismatches
	// (a comment requested under a review that belongs to another title).
	ErrNotFound = errors.New("not found")

	// ErrConflict is a storage-level uniqueness violation surfaced when two
	// requests race past application validation.
	ErrConflict = errors.New("already exists")

	// ErrForbidden means the requester is authenticated but lacks the role
	// or ownership the operation demands.
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// ValidationError carries per-field failures collected before any
// persistence attempt.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
