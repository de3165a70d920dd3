// Package apperr holds the error kinds shared by every ledger component.
// Callers wrap a kind with context via fmt.Errorf("...: %w", apperr.ErrX)
// and match with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrIntegrity    = errors.New("integrity violation")
	ErrPermission   = errors.New("permission denied")
)

// Validation returns an ErrValidation carrying msg.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// InvalidState returns an ErrInvalidState carrying msg.
func InvalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// IntegrityError blocks a delete while dependent rows still exist.
type IntegrityError struct {
	Entity     string
	Dependents map[string]int64
}

func (e *IntegrityError) Error() string {
	names := make([]string, 0, len(e.Dependents))
	for name := range e.Dependents {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%d %s", e.Dependents[name], name))
	}

	return fmt.Sprintf("%s: cannot delete %s, it has %s", ErrIntegrity, e.Entity, strings.Join(parts, ", "))
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

// Blocked returns an *IntegrityError when any dependent count is non-zero,
// nil otherwise.
func Blocked(entity string, dependents map[string]int64) error {
	blocking := make(map[string]int64)

	for name, n := range dependents {
		if n > 0 {
			blocking[name] = n
		}
	}

	if len(blocking) == 0 {
		return nil
	}

	return &IntegrityError{Entity: entity, Dependents: blocking}
}

// Kind reports the sentinel err matches, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrInvalidState, ErrIntegrity, ErrPermission} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}
