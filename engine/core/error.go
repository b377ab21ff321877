package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes shared across the engine. Per-package operations attach
// structured details (recipe id, layer index, expression, category, ...) so
// callers and logs never lose the failing item.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeMapping         = "MAPPING_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeEvaluation      = "EVALUATION_ERROR"
	CodeColorResolution = "COLOR_RESOLUTION_ERROR"
)

// Error is the engine's structured error type: a stable code, optional
// structured details, and an optional wrapped cause.
type Error struct {
	Code    string
	Details map[string]any
	err     error
}

// NewError creates a structured Error wrapping err (which may be nil).
func NewError(err error, code string, details map[string]any) *Error {
	return &Error{Code: code, Details: details, err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	if e.err != nil {
		b.WriteString(": ")
		b.WriteString(e.err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsCode reports whether err (or any error it wraps) is a *Error carrying
// the given code.
func IsCode(err error, code string) bool {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Code == code
	}
	return false
}

// Detail returns a named detail from err when err is a *Error, or nil.
func Detail(err error, key string) any {
	var coreErr *Error
	if errors.As(err, &coreErr) {
		return coreErr.Details[key]
	}
	return nil
}
