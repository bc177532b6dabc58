package model

import (
	"errors"
	"sort"
)

// Error codes surfaced by the record API.
const (
	// CodeEntityDeleted marks a delete of an already-deleted record.
	// Rollback treats it as success.
	CodeEntityDeleted = "ENTITY_IS_DELETED"
)

// ErrorDetail is one structured error from the record API.
type ErrorDetail struct {
	Code    string
	Message string
}

// RecordError is the structured failure shape of every record operation:
// zero or more row-level errors, zero or more field-level errors keyed by
// field API name, and a generic fallback message.
type RecordError struct {
	FieldErrors map[string][]ErrorDetail
	Op          string
	Message     string
	RowErrors   []ErrorDetail
}

func (e *RecordError) Error() string {
	if e.Op != "" {
		return e.Op + ": " + e.UserMessage()
	}
	return e.UserMessage()
}

// UserMessage picks the most specific message available: the first
// row-level error, then the first field-level error, then the generic
// message. Field keys are walked in sorted order so the choice is
// deterministic.
func (e *RecordError) UserMessage() string {
	if len(e.RowErrors) > 0 && e.RowErrors[0].Message != "" {
		return e.RowErrors[0].Message
	}
	if len(e.FieldErrors) > 0 {
		keys := make([]string, 0, len(e.FieldErrors))
		for k := range e.FieldErrors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if details := e.FieldErrors[k]; len(details) > 0 && details[0].Message != "" {
				return details[0].Message
			}
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return "An unexpected error occurred"
}

// Code returns the code of the first row-level error, if any.
func (e *RecordError) Code() string {
	if len(e.RowErrors) > 0 {
		return e.RowErrors[0].Code
	}
	return ""
}

// IsEntityDeleted reports whether err is a record error for an entity that
// no longer exists.
func IsEntityDeleted(err error) bool {
	var re *RecordError
	return errors.As(err, &re) && re.Code() == CodeEntityDeleted
}

// UserMessageOf extracts the most specific message from any error,
// falling back to err.Error() for unstructured failures.
func UserMessageOf(err error) string {
	var re *RecordError
	if errors.As(err, &re) {
		return re.UserMessage()
	}
	return err.Error()
}
