package model

import (
	"errors"
	"sort"
	"strings"
)

// Stable machine-readable codes for domain failures. Persistence-layer
// errors are not mapped to these; they propagate as infrastructure failures.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeDuplicateConfig      = "DUPLICATE_CONFIG"
	CodeDuplicateConfigSet   = "DUPLICATE_CONFIG_SET"
	CodeConfigNotFound       = "CONFIG_NOT_FOUND"
	CodeConfigSetNotFound    = "CONFIG_SET_NOT_FOUND"
	CodeEntryNotFound        = "ENTRY_NOT_FOUND"
	CodeConfigNotResolved    = "CONFIG_NOT_RESOLVED"
	CodeRevisionMismatch     = "REVISION_MISMATCH"
	CodeTemplateNotFound     = "TEMPLATE_NOT_FOUND"
	CodeTemplateContentEmpty = "TEMPLATE_CONTENT_EMPTY"
	CodeInvalidContent       = "INVALID_CONTENT"
	CodeSchemaValidation     = "SCHEMA_VALIDATION"
)

// DomainError is a typed domain failure carrying a stable code and,
// for validation failures, a field-code → message map. It propagates to the
// caller unmodified; no retries happen below the transport layer.
type DomainError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewError returns a DomainError with a single code and message.
func NewError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewFieldErrors returns a VALIDATION_ERROR aggregating per-field failures.
// The map keys are themselves stable codes (e.g. MISSING_TENANT_ID,
// SCHEMA_VALIDATION_amount).
func NewFieldErrors(fields map[string]string) *DomainError {
	return &DomainError{
		Code:    CodeValidationError,
		Message: "validation failed",
		Fields:  fields,
	}
}

// Error formats the failure as "CODE: message" followed by any field errors
// in deterministic (sorted) order.
func (e *DomainError) Error() string {
	var b strings.Builder
	b.WriteString(e.Code)
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + e.Fields[k]
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	return b.String()
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// AsDomainError unwraps err into a *DomainError, or returns nil.
func AsDomainError(err error) *DomainError {
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
