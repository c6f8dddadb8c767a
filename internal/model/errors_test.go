package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainErrorFormatting(t *testing.T) {
	err := NewError(CodeConfigNotResolved, "no active config found")
	want := "CONFIG_NOT_RESOLVED: no active config found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFieldErrorsDeterministicOrder(t *testing.T) {
	err := NewFieldErrors(map[string]string{
		"MISSING_TENANT_ID": "tenant id is required",
		"MISSING_CODE":      "code is required",
	})
	want := "VALIDATION_ERROR: validation failed (MISSING_CODE: code is required; MISSING_TENANT_ID: tenant id is required)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestHasCode(t *testing.T) {
	err := NewError(CodeRevisionMismatch, "expected revision 2 but current is 3")
	if !HasCode(err, CodeRevisionMismatch) {
		t.Error("HasCode should match the error's own code")
	}
	if HasCode(err, CodeConfigNotFound) {
		t.Error("HasCode should not match a different code")
	}
	// Wrapped errors still match.
	wrapped := fmt.Errorf("update entry: %w", err)
	if !HasCode(wrapped, CodeRevisionMismatch) {
		t.Error("HasCode should unwrap")
	}
	if HasCode(errors.New("plain"), CodeRevisionMismatch) {
		t.Error("plain errors should not match")
	}
}

func TestAsDomainError(t *testing.T) {
	if AsDomainError(errors.New("plain")) != nil {
		t.Error("plain error should not convert")
	}
	de := NewError(CodeDuplicateConfig, "already exists")
	if got := AsDomainError(fmt.Errorf("create: %w", de)); got == nil || got.Code != CodeDuplicateConfig {
		t.Errorf("AsDomainError = %v", got)
	}
}
