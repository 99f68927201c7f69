package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownParameter, "unknown argument 'foo'")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeUnknownParameter {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownParameter, err.Code)
	}
	if err.Message != "unknown argument 'foo'" {
		t.Errorf("expected message 'unknown argument 'foo'', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidSource, "surface decode failed", cause)

	if err.Code != ErrCodeInvalidSource {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidSource, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("not a string")
	ctx := map[string]interface{}{
		"parameter": "metadata",
		"expected":  "string",
	}

	err := WrapWithContext(ErrCodeTypeMismatch, "binding failed", cause, ctx)

	if err.Code != ErrCodeTypeMismatch {
		t.Errorf("expected code %s, got %s", ErrCodeTypeMismatch, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["parameter"] != "metadata" {
		t.Errorf("expected parameter to be metadata")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeMissingRequired, "missing argument: tags is required"),
			expected: "[MISSING_REQUIRED] missing argument: tags is required",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeMalformedTree, "compile failed", errors.New("root cause")),
			expected: "[MALFORMED_TREE] compile failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{
			name:     "direct structured error",
			err:      New(ErrCodeInvalidRootAccess, "not a root"),
			expected: ErrCodeInvalidRootAccess,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("outer: %w", New(ErrCodeExecutorUnset, "no executor")),
			expected: ErrCodeExecutorUnset,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
