// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeUnknownTypeKind indicates the surface metadata references a
	// parameter type kind with no registered semantic type. Configuration
	// error: compilation of the whole tree aborts.
	ErrCodeUnknownTypeKind ErrorCode = "UNKNOWN_TYPE_KIND"
	// ErrCodeMalformedTree indicates a node in the surface metadata is
	// neither a recognized group nor a command, or is otherwise ambiguous.
	ErrCodeMalformedTree ErrorCode = "MALFORMED_TREE"
	// ErrCodeInvalidSource indicates the surface metadata could not be
	// decoded at all.
	ErrCodeInvalidSource ErrorCode = "INVALID_SOURCE"
	// ErrCodeUnknownParameter indicates a caller supplied an argument whose
	// name matches no declaration on the invoked node.
	ErrCodeUnknownParameter ErrorCode = "UNKNOWN_PARAMETER"
	// ErrCodeTypeMismatch indicates a supplied value failed the structural
	// check against the declared semantic type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeMissingRequired indicates a required declaration received no
	// value.
	ErrCodeMissingRequired ErrorCode = "MISSING_REQUIRED"
	// ErrCodeInvalidRootAccess indicates root-level parameter materialization
	// was requested somewhere other than the chain root.
	ErrCodeInvalidRootAccess ErrorCode = "INVALID_ROOT_ACCESS"
	// ErrCodeInvalidMember indicates a member lookup or invocation that does
	// not match the tree: no such child, or a command invoked as a group.
	ErrCodeInvalidMember ErrorCode = "INVALID_MEMBER"
	// ErrCodeExecutorUnset indicates an execution hand-off was requested on a
	// builder compiled without an executor.
	ErrCodeExecutorUnset ErrorCode = "EXECUTOR_UNSET"
)

// StructuredError provides structured error information for programmatic
// handling: a code, a human-readable message, the underlying cause, and
// optional context for diagnostics.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Returns an empty code when err carries no StructuredError.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
