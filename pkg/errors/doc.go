// Package errors provides structured error types for programmatic error
// handling across the module.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeTypeMismatch,
//	    "invalid value for 'max-workers'",
//	    map[string]interface{}{
//	        "parameter": "max-workers",
//	        "expected":  "int (number)",
//	    },
//	)
package errors
