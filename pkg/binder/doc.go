// Package binder validates caller-supplied argument values against a node's
// parameter declarations and produces normalized bindings.
//
// A Binding keeps positional values in declaration order and flag values
// keyed by their emitted name, with cardinality preserved: scalars hold one
// token, repeatable parameters hold the full supplied sequence, and boolean
// flags are presence-only markers. Binding and its inputs are immutable, so
// Bind is safe to call concurrently.
package binder
