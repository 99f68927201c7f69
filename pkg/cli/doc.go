/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the cmdchain command line interface: loading a
// declarative surface definition, walking a chain of calls against the
// compiled tree, and printing the resulting token sequence or the tree's
// introspection document.
package cli
