// Package chain records invocation chains — the call path from a compiled
// surface's root down to the currently active node — and flattens them back
// into argv token sequences.
package chain
