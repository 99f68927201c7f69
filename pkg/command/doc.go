// Package command models a CLI surface as an immutable command tree: groups
// containing named children, leaf commands carrying ordered parameter
// declarations.
//
// Trees are compiled from one of two metadata sources — a urfave/cli
// command definition (FromCLI) or a declarative YAML document (FromYAML) —
// and never mutated afterwards, so a compiled tree is safe to share across
// any number of concurrent builders.
//
// The package-level registry memoizes compilation per source identity
// (content hash or structural fingerprint, never pointer identity):
//
//	node, err := command.Load(command.YAMLSource(data))
//
// ResetRegistry clears the cache for test isolation.
package command
