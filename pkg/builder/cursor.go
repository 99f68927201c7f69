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

package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/NVIDIA/cmdchain/pkg/binder"
	"github.com/NVIDIA/cmdchain/pkg/chain"
	"github.com/NVIDIA/cmdchain/pkg/command"
	"github.com/NVIDIA/cmdchain/pkg/errors"
)

// Member describes one invocable child of the current cursor position.
type Member struct {
	Name string
	Kind command.NodeKind
}

// Cursor is one position in an invocation chain. A cursor is immutable:
// Descend and Invoke create fresh chain state, so a failed or sibling
// invocation never alters tokens reachable from an existing cursor.
type Cursor struct {
	root   *Root
	member *member
	node   *chain.Node
}

func newCursor(root *Root, m *member, b binder.Binding, parent *chain.Node) *Cursor {
	return &Cursor{
		root:   root,
		member: m,
		node:   chain.New(m.node.Name(), b, parent),
	}
}

// Members lists the invocable children at this position in declaration
// order.
func (c *Cursor) Members() []Member {
	members := make([]Member, 0, len(c.member.order))
	for _, name := range c.member.order {
		members = append(members, Member{
			Name: name,
			Kind: c.member.children[name].node.Kind(),
		})
	}
	return members
}

// Signature returns the effective declaration list of the named member:
// the parameters a call to that member validates against, including
// root-level augmentation for leaves that accept it. This is declarative
// metadata lookup, not reflection.
func (c *Cursor) Signature(name string) ([]command.Parameter, error) {
	m, err := c.child(name)
	if err != nil {
		return nil, err
	}
	return c.memberDecls(m)
}

// Descend invokes the named group member, returning a cursor one level
// deeper whose ancestry extends this cursor's.
func (c *Cursor) Descend(name string, args Args) (*Cursor, error) {
	m, err := c.child(name)
	if err != nil {
		return nil, err
	}
	if m.node.Kind() != command.NodeGroup {
		return nil, errors.Newf(errors.ErrCodeInvalidMember,
			"member %q is a command, not a group; use Invoke", name)
	}
	b, err := binder.Bind(m.node.Parameters(), args)
	if err != nil {
		return nil, err
	}
	return newCursor(c.root, m, b, c.node), nil
}

// Invoke calls the named leaf member: binds args, terminates the chain, and
// serializes the full ancestry into an argv token sequence.
func (c *Cursor) Invoke(name string, args Args) ([]string, error) {
	m, err := c.child(name)
	if err != nil {
		return nil, err
	}
	if m.node.Kind() != command.NodeLeaf {
		return nil, errors.Newf(errors.ErrCodeInvalidMember,
			"member %q is a group, not a command; use Descend", name)
	}
	decls, err := c.memberDecls(m)
	if err != nil {
		return nil, err
	}
	b, err := binder.Bind(decls, args)
	if err != nil {
		return nil, err
	}
	leaf := chain.New(m.node.Name(), b, c.node)
	return chain.Tokens(leaf), nil
}

// Execute produces the token sequence for a leaf invocation and hands it to
// the configured executor.
func (c *Cursor) Execute(ctx context.Context, name string, args Args) error {
	tokens, err := c.Invoke(name, args)
	if err != nil {
		return err
	}
	if c.root.executor == nil {
		return errors.New(errors.ErrCodeExecutorUnset,
			"no executor configured; compile with WithExecutor")
	}
	return c.root.executor.Execute(ctx, tokens)
}

// RootParameters materializes the root-level augmented parameter set. Only
// the chain root may do this; anywhere deeper fails with
// INVALID_ROOT_ACCESS, leaving the cursor usable for its other operations.
func (c *Cursor) RootParameters() ([]command.Parameter, error) {
	if c.node.Parent() != nil {
		return nil, errors.Newf(errors.ErrCodeInvalidRootAccess,
			"root-level parameters requested at depth %d; only the root can compute them",
			c.node.Depth())
	}
	return c.root.Parameters()
}

// Path renders the chain position for diagnostics, e.g. "start/run".
func (c *Cursor) Path() string {
	ancestry := c.node.Ancestry()
	names := make([]string, 0, len(ancestry))
	for _, step := range ancestry {
		names = append(names, step.Name())
	}
	return strings.Join(names, "/")
}

func (c *Cursor) child(name string) (*member, error) {
	m, ok := c.member.children[name]
	if !ok {
		return nil, errors.NewWithContext(
			errors.ErrCodeInvalidMember,
			fmt.Sprintf("no member %q under %q", name, c.member.node.Name()),
			map[string]any{"member": name, "known": c.member.order},
		)
	}
	return m, nil
}

// memberDecls resolves the declarations a member call binds against,
// prepending the root-level parameter set for augmentable leaves. The
// augmented declarations emit before the leaf's own flags.
func (c *Cursor) memberDecls(m *member) ([]command.Parameter, error) {
	decls := m.node.Parameters()
	if !m.node.AugmentsRoot() {
		return decls, nil
	}
	rootParams, err := c.root.Parameters()
	if err != nil {
		return nil, err
	}
	return append(rootParams, decls...), nil
}
