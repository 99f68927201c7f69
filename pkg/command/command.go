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

package command

import (
	"fmt"

	"github.com/NVIDIA/cmdchain/pkg/errors"
	"github.com/NVIDIA/cmdchain/pkg/typemap"
)

// NodeKind distinguishes the two node shapes in a command tree.
type NodeKind string

const (
	// NodeGroup is a command node containing further named child nodes.
	NodeGroup NodeKind = "group"
	// NodeLeaf is a terminal, directly invocable command.
	NodeLeaf NodeKind = "command"
)

// Parameter declares one positional argument or named option of a node.
// Parameters are immutable once the node holding them is constructed.
type Parameter struct {
	// Name is the canonical argument or flag name, without dashes.
	Name string
	// Positional marks an ordered argument; false means a named flag.
	Positional bool
	// Required marks a parameter the caller must supply.
	Required bool
	// Multiple marks a repeatable parameter accepting an ordered sequence.
	Multiple bool
	// Type is the primitive type kind, resolved against typemap.
	Type typemap.Kind
	// Default is the declared default value, carried for diagnostics only.
	Default any
	// NegatedName is the secondary spelling a boolean flag emits when the
	// caller supplies false. Only valid on non-positional bool parameters.
	NegatedName string
}

// Node is one command tree node: a group with children or a leaf command.
// Both shapes carry an ordered parameter list (groups commonly declare
// shared flags such as a root-level --metadata). Nodes are immutable after
// construction and safe for concurrent use.
type Node struct {
	name        string
	kind        NodeKind
	params      []Parameter
	children    []*Node
	childIndex  map[string]*Node
	augmentRoot bool
}

// LeafOption configures leaf construction.
type LeafOption func(*Node)

// WithRootAugmentation marks a leaf as accepting root-level parameter
// injection: augmented declarations are merged in before the leaf's
// bindings are computed.
func WithRootAugmentation() LeafOption {
	return func(n *Node) {
		n.augmentRoot = true
	}
}

// NewLeaf builds a terminal command node. Parameter type kinds are resolved
// eagerly; an unknown kind aborts construction.
func NewLeaf(name string, params []Parameter, opts ...LeafOption) (*Node, error) {
	ordered, err := orderParameters(name, params)
	if err != nil {
		return nil, err
	}
	n := &Node{
		name:   name,
		kind:   NodeLeaf,
		params: ordered,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// NewGroup builds a group node from its ordered children. Child names must
// be unique within the group.
func NewGroup(name string, params []Parameter, children ...*Node) (*Node, error) {
	ordered, err := orderParameters(name, params)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*Node, len(children))
	for _, child := range children {
		if child == nil {
			return nil, errors.Newf(errors.ErrCodeMalformedTree,
				"group %q has a nil child", name)
		}
		if _, exists := index[child.name]; exists {
			return nil, errors.Newf(errors.ErrCodeMalformedTree,
				"group %q declares child %q more than once", name, child.name)
		}
		index[child.name] = child
	}
	return &Node{
		name:       name,
		kind:       NodeGroup,
		params:     ordered,
		children:   append([]*Node(nil), children...),
		childIndex: index,
	}, nil
}

// Name returns the node name as declared in the surface metadata.
func (n *Node) Name() string {
	return n.name
}

// Kind returns whether the node is a group or a leaf command.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Parameters returns the node's declarations: positionals first, then
// flags, each bucket in declaration order. The returned slice is a copy.
func (n *Node) Parameters() []Parameter {
	return append([]Parameter(nil), n.params...)
}

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.childIndex[name]
	return child, ok
}

// ChildNames returns the names of direct children in declaration order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.children))
	for _, child := range n.children {
		names = append(names, child.name)
	}
	return names
}

// AugmentsRoot reports whether this leaf accepts root-level parameter
// injection.
func (n *Node) AugmentsRoot() bool {
	return n.augmentRoot
}

// orderParameters validates declarations and normalizes their order:
// positionals keep declaration order, flags follow in declaration order.
func orderParameters(node string, params []Parameter) ([]Parameter, error) {
	seen := make(map[string]struct{}, len(params))
	positionals := make([]Parameter, 0, len(params))
	flags := make([]Parameter, 0, len(params))
	for _, p := range params {
		if p.Name == "" {
			return nil, errors.Newf(errors.ErrCodeMalformedTree,
				"node %q declares a parameter with no name", node)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, errors.Newf(errors.ErrCodeMalformedTree,
				"node %q declares parameter %q more than once", node, p.Name)
		}
		seen[p.Name] = struct{}{}
		if _, err := typemap.Resolve(p.Type); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnknownTypeKind,
				fmt.Sprintf("node %q, parameter %q", node, p.Name), err)
		}
		if p.NegatedName != "" && (p.Positional || p.Type != typemap.KindBool) {
			return nil, errors.Newf(errors.ErrCodeMalformedTree,
				"node %q, parameter %q: negated spelling is only valid on boolean flags",
				node, p.Name)
		}
		// A boolean flag emits its name alone; a repeatable one would have
		// to carry value tokens, so the shape is rejected outright.
		if p.Multiple && !p.Positional && p.Type == typemap.KindBool {
			return nil, errors.Newf(errors.ErrCodeMalformedTree,
				"node %q, parameter %q: boolean flags cannot be repeatable",
				node, p.Name)
		}
		if p.Positional {
			positionals = append(positionals, p)
		} else {
			flags = append(flags, p)
		}
	}
	return append(positionals, flags...), nil
}
