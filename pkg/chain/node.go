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

package chain

import "github.com/NVIDIA/cmdchain/pkg/binder"

// Node records one step of an invocation chain: the invoked node's name,
// its normalized binding, and a read-only back link to the step it was
// invoked from. Nodes are created once, never re-parented, and never
// mutated, so ancestry links cannot form cycles and sibling chains built
// from the same parent are fully independent.
type Node struct {
	name    string
	binding binder.Binding
	parent  *Node
}

// New creates a chain node. A nil parent marks the chain root.
func New(name string, binding binder.Binding, parent *Node) *Node {
	return &Node{name: name, binding: binding, parent: parent}
}

// Name returns the invoked node's name.
func (n *Node) Name() string {
	return n.name
}

// Binding returns the step's normalized binding.
func (n *Node) Binding() binder.Binding {
	return n.binding
}

// Parent returns the previous step, or nil at the chain root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Depth returns the number of steps from the root to this node, with the
// root at depth zero.
func (n *Node) Depth() int {
	depth := 0
	for cur := n.parent; cur != nil; cur = cur.parent {
		depth++
	}
	return depth
}

// Ancestry returns the chain from root to this node. The parent walk is
// naturally leaf-to-root; it is collected once and reversed.
func (n *Node) Ancestry() []*Node {
	var nodes []*Node
	for cur := n; cur != nil; cur = cur.parent {
		nodes = append(nodes, cur)
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes
}
