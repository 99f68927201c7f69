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
	"sync"

	"github.com/NVIDIA/cmdchain/pkg/binder"
	"github.com/NVIDIA/cmdchain/pkg/command"
	"github.com/NVIDIA/cmdchain/pkg/errors"
)

// Args is the caller-supplied value set for one invocation.
type Args = binder.Args

// Executor consumes the final token sequence of a terminal invocation.
// The builder has no opinion on how tokens are executed; this is the
// boundary to that external collaborator.
type Executor interface {
	Execute(ctx context.Context, tokens []string) error
}

// RootParameterFunc supplies extra declarations to be merged into leaves
// marked as accepting root-level augmentation. It is called at most once
// per Root; the result is cached for the Root's lifetime.
type RootParameterFunc func() ([]command.Parameter, error)

// Option configures compilation.
type Option func(*Root)

// WithRootParameters installs the root-level parameter augmentation hook.
func WithRootParameters(fn RootParameterFunc) Option {
	return func(r *Root) {
		r.rootFn = fn
	}
}

// WithExecutor installs the executor used by Cursor.Execute.
func WithExecutor(e Executor) Option {
	return func(r *Root) {
		r.executor = e
	}
}

// member is one compiled node with its eagerly built child table. The tree
// is fully known at compile time, so there is no lazy member materialization.
type member struct {
	node     *command.Node
	children map[string]*member
	order    []string
}

// Root is the compiled programmatic surface for one command tree.
// Immutable apart from the compute-once root parameter cache; safe for
// concurrent use.
type Root struct {
	top      *member
	rootFn   RootParameterFunc
	executor Executor

	paramsOnce sync.Once
	params     []command.Parameter
	paramsErr  error
}

// Compile builds the callable surface for a command tree: one member per
// child for every group, recursively. Member names equal the node names
// exactly.
func Compile(tree *command.Node, opts ...Option) (*Root, error) {
	if tree == nil {
		return nil, errors.New(errors.ErrCodeMalformedTree, "nil command tree")
	}
	top, err := compileMember(tree)
	if err != nil {
		return nil, err
	}
	r := &Root{top: top}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func compileMember(node *command.Node) (*member, error) {
	m := &member{node: node}
	switch node.Kind() {
	case command.NodeLeaf:
		return m, nil
	case command.NodeGroup:
	default:
		return nil, errors.Newf(errors.ErrCodeMalformedTree,
			"cannot handle node %q of kind %q", node.Name(), node.Kind())
	}
	m.children = make(map[string]*member)
	for _, name := range node.ChildNames() {
		child, _ := node.Child(name)
		compiled, err := compileMember(child)
		if err != nil {
			return nil, err
		}
		m.children[name] = compiled
		m.order = append(m.order, name)
	}
	return m, nil
}

// Invoke binds root-level args and starts an invocation chain.
func (r *Root) Invoke(args Args) (*Cursor, error) {
	b, err := binder.Bind(r.top.node.Parameters(), args)
	if err != nil {
		return nil, err
	}
	return newCursor(r, r.top, b, nil), nil
}

// Parameters materializes the root-level augmented parameter set, computing
// it on first access and serving the cached result thereafter. There is no
// recompute path: once populated, the cache is final for the lifetime of
// the Root.
func (r *Root) Parameters() ([]command.Parameter, error) {
	r.paramsOnce.Do(func() {
		if r.rootFn == nil {
			return
		}
		r.params, r.paramsErr = r.rootFn()
	})
	if r.paramsErr != nil {
		return nil, r.paramsErr
	}
	return append([]command.Parameter(nil), r.params...), nil
}
