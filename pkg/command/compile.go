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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cmdchain/pkg/errors"
	"github.com/NVIDIA/cmdchain/pkg/typemap"
)

// FromCLI compiles a urfave/cli command into an immutable command tree.
// The conversion is a pure function of the definition: identical commands
// produce trees with identical shape, names, and parameter order. The
// source command is read-only to this package.
//
// A boolean flag alias spelled "no-<name>" is taken as the flag's negated
// spelling rather than a separate alias.
func FromCLI(cmd *cli.Command) (*Node, error) {
	if cmd == nil {
		return nil, errors.New(errors.ErrCodeInvalidSource, "nil command")
	}
	params, err := cliParameters(cmd)
	if err != nil {
		return nil, err
	}
	if len(cmd.Commands) == 0 {
		return NewLeaf(cmd.Name, params)
	}
	children := make([]*Node, 0, len(cmd.Commands))
	for _, sub := range cmd.Commands {
		child, err := FromCLI(sub)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return NewGroup(cmd.Name, params, children...)
}

func cliParameters(cmd *cli.Command) ([]Parameter, error) {
	params := make([]Parameter, 0, len(cmd.Arguments)+len(cmd.Flags))
	for _, arg := range cmd.Arguments {
		p, err := argParameter(cmd.Name, arg)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	for _, flag := range cmd.Flags {
		p, err := flagParameter(cmd.Name, flag)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// argParameter maps both positional shapes: the single-value *Arg types
// and the multi-occurrence *Args types, whose Min/Max bounds carry the
// required and repeatable semantics.
func argParameter(node string, arg cli.Argument) (Parameter, error) {
	switch a := arg.(type) {
	case *cli.StringArg:
		return Parameter{
			Name:       a.Name,
			Positional: true,
			Type:       typemap.KindString,
		}, nil
	case *cli.IntArg:
		return Parameter{
			Name:       a.Name,
			Positional: true,
			Type:       typemap.KindInt,
		}, nil
	case *cli.FloatArg:
		return Parameter{
			Name:       a.Name,
			Positional: true,
			Type:       typemap.KindFloat,
		}, nil
	case *cli.StringArgs:
		return Parameter{
			Name:       a.Name,
			Positional: true,
			Required:   a.Min >= 1,
			Multiple:   a.Max != 1,
			Type:       typemap.KindString,
		}, nil
	case *cli.IntArgs:
		return Parameter{
			Name:       a.Name,
			Positional: true,
			Required:   a.Min >= 1,
			Multiple:   a.Max != 1,
			Type:       typemap.KindInt,
		}, nil
	case *cli.FloatArgs:
		return Parameter{
			Name:       a.Name,
			Positional: true,
			Required:   a.Min >= 1,
			Multiple:   a.Max != 1,
			Type:       typemap.KindFloat,
		}, nil
	default:
		return Parameter{}, errors.Newf(errors.ErrCodeUnknownTypeKind,
			"node %q: unsupported argument type %T", node, arg)
	}
}

func flagParameter(node string, flag cli.Flag) (Parameter, error) {
	p := Parameter{}
	switch f := flag.(type) {
	case *cli.StringFlag:
		p = Parameter{Name: f.Name, Required: f.Required, Type: typemap.KindString, Default: f.Value}
	case *cli.IntFlag:
		p = Parameter{Name: f.Name, Required: f.Required, Type: typemap.KindInt, Default: f.Value}
	case *cli.FloatFlag:
		p = Parameter{Name: f.Name, Required: f.Required, Type: typemap.KindFloat, Default: f.Value}
	case *cli.BoolFlag:
		p = Parameter{Name: f.Name, Required: f.Required, Type: typemap.KindBool, Default: f.Value}
		p.NegatedName = negatedAlias(f.Name, f.Aliases)
	case *cli.StringSliceFlag:
		p = Parameter{Name: f.Name, Required: f.Required, Multiple: true, Type: typemap.KindString, Default: f.Value}
	case *cli.TimestampFlag:
		p = Parameter{Name: f.Name, Required: f.Required, Type: typemap.KindTimestamp, Default: f.Value}
	default:
		return Parameter{}, errors.Newf(errors.ErrCodeUnknownTypeKind,
			"node %q: unsupported flag type %T", node, flag)
	}
	return p, nil
}

func negatedAlias(name string, aliases []string) string {
	for _, alias := range aliases {
		if alias == "no-"+name {
			return alias
		}
	}
	return ""
}

// Fingerprint derives a stable content key for a compiled tree: two trees
// compiled from the same logical definition share a fingerprint even when
// loaded from distinct objects. Used as the registry cache key.
func Fingerprint(n *Node) string {
	h := sha256.New()
	writeNode(h, n)
	return hex.EncodeToString(h.Sum(nil))
}

func writeNode(w io.Writer, n *Node) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s(", n.kind, n.name)
	for _, p := range n.params {
		fmt.Fprintf(&b, "%s|%t|%t|%t|%s|%s|%v;",
			p.Name, p.Positional, p.Required, p.Multiple, p.Type, p.NegatedName, p.Default)
	}
	fmt.Fprintf(&b, ")aug=%t{", n.augmentRoot)
	io.WriteString(w, b.String())
	for _, child := range n.children {
		writeNode(w, child)
	}
	io.WriteString(w, "}")
}
