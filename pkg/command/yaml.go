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
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/cmdchain/pkg/errors"
	"github.com/NVIDIA/cmdchain/pkg/typemap"
)

// nodeDoc is the YAML shape of one command tree node.
type nodeDoc struct {
	Name             string     `yaml:"name"`
	Kind             string     `yaml:"kind,omitempty"`
	Params           []paramDoc `yaml:"params,omitempty"`
	Commands         []nodeDoc  `yaml:"commands,omitempty"`
	AcceptRootParams bool       `yaml:"accepts-root-params,omitempty"`
}

type paramDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Positional  bool   `yaml:"positional,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Multiple    bool   `yaml:"multiple,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	NegatedName string `yaml:"negated-name,omitempty"`
}

// FromYAML compiles a declarative YAML surface document into an immutable
// command tree. Decoding is strict: unknown fields fail rather than being
// silently dropped.
func FromYAML(data []byte) (*Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc nodeDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource,
			"failed to decode surface document", err)
	}
	return buildNode(doc)
}

func buildNode(doc nodeDoc) (*Node, error) {
	if doc.Name == "" {
		return nil, errors.New(errors.ErrCodeMalformedTree,
			"surface node has no name")
	}

	kind, err := nodeKind(doc)
	if err != nil {
		return nil, err
	}

	params := make([]Parameter, 0, len(doc.Params))
	for _, p := range doc.Params {
		params = append(params, Parameter{
			Name:        p.Name,
			Positional:  p.Positional,
			Required:    p.Required,
			Multiple:    p.Multiple,
			Type:        typemap.Kind(p.Type),
			Default:     p.Default,
			NegatedName: p.NegatedName,
		})
	}

	if kind == NodeLeaf {
		var opts []LeafOption
		if doc.AcceptRootParams {
			opts = append(opts, WithRootAugmentation())
		}
		return NewLeaf(doc.Name, params, opts...)
	}

	if doc.AcceptRootParams {
		return nil, errors.Newf(errors.ErrCodeMalformedTree,
			"group %q: accepts-root-params is only valid on commands", doc.Name)
	}
	children := make([]*Node, 0, len(doc.Commands))
	for _, sub := range doc.Commands {
		child, err := buildNode(sub)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return NewGroup(doc.Name, params, children...)
}

// nodeKind resolves the declared or inferred node kind. A kind that is
// neither group nor command, or that contradicts the node's contents, is a
// defect in the metadata source and fails compilation.
func nodeKind(doc nodeDoc) (NodeKind, error) {
	switch NodeKind(doc.Kind) {
	case NodeGroup:
		return NodeGroup, nil
	case NodeLeaf:
		if len(doc.Commands) > 0 {
			return "", errors.Newf(errors.ErrCodeMalformedTree,
				"node %q is declared a command but has sub-commands", doc.Name)
		}
		return NodeLeaf, nil
	case "":
		if len(doc.Commands) > 0 {
			return NodeGroup, nil
		}
		return NodeLeaf, nil
	default:
		return "", errors.Newf(errors.ErrCodeMalformedTree,
			"node %q has unrecognized kind %q", doc.Name, doc.Kind)
	}
}
