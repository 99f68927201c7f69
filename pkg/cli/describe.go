/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cmdchain/pkg/command"
	"github.com/NVIDIA/cmdchain/pkg/serializer"
)

// nodeDescription is the introspection document for one tree node.
type nodeDescription struct {
	Name              string             `json:"name" yaml:"name"`
	Kind              string             `json:"kind" yaml:"kind"`
	AcceptsRootParams bool               `json:"acceptsRootParams,omitempty" yaml:"acceptsRootParams,omitempty"`
	Params            []paramDescription `json:"params,omitempty" yaml:"params,omitempty"`
	Commands          []nodeDescription  `json:"commands,omitempty" yaml:"commands,omitempty"`
}

type paramDescription struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Positional  bool   `json:"positional,omitempty" yaml:"positional,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Multiple    bool   `json:"multiple,omitempty" yaml:"multiple,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	NegatedName string `json:"negatedName,omitempty" yaml:"negatedName,omitempty"`
}

func describeCmd() *cli.Command {
	return &cli.Command{
		Name:  "describe",
		Usage: "Show the compiled member and parameter structure of a surface",
		Flags: []cli.Flag{
			newSurfaceFlag(),
			newFormatFlag(serializer.FormatYAML),
			newOutputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(cmd.String("surface"))
			if err != nil {
				return fmt.Errorf("failed to read surface: %w", err)
			}

			tree, err := command.Load(command.YAMLSource(data))
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			return serializer.NewWriter(format, out).Serialize(describeNode(tree))
		},
	}
}

func describeNode(n *command.Node) nodeDescription {
	doc := nodeDescription{
		Name:              n.Name(),
		Kind:              string(n.Kind()),
		AcceptsRootParams: n.AugmentsRoot(),
	}
	for _, p := range n.Parameters() {
		doc.Params = append(doc.Params, paramDescription{
			Name:        p.Name,
			Type:        string(p.Type),
			Positional:  p.Positional,
			Required:    p.Required,
			Multiple:    p.Multiple,
			Default:     p.Default,
			NegatedName: p.NegatedName,
		})
	}
	for _, name := range n.ChildNames() {
		child, _ := n.Child(name)
		doc.Commands = append(doc.Commands, describeNode(child))
	}
	return doc
}
