/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cmdchain/pkg/builder"
	"github.com/NVIDIA/cmdchain/pkg/command"
	"github.com/NVIDIA/cmdchain/pkg/serializer"
)

func tokensCmd() *cli.Command {
	return &cli.Command{
		Name:  "tokens",
		Usage: "Serialize a chain of calls into a command-line token sequence",
		Description: `Compile a YAML surface definition into a programmatic command tree,
walk the requested chain of calls, and print the resulting command-line
token sequence.

Every --call names one member of the current tree level, optionally with a
JSON argument object; all but the last must be groups, the last must be a
command. Root-level arguments bind via --args.

# Examples

Terminal command with root-level flags:

  cmdchain tokens --surface flow.yaml \
    --args '{"metadata":"local"}' \
    --call 'run={"tags":["abc","def"],"max-workers":5}'

Nested groups:

  cmdchain tokens --surface flow.yaml \
    --call kubernetes \
    --call 'step={"step-name":"process"}'`,
		Flags: []cli.Flag{
			newSurfaceFlag(),
			&cli.StringFlag{
				Name:  "args",
				Usage: "JSON object of root-level arguments",
			},
			&cli.StringSliceFlag{
				Name:     "call",
				Usage:    "member call in the form name or name={json}, repeatable",
				Required: true,
			},
			newFormatFlag(serializer.FormatText),
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
			root, err := builder.Compile(tree)
			if err != nil {
				return err
			}

			rootArgs, err := decodeArgs(cmd.String("args"))
			if err != nil {
				return err
			}
			cur, err := root.Invoke(rootArgs)
			if err != nil {
				return err
			}

			calls := cmd.StringSlice("call")
			for _, spec := range calls[:len(calls)-1] {
				name, args, err := parseCallSpec(spec)
				if err != nil {
					return err
				}
				if cur, err = cur.Descend(name, args); err != nil {
					return err
				}
			}

			name, args, err := parseCallSpec(calls[len(calls)-1])
			if err != nil {
				return err
			}
			tokens, err := cur.Invoke(name, args)
			if err != nil {
				return err
			}

			slog.Debug("chain serialized",
				"surface", cmd.String("surface"),
				"path", cur.Path(),
				"tokens", len(tokens))

			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			defer closeOut()

			return serializer.NewWriter(format, out).Serialize(tokens)
		},
	}
}
