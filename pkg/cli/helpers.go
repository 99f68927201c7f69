/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cmdchain/pkg/builder"
	"github.com/NVIDIA/cmdchain/pkg/serializer"
)

// shared flags
func newFormatFlag(def serializer.Format) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value: string(def),
	}
}

func newOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "output",
		Usage: "output file path (default: stdout)",
	}
}

func newSurfaceFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "surface",
		Usage:    "path to the YAML surface definition",
		Required: true,
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	format := serializer.Format(cmd.String("format"))
	if format.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported: %s",
			cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
	}
	return format, nil
}

// openOutput resolves the --output flag into a writer and a close func.
func openOutput(cmd *cli.Command) (io.Writer, func() error, error) {
	path := strings.TrimSpace(cmd.String("output"))
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, file.Close, nil
}

// parseCallSpec splits a --call value into a member name and its arguments.
// The expected form is "name" or "name={...json object...}".
func parseCallSpec(spec string) (string, builder.Args, error) {
	name, rawArgs, found := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("empty member name in call %q", spec)
	}
	if !found {
		return name, builder.Args{}, nil
	}
	args, err := decodeArgs(rawArgs)
	if err != nil {
		return "", nil, fmt.Errorf("call %q: %w", name, err)
	}
	return name, args, nil
}

// decodeArgs decodes a JSON object into caller arguments. Numbers decode
// into int64 when integral so they satisfy int-typed declarations.
func decodeArgs(raw string) (builder.Args, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return builder.Args{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var decoded map[string]any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("invalid argument object: %w", err)
	}

	args := make(builder.Args, len(decoded))
	for k, v := range decoded {
		args[k] = normalizeJSONValue(v)
	}
	return args, nil
}

func normalizeJSONValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return i
		}
		f, err := x.Float64()
		if err != nil {
			return string(x)
		}
		return f
	case []any:
		for i := range x {
			x[i] = normalizeJSONValue(x[i])
		}
		return x
	case map[string]any:
		for k := range x {
			x[k] = normalizeJSONValue(x[k])
		}
		return x
	default:
		return v
	}
}
