package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cmdchain/pkg/errors"
	"github.com/NVIDIA/cmdchain/pkg/typemap"
)

func startCommand() *cli.Command {
	return &cli.Command{
		Name: "start",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "metadata", Value: "service"},
		},
		Commands: []*cli.Command{
			{
				Name: "run",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "tags"},
					&cli.IntFlag{Name: "max-workers"},
					&cli.BoolFlag{Name: "namespace", Aliases: []string{"no-namespace"}},
				},
			},
			{
				Name: "tag",
				Commands: []*cli.Command{
					{
						Name: "add",
						Arguments: []cli.Argument{
							&cli.StringArgs{Name: "tag", Min: 1, Max: -1},
						},
					},
				},
			},
		},
	}
}

func TestFromCLI(t *testing.T) {
	tree, err := FromCLI(startCommand())
	require.NoError(t, err)

	assert.Equal(t, "start", tree.Name())
	assert.Equal(t, NodeGroup, tree.Kind())
	assert.Equal(t, []string{"run", "tag"}, tree.ChildNames())

	params := tree.Parameters()
	require.Len(t, params, 1)
	assert.Equal(t, "metadata", params[0].Name)
	assert.Equal(t, typemap.KindString, params[0].Type)
	assert.Equal(t, "service", params[0].Default)

	run, ok := tree.Child("run")
	require.True(t, ok)
	assert.Equal(t, NodeLeaf, run.Kind())

	runParams := run.Parameters()
	require.Len(t, runParams, 3)
	assert.Equal(t, "tags", runParams[0].Name)
	assert.True(t, runParams[0].Multiple)
	assert.Equal(t, "max-workers", runParams[1].Name)
	assert.Equal(t, typemap.KindInt, runParams[1].Type)
	assert.Equal(t, "namespace", runParams[2].Name)
	assert.Equal(t, "no-namespace", runParams[2].NegatedName)

	tag, ok := tree.Child("tag")
	require.True(t, ok)
	add, ok := tag.Child("add")
	require.True(t, ok)

	addParams := add.Parameters()
	require.Len(t, addParams, 1)
	assert.True(t, addParams[0].Positional)
	assert.True(t, addParams[0].Required)
	assert.True(t, addParams[0].Multiple)
}

func TestFromCLIArgumentShapes(t *testing.T) {
	tree, err := FromCLI(&cli.Command{
		Name: "convert",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "source"},
			&cli.IntArg{Name: "limit"},
			&cli.FloatArg{Name: "scale"},
			&cli.IntArgs{Name: "ports", Min: 1, Max: -1},
			&cli.FloatArgs{Name: "weights", Min: 0, Max: 3},
		},
	})
	require.NoError(t, err)

	params := tree.Parameters()
	require.Len(t, params, 5)

	// Single-value arguments are never repeatable.
	for _, p := range params[:3] {
		assert.True(t, p.Positional)
		assert.False(t, p.Multiple, p.Name)
		assert.False(t, p.Required, p.Name)
	}
	assert.Equal(t, typemap.KindString, params[0].Type)
	assert.Equal(t, typemap.KindInt, params[1].Type)
	assert.Equal(t, typemap.KindFloat, params[2].Type)

	// Multi-occurrence arguments carry their bounds.
	assert.True(t, params[3].Required)
	assert.True(t, params[3].Multiple)
	assert.False(t, params[4].Required)
	assert.True(t, params[4].Multiple)
}

func TestFromCLIDeterministic(t *testing.T) {
	first, err := FromCLI(startCommand())
	require.NoError(t, err)
	second, err := FromCLI(startCommand())
	require.NoError(t, err)

	assert.Equal(t, Fingerprint(first), Fingerprint(second))
	assert.Equal(t, first.ChildNames(), second.ChildNames())
	assert.Equal(t, first.Parameters(), second.Parameters())
}

func TestFromCLINil(t *testing.T) {
	_, err := FromCLI(nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidSource, errors.CodeOf(err))
}

func TestFromCLIUnsupportedFlag(t *testing.T) {
	_, err := FromCLI(&cli.Command{
		Name: "start",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownTypeKind, errors.CodeOf(err))
}
