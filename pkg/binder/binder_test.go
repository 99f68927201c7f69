package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/cmdchain/pkg/command"
	"github.com/NVIDIA/cmdchain/pkg/errors"
	"github.com/NVIDIA/cmdchain/pkg/typemap"
)

func runDecls() []command.Parameter {
	return []command.Parameter{
		{Name: "metadata", Type: typemap.KindString, Default: "service"},
		{Name: "tags", Type: typemap.KindString, Multiple: true},
		{Name: "decospecs", Type: typemap.KindString, Multiple: true},
		{Name: "max-workers", Type: typemap.KindInt, Default: 16},
	}
}

func TestBindScalarsAndSequences(t *testing.T) {
	b, err := Bind(runDecls(), Args{
		"metadata":    "local",
		"tags":        []string{"abc", "def"},
		"max-workers": 5,
	})
	require.NoError(t, err)

	assert.Empty(t, b.Positionals())
	flags := b.Flags()
	require.Len(t, flags, 3)

	// Declaration order, regardless of map iteration order.
	assert.Equal(t, Entry{Name: "metadata", Values: []string{"local"}}, flags[0])
	assert.Equal(t, Entry{Name: "tags", Values: []string{"abc", "def"}}, flags[1])
	assert.Equal(t, Entry{Name: "max-workers", Values: []string{"5"}}, flags[2])
}

func TestBindPositionals(t *testing.T) {
	decls := []command.Parameter{
		{Name: "tag", Type: typemap.KindString, Positional: true, Required: true, Multiple: true},
		{Name: "force", Type: typemap.KindBool},
	}

	b, err := Bind(decls, Args{
		"tag":   []string{"abc", "def"},
		"force": true,
	})
	require.NoError(t, err)

	positionals := b.Positionals()
	require.Len(t, positionals, 1)
	assert.Equal(t, Entry{Name: "tag", Values: []string{"abc", "def"}}, positionals[0])

	flags := b.Flags()
	require.Len(t, flags, 1)
	assert.Equal(t, Entry{Name: "force", Presence: true}, flags[0])
}

func TestBindUnknownParameter(t *testing.T) {
	_, err := Bind(runDecls(), Args{"alpha": 3})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownParameter, errors.CodeOf(err))

	// The error lists the set of valid names.
	assert.Contains(t, err.Error(), "metadata")
	assert.Contains(t, err.Error(), "tags")
	assert.Contains(t, err.Error(), "decospecs")
	assert.Contains(t, err.Error(), "max-workers")
}

func TestBindTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		args  Args
	}{
		{name: "string gets int", args: Args{"metadata": 5}},
		{name: "int gets string", args: Args{"max-workers": "five"}},
		{name: "sequence gets scalar", args: Args{"tags": "abc"}},
		{name: "sequence element mismatch", args: Args{"tags": []any{"abc", 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(runDecls(), tt.args)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeTypeMismatch, errors.CodeOf(err))
		})
	}
}

func TestBindTypeMismatchReportsDefault(t *testing.T) {
	_, err := Bind(runDecls(), Args{"max-workers": "five"})
	require.Error(t, err)

	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 16, se.Context["default"])
	assert.Equal(t, "max-workers", se.Context["parameter"])
}

func TestBindMissingRequired(t *testing.T) {
	decls := []command.Parameter{
		{Name: "step-name", Type: typemap.KindString, Required: true},
		{Name: "code-package-sha", Type: typemap.KindString, Required: true},
		{Name: "tags", Type: typemap.KindString, Multiple: true},
	}

	_, err := Bind(decls, Args{"tags": []string{"abc"}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeMissingRequired, errors.CodeOf(err))

	var se *errors.StructuredError
	require.ErrorAs(t, err, &se)
	// First missing name in the parameter field, all of them enumerated.
	assert.Equal(t, "step-name", se.Context["parameter"])
	assert.Equal(t, []string{"step-name", "code-package-sha"}, se.Context["missing"])
}

func TestBindRequiredSatisfiedByExplicitDefaultValue(t *testing.T) {
	decls := []command.Parameter{
		{Name: "metadata", Type: typemap.KindString, Required: true, Default: "service"},
	}

	b, err := Bind(decls, Args{"metadata": "service"})
	require.NoError(t, err)
	require.Len(t, b.Flags(), 1)
	assert.Equal(t, []string{"service"}, b.Flags()[0].Values)
}

func TestBindDefaultsDoNotInjectTokens(t *testing.T) {
	b, err := Bind(runDecls(), Args{})
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestBindBooleanPolarity(t *testing.T) {
	decls := []command.Parameter{
		{Name: "namespace", Type: typemap.KindBool, NegatedName: "no-namespace"},
		{Name: "verbose", Type: typemap.KindBool},
	}

	tests := []struct {
		name     string
		args     Args
		expected []Entry
	}{
		{
			name:     "true selects primary",
			args:     Args{"namespace": true},
			expected: []Entry{{Name: "namespace", Presence: true}},
		},
		{
			name:     "false selects negated spelling",
			args:     Args{"namespace": false},
			expected: []Entry{{Name: "no-namespace", Presence: true}},
		},
		{
			name:     "false without negated spelling is omitted",
			args:     Args{"verbose": false},
			expected: nil,
		},
		{
			name: "mixed",
			args: Args{"namespace": false, "verbose": true},
			expected: []Entry{
				{Name: "no-namespace", Presence: true},
				{Name: "verbose", Presence: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Bind(decls, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b.Flags())
		})
	}
}

func TestBindRequiredBoolFalseWithoutNegationCountsAsSupplied(t *testing.T) {
	decls := []command.Parameter{
		{Name: "verbose", Type: typemap.KindBool, Required: true},
	}

	// Processed but legitimately omitted: no token, no missing-required.
	b, err := Bind(decls, Args{"verbose": false})
	require.NoError(t, err)
	assert.True(t, b.Empty())
}

func TestBindBoolFlagNeverEmitsValueTokens(t *testing.T) {
	// Tree construction rejects repeatable boolean flags, but augmentation
	// hooks hand declarations straight to Bind. The presence path must win
	// over the sequence path regardless.
	decls := []command.Parameter{
		{Name: "verbose", Type: typemap.KindBool, Multiple: true},
	}

	b, err := Bind(decls, Args{"verbose": true})
	require.NoError(t, err)
	require.Len(t, b.Flags(), 1)
	assert.Equal(t, Entry{Name: "verbose", Presence: true}, b.Flags()[0])

	// A sequence value is a type mismatch, not a --verbose true pair.
	_, err = Bind(decls, Args{"verbose": []bool{true, false}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTypeMismatch, errors.CodeOf(err))
}

func TestBindBoolRejectsNonBool(t *testing.T) {
	decls := []command.Parameter{
		{Name: "verbose", Type: typemap.KindBool},
	}
	_, err := Bind(decls, Args{"verbose": "yes"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTypeMismatch, errors.CodeOf(err))
}

func TestBindJSONCanonicalized(t *testing.T) {
	decls := []command.Parameter{
		{Name: "config-value", Type: typemap.KindJSON},
	}

	b, err := Bind(decls, Args{
		"config-value": map[string]any{"zeta": 1, "alpha": []any{true, nil}},
	})
	require.NoError(t, err)
	require.Len(t, b.Flags(), 1)
	assert.Equal(t, []string{`{"alpha":[true,null],"zeta":1}`}, b.Flags()[0].Values)
}

func TestBindUnknownReportedBeforeMissing(t *testing.T) {
	decls := []command.Parameter{
		{Name: "step-name", Type: typemap.KindString, Required: true},
	}

	_, err := Bind(decls, Args{"bogus": 1})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnknownParameter, errors.CodeOf(err))
}
