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

package binder

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/NVIDIA/cmdchain/pkg/command"
	"github.com/NVIDIA/cmdchain/pkg/errors"
	"github.com/NVIDIA/cmdchain/pkg/typemap"
)

// Args carries caller-supplied values keyed by declaration name. The map is
// unordered; binding output order always follows declaration order.
type Args map[string]any

// Entry is one bound parameter: the emitted name, its token values, and
// whether it is a presence-only boolean flag.
type Entry struct {
	// Name is the name emitted on the command line. For a boolean flag
	// supplied as false with a negated spelling, this is the negated name.
	Name string
	// Values holds canonical token text in supplied order. Empty for
	// presence-only flags.
	Values []string
	// Presence marks a boolean flag that emits only its name.
	Presence bool
}

// Binding is the validated, normalized result of matching caller-supplied
// values against a node's declarations. Immutable after Bind returns.
type Binding struct {
	positionals []Entry
	flags       []Entry
}

// Positionals returns positional entries in declaration order.
func (b Binding) Positionals() []Entry {
	return append([]Entry(nil), b.positionals...)
}

// Flags returns flag entries in declaration order.
func (b Binding) Flags() []Entry {
	return append([]Entry(nil), b.flags...)
}

// Empty reports whether the binding holds no entries at all.
func (b Binding) Empty() bool {
	return len(b.positionals) == 0 && len(b.flags) == 0
}

// Bind validates args against decls and produces a normalized binding.
//
// Failure modes, in evaluation order: a supplied key with no declaration
// (UNKNOWN_PARAMETER), a value failing its structural type check
// (TYPE_MISMATCH, reported with the declared default for diagnostics), and
// finally any required declaration left without a value (MISSING_REQUIRED,
// enumerating every missing name in declaration order).
//
// A boolean flag supplied as false selects its negated spelling when one is
// declared; without one, the parameter is legitimately omitted — it emits
// no token but still counts as supplied.
func Bind(decls []command.Parameter, args Args) (Binding, error) {
	index := make(map[string]command.Parameter, len(decls))
	for _, d := range decls {
		index[d.Name] = d
	}

	// Supplied keys are scanned in sorted order so the first reported
	// unknown is deterministic; Go map iteration is not.
	supplied := make([]string, 0, len(args))
	for name := range args {
		supplied = append(supplied, name)
	}
	sort.Strings(supplied)
	for _, name := range supplied {
		if _, ok := index[name]; !ok {
			return Binding{}, errors.NewWithContext(
				errors.ErrCodeUnknownParameter,
				fmt.Sprintf("unknown argument %q, possible args are: %s",
					name, strings.Join(declNames(decls), ", ")),
				map[string]any{"parameter": name, "known": declNames(decls)},
			)
		}
	}

	var b Binding
	satisfied := make(map[string]struct{}, len(args))
	for _, d := range decls {
		value, ok := args[d.Name]
		if !ok {
			continue
		}
		entry, emit, err := bindOne(d, value)
		if err != nil {
			return Binding{}, err
		}
		satisfied[d.Name] = struct{}{}
		if !emit {
			continue
		}
		if d.Positional {
			b.positionals = append(b.positionals, entry)
		} else {
			b.flags = append(b.flags, entry)
		}
	}

	var missing []string
	for _, d := range decls {
		if !d.Required {
			continue
		}
		if _, ok := satisfied[d.Name]; !ok {
			missing = append(missing, d.Name)
		}
	}
	if len(missing) > 0 {
		return Binding{}, errors.NewWithContext(
			errors.ErrCodeMissingRequired,
			fmt.Sprintf("missing argument: %s is required", strings.Join(missing, ", ")),
			map[string]any{"parameter": missing[0], "missing": missing},
		)
	}

	return b, nil
}

// bindOne validates and normalizes a single supplied value. The emit result
// is false only for a boolean flag supplied as false with no negated
// spelling: processed, satisfied, but contributing no token.
func bindOne(d command.Parameter, value any) (Entry, bool, error) {
	st, err := typemap.Resolve(d.Type)
	if err != nil {
		return Entry{}, false, err
	}

	// Boolean flags always take the presence path so they never emit a
	// literal value token, even on a declaration that slipped past tree
	// validation (augmentation hooks hand declarations in directly).
	if !d.Positional && d.Type == typemap.KindBool {
		on, ok := value.(bool)
		if !ok {
			return Entry{}, false, mismatch(d, st, value, st.Check(value))
		}
		if on {
			return Entry{Name: d.Name, Presence: true}, true, nil
		}
		if d.NegatedName != "" {
			return Entry{Name: d.NegatedName, Presence: true}, true, nil
		}
		return Entry{}, false, nil
	}

	if d.Multiple {
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return Entry{}, false, mismatch(d, st, value,
				fmt.Errorf("expected a sequence of %s, got %T", st, value))
		}
		values := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			tokens, err := st.Tokens(rv.Index(i).Interface())
			if err != nil {
				return Entry{}, false, mismatch(d, st, value,
					fmt.Errorf("element %d: %w", i, err))
			}
			values = append(values, tokens...)
		}
		return Entry{Name: d.Name, Values: values}, true, nil
	}

	tokens, err := st.Tokens(value)
	if err != nil {
		return Entry{}, false, mismatch(d, st, value, err)
	}
	return Entry{Name: d.Name, Values: tokens}, true, nil
}

func mismatch(d command.Parameter, st typemap.SemanticType, value any, cause error) error {
	expected := st.String()
	if d.Multiple {
		expected = fmt.Sprintf("sequence of %s", expected)
	}
	return errors.WrapWithContext(
		errors.ErrCodeTypeMismatch,
		fmt.Sprintf("invalid type for %q, expected: %q, default is '%v'",
			d.Name, expected, d.Default),
		cause,
		map[string]any{
			"parameter": d.Name,
			"expected":  expected,
			"supplied":  fmt.Sprintf("%T", value),
			"default":   d.Default,
		},
	)
}

func declNames(decls []command.Parameter) []string {
	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.Name)
	}
	return names
}
