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

package typemap

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"

	"github.com/NVIDIA/cmdchain/pkg/errors"
)

// Kind identifies a primitive parameter type in surface metadata.
type Kind string

const (
	// KindString is free-form text.
	KindString Kind = "string"
	// KindInt is an integer value.
	KindInt Kind = "int"
	// KindFloat is a floating point value.
	KindFloat Kind = "float"
	// KindBool is a boolean flag value.
	KindBool Kind = "bool"
	// KindUUID is an RFC 4122 identifier.
	KindUUID Kind = "uuid"
	// KindPath is a filesystem path, treated as text.
	KindPath Kind = "path"
	// KindTimestamp is a point in time.
	KindTimestamp Kind = "timestamp"
	// KindChoice is one of an enumerated set of strings.
	KindChoice Kind = "choice"
	// KindFile is a file reference, treated as text.
	KindFile Kind = "file"
	// KindTuple is a fixed sequence of scalar values emitted as consecutive
	// tokens.
	KindTuple Kind = "tuple"
	// KindJSON is an arbitrary JSON-marshalable value, serialized to
	// canonical JSON text and treated as opaque downstream.
	KindJSON Kind = "json"
)

// semanticTypes is the fixed table mapping each kind to its semantic value
// type in the cty vocabulary. The cty type names the shape of the value for
// diagnostics; kinds sharing a cty type (uuid, path, choice all being
// strings on the wire) still validate differently.
var semanticTypes = map[Kind]cty.Type{
	KindString:    cty.String,
	KindInt:       cty.Number,
	KindFloat:     cty.Number,
	KindBool:      cty.Bool,
	KindUUID:      cty.String,
	KindPath:      cty.String,
	KindTimestamp: cty.String,
	KindChoice:    cty.String,
	KindFile:      cty.String,
	KindTuple:     cty.List(cty.String),
	KindJSON:      cty.DynamicPseudoType,
}

// timestampLayouts are the accepted textual timestamp forms, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Kinds returns all registered kinds in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(semanticTypes))
	for k := range semanticTypes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// SemanticType is the resolved validation type for a parameter kind.
// The zero value is not usable; obtain instances via Resolve.
type SemanticType struct {
	kind    Kind
	ctyType cty.Type
}

// Resolve maps a kind to its semantic type. An unregistered kind is a
// configuration error and fails with ErrCodeUnknownTypeKind; callers are
// expected to abort compilation of the whole tree.
func Resolve(kind Kind) (SemanticType, error) {
	ct, ok := semanticTypes[kind]
	if !ok {
		return SemanticType{}, errors.NewWithContext(
			errors.ErrCodeUnknownTypeKind,
			fmt.Sprintf("no semantic type registered for kind %q", kind),
			map[string]any{"kind": string(kind), "known": Kinds()},
		)
	}
	return SemanticType{kind: kind, ctyType: ct}, nil
}

// Kind returns the kind this semantic type was resolved from.
func (t SemanticType) Kind() Kind {
	return t.kind
}

// CtyType returns the cty value type backing this semantic type.
func (t SemanticType) CtyType() cty.Type {
	return t.ctyType
}

// String renders the type for diagnostics, e.g. "uuid (string)".
func (t SemanticType) String() string {
	return fmt.Sprintf("%s (%s)", t.kind, t.ctyType.FriendlyName())
}

// Check structurally validates a caller-supplied Go value against the
// semantic type. It validates shape only; Tokens performs the same check
// before formatting.
func (t SemanticType) Check(v any) error {
	if v == nil {
		return fmt.Errorf("expected %s, got nil", t)
	}
	switch t.kind {
	case KindString, KindPath, KindChoice, KindFile:
		if _, ok := v.(string); !ok {
			return t.mismatch(v)
		}
	case KindInt:
		if !isInt(v) {
			return t.mismatch(v)
		}
	case KindFloat:
		if !isInt(v) && !isFloat(v) {
			return t.mismatch(v)
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return t.mismatch(v)
		}
	case KindUUID:
		switch x := v.(type) {
		case uuid.UUID:
		case string:
			if _, err := uuid.Parse(x); err != nil {
				return fmt.Errorf("expected %s: %w", t, err)
			}
		default:
			return t.mismatch(v)
		}
	case KindTimestamp:
		switch x := v.(type) {
		case time.Time:
		case string:
			if _, err := parseTimestamp(x); err != nil {
				return fmt.Errorf("expected %s: %w", t, err)
			}
		default:
			return t.mismatch(v)
		}
	case KindTuple:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return t.mismatch(v)
		}
		for i := 0; i < rv.Len(); i++ {
			if _, err := formatScalar(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("expected %s, element %d: %w", t, i, err)
			}
		}
	case KindJSON:
		if _, err := json.Marshal(v); err != nil {
			return fmt.Errorf("expected %s: %w", t, err)
		}
	default:
		// Resolve gates construction, so this indicates a table defect.
		return fmt.Errorf("unhandled kind %q", t.kind)
	}
	return nil
}

// Tokens validates v and renders its canonical token text. Scalar kinds
// yield exactly one token; a tuple yields one token per element.
func (t SemanticType) Tokens(v any) ([]string, error) {
	if err := t.Check(v); err != nil {
		return nil, err
	}
	switch t.kind {
	case KindString, KindPath, KindChoice, KindFile:
		return []string{v.(string)}, nil
	case KindInt, KindFloat, KindBool:
		s, err := formatScalar(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	case KindUUID:
		switch x := v.(type) {
		case uuid.UUID:
			return []string{x.String()}, nil
		default:
			id, err := uuid.Parse(v.(string))
			if err != nil {
				return nil, err
			}
			return []string{id.String()}, nil
		}
	case KindTimestamp:
		if ts, ok := v.(time.Time); ok {
			return []string{ts.Format(time.RFC3339)}, nil
		}
		// Validated text passes through unchanged.
		return []string{v.(string)}, nil
	case KindTuple:
		rv := reflect.ValueOf(v)
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := formatScalar(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case KindJSON:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return []string{string(data)}, nil
	default:
		return nil, fmt.Errorf("unhandled kind %q", t.kind)
	}
}

func (t SemanticType) mismatch(v any) error {
	return fmt.Errorf("expected %s, got %T", t, v)
}

func isInt(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isFloat(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// formatScalar renders a primitive Go value as token text.
func formatScalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported scalar %T", v)
	}
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, lastErr)
}
