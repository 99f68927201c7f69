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

// Package serializer renders command-line results to various output formats.
//
// The package supports three output formats:
//   - JSON: machine-readable structured data with indentation
//   - YAML: human-readable structured data
//   - Text: plain rendering; a token sequence becomes one space-joined line
//
// Usage:
//
//	writer := serializer.NewWriter(serializer.FormatText, os.Stdout)
//	if err := writer.Serialize(tokens); err != nil {
//	    log.Fatal(err)
//	}
package serializer

// Serializer is an interface for rendering a value to an output.
type Serializer interface {
	Serialize(v any) error
}
