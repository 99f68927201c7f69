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

package chain

import "github.com/NVIDIA/cmdchain/pkg/binder"

// Tokens flattens the full chain ending at leaf into an ordered argv token
// sequence, root to leaf.
//
// The root step's name is omitted — the sequence represents what follows
// the program name — but its binding still emits first. Every deeper step
// emits its name, then its binding: positionals first (a multi-value
// positional contributes consecutive value tokens with no separating flag),
// then flags (`--name value` pairs, one per element for multi-value flags,
// bare `--name` for presence-only booleans).
func Tokens(leaf *Node) []string {
	var tokens []string
	for i, step := range leaf.Ancestry() {
		if i > 0 {
			tokens = append(tokens, step.name)
		}
		tokens = appendBinding(tokens, step.binding)
	}
	return tokens
}

func appendBinding(tokens []string, b binder.Binding) []string {
	for _, entry := range b.Positionals() {
		tokens = append(tokens, entry.Values...)
	}
	for _, entry := range b.Flags() {
		if entry.Presence {
			tokens = append(tokens, "--"+entry.Name)
			continue
		}
		for _, value := range entry.Values {
			tokens = append(tokens, "--"+entry.Name, value)
		}
	}
	return tokens
}
