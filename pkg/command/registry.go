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
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/singleflight"
)

// Source supplies surface metadata to the registry. Identity must be a
// stable content-derived key: the same logical definition loaded twice from
// the same resource shares an identity, regardless of object identity.
type Source interface {
	Identity() string
	Compile() (*Node, error)
}

// YAMLSource wraps a YAML surface document. Identity is the document hash.
func YAMLSource(data []byte) Source {
	sum := sha256.Sum256(data)
	return &yamlSource{data: data, id: "yaml:" + hex.EncodeToString(sum[:])}
}

type yamlSource struct {
	data []byte
	id   string
}

func (s *yamlSource) Identity() string        { return s.id }
func (s *yamlSource) Compile() (*Node, error) { return FromYAML(s.data) }

// CLISource wraps a urfave/cli command definition. Conversion happens
// eagerly (it is pure and cheap) so that Identity can be a structural
// fingerprint of the resulting tree rather than a pointer identity.
func CLISource(cmd *cli.Command) Source {
	node, err := FromCLI(cmd)
	s := &cliSource{node: node, err: err}
	if err != nil {
		name := "<nil>"
		if cmd != nil {
			name = cmd.Name
		}
		s.id = "cli:invalid:" + name
		return s
	}
	s.id = "cli:" + Fingerprint(node)
	return s
}

type cliSource struct {
	node *Node
	err  error
	id   string
}

func (s *cliSource) Identity() string        { return s.id }
func (s *cliSource) Compile() (*Node, error) { return s.node, s.err }

// registry memoizes compiled trees per source identity. Entries are
// computed once and never invalidated; recompiling under a first-access
// race is collapsed by singleflight.
type registry struct {
	mu     sync.RWMutex
	nodes  map[string]*Node
	flight singleflight.Group
}

var defaultRegistry = &registry{nodes: make(map[string]*Node)}

// Load returns the compiled tree for a source, compiling on first use and
// serving the cached tree thereafter.
func Load(src Source) (*Node, error) {
	return defaultRegistry.load(src)
}

// ResetRegistry clears all cached trees. Intended for test isolation.
func ResetRegistry() {
	defaultRegistry.reset()
}

func (r *registry) load(src Source) (*Node, error) {
	key := src.Identity()

	r.mu.RLock()
	node, ok := r.nodes[key]
	r.mu.RUnlock()
	if ok {
		slog.Debug("surface registry hit", "key", key)
		return node, nil
	}

	v, err, _ := r.flight.Do(key, func() (any, error) {
		node, err := src.Compile()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.nodes[key] = node
		r.mu.Unlock()
		return node, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Node), nil
}

func (r *registry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = make(map[string]*Node)
	slog.Debug("surface registry reset")
}
