// Copyright 2025 The Annoliate Authors
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

package router

import (
	"slices"
	"strings"
)

// endpoint is the terminal entry for one (method, template) registration.
// Capture names live here rather than on the trie nodes: two methods may
// register the same positional shape under different capture names, and
// each must report its own names at lookup time.
type endpoint struct {
	method   string
	template string
	handler  any
	captures []string // capture names in positional order, wildcard last
}

// edge is a literal child keyed by its exact segment string. Children are
// kept in a slice and scanned linearly; for the fan-out of real route
// tables this beats map hashing in the lookup hot path.
type edge struct {
	label string
	child *node
}

// node is one depth of the segment trie. Literal children, the single
// shared capture child, wildcard entries, and per-method terminals are
// orthogonal: a node may carry any combination.
//
// The trie is built during single-threaded registration and never mutated
// afterwards, which is what makes concurrent lookups safe without locking.
type node struct {
	edges     []edge
	capture   *node
	terminals map[string]*endpoint // method → complete route ending here
	wildcards map[string]*endpoint // method → wildcard tail rooted here
}

func (n *node) findChild(label string) *node {
	for i := range n.edges {
		if n.edges[i].label == label {
			return n.edges[i].child
		}
	}

	return nil
}

func (n *node) findOrCreateChild(label string) *node {
	if child := n.findChild(label); child != nil {
		return child
	}

	child := &node{}
	n.edges = append(n.edges, edge{label: label, child: child})

	return child
}

// insert walks or creates trie nodes for the template's segments and
// installs ep as the terminal. A capture segment descends into the shared
// capture child regardless of its declared name, so templates that differ
// only in capture naming collapse onto the same terminal slot and collide.
func (n *node) insert(segments []segment, ep *endpoint) error {
	current := n

	for _, seg := range segments {
		if seg.wildcard {
			// Validated to be the final segment by parseTemplate.
			if current.wildcards == nil {
				current.wildcards = make(map[string]*endpoint, 1)
			}
			if existing, ok := current.wildcards[ep.method]; ok {
				return &ConflictError{Method: ep.method, Template: ep.template, Existing: existing.template}
			}
			current.wildcards[ep.method] = ep

			return nil
		}

		if seg.isCapture() {
			if current.capture == nil {
				current.capture = &node{}
			}
			current = current.capture

			continue
		}

		current = current.findOrCreateChild(seg.literal)
	}

	if current.terminals == nil {
		current.terminals = make(map[string]*endpoint, 1)
	}
	if existing, ok := current.terminals[ep.method]; ok {
		return &ConflictError{Method: ep.method, Template: ep.template, Existing: existing.template}
	}
	current.terminals[ep.method] = ep

	return nil
}

// lookup walks the trie for a normalized path (no leading or trailing
// slash). At each depth a literal child is preferred; the capture child is
// the fallback, and a wildcard consumes the remainder. The walk is greedy:
// once a literal child matches, capture alternatives at that depth are
// never revisited, giving deterministic, registration-order-independent
// resolution.
//
// Captured raw segment values are appended to vals in positional order;
// the matched endpoint's capture names align with them one to one.
func (n *node) lookup(method, path string, vals []string) (*endpoint, []string, error) {
	current := n
	pathLen := len(path)
	start := 0

	if pathLen > 0 {
		for start < pathLen {
			end := start
			for end < pathLen && path[end] != '/' {
				end++
			}
			seg := path[start:end]

			if next := current.findChild(seg); next != nil {
				current = next
			} else if current.capture != nil {
				vals = append(vals, seg)
				current = current.capture
			} else if len(current.wildcards) > 0 {
				ep, ok := current.wildcards[method]
				if !ok {
					return nil, nil, &MethodNotAllowedError{
						Method: method, Path: path, Allow: sortedMethods(current.wildcards),
					}
				}
				vals = append(vals, path[start:])

				return ep, vals, nil
			} else {
				return nil, nil, ErrRouteNotFound
			}

			start = end + 1
		}
	}

	if ep, ok := current.terminals[method]; ok {
		return ep, vals, nil
	}
	if len(current.terminals) > 0 {
		return nil, nil, &MethodNotAllowedError{
			Method: method, Path: path, Allow: sortedMethods(current.terminals),
		}
	}

	return nil, nil, ErrRouteNotFound
}

func sortedMethods(endpoints map[string]*endpoint) []string {
	methods := make([]string, 0, len(endpoints))
	for m := range endpoints {
		methods = append(methods, m)
	}
	slices.Sort(methods)

	return methods
}

// templatePath renders the stored template in normalized form for
// introspection listings.
func templatePath(segments []segment) string {
	if len(segments) == 0 {
		return "/"
	}

	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteByte('/')
		switch {
		case seg.wildcard:
			sb.WriteString("{" + seg.capture + "...}")
		case seg.isCapture():
			sb.WriteString("{" + seg.capture + "}")
		default:
			sb.WriteString(seg.literal)
		}
	}

	return sb.String()
}
