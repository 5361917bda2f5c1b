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

import "strings"

// Group organizes related routes under a common template prefix. Grouping
// is purely a registration-time convenience: nesting flattens to prefix
// concatenation, and every registration lands in the parent router's one
// flat route table. Nothing group-shaped survives into lookup.
//
// Example:
//
//	api := r.Group("/api")
//	v2 := api.Group("/{api_version}")
//	v2.Register("GET", "/events/{date}", handler) // template: /api/{api_version}/events/{date}
type Group struct {
	router *Router
	prefix string
}

// Group creates a route group rooted at prefix.
func (r *Router) Group(prefix string) *Group {
	return &Group{router: r, prefix: prefix}
}

// Group creates a nested group whose prefix is the concatenation of the
// parent's prefix and the given one.
func (g *Group) Group(prefix string) *Group {
	return &Group{router: g.router, prefix: joinPrefix(g.prefix, prefix)}
}

// Prefix returns the accumulated template prefix for this group.
func (g *Group) Prefix() string {
	return g.prefix
}

// Register adds a route under the group's prefix. Errors are the same as
// [Router.Register].
func (g *Group) Register(method, template string, handler any) error {
	return g.router.Register(method, joinPrefix(g.prefix, template), handler)
}

// MustRegister is Register, panicking on error.
func (g *Group) MustRegister(method, template string, handler any) {
	if err := g.Register(method, template, handler); err != nil {
		panic(err)
	}
}

func joinPrefix(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "" {
		return prefix
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + len(path) + 1)
	sb.WriteString(strings.TrimSuffix(prefix, "/"))
	if !strings.HasPrefix(path, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(path)

	return sb.String()
}
