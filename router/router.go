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
	"fmt"
	"strings"
)

// Router resolves (method, path) pairs to registered handlers.
//
// The zero value is not usable; construct with [New]. Registration must
// complete, and [Router.Freeze] should be called, before the first
// concurrent call to [Router.Resolve]. The router does not enforce that
// ordering internally; making registration visible to all request-handling
// goroutines before serving is the caller's startup sequencing.
type Router struct {
	root   *node
	static map[string]map[string]*endpoint // normalized path → method → endpoint
	routes []RouteInfo
	frozen bool
}

// Match is the result of a successful resolution: the handler reference
// registered for the route, the normalized template it was registered
// under, and the captured path parameters. Params is nil when the template
// declares no captures.
//
// A Match is built fresh per call; callers own it exclusively.
type Match struct {
	Handler  any
	Template string
	Params   map[string]string
}

// RouteInfo describes one registered route for introspection.
type RouteInfo struct {
	Method   string
	Template string
	Captures []string
}

// New returns an empty router. Construction cannot fail: the router is a
// plain data structure with no external dependencies.
func New() *Router {
	return &Router{
		root:   &node{},
		static: make(map[string]map[string]*endpoint, 16),
	}
}

// Register adds a route for the given method and template, bound to an
// opaque handler reference.
//
// Errors:
//   - [ErrInvalidTemplate]: malformed template syntax
//   - [*ConflictError]: duplicate route, or a template whose positional
//     shape collides with an existing one for the same method
//   - [ErrRouterFrozen]: the route table has been sealed
func (r *Router) Register(method, template string, handler any) error {
	if r.frozen {
		return fmt.Errorf("%w: cannot register %s %q", ErrRouterFrozen, method, template)
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return fmt.Errorf("%w %q: method must not be empty", ErrInvalidTemplate, template)
	}

	segments, err := parseTemplate(template)
	if err != nil {
		return err
	}

	ep := &endpoint{
		method:   method,
		template: templatePath(segments),
		handler:  handler,
		captures: captureNames(segments),
	}

	if err := r.root.insert(segments, ep); err != nil {
		return err
	}

	// Capture-free routes also enter the full-path fast table. The trie
	// already holds them, so fast-path answers are identical to a walk.
	if key, ok := staticKey(segments); ok {
		methods, ok := r.static[key]
		if !ok {
			methods = make(map[string]*endpoint, 1)
			r.static[key] = methods
		}
		methods[method] = ep
	}

	r.routes = append(r.routes, RouteInfo{
		Method:   method,
		Template: ep.template,
		Captures: ep.captures,
	})

	return nil
}

// MustRegister is Register, panicking on error. Intended for static route
// declarations at startup, where a conflict is a programming defect.
func (r *Router) MustRegister(method, template string, handler any) {
	if err := r.Register(method, template, handler); err != nil {
		panic(err)
	}
}

// Resolve maps an incoming method and path to a registered handler and the
// captured path parameters.
//
// Resolution is a pure function of the route table and its inputs: repeated
// calls with identical arguments return identical results, and the cost is
// bounded by the path depth, not the route count.
//
// Errors:
//   - [ErrRouteNotFound]: no route shape matches the path
//   - [*MethodNotAllowedError]: the path matches, the method does not
func (r *Router) Resolve(method, path string) (*Match, error) {
	method = strings.ToUpper(method)
	normalized := strings.Trim(path, "/")

	if methods, ok := r.static[normalized]; ok {
		ep, ok := methods[method]
		if !ok {
			return nil, &MethodNotAllowedError{Method: method, Path: path, Allow: sortedMethods(methods)}
		}

		return &Match{Handler: ep.handler, Template: ep.template}, nil
	}

	// Captured values accumulate on the stack for typical depths.
	buf := make([]string, 0, 8)

	ep, vals, err := r.root.lookup(method, normalized, buf)
	if err != nil {
		return nil, err
	}

	match := &Match{Handler: ep.handler, Template: ep.template}
	if len(ep.captures) > 0 {
		params := make(map[string]string, len(ep.captures))
		for i, name := range ep.captures {
			params[name] = vals[i]
		}
		match.Params = params
	}

	return match, nil
}

// Freeze seals the route table. Further registrations fail with
// [ErrRouterFrozen]. Freezing is idempotent.
func (r *Router) Freeze() {
	r.frozen = true
}

// Frozen reports whether the route table has been sealed.
func (r *Router) Frozen() bool {
	return r.frozen
}

// Routes lists the registered routes in registration order.
func (r *Router) Routes() []RouteInfo {
	out := make([]RouteInfo, len(r.routes))
	copy(out, r.routes)

	return out
}
