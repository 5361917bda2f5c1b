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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRouteNotFound indicates that no registered route matches the
	// requested method and path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidTemplate indicates a malformed route template.
	ErrInvalidTemplate = errors.New("invalid route template")

	// ErrRouterFrozen indicates a registration attempt after Freeze.
	ErrRouterFrozen = errors.New("router is frozen")
)

// ConflictError is returned when a registration collides with an existing
// route: either an exact duplicate, or two templates whose positional shape
// is identical for the same method (capture names do not disambiguate).
//
// Registration errors are fatal to startup; no partial route table should
// ever be served.
type ConflictError struct {
	Method   string // HTTP method of the colliding registration
	Template string // Template being registered
	Existing string // Template already occupying the slot
}

// Error names both templates so the colliding declarations can be found.
func (e *ConflictError) Error() string {
	if e.Template == e.Existing {
		return fmt.Sprintf("route conflict: %s %q registered twice", e.Method, e.Template)
	}

	return fmt.Sprintf("route conflict: %s %q matches the same paths as %s %q",
		e.Method, e.Template, e.Method, e.Existing)
}

// MethodNotAllowedError is returned when the path matches a registered
// route shape but no handler exists for the requested method. Allow lists
// the methods that do match, ready for an Allow response header.
//
// It unwraps to [ErrRouteNotFound], so callers written against the uniform
// not-found model keep working: errors.Is(err, ErrRouteNotFound) is true.
type MethodNotAllowedError struct {
	Method string
	Path   string
	Allow  []string // Methods registered for this path, sorted
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for %q (allowed: %s)",
		e.Method, e.Path, strings.Join(e.Allow, ", "))
}

// Unwrap reports MethodNotAllowedError as a refinement of ErrRouteNotFound.
func (e *MethodNotAllowedError) Unwrap() error {
	return ErrRouteNotFound
}

// HTTPStatus returns 405.
func (e *MethodNotAllowedError) HTTPStatus() int {
	return 405
}
