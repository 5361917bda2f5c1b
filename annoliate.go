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

package annoliate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/Taev-dev/annoliate/binding"
	"github.com/Taev-dev/annoliate/codec"
	"github.com/Taev-dev/annoliate/router"
)

// HandlerFunc is an application handler: it receives the bound, typed
// arguments for its declared signature and returns the response value (or
// nil for bodiless responses).
type HandlerFunc func(ctx context.Context, args binding.Args) (any, error)

// operation pairs a handler with its signature. Stored as the router's
// opaque handler payload.
type operation struct {
	sig     *binding.Signature
	handler HandlerFunc
}

// App wires a route table, a codec registry, and a set of handler
// signatures into an http.Handler.
//
// Configure and register at startup, call [App.Freeze], then serve. A
// frozen App is immutable and safe for unlimited concurrent requests.
type App struct {
	router  *router.Router
	codecs  *codec.Registry
	log     *slog.Logger
	metrics *appMetrics
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithCodecs replaces the default codec registry.
func WithCodecs(codecs *codec.Registry) Option {
	return func(a *App) {
		a.codecs = codecs
	}
}

// WithMeterProvider enables request metrics through the given provider.
// Without it the App records nothing.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(a *App) {
		a.metrics = newAppMetrics(provider)
	}
}

// New constructs an App with the default codec registry and logger.
func New(opts ...Option) *App {
	a := &App{
		router: router.New(),
		codecs: codec.New(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Handle registers a handler for method and template under the given
// signature. The signature is validated and its path parameters are
// cross-checked against the template's capture names, so every mismatch a
// request could trip over fails here instead.
func (a *App) Handle(method, template string, sig *binding.Signature, fn HandlerFunc) error {
	if sig == nil {
		return fmt.Errorf("register %s %s: nil signature", method, template)
	}
	if fn == nil {
		return fmt.Errorf("register %s %s: nil handler", method, template)
	}
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("register %s %s: %w", method, template, err)
	}

	captures, err := router.Captures(template)
	if err != nil {
		return fmt.Errorf("register %s %s: %w", method, template, err)
	}
	for _, name := range sig.PathParams() {
		if !slices.Contains(captures, name) {
			return fmt.Errorf("register %s %s: signature binds path parameter %q, template does not capture it",
				method, template, name)
		}
	}

	op := &operation{sig: sig, handler: fn}
	if err := a.router.Register(method, template, op); err != nil {
		return fmt.Errorf("register %s %s: %w", method, template, err)
	}

	return nil
}

// MustHandle is like [Handle] but panics on registration errors. Intended
// for static route tables wired at startup.
func (a *App) MustHandle(method, template string, sig *binding.Signature, fn HandlerFunc) {
	if err := a.Handle(method, template, sig, fn); err != nil {
		panic(err)
	}
}

// Group returns a registration scope with a shared path prefix.
func (a *App) Group(prefix string) *Group {
	return &Group{app: a, prefix: prefix}
}

// Freeze seals the route table. Call after all registrations and before
// serving traffic.
func (a *App) Freeze() {
	a.router.Freeze()
}

// Routes returns the registered route table, for introspection and startup
// logging.
func (a *App) Routes() []router.RouteInfo {
	return a.router.Routes()
}

// Group scopes registrations under a path prefix. Groups nest.
type Group struct {
	app    *App
	prefix string
}

// Handle registers under the group's prefix.
func (g *Group) Handle(method, template string, sig *binding.Signature, fn HandlerFunc) error {
	return g.app.Handle(method, joinPrefix(g.prefix, template), sig, fn)
}

// MustHandle is like [Group.Handle] but panics on registration errors.
func (g *Group) MustHandle(method, template string, sig *binding.Signature, fn HandlerFunc) {
	g.app.MustHandle(method, joinPrefix(g.prefix, template), sig, fn)
}

// Group returns a nested scope.
func (g *Group) Group(prefix string) *Group {
	return &Group{app: g.app, prefix: joinPrefix(g.prefix, prefix)}
}

func joinPrefix(prefix, template string) string {
	if prefix == "" {
		return template
	}
	if template == "" {
		return prefix
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + len(template) + 1)
	sb.WriteString(strings.TrimSuffix(prefix, "/"))
	if !strings.HasPrefix(template, "/") {
		sb.WriteByte('/')
	}
	sb.WriteString(template)

	return sb.String()
}
