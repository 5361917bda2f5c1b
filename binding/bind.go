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

package binding

import (
	"fmt"
	"net/url"
)

// Request is the per-request envelope the transport hands to [Bind]: the
// route match's captures, the raw query values, the decoded body fields,
// and any transport-injected context values.
//
// A Request is owned exclusively by its in-flight request and must never be
// shared across concurrent requests.
type Request struct {
	Captures map[string]string
	Query    url.Values
	Body     map[string]any
	Context  map[string]any
}

// Args holds materialized handler arguments keyed by parameter name.
// Values are in canonical representation for their declared kind (see
// [Kind]). Optional parameters absent from the request and without a
// default are omitted.
//
// Args are produced fresh per request and discarded after the handler
// returns.
type Args map[string]any

// Get returns the argument and whether it was bound.
func (a Args) Get(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Int returns an int-kind argument, or def if absent.
func (a Args) Int(name string, def int64) int64 {
	if v, ok := a[name].(int64); ok {
		return v
	}

	return def
}

// String returns a string-kind argument, or def if absent.
func (a Args) String(name, def string) string {
	if v, ok := a[name].(string); ok {
		return v
	}

	return def
}

// Bool returns a bool-kind argument, or def if absent.
func (a Args) Bool(name string, def bool) bool {
	if v, ok := a[name].(bool); ok {
		return v
	}

	return def
}

// Bind materializes typed arguments for every parameter the signature
// declares, in declaration order. Any single failure aborts the whole
// binding: either all parameters bind, or the handler is never invoked.
//
// Failure classes, distinguishable via errors.Is on the returned
// [*BindError]:
//   - [ErrMissingParameter]: a required query or body parameter is absent
//   - [ErrTypeMismatch]: a raw value cannot be coerced to its kind
//   - [ErrUnboundCapture]: a path capture or context value the transport
//     owed is missing; an internal fault, since registration-time
//     cross-validation makes it unreachable for well-formed route tables
func Bind(sig *Signature, req *Request) (Args, error) {
	args := make(Args, len(sig.Params))

	for _, p := range sig.Params {
		switch p.Source {
		case SourcePath:
			raw, ok := req.Captures[p.Name]
			if !ok {
				return nil, &BindError{Param: p.Name, Source: p.Source, Kind: p.Kind, Err: ErrUnboundCapture}
			}
			v, err := CoerceString(raw, p.Kind)
			if err != nil {
				return nil, &BindError{
					Param: p.Name, Source: p.Source, Kind: p.Kind, Value: raw,
					Err: fmt.Errorf("%w: %w", ErrTypeMismatch, err),
				}
			}
			args[p.Name] = v

		case SourceQuery:
			if req.Query == nil || !req.Query.Has(p.Name) {
				if err := bindAbsent(args, p); err != nil {
					return nil, err
				}

				continue
			}
			raw := req.Query.Get(p.Name)
			v, err := CoerceString(raw, p.Kind)
			if err != nil {
				return nil, &BindError{
					Param: p.Name, Source: p.Source, Kind: p.Kind, Value: raw,
					Err: fmt.Errorf("%w: %w", ErrTypeMismatch, err),
				}
			}
			args[p.Name] = v

		case SourceBody:
			raw, ok := req.Body[p.Name]
			if !ok {
				if err := bindAbsent(args, p); err != nil {
					return nil, err
				}

				continue
			}
			v, err := Coerce(raw, p.Kind)
			if err != nil {
				return nil, &BindError{
					Param: p.Name, Source: p.Source, Kind: p.Kind, Value: fmt.Sprint(raw),
					Err: fmt.Errorf("%w: %w", ErrTypeMismatch, err),
				}
			}
			args[p.Name] = v

		case SourceContext:
			v, ok := req.Context[p.Name]
			if !ok {
				if !p.Required {
					if p.Default != nil {
						args[p.Name] = p.Default
					}

					continue
				}

				return nil, &BindError{Param: p.Name, Source: p.Source, Kind: p.Kind, Err: ErrUnboundCapture}
			}
			// Injected values pass through untouched; the transport and
			// handler agree on their types out of band.
			args[p.Name] = v

		default:
			return nil, &BindError{
				Param: p.Name, Source: p.Source, Kind: p.Kind,
				Err: fmt.Errorf("%w: unknown source", ErrInvalidSignature),
			}
		}
	}

	return args, nil
}

// bindAbsent resolves a query or body parameter with no raw value: the
// declared default applies without coercion, a required parameter fails,
// and an optional parameter without a default is simply omitted.
func bindAbsent(args Args, p Param) error {
	if p.Default != nil {
		args[p.Name] = p.Default

		return nil
	}
	if p.Required {
		return &BindError{Param: p.Name, Source: p.Source, Kind: p.Kind, Err: ErrMissingParameter}
	}

	return nil
}
