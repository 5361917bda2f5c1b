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

// Package annoliate glues the route resolver and the parameter binder into
// an http.Handler.
//
// The subpackages do the real work: router matches paths against a segment
// trie and extracts captures, binding coerces raw request data into typed
// handler arguments and serializes results, and codec maps media types to
// encoders. This package owns the request lifecycle that connects them:
//
//	resolve → decode body → bind → invoke → serialize
//
// An [App] is configured with functional options, registered against
// handler signatures at startup, then frozen. Registration failures (bad
// templates, conflicting routes, signatures that reference captures the
// template does not declare) surface immediately; the request path only
// ever sees well-formed route tables.
//
// Basic use:
//
//	app := annoliate.New()
//	app.Handle(http.MethodGet, "/events/{date}", &binding.Signature{
//	    Params: []binding.Param{
//	        {Name: "date", Source: binding.SourcePath, Kind: binding.KindTime, Required: true},
//	    },
//	    Response: binding.ResponseDescriptor{Shape: binding.ShapeOf[EventList]()},
//	}, listEvents)
//	app.Freeze()
//	http.ListenAndServe(":8080", app)
package annoliate
