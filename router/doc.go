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

// Package router maps (method, path) pairs to registered handlers and
// extracts path parameters.
//
// Routes are declared as templates such as "/api/assets/{asset_id}", where
// a brace-wrapped name captures exactly one path segment and a trailing
// "{name...}" captures the remaining path. Matching walks a segment trie:
// a literal child always wins over the capture child at the same depth, so
// "/api/assets/satellites/{id}" can never lose to "/api/assets/{x}/{y}".
// Lookup cost is proportional to path depth, independent of route count,
// and capture-free routes take a full-path fast lookup.
//
// Two templates that match the same positional shape for the same method
// conflict at registration, even if their capture names differ. The route
// table is assembled once at startup: registration is single-threaded,
// [Router.Freeze] seals the table, and afterwards lookups are lock-free and
// safe for arbitrary concurrency because nothing mutates.
//
// The router holds handler references as opaque values and performs no I/O;
// binding handler inputs is the binding package's job, and composing the
// two is the job of the transport layer.
package router
