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

// Package binding materializes typed handler arguments from raw request
// data and serializes typed handler results back to the wire.
//
// A [Signature] is plain, statically constructed metadata: an ordered list
// of parameters (name, source, kind, required, default) plus a response
// descriptor. Signatures are built once at registration, by hand or derived
// from a tagged struct via [ParamsOf]; the per-request path in [Bind] never
// touches introspection machinery, only the signature value.
//
// [Bind] walks the parameter list in declaration order against a [Request]
// envelope (path captures, query values, decoded body fields, injected
// context values) and either produces a complete [Args] map or fails with
// a [*BindError]; no partially bound state escapes. [Serialize] checks the
// handler's returned value against the declared response shape and encodes
// it through a codec registry.
//
// Binding and serialization are pure, synchronous computations. Signatures
// are immutable after startup and safe for concurrent use; Request and Args
// values belong to a single in-flight request.
package binding
