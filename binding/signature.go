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

import "fmt"

// Source identifies where a parameter's raw value comes from.
type Source int

const (
	// SourcePath takes the value from a route capture.
	SourcePath Source = iota

	// SourceQuery takes the value from the URL query string.
	SourceQuery

	// SourceBody takes the value from a decoded request body field.
	SourceBody

	// SourceContext takes a value injected by the transport layer, passed
	// through without coercion.
	SourceContext
)

// String returns the source name as used in error messages.
func (s Source) String() string {
	switch s {
	case SourcePath:
		return "path"
	case SourceQuery:
		return "query"
	case SourceBody:
		return "body"
	case SourceContext:
		return "context"
	default:
		return "unknown"
	}
}

// Param declares one handler parameter: its name, the request data source
// it binds from, the kind its raw value is coerced to, and optionality.
//
// Default, when non-nil, must already hold the typed representation for
// Kind (an int64 for KindInt, and so on): declared defaults are used
// without coercion at request time. A parameter with a default is
// implicitly optional.
type Param struct {
	Name     string
	Source   Source
	Kind     Kind
	Required bool
	Default  any
}

// Signature is the static description of a handler's inputs and declared
// output shape. It is constructed once at registration, by hand or derived
// from a tagged struct via [ParamsOf], and is immutable and safe for
// concurrent use thereafter.
type Signature struct {
	Params   []Param // In declaration order; binding preserves this order
	Response ResponseDescriptor
}

// Validate checks the signature's internal consistency. It is intended to
// run at registration so malformed declarations fail startup, never a
// request.
func (s *Signature) Validate() error {
	seen := make(map[string]struct{}, len(s.Params))

	for _, p := range s.Params {
		if p.Name == "" {
			return fmt.Errorf("%w: parameters must be named", ErrInvalidSignature)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: parameter %q declared twice", ErrInvalidSignature, p.Name)
		}
		seen[p.Name] = struct{}{}

		if p.Required && p.Default != nil {
			return fmt.Errorf("%w: parameter %q is required and cannot declare a default",
				ErrInvalidSignature, p.Name)
		}
		if p.Default != nil && p.Source != SourceContext && !matchesKind(p.Default, p.Kind) {
			return fmt.Errorf("%w: parameter %q default %v (%T) does not match kind %s",
				ErrInvalidSignature, p.Name, p.Default, p.Default, p.Kind)
		}
		if p.Source == SourcePath && !p.Required {
			return fmt.Errorf("%w: path parameter %q cannot be optional", ErrInvalidSignature, p.Name)
		}
	}

	return s.Response.validate()
}

// PathParams returns the names of path-sourced parameters, in declaration
// order. The registration layer checks these against a route template's
// capture names so mismatches fail at startup, never at request time.
func (s *Signature) PathParams() []string {
	var names []string
	for _, p := range s.Params {
		if p.Source == SourcePath {
			names = append(names, p.Name)
		}
	}

	return names
}
