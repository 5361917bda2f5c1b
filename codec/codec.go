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

// Package codec provides wire codecs keyed by media type.
//
// The router and binder are codec-agnostic: they consume and produce plain
// Go values, and a [Registry] supplies the encoding for a given Content-Type.
// The default registry covers JSON, YAML, TOML, and MessagePack.
package codec

import (
	"errors"
	"fmt"
	"mime"
)

// ErrUnknownMediaType indicates that no codec is registered for a media type.
var ErrUnknownMediaType = errors.New("no codec registered for media type")

// Codec converts between Go values and an encoded wire representation.
// Implementations must be safe for concurrent use.
type Codec interface {
	// Marshal converts the value v into an encoded byte slice.
	Marshal(v any) ([]byte, error)

	// Unmarshal converts the encoded data into the value pointed to by v.
	Unmarshal(data []byte, v any) error

	// MediaType returns the canonical media type this codec serves,
	// for example "application/json".
	MediaType() string
}

// Registry maps media types to codecs.
//
// Registration happens during startup; after that the registry is read-only
// and safe for concurrent lookups without locking.
type Registry struct {
	codecs map[string]Codec
}

// New returns a registry preloaded with the default codec set:
// JSON, YAML, TOML, and MessagePack.
func New() *Registry {
	r := &Registry{codecs: make(map[string]Codec, 8)}
	r.Register(JSON{})
	r.Register(YAML{})
	r.Register(TOML{})
	r.Register(MsgPack{})

	return r
}

// NewEmpty returns a registry with no codecs registered.
func NewEmpty() *Registry {
	return &Registry{codecs: make(map[string]Codec, 4)}
}

// Register adds a codec under its canonical media type, replacing any
// previous registration for that type.
func (r *Registry) Register(c Codec) {
	r.codecs[c.MediaType()] = c
}

// RegisterAlias makes an existing registration reachable under an additional
// media type, for example "text/json" → the JSON codec.
func (r *Registry) RegisterAlias(mediaType string, c Codec) {
	r.codecs[mediaType] = c
}

// Lookup returns the codec for the given Content-Type value. Media type
// parameters are tolerated, so "application/json; charset=utf-8" resolves
// the JSON codec. An empty content type resolves "application/json".
func (r *Registry) Lookup(contentType string) (Codec, error) {
	if contentType == "" {
		contentType = MediaTypeJSON
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMediaType, contentType)
	}

	c, ok := r.codecs[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMediaType, mediaType)
	}

	return c, nil
}

// MediaTypes returns the registered media types. The order is unspecified.
func (r *Registry) MediaTypes() []string {
	types := make([]string, 0, len(r.codecs))
	for mt := range r.codecs {
		types = append(types, mt)
	}

	return types
}
