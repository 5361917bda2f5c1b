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

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	r := New()

	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{"exact json", "application/json", MediaTypeJSON},
		{"json with charset", "application/json; charset=utf-8", MediaTypeJSON},
		{"yaml", "application/yaml", MediaTypeYAML},
		{"toml", "application/toml", MediaTypeTOML},
		{"msgpack", "application/msgpack", MediaTypeMsgPack},
		{"empty defaults to json", "", MediaTypeJSON},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := r.Lookup(tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.MediaType())
		})
	}
}

func TestRegistryLookup_Unknown(t *testing.T) {
	t.Parallel()

	r := New()

	_, err := r.Lookup("application/x-protobuf")
	require.ErrorIs(t, err, ErrUnknownMediaType)

	_, err = r.Lookup("not a media type //")
	require.ErrorIs(t, err, ErrUnknownMediaType)

	_, err = NewEmpty().Lookup("application/json")
	require.ErrorIs(t, err, ErrUnknownMediaType)
}

func TestRegisterAlias(t *testing.T) {
	t.Parallel()

	r := New()
	r.RegisterAlias("text/json", JSON{})

	c, err := r.Lookup("text/json; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, MediaTypeJSON, c.MediaType())
}

func TestCodecs_DecodeToFieldMap(t *testing.T) {
	t.Parallel()

	// Every default codec must round a field map through its own wire
	// format, since request bodies decode into map[string]any.
	tests := []struct {
		name  string
		codec Codec
	}{
		{"json", JSON{}},
		{"yaml", YAML{}},
		{"toml", TOML{}},
		{"msgpack", MsgPack{}},
	}

	in := map[string]any{"name": "launch", "count": int64(3)}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := tt.codec.Marshal(in)
			require.NoError(t, err)

			var out map[string]any
			require.NoError(t, tt.codec.Unmarshal(data, &out))
			assert.Equal(t, "launch", out["name"])
			assert.NotNil(t, out["count"])
		})
	}
}

func TestMediaTypes(t *testing.T) {
	t.Parallel()

	types := New().MediaTypes()
	assert.ElementsMatch(t, []string{
		MediaTypeJSON, MediaTypeYAML, MediaTypeTOML, MediaTypeMsgPack,
	}, types)
}
