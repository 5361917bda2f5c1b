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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		want     []segment
	}{
		{"root", "/", nil},
		{"empty", "", nil},
		{"single literal", "/users", []segment{{literal: "users"}}},
		{"trailing slash ignored", "/users/", []segment{{literal: "users"}}},
		{"no leading slash", "users", []segment{{literal: "users"}}},
		{
			"literal then capture",
			"/users/{id}",
			[]segment{{literal: "users"}, {capture: "id"}},
		},
		{
			"interleaved",
			"/api/{version}/events/{date}",
			[]segment{{literal: "api"}, {capture: "version"}, {literal: "events"}, {capture: "date"}},
		},
		{
			"wildcard tail",
			"/files/{path...}",
			[]segment{{literal: "files"}, {capture: "path", wildcard: true}},
		},
		{"bare wildcard", "/{rest...}", []segment{{capture: "rest", wildcard: true}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseTemplate(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
	}{
		{"unnamed capture", "/users/{}"},
		{"capture with literal prefix", "/users/v{ver}"},
		{"capture with literal suffix", "/users/{id}x"},
		{"two captures one segment", "/users/{a}{b}"},
		{"wildcard not final", "/files/{path...}/meta"},
		{"duplicate capture name", "/{id}/sub/{id}"},
		{"stray open brace", "/users/{id"},
		{"stray close brace", "/users/id}"},
		{"unnamed wildcard", "/files/{...}"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseTemplate(tt.template)
			require.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestCaptures(t *testing.T) {
	t.Parallel()

	names, err := Captures("/api/{version}/events/{date}")
	require.NoError(t, err)
	assert.Equal(t, []string{"version", "date"}, names)

	names, err = Captures("/static/path")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = Captures("/bad/{}")
	require.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestStaticKey(t *testing.T) {
	t.Parallel()

	segs, err := parseTemplate("/api/v2/events")
	require.NoError(t, err)
	key, ok := staticKey(segs)
	require.True(t, ok)
	assert.Equal(t, "api/v2/events", key)

	segs, err = parseTemplate("/api/{version}")
	require.NoError(t, err)
	_, ok = staticKey(segs)
	assert.False(t, ok)

	key, ok = staticKey(nil)
	require.True(t, ok)
	assert.Equal(t, "", key)
}

func TestTemplatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		template string
		want     string
	}{
		{"/", "/"},
		{"/users", "/users"},
		{"users/", "/users"},
		{"/api/{version}/events/{date}", "/api/{version}/events/{date}"},
		{"/files/{path...}", "/files/{path...}"},
	}

	for _, tt := range tests {
		tt := tt
		segs, err := parseTemplate(tt.template)
		require.NoError(t, err)
		assert.Equal(t, tt.want, templatePath(segs))
	}
}
