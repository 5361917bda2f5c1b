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
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceString(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	noon := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		kind Kind
		want any
	}{
		{"string passthrough", "hello", KindString, "hello"},
		{"int", "42", KindInt, int64(42)},
		{"negative int", "-7", KindInt, int64(-7)},
		{"float", "3.25", KindFloat, 3.25},
		{"float from integer literal", "10", KindFloat, 10.0},
		{"bool true", "true", KindBool, true},
		{"bool yes", "YES", KindBool, true},
		{"bool on", "on", KindBool, true},
		{"bool 0", "0", KindBool, false},
		{"bool n", "n", KindBool, false},
		{"uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", KindUUID, id},
		{"rfc3339 time", "2026-08-25T12:00:00Z", KindTime, noon},
		{"bare date", "2026-08-25", KindTime, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)},
		{"duration", "1h30m", KindDuration, 90 * time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CoerceString(tt.raw, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceString_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		kind Kind
	}{
		{"non-numeric int", "abc", KindInt},
		{"fractional int", "4.5", KindInt},
		{"empty int", "", KindInt},
		{"non-numeric float", "xyz", KindFloat},
		{"bool maybe", "maybe", KindBool},
		{"bool 2", "2", KindBool},
		{"malformed uuid", "not-a-uuid", KindUUID},
		{"malformed time", "yesterday", KindTime},
		{"empty time", "", KindTime},
		{"malformed duration", "90minutes", KindDuration},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := CoerceString(tt.raw, tt.kind)
			require.Error(t, err)
		})
	}
}

func TestCoerce_DecodedValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		kind Kind
		want any
	}{
		// JSON decoders hand back float64 for every number.
		{"integral float to int", 42.0, KindInt, int64(42)},
		{"int to int", 7, KindInt, int64(7)},
		{"uint8 to int", uint8(9), KindInt, int64(9)},
		{"int to float", 3, KindFloat, 3.0},
		{"float passthrough", 2.5, KindFloat, 2.5},
		{"bool passthrough", true, KindBool, true},
		{"string routed through CoerceString", "42", KindInt, int64(42)},
		{"uuid string", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", KindUUID,
			uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Coerce(tt.in, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{"fractional float to int", 4.5, KindInt},
		{"bool to int", true, KindInt},
		{"number to string", 42.0, KindString},
		{"number to bool", 1.0, KindBool},
		{"map to float", map[string]any{}, KindFloat},
		{"slice to uuid", []any{}, KindUUID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Coerce(tt.in, tt.kind)
			require.Error(t, err)
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "duration", KindDuration.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
