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
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the set of wire-coercible parameter types. Coercion is
// bidirectional and total within this set: every kind has a canonical Go
// representation that [CoerceString] and [Coerce] produce.
//
// Canonical representations: string, int64, float64, bool, uuid.UUID,
// time.Time, time.Duration.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindUUID
	KindTime
	KindDuration
)

// String returns the kind name as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindUUID:
		return "uuid"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	default:
		return "unknown"
	}
}

// timeLayouts are tried in order when coercing a time value. RFC3339 first,
// then the common laxer forms.
var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// CoerceString converts a raw string (path capture, query value) into the
// canonical representation for kind.
func CoerceString(raw string, kind Kind) (any, error) {
	switch kind {
	case KindString:
		return raw, nil

	case KindInt:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %w", err)
		}

		return i, nil

	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float: %w", err)
		}

		return f, nil

	case KindBool:
		return parseBoolGenerous(raw)

	case KindUUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID: %w", err)
		}

		return id, nil

	case KindTime:
		return parseTime(raw)

	case KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration: %w", err)
		}

		return d, nil

	default:
		return nil, fmt.Errorf("unsupported kind %d", kind)
	}
}

// Coerce converts a decoded body value into the canonical representation
// for kind. Codec decoders produce a mix of concrete numeric types (JSON
// hands back float64, MessagePack narrower integers), so numeric inputs
// are normalized through reflection; strings fall back to [CoerceString].
func Coerce(v any, kind Kind) (any, error) {
	if s, ok := v.(string); ok {
		return CoerceString(s, kind)
	}

	switch kind {
	case KindString:
		return nil, fmt.Errorf("expected string, got %T", v)

	case KindInt:
		return coerceInt(v)

	case KindFloat:
		if f, ok := normalizeFloat(v); ok {
			return f, nil
		}

		return nil, fmt.Errorf("expected number, got %T", v)

	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}

		return nil, fmt.Errorf("expected boolean, got %T", v)

	case KindUUID:
		if id, ok := v.(uuid.UUID); ok {
			return id, nil
		}

		return nil, fmt.Errorf("expected UUID string, got %T", v)

	case KindTime:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}

		return nil, fmt.Errorf("expected timestamp string, got %T", v)

	case KindDuration:
		if d, ok := v.(time.Duration); ok {
			return d, nil
		}

		return nil, fmt.Errorf("expected duration string, got %T", v)

	default:
		return nil, fmt.Errorf("unsupported kind %d", kind)
	}
}

// coerceInt accepts any integer-valued number. A float is accepted only
// when it is integral: JSON has one number type, so 42 arrives as 42.0.
func coerceInt(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("integer overflow: %d", u)
		}

		return int64(u), nil

	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("expected integer, got fractional %v", f)
		}

		return int64(f), nil

	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

func normalizeFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

// parseBoolGenerous accepts the usual spellings: true/false, 1/0, yes/no,
// on/off, t/f, y/n, case-insensitive.
func parseBoolGenerous(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}

func parseTime(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty time value")
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}

	return nil, fmt.Errorf("unable to parse time %q (tried RFC3339 and common date forms)", raw)
}

// matchesKind reports whether v already holds the canonical representation
// for kind. Used to validate declared defaults at registration.
func matchesKind(v any, kind Kind) bool {
	switch kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindInt:
		_, ok := v.(int64)
		return ok
	case KindFloat:
		_, ok := v.(float64)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindUUID:
		_, ok := v.(uuid.UUID)
		return ok
	case KindTime:
		_, ok := v.(time.Time)
		return ok
	case KindDuration:
		_, ok := v.(time.Duration)
		return ok
	default:
		return false
	}
}
