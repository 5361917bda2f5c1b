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
	"maps"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Struct tags recognized by [ParamsOf]:
//
//	path:"name"     bind from a route capture (always required)
//	query:"name"    bind from the query string
//	json:"name"     bind from a decoded body field
//	inject:"name"   bind from transport-injected context values
//	default:"raw"   declare a default, coerced once at derivation time
//
// A pointer field is optional; a value field is required unless it declares
// a default. Exactly one source tag per field.

type fieldInfo struct {
	param Param
	index int  // Field index within the struct
	ptr   bool // Field is a pointer; absent args leave it nil
}

type structInfo struct {
	fields []fieldInfo
}

var (
	// Derivation runs at registration, but registrations from several
	// goroutines share the cache, so reads stay lock-free via an atomic
	// pointer to an immutable map.
	structInfoPtr atomic.Pointer[map[reflect.Type]*structInfo]

	structInfoMu sync.Mutex
)

func init() {
	m := make(map[reflect.Type]*structInfo)
	structInfoPtr.Store(&m)
}

func getStructInfo(typ reflect.Type) (*structInfo, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: expected struct, got %s", ErrInvalidSignature, typ.Kind())
	}

	m := structInfoPtr.Load()
	if si, ok := (*m)[typ]; ok {
		return si, nil
	}

	structInfoMu.Lock()
	defer structInfoMu.Unlock()

	// Another goroutine may have parsed it while we waited.
	m = structInfoPtr.Load()
	if si, ok := (*m)[typ]; ok {
		return si, nil
	}

	si, err := parseStructInfo(typ)
	if err != nil {
		return nil, err
	}

	newMap := make(map[reflect.Type]*structInfo, len(*m)+1)
	maps.Copy(newMap, *m)
	newMap[typ] = si
	structInfoPtr.Store(&newMap)

	return si, nil
}

func parseStructInfo(typ reflect.Type) (*structInfo, error) {
	si := &structInfo{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, source, tagged, err := sourceTag(field)
		if err != nil {
			return nil, err
		}
		if !tagged {
			continue
		}

		fieldType := field.Type
		ptr := fieldType.Kind() == reflect.Pointer
		if ptr {
			fieldType = fieldType.Elem()
		}

		kind, err := kindOfType(fieldType)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidSignature, field.Name, err)
		}

		p := Param{Name: name, Source: source, Kind: kind, Required: !ptr}

		if raw, ok := field.Tag.Lookup("default"); ok {
			if source == SourcePath {
				return nil, fmt.Errorf("%w: field %s: path captures cannot declare defaults",
					ErrInvalidSignature, field.Name)
			}
			def, err := CoerceString(raw, kind)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s: bad default %q: %v",
					ErrInvalidSignature, field.Name, raw, err)
			}
			p.Default = def
			p.Required = false
		}

		si.fields = append(si.fields, fieldInfo{param: p, index: i, ptr: ptr})
	}

	if len(si.fields) == 0 {
		return nil, fmt.Errorf("%w: %s declares no bindable fields", ErrInvalidSignature, typ)
	}

	return si, nil
}

func sourceTag(field reflect.StructField) (name string, source Source, ok bool, err error) {
	tags := []struct {
		key    string
		source Source
	}{
		{"path", SourcePath},
		{"query", SourceQuery},
		{"json", SourceBody},
		{"inject", SourceContext},
	}

	found := 0
	for _, t := range tags {
		v, present := field.Tag.Lookup(t.key)
		if !present {
			continue
		}
		// Honor omitempty-style suffixes on json tags.
		v, _, _ = strings.Cut(v, ",")
		if v == "" || v == "-" {
			continue
		}
		name = v
		source = t.source
		found++
	}

	switch found {
	case 0:
		return "", 0, false, nil
	case 1:
		return name, source, true, nil
	default:
		return "", 0, false, fmt.Errorf("%w: field %s declares %d source tags, want one",
			ErrInvalidSignature, field.Name, found)
	}
}

var (
	uuidType     = reflect.TypeOf(uuid.UUID{})
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

func kindOfType(typ reflect.Type) (Kind, error) {
	switch typ {
	case uuidType:
		return KindUUID, nil
	case timeType:
		return KindTime, nil
	case durationType:
		return KindDuration, nil
	}

	switch typ.Kind() {
	case reflect.String:
		return KindString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, nil
	case reflect.Float32, reflect.Float64:
		return KindFloat, nil
	case reflect.Bool:
		return KindBool, nil
	default:
		return 0, fmt.Errorf("type %s has no wire kind", typ)
	}
}

// ParamsOf derives a parameter list from T's struct tags. Derivation is
// cached per type, so repeated calls are cheap; the error cases all reflect
// malformed declarations and wrap [ErrInvalidSignature].
func ParamsOf[T any]() ([]Param, error) {
	si, err := getStructInfo(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return nil, err
	}

	params := make([]Param, len(si.fields))
	for i, f := range si.fields {
		params[i] = f.param
	}

	return params, nil
}

// MustParamsOf is like [ParamsOf] but panics on malformed declarations.
// Intended for registration-time use where a bad struct should fail startup.
func MustParamsOf[T any]() []Param {
	params, err := ParamsOf[T]()
	if err != nil {
		panic(err)
	}

	return params
}

// BindStruct binds a request directly into a tagged struct: it derives T's
// parameters, runs [Bind], and populates the struct fields from the
// resulting arguments. Pointer fields are left nil when their optional
// parameter is absent.
func BindStruct[T any](req *Request) (T, error) {
	var out T

	typ := reflect.TypeOf(out)
	si, err := getStructInfo(typ)
	if err != nil {
		return out, err
	}

	params := make([]Param, len(si.fields))
	for i, f := range si.fields {
		params[i] = f.param
	}
	sig := &Signature{Params: params}

	args, err := Bind(sig, req)
	if err != nil {
		return out, err
	}

	rv := reflect.ValueOf(&out).Elem()
	for _, f := range si.fields {
		v, ok := args[f.param.Name]
		if !ok {
			continue
		}

		field := rv.Field(f.index)
		if f.ptr {
			p := reflect.New(field.Type().Elem())
			if err := assignValue(p.Elem(), v, f.param); err != nil {
				return out, err
			}
			field.Set(p)

			continue
		}
		if err := assignValue(field, v, f.param); err != nil {
			return out, err
		}
	}

	return out, nil
}

// assignValue sets a canonical bound value onto a struct field, converting
// across widths (int64 into int, float64 into float32) where Go allows it.
func assignValue(field reflect.Value, v any, p Param) error {
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)

		return nil
	}
	if rv.Type().ConvertibleTo(field.Type()) {
		field.Set(rv.Convert(field.Type()))

		return nil
	}

	return &BindError{
		Param: p.Name, Source: p.Source, Kind: p.Kind,
		Err: fmt.Errorf("%w: cannot assign %T to field of type %s", ErrTypeMismatch, v, field.Type()),
	}
}
