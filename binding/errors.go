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
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrMissingParameter indicates a required parameter absent from the
	// request. A client input error.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrTypeMismatch indicates a raw value that cannot be coerced to the
	// parameter's declared kind. A client input error.
	ErrTypeMismatch = errors.New("parameter type mismatch")

	// ErrUnboundCapture indicates a path capture or injected context value
	// the transport owed the binder but did not supply. Routes and
	// signatures are cross-validated at registration, so hitting this at
	// request time is a programming defect, not bad input.
	ErrUnboundCapture = errors.New("value absent from route match")

	// ErrResponseContract indicates a handler return value inconsistent
	// with its declared response descriptor. A server-side defect.
	ErrResponseContract = errors.New("response contract violation")

	// ErrInvalidSignature indicates a malformed signature declaration.
	ErrInvalidSignature = errors.New("invalid handler signature")
)

// BindError is a per-parameter binding failure. It names the parameter,
// where it was sourced from, the raw value, and the kind it failed to
// coerce to.
//
// Use [errors.Is] against [ErrMissingParameter], [ErrTypeMismatch], or
// [ErrUnboundCapture] to classify it.
type BindError struct {
	Param  string // Parameter name that failed binding
	Source Source // Where the raw value was sourced from
	Kind   Kind   // Declared parameter kind
	Value  string // Raw value that failed coercion, if any
	Err    error  // Underlying cause; wraps one of the sentinels
}

func (e *BindError) Error() string {
	if errors.Is(e.Err, ErrMissingParameter) {
		return fmt.Sprintf("parameter %q (%s): %v", e.Param, e.Source, ErrMissingParameter)
	}
	if errors.Is(e.Err, ErrUnboundCapture) {
		return fmt.Sprintf("parameter %q (%s): %v", e.Param, e.Source, e.Err)
	}

	return fmt.Sprintf("parameter %q (%s): cannot coerce %q to %s: %v",
		e.Param, e.Source, e.Value, e.Kind, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *BindError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the failure to a response class: client errors are 400,
// an unbound capture is an internal fault and maps to 500.
func (e *BindError) HTTPStatus() int {
	if errors.Is(e.Err, ErrUnboundCapture) {
		return 500
	}

	return 400
}

// Code returns a stable machine-readable error code.
func (e *BindError) Code() string {
	switch {
	case errors.Is(e.Err, ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(e.Err, ErrUnboundCapture):
		return "unbound_capture"
	default:
		return "type_mismatch"
	}
}

// ContractError reports a handler return value whose runtime shape does not
// match the declared response descriptor. It is deliberately distinct from
// [BindError]: this is a server bug, never bad client input, and should be
// logged as such rather than silently coerced.
type ContractError struct {
	Declared reflect.Type // Declared response shape; nil means "no body"
	Got      reflect.Type // Runtime type actually returned; nil for nil values
	Reason   string       // Human-readable explanation
}

func (e *ContractError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %s", ErrResponseContract, e.Reason)
	}

	return fmt.Sprintf("%v: declared %v, handler returned %v", ErrResponseContract, e.Declared, e.Got)
}

// Unwrap reports ContractError as an [ErrResponseContract].
func (e *ContractError) Unwrap() error {
	return ErrResponseContract
}

// HTTPStatus returns 500.
func (e *ContractError) HTTPStatus() int {
	return 500
}

// Code returns a stable machine-readable error code.
func (e *ContractError) Code() string {
	return "response_contract_violation"
}
