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
	"reflect"

	"github.com/Taev-dev/annoliate/codec"
)

// ResponseDescriptor declares what a handler promises to return: a status
// code, a media type, and the Go shape of the body. A nil Shape declares a
// bodiless response.
//
// Like the rest of a [Signature], descriptors are static metadata fixed at
// registration. [Serialize] enforces them per request.
type ResponseDescriptor struct {
	// Status is the success status code. Zero defaults to 200 when a body
	// shape is declared and 204 when not.
	Status int

	// MediaType selects the codec used to encode the body. Empty defaults
	// to the registry's default media type.
	MediaType string

	// Shape is the declared Go type of the handler's return value. Use
	// [ShapeOf] to obtain it. Nil means the handler returns no body.
	Shape reflect.Type
}

func (d ResponseDescriptor) validate() error {
	if d.Status != 0 && (d.Status < 100 || d.Status > 599) {
		return fmt.Errorf("%w: response status %d out of range", ErrInvalidSignature, d.Status)
	}
	if d.Shape == nil && d.Status != 0 && d.Status != 204 && d.MediaType != "" {
		return fmt.Errorf("%w: media type %q declared without a body shape",
			ErrInvalidSignature, d.MediaType)
	}

	return nil
}

// status resolves the effective status code.
func (d ResponseDescriptor) status() int {
	if d.Status != 0 {
		return d.Status
	}
	if d.Shape == nil {
		return 204
	}

	return 200
}

// ShapeOf returns the reflect.Type for T, for use as a response shape.
func ShapeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// WireResponse is a fully encoded response ready to write to the transport.
type WireResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// Serialize checks the handler's returned value against the declared
// descriptor and encodes it through the codec registry. Every failure mode
// is a [*ContractError]: by the time a request reaches serialization the
// client did everything right, so a mismatch here is a server defect.
func Serialize(desc ResponseDescriptor, value any, codecs *codec.Registry) (*WireResponse, error) {
	if desc.Shape == nil {
		if value != nil {
			return nil, &ContractError{
				Got:    reflect.TypeOf(value),
				Reason: fmt.Sprintf("declared no body, handler returned %T", value),
			}
		}

		return &WireResponse{Status: desc.status()}, nil
	}

	if value == nil {
		return nil, &ContractError{
			Declared: desc.Shape,
			Reason:   fmt.Sprintf("declared %v, handler returned nil", desc.Shape),
		}
	}

	got := reflect.TypeOf(value)
	if !got.AssignableTo(desc.Shape) {
		return nil, &ContractError{Declared: desc.Shape, Got: got}
	}

	mediaType := desc.MediaType
	if mediaType == "" {
		mediaType = codec.MediaTypeJSON
	}
	c, err := codecs.Lookup(mediaType)
	if err != nil {
		return nil, &ContractError{
			Declared: desc.Shape,
			Got:      got,
			Reason:   fmt.Sprintf("no codec for declared media type %q", mediaType),
		}
	}

	body, err := c.Marshal(value)
	if err != nil {
		return nil, &ContractError{
			Declared: desc.Shape,
			Got:      got,
			Reason:   fmt.Sprintf("encoding as %s failed: %v", mediaType, err),
		}
	}

	return &WireResponse{Status: desc.status(), ContentType: c.MediaType(), Body: body}, nil
}
