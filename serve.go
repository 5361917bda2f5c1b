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

package annoliate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Taev-dev/annoliate/binding"
	"github.com/Taev-dev/annoliate/codec"
	"github.com/Taev-dev/annoliate/router"
)

// maxBodyBytes caps request body reads. Large payload streaming is a
// reverse-proxy concern, not a binding concern.
const maxBodyBytes = 8 << 20

// errorBody is the wire shape for every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// ServeHTTP runs the request lifecycle: resolve the route, decode the
// body, bind arguments, invoke the handler, serialize the result. Each
// stage translates its failures to a status class; client errors log at
// debug, server defects at error.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	match, err := a.router.Resolve(r.Method, r.URL.Path)
	if err != nil {
		var mna *router.MethodNotAllowedError
		if errors.As(err, &mna) {
			a.metrics.recordResolve(ctx, r.Method, outcomeMethodNotAllowed)
			w.Header().Set("Allow", strings.Join(mna.Allow, ", "))
			a.writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", mna.Error(), "")

			return
		}

		a.metrics.recordResolve(ctx, r.Method, outcomeNotFound)
		a.writeError(w, r, http.StatusNotFound, "route_not_found", "no route matches the request path", "")

		return
	}
	a.metrics.recordResolve(ctx, r.Method, outcomeMatched)

	op := match.Handler.(*operation)

	body, ok := a.decodeBody(w, r)
	if !ok {
		return
	}

	req := &binding.Request{
		Captures: match.Params,
		Query:    r.URL.Query(),
		Body:     body,
	}

	args, err := binding.Bind(op.sig, req)
	if err != nil {
		var be *binding.BindError
		if errors.As(err, &be) {
			if be.HTTPStatus() >= 500 {
				a.log.ErrorContext(ctx, "binding hit an unbound value",
					"method", r.Method, "template", match.Template, "param", be.Param)
			}
			a.writeError(w, r, be.HTTPStatus(), be.Code(), be.Error(), be.Param)

			return
		}
		a.writeError(w, r, http.StatusInternalServerError, "internal_error", "request binding failed", "")

		return
	}

	result, err := op.handler(ctx, args)
	if err != nil {
		status, code := errorStatus(err)
		if status >= 500 {
			a.log.ErrorContext(ctx, "handler failed",
				"method", r.Method, "template", match.Template, "error", err)
			a.writeError(w, r, status, code, "internal server error", "")

			return
		}
		a.writeError(w, r, status, code, err.Error(), "")

		return
	}

	wire, err := binding.Serialize(op.sig.Response, result, a.codecs)
	if err != nil {
		// Always a server defect at this point; the contract details go to
		// the log, never the client.
		a.log.ErrorContext(ctx, "response contract violated",
			"method", r.Method, "template", match.Template, "error", err)
		a.writeError(w, r, http.StatusInternalServerError,
			"response_contract_violation", "internal server error", "")

		return
	}

	if wire.Body == nil {
		w.WriteHeader(wire.Status)

		return
	}
	w.Header().Set("Content-Type", wire.ContentType)
	w.WriteHeader(wire.Status)
	_, _ = w.Write(wire.Body)
}

// decodeBody reads and decodes the request body into a field map using the
// codec selected by Content-Type. A missing or empty body decodes to nil.
// On failure it writes the error response itself and reports ok=false.
func (a *App) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, true
	}

	c, err := a.codecs.Lookup(r.Header.Get("Content-Type"))
	if err != nil {
		a.writeError(w, r, http.StatusUnsupportedMediaType, "unsupported_media_type",
			"no codec for request content type", "")

		return nil, false
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, "unreadable_body", "failed to read request body", "")

		return nil, false
	}
	if len(raw) == 0 {
		return nil, true
	}

	var body map[string]any
	if err := c.Unmarshal(raw, &body); err != nil {
		a.writeError(w, r, http.StatusBadRequest, "malformed_body",
			"request body is not valid "+c.MediaType(), "")

		return nil, false
	}

	return body, true
}

// writeError emits the JSON error envelope and records the error counter.
// Client errors log at debug so misbehaving clients cannot flood the log.
func (a *App) writeError(w http.ResponseWriter, r *http.Request, status int, code, message, param string) {
	ctx := r.Context()
	a.metrics.recordError(ctx, r.Method, code, status)
	if status < 500 {
		a.log.DebugContext(ctx, "request rejected",
			"method", r.Method, "path", r.URL.Path, "status", status, "code", code)
	}

	w.Header().Set("Content-Type", codec.MediaTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{
		Code:    code,
		Message: message,
		Param:   param,
	}})
}

// errorStatus maps a handler error to a response status and code. Errors
// exposing HTTPStatus() and Code() choose their own; everything else is a
// 500.
func errorStatus(err error) (int, string) {
	status := http.StatusInternalServerError
	code := "internal_error"

	var withStatus interface{ HTTPStatus() int }
	if errors.As(err, &withStatus) {
		status = withStatus.HTTPStatus()
	}
	var withCode interface{ Code() string }
	if errors.As(err, &withCode) {
		code = withCode.Code()
	}

	return status, code
}
