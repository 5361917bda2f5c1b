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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/Taev-dev/annoliate"

// Resolve outcomes recorded on the route resolution counter.
const (
	outcomeMatched          = "matched"
	outcomeNotFound         = "not_found"
	outcomeMethodNotAllowed = "method_not_allowed"
)

// appMetrics records request-level counters through the OTel metric API.
// The App carries no exporter wiring; what provider to plug in is the
// host's decision. A nil *appMetrics is valid and records nothing.
type appMetrics struct {
	resolves metric.Int64Counter
	errors   metric.Int64Counter
}

func newAppMetrics(provider metric.MeterProvider) *appMetrics {
	meter := provider.Meter(meterName)

	resolves, err := meter.Int64Counter(
		"http_route_resolutions_total",
		metric.WithDescription("Route resolution attempts by outcome"),
	)
	if err != nil {
		return nil
	}

	errs, err := meter.Int64Counter(
		"http_request_errors_total",
		metric.WithDescription("Requests that finished with an error response"),
	)
	if err != nil {
		return nil
	}

	return &appMetrics{resolves: resolves, errors: errs}
}

func (m *appMetrics) recordResolve(ctx context.Context, method, outcome string) {
	if m == nil {
		return
	}

	m.resolves.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("outcome", outcome),
	))
}

func (m *appMetrics) recordError(ctx context.Context, method, code string, status int) {
	if m == nil {
		return
	}

	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("error.code", code),
		attribute.Int("http.response.status_code", status),
	))
}
