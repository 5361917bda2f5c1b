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
	"fmt"
	"strings"
)

// segment is one parsed component of a route template. Exactly one of
// literal or capture applies: a capture segment has a non-empty name.
type segment struct {
	literal  string
	capture  string
	wildcard bool // capture consuming the remaining path; final segment only
}

func (s segment) isCapture() bool {
	return s.capture != ""
}

// parseTemplate splits a route template into segments, validating the
// capture syntax. Leading and trailing slashes are ignored, so "/users/"
// and "users" describe the same route; interior empty segments are
// preserved and treated as literals.
//
// Capture rules, matching the original template syntax:
//   - "{name}" is a capture and must be the entire segment; text adjacent
//     to a capture ("v{ver}") and multiple captures per segment are invalid
//   - captures must be named: "{}" is invalid
//   - "{name...}" is a wildcard tail and must be the final segment
//   - capture names must be unique within a template
func parseTemplate(template string) ([]segment, error) {
	trimmed := strings.Trim(template, "/")
	if trimmed == "" {
		return nil, nil
	}

	parts := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]struct{}, 2)

	for i, part := range parts {
		if !strings.ContainsAny(part, "{}") {
			segments = append(segments, segment{literal: part})

			continue
		}

		if !strings.HasPrefix(part, "{") || !strings.HasSuffix(part, "}") || len(part) < 2 {
			return nil, fmt.Errorf("%w %q: segment %q mixes a capture with literal text",
				ErrInvalidTemplate, template, part)
		}

		name := part[1 : len(part)-1]
		if strings.ContainsAny(name, "{}") {
			return nil, fmt.Errorf("%w %q: segment %q holds more than one capture",
				ErrInvalidTemplate, template, part)
		}

		wildcard := false
		if rest, ok := strings.CutSuffix(name, "..."); ok {
			wildcard = true
			name = rest
		}

		if name == "" {
			return nil, fmt.Errorf("%w %q: captures must be named", ErrInvalidTemplate, template)
		}
		if wildcard && i != len(parts)-1 {
			return nil, fmt.Errorf("%w %q: wildcard capture %q must be the final segment",
				ErrInvalidTemplate, template, part)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w %q: capture name %q appears twice",
				ErrInvalidTemplate, template, name)
		}
		seen[name] = struct{}{}

		segments = append(segments, segment{capture: name, wildcard: wildcard})
	}

	return segments, nil
}

// Captures returns the capture names declared by a template, in positional
// order. It lets the registration layer cross-validate handler signatures
// against templates before any request is served.
func Captures(template string) ([]string, error) {
	segments, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, seg := range segments {
		if seg.isCapture() {
			names = append(names, seg.capture)
		}
	}

	return names, nil
}

// captureNames extracts capture names from already-parsed segments.
func captureNames(segments []segment) []string {
	var names []string
	for _, seg := range segments {
		if seg.isCapture() {
			names = append(names, seg.capture)
		}
	}

	return names
}

// staticKey returns the normalized full-path key for a capture-free
// template, or ok=false if the template has any capture.
func staticKey(segments []segment) (string, bool) {
	var sb strings.Builder
	for i, seg := range segments {
		if seg.isCapture() {
			return "", false
		}
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(seg.literal)
	}

	return sb.String(), true
}
