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

	"github.com/stretchr/testify/suite"
)

// TrieTestSuite exercises the raw trie through insert and lookup, below the
// Router's normalization and fast-path layers.
type TrieTestSuite struct {
	suite.Suite
	root *node
}

func (s *TrieTestSuite) SetupTest() {
	s.root = &node{}
}

func (s *TrieTestSuite) mustInsert(method, template string) *endpoint {
	segments, err := parseTemplate(template)
	s.Require().NoError(err)

	ep := &endpoint{
		method:   method,
		template: templatePath(segments),
		captures: captureNames(segments),
	}
	s.Require().NoError(s.root.insert(segments, ep))

	return ep
}

func (s *TrieTestSuite) lookup(method, path string) (*endpoint, []string, error) {
	return s.root.lookup(method, path, make([]string, 0, 8))
}

func (s *TrieTestSuite) TestLiteralWalk() {
	want := s.mustInsert("GET", "/api/users/list")

	ep, vals, err := s.lookup("GET", "api/users/list")
	s.Require().NoError(err)
	s.Same(want, ep)
	s.Empty(vals)
}

func (s *TrieTestSuite) TestCaptureCollectsValues() {
	s.mustInsert("GET", "/api/{version}/events/{date}")

	ep, vals, err := s.lookup("GET", "api/v2/events/2026-08-25")
	s.Require().NoError(err)
	s.Equal([]string{"version", "date"}, ep.captures)
	s.Equal([]string{"v2", "2026-08-25"}, vals)
}

func (s *TrieTestSuite) TestLiteralBeatsCapture() {
	literal := s.mustInsert("GET", "/api/assets/satellites/{id}")
	s.mustInsert("GET", "/api/assets/{kind}/{id}")

	ep, vals, err := s.lookup("GET", "api/assets/satellites/42")
	s.Require().NoError(err)
	s.Same(literal, ep)
	s.Equal([]string{"42"}, vals)

	// Other kinds still reach the capture route.
	ep, vals, err = s.lookup("GET", "api/assets/rovers/7")
	s.Require().NoError(err)
	s.Equal([]string{"kind", "id"}, ep.captures)
	s.Equal([]string{"rovers", "7"}, vals)
}

func (s *TrieTestSuite) TestGreedyLiteralNeverBacktracks() {
	// A literal match at one depth commits the walk even when only the
	// capture branch could complete the path.
	s.mustInsert("GET", "/files/special")
	s.mustInsert("GET", "/files/{name}/meta")

	_, _, err := s.lookup("GET", "files/special/meta")
	s.Require().ErrorIs(err, ErrRouteNotFound)
}

func (s *TrieTestSuite) TestSameShapeDifferentNamesConflicts() {
	s.mustInsert("GET", "/items/{x}")

	segments, err := parseTemplate("/items/{y}")
	s.Require().NoError(err)
	err = s.root.insert(segments, &endpoint{method: "GET", template: "/items/{y}"})

	var conflict *ConflictError
	s.Require().ErrorAs(err, &conflict)
	s.Equal("/items/{x}", conflict.Existing)
}

func (s *TrieTestSuite) TestSameShapeDifferentMethodsCoexist() {
	s.mustInsert("GET", "/items/{id}")
	s.mustInsert("DELETE", "/items/{key}")

	ep, _, err := s.lookup("GET", "items/5")
	s.Require().NoError(err)
	s.Equal([]string{"id"}, ep.captures)

	ep, _, err = s.lookup("DELETE", "items/5")
	s.Require().NoError(err)
	s.Equal([]string{"key"}, ep.captures)
}

func (s *TrieTestSuite) TestDuplicateRouteConflicts() {
	s.mustInsert("POST", "/events")

	segments, err := parseTemplate("/events")
	s.Require().NoError(err)
	err = s.root.insert(segments, &endpoint{method: "POST", template: "/events"})

	var conflict *ConflictError
	s.Require().ErrorAs(err, &conflict)
}

func (s *TrieTestSuite) TestWildcardConsumesRemainder() {
	s.mustInsert("GET", "/files/{path...}")

	ep, vals, err := s.lookup("GET", "files/docs/2026/report.pdf")
	s.Require().NoError(err)
	s.Equal([]string{"path"}, ep.captures)
	s.Equal([]string{"docs/2026/report.pdf"}, vals)
}

func (s *TrieTestSuite) TestWildcardRequiresAtLeastOneSegment() {
	s.mustInsert("GET", "/files/{path...}")

	_, _, err := s.lookup("GET", "files")
	s.Require().ErrorIs(err, ErrRouteNotFound)
}

func (s *TrieTestSuite) TestMethodNotAllowed() {
	s.mustInsert("GET", "/events/{date}")
	s.mustInsert("PUT", "/events/{date}")

	_, _, err := s.lookup("DELETE", "events/2026-08-25")

	var mna *MethodNotAllowedError
	s.Require().ErrorAs(err, &mna)
	s.Equal([]string{"GET", "PUT"}, mna.Allow)
	// Minimal handling that only checks for not-found still catches it.
	s.Require().ErrorIs(err, ErrRouteNotFound)
}

func (s *TrieTestSuite) TestNotFoundAtEveryDepth() {
	s.mustInsert("GET", "/a/b/c")

	for _, path := range []string{"x", "a/x", "a/b/x", "a/b/c/d", "a/b"} {
		_, _, err := s.lookup("GET", path)
		s.Require().ErrorIs(err, ErrRouteNotFound, "path %q", path)
	}
}

func (s *TrieTestSuite) TestRootTerminal() {
	s.mustInsert("GET", "/")

	ep, vals, err := s.lookup("GET", "")
	s.Require().NoError(err)
	s.Equal("/", ep.template)
	s.Empty(vals)
}

func TestTrieSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TrieTestSuite))
}
