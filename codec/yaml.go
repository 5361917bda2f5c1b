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

package codec

import "gopkg.in/yaml.v3"

// MediaTypeYAML is the canonical YAML media type.
const MediaTypeYAML = "application/yaml"

// YAML implements [Codec] using gopkg.in/yaml.v3.
type YAML struct{}

// Marshal wraps yaml.Marshal.
func (YAML) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal wraps yaml.Unmarshal.
func (YAML) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// MediaType returns "application/yaml".
func (YAML) MediaType() string {
	return MediaTypeYAML
}
