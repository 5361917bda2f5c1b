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

import "github.com/vmihailenco/msgpack/v5"

// MediaTypeMsgPack is the canonical MessagePack media type.
const MediaTypeMsgPack = "application/msgpack"

// MsgPack implements [Codec] using github.com/vmihailenco/msgpack.
type MsgPack struct{}

// Marshal wraps msgpack.Marshal.
func (MsgPack) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal wraps msgpack.Unmarshal.
func (MsgPack) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// MediaType returns "application/msgpack".
func (MsgPack) MediaType() string {
	return MediaTypeMsgPack
}
