// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
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

package types

import "encoding/json"

// RawJSON is like json.RawMessage, but with a String() for logging and a null default
type RawJSON []byte

func JSONString(v any) RawJSON {
	b, err := json.Marshal(v)
	if err != nil {
		return RawJSON("null")
	}
	return b
}

func (m RawJSON) String() string {
	return string(m.Bytes())
}

func (m RawJSON) Bytes() []byte {
	if m == nil {
		return []byte("null")
	}
	return m
}

func (m RawJSON) MarshalJSON() ([]byte, error) {
	return m.Bytes(), nil
}

func (m *RawJSON) UnmarshalJSON(data []byte) error {
	*m = append((*m)[0:0], data...)
	return nil
}
