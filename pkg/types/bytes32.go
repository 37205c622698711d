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

import (
	"context"
	"database/sql/driver"
	"encoding/hex"
	"strings"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Bytes32 holds transaction hashes, event topics and encrypted value handles
type Bytes32 [32]byte

func ParseBytes32(ctx context.Context, s string) (Bytes32, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Bytes32{}, i18n.NewError(ctx, msgs.MsgTypesInvalidHex, err)
	}
	if len(b) != 32 {
		return Bytes32{}, i18n.NewError(ctx, msgs.MsgTypesValueInvalidBytes32, len(b))
	}
	return Bytes32(b), nil
}

func RandBytes32() Bytes32 {
	return Bytes32(RandBytes(32))
}

func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

func (b Bytes32) String() string {
	return "0x" + hex.EncodeToString(b[:])
}

func (b Bytes32) HexString() string {
	return hex.EncodeToString(b[:])
}

func (b Bytes32) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes32) UnmarshalText(text []byte) error {
	parsed, err := ParseBytes32(context.Background(), string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b Bytes32) Value() (driver.Value, error) {
	return b.HexString(), nil
}

func (b *Bytes32) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return b.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 32 {
			copy(b[:], v)
			return nil
		}
		return b.UnmarshalText(v)
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, b)
	}
}
