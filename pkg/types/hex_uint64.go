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
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// HexUint64 is serialized in JSON as 0x hex, and parsed from hex or base 10
type HexUint64 uint64

func ParseHexUint64(ctx context.Context, s string) (HexUint64, error) {
	bi, ok := new(big.Int).SetString(s, 0)
	if !ok || !bi.IsUint64() {
		return 0, i18n.NewError(ctx, msgs.MsgTypesInvalidUint64, s)
	}
	return HexUint64(bi.Uint64()), nil
}

func (hi HexUint64) Uint64() uint64 {
	return uint64(hi)
}

func (hi HexUint64) String() string {
	return hi.HexString0xPrefix()
}

func (hi HexUint64) HexString0xPrefix() string {
	return "0x" + strconv.FormatUint(uint64(hi), 16)
}

func (hi HexUint64) MarshalJSON() ([]byte, error) {
	return json.Marshal(hi.HexString0xPrefix())
}

func (hi *HexUint64) UnmarshalJSON(b []byte) error {
	var iVal any
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.UseNumber() // float64 loses precision
	err := decoder.Decode(&iVal)
	if err == nil {
		err = hi.Scan(iVal)
	}
	return err
}

func (hi *HexUint64) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseHexUint64(context.Background(), v)
		if err == nil {
			*hi = parsed
		}
		return err
	case json.Number:
		return hi.Scan(v.String())
	case int64:
		*hi = HexUint64(v)
		return nil
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, hi)
	}
}
