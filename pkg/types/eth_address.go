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
	"encoding/json"
	"strings"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// EthAddress is an SQL serializable version of ethtypes.Address0xHex
type EthAddress [20]byte

var zeroAddress = EthAddress{}

// ParseEthAddress accepts 40 hex chars with or without the 0x prefix, in any case
func ParseEthAddress(s string) (*EthAddress, error) {
	a, err := ethtypes.NewAddress(s)
	if err != nil {
		return nil, err
	}
	return (*EthAddress)(a), nil
}

// ParseEthAddressStrict additionally requires the 0x prefix, and enforces the
// EIP-55 checksum when the hex digits are mixed case.
func ParseEthAddressStrict(ctx context.Context, s string) (*EthAddress, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, i18n.NewError(ctx, msgs.MsgTypesInvalidAddress, s)
	}
	a, err := ethtypes.NewAddress(s)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgTypesInvalidAddress, s)
	}
	digits := s[2:]
	if strings.ToLower(digits) != digits && strings.ToUpper(digits) != digits {
		if (*ethtypes.AddressWithChecksum)(a).String() != "0x"+digits {
			return nil, i18n.NewError(ctx, msgs.MsgTypesAddressChecksumFailed, s)
		}
	}
	return (*EthAddress)(a), nil
}

func MustEthAddress(s string) *EthAddress {
	a := ethtypes.MustNewAddress(s)
	return (*EthAddress)(a)
}

func RandAddress() *EthAddress {
	var a EthAddress
	copy(a[:], RandBytes(20))
	return &a
}

func (a *EthAddress) Address0xHex() *ethtypes.Address0xHex {
	return (*ethtypes.Address0xHex)(a)
}

func (a *EthAddress) Checksummed() string {
	return (*ethtypes.AddressWithChecksum)(a).String()
}

func (a *EthAddress) Equals(b *EthAddress) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func (a *EthAddress) IsZero() bool {
	return a == nil || *a == zeroAddress
}

func (a EthAddress) String() string {
	return a.Address0xHex().String()
}

func (a EthAddress) HexString() string {
	return hex.EncodeToString(a[:])
}

func (a *EthAddress) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseEthAddress(s)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

func (a EthAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Scan implements sql.Scanner
func (a *EthAddress) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		return nil
	case string:
		addr, err := ethtypes.NewAddress(src)
		if err != nil {
			return err
		}
		*a = EthAddress(*addr)
		return nil
	case []byte:
		if len(src) == 20 {
			copy((*a)[:], src)
			return nil
		}
		return a.Scan(string(src))
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, a)
	}
}

// Value implements sql.Valuer, always 40 chars with no prefix
func (a EthAddress) Value() (driver.Value, error) {
	return hex.EncodeToString(a[:]), nil
}
