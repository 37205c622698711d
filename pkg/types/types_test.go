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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEthAddressStrict(t *testing.T) {
	ctx := context.Background()

	a, err := ParseEthAddressStrict(ctx, "0xC86762bC822254eA7c1D9156f17B7010131967E2")
	require.NoError(t, err)
	assert.Equal(t, "0xc86762bc822254ea7c1d9156f17b7010131967e2", a.String())
	assert.Equal(t, "0xC86762bC822254eA7c1D9156f17B7010131967E2", a.Checksummed())

	_, err = ParseEthAddressStrict(ctx, "0xc86762bc822254ea7c1d9156f17b7010131967e2")
	require.NoError(t, err)

	_, err = ParseEthAddressStrict(ctx, "0xC86762BC822254EA7C1D9156F17B7010131967E2")
	require.NoError(t, err)

	_, err = ParseEthAddressStrict(ctx, "0xc86762bC822254eA7c1D9156f17B7010131967E2")
	assert.Regexp(t, "PY010106", err)

	_, err = ParseEthAddressStrict(ctx, "c86762bc822254ea7c1d9156f17b7010131967e2")
	assert.Regexp(t, "PY010105", err)

	_, err = ParseEthAddressStrict(ctx, "0x1234")
	assert.Regexp(t, "PY010105", err)

	_, err = ParseEthAddressStrict(ctx, "not an address")
	assert.Regexp(t, "PY010105", err)
}

func TestEthAddressJSONAndSQL(t *testing.T) {
	a := RandAddress()
	b, err := json.Marshal(a)
	require.NoError(t, err)
	var a2 EthAddress
	require.NoError(t, json.Unmarshal(b, &a2))
	assert.True(t, a.Equals(&a2))
	assert.False(t, a.IsZero())
	assert.True(t, (*EthAddress)(nil).IsZero())

	v, err := a.Value()
	require.NoError(t, err)
	assert.Len(t, v, 40)

	var a3 EthAddress
	require.NoError(t, a3.Scan(v))
	assert.Equal(t, *a, a3)
	require.NoError(t, a3.Scan(a[:]))
	assert.Regexp(t, "PY010101", a3.Scan(42))

	assert.Error(t, json.Unmarshal([]byte(`"wrong"`), &a3))
	assert.Error(t, json.Unmarshal([]byte(`{}`), &a3))
}

func TestBytes32(t *testing.T) {
	ctx := context.Background()
	r := RandBytes32()
	p, err := ParseBytes32(ctx, r.String())
	require.NoError(t, err)
	assert.Equal(t, r, p)
	assert.False(t, p.IsZero())
	assert.True(t, Bytes32{}.IsZero())

	_, err = ParseBytes32(ctx, "0x1234")
	assert.Regexp(t, "PY010103", err)
	_, err = ParseBytes32(ctx, "0xZZ")
	assert.Regexp(t, "PY010102", err)

	var s Bytes32
	require.NoError(t, s.Scan(r.HexString()))
	assert.Equal(t, r, s)
	require.NoError(t, s.Scan(r[:]))
	assert.Regexp(t, "PY010101", s.Scan(1))

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `"`+r.String()+`"`, string(b))
}

func TestHexBytes(t *testing.T) {
	hb := MustParseHexBytes("0xfeedbeef")
	assert.Equal(t, "0xfeedbeef", hb.String())
	assert.Equal(t, "feedbeef", hb.HexString())
	assert.Equal(t, "", HexBytes(nil).String())
	assert.True(t, hb.Equals(HexBytes{0xfe, 0xed, 0xbe, 0xef}))

	var hb2 HexBytes
	require.NoError(t, json.Unmarshal([]byte(`"FEEDBEEF"`), &hb2))
	assert.Equal(t, hb, hb2)
	assert.Regexp(t, "PY010102", json.Unmarshal([]byte(`"wrong"`), &hb2))

	require.NoError(t, hb2.Scan("0x01"))
	assert.Equal(t, HexBytes{0x01}, hb2)
	assert.Regexp(t, "PY010101", hb2.Scan(false))

	v, err := HexBytes(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestHexUint64(t *testing.T) {
	var hi HexUint64
	require.NoError(t, json.Unmarshal([]byte(`"0x1f"`), &hi))
	assert.Equal(t, uint64(31), hi.Uint64())
	require.NoError(t, json.Unmarshal([]byte(`"1700000000"`), &hi))
	assert.Equal(t, uint64(1700000000), hi.Uint64())
	require.NoError(t, json.Unmarshal([]byte(`12345`), &hi))
	assert.Equal(t, uint64(12345), hi.Uint64())

	assert.Regexp(t, "PY010104", json.Unmarshal([]byte(`"-1"`), &hi))
	assert.Regexp(t, "PY010104", json.Unmarshal([]byte(`"0x10000000000000000"`), &hi))
	assert.Regexp(t, "PY010101", json.Unmarshal([]byte(`true`), &hi))

	b, err := json.Marshal(HexUint64(255))
	require.NoError(t, err)
	assert.Equal(t, `"0xff"`, string(b))
}

func TestShortID(t *testing.T) {
	assert.Len(t, ShortID(), 12)
	assert.NotEqual(t, ShortID(), ShortID())
	assert.Len(t, RandHex(8), 16)
}

func TestTimestamp(t *testing.T) {
	ts := MustTimestamp(t, "2025-03-01T10:20:30.123456789Z")
	assert.Equal(t, "2025-03-01T10:20:30.123456789Z", ts.String())

	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-01T10:20:30.123456789Z"`, string(b))

	var ts2 Timestamp
	require.NoError(t, json.Unmarshal(b, &ts2))
	assert.Equal(t, ts, ts2)

	require.NoError(t, json.Unmarshal([]byte(`1740824430`), &ts2))
	assert.Equal(t, Timestamp(1740824430000000000), ts2)
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts2))
	assert.Zero(t, ts2)
	assert.Regexp(t, "PY010108", json.Unmarshal([]byte(`"yesterday"`), &ts2))
	assert.Regexp(t, "PY010101", ts2.Scan(1.5))

	v, err := ts.Value()
	require.NoError(t, err)
	require.NoError(t, ts2.Scan(v))
	assert.Equal(t, ts, ts2)

	b, err = json.Marshal(Timestamp(0))
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
	assert.NotZero(t, TimestampNow())
}

func MustTimestamp(t *testing.T, s string) Timestamp {
	ts, err := ParseTimeString(s)
	require.NoError(t, err)
	return ts
}
