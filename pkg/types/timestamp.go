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
	"database/sql/driver"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Timestamp is a nanosecond unix time. It is persisted as an integer and
// serialized to JSON as RFC3339 nanosecond UTC.
type Timestamp int64

func TimestampNow() Timestamp {
	return Timestamp(time.Now().UnixNano())
}

func TimestampFromUnix(unixTime int64) Timestamp {
	if unixTime < 1e10 {
		unixTime *= 1e3
	}
	if unixTime < 1e15 {
		unixTime *= 1e6
	}
	return Timestamp(unixTime)
}

func ParseTimeString(str string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		unixTime, perr := strconv.ParseInt(str, 10, 64)
		if perr != nil {
			return 0, i18n.NewError(context.Background(), msgs.MsgTypesTimeParseFail, str)
		}
		return TimestampFromUnix(unixTime), nil
	}
	return Timestamp(t.UnixNano()), nil
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(0, int64(ts))
}

func (ts Timestamp) String() string {
	if ts == 0 {
		return ""
	}
	return ts.Time().UTC().Format(time.RFC3339Nano)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts == 0 {
		return json.Marshal(nil)
	}
	return json.Marshal(ts.String())
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var v any
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	err := d.Decode(&v)
	if err == nil {
		err = ts.Scan(v)
	}
	return err
}

func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts = 0
		return nil
	case json.Number:
		return ts.scanString(v.String())
	case string:
		return ts.scanString(v)
	case int64:
		*ts = TimestampFromUnix(v)
		return nil
	default:
		return i18n.NewError(context.Background(), msgs.MsgTypesScanFail, src, ts)
	}
}

func (ts *Timestamp) scanString(s string) error {
	t, err := ParseTimeString(s)
	if err == nil {
		*ts = t
	}
	return err
}

func (ts Timestamp) Value() (driver.Value, error) {
	return int64(ts), nil
}
