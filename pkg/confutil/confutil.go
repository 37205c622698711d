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
package confutil

import (
	"cmp"
	"math"
	"time"

	"github.com/docker/go-units"
)

// Config structs hold pointers so that "unset" can be told apart from a zero
// value. The log package depends on this package, so nothing here may log.

func P[T any](v T) *T {
	return &v
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

func atLeast[T cmp.Ordered](v *T, min, def T) T {
	if v == nil {
		return def
	}
	return max(*v, min)
}

// parsedAtLeast applies parse to the configured string. An unset or unparsable
// value falls back to parsing def, and a parsed value below min is raised to min.
func parsedAtLeast[T cmp.Ordered](sVal *string, min T, def string, parse func(string) (T, error)) T {
	if sVal != nil {
		if v, err := parse(*sVal); err == nil {
			return max(v, min)
		}
	}
	v, _ := parse(def)
	return v
}

func Int(iVal *int, def int) int {
	return orDefault(iVal, def)
}

func IntMin(iVal *int, min int, def int) int {
	return atLeast(iVal, min, def)
}

func Float64Min(fVal *float64, min float64, def float64) float64 {
	return atLeast(fVal, min, def)
}

func Bool(bVal *bool, def bool) bool {
	return orDefault(bVal, def)
}

func StringNotEmpty(sVal *string, def string) string {
	if s := orDefault(sVal, ""); s != "" {
		return s
	}
	return def
}

func StringSlice(sVal []string, def []string) []string {
	if sVal == nil {
		return def
	}
	return sVal
}

// DurationMin reads a Go duration string such as "250ms"
func DurationMin(sVal *string, min time.Duration, def string) time.Duration {
	return parsedAtLeast(sVal, min, def, time.ParseDuration)
}

// DurationSeconds rounds up to whole seconds, for settings the ledger takes in seconds
func DurationSeconds(sVal *string, min time.Duration, def string) int64 {
	return int64(math.Ceil(DurationMin(sVal, min, def).Seconds()))
}

// ByteSize accepts human readable sizes such as "100Mb"
func ByteSize(sVal *string, min int64, def string) int64 {
	return parsedAtLeast(sVal, min, def, units.RAMInBytes)
}
