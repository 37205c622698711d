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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntHelpers(t *testing.T) {
	assert.Equal(t, 10, Int(nil, 10))
	assert.Equal(t, 5, Int(P(5), 10))
	assert.Equal(t, 10, IntMin(nil, 1, 10))
	assert.Equal(t, 1, IntMin(P(0), 1, 10))
	assert.Equal(t, 3, IntMin(P(3), 1, 10))
}

func TestFloatAndBool(t *testing.T) {
	assert.Equal(t, 1.5, Float64Min(nil, 1.0, 1.5))
	assert.Equal(t, 1.0, Float64Min(P(0.5), 1.0, 1.5))
	assert.Equal(t, 2.0, Float64Min(P(2.0), 1.0, 1.5))
	assert.True(t, Bool(nil, true))
	assert.False(t, Bool(P(false), true))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "def", StringNotEmpty(nil, "def"))
	assert.Equal(t, "def", StringNotEmpty(P(""), "def"))
	assert.Equal(t, "val", StringNotEmpty(P("val"), "def"))
	assert.Equal(t, []string{"a"}, StringSlice(nil, []string{"a"}))
	assert.Equal(t, []string{}, StringSlice([]string{}, []string{"a"}))
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 5*time.Second, DurationMin(nil, 0, "5s"))
	assert.Equal(t, 5*time.Second, DurationMin(P("wrong"), 0, "5s"))
	assert.Equal(t, time.Second, DurationMin(P("10ms"), time.Second, "5s"))
	assert.Equal(t, 2*time.Minute, DurationMin(P("2m"), time.Second, "5s"))
	assert.Equal(t, int64(2), DurationSeconds(P("1500ms"), 0, "5s"))
}

func TestByteSize(t *testing.T) {
	assert.Equal(t, int64(1024*1024), ByteSize(nil, 0, "1Mb"))
	assert.Equal(t, int64(1024), ByteSize(P("1Kb"), 0, "1Mb"))
	assert.Equal(t, int64(2048), ByteSize(P("1Kb"), 2048, "1Mb"))
	assert.Equal(t, int64(1024*1024), ByteSize(P("bad"), 0, "1Mb"))
}
