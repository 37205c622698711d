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

package retry

import (
	"context"
	"fmt"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/confutil"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryLimited(t *testing.T) {
	r := NewRetryLimited(&payrollconf.RetryConfigWithMax{
		RetryConfig: payrollconf.RetryConfig{
			InitialDelay: confutil.P("1ms"),
			MaxDelay:     confutil.P("2ms"),
			Factor:       confutil.P(2.0),
		},
		MaxAttempts: confutil.P(3),
	})
	attempts := 0
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		attempts = attempt
		return true, fmt.Errorf("pop")
	})
	assert.EqualError(t, err, "pop")
	assert.Equal(t, 3, attempts)
}

func TestRetrySucceeds(t *testing.T) {
	r := NewRetryIndefinite(&payrollconf.RetryConfig{InitialDelay: confutil.P("1ms")})
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		if attempt < 3 {
			return true, fmt.Errorf("not yet")
		}
		return true, nil
	})
	require.NoError(t, err)
}

func TestRetryNotRetryable(t *testing.T) {
	r := NewRetryIndefinite(&payrollconf.RetryConfig{})
	attempts := 0
	err := r.Do(context.Background(), func(attempt int) (bool, error) {
		attempts++
		return false, fmt.Errorf("fatal")
	})
	assert.EqualError(t, err, "fatal")
	assert.Equal(t, 1, attempts)
}

func TestRetryContextCancelled(t *testing.T) {
	r := NewRetryIndefinite(&payrollconf.RetryConfig{InitialDelay: confutil.P("10s")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Do(ctx, func(attempt int) (bool, error) {
		return true, fmt.Errorf("pop")
	})
	assert.Regexp(t, "PY010100", err)
}

func TestRetryDelayCapped(t *testing.T) {
	r := NewRetryIndefinite(&payrollconf.RetryConfig{
		InitialDelay: confutil.P("1ms"),
		MaxDelay:     confutil.P("1ms"),
		Factor:       confutil.P(100.0),
	})
	r.UTSetMaxAttempts(1)
	require.NoError(t, r.WaitDelay(context.Background(), 5))
}
