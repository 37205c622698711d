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

package payrollapi

import (
	"fmt"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestFailureClassification(t *testing.T) {
	f := NewFailure(ReasonSelfPayment, fmt.Errorf("PY010701: Cannot send payment to yourself"))
	assert.Equal(t, ClassValidation, f.Class)
	assert.Regexp(t, "PY010701", f)

	wrapped := fmt.Errorf("outer: %w", f)
	assert.True(t, HasReason(wrapped, ReasonSelfPayment))
	assert.False(t, HasReason(wrapped, ReasonRejected))
	assert.Equal(t, ClassValidation, ClassOf(wrapped))
	assert.Empty(t, ClassOf(fmt.Errorf("plain")))

	assert.Equal(t, ClassLedger, NewFailure("Unknown", nil).Class)
	assert.Equal(t, "Unknown", NewFailure("Unknown", nil).Error())
}

func TestPlaceholderAndClone(t *testing.T) {
	assert.True(t, (&BatchEntry{Address: "0x1", Amount: "1"}).IsPlaceholder())
	assert.False(t, (&BatchEntry{Address: "0x1", Amount: "1", Memo: "m"}).IsPlaceholder())

	amount := uint64(1000)
	pr := &PaymentRecord{ID: 1, Sender: *types.RandAddress(), DecryptedAmount: &amount}
	c := pr.Clone()
	*c.DecryptedAmount = 5
	assert.Equal(t, uint64(1000), *pr.DecryptedAmount)
}
