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

package validator

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

const (
	MaxMemoLength = 100
	MaxBatchSize  = 50
	// amounts are carried on-chain as encrypted 32 bit unsigned integers
	MaxAmount = math.MaxUint32
)

// Payment is a fully validated payment, ready for encryption
type Payment struct {
	Recipient types.EthAddress
	Amount    uint64
	Memo      string
}

func fail(ctx context.Context, reason payrollapi.FailureReason, key i18n.ErrorMessageKey, inserts ...any) error {
	return payrollapi.NewFailure(reason, i18n.NewError(ctx, key, inserts...))
}

// ValidateRecipient requires a 0x prefixed address (checksum enforced for mixed case),
// that is not the sender's own address
func ValidateRecipient(ctx context.Context, address string, self *types.EthAddress) (*types.EthAddress, error) {
	addr, err := types.ParseEthAddressStrict(ctx, address)
	if err != nil {
		return nil, fail(ctx, payrollapi.ReasonInvalidAddress, msgs.MsgValidationInvalidAddress, address)
	}
	if self != nil && addr.Equals(self) {
		return nil, fail(ctx, payrollapi.ReasonSelfPayment, msgs.MsgValidationSelfPayment)
	}
	return addr, nil
}

// ValidateAmount accepts only decimal digits, so signs, decimals and exponents are all rejected
func ValidateAmount(ctx context.Context, raw string) (uint64, error) {
	if raw == "" || strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, fail(ctx, payrollapi.ReasonInvalidAmount, msgs.MsgValidationInvalidAmount, raw)
	}
	amount, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || amount > MaxAmount {
		return 0, fail(ctx, payrollapi.ReasonAmountOutOfRange, msgs.MsgValidationAmountOutOfRange, raw, uint64(MaxAmount))
	}
	return amount, nil
}

// ValidateMemo counts characters, not bytes
func ValidateMemo(ctx context.Context, memo string, required bool) error {
	if required && memo == "" {
		return fail(ctx, payrollapi.ReasonMemoRequired, msgs.MsgValidationMemoRequired)
	}
	if n := utf8.RuneCountInString(memo); n > MaxMemoLength {
		return fail(ctx, payrollapi.ReasonMemoTooLong, msgs.MsgValidationMemoTooLong, n, MaxMemoLength)
	}
	return nil
}

// ValidatePayment runs every check for a single send
func ValidatePayment(ctx context.Context, recipient, amount, memo string, self *types.EthAddress) (*Payment, error) {
	addr, err := ValidateRecipient(ctx, recipient, self)
	if err != nil {
		return nil, err
	}
	value, err := ValidateAmount(ctx, amount)
	if err != nil {
		return nil, err
	}
	if err := ValidateMemo(ctx, memo, true); err != nil {
		return nil, err
	}
	return &Payment{Recipient: *addr, Amount: value, Memo: memo}, nil
}

// ValidateBatch drops placeholder rows, then validates every remaining row in order.
// The first invalid row fails the whole batch, reported with its 1-based row number.
func ValidateBatch(ctx context.Context, entries []*payrollapi.BatchEntry, self *types.EthAddress) ([]*Payment, error) {
	type row struct {
		num   int
		entry *payrollapi.BatchEntry
	}
	rows := make([]row, 0, len(entries))
	for i, e := range entries {
		if e != nil && !e.IsPlaceholder() {
			rows = append(rows, row{num: i + 1, entry: e})
		}
	}
	if len(rows) == 0 {
		return nil, fail(ctx, payrollapi.ReasonEmptyBatch, msgs.MsgValidationEmptyBatch)
	}

	payments := make([]*Payment, len(rows))
	for i, r := range rows {
		p, err := ValidatePayment(ctx, r.entry.Address, r.entry.Amount, r.entry.Memo, self)
		if err != nil {
			f, _ := payrollapi.AsFailure(err)
			return nil, payrollapi.NewFailure(f.Reason, i18n.NewError(ctx, msgs.MsgValidationBatchEntryInvalid, r.num, err.Error()))
		}
		payments[i] = p
	}
	if len(payments) > MaxBatchSize {
		return nil, fail(ctx, payrollapi.ReasonBatchTooLarge, msgs.MsgValidationBatchTooLarge, MaxBatchSize)
	}
	return payments, nil
}

// ParsePaymentID parses a user supplied decimal payment ID
func ParsePaymentID(ctx context.Context, raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fail(ctx, payrollapi.ReasonInvalidInput, msgs.MsgValidationInvalidPaymentID, raw)
	}
	return id, nil
}
