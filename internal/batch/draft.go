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

package batch

import (
	"context"
	"sync"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/validator"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type Field string

const (
	FieldAddress Field = "address"
	FieldAmount  Field = "amount"
	FieldMemo    Field = "memo"
)

// Draft is the editable list of rows for a batch send. It always holds between
// one and MaxBatchSize rows, and starts with a single empty row.
type Draft struct {
	lock    sync.Mutex
	entries []*payrollapi.BatchEntry
}

func NewDraft() *Draft {
	d := &Draft{}
	d.Reset()
	return d
}

func (d *Draft) Reset() {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.entries = []*payrollapi.BatchEntry{{}}
}

// Append adds an empty row and returns its index
func (d *Draft) Append(ctx context.Context) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if len(d.entries) >= validator.MaxBatchSize {
		return -1, payrollapi.NewFailure(payrollapi.ReasonBatchTooLarge,
			i18n.NewError(ctx, msgs.MsgValidationBatchTooLarge, validator.MaxBatchSize))
	}
	d.entries = append(d.entries, &payrollapi.BatchEntry{})
	return len(d.entries) - 1, nil
}

func (d *Draft) Remove(ctx context.Context, index int) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if err := d.checkIndex(ctx, index); err != nil {
		return err
	}
	if len(d.entries) == 1 {
		return payrollapi.NewFailure(payrollapi.ReasonInvalidInput,
			i18n.NewError(ctx, msgs.MsgValidationBatchLastEntry))
	}
	d.entries = append(d.entries[:index], d.entries[index+1:]...)
	return nil
}

func (d *Draft) Update(ctx context.Context, index int, field Field, value string) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if err := d.checkIndex(ctx, index); err != nil {
		return err
	}
	entry := d.entries[index]
	switch field {
	case FieldAddress:
		entry.Address = value
	case FieldAmount:
		entry.Amount = value
	case FieldMemo:
		entry.Memo = value
	default:
		return payrollapi.NewFailure(payrollapi.ReasonInvalidInput,
			i18n.NewError(ctx, msgs.MsgValidationBatchField, field))
	}
	return nil
}

func (d *Draft) checkIndex(ctx context.Context, index int) error {
	if index < 0 || index >= len(d.entries) {
		return payrollapi.NewFailure(payrollapi.ReasonInvalidInput,
			i18n.NewError(ctx, msgs.MsgValidationBatchIndex, index, len(d.entries)))
	}
	return nil
}

// Entries returns a copy of the rows
func (d *Draft) Entries() []*payrollapi.BatchEntry {
	d.lock.Lock()
	defer d.lock.Unlock()
	out := make([]*payrollapi.BatchEntry, len(d.entries))
	for i, e := range d.entries {
		c := *e
		out[i] = &c
	}
	return out
}
