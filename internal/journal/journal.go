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

package journal

import (
	"context"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/persistence"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

const DefaultListLimit = 25

// Journal keeps an audit trail of every write submitted to the ledger
type Journal interface {
	Record(ctx context.Context, entry *payrollapi.JournalEntry) error
	Resolve(ctx context.Context, id uuid.UUID, blockNumber *uint64, failure error) error
	List(ctx context.Context, limit int) ([]*payrollapi.JournalEntry, error)
}

type journalEntry struct {
	ID            uuid.UUID        `gorm:"column:id;primaryKey"`
	Created       types.Timestamp  `gorm:"column:created"`
	Updated       types.Timestamp  `gorm:"column:updated"`
	Kind          string           `gorm:"column:kind"`
	Account       types.EthAddress `gorm:"column:account"`
	TxHash        types.Bytes32    `gorm:"column:tx_hash"`
	PaymentCount  int              `gorm:"column:payment_count"`
	PaymentID     *int64           `gorm:"column:payment_id"`
	Status        string           `gorm:"column:status"`
	FailureClass  *string          `gorm:"column:failure_class"`
	FailureReason *string          `gorm:"column:failure_reason"`
	Message       *string          `gorm:"column:message"`
	BlockNumber   *int64           `gorm:"column:block_number"`
}

func (journalEntry) TableName() string {
	return "tx_journal"
}

type journal struct {
	p persistence.Persistence
}

func New(p persistence.Persistence) Journal {
	return &journal{p: p}
}

// Record stores a pending entry. The ID and timestamps are assigned when unset.
func (j *journal) Record(ctx context.Context, entry *payrollapi.JournalEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	now := types.TimestampNow()
	entry.Created = now.Time()
	entry.Updated = entry.Created
	if entry.Status == "" {
		entry.Status = payrollapi.TxStatusPending
	}
	dbe := &journalEntry{
		ID:           entry.ID,
		Created:      now,
		Updated:      now,
		Kind:         string(entry.Kind),
		Account:      entry.Account,
		PaymentCount: entry.PaymentCount,
		PaymentID:    int64Ptr(entry.PaymentID),
		Status:       string(entry.Status),
	}
	if entry.TransactionHash != nil {
		dbe.TxHash = *entry.TransactionHash
	}
	err := j.p.DB().WithContext(ctx).Create(dbe).Error
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgPersistenceQueryFailed)
	}
	log.L(ctx).Debugf("Journal %s recorded %s tx=%s", entry.ID, entry.Kind, dbe.TxHash)
	return nil
}

// Resolve marks an entry succeeded, or failed when failure is non-nil
func (j *journal) Resolve(ctx context.Context, id uuid.UUID, blockNumber *uint64, failure error) error {
	updates := map[string]any{
		"updated":      types.TimestampNow(),
		"status":       string(payrollapi.TxStatusSucceeded),
		"block_number": int64Ptr(blockNumber),
	}
	if failure != nil {
		updates["status"] = string(payrollapi.TxStatusFailed)
		updates["message"] = failure.Error()
		if f, ok := payrollapi.AsFailure(failure); ok {
			updates["failure_class"] = string(f.Class)
			updates["failure_reason"] = string(f.Reason)
		}
	}
	err := j.p.DB().WithContext(ctx).
		Table(journalEntry{}.TableName()).
		Where("id = ?", id).
		Updates(updates).
		Error
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgPersistenceQueryFailed)
	}
	return nil
}

// List returns the most recent entries first
func (j *journal) List(ctx context.Context, limit int) ([]*payrollapi.JournalEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var dbEntries []*journalEntry
	err := j.p.DB().WithContext(ctx).
		Order("created DESC").
		Limit(limit).
		Find(&dbEntries).
		Error
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgPersistenceQueryFailed)
	}
	entries := make([]*payrollapi.JournalEntry, len(dbEntries))
	for i, dbe := range dbEntries {
		entries[i] = dbe.toAPI()
	}
	return entries, nil
}

func (dbe *journalEntry) toAPI() *payrollapi.JournalEntry {
	txHash := dbe.TxHash
	e := &payrollapi.JournalEntry{
		ID:              dbe.ID,
		Created:         dbe.Created.Time(),
		Updated:         dbe.Updated.Time(),
		Kind:            payrollapi.TxKind(dbe.Kind),
		Account:         dbe.Account,
		TransactionHash: &txHash,
		PaymentCount:    dbe.PaymentCount,
		PaymentID:       uint64Ptr(dbe.PaymentID),
		Status:          payrollapi.TxStatus(dbe.Status),
		BlockNumber:     uint64Ptr(dbe.BlockNumber),
	}
	if dbe.FailureClass != nil {
		e.FailureClass = payrollapi.FailureClass(*dbe.FailureClass)
	}
	if dbe.FailureReason != nil {
		e.FailureReason = payrollapi.FailureReason(*dbe.FailureReason)
	}
	if dbe.Message != nil {
		e.Message = *dbe.Message
	}
	return e
}

func int64Ptr(v *uint64) *int64 {
	if v == nil {
		return nil
	}
	i := int64(*v)
	return &i
}

func uint64Ptr(v *int64) *uint64 {
	if v == nil {
		return nil
	}
	u := uint64(*v)
	return &u
}
