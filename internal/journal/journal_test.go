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
	"fmt"
	"testing"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/internal/persistence"
	"github.com/Confidential-Secret-Vault/app/internal/persistence/mockpersistence"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) (context.Context, Journal) {
	ctx := context.Background()
	p, done, err := persistence.NewUnitTestPersistence(ctx)
	require.NoError(t, err)
	t.Cleanup(done)
	return ctx, New(p)
}

func newMockJournal(t *testing.T) (context.Context, Journal, sqlmock.Sqlmock) {
	mp, err := mockpersistence.NewSQLMockProvider()
	require.NoError(t, err)
	return context.Background(), New(mp.P), mp.Mock
}

func TestRecordResolveList(t *testing.T) {
	ctx, j := newTestJournal(t)

	account := *types.RandAddress()
	hash1 := types.RandBytes32()
	send := &payrollapi.JournalEntry{
		Kind:            payrollapi.TxKindSend,
		Account:         account,
		TransactionHash: &hash1,
		PaymentCount:    1,
	}
	require.NoError(t, j.Record(ctx, send))
	assert.NotEqual(t, uuid.Nil, send.ID)
	assert.Equal(t, payrollapi.TxStatusPending, send.Status)

	time.Sleep(1 * time.Millisecond)
	hash2 := types.RandBytes32()
	paymentID := uint64(7)
	claim := &payrollapi.JournalEntry{
		Kind:            payrollapi.TxKindClaim,
		Account:         account,
		TransactionHash: &hash2,
		PaymentCount:    1,
		PaymentID:       &paymentID,
	}
	require.NoError(t, j.Record(ctx, claim))

	block := uint64(42)
	require.NoError(t, j.Resolve(ctx, send.ID, &block, nil))
	failure := payrollapi.NewFailure(payrollapi.ReasonRejected, i18n.NewError(ctx, msgs.MsgLedgerTransactionFailed, hash2, 43, "already claimed"))
	require.NoError(t, j.Resolve(ctx, claim.ID, nil, failure))

	entries, err := j.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, claim.ID, entries[0].ID)
	assert.Equal(t, payrollapi.TxStatusFailed, entries[0].Status)
	assert.Equal(t, payrollapi.ClassLedger, entries[0].FailureClass)
	assert.Equal(t, payrollapi.ReasonRejected, entries[0].FailureReason)
	assert.Regexp(t, "PY011103.*already claimed", entries[0].Message)
	assert.Equal(t, uint64(7), *entries[0].PaymentID)
	assert.Nil(t, entries[0].BlockNumber)

	assert.Equal(t, send.ID, entries[1].ID)
	assert.Equal(t, payrollapi.TxStatusSucceeded, entries[1].Status)
	assert.Equal(t, hash1, *entries[1].TransactionHash)
	assert.Equal(t, account, entries[1].Account)
	assert.Equal(t, uint64(42), *entries[1].BlockNumber)
	assert.Nil(t, entries[1].PaymentID)
	assert.Empty(t, entries[1].Message)

	entries, err = j.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, claim.ID, entries[0].ID)
}

func TestRecordDuplicateHash(t *testing.T) {
	ctx, j := newTestJournal(t)
	hash := types.RandBytes32()
	require.NoError(t, j.Record(ctx, &payrollapi.JournalEntry{Kind: payrollapi.TxKindBatch, TransactionHash: &hash, PaymentCount: 3}))
	err := j.Record(ctx, &payrollapi.JournalEntry{Kind: payrollapi.TxKindBatch, TransactionHash: &hash, PaymentCount: 3})
	assert.Regexp(t, "PY010905", err)
}

func TestRecordFail(t *testing.T) {
	ctx, j, mdb := newMockJournal(t)
	mdb.ExpectExec("INSERT.*tx_journal").WillReturnError(fmt.Errorf("pop"))
	err := j.Record(ctx, &payrollapi.JournalEntry{Kind: payrollapi.TxKindSend})
	assert.Regexp(t, "PY010905.*pop", err)
	require.NoError(t, mdb.ExpectationsWereMet())
}

func TestResolveFail(t *testing.T) {
	ctx, j, mdb := newMockJournal(t)
	mdb.ExpectExec("UPDATE.*tx_journal").WillReturnError(fmt.Errorf("pop"))
	err := j.Resolve(ctx, uuid.New(), nil, nil)
	assert.Regexp(t, "PY010905.*pop", err)
	require.NoError(t, mdb.ExpectationsWereMet())
}

func TestListFail(t *testing.T) {
	ctx, j, mdb := newMockJournal(t)
	mdb.ExpectQuery("SELECT.*tx_journal").WillReturnError(fmt.Errorf("pop"))
	_, err := j.List(ctx, 10)
	assert.Regexp(t, "PY010905.*pop", err)
	require.NoError(t, mdb.ExpectationsWereMet())
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	j := NewNoop()
	e := &payrollapi.JournalEntry{Kind: payrollapi.TxKindSend}
	require.NoError(t, j.Record(ctx, e))
	assert.NotEqual(t, uuid.Nil, e.ID)
	require.NoError(t, j.Resolve(ctx, e.ID, nil, nil))
	entries, err := j.List(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
