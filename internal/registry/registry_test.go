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

package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords(recipient *types.EthAddress, ids ...uint64) []*payrollapi.PaymentRecord {
	records := make([]*payrollapi.PaymentRecord, len(ids))
	for i, id := range ids {
		records[i] = &payrollapi.PaymentRecord{
			ID:        id,
			Sender:    *types.RandAddress(),
			Recipient: *recipient,
			Timestamp: 1700000000 + id,
			Memo:      "memo",
		}
	}
	return records
}

func TestReplaceKeepsOrderAndCopies(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.Reset("conn1")
	in := testRecords(types.RandAddress(), 5, 1, 3)
	require.True(t, r.Replace(ctx, "conn1", in))

	in[0].Memo = "changed by caller"
	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, []uint64{5, 1, 3}, []uint64{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "memo", list[0].Memo)

	list[1].Claimed = true
	rec, ok := r.Get(1)
	require.True(t, ok)
	assert.False(t, rec.Claimed)

	_, ok = r.Get(99)
	assert.False(t, ok)
}

func TestReplaceWholesaleDropsDecrypted(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.Reset("conn1")
	recipient := types.RandAddress()
	r.Replace(ctx, "conn1", testRecords(recipient, 1, 2))
	amount, ok := r.PatchDecrypted(ctx, "conn1", 1, 1000)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), amount)

	r.Replace(ctx, "conn1", testRecords(recipient, 1))
	rec, ok := r.Get(1)
	require.True(t, ok)
	assert.Nil(t, rec.DecryptedAmount)
	_, ok = r.Get(2)
	assert.False(t, ok)
}

func TestPatchDecryptedIsMonotonic(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.Reset("conn1")
	r.Replace(ctx, "conn1", testRecords(types.RandAddress(), 1))

	amount, ok := r.PatchDecrypted(ctx, "conn1", 1, 1000)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), amount)
	amount, ok = r.PatchDecrypted(ctx, "conn1", 1, 2000)
	require.True(t, ok)
	assert.Equal(t, uint64(1000), amount)

	_, ok = r.PatchDecrypted(ctx, "conn1", 42, 1)
	assert.False(t, ok)
}

func TestPatchClaimedOnlyTouchesClaimed(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.Reset("conn1")
	in := testRecords(types.RandAddress(), 1, 2)
	r.Replace(ctx, "conn1", in)
	r.PatchDecrypted(ctx, "conn1", 1, 7)

	require.True(t, r.PatchClaimed(ctx, "conn1", 1))
	rec, _ := r.Get(1)
	assert.True(t, rec.Claimed)
	assert.Equal(t, uint64(7), *rec.DecryptedAmount)
	assert.Equal(t, in[0].Memo, rec.Memo)
	assert.Equal(t, in[0].Sender, rec.Sender)
	assert.Equal(t, in[0].Timestamp, rec.Timestamp)

	other, _ := r.Get(2)
	assert.False(t, other.Claimed)
	assert.False(t, r.PatchClaimed(ctx, "conn1", 42))
}

func TestStaleOwnerDiscarded(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.Reset("conn1")
	r.Replace(ctx, "conn1", testRecords(types.RandAddress(), 1))
	r.Reset("conn2")
	assert.Equal(t, "conn2", r.Owner())

	assert.False(t, r.Replace(ctx, "conn1", testRecords(types.RandAddress(), 9)))
	_, ok := r.PatchDecrypted(ctx, "conn1", 1, 5)
	assert.False(t, ok)
	assert.False(t, r.PatchClaimed(ctx, "conn1", 1))
	assert.False(t, r.SetViewed(ctx, "conn1", &payrollapi.PaymentRecord{}))
	assert.Empty(t, r.List())

	r.Reset("")
	assert.False(t, r.Replace(ctx, "", testRecords(types.RandAddress(), 9)))
}

func TestViewedRecord(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.Reset("conn1")
	assert.Nil(t, r.Viewed())

	recipient := types.RandAddress()
	require.True(t, r.SetViewed(ctx, "conn1", &payrollapi.PaymentRecord{ID: 3, Recipient: *recipient, Memo: "bonus"}))
	_, ok := r.PatchViewedDecrypted(ctx, "conn1", *recipient, 4, 100)
	assert.False(t, ok)
	_, ok = r.PatchViewedDecrypted(ctx, "conn1", *types.RandAddress(), 3, 100)
	assert.False(t, ok)

	amount, ok := r.PatchViewedDecrypted(ctx, "conn1", *recipient, 3, 100)
	require.True(t, ok)
	assert.Equal(t, uint64(100), amount)
	assert.Equal(t, uint64(100), *r.Viewed().DecryptedAmount)
	assert.Empty(t, r.List())

	require.True(t, r.ClearViewed(ctx, "conn1"))
	assert.Nil(t, r.Viewed())
	_, ok = r.PatchViewedDecrypted(ctx, "conn1", *recipient, 3, 100)
	assert.False(t, ok)
	assert.False(t, r.ClearViewed(ctx, "conn2"))
}

func TestConcurrentDecryptAndClaim(t *testing.T) {
	ctx := context.Background()
	r := New()
	r.Reset("conn1")
	ids := []uint64{1, 2, 3, 4, 5, 6, 7, 8}
	r.Replace(ctx, "conn1", testRecords(types.RandAddress(), ids...))

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(2)
		go func(id uint64) {
			defer wg.Done()
			r.PatchDecrypted(ctx, "conn1", id, id*100)
		}(id)
		go func(id uint64) {
			defer wg.Done()
			r.PatchClaimed(ctx, "conn1", id)
		}(id)
	}
	wg.Wait()

	for _, rec := range r.List() {
		assert.True(t, rec.Claimed)
		require.NotNil(t, rec.DecryptedAmount)
		assert.Equal(t, rec.ID*100, *rec.DecryptedAmount)
	}
}
