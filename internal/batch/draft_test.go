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
	"testing"

	"github.com/Confidential-Secret-Vault/app/internal/validator"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftStartsWithOneRow(t *testing.T) {
	d := NewDraft()
	entries := d.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsPlaceholder())
}

func TestDraftEditing(t *testing.T) {
	ctx := context.Background()
	d := NewDraft()
	idx, err := d.Append(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	require.NoError(t, d.Update(ctx, 0, FieldAddress, "0xabc"))
	require.NoError(t, d.Update(ctx, 0, FieldAmount, "100"))
	require.NoError(t, d.Update(ctx, 0, FieldMemo, "a"))
	require.NoError(t, d.Update(ctx, 1, FieldMemo, "b"))

	entries := d.Entries()
	assert.Equal(t, &payrollapi.BatchEntry{Address: "0xabc", Amount: "100", Memo: "a"}, entries[0])
	assert.Equal(t, "b", entries[1].Memo)

	entries[0].Memo = "not stored"
	assert.Equal(t, "a", d.Entries()[0].Memo)

	require.NoError(t, d.Remove(ctx, 0))
	entries = d.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].Memo)

	err = d.Remove(ctx, 0)
	assert.Regexp(t, "PY010710", err)

	d.Reset()
	assert.Equal(t, []*payrollapi.BatchEntry{{}}, d.Entries())
}

func TestDraftBadIndexAndField(t *testing.T) {
	ctx := context.Background()
	d := NewDraft()
	assert.Regexp(t, "PY010709", d.Remove(ctx, 1))
	assert.Regexp(t, "PY010709", d.Update(ctx, -1, FieldMemo, "x"))
	err := d.Update(ctx, 0, "colour", "x")
	assert.Regexp(t, "PY010711", err)
	assert.True(t, payrollapi.HasReason(err, payrollapi.ReasonInvalidInput))
}

func TestDraftBoundEnforcedOnAppend(t *testing.T) {
	ctx := context.Background()
	d := NewDraft()
	for i := 1; i < validator.MaxBatchSize; i++ {
		_, err := d.Append(ctx)
		require.NoError(t, err)
	}
	assert.Len(t, d.Entries(), validator.MaxBatchSize)
	_, err := d.Append(ctx)
	assert.Regexp(t, "PY010707", err)
	assert.True(t, payrollapi.HasReason(err, payrollapi.ReasonBatchTooLarge))
	assert.Len(t, d.Entries(), validator.MaxBatchSize)
}
