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

	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/Confidential-Secret-Vault/app/pkg/types"
)

// Registry mirrors the received payments of the connected account, plus one ad-hoc
// viewed payment. Every mutation names the connection that produced it, and is
// discarded if a different connection now owns the registry.
type Registry struct {
	lock    sync.RWMutex
	owner   string
	records []*payrollapi.PaymentRecord
	byID    map[uint64]*payrollapi.PaymentRecord
	viewed  *payrollapi.PaymentRecord
}

func New() *Registry {
	return &Registry{byID: map[uint64]*payrollapi.PaymentRecord{}}
}

// Reset clears all state and hands ownership to a new connection. An empty owner
// means nothing is connected, and every later patch is discarded.
func (r *Registry) Reset(owner string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.owner = owner
	r.records = nil
	r.byID = map[uint64]*payrollapi.PaymentRecord{}
	r.viewed = nil
}

func (r *Registry) Owner() string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.owner
}

func (r *Registry) stale(ctx context.Context, owner, what string) bool {
	if owner == "" || owner != r.owner {
		log.L(ctx).Warnf("Discarding stale %s from connection '%s' (current='%s')", what, owner, r.owner)
		return true
	}
	return false
}

// Replace swaps in a complete list, in the order given
func (r *Registry) Replace(ctx context.Context, owner string, records []*payrollapi.PaymentRecord) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.stale(ctx, owner, "payment list") {
		return false
	}
	r.records = make([]*payrollapi.PaymentRecord, 0, len(records))
	r.byID = make(map[uint64]*payrollapi.PaymentRecord, len(records))
	for _, rec := range records {
		c := rec.Clone()
		r.records = append(r.records, c)
		r.byID[c.ID] = c
	}
	return true
}

// PatchDecrypted sets the decrypted amount of a listed record, if it is not already
// known. It returns the amount the record holds afterwards, and false if nothing matched.
func (r *Registry) PatchDecrypted(ctx context.Context, owner string, id uint64, amount uint64) (uint64, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.stale(ctx, owner, "decrypt result") {
		return 0, false
	}
	rec := r.byID[id]
	if rec == nil {
		log.L(ctx).Debugf("Payment %d no longer listed, decrypt result not stored", id)
		return 0, false
	}
	return setDecrypted(rec, amount), true
}

// PatchClaimed marks a listed record claimed. Claimed never goes back to false.
func (r *Registry) PatchClaimed(ctx context.Context, owner string, id uint64) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.stale(ctx, owner, "claim result") {
		return false
	}
	rec := r.byID[id]
	if rec == nil {
		log.L(ctx).Debugf("Payment %d no longer listed, claim result not stored", id)
		return false
	}
	rec.Claimed = true
	return true
}

func (r *Registry) SetViewed(ctx context.Context, owner string, rec *payrollapi.PaymentRecord) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.stale(ctx, owner, "viewed payment") {
		return false
	}
	r.viewed = rec.Clone()
	return true
}

func (r *Registry) ClearViewed(ctx context.Context, owner string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.stale(ctx, owner, "viewed payment clear") {
		return false
	}
	r.viewed = nil
	return true
}

// PatchViewedDecrypted only applies if the same payment is still being viewed
func (r *Registry) PatchViewedDecrypted(ctx context.Context, owner string, recipient types.EthAddress, id uint64, amount uint64) (uint64, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.stale(ctx, owner, "viewed decrypt result") {
		return 0, false
	}
	if r.viewed == nil || r.viewed.ID != id || r.viewed.Recipient != recipient {
		log.L(ctx).Debugf("Payment %d of %s is no longer being viewed", id, recipient)
		return 0, false
	}
	return setDecrypted(r.viewed, amount), true
}

func setDecrypted(rec *payrollapi.PaymentRecord, amount uint64) uint64 {
	if rec.DecryptedAmount == nil {
		rec.DecryptedAmount = &amount
	}
	return *rec.DecryptedAmount
}

// List returns copies of the records in ledger order
func (r *Registry) List() []*payrollapi.PaymentRecord {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]*payrollapi.PaymentRecord, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Clone()
	}
	return out
}

func (r *Registry) Get(id uint64) (*payrollapi.PaymentRecord, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	rec := r.byID[id]
	if rec == nil {
		return nil, false
	}
	return rec.Clone(), true
}

func (r *Registry) Viewed() *payrollapi.PaymentRecord {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.viewed == nil {
		return nil
	}
	return r.viewed.Clone()
}
