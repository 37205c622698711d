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

package payroll

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Confidential-Secret-Vault/app/internal/metrics"
	"github.com/Confidential-Secret-Vault/app/internal/msgs"
	"github.com/Confidential-Secret-Vault/app/pkg/log"
	"github.com/Confidential-Secret-Vault/app/pkg/payrollapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type opKey struct {
	kind payrollapi.OpKind
	key  string
}

// opTracker holds the state of every per-payment decrypt and claim, keyed by
// payment so that a failure on one never shows against another. Like the registry
// it belongs to one connection, and updates from any other connection are dropped.
type opTracker struct {
	lock    sync.Mutex
	metrics metrics.PayrollMetrics
	owner   string
	ops     map[opKey]*payrollapi.OpStatus
}

func newOpTracker(m metrics.PayrollMetrics) *opTracker {
	return &opTracker{
		metrics: m,
		ops:     map[opKey]*payrollapi.OpStatus{},
	}
}

func (ot *opTracker) stale(ctx context.Context, owner string, kind payrollapi.OpKind, key string) bool {
	if owner == "" || owner != ot.owner {
		log.L(ctx).Warnf("Discarding stale %s state for '%s' from connection '%s' (current='%s')", kind, key, owner, ot.owner)
		return true
	}
	return false
}

func (ot *opTracker) begin(ctx context.Context, owner string, kind payrollapi.OpKind, key string) {
	ot.lock.Lock()
	defer ot.lock.Unlock()
	ot.metrics.IncPending(string(kind))
	if ot.stale(ctx, owner, kind, key) {
		return
	}
	ot.ops[opKey{kind, key}] = &payrollapi.OpStatus{
		Kind:    kind,
		Key:     key,
		State:   payrollapi.OpStatePending,
		Updated: time.Now(),
	}
}

func (ot *opTracker) finish(ctx context.Context, owner string, kind payrollapi.OpKind, key string, err error) {
	ot.lock.Lock()
	defer ot.lock.Unlock()
	ot.metrics.DecPending(string(kind))
	if ot.stale(ctx, owner, kind, key) {
		return
	}
	status := &payrollapi.OpStatus{
		Kind:    kind,
		Key:     key,
		State:   payrollapi.OpStateSucceeded,
		Updated: time.Now(),
	}
	if err != nil {
		status.State = payrollapi.OpStateFailed
		status.Error = err.Error()
		status.Class = payrollapi.ClassOf(err)
	}
	ot.ops[opKey{kind, key}] = status
}

// reset clears all state and hands ownership to a new connection, or to nobody
func (ot *opTracker) reset(owner string) {
	ot.lock.Lock()
	defer ot.lock.Unlock()
	ot.owner = owner
	ot.ops = map[opKey]*payrollapi.OpStatus{}
}

// get returns Idle for anything never started
func (ot *opTracker) get(ctx context.Context, kind payrollapi.OpKind, key string) (*payrollapi.OpStatus, error) {
	if kind != payrollapi.OpKindDecrypt && kind != payrollapi.OpKindClaim {
		return nil, payrollapi.NewFailure(payrollapi.ReasonInvalidInput, i18n.NewError(ctx, msgs.MsgPayrollUnknownOpKind, kind))
	}
	ot.lock.Lock()
	defer ot.lock.Unlock()
	if s := ot.ops[opKey{kind, key}]; s != nil {
		c := *s
		return &c, nil
	}
	return &payrollapi.OpStatus{Kind: kind, Key: key, State: payrollapi.OpStateIdle}, nil
}

func (ot *opTracker) list() []*payrollapi.OpStatus {
	ot.lock.Lock()
	defer ot.lock.Unlock()
	out := make([]*payrollapi.OpStatus, 0, len(ot.ops))
	for _, s := range ot.ops {
		c := *s
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Key < out[j].Key
	})
	return out
}
